package codec

import (
	"bytes"
	"testing"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

func testState(t *testing.T) *core.State {
	t.Helper()
	b, err := core.ParseRows([]string{
		"########",
		"#..<...#",
		"#.11.2.#",
		"#.3A22.#",
		"########",
	})
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	s, err := core.Derive(b)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	return s
}

func TestBase64Padding(t *testing.T) {
	testCases := []struct {
		in   []byte
		want string
	}{
		{[]byte{}, ""},
		{[]byte("f"), "Zg=="},
		{[]byte("fo"), "Zm8="},
		{[]byte("foo"), "Zm9v"},
		{[]byte{0xff, 0x00, 0x10, 0x80}, "/wAQgA=="},
	}

	for _, tc := range testCases {
		got := EncodeBase64(tc.in)
		if got != tc.want {
			t.Errorf("EncodeBase64(% x) = %q, want %q", tc.in, got, tc.want)
		}
		if EncodedLen(len(tc.in)) != len(got) {
			t.Errorf("EncodedLen(%d) = %d, want %d", len(tc.in), EncodedLen(len(tc.in)), len(got))
		}
		back, err := DecodeBase64(got)
		if err != nil {
			t.Fatalf("DecodeBase64(%q) failed: %v", got, err)
		}
		if !bytes.Equal(back, tc.in) {
			t.Errorf("round trip of % x gave % x", tc.in, back)
		}
		if DecodedLen(len(got)) < len(back) {
			t.Errorf("DecodedLen(%d) = %d < %d", len(got), DecodedLen(len(got)), len(back))
		}
	}
}

func TestDecodeBase64Invalid(t *testing.T) {
	for _, in := range []string{"Zg=", "Z!==", "Zm9"} {
		if _, err := DecodeBase64(in); err == nil {
			t.Errorf("DecodeBase64(%q): expected error", in)
		}
	}
}

func TestStateSnapshotRoundTrip(t *testing.T) {
	s := testState(t)

	text, err := EncodeState(s)
	if err != nil {
		t.Fatalf("EncodeState failed: %v", err)
	}
	if len(text) != EncodedLen(s.Size()) {
		t.Errorf("expected %d characters, got %d", EncodedLen(s.Size()), len(text))
	}

	got, err := DecodeState(text)
	if err != nil {
		t.Fatalf("DecodeState failed: %v", err)
	}
	if !got.Equal(s) {
		t.Error("snapshot round trip changed the state")
	}
}

func TestPackRoundTrip(t *testing.T) {
	s := testState(t)

	blob, err := PackState(s)
	if err != nil {
		t.Fatalf("PackState failed: %v", err)
	}
	if len(blob) >= s.Size() {
		t.Errorf("expected compression, got %d bytes for %d", len(blob), s.Size())
	}

	got, err := UnpackState(blob)
	if err != nil {
		t.Fatalf("UnpackState failed: %v", err)
	}
	if !got.Equal(s) {
		t.Error("pack round trip changed the state")
	}
}

func TestDecompressGarbage(t *testing.T) {
	if _, err := Decompress([]byte("definitely not zstd")); err == nil {
		t.Error("expected error for garbage input")
	}
}
