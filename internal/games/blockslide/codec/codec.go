// Package codec turns blockslide states into transportable text and
// compact storage blobs.
package codec

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

// EncodedLen returns the base64 length of n bytes: 4 characters per 3 bytes,
// with the final 1 or 2 bytes padded by '='.
func EncodedLen(n int) int {
	return base64.StdEncoding.EncodedLen(n)
}

// DecodedLen returns the maximum number of bytes an encoding of length n
// decodes to.
func DecodedLen(n int) int {
	return base64.StdEncoding.DecodedLen(n)
}

// EncodeBase64 encodes raw bytes as padded base64 text.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes padded base64 text.
func DecodeBase64(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("codec: base64: %w", err)
	}
	return data, nil
}

// EncodeState returns the base64 snapshot of a state.
func EncodeState(s *core.State) (string, error) {
	data, err := s.MarshalBinary()
	if err != nil {
		return "", err
	}
	return EncodeBase64(data), nil
}

// DecodeState parses a base64 snapshot back into a state.
func DecodeState(text string) (*core.State, error) {
	data, err := DecodeBase64(text)
	if err != nil {
		return nil, err
	}
	s := &core.State{}
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return s, nil
}

var (
	zstdOnce sync.Once
	zstdEnc  *zstd.Encoder
	zstdDec  *zstd.Decoder
	zstdErr  error
)

func zstdCodecs() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEnc, zstdErr = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedFastest),
			zstd.WithEncoderConcurrency(1),
		)
		if zstdErr != nil {
			return
		}
		zstdDec, zstdErr = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	})
	return zstdEnc, zstdDec, zstdErr
}

// Compress zstd-compresses data.
func Compress(data []byte) ([]byte, error) {
	enc, _, err := zstdCodecs()
	if err != nil {
		return nil, fmt.Errorf("codec: zstd init: %w", err)
	}
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2+16)), nil
}

// Decompress reverses Compress.
func Decompress(blob []byte) ([]byte, error) {
	_, dec, err := zstdCodecs()
	if err != nil {
		return nil, fmt.Errorf("codec: zstd init: %w", err)
	}
	data, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("codec: zstd decode: %w", err)
	}
	return data, nil
}

// PackState returns the compressed binary form of a state.
func PackState(s *core.State) ([]byte, error) {
	data, err := s.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return Compress(data)
}

// UnpackState reverses PackState.
func UnpackState(blob []byte) (*core.State, error) {
	data, err := Decompress(blob)
	if err != nil {
		return nil, err
	}
	s := &core.State{}
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return s, nil
}
