package core_test

import (
	"testing"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

func TestPoisonedResolverMatchesPlain(t *testing.T) {
	plain := core.NewResolver(14, 10)
	poisoned := core.NewResolver(14, 10, core.WithPoison(true))

	a := demoState(t)
	b := demoState(t)
	for _, at := range []core.Pos{core.P(5, 4), core.P(5, 3), core.P(6, 3)} {
		for _, d := range []core.Dir{core.DirLeft, core.DirRight} {
			id, ok := a.BlockAt(at)
			if !ok {
				continue
			}
			na, movedA, errA := plain.Move(a, id, d)
			nb, movedB, errB := poisoned.Move(b, id, d)
			if errA != nil || errB != nil {
				t.Fatalf("Move failed: %v / %v", errA, errB)
			}
			if movedA != movedB {
				t.Fatalf("move %v %s: plain moved=%v, poisoned moved=%v", at, d, movedA, movedB)
			}
			if movedA {
				a, b = na, nb
			}
			if !a.Equal(b) {
				t.Fatalf("poisoned resolver diverged after %v %s", at, d)
			}
		}
	}
}

func TestResolverGrowsForLargerBoards(t *testing.T) {
	r := core.NewResolver(2, 2)
	s := demoState(t)

	if _, moved, err := r.Move(s, 3, core.DirLeft); err != nil || !moved {
		t.Errorf("expected move on a larger board to succeed, got moved=%v err=%v", moved, err)
	}
}

func TestMoveIntoAliasPanics(t *testing.T) {
	r := core.NewResolver(6, 6)
	s := mustState(t, "#####", "#1..#", "#####")

	defer func() {
		if recover() == nil {
			t.Error("expected MoveInto with dst == src to panic")
		}
	}()
	_, _ = r.MoveInto(s, s, 0, core.DirRight)
}

func TestResolverReusableAfterAliasPanic(t *testing.T) {
	r := core.NewResolver(6, 6)
	s := mustState(t, "#####", "#1..#", "#####")

	func() {
		defer func() { _ = recover() }()
		_, _ = r.MoveInto(s, s, 0, core.DirRight)
	}()

	if _, moved, err := r.Move(s, 0, core.DirRight); err != nil || !moved {
		t.Errorf("expected resolver to remain usable, got moved=%v err=%v", moved, err)
	}
}

func TestReleaseDropsStorage(t *testing.T) {
	s := demoState(t)
	s.Release()
	if s.Board != nil || s.Blocks != nil {
		t.Error("Release should drop board and blocks")
	}
	var nilState *core.State
	nilState.Release()
}
