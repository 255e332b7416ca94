package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const testWindow = 120 * time.Millisecond

func actions(f core.InputFrame) []core.Action {
	var out []core.Action
	for a := core.ActionNone; a <= core.ActionPause; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func TestHeldKeysTapMovesOnce(t *testing.T) {
	h := NewHeldKeys(testWindow)
	t0 := time.Unix(0, 0)

	f := core.NewInputFrame()
	h.Press(core.ActionMoveLeft, t0, &f)
	if !f.Has(core.ActionMoveLeft) || len(actions(f)) != 1 {
		t.Fatalf("first press should only move, got %v", actions(f))
	}

	f.Clear()
	h.Expire(t0.Add(testWindow+time.Millisecond), &f)
	if !f.Empty() {
		t.Errorf("releasing a tapped key should not stop auto-shift, got %v", actions(f))
	}
	if h.Held(core.ActionMoveLeft) {
		t.Error("key should no longer be held")
	}
}

func TestHeldKeysRepeatStartsAutoShift(t *testing.T) {
	h := NewHeldKeys(testWindow)
	t0 := time.Unix(0, 0)
	f := core.NewInputFrame()

	h.Press(core.ActionMoveRight, t0, &f)
	f.Clear()

	h.Press(core.ActionMoveRight, t0.Add(30*time.Millisecond), &f)
	if !f.Has(core.ActionDasRight) || f.Has(core.ActionMoveRight) {
		t.Fatalf("repeat should start auto-shift instead of moving, got %v", actions(f))
	}
	f.Clear()

	h.Press(core.ActionMoveRight, t0.Add(60*time.Millisecond), &f)
	if !f.Empty() {
		t.Errorf("later repeats should be absorbed, got %v", actions(f))
	}

	h.Expire(t0.Add(150*time.Millisecond), &f)
	if !f.Empty() {
		t.Errorf("key is still within the window, got %v", actions(f))
	}

	h.Expire(t0.Add(200*time.Millisecond), &f)
	if !f.Has(core.ActionReleaseRight) {
		t.Errorf("silence should release the key, got %v", actions(f))
	}
}

func TestHeldKeysSoftDrop(t *testing.T) {
	h := NewHeldKeys(testWindow)
	t0 := time.Unix(0, 0)
	f := core.NewInputFrame()

	h.Press(core.ActionSoftDrop, t0, &f)
	if !f.Has(core.ActionSoftDrop) {
		t.Fatal("first press should start soft drop")
	}
	f.Clear()

	h.Press(core.ActionSoftDrop, t0.Add(50*time.Millisecond), &f)
	if !f.Empty() {
		t.Errorf("repeat should keep soft drop, got %v", actions(f))
	}

	h.Expire(t0.Add(171*time.Millisecond), &f)
	if !f.Has(core.ActionReleaseSoftDrop) {
		t.Errorf("silence should stop soft drop, got %v", actions(f))
	}
}

func TestHeldKeysOppositeDirection(t *testing.T) {
	h := NewHeldKeys(testWindow)
	t0 := time.Unix(0, 0)
	f := core.NewInputFrame()

	h.Press(core.ActionMoveLeft, t0, &f)
	h.Press(core.ActionMoveLeft, t0.Add(20*time.Millisecond), &f)
	f.Clear()

	h.Press(core.ActionMoveRight, t0.Add(40*time.Millisecond), &f)
	if !f.Has(core.ActionReleaseLeft) || !f.Has(core.ActionMoveRight) {
		t.Errorf("switching direction should release the other side, got %v", actions(f))
	}
	if h.Held(core.ActionMoveLeft) || !h.Held(core.ActionMoveRight) {
		t.Error("only the new direction should be held")
	}
}

func TestHeldKeysLatePressIsFresh(t *testing.T) {
	h := NewHeldKeys(testWindow)
	t0 := time.Unix(0, 0)
	f := core.NewInputFrame()

	h.Press(core.ActionMoveLeft, t0, &f)
	h.Press(core.ActionMoveLeft, t0.Add(10*time.Millisecond), &f)
	f.Clear()

	// No Expire ran in between.
	h.Press(core.ActionMoveLeft, t0.Add(500*time.Millisecond), &f)
	if !f.Has(core.ActionReleaseLeft) || !f.Has(core.ActionMoveLeft) || f.Has(core.ActionDasLeft) {
		t.Errorf("late press should release and move again, got %v", actions(f))
	}
}

func TestHeldKeysIgnoresOtherActions(t *testing.T) {
	h := NewHeldKeys(testWindow)
	f := core.NewInputFrame()

	for _, a := range []core.Action{core.ActionHardDrop, core.ActionRotateCW, core.ActionHold, core.ActionPause} {
		if h.Press(a, time.Unix(0, 0), &f) {
			t.Errorf("%s should not be tracked", a)
		}
	}
	if !f.Empty() {
		t.Errorf("untracked presses must not touch the frame, got %v", actions(f))
	}
}

func TestHeldKeysReset(t *testing.T) {
	h := NewHeldKeys(testWindow)
	f := core.NewInputFrame()
	h.Press(core.ActionSoftDrop, time.Unix(0, 0), &f)

	h.Reset()
	f.Clear()
	h.Expire(time.Unix(10, 0), &f)
	if !f.Empty() || h.Held(core.ActionSoftDrop) {
		t.Error("reset should forget keys silently")
	}
}
