package tui

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// heldKey indexes the keys that can be held down.
type heldKey int

const (
	heldLeft heldKey = iota
	heldRight
	heldDown
	heldCount
)

type keyState struct {
	last     time.Time
	down     bool
	repeated bool
}

// HeldKeys turns terminal key presses into press, hold and release actions.
//
// Terminals report no key-up events. A key counts as held while auto-repeat
// presses keep arriving within the release window. The first press moves
// (or starts soft drop), the first repeat starts auto-shift, and silence past
// the window releases the key.
type HeldKeys struct {
	window time.Duration
	keys   [heldCount]keyState
}

// NewHeldKeys creates a tracker with the given release window.
func NewHeldKeys(window time.Duration) *HeldKeys {
	return &HeldKeys{window: window}
}

// SetWindow changes the release window.
func (h *HeldKeys) SetWindow(window time.Duration) {
	h.window = window
}

// Window returns the release window.
func (h *HeldKeys) Window() time.Duration {
	return h.window
}

// Press records a press at now and writes the resulting actions to frame.
// It returns false for actions that are not holdable; the caller sets those
// directly.
func (h *HeldKeys) Press(a core.Action, now time.Time, frame *core.InputFrame) bool {
	k, ok := holdable(a)
	if !ok {
		return false
	}

	st := &h.keys[k]
	if st.down && now.Sub(st.last) > h.window {
		h.release(k, frame)
	}

	if st.down {
		if !st.repeated {
			st.repeated = true
			switch k {
			case heldLeft:
				frame.Set(core.ActionDasLeft)
			case heldRight:
				frame.Set(core.ActionDasRight)
			}
		}
		st.last = now
		return true
	}

	// Only one direction can be held at a time.
	switch k {
	case heldLeft:
		h.release(heldRight, frame)
	case heldRight:
		h.release(heldLeft, frame)
	}
	*st = keyState{last: now, down: true}
	frame.Set(a)
	return true
}

// Expire releases every key that has been silent longer than the window.
func (h *HeldKeys) Expire(now time.Time, frame *core.InputFrame) {
	for k := range heldCount {
		st := &h.keys[k]
		if st.down && now.Sub(st.last) > h.window {
			h.release(k, frame)
		}
	}
}

// Held reports whether the key behind a is currently held.
func (h *HeldKeys) Held(a core.Action) bool {
	k, ok := holdable(a)
	return ok && h.keys[k].down
}

// Reset forgets all keys without emitting releases.
func (h *HeldKeys) Reset() {
	h.keys = [heldCount]keyState{}
}

func (h *HeldKeys) release(k heldKey, frame *core.InputFrame) {
	st := &h.keys[k]
	if !st.down {
		return
	}
	switch {
	case k == heldDown:
		frame.Set(core.ActionReleaseSoftDrop)
	case k == heldLeft && st.repeated:
		frame.Set(core.ActionReleaseLeft)
	case k == heldRight && st.repeated:
		frame.Set(core.ActionReleaseRight)
	}
	*st = keyState{}
}

func holdable(a core.Action) (heldKey, bool) {
	switch a {
	case core.ActionMoveLeft:
		return heldLeft, true
	case core.ActionMoveRight:
		return heldRight, true
	case core.ActionSoftDrop:
		return heldDown, true
	}
	return 0, false
}
