package core

// Action represents a semantic game action, abstracted from physical key presses.
// Start and release actions exist for the intents that stay active while a
// key is held, since terminals only report presses.
type Action int

const (
	ActionNone Action = iota

	ActionMoveLeft        // Left arrow, H - one column left
	ActionMoveRight       // Right arrow, L - one column right
	ActionDasLeft         // Left held - start auto-shift left
	ActionDasRight        // Right held - start auto-shift right
	ActionReleaseLeft     // Left released - stop auto-shift left
	ActionReleaseRight    // Right released - stop auto-shift right
	ActionSoftDrop        // Down arrow, J - start soft drop
	ActionReleaseSoftDrop // Down released - stop soft drop
	ActionHardDrop        // Space - drop and lock
	ActionRotateCW        // Up arrow, X, K - rotate clockwise
	ActionRotateCCW       // Z - rotate counter-clockwise
	ActionRotate180       // A - rotate half a turn
	ActionHold            // C - swap with the hold slot

	ActionBack    // B, Escape - back to menu when paused or over
	ActionRestart // R key - restart game
	ActionQuit    // Q, Ctrl+C - exit game/session
	ActionPause   // P - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:            "None",
	ActionMoveLeft:        "MoveLeft",
	ActionMoveRight:       "MoveRight",
	ActionDasLeft:         "DasLeft",
	ActionDasRight:        "DasRight",
	ActionReleaseLeft:     "ReleaseLeft",
	ActionReleaseRight:    "ReleaseRight",
	ActionSoftDrop:        "SoftDrop",
	ActionReleaseSoftDrop: "ReleaseSoftDrop",
	ActionHardDrop:        "HardDrop",
	ActionRotateCW:        "RotateCW",
	ActionRotateCCW:       "RotateCCW",
	ActionRotate180:       "Rotate180",
	ActionHold:            "Hold",
	ActionBack:            "Back",
	ActionRestart:         "Restart",
	ActionQuit:            "Quit",
	ActionPause:           "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
