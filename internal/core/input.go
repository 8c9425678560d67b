package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - move cursor up
	ActionDown             // S, Down arrow - move cursor down
	ActionLeft             // A, Left arrow - move cursor left
	ActionRight            // D, Right arrow - move cursor right
	ActionPushLeft         // Shift+Left, H - slide the block under the cursor left
	ActionPushRight        // Shift+Right, L - slide the block under the cursor right
	ActionUndo             // U, Ctrl+Z
	ActionRedo             // Ctrl+R, Y
	ActionNextLevel        // N, ]
	ActionPrevLevel        // P, [
	ActionRestart          // R - reload the current level
	ActionToggleIDs        // I - show block ids instead of cells
	ActionQuit             // Q, Ctrl+C - exit
)

var actionNames = [...]string{
	ActionNone:      "None",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionPushLeft:  "PushLeft",
	ActionPushRight: "PushRight",
	ActionUndo:      "Undo",
	ActionRedo:      "Redo",
	ActionNextLevel: "NextLevel",
	ActionPrevLevel: "PrevLevel",
	ActionRestart:   "Restart",
	ActionToggleIDs: "ToggleIDs",
	ActionQuit:      "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame represents the actions triggered during one update.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Actions: make(map[Action]bool, len(actions))}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
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
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
