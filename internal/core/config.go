package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Redraw ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current state of a puzzle session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	LevelID  string // Current level
	Moves    int    // Net moves on the current line of play
	Actions  int    // Every successful move, undo and redo
	Blocks   int    // Number of blocks on the board
	CanUndo  bool
	CanRedo  bool
	Quitting bool // The player asked to leave
}

// StepResult is returned by Game.Step() after each input frame.
type StepResult struct {
	State   GameState
	Changed bool   // The board changed
	Message string // Status line text, empty when nothing happened
}
