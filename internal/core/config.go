package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Outcome describes how a finished game ended.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeGameOver
	OutcomeCompleted
)

// String returns the name stored alongside finished runs.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeGameOver:
		return "game_over"
	case OutcomeCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	Lines    int     // Cleared lines
	Level    int     // Current level
	Pieces   int     // Pieces locked into the field
	Ticks    uint64  // Simulation ticks played
	Outcome  Outcome // Playing until the game ends
	GameOver bool    // Whether the game has ended, for either outcome
	Paused   bool    // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Finished is set on the single step in which the game ended.
	Finished bool
}
