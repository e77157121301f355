package core

// World dimensions shared by every game. Hosts scale this playfield to
// their output (terminal cells or window pixels).
const (
	WorldWidth  = 800
	WorldHeight = 600
)

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Host output width (cells or pixels)
	ScreenH  int   // Host output height (cells or pixels)
	TickRate int   // Host ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// Clock drives frame deltas and deadlines. Nil means SystemClock.
	Clock Clock
	// Store persists high scores. Nil disables persistence.
	Store KVStore
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

// ClockOrSystem returns the configured clock, defaulting to the wall clock.
func (c RuntimeConfig) ClockOrSystem() Clock {
	if c.Clock == nil {
		return SystemClock{}
	}
	return c.Clock
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int    // Current score
	HighScore int    // Best score known to the game
	GameOver  bool   // Whether the game has ended
	Paused    bool   // Whether the game is paused
	Phase     string // Game-specific state machine phase (e.g. "ready", "playing")
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
