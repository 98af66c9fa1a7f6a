package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is what a game reports to the platform after each step.
type GameState struct {
	Level    string // ID of the level being played
	Moves    int
	Mistakes int
	GameOver bool
	Won      bool
	Status   string // one-line message for the status bar
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	// Finished is set on the tick an attempt ends, so the platform records it once.
	Finished bool
}
