package core

// RuntimeConfig is passed to the game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation steps per second
	Seed     int64 // 0 lets the platform pick a time-based seed
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 steps/s.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// StepMillis returns the duration of one simulation step in milliseconds.
func (c RuntimeConfig) StepMillis() int {
	if c.TickRate <= 0 {
		return 1000 / 60
	}
	return 1000 / c.TickRate
}

// GameState is the summary the platform reads after each step.
type GameState struct {
	Score    int
	Level    int
	Lines    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState

	// Set on the step where they happened.
	Locked       bool
	LinesCleared int
	LevelUp      bool
	JustEnded    bool
}
