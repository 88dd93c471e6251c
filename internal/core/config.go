package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to size its terminal viewport and seed its RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform
	Seed     int64 // RNG seed for deterministic gameplay
}

// GameState is the summary of a session returned after every frame.
type GameState struct {
	Score    int  // Current score
	Lives    int  // Remaining lives
	Level    int  // Current difficulty level
	Running  bool // Whether the simulation is advancing
	GameOver bool // Whether the session has ended
	Paused   bool // Whether a running session is paused
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState

	// Collisions and Passed count obstacles removed during this frame.
	Collisions int
	Passed     int

	// LeveledUp reports a difficulty threshold crossing this frame.
	LeveledUp bool
}
