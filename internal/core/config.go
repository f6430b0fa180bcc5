package core

// RuntimeConfig contains configuration passed to the engine at initialization.
// The platform uses this to communicate terminal geometry and to make
// simulation runs reproducible.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	FrameRate int   // Display frames per second driving the engine (default 60)
	Seed      int64 // RNG seed for deterministic spawning
}

// World scale: how many world units one terminal cell covers. Terminal cells
// are roughly twice as tall as wide, so the vertical scale is larger to keep
// circles round on screen.
const (
	CellWorldW = 24.0
	CellWorldH = 45.0
)

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 60,
		Seed:      0, // 0 means use current time in platform layer
	}
}
