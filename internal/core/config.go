package core

import "time"

// RuntimeConfig contains front-end settings shared by the platforms.
type RuntimeConfig struct {
	ScreenW    int           // Terminal width in characters
	ScreenH    int           // Terminal height in characters
	TickRate   int           // Frames per second requested from the front end
	HoldWindow time.Duration // How long a key press counts as held
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		HoldWindow: 250 * time.Millisecond,
	}
}

// FrameInterval returns the duration of one frame at TickRate.
func (c RuntimeConfig) FrameInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}
