package animation

import "time"

// DefaultConfig returns the flash timing used when a countdown expires.
func DefaultConfig() Config {
	return Config{
		LitDuration: Range{
			Min: 350 * time.Millisecond,
			Max: 450 * time.Millisecond,
		},
		DarkDuration: Range{
			Min: 250 * time.Millisecond,
			Max: 350 * time.Millisecond,
		},
		Flashes: 6,
	}
}
