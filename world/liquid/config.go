package liquid

import "log/slog"

// Config holds the tunable parameters of the water simulation. The zero
// value is usable; sensible defaults are applied by withDefaults.
type Config struct {
	// Logger receives simulation diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
	// MaxUpdatesPerTick caps the number of queued voxels processed by a
	// single Tick call, bounding the cost of large floods.
	MaxUpdatesPerTick int
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.MaxUpdatesPerTick <= 0 {
		c.MaxUpdatesPerTick = 64
	}
	return c
}
