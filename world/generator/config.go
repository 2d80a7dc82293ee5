package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml"
)

// UserConfig is the serialisable configuration of a generation service. It
// is what operators edit on disk; UserConfig.Service converts it into a
// ServiceConfig ready for NewService.
type UserConfig struct {
	World struct {
		// Seed is the world seed. Worlds generated from the same seed are
		// identical.
		Seed int64 `toml:"seed"`
	} `toml:"world"`
	Generation struct {
		// MaxConcurrent bounds simultaneous chunk generations. Zero picks
		// the default of twice the logical core count, at least 4.
		MaxConcurrent int `toml:"max_concurrent"`
		// CacheTTLMinutes is the chunk cache expiry in minutes since last
		// access. Zero picks the default of 10 minutes.
		CacheTTLMinutes int `toml:"cache_ttl_minutes"`
		// DisabledSteps lists generator steps removed from the default
		// pipeline, by name.
		DisabledSteps []string `toml:"disabled_steps"`
	} `toml:"generation"`
}

// DefaultConfig returns a configuration with the standard pipeline and a
// fixed seed. Operators usually change at least the seed.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.World.Seed = 1
	return c
}

// Service converts the user configuration into a ServiceConfig.
func (uc UserConfig) Service(log *slog.Logger) ServiceConfig {
	steps := DefaultSteps()
	for _, name := range uc.Generation.DisabledSteps {
		for i, st := range steps {
			if st.Name() == name {
				steps = append(steps[:i], steps[i+1:]...)
				break
			}
		}
	}
	return ServiceConfig{
		Logger:        log,
		Seed:          uc.World.Seed,
		MaxConcurrent: uc.Generation.MaxConcurrent,
		CacheTTL:      time.Duration(uc.Generation.CacheTTLMinutes) * time.Minute,
		Steps:         steps,
	}
}

// ReadConfig reads the TOML configuration at the path passed. If no file
// exists there yet, the default configuration is written to it and
// returned.
func ReadConfig(path string) (UserConfig, error) {
	c := DefaultConfig()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		data, err := toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return c, fmt.Errorf("create default config: %w", err)
		}
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}
