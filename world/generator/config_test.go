package generator

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if c.World.Seed != DefaultConfig().World.Seed {
		t.Fatalf("fresh config seed = %d, want default %d", c.World.Seed, DefaultConfig().World.Seed)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file was not created: %v", err)
	}

	// A second read must load the file instead of rewriting it.
	again, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("second ReadConfig failed: %v", err)
	}
	if again.World.Seed != c.World.Seed || again.Generation.MaxConcurrent != c.Generation.MaxConcurrent {
		t.Fatalf("re-read config differs from the written default")
	}
}

func TestReadConfigParsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("[world]\nseed = 42\n\n[generation]\nmax_concurrent = 8\ncache_ttl_minutes = 3\ndisabled_steps = [\"clouds\"]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if c.World.Seed != 42 {
		t.Fatalf("seed = %d, want 42", c.World.Seed)
	}

	sc := c.Service(discardLogger())
	if sc.MaxConcurrent != 8 {
		t.Fatalf("max concurrent = %d, want 8", sc.MaxConcurrent)
	}
	if sc.CacheTTL != 3*time.Minute {
		t.Fatalf("cache ttl = %v, want 3m", sc.CacheTTL)
	}
	for _, st := range sc.Steps {
		if st.Name() == "clouds" {
			t.Fatalf("disabled step %q still in pipeline", st.Name())
		}
	}
	if len(sc.Steps) != len(DefaultSteps())-1 {
		t.Fatalf("pipeline has %d steps, want %d", len(sc.Steps), len(DefaultSteps())-1)
	}
}
