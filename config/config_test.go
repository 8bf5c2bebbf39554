package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gadsdencode/CivMap-sub000/line"
)

// TestDefault checks the standard configuration is internally valid.
func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Canvas.Width != 8000 || cfg.Canvas.Height != 1000 {
		t.Errorf("default canvas = %vx%v, want 8000x1000", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Zoom.Min != 0.05 || cfg.Zoom.Max != 1.0 {
		t.Errorf("default zoom bounds = [%v, %v]", cfg.Zoom.Min, cfg.Zoom.Max)
	}
	if len(cfg.Corridors) != line.Count {
		t.Errorf("default corridor list has %d entries", len(cfg.Corridors))
	}
}

// TestLoad_EmptyPathReturnsDefaults checks the no-file path.
func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Canvas.Width != 8000 {
		t.Errorf("canvas width = %v, want the default", cfg.Canvas.Width)
	}
}

// TestLoad_PartialFileFillsDefaults checks that an explicit setting
// survives and everything omitted falls back.
func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	content := []byte("canvas:\n  width: 4000\nlabels:\n  min_gap: 20\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Canvas.Width != 4000 {
		t.Errorf("canvas width = %v, want the configured 4000", cfg.Canvas.Width)
	}
	if cfg.Canvas.Height != 1000 {
		t.Errorf("canvas height = %v, want the default 1000", cfg.Canvas.Height)
	}
	if cfg.Labels.MinGap != 20 {
		t.Errorf("label gap = %v, want the configured 20", cfg.Labels.MinGap)
	}
	if cfg.Labels.Window != 150 {
		t.Errorf("label window = %v, want the default 150", cfg.Labels.Window)
	}
}

// TestLoad_RejectsInvalid covers file-level failures.
func TestLoad_RejectsInvalid(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("Load accepted a missing file")
		}
	})

	t.Run("Invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		content := []byte("zoom:\n  min: 2.0\n  max: 0.5\n")
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("writing config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load accepted inverted zoom bounds")
		}
	})

	t.Run("Bad anchor table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "anchors.yaml")
		content := []byte("anchors:\n  - year: 0\n    position: 0.5\n  - year: 100\n    position: 1\n")
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("writing config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load accepted an anchor table not starting at 0")
		}
	})
}

// TestValidate_Bounds spot-checks the scalar guards.
func TestValidate_Bounds(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Negative canvas", func(c *Config) { c.Canvas.Width = -1 }},
		{"Zoom max above one", func(c *Config) { c.Zoom.Max = 1.5 }},
		{"Zero collision threshold", func(c *Config) { c.Collision.ThresholdX = -70 }},
		{"Pullback at one", func(c *Config) { c.Curve.Pullback = 1 }},
		{"Negative attempts", func(c *Config) { c.Collision.MaxAttempts = -1 }},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			cfg := Default()
			m.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted a broken config")
			}
		})
	}
}

// TestCorridorTable converts the list form into the line-indexed table.
func TestCorridorTable(t *testing.T) {
	t.Run("Default list converts", func(t *testing.T) {
		cfg := Default()
		table, err := cfg.CorridorTable()
		if err != nil {
			t.Fatalf("CorridorTable failed: %v", err)
		}
		for _, l := range line.All {
			if table.Get(l).Line != l {
				t.Errorf("table entry for %s holds %s", l, table.Get(l).Line)
			}
		}
	})

	t.Run("Duplicate corridor rejected", func(t *testing.T) {
		cfg := Default()
		cfg.Corridors[1] = cfg.Corridors[0]
		if _, err := cfg.CorridorTable(); err == nil {
			t.Error("CorridorTable accepted a duplicate line")
		}
	})

	t.Run("Short list rejected", func(t *testing.T) {
		cfg := Default()
		cfg.Corridors = cfg.Corridors[:3]
		if _, err := cfg.CorridorTable(); err == nil {
			t.Error("CorridorTable accepted a partial corridor list")
		}
	})
}

// TestScale builds the time scale from the config.
func TestScale(t *testing.T) {
	cfg := Default()
	scale, err := cfg.Scale()
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	if scale.Width() != cfg.Canvas.Width {
		t.Errorf("scale width = %v, want %v", scale.Width(), cfg.Canvas.Width)
	}
	if scale.StartYear() != -10000 || scale.EndYear() != 2025 {
		t.Errorf("scale range = %d..%d, want -10000..2025", scale.StartYear(), scale.EndYear())
	}
}
