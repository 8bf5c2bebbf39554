// Package config loads the map's tuning tables: canvas dimensions, zoom
// limits, collision thresholds, the time-scale anchor table and the
// corridor table. Every table is validated once here, at startup; the
// geometry packages assume valid tables and never re-check per call.
package config

import (
	"fmt"
	"os"

	"github.com/gadsdencode/CivMap-sub000/line"
	"github.com/gadsdencode/CivMap-sub000/timescale"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration for one map instance.
type Config struct {
	Canvas struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"canvas"`

	Zoom struct {
		// Min and Max bound the viewport size as fractions of the canvas.
		Min float64 `yaml:"min"`
		Max float64 `yaml:"max"`
	} `yaml:"zoom"`

	Collision struct {
		ThresholdX  float64 `yaml:"threshold_x"`
		ThresholdY  float64 `yaml:"threshold_y"`
		OffsetStep  float64 `yaml:"offset_step"`
		MaxAttempts int     `yaml:"max_attempts"`
	} `yaml:"collision"`

	Labels struct {
		Window float64 `yaml:"window"`  // horizontal proximity window
		MinGap float64 `yaml:"min_gap"` // minimum vertical gap between labels
	} `yaml:"labels"`

	Curve struct {
		Pullback    float64 `yaml:"pullback"`     // control-point offset as a fraction of the span
		BraidOffset float64 `yaml:"braid_offset"` // vertical offset of the braid strands
	} `yaml:"curve"`

	Convergence struct {
		Alignment float64 `yaml:"alignment"` // pre-convergence alignment distance
		Extension float64 `yaml:"extension"` // terminal extension past the convergence point
	} `yaml:"convergence"`

	Anchors   []timescale.Anchor `yaml:"anchors"`
	Corridors []line.Corridor    `yaml:"corridors"`
}

// Default returns the standard configuration: the 8000x1000 canvas, the
// hand-tuned anchor table and the default corridor spread.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file, fills in defaults for anything omitted
// and validates the result. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Canvas.Width == 0 {
		c.Canvas.Width = 8000
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = 1000
	}
	if c.Zoom.Min == 0 {
		c.Zoom.Min = 0.05
	}
	if c.Zoom.Max == 0 {
		c.Zoom.Max = 1.0
	}
	if c.Collision.ThresholdX == 0 {
		c.Collision.ThresholdX = 70
	}
	if c.Collision.ThresholdY == 0 {
		c.Collision.ThresholdY = 40
	}
	if c.Collision.OffsetStep == 0 {
		c.Collision.OffsetStep = 80
	}
	if c.Collision.MaxAttempts == 0 {
		c.Collision.MaxAttempts = 8
	}
	if c.Labels.Window == 0 {
		c.Labels.Window = 150
	}
	if c.Labels.MinGap == 0 {
		c.Labels.MinGap = 16
	}
	if c.Curve.Pullback == 0 {
		c.Curve.Pullback = 0.45
	}
	if c.Curve.BraidOffset == 0 {
		c.Curve.BraidOffset = 6
	}
	if c.Convergence.Alignment == 0 {
		c.Convergence.Alignment = 220
	}
	if c.Convergence.Extension == 0 {
		c.Convergence.Extension = 300
	}
	if len(c.Anchors) == 0 {
		c.Anchors = timescale.DefaultAnchors()
	}
	if len(c.Corridors) == 0 {
		def := line.DefaultCorridors()
		c.Corridors = def[:]
	}
}

// Validate checks every configuration invariant. Called once at startup;
// a failure here is a configuration error, not a runtime fault.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %vx%v must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Zoom.Min <= 0 || c.Zoom.Max > 1 || c.Zoom.Min > c.Zoom.Max {
		return fmt.Errorf("zoom bounds [%v, %v] must satisfy 0 < min <= max <= 1", c.Zoom.Min, c.Zoom.Max)
	}
	if c.Collision.ThresholdX <= 0 || c.Collision.ThresholdY <= 0 {
		return fmt.Errorf("collision thresholds must be positive")
	}
	if c.Collision.OffsetStep <= 0 || c.Collision.MaxAttempts <= 0 {
		return fmt.Errorf("collision step and attempt budget must be positive")
	}
	if c.Curve.Pullback <= 0 || c.Curve.Pullback >= 1 {
		return fmt.Errorf("curve pullback %v outside (0,1)", c.Curve.Pullback)
	}
	if err := timescale.Validate(c.Anchors); err != nil {
		return fmt.Errorf("anchor table: %w", err)
	}
	corridors, err := c.CorridorTable()
	if err != nil {
		return err
	}
	if err := corridors.Validate(); err != nil {
		return fmt.Errorf("corridor table: %w", err)
	}
	return nil
}

// CorridorTable converts the configured corridor list into the
// line-indexed table the geometry packages use.
func (c *Config) CorridorTable() (line.Corridors, error) {
	var table line.Corridors
	if len(c.Corridors) != line.Count {
		return table, fmt.Errorf("corridor table has %d entries, want %d", len(c.Corridors), line.Count)
	}
	seen := map[line.Line]bool{}
	for _, cor := range c.Corridors {
		if !cor.Line.Valid() {
			return table, fmt.Errorf("corridor with invalid line %d", int(cor.Line))
		}
		if seen[cor.Line] {
			return table, fmt.Errorf("duplicate corridor for line %s", cor.Line)
		}
		seen[cor.Line] = true
		table[cor.Line] = cor
	}
	return table, nil
}

// Scale builds the time scale from the configured anchor table.
func (c *Config) Scale() (*timescale.Scale, error) {
	return timescale.New(c.Anchors, c.Canvas.Width)
}
