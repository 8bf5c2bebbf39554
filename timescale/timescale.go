// Package timescale maps years to horizontal canvas positions.
//
// History is not uniformly dense in events, so a generic transform (log,
// sqrt) cannot allocate space well across 12,000 years. Instead the scale
// interpolates piecewise-linearly over a hand-tuned table of anchors, each
// pinning a year to a fraction of the canvas width. Eras with more
// stations simply get anchors spaced further apart in position-space.
package timescale

import (
	"fmt"
	"sort"
)

// Anchor pins a year to a fraction of the canvas width.
type Anchor struct {
	Year     int     `yaml:"year"`
	Position float64 `yaml:"position"`
}

// Scale is an immutable piecewise-linear year-to-x mapping.
// Construct with New; the zero value is not usable.
type Scale struct {
	anchors []Anchor
	width   float64
}

// DefaultAnchors is the hand-tuned density table for the default
// -10000..2025 timeline. Later eras get progressively more room.
func DefaultAnchors() []Anchor {
	return []Anchor{
		{Year: -10000, Position: 0.0},
		{Year: -5000, Position: 0.05},
		{Year: -3000, Position: 0.10},
		{Year: -1500, Position: 0.16},
		{Year: -500, Position: 0.22},
		{Year: 0, Position: 0.30},
		{Year: 500, Position: 0.36},
		{Year: 1000, Position: 0.42},
		{Year: 1500, Position: 0.52},
		{Year: 1800, Position: 0.64},
		{Year: 1900, Position: 0.74},
		{Year: 1950, Position: 0.82},
		{Year: 2000, Position: 0.93},
		{Year: 2025, Position: 1.0},
	}
}

// New builds a Scale over the given anchor table and canvas width.
// The table must be strictly increasing in both year and position, start
// at position 0 and end at position 1. A malformed table is a
// configuration error and is rejected here, at startup, rather than
// surfacing per-call.
func New(anchors []Anchor, canvasWidth float64) (*Scale, error) {
	if err := Validate(anchors); err != nil {
		return nil, err
	}
	if canvasWidth <= 0 {
		return nil, fmt.Errorf("canvas width must be positive, got %v", canvasWidth)
	}
	copied := make([]Anchor, len(anchors))
	copy(copied, anchors)
	return &Scale{anchors: copied, width: canvasWidth}, nil
}

// Validate checks the anchor table invariants without building a Scale.
func Validate(anchors []Anchor) error {
	if len(anchors) < 2 {
		return fmt.Errorf("anchor table needs at least 2 anchors, got %d", len(anchors))
	}
	if anchors[0].Position != 0 {
		return fmt.Errorf("first anchor position must be 0, got %v", anchors[0].Position)
	}
	if anchors[len(anchors)-1].Position != 1 {
		return fmt.Errorf("last anchor position must be 1, got %v", anchors[len(anchors)-1].Position)
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i].Year <= anchors[i-1].Year {
			return fmt.Errorf("anchor years must be strictly increasing: anchor %d year %d follows %d",
				i, anchors[i].Year, anchors[i-1].Year)
		}
		if anchors[i].Position <= anchors[i-1].Position {
			return fmt.Errorf("anchor positions must be strictly increasing: anchor %d position %v follows %v",
				i, anchors[i].Position, anchors[i-1].Position)
		}
	}
	return nil
}

// StartYear returns the first anchor's year.
func (s *Scale) StartYear() int { return s.anchors[0].Year }

// EndYear returns the last anchor's year.
func (s *Scale) EndYear() int { return s.anchors[len(s.anchors)-1].Year }

// Width returns the canvas width the scale maps onto.
func (s *Scale) Width() float64 { return s.width }

// YearToX maps a year to a horizontal canvas position. Years before the
// first anchor clamp to the left edge, years after the last anchor clamp
// to the right edge. The mapping is monotonically non-decreasing.
func (s *Scale) YearToX(year int) float64 {
	if year <= s.anchors[0].Year {
		return s.anchors[0].Position * s.width
	}
	last := s.anchors[len(s.anchors)-1]
	if year >= last.Year {
		return last.Position * s.width
	}

	// Smallest i such that year <= anchors[i].Year. The clamps above
	// guarantee 0 < i < len(anchors).
	i := sort.Search(len(s.anchors), func(i int) bool {
		return year <= s.anchors[i].Year
	})

	lo, hi := s.anchors[i-1], s.anchors[i]
	frac := float64(year-lo.Year) / float64(hi.Year-lo.Year)
	pos := lo.Position + frac*(hi.Position-lo.Position)
	return pos * s.width
}

// Fingerprint returns a value that changes whenever the anchor table or
// canvas width change. Layout caches key on it.
func (s *Scale) Fingerprint() string {
	return fmt.Sprintf("%v|%v", s.anchors, s.width)
}
