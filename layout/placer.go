// Package layout positions stations on the canvas and separates the
// labels of whichever stations are currently visible.
package layout

import (
	"sort"

	"github.com/gadsdencode/CivMap-sub000/config"
	"github.com/gadsdencode/CivMap-sub000/geometry"
	"github.com/gadsdencode/CivMap-sub000/line"
	"github.com/gadsdencode/CivMap-sub000/station"
	"github.com/gadsdencode/CivMap-sub000/timescale"
)

// Placed is a station with resolved canvas coordinates.
type Placed struct {
	station.Station
	Coords    geometry.Point
	WasOffset bool // x was nudged away from its year position
	Exhausted bool // attempt budget ran out; position is best-effort
}

// Placer computes station coordinates and resolves collisions between
// them. Resolution is horizontal-only: a station's y is fixed by its
// primary line's corridor and moving it off the corridor would break the
// "station sits exactly on its line" contract the whole diagram depends
// on.
type Placer struct {
	thresholdX   float64
	thresholdY   float64
	offsetStep   float64
	maxAttempts  int
	canvasWidth  float64
	canvasHeight float64
}

// NewPlacer builds a Placer from the collision section of the config.
func NewPlacer(cfg *config.Config) *Placer {
	return &Placer{
		thresholdX:   cfg.Collision.ThresholdX,
		thresholdY:   cfg.Collision.ThresholdY,
		offsetStep:   cfg.Collision.OffsetStep,
		maxAttempts:  cfg.Collision.MaxAttempts,
		canvasWidth:  cfg.Canvas.Width,
		canvasHeight: cfg.Canvas.Height,
	}
}

// Place computes coordinates for the full station set. It is a wholesale
// recomputation: callers re-run it whenever the set or the scale
// changes, and the result is never patched incrementally.
//
// Stations are processed in (x, y, id) order. The order decides which
// station keeps a contested position, so it is a hard requirement for
// repeatable layouts, not an optimization.
func (p *Placer) Place(stations []station.Station, corridors line.Corridors, scale *timescale.Scale) []Placed {
	placed := make([]Placed, len(stations))
	for i, s := range stations {
		placed[i] = Placed{
			Station: s,
			Coords: geometry.Point{
				X: scale.YearToX(s.Year),
				Y: corridors.Get(s.Primary()).Y(p.canvasHeight),
			},
		}
	}

	sort.Slice(placed, func(i, j int) bool {
		a, b := placed[i], placed[j]
		if a.Coords.X != b.Coords.X {
			return a.Coords.X < b.Coords.X
		}
		if a.Coords.Y != b.Coords.Y {
			return a.Coords.Y < b.Coords.Y
		}
		return a.ID < b.ID
	})

	taken := make([]geometry.Point, 0, len(placed))
	for i := range placed {
		p.resolve(&placed[i], taken)
		taken = append(taken, placed[i].Coords)
	}
	return placed
}

// resolve nudges the candidate horizontally until it clears every
// already-placed station, alternating +step, -step, +2*step, -2*step.
// If the attempt budget runs out the last attempted position is accepted
// and flagged: collisions are rare by construction (the threshold is
// small relative to the canvas) and a slightly crowded station beats an
// unbounded loop.
func (p *Placer) resolve(cand *Placed, taken []geometry.Point) {
	origX := cand.Coords.X
	x := origX

	for attempt := 0; p.collides(x, cand.Coords.Y, taken); attempt++ {
		if attempt >= p.maxAttempts {
			cand.Exhausted = true
			break
		}
		// attempt 0 -> +step, 1 -> -step, 2 -> +2*step, 3 -> -2*step, ...
		magnitude := float64(attempt/2+1) * p.offsetStep
		if attempt%2 == 1 {
			magnitude = -magnitude
		}
		x = origX + magnitude
	}

	cand.Coords.X = geometry.Clamp(x, 0, p.canvasWidth)
	cand.WasOffset = cand.Coords.X != origX
}

// collides reports whether (x, y) sits within the collision threshold of
// any taken position in both axes simultaneously.
func (p *Placer) collides(x, y float64, taken []geometry.Point) bool {
	for _, t := range taken {
		if geometry.Abs(t.X-x) < p.thresholdX && geometry.Abs(t.Y-y) < p.thresholdY {
			return true
		}
	}
	return false
}
