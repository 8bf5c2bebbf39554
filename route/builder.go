package route

import (
	"sort"

	"github.com/gadsdencode/CivMap-sub000/config"
	"github.com/gadsdencode/CivMap-sub000/geometry"
	"github.com/gadsdencode/CivMap-sub000/layout"
	"github.com/gadsdencode/CivMap-sub000/line"
	"github.com/gadsdencode/CivMap-sub000/timescale"
)

// LinePaths holds the rendered path strings for one line. Braid1 and
// Braid2 are empty except for the braided line, whose three strands
// together read as a woven motif.
type LinePaths struct {
	Main   string
	Braid1 string
	Braid2 string
}

// Builder assembles waypoints per line and synthesizes their paths.
type Builder struct {
	corridors    line.Corridors
	scale        *timescale.Scale
	canvasHeight float64
	pullback     float64
	braidOffset  float64
	alignment    float64
	extension    float64
}

// NewBuilder wires a Builder from the config, its corridor table and the
// time scale.
func NewBuilder(cfg *config.Config, corridors line.Corridors, scale *timescale.Scale) *Builder {
	return &Builder{
		corridors:    corridors,
		scale:        scale,
		canvasHeight: cfg.Canvas.Height,
		pullback:     cfg.Curve.Pullback,
		braidOffset:  cfg.Curve.BraidOffset,
		alignment:    cfg.Convergence.Alignment,
		extension:    cfg.Convergence.Extension,
	}
}

// Corridors returns the corridor table the builder lays paths against.
func (b *Builder) Corridors() line.Corridors {
	return b.corridors
}

// Waypoints assembles the ordered control points for one line: the
// canvas left edge at corridor height, every placed station the line
// touches sorted by x, then the pre-convergence alignment point, the
// convergence point at the shared terminal year (offset vertically by
// the corridor's convergence offset so the five lines arrive as a
// separated parallel bundle), and finally a terminal extension further
// right at the same height, standing in for the unknown future.
//
// Stations that sit off this corridor because their primary line is
// another one are connected directly, station to station. An earlier
// design snapped the path back to the corridor between such stations;
// that produced visual wobble and was deliberately dropped.
func (b *Builder) Waypoints(l line.Line, placed []layout.Placed) []geometry.Point {
	corridor := b.corridors.Get(l)
	corridorY := corridor.Y(b.canvasHeight)

	points := []geometry.Point{{X: 0, Y: corridorY}}

	var stops []geometry.Point
	for _, p := range placed {
		if p.OnLine(l) {
			stops = append(stops, p.Coords)
		}
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i].X < stops[j].X })
	points = append(points, stops...)

	convX := b.scale.YearToX(b.scale.EndYear())
	convY := b.canvasHeight/2 + corridor.ConvergenceOffset
	points = append(points,
		geometry.Point{X: convX - b.alignment, Y: convY},
		geometry.Point{X: convX, Y: convY},
		geometry.Point{X: convX + b.extension, Y: convY},
	)
	return points
}

// LinePath builds the path strings for one line. Only the braided line
// gets its two extra strands.
func (b *Builder) LinePath(l line.Line, placed []layout.Placed) LinePaths {
	points := b.Waypoints(l, placed)
	paths := LinePaths{Main: SmoothPath(points, b.pullback)}
	if l == line.Braided {
		paths.Braid1 = SmoothPath(OffsetPoints(points, b.braidOffset), b.pullback)
		paths.Braid2 = SmoothPath(OffsetPoints(points, -b.braidOffset), b.pullback)
	}
	return paths
}

// Paths builds the path strings for all five lines.
func (b *Builder) Paths(placed []layout.Placed) map[line.Line]LinePaths {
	out := make(map[line.Line]LinePaths, line.Count)
	for _, l := range line.All {
		out[l] = b.LinePath(l, placed)
	}
	return out
}
