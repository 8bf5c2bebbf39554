package route

import (
	"strconv"
	"strings"
	"testing"

	"github.com/gadsdencode/CivMap-sub000/config"
	"github.com/gadsdencode/CivMap-sub000/geometry"
	"github.com/gadsdencode/CivMap-sub000/layout"
	"github.com/gadsdencode/CivMap-sub000/line"
	"github.com/gadsdencode/CivMap-sub000/station"
)

func newTestBuilder(t *testing.T) (*Builder, *config.Config) {
	t.Helper()
	cfg := config.Default()
	scale, err := cfg.Scale()
	if err != nil {
		t.Fatalf("building scale: %v", err)
	}
	return NewBuilder(cfg, line.DefaultCorridors(), scale), cfg
}

func placedStation(id string, l line.Line, x, y float64, extra ...line.Line) layout.Placed {
	return layout.Placed{
		Station: station.Station{ID: id, Lines: append([]line.Line{l}, extra...)},
		Coords:  geometry.Point{X: x, Y: y},
	}
}

// TestWaypoints_EmptyCorridor checks that a line with no stations still
// gets a complete run from the left edge to the terminal extension.
func TestWaypoints_EmptyCorridor(t *testing.T) {
	b, cfg := newTestBuilder(t)
	points := b.Waypoints(line.Tech, nil)

	if len(points) != 4 {
		t.Fatalf("got %d waypoints, want 4 (edge, alignment, convergence, extension)", len(points))
	}

	corridorY := 0.18 * cfg.Canvas.Height
	if points[0] != (geometry.Point{X: 0, Y: corridorY}) {
		t.Errorf("first waypoint = %v, want left edge at corridor height %v", points[0], corridorY)
	}

	convX := cfg.Canvas.Width
	convY := cfg.Canvas.Height / 2 // Tech has convergence offset 0
	if points[2] != (geometry.Point{X: convX, Y: convY}) {
		t.Errorf("convergence waypoint = %v, want (%v, %v)", points[2], convX, convY)
	}
	if points[3].X != convX+cfg.Convergence.Extension {
		t.Errorf("extension waypoint x = %v, want %v past the canvas edge", points[3].X, convX+cfg.Convergence.Extension)
	}
	if points[1].X != convX-cfg.Convergence.Alignment || points[1].Y != convY {
		t.Errorf("alignment waypoint = %v, want (%v, %v)", points[1], convX-cfg.Convergence.Alignment, convY)
	}
}

// TestWaypoints_StationsSortedByX checks station ordering regardless of
// input order.
func TestWaypoints_StationsSortedByX(t *testing.T) {
	b, _ := newTestBuilder(t)
	placed := []layout.Placed{
		placedStation("late", line.Tech, 5000, 180),
		placedStation("early", line.Tech, 1000, 180),
		placedStation("mid", line.Tech, 3000, 180),
	}

	points := b.Waypoints(line.Tech, placed)
	// Points 1..3 are the stations.
	xs := []float64{points[1].X, points[2].X, points[3].X}
	if xs[0] != 1000 || xs[1] != 3000 || xs[2] != 5000 {
		t.Errorf("station waypoints not in x order: %v", xs)
	}
}

// TestWaypoints_IncludesSecondaryStations checks that a station whose
// primary corridor is elsewhere still appears on every line it belongs
// to, at its placed position.
func TestWaypoints_IncludesSecondaryStations(t *testing.T) {
	b, _ := newTestBuilder(t)
	// Primary line War, placed on the War corridor, but also on Tech.
	shared := placedStation("shared", line.War, 2000, 340, line.Tech)
	placed := []layout.Placed{shared}

	points := b.Waypoints(line.Tech, placed)
	found := false
	for _, p := range points {
		if p == shared.Coords {
			found = true
		}
	}
	if !found {
		t.Errorf("shared station's position %v missing from the tech waypoints %v", shared.Coords, points)
	}

	// And it must not appear on a line it does not belong to.
	for _, p := range b.Waypoints(line.Empire, placed) {
		if p == shared.Coords {
			t.Error("shared station leaked onto a line it is not part of")
		}
	}
}

// TestWaypoints_ConvergenceOffsets checks the terminal bundle: every line
// arrives at the same x with its own vertical offset.
func TestWaypoints_ConvergenceOffsets(t *testing.T) {
	b, cfg := newTestBuilder(t)
	corridors := line.DefaultCorridors()
	for _, l := range line.All {
		points := b.Waypoints(l, nil)
		conv := points[len(points)-2]
		if conv.X != cfg.Canvas.Width {
			t.Errorf("line %s converges at x=%v, want %v", l, conv.X, cfg.Canvas.Width)
		}
		want := cfg.Canvas.Height/2 + corridors.Get(l).ConvergenceOffset
		if conv.Y != want {
			t.Errorf("line %s converges at y=%v, want %v", l, conv.Y, want)
		}
	}
}

// TestLinePath_BraidsOnlyOnBraidedLine checks strand assignment.
func TestLinePath_BraidsOnlyOnBraidedLine(t *testing.T) {
	b, _ := newTestBuilder(t)
	for _, l := range line.All {
		paths := b.LinePath(l, nil)
		if paths.Main == "" {
			t.Errorf("line %s has an empty main path", l)
		}
		if l == line.Braided {
			if paths.Braid1 == "" || paths.Braid2 == "" {
				t.Errorf("braided line missing strands: %+v", paths)
			}
			if paths.Braid1 == paths.Braid2 {
				t.Error("braid strands identical; they must be offset in opposite directions")
			}
		} else if paths.Braid1 != "" || paths.Braid2 != "" {
			t.Errorf("line %s has braid strands", l)
		}
	}
}

// TestLinePath_Continuity checks every main path starts with a move at
// the canvas left edge and ends at the terminal extension point.
func TestLinePath_Continuity(t *testing.T) {
	b, cfg := newTestBuilder(t)
	corridors := line.DefaultCorridors()
	placed := []layout.Placed{
		placedStation("writing", line.Tech, 800, 180),
		placedStation("ww2", line.War, 7400, 340),
	}

	for _, l := range line.All {
		main := b.LinePath(l, placed).Main
		if !strings.HasPrefix(main, "M 0 ") {
			t.Errorf("line %s path starts %q, want a move at x=0", l, main[:12])
		}
		endX := cfg.Canvas.Width + cfg.Convergence.Extension
		endY := cfg.Canvas.Height/2 + corridors.Get(l).ConvergenceOffset
		suffix := strconv.FormatFloat(endX, 'f', -1, 64) + " " + strconv.FormatFloat(endY, 'f', -1, 64)
		if !strings.HasSuffix(main, suffix) {
			t.Errorf("line %s path ends %q, want the extension point %q", l, main[len(main)-20:], suffix)
		}
	}
}

// TestPaths_CoversEveryLine checks the full path set is exhaustive and
// well-formed.
func TestPaths_CoversEveryLine(t *testing.T) {
	b, _ := newTestBuilder(t)
	paths := b.Paths(nil)
	if len(paths) != line.Count {
		t.Fatalf("got %d path entries, want %d", len(paths), line.Count)
	}
	for _, l := range line.All {
		p, ok := paths[l]
		if !ok {
			t.Errorf("no path entry for line %s", l)
			continue
		}
		if !strings.HasPrefix(p.Main, "M ") {
			t.Errorf("line %s path %q does not start with a move", l, p.Main)
		}
	}
}
