// Package route turns placed stations into the smooth per-line paths of
// the map, expressed in the standard 2D path mini-language (M/L/C
// commands) that any vector renderer consumes directly.
package route

import (
	"strconv"
	"strings"

	"github.com/gadsdencode/CivMap-sub000/geometry"
)

// levelTolerance is how close two waypoint y values must be for the
// segment between them to be drawn as a straight line. Corridor runs sit
// at exactly equal y; the tolerance only absorbs float noise.
const levelTolerance = 1.0

// SmoothPath synthesizes a single smooth curve through the waypoints
// with a horizontal tangent at every one of them, so the line departs
// and arrives at each station dead level and never overshoots
// vertically. Level runs become straight segments, which render crisper
// along a corridor. Fewer than two waypoints yields an empty path:
// there is nothing to draw, and that is not an error.
func SmoothPath(points []geometry.Point, pullback float64) string {
	if len(points) < 2 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(coord(points[0].X))
	b.WriteByte(' ')
	b.WriteString(coord(points[0].Y))

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if geometry.Abs(cur.Y-prev.Y) <= levelTolerance {
			b.WriteString(" L ")
			b.WriteString(coord(cur.X))
			b.WriteByte(' ')
			b.WriteString(coord(cur.Y))
			continue
		}
		// Both control points stay at their endpoint's y, offset
		// horizontally into the span: forced horizontal tangents.
		dx := (cur.X - prev.X) * pullback
		b.WriteString(" C ")
		b.WriteString(coord(prev.X + dx))
		b.WriteByte(' ')
		b.WriteString(coord(prev.Y))
		b.WriteString(", ")
		b.WriteString(coord(cur.X - dx))
		b.WriteByte(' ')
		b.WriteString(coord(cur.Y))
		b.WriteString(", ")
		b.WriteString(coord(cur.X))
		b.WriteByte(' ')
		b.WriteString(coord(cur.Y))
	}
	return b.String()
}

// OffsetPoints returns a copy of the waypoints shifted vertically by dy.
// The braid strands are built this way: same x sequence, constant y
// offset, no separate layout pass.
func OffsetPoints(points []geometry.Point, dy float64) []geometry.Point {
	out := make([]geometry.Point, len(points))
	for i, p := range points {
		out[i] = geometry.Point{X: p.X, Y: p.Y + dy}
	}
	return out
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
