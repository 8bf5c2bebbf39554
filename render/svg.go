// Package render emits the map as an SVG document. It is a pure
// consumer of the geometry outputs: placed stations, per-line path
// strings, label offsets and the current viewport rectangle.
package render

import (
	"fmt"
	"strings"

	"github.com/gadsdencode/CivMap-sub000/config"
	"github.com/gadsdencode/CivMap-sub000/diagram"
	"github.com/gadsdencode/CivMap-sub000/geometry"
	"github.com/gadsdencode/CivMap-sub000/layout"
	"github.com/gadsdencode/CivMap-sub000/line"
	"github.com/gadsdencode/CivMap-sub000/station"
)

// lineColors is the exhaustive per-line palette, indexed by line.Line.
var lineColors = [line.Count]string{
	line.Tech:       "#2f80e0",
	line.War:        "#d64541",
	line.Population: "#2dae6e",
	line.Philosophy: "#8e6bbf",
	line.Empire:     "#d4a017",
}

// markerRadius maps significance to station marker size.
var markerRadius = map[station.Significance]float64{
	station.Normal:  7,
	station.Minor:   5,
	station.Major:   10,
	station.Hub:     13,
	station.Crisis:  11,
	station.Current: 13,
}

// SVGRenderer renders a computed layout into an SVG document.
type SVGRenderer struct {
	canvasWidth  float64
	canvasHeight float64
	extension    float64
	background   string
	strokeWidth  float64
	braidStroke  float64
}

// NewSVGRenderer builds a renderer from the config.
func NewSVGRenderer(cfg *config.Config) *SVGRenderer {
	return &SVGRenderer{
		canvasWidth:  cfg.Canvas.Width,
		canvasHeight: cfg.Canvas.Height,
		extension:    cfg.Convergence.Extension,
		background:   "#14121c",
		strokeWidth:  8,
		braidStroke:  3,
	}
}

// Render produces the full SVG document. The viewBox is the given
// viewport rectangle, so the renderer shows exactly the region the
// viewport component decided on. The document itself is wider than the
// canvas by the terminal extension, which deliberately runs past the
// right canvas edge.
func (r *SVGRenderer) Render(lay *diagram.Layout, labels map[string]float64, view geometry.Rect) string {
	var b strings.Builder

	docWidth := r.canvasWidth + r.extension
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		num(view.X), num(view.Y), num(view.Width), num(view.Height))
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
		num(docWidth), num(r.canvasHeight), r.background)

	r.writeLines(&b, lay)
	r.writeStations(&b, lay)
	r.writeLabels(&b, lay, labels)

	b.WriteString("</svg>\n")
	return b.String()
}

func (r *SVGRenderer) writeLines(b *strings.Builder, lay *diagram.Layout) {
	for _, l := range line.All {
		paths := lay.Paths[l]
		if paths.Main == "" {
			continue
		}
		color := lineColors[l]
		fmt.Fprintf(b, `<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`+"\n",
			paths.Main, color, num(r.strokeWidth))
		for _, braid := range []string{paths.Braid1, paths.Braid2} {
			if braid == "" {
				continue
			}
			fmt.Fprintf(b, `<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-opacity="0.6"/>`+"\n",
				braid, color, num(r.braidStroke))
		}
	}
}

func (r *SVGRenderer) writeStations(b *strings.Builder, lay *diagram.Layout) {
	for _, s := range lay.Stations {
		radius := markerRadius[s.Significance]
		fill := lineColors[s.Primary()]
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="#ffffff" stroke-width="2" data-station="%s"/>`+"\n",
			num(s.Coords.X), num(s.Coords.Y), num(radius), fill, s.ID)
		if s.WasOffset {
			// Small tick back to the year position, the UI hint that the
			// marker was nudged off its exact year.
			fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="2" fill="#ffffff" fill-opacity="0.5"/>`+"\n",
				num(s.Coords.X), num(s.Coords.Y))
		}
	}
}

func (r *SVGRenderer) writeLabels(b *strings.Builder, lay *diagram.Layout, labels map[string]float64) {
	for _, s := range lay.Stations {
		offset, visible := labels[s.ID]
		if !visible {
			continue
		}
		text := s.Title
		if text == "" {
			text = s.ID
		}
		fmt.Fprintf(b, `<text x="%s" y="%s" fill="#e8e4da" font-size="14" text-anchor="middle">%s</text>`+"\n",
			num(s.Coords.X), num(s.Coords.Y-labelLift+offset), escapeText(text))
	}
}

// labelLift raises label baselines above their station markers; the
// labeler's offsets push individual labels back down from there.
const labelLift = 20

func num(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func escapeText(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}

// VisibleLabels derives the label candidates for the current view: a
// station's label is visible when the station lies inside the viewport
// and its significance clears the zoom-dependent threshold. The labeler
// itself takes over from there.
func VisibleLabels(lay *diagram.Layout, view geometry.Rect, zoomLevel float64, priorityFor func(string) int) []layout.LabelCandidate {
	var out []layout.LabelCandidate
	for _, s := range lay.Stations {
		if !view.Contains(s.Coords) {
			continue
		}
		if !labelVisibleAtZoom(s.Significance, zoomLevel) {
			continue
		}
		out = append(out, layout.LabelCandidate{
			StationID: s.ID,
			X:         s.Coords.X,
			TopY:      s.Coords.Y - labelLift,
			Priority:  layout.Priority(priorityFor(s.ID)),
		})
	}
	return out
}

// labelVisibleAtZoom gates labels by significance. ZoomLevel 1 means the
// whole canvas is visible, so at large zoom levels only the hubs and the
// current-day station read; everything shows once the view narrows to a
// fifth of the canvas or less.
func labelVisibleAtZoom(sig station.Significance, zoomLevel float64) bool {
	switch {
	case zoomLevel <= 0.2:
		return true
	case zoomLevel <= 0.5:
		return sig != station.Minor
	default:
		return sig == station.Hub || sig == station.Major || sig == station.Current
	}
}
