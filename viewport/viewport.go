// Package viewport manages the visible sub-rectangle of the fixed map
// canvas: clamping, point-anchored zoom, panning, centering and animated
// transitions. Every operation sanitizes its input: out-of-bounds
// requests are clamped, never rejected.
package viewport

import (
	"github.com/gadsdencode/CivMap-sub000/config"
	"github.com/gadsdencode/CivMap-sub000/geometry"
)

// Bounds captures the canvas size and zoom limits every viewport
// operation clamps against. Pure value; safe to copy.
type Bounds struct {
	CanvasWidth  float64
	CanvasHeight float64
	MinZoom      float64 // smallest viewport size, as a fraction of the canvas
	MaxZoom      float64 // largest viewport size, as a fraction of the canvas
}

// NewBounds builds viewport bounds from the config.
func NewBounds(cfg *config.Config) Bounds {
	return Bounds{
		CanvasWidth:  cfg.Canvas.Width,
		CanvasHeight: cfg.Canvas.Height,
		MinZoom:      cfg.Zoom.Min,
		MaxZoom:      cfg.Zoom.Max,
	}
}

// Full returns the viewport covering the whole canvas.
func (b Bounds) Full() geometry.Rect {
	return geometry.Rect{X: 0, Y: 0, Width: b.CanvasWidth, Height: b.CanvasHeight}
}

// Clamp forces the rectangle inside the canvas and the zoom limits:
// width and height first, then position. Idempotent.
func (b Bounds) Clamp(r geometry.Rect) geometry.Rect {
	r.Width = geometry.Clamp(r.Width, b.MinZoom*b.CanvasWidth, b.MaxZoom*b.CanvasWidth)
	r.Height = geometry.Clamp(r.Height, b.MinZoom*b.CanvasHeight, b.MaxZoom*b.CanvasHeight)
	r.X = geometry.Clamp(r.X, 0, b.CanvasWidth-r.Width)
	r.Y = geometry.Clamp(r.Y, 0, b.CanvasHeight-r.Height)
	return r
}

// ZoomAtPoint scales the rectangle by factor while keeping anchor at the
// same relative position inside it, so the zoom focuses under the cursor
// rather than the canvas center. The result is clamped.
func (b Bounds) ZoomAtPoint(r geometry.Rect, factor float64, anchor geometry.Point) geometry.Rect {
	if factor <= 0 || r.IsEmpty() {
		return b.Clamp(r)
	}
	relX := (anchor.X - r.X) / r.Width
	relY := (anchor.Y - r.Y) / r.Height

	r.Width *= factor
	r.Height *= factor
	r.X = anchor.X - relX*r.Width
	r.Y = anchor.Y - relY*r.Height
	return b.Clamp(r)
}

// PanBy translates the rectangle and clamps it.
func (b Bounds) PanBy(r geometry.Rect, dx, dy float64) geometry.Rect {
	r.X += dx
	r.Y += dy
	return b.Clamp(r)
}

// CenterOn repositions the rectangle so point sits at its center, then
// clamps.
func (b Bounds) CenterOn(r geometry.Rect, point geometry.Point) geometry.Rect {
	r.X = point.X - r.Width/2
	r.Y = point.Y - r.Height/2
	return b.Clamp(r)
}
