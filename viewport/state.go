package viewport

import "github.com/gadsdencode/CivMap-sub000/geometry"

// Zoom step factors for the keyboard/button zoom transitions.
const (
	zoomInFactor  = 0.8
	zoomOutFactor = 1.25
	panFraction   = 0.1
)

// State is the navigation state of one map instance: the current
// viewport plus the interaction focus that feeds label priorities. It is
// a plain value owned by a single controller; all mutation goes through
// the pure transition functions below, which take a state and return the
// next one.
type State struct {
	View     geometry.Rect
	Selected string // station id, empty for none
	Hovered  string // station id, empty for none
}

// NewState returns the initial state: the whole canvas visible, nothing
// focused.
func (b Bounds) NewState() State {
	return State{View: b.Full()}
}

// ApplyZoomIn zooms one step in, anchored at the viewport center.
func (b Bounds) ApplyZoomIn(s State) State {
	s.View = b.ZoomAtPoint(s.View, zoomInFactor, s.View.Center())
	return s
}

// ApplyZoomOut zooms one step out, anchored at the viewport center.
func (b Bounds) ApplyZoomOut(s State) State {
	s.View = b.ZoomAtPoint(s.View, zoomOutFactor, s.View.Center())
	return s
}

// ApplyZoomAt zooms by factor anchored at a canvas point.
func (b Bounds) ApplyZoomAt(s State, factor float64, anchor geometry.Point) State {
	s.View = b.ZoomAtPoint(s.View, factor, anchor)
	return s
}

// ApplyPan shifts the view by the given number of view-fractions: dx=1
// pans a tenth of the current viewport width rightwards.
func (b Bounds) ApplyPan(s State, dx, dy float64) State {
	s.View = b.PanBy(s.View, dx*panFraction*s.View.Width, dy*panFraction*s.View.Height)
	return s
}

// ApplyCenterOn recenters the view on a canvas point.
func (b Bounds) ApplyCenterOn(s State, p geometry.Point) State {
	s.View = b.CenterOn(s.View, p)
	return s
}

// ApplySelect sets the selected station.
func (b Bounds) ApplySelect(s State, stationID string) State {
	s.Selected = stationID
	return s
}

// ApplyHover sets the hovered station.
func (b Bounds) ApplyHover(s State, stationID string) State {
	s.Hovered = stationID
	return s
}

// ZoomLevel reports the current zoom as a fraction of the canvas width;
// 1 means the whole canvas is visible. Label visibility thresholds key
// off this.
func (s State) ZoomLevel(b Bounds) float64 {
	if b.CanvasWidth == 0 {
		return 1
	}
	return s.View.Width / b.CanvasWidth
}

// PriorityFor maps interaction focus to a label priority.
func (s State) PriorityFor(stationID string) int {
	switch {
	case stationID != "" && stationID == s.Selected:
		return 3
	case stationID != "" && stationID == s.Hovered:
		return 2
	default:
		return 1
	}
}
