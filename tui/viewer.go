// Package tui is the interactive terminal viewer: a coarse projection
// of the map driven by the same viewport component the SVG output uses,
// covering pan, anchored zoom, station cycling and animated recentering.
package tui

import (
	"fmt"
	"time"

	"github.com/gadsdencode/CivMap-sub000/config"
	"github.com/gadsdencode/CivMap-sub000/diagram"
	"github.com/gadsdencode/CivMap-sub000/geometry"
	"github.com/gadsdencode/CivMap-sub000/line"
	"github.com/gadsdencode/CivMap-sub000/viewport"

	"github.com/gdamore/tcell/v2"
)

// lineColors is the terminal palette, indexed by line.Line.
var lineColors = [line.Count]tcell.Color{
	line.Tech:       tcell.ColorBlue,
	line.War:        tcell.ColorRed,
	line.Population: tcell.ColorGreen,
	line.Philosophy: tcell.ColorPurple,
	line.Empire:     tcell.ColorYellow,
}

// frameEvent carries an animation frame into the tcell event loop, so
// the viewport rectangle is only ever applied on the loop goroutine.
type frameEvent struct {
	when time.Time
	view geometry.Rect
}

// When returns the frame timestamp.
func (e *frameEvent) When() time.Time { return e.when }

// Viewer owns one map instance's navigation state and renders it to a
// tcell screen.
type Viewer struct {
	screen   tcell.Screen
	bounds   viewport.Bounds
	state    viewport.State
	layout   *diagram.Layout
	engine   *diagram.Engine
	animator *viewport.Animator

	canvasHeight float64
	canvasWidth  float64
	extension    float64

	selectedIdx int // index into layout.Stations, -1 for none
}

// NewViewer builds a viewer over a computed layout.
func NewViewer(cfg *config.Config, engine *diagram.Engine, lay *diagram.Layout) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	bounds := viewport.NewBounds(cfg)
	v := &Viewer{
		screen:       screen,
		bounds:       bounds,
		state:        bounds.NewState(),
		layout:       lay,
		engine:       engine,
		canvasHeight: cfg.Canvas.Height,
		canvasWidth:  cfg.Canvas.Width,
		extension:    cfg.Convergence.Extension,
		selectedIdx:  -1,
	}
	v.animator = viewport.NewAnimator(viewport.TickerScheduler{Interval: time.Second / 30})
	return v, nil
}

// Run enters the event loop and blocks until the user quits.
func (v *Viewer) Run() error {
	defer v.screen.Fini()
	v.screen.EnableMouse()

	for {
		v.draw()
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *frameEvent:
			v.state.View = ev.view
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			v.handleMouse(ev)
		}
	}
}

// handleKey returns true when the viewer should exit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.pan(-1, 0)
	case tcell.KeyRight:
		v.pan(1, 0)
	case tcell.KeyUp:
		v.pan(0, -1)
	case tcell.KeyDown:
		v.pan(0, 1)
	case tcell.KeyTab:
		v.cycleStation(1)
	case tcell.KeyBacktab:
		v.cycleStation(-1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'h':
			v.pan(-1, 0)
		case 'l':
			v.pan(1, 0)
		case 'k':
			v.pan(0, -1)
		case 'j':
			v.pan(0, 1)
		case '+', '=':
			v.animator.Cancel()
			v.state = v.bounds.ApplyZoomIn(v.state)
		case '-', '_':
			v.animator.Cancel()
			v.state = v.bounds.ApplyZoomOut(v.state)
		case 'n':
			v.cycleStation(1)
		case 'p':
			v.cycleStation(-1)
		case 'f':
			v.animateTo(v.bounds.Full())
		case 'g':
			// Jump to the start of the timeline.
			start := geometry.Point{X: 0, Y: v.canvasHeight / 2}
			v.animateTo(v.bounds.CenterOn(v.state.View, start))
		case 'e':
			// The terminal bundle.
			conv := geometry.Point{X: v.engine.Scale().YearToX(v.engine.Scale().EndYear()), Y: v.canvasHeight / 2}
			v.animateTo(v.bounds.CenterOn(v.state.View, conv))
		}
	}
	return false
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	world := v.screenToWorld(x, y)

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		v.animator.Cancel()
		v.state = v.bounds.ApplyZoomAt(v.state, 0.8, world)
	case ev.Buttons()&tcell.WheelDown != 0:
		v.animator.Cancel()
		v.state = v.bounds.ApplyZoomAt(v.state, 1.25, world)
	case ev.Buttons()&tcell.Button1 != 0:
		if idx := v.stationAt(x, y); idx >= 0 {
			v.selectedIdx = idx
			v.state = v.bounds.ApplySelect(v.state, v.layout.Stations[idx].ID)
			v.animateTo(v.bounds.CenterOn(v.state.View, v.layout.Stations[idx].Coords))
		}
	default:
		if idx := v.stationAt(x, y); idx >= 0 {
			v.state = v.bounds.ApplyHover(v.state, v.layout.Stations[idx].ID)
		} else {
			v.state = v.bounds.ApplyHover(v.state, "")
		}
	}
}

// pan cancels any running animation first: a gesture and an animation
// must never drive the viewport at the same time.
func (v *Viewer) pan(dx, dy float64) {
	v.animator.Cancel()
	v.state = v.bounds.ApplyPan(v.state, dx, dy)
}

func (v *Viewer) cycleStation(step int) {
	n := len(v.layout.Stations)
	if n == 0 {
		return
	}
	v.selectedIdx = ((v.selectedIdx+step)%n + n) % n
	target := v.layout.Stations[v.selectedIdx]
	v.state = v.bounds.ApplySelect(v.state, target.ID)
	v.animateTo(v.bounds.CenterOn(v.state.View, target.Coords))
}

// animateTo eases the viewport to the target rectangle. Frames arrive
// back on the event loop as frameEvents.
func (v *Viewer) animateTo(target geometry.Rect) {
	v.animator.AnimateTo(v.state.View, target, 350*time.Millisecond,
		func(r geometry.Rect) {
			v.screen.PostEvent(&frameEvent{when: time.Now(), view: r})
		},
		nil,
	)
}

// mapRows returns the screen height reserved for the map, above the
// status bar.
func (v *Viewer) mapRows() int {
	_, h := v.screen.Size()
	if h <= 2 {
		return 1
	}
	return h - 2
}

func (v *Viewer) worldToScreen(p geometry.Point) (int, int) {
	w, _ := v.screen.Size()
	rows := v.mapRows()
	sx := int((p.X - v.state.View.X) / v.state.View.Width * float64(w))
	sy := int((p.Y - v.state.View.Y) / v.state.View.Height * float64(rows))
	return sx, sy
}

func (v *Viewer) screenToWorld(x, y int) geometry.Point {
	w, _ := v.screen.Size()
	rows := v.mapRows()
	if w == 0 || rows == 0 {
		return geometry.Point{}
	}
	return geometry.Point{
		X: v.state.View.X + float64(x)/float64(w)*v.state.View.Width,
		Y: v.state.View.Y + float64(y)/float64(rows)*v.state.View.Height,
	}
}

// stationAt finds a station within one cell of the screen position.
func (v *Viewer) stationAt(x, y int) int {
	for i, s := range v.layout.Stations {
		sx, sy := v.worldToScreen(s.Coords)
		if abs(sx-x) <= 1 && abs(sy-y) <= 1 {
			return i
		}
	}
	return -1
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, _ := v.screen.Size()
	rows := v.mapRows()

	// Corridor runs: one row of line characters per visible corridor.
	for _, l := range line.All {
		corY := v.engine.Corridors().Get(l).Y(v.canvasHeight)
		_, sy := v.worldToScreen(geometry.Point{X: v.state.View.X, Y: corY})
		if sy < 0 || sy >= rows {
			continue
		}
		style := tcell.StyleDefault.Foreground(lineColors[l])
		for sx := 0; sx < w; sx++ {
			worldX := v.state.View.X + float64(sx)/float64(w)*v.state.View.Width
			if worldX < 0 || worldX > v.canvasWidth+v.extension {
				continue
			}
			v.screen.SetContent(sx, sy, '─', nil, style)
		}
	}

	// Station markers over the corridor runs.
	for _, s := range v.layout.Stations {
		sx, sy := v.worldToScreen(s.Coords)
		if sx < 0 || sx >= w || sy < 0 || sy >= rows {
			continue
		}
		style := tcell.StyleDefault.Foreground(lineColors[s.Primary()])
		marker := '●'
		switch s.ID {
		case v.state.Selected:
			style = style.Reverse(true).Bold(true)
		case v.state.Hovered:
			style = style.Bold(true)
			marker = '◉'
		}
		v.screen.SetContent(sx, sy, marker, nil, style)
	}

	v.drawStatus(w, rows)
	v.screen.Show()
}

func (v *Viewer) drawStatus(w, rows int) {
	focus := v.state.Selected
	if focus == "" {
		focus = v.state.Hovered
	}
	var info string
	if s, ok := v.layout.StationByID(focus); ok {
		title := s.Title
		if title == "" {
			title = s.ID
		}
		info = fmt.Sprintf("%s (%s, %d)", title, s.Primary(), s.Year)
	}
	status := fmt.Sprintf(" zoom %3.0f%%  %s", v.state.ZoomLevel(v.bounds)*100, info)
	help := " arrows/hjkl pan  +/- zoom  wheel zoom  tab/n/p stations  f fit  g start  e end  q quit"

	putLine(v.screen, 0, rows, status, tcell.StyleDefault.Reverse(true), w)
	putLine(v.screen, 0, rows+1, help, tcell.StyleDefault.Dim(true), w)
}

func putLine(screen tcell.Screen, x, y int, text string, style tcell.Style, width int) {
	col := x
	for _, r := range text {
		if col >= width {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
