// Package diagram orchestrates the geometry pipeline: station placement
// followed by path synthesis, with the whole result memoized. Placement
// and path generation are treated as one expensive pure recomputation:
// there is no incremental update algorithm, so the engine caches results
// keyed on the station set and the scale parameters and recomputes
// wholesale on any change.
package diagram

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"

	"github.com/gadsdencode/CivMap-sub000/config"
	"github.com/gadsdencode/CivMap-sub000/layout"
	"github.com/gadsdencode/CivMap-sub000/line"
	"github.com/gadsdencode/CivMap-sub000/route"
	"github.com/gadsdencode/CivMap-sub000/station"
	"github.com/gadsdencode/CivMap-sub000/timescale"
)

// Layout is the complete geometric output for one station set: every
// station with resolved coordinates plus the path strings for all five
// lines.
type Layout struct {
	Stations []layout.Placed
	Paths    map[line.Line]route.LinePaths
}

// StationByID returns the placed station with the given id, if any.
func (l *Layout) StationByID(id string) (layout.Placed, bool) {
	for _, s := range l.Stations {
		if s.ID == id {
			return s, true
		}
	}
	return layout.Placed{}, false
}

// Engine builds Layouts and caches them.
type Engine struct {
	placer  *layout.Placer
	builder *route.Builder
	scale   *timescale.Scale

	mu    sync.Mutex
	cache map[string]*Layout
}

// NewEngine wires an engine from a validated config.
func NewEngine(cfg *config.Config) (*Engine, error) {
	corridors, err := cfg.CorridorTable()
	if err != nil {
		return nil, err
	}
	if err := corridors.Validate(); err != nil {
		return nil, err
	}
	scale, err := cfg.Scale()
	if err != nil {
		return nil, err
	}
	return &Engine{
		placer:  layout.NewPlacer(cfg),
		builder: route.NewBuilder(cfg, corridors, scale),
		scale:   scale,
		cache:   map[string]*Layout{},
	}, nil
}

// Scale exposes the engine's time scale for callers that need to map
// years to canvas positions (jump-to-year navigation, rulers).
func (e *Engine) Scale() *timescale.Scale {
	return e.scale
}

// Corridors returns the corridor table the engine lays out against.
func (e *Engine) Corridors() line.Corridors {
	return e.builder.Corridors()
}

// Build returns the layout for the station set, computing it on first
// sight and serving the cached result afterwards.
func (e *Engine) Build(stations []station.Station) *Layout {
	key := fingerprint(stations, e.scale)

	e.mu.Lock()
	if cached, ok := e.cache[key]; ok {
		e.mu.Unlock()
		return cached
	}
	e.mu.Unlock()

	corridors := e.builder.Corridors()
	placed := e.placer.Place(stations, corridors, e.scale)
	result := &Layout{
		Stations: placed,
		Paths:    e.builder.Paths(placed),
	}

	e.mu.Lock()
	e.cache[key] = result
	e.mu.Unlock()
	return result
}

// fingerprint hashes the layout-relevant station fields together with
// the scale parameters. Narrative fields are excluded: editing a summary
// must not invalidate the geometry.
func fingerprint(stations []station.Station, scale *timescale.Scale) string {
	h := sha256.New()
	buf := make([]byte, 8)
	for _, s := range stations {
		h.Write([]byte(s.ID))
		binary.LittleEndian.PutUint64(buf, uint64(int64(s.Year)))
		h.Write(buf)
		for _, l := range s.Lines {
			h.Write([]byte{byte(l)})
		}
		h.Write([]byte{0, byte(s.Significance)})
	}
	h.Write([]byte(scale.Fingerprint()))
	return hex.EncodeToString(h.Sum(nil))
}
