// Package station defines the event records the map is built from and
// the catalog backends that supply them: a YAML dataset file for small
// hand-edited sets and a SQLite store for larger catalogs. The geometry
// packages only ever see the id, year, lines and significance; the
// narrative fields ride along untouched for the presentation layer.
package station

import (
	"fmt"

	"github.com/gadsdencode/CivMap-sub000/line"
)

// Significance classifies how a station is rendered and ranked.
type Significance int

const (
	Normal Significance = iota
	Minor
	Major
	Hub
	Crisis
	Current
)

// String returns the canonical lowercase name of the significance.
func (s Significance) String() string {
	switch s {
	case Normal:
		return "normal"
	case Minor:
		return "minor"
	case Major:
		return "major"
	case Hub:
		return "hub"
	case Crisis:
		return "crisis"
	case Current:
		return "current"
	default:
		return fmt.Sprintf("significance(%d)", int(s))
	}
}

// ParseSignificance converts a significance name to its value.
func ParseSignificance(name string) (Significance, error) {
	switch name {
	case "", "normal":
		return Normal, nil
	case "minor":
		return Minor, nil
	case "major":
		return Major, nil
	case "hub":
		return Hub, nil
	case "crisis":
		return Crisis, nil
	case "current":
		return Current, nil
	default:
		return 0, fmt.Errorf("unknown significance %q", name)
	}
}

// MarshalYAML encodes the significance as its name.
func (s Significance) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes a significance from its name.
func (s *Significance) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseSignificance(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Station is one event on the map. Lines is an ordered set: the first
// entry is the station's primary line, whose corridor fixes the
// station's vertical position.
type Station struct {
	ID           string       `yaml:"id"`
	Year         int          `yaml:"year"`
	Lines        []line.Line  `yaml:"lines"`
	Significance Significance `yaml:"significance"`

	// Narrative content, opaque to the geometry engine.
	Title   string `yaml:"title,omitempty"`
	Summary string `yaml:"summary,omitempty"`
}

// Primary returns the station's primary line.
func (s Station) Primary() line.Line {
	return s.Lines[0]
}

// OnLine reports whether the station's ordered line set includes l.
func (s Station) OnLine(l line.Line) bool {
	for _, sl := range s.Lines {
		if sl == l {
			return true
		}
	}
	return false
}

// Validate checks a single station record.
func (s Station) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("station has empty id")
	}
	if len(s.Lines) == 0 {
		return fmt.Errorf("station %s: no lines assigned", s.ID)
	}
	seen := map[line.Line]bool{}
	for _, l := range s.Lines {
		if !l.Valid() {
			return fmt.Errorf("station %s: invalid line %d", s.ID, int(l))
		}
		if seen[l] {
			return fmt.Errorf("station %s: duplicate line %s", s.ID, l)
		}
		seen[l] = true
	}
	return nil
}

// ValidateSet checks a full station set: every record valid, ids unique.
func ValidateSet(stations []Station) error {
	ids := make(map[string]bool, len(stations))
	for _, s := range stations {
		if err := s.Validate(); err != nil {
			return err
		}
		if ids[s.ID] {
			return fmt.Errorf("duplicate station id %s", s.ID)
		}
		ids[s.ID] = true
	}
	return nil
}
