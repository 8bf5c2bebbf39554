// Package line defines the five thematic lines of the map and their
// corridors. The set of lines is closed: everything that dispatches on a
// line does so through the Line enum and exhaustive tables, so there is
// no "unknown line" failure mode at runtime.
package line

import "fmt"

// Line identifies one of the five thematic lines.
type Line int

const (
	Tech Line = iota
	War
	Population
	Philosophy
	Empire
)

// Count is the number of lines; useful for exhaustive per-line tables.
const Count = 5

// All lists every line in corridor order, top to bottom.
var All = [Count]Line{Tech, War, Population, Philosophy, Empire}

// Braided is the line rendered as a woven triple path.
const Braided = Population

// String returns the canonical lowercase name of the line.
func (l Line) String() string {
	switch l {
	case Tech:
		return "tech"
	case War:
		return "war"
	case Population:
		return "population"
	case Philosophy:
		return "philosophy"
	case Empire:
		return "empire"
	default:
		return fmt.Sprintf("line(%d)", int(l))
	}
}

// Valid reports whether l is one of the five defined lines.
func (l Line) Valid() bool {
	return l >= Tech && l <= Empire
}

// Parse converts a line name to its Line value.
func Parse(name string) (Line, error) {
	switch name {
	case "tech":
		return Tech, nil
	case "war":
		return War, nil
	case "population":
		return Population, nil
	case "philosophy":
		return Philosophy, nil
	case "empire":
		return Empire, nil
	default:
		return 0, fmt.Errorf("unknown line %q", name)
	}
}

// MarshalYAML encodes the line as its name.
func (l Line) MarshalYAML() (interface{}, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid line %d", int(l))
	}
	return l.String(), nil
}

// UnmarshalYAML decodes a line from its name.
func (l *Line) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := Parse(name)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
