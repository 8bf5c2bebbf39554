package line

import "fmt"

// Corridor is the fixed horizontal band assigned to one line. YFraction
// positions the corridor vertically as a fraction of the canvas height;
// ConvergenceOffset separates the line from its neighbours inside the
// terminal bundle, where all five lines would otherwise overlap.
type Corridor struct {
	Line              Line    `yaml:"line"`
	YFraction         float64 `yaml:"y_fraction"`
	ConvergenceOffset float64 `yaml:"convergence_offset"`
}

// Corridors holds one corridor per line, indexed by Line.
type Corridors [Count]Corridor

// DefaultCorridors returns the standard corridor table: five evenly
// spread bands with distinct convergence offsets.
func DefaultCorridors() Corridors {
	return Corridors{
		Tech:       {Line: Tech, YFraction: 0.18, ConvergenceOffset: 0},
		War:        {Line: War, YFraction: 0.34, ConvergenceOffset: 14},
		Population: {Line: Population, YFraction: 0.50, ConvergenceOffset: 28},
		Philosophy: {Line: Philosophy, YFraction: 0.66, ConvergenceOffset: 42},
		Empire:     {Line: Empire, YFraction: 0.82, ConvergenceOffset: 56},
	}
}

// Get returns the corridor for a line.
func (c Corridors) Get(l Line) Corridor {
	return c[l]
}

// Y returns the corridor's absolute vertical position on a canvas of the
// given height.
func (c Corridor) Y(canvasHeight float64) float64 {
	return c.YFraction * canvasHeight
}

// Validate checks the corridor table invariants: each entry belongs to
// its index, y fractions are inside (0,1), and both the y fractions and
// the convergence offsets are pairwise distinct. Duplicates would make
// two corridors coincide on the canvas or inside the terminal bundle.
func (c Corridors) Validate() error {
	for i, cor := range c {
		if cor.Line != Line(i) {
			return fmt.Errorf("corridor %d holds line %s", i, cor.Line)
		}
		if cor.YFraction <= 0 || cor.YFraction >= 1 {
			return fmt.Errorf("corridor %s: y fraction %v outside (0,1)", cor.Line, cor.YFraction)
		}
		if cor.ConvergenceOffset < 0 {
			return fmt.Errorf("corridor %s: negative convergence offset %v", cor.Line, cor.ConvergenceOffset)
		}
	}
	for i := 0; i < Count; i++ {
		for j := i + 1; j < Count; j++ {
			if c[i].YFraction == c[j].YFraction {
				return fmt.Errorf("corridors %s and %s share y fraction %v", c[i].Line, c[j].Line, c[i].YFraction)
			}
			if c[i].ConvergenceOffset == c[j].ConvergenceOffset {
				return fmt.Errorf("corridors %s and %s share convergence offset %v", c[i].Line, c[j].Line, c[i].ConvergenceOffset)
			}
		}
	}
	return nil
}
