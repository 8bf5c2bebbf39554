package timescale

import (
	"math"
	"testing"
)

// TestYearToX_AnchorInterpolation checks interpolation between anchors.
func TestYearToX_AnchorInterpolation(t *testing.T) {
	scale, err := New([]Anchor{
		{Year: -10000, Position: 0.0},
		{Year: 0, Position: 0.3},
		{Year: 2025, Position: 1.0},
	}, 8000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Run("Exact anchor years", func(t *testing.T) {
		cases := []struct {
			year int
			want float64
		}{
			{-10000, 0},
			{0, 2400}, // 0.3 * 8000
			{2025, 8000},
		}
		for _, c := range cases {
			got := scale.YearToX(c.year)
			if got != c.want {
				t.Errorf("YearToX(%d) = %v, want %v", c.year, got, c.want)
			}
		}
	})

	t.Run("Midpoint between anchors", func(t *testing.T) {
		// -5000 is halfway between -10000 and 0, so halfway between
		// positions 0 and 0.3.
		got := scale.YearToX(-5000)
		want := 0.15 * 8000
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("YearToX(-5000) = %v, want %v", got, want)
		}
	})

	t.Run("Out-of-range years clamp", func(t *testing.T) {
		if got := scale.YearToX(-20000); got != 0 {
			t.Errorf("YearToX(-20000) = %v, want 0 (left edge)", got)
		}
		if got := scale.YearToX(3000); got != 8000 {
			t.Errorf("YearToX(3000) = %v, want 8000 (right edge)", got)
		}
	})
}

// TestYearToX_Monotonic sweeps the default table and checks the mapping
// never decreases.
func TestYearToX_Monotonic(t *testing.T) {
	scale, err := New(DefaultAnchors(), 8000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	prev := math.Inf(-1)
	for year := -10500; year <= 2500; year += 7 {
		x := scale.YearToX(year)
		if x < prev {
			t.Fatalf("YearToX not monotonic: x(%d) = %v < previous %v", year, x, prev)
		}
		if x < 0 || x > scale.Width() {
			t.Fatalf("YearToX(%d) = %v outside [0, %v]", year, x, scale.Width())
		}
		prev = x
	}
}

// TestYearToX_DenseErasGetMoreRoom checks the point of the anchor table:
// a recent century spans more pixels than an ancient one.
func TestYearToX_DenseErasGetMoreRoom(t *testing.T) {
	scale, err := New(DefaultAnchors(), 8000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ancient := scale.YearToX(-8900) - scale.YearToX(-9000)
	recent := scale.YearToX(2000) - scale.YearToX(1900)
	if recent <= ancient {
		t.Errorf("recent century spans %v, ancient century spans %v; want recent > ancient", recent, ancient)
	}
}

// TestValidate_RejectsMalformedTables covers every table invariant.
func TestValidate_RejectsMalformedTables(t *testing.T) {
	cases := []struct {
		name    string
		anchors []Anchor
	}{
		{"Too few anchors", []Anchor{{Year: 0, Position: 0}}},
		{"First position not zero", []Anchor{{Year: 0, Position: 0.1}, {Year: 10, Position: 1}}},
		{"Last position not one", []Anchor{{Year: 0, Position: 0}, {Year: 10, Position: 0.9}}},
		{"Years not increasing", []Anchor{{Year: 0, Position: 0}, {Year: 0, Position: 1}}},
		{"Positions not increasing", []Anchor{
			{Year: 0, Position: 0}, {Year: 5, Position: 0.5}, {Year: 10, Position: 0.5}, {Year: 20, Position: 1},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := Validate(c.anchors); err == nil {
				t.Errorf("Validate accepted malformed table %v", c.anchors)
			}
		})
	}

	if err := Validate(DefaultAnchors()); err != nil {
		t.Errorf("Validate rejected the default table: %v", err)
	}
}

// TestNew_RejectsBadWidth checks the width guard.
func TestNew_RejectsBadWidth(t *testing.T) {
	if _, err := New(DefaultAnchors(), 0); err == nil {
		t.Error("New accepted zero width")
	}
	if _, err := New(DefaultAnchors(), -100); err == nil {
		t.Error("New accepted negative width")
	}
}

// TestFingerprint_ChangesWithInputs checks the cache key covers both the
// table and the width.
func TestFingerprint_ChangesWithInputs(t *testing.T) {
	a, _ := New(DefaultAnchors(), 8000)
	b, _ := New(DefaultAnchors(), 4000)
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("fingerprints equal despite different widths")
	}

	altered := DefaultAnchors()
	altered[1].Year++
	c, err := New(altered, 8000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("fingerprints equal despite different anchor tables")
	}

	d, _ := New(DefaultAnchors(), 8000)
	if a.Fingerprint() != d.Fingerprint() {
		t.Error("fingerprints differ for identical inputs")
	}
}
