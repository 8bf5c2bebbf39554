package layout

import (
	"sort"

	"github.com/gadsdencode/CivMap-sub000/config"
	"github.com/gadsdencode/CivMap-sub000/geometry"
)

// Priority ranks a label by how the user is interacting with its
// station. Higher-priority labels are displaced less when labels crowd.
type Priority int

const (
	PriorityDefault  Priority = 1
	PriorityHovered  Priority = 2
	PrioritySelected Priority = 3
)

// LabelCandidate is one visible label: its anchor position and its
// interaction priority. Which labels are visible at the current zoom is
// the caller's decision.
type LabelCandidate struct {
	StationID string
	X         float64
	TopY      float64
	Priority  Priority
}

// Labeler separates vertically overlapping labels.
type Labeler struct {
	window float64
	minGap float64
}

// NewLabeler builds a Labeler from the labels section of the config.
func NewLabeler(cfg *config.Config) *Labeler {
	return &Labeler{window: cfg.Labels.Window, minGap: cfg.Labels.MinGap}
}

// Place computes a downward offset per label so that no two labels
// within the horizontal window overlap vertically by more than the
// minimum gap. Greedy single pass in x-order: each label only dodges
// labels placed before it, so the result is pairwise non-overlapping
// relative to earlier labels rather than globally optimal. Recomputed
// wholesale whenever the visible set or the zoom changes.
func (lb *Labeler) Place(candidates []LabelCandidate) map[string]float64 {
	offsets := make(map[string]float64, len(candidates))
	if len(candidates) == 0 {
		return offsets
	}
	if len(candidates) == 1 {
		offsets[candidates[0].StationID] = 0
		return offsets
	}

	sorted := make([]LabelCandidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].StationID < sorted[j].StationID
	})

	type settled struct {
		x, y float64
	}
	done := make([]settled, 0, len(sorted))

	for _, cand := range sorted {
		var offset float64
		for _, prev := range done {
			if geometry.Abs(cand.X-prev.x) > lb.window {
				continue
			}
			candY := cand.TopY + offset
			if geometry.Abs(candY-prev.y) < lb.minGap {
				// Minimum extra shift that clears this neighbour.
				offset += prev.y + lb.minGap - candY
			}
		}
		if offset < 0 {
			offset = 0
		}
		// Higher-priority labels absorb less of the displacement.
		offset /= float64(cand.Priority)

		offsets[cand.StationID] = offset
		done = append(done, settled{x: cand.X, y: cand.TopY + offset})
	}
	return offsets
}
