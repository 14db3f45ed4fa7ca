package trackgroup

import (
	"math"

	"github.com/genricoloni/tracksync/internal/domain"
)

// MinState reduces member states to the group state. No members means nothing
// holds the group back, so the result is HaveEnoughData.
func MinState(states []domain.ReadyState) domain.ReadyState {
	lowest := domain.HaveEnoughData
	for _, s := range states {
		if s < lowest {
			lowest = s
		}
	}
	return lowest
}

// Overlaps reports whether two closed intervals share at least one point
func Overlaps(a, b domain.BufferedRange) bool {
	return !(a.End < b.Start || b.End < a.Start)
}

// Intersect returns every non-empty pairwise overlap of a and b, in a-major order
func Intersect(a, b []domain.BufferedRange) []domain.BufferedRange {
	var out []domain.BufferedRange
	for _, x := range a {
		for _, y := range b {
			if !Overlaps(x, y) {
				continue
			}
			out = append(out, domain.BufferedRange{
				Start: math.Max(x.Start, y.Start),
				End:   math.Min(x.End, y.End),
			})
		}
	}
	return out
}

// Subtract removes the open interior of gap from ranges. Endpoints shared with
// gap are kept so a range ending where the gap starts survives unchanged.
func Subtract(ranges []domain.BufferedRange, gap domain.BufferedRange) []domain.BufferedRange {
	out := make([]domain.BufferedRange, 0, len(ranges))
	for _, r := range ranges {
		if r.End <= gap.Start || r.Start >= gap.End {
			out = append(out, r)
			continue
		}
		if r.Start < gap.Start {
			out = append(out, domain.BufferedRange{Start: r.Start, End: gap.Start})
		}
		if r.End > gap.End {
			out = append(out, domain.BufferedRange{Start: gap.End, End: r.End})
		}
	}
	return out
}
