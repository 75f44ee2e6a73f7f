package tangle

import "fmt"

// Progress summarises how far a puzzle is from solved.
type Progress struct {
	Untangled int // Edges crossing nothing
	Total     int // All edges
}

// Tangled returns the number of edges with at least one crossing.
func (p Progress) Tangled() int {
	return p.Total - p.Untangled
}

// Fraction returns Untangled/Total, or 1 for a graph without edges.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Untangled) / float64(p.Total)
}

// Solved reports whether every edge is untangled.
func (p Progress) Solved() bool {
	return p.Untangled == p.Total
}

func (p Progress) String() string {
	return fmt.Sprintf("%d out of %d lines untangled (%.1f%%)", p.Untangled, p.Total, 100*p.Fraction())
}
