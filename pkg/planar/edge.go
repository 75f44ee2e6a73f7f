package planar

import (
	"cmp"
	"fmt"
)

// Edge is an undirected edge between two distinct vertices.
// Build edges with [NewEdge] so that A < B always holds.
type Edge struct {
	A, B int
}

// NewEdge returns the canonical edge between a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Has reports whether v is an endpoint of e.
func (e Edge) Has(v int) bool {
	return e.A == v || e.B == v
}

// Other returns the endpoint of e that is not v.
// The result is meaningless when v is not an endpoint.
func (e Edge) Other(v int) int {
	return e.A + e.B - v
}

// Adjacent reports whether e and o share an endpoint.
func (e Edge) Adjacent(o Edge) bool {
	return e.Has(o.A) || e.Has(o.B)
}

// Valid reports whether e is canonical, non-degenerate and within 0..n-1.
func (e Edge) Valid(n int) bool {
	return e.A >= 0 && e.A < e.B && e.B < n
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d)", e.A, e.B)
}

// Compare orders edges by A, then B.
func Compare(a, b Edge) int {
	if c := cmp.Compare(a.A, b.A); c != 0 {
		return c
	}
	return cmp.Compare(a.B, b.B)
}
