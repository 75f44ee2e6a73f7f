package planar

import (
	"slices"

	"github.com/fsh/qplanarity/pkg/errors"
)

// Graph is the output of [Generate]: a connected planar graph on the
// vertices 0..Vertices-1.
type Graph struct {
	// Vertices is the number of vertices.
	Vertices int
	// Edges holds every edge exactly once, sorted with [Compare].
	Edges []Edge
	// Boundary holds the edges that formed the outer frontier when generation
	// stopped. They are also part of Edges.
	Boundary []Edge
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// Adjacency returns, for every vertex, the edges incident to it in [Compare]
// order.
func (g *Graph) Adjacency() [][]Edge {
	return Adjacency(g.Vertices, g.Edges)
}

// Adjacency builds per-vertex incidence lists for n vertices. Edges with an
// endpoint outside 0..n-1 are skipped.
func Adjacency(n int, edges []Edge) [][]Edge {
	adj := make([][]Edge, n)
	for _, e := range edges {
		if !e.Valid(n) {
			continue
		}
		adj[e.A] = append(adj[e.A], e)
		adj[e.B] = append(adj[e.B], e)
	}
	for _, list := range adj {
		slices.SortFunc(list, Compare)
	}
	return adj
}

// Degree returns the number of edges incident to v.
func (g *Graph) Degree(v int) int {
	d := 0
	for _, e := range g.Edges {
		if e.Has(v) {
			d++
		}
	}
	return d
}

// Neighbors returns the vertices sharing an edge with v, in ascending order.
func (g *Graph) Neighbors(v int) []int {
	var out []int
	for _, e := range g.Edges {
		if e.Has(v) {
			out = append(out, e.Other(v))
		}
	}
	slices.Sort(out)
	return out
}

// Connected reports whether every vertex is reachable from vertex 0.
// A graph without vertices is considered connected.
func (g *Graph) Connected() bool {
	if g.Vertices == 0 {
		return true
	}
	adj := g.Adjacency()
	seen := make([]bool, g.Vertices)
	stack := []int{0}
	seen[0] = true
	reached := 1
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range adj[v] {
			if w := e.Other(v); !seen[w] {
				seen[w] = true
				reached++
				stack = append(stack, w)
			}
		}
	}
	return reached == g.Vertices
}

// Validate checks that every edge is canonical, in range and unique.
func (g *Graph) Validate() error {
	return ValidateEdges(g.Vertices, g.Edges)
}

// ValidateEdges checks that every edge is canonical, within 0..n-1 and listed
// once. Violations are reported as INVALID_INPUT errors naming the edge.
func ValidateEdges(n int, edges []Edge) error {
	if n < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative vertex count %d", n)
	}
	seen := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		if !e.Valid(n) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid edge %s for %d vertices", e, n)
		}
		if _, dup := seen[e]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate edge %s", e)
		}
		seen[e] = struct{}{}
	}
	return nil
}
