package graph

import (
	"slices"

	"github.com/fsh/qplanarity/pkg/errors"
	"github.com/fsh/qplanarity/pkg/geom"
	"github.com/fsh/qplanarity/pkg/planar"
)

// Puzzle is the serialised form of one puzzle instance.
type Puzzle struct {
	ID        string     `json:"id,omitempty"`
	Vertices  int        `json:"vertices"`
	Edges     []Edge     `json:"edges"`
	Positions []Position `json:"positions,omitempty"`
}

// Edge is an edge as a two-element array of vertex indices.
type Edge [2]int

// Position is a vertex position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FromGraph builds a puzzle from a generated graph and its vertex positions.
// Positions may be nil.
func FromGraph(id string, g *planar.Graph, positions []geom.Point) Puzzle {
	p := Puzzle{
		ID:       id,
		Vertices: g.Vertices,
		Edges:    make([]Edge, len(g.Edges)),
	}
	for i, e := range g.Edges {
		p.Edges[i] = Edge{e.A, e.B}
	}
	if positions != nil {
		p.Positions = make([]Position, len(positions))
		for i, pt := range positions {
			p.Positions[i] = Position{X: pt.X, Y: pt.Y}
		}
	}
	return p
}

// PlanarEdges returns the edges in canonical form.
func (p Puzzle) PlanarEdges() []planar.Edge {
	edges := make([]planar.Edge, len(p.Edges))
	for i, e := range p.Edges {
		edges[i] = planar.NewEdge(e[0], e[1])
	}
	return edges
}

// Points returns the positions as points, or nil when none are stored.
func (p Puzzle) Points() []geom.Point {
	if p.Positions == nil {
		return nil
	}
	pts := make([]geom.Point, len(p.Positions))
	for i, pos := range p.Positions {
		pts[i] = geom.Pt(pos.X, pos.Y)
	}
	return pts
}

// HasPositions reports whether the puzzle carries a drawing.
func (p Puzzle) HasPositions() bool {
	return len(p.Positions) > 0
}

// Validate checks the edge list and, when present, the positions.
// Failures are INVALID_INPUT errors.
func (p Puzzle) Validate() error {
	for _, e := range p.Edges {
		if e[0] == e[1] {
			return errors.New(errors.ErrCodeInvalidInput, "self-loop on vertex %d", e[0])
		}
	}
	if err := planar.ValidateEdges(p.Vertices, p.PlanarEdges()); err != nil {
		return err
	}
	if len(p.Positions) == 0 {
		return nil
	}
	if len(p.Positions) != p.Vertices {
		return errors.New(errors.ErrCodeInvalidInput,
			"%d positions for %d vertices", len(p.Positions), p.Vertices)
	}
	for i, pos := range p.Positions {
		if err := errors.ValidateFinite("position x", pos.X); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "vertex %d", i)
		}
		if err := errors.ValidateFinite("position y", pos.Y); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "vertex %d", i)
		}
	}
	return nil
}

// Graph converts the puzzle back to a planar graph. Boundary is not stored
// in files and is left empty.
func (p Puzzle) Graph() (*planar.Graph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	edges := p.PlanarEdges()
	slices.SortFunc(edges, planar.Compare)
	return &planar.Graph{Vertices: p.Vertices, Edges: edges}, nil
}
