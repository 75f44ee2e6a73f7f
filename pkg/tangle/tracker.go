package tangle

import (
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/fsh/qplanarity/pkg/errors"
	"github.com/fsh/qplanarity/pkg/geom"
	"github.com/fsh/qplanarity/pkg/planar"
)

// CrossFunc reports whether segment p1-p2 meets segment p3-p4.
type CrossFunc func(p1, p2, p3, p4 geom.Point) bool

type edgeSet map[planar.Edge]struct{}

// Tracker maintains the crossing relation of a drawn graph.
// Create one with [New].
type Tracker struct {
	n          int
	edges      []planar.Edge
	positions  []geom.Point
	adjacency  [][]planar.Edge
	collisions map[planar.Edge]edgeSet
	untangled  edgeSet
	index      *geom.Index[planar.Edge]

	cross   CrossFunc
	workers int
	logger  *log.Logger
}

// Option configures a [Tracker].
type Option func(*Tracker)

// WithWorkers splits the initial pairwise scan across n goroutines.
// Values below 2 keep the scan on the calling goroutine.
func WithWorkers(n int) Option {
	return func(t *Tracker) { t.workers = n }
}

// WithCrossFunc replaces [geom.SegmentsCross] as the collision primitive.
func WithCrossFunc(fn CrossFunc) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.cross = fn
		}
	}
}

// WithLogger sets the logger used for debug output on tangle transitions.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// New builds a tracker for n vertices, the given edges and one position per
// vertex, computing the initial crossings by testing every pair of edges.
//
// Edges must be canonical (see [planar.NewEdge]), within 0..n-1 and unique,
// and positions must be finite with len(positions) == n; otherwise New fails
// with an INVALID_INPUT error.
func New(n int, edges []planar.Edge, positions []geom.Point, opts ...Option) (*Tracker, error) {
	if err := planar.ValidateEdges(n, edges); err != nil {
		return nil, err
	}
	if len(positions) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "got %d positions for %d vertices", len(positions), n)
	}
	for v, p := range positions {
		if err := validatePoint(p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "position of vertex %d", v)
		}
	}

	t := &Tracker{
		n:          n,
		edges:      slices.Clone(edges),
		positions:  slices.Clone(positions),
		adjacency:  planar.Adjacency(n, edges),
		collisions: make(map[planar.Edge]edgeSet),
		untangled:  make(edgeSet, len(edges)),
		index:      geom.NewIndex[planar.Edge](),
		cross:      geom.SegmentsCross,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.initialize()
	return t, nil
}

func (t *Tracker) initialize() {
	start := time.Now()
	for _, e := range t.edges {
		t.index.Set(e, t.Segment(e).Bounds())
	}

	partners := t.scan()
	for i, list := range partners {
		for _, xy := range list {
			t.link(t.edges[i], xy)
		}
	}
	for _, e := range t.edges {
		if _, tangled := t.collisions[e]; !tangled {
			t.untangled[e] = struct{}{}
		}
	}

	t.logger.Debug("initialized crossings",
		"edges", len(t.edges),
		"tangled", len(t.collisions),
		"workers", max(t.workers, 1),
		"duration", time.Since(start).Round(time.Microsecond))
}

// scan returns, for every edge i, the edges j > i crossing it.
func (t *Tracker) scan() [][]planar.Edge {
	partners := make([][]planar.Edge, len(t.edges))
	row := func(i int) {
		ab := t.edges[i]
		for _, xy := range t.edges[i+1:] {
			if ab.Adjacent(xy) {
				continue
			}
			if t.crosses(ab, xy) {
				partners[i] = append(partners[i], xy)
			}
		}
	}

	if t.workers < 2 {
		for i := range t.edges {
			row(i)
		}
		return partners
	}

	var g errgroup.Group
	g.SetLimit(t.workers)
	for i := range t.edges {
		g.Go(func() error {
			row(i)
			return nil
		})
	}
	_ = g.Wait()
	return partners
}

func (t *Tracker) link(a, b planar.Edge) {
	for _, pair := range [2][2]planar.Edge{{a, b}, {b, a}} {
		set, ok := t.collisions[pair[0]]
		if !ok {
			set = make(edgeSet)
			t.collisions[pair[0]] = set
		}
		set[pair[1]] = struct{}{}
	}
}

// UpdateVertex moves vertex v to p and repairs the crossing state of every
// edge incident to v. It returns the progress after the move.
//
// An index outside 0..n-1 fails with UNKNOWN_VERTEX and a non-finite position
// with INVALID_PARAMETER; in both cases nothing changes.
func (t *Tracker) UpdateVertex(v int, p geom.Point) (Progress, error) {
	if v < 0 || v >= t.n {
		return t.Progress(), errors.UnknownVertex(v, t.n)
	}
	if err := validatePoint(p); err != nil {
		return t.Progress(), err
	}

	t.positions[v] = p
	incident := t.adjacency[v]
	for _, ab := range incident {
		t.index.Set(ab, t.Segment(ab).Bounds())
	}

	for _, ab := range incident {
		current := t.crossingsOf(ab)

		for xy := range t.collisions[ab] {
			if _, still := current[xy]; !still {
				t.detach(xy, ab)
			}
		}

		if len(current) == 0 {
			if _, tangled := t.collisions[ab]; tangled {
				delete(t.collisions, ab)
				t.logger.Debug("edge untangled", "edge", ab)
			}
			t.untangled[ab] = struct{}{}
			continue
		}

		t.collisions[ab] = current
		delete(t.untangled, ab)
		for xy := range current {
			set, ok := t.collisions[xy]
			if !ok {
				t.logger.Debug("tangling up", "edge", xy)
				set = make(edgeSet)
				t.collisions[xy] = set
				delete(t.untangled, xy)
			}
			set[ab] = struct{}{}
		}
	}

	return t.Progress(), nil
}

// crossingsOf re-tests ab against every edge whose bounding rectangle meets
// its own.
func (t *Tracker) crossingsOf(ab planar.Edge) edgeSet {
	current := make(edgeSet)
	t.index.Search(t.Segment(ab).Bounds(), func(xy planar.Edge) bool {
		if xy != ab && !ab.Adjacent(xy) && t.crosses(ab, xy) {
			current[xy] = struct{}{}
		}
		return true
	})
	return current
}

// detach removes ab from xy's crossings, untangling xy when nothing is left.
func (t *Tracker) detach(xy, ab planar.Edge) {
	set := t.collisions[xy]
	delete(set, ab)
	if len(set) == 0 {
		delete(t.collisions, xy)
		t.untangled[xy] = struct{}{}
		t.logger.Debug("edge untangled", "edge", xy)
	}
}

func (t *Tracker) crosses(ab, xy planar.Edge) bool {
	return t.cross(t.positions[ab.A], t.positions[ab.B], t.positions[xy.A], t.positions[xy.B])
}

// IsSolved reports whether no two edges cross.
func (t *Tracker) IsSolved() bool {
	return len(t.collisions) == 0
}

// Progress returns the current untangled and total edge counts.
func (t *Tracker) Progress() Progress {
	return Progress{
		Untangled: len(t.untangled),
		Total:     len(t.untangled) + len(t.collisions),
	}
}

// Vertices returns the number of vertices.
func (t *Tracker) Vertices() int {
	return t.n
}

// Edges returns every edge in [planar.Compare] order.
func (t *Tracker) Edges() []planar.Edge {
	out := slices.Clone(t.edges)
	slices.SortFunc(out, planar.Compare)
	return out
}

// Incident returns the edges touching v, or nil for an unknown vertex.
func (t *Tracker) Incident(v int) []planar.Edge {
	if v < 0 || v >= t.n {
		return nil
	}
	return slices.Clone(t.adjacency[v])
}

// Position returns the current position of v.
func (t *Tracker) Position(v int) (geom.Point, error) {
	if v < 0 || v >= t.n {
		return geom.Point{}, errors.UnknownVertex(v, t.n)
	}
	return t.positions[v], nil
}

// Positions returns a copy of all vertex positions.
func (t *Tracker) Positions() []geom.Point {
	return slices.Clone(t.positions)
}

// Segment returns the current drawing of e.
func (t *Tracker) Segment(e planar.Edge) geom.Segment {
	return geom.Seg(t.positions[e.A], t.positions[e.B])
}

// Untangled returns the edges crossing nothing, sorted.
func (t *Tracker) Untangled() []planar.Edge {
	return sortedEdges(t.untangled)
}

// Tangled returns the edges with at least one crossing, sorted.
func (t *Tracker) Tangled() []planar.Edge {
	return slices.SortedFunc(maps.Keys(t.collisions), planar.Compare)
}

// Crossings returns the edges currently crossing e, sorted.
func (t *Tracker) Crossings(e planar.Edge) []planar.Edge {
	return sortedEdges(t.collisions[e])
}

// IsTangled reports whether e crosses at least one other edge.
func (t *Tracker) IsTangled(e planar.Edge) bool {
	_, ok := t.collisions[e]
	return ok
}

// CollisionMap returns a copy of the crossing relation. Only tangled edges
// appear as keys; each value is sorted.
func (t *Tracker) CollisionMap() map[planar.Edge][]planar.Edge {
	out := make(map[planar.Edge][]planar.Edge, len(t.collisions))
	for e, set := range t.collisions {
		out[e] = sortedEdges(set)
	}
	return out
}

func sortedEdges(set edgeSet) []planar.Edge {
	return slices.SortedFunc(maps.Keys(set), planar.Compare)
}

func validatePoint(p geom.Point) error {
	if err := errors.ValidateFinite("x", p.X); err != nil {
		return err
	}
	return errors.ValidateFinite("y", p.Y)
}
