package planar

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fsh/qplanarity/pkg/errors"
)

// Default generator tunables.
const (
	DefaultNodeLimit  = 30
	DefaultDenseness  = 0.3
	DefaultSparseness = 0.6
	DefaultMaxRetries = 1000

	// MinNodeLimit is the size of the starting triangle.
	MinNodeLimit = 3

	// degreeCap makes pivots with more than a couple of interior edges
	// increasingly likely to be rejected.
	degreeCap = 2.0
)

// Rand is the random source used by [Generate].
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Options configures [Generate].
type Options struct {
	// NodeLimit is the number of vertices to generate. Must be at least 3.
	NodeLimit int

	// OutsideLimit is the boundary length contraction aims for.
	// Zero selects round(0.75 * NodeLimit). Otherwise it must be at least 3.
	OutsideLimit int

	// Denseness in [0,1) is the chance of extending a fan by another triangle.
	// Higher values produce clusters of highly connected vertices.
	Denseness float64

	// Sparseness in [0,1) is the chance of extending a contraction walk.
	// Higher values produce larger holes; values close to 1 may stall.
	Sparseness float64

	// MaxRetries bounds every retry loop. Zero selects DefaultMaxRetries.
	MaxRetries int

	// Rand supplies all randomness. When nil, a PCG source seeded with Seed
	// is used.
	Rand Rand

	// Seed seeds the default source when Rand is nil.
	Seed uint64

	// Logger receives progress output. Nil selects log.Default().
	Logger *log.Logger
}

// DefaultOptions returns options with the standard tunables and a fixed seed.
func DefaultOptions() Options {
	return Options{
		NodeLimit:  DefaultNodeLimit,
		Denseness:  DefaultDenseness,
		Sparseness: DefaultSparseness,
		MaxRetries: DefaultMaxRetries,
	}
}

// DefaultOutsideLimit returns round(0.75 * nodeLimit).
func DefaultOutsideLimit(nodeLimit int) int {
	return int(float64(nodeLimit)*0.75 + 0.5)
}

// Validate checks the options without generating anything.
func (o Options) Validate() error {
	if err := errors.ValidateMin("node limit", o.NodeLimit, MinNodeLimit); err != nil {
		return err
	}
	if o.OutsideLimit != 0 {
		if err := errors.ValidateMin("outside limit", o.OutsideLimit, 3); err != nil {
			return err
		}
	}
	if err := errors.ValidateFraction("denseness", o.Denseness); err != nil {
		return err
	}
	if err := errors.ValidateFraction("sparseness", o.Sparseness); err != nil {
		return err
	}
	return errors.ValidateMin("max retries", o.MaxRetries, 0)
}

func (o *Options) setDefaults() {
	if o.OutsideLimit == 0 {
		o.OutsideLimit = DefaultOutsideLimit(o.NodeLimit)
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(o.Seed, o.Seed^0xdeadbeef))
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Generate builds a random connected planar graph with exactly
// opts.NodeLimit vertices. Invalid options fail with an INVALID_PARAMETER
// error before any work is done.
func Generate(opts Options) (*Graph, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.setDefaults()

	start := time.Now()
	opts.Logger.Info("generating random graph",
		"nodes", opts.NodeLimit,
		"outside", opts.OutsideLimit)

	g := newGenerator(opts)
	g.run()

	out := g.graph()
	opts.Logger.Info("graph generated",
		"nodes", out.Vertices,
		"interior", out.EdgeCount()-len(out.Boundary),
		"outside", len(out.Boundary),
		"edges", out.EdgeCount(),
		"duration", time.Since(start).Round(time.Microsecond))
	return out, nil
}

type generator struct {
	opts     Options
	rng      Rand
	logger   *log.Logger
	boundary *edgeSet
	edges    *edgeSet
	degree   []int // interior edges per vertex
	n        int
}

func newGenerator(opts Options) *generator {
	return &generator{
		opts:     opts,
		rng:      opts.Rand,
		logger:   opts.Logger,
		boundary: newEdgeSet(NewEdge(0, 1), NewEdge(1, 2), NewEdge(0, 2)),
		edges:    newEdgeSet(),
		degree:   make([]int, opts.NodeLimit),
		n:        3,
	}
}

func (g *generator) run() {
	for g.n < g.opts.NodeLimit {
		g.grow()
		for g.boundary.len() > g.opts.OutsideLimit {
			// Randomly skip shrinking, mostly early on.
			if g.rng.Float64() < 1/float64(1+g.n) {
				break
			}
			if !g.contract() {
				break
			}
		}
	}
}

func (g *generator) graph() *Graph {
	boundary := g.boundary.slice()
	slices.SortFunc(boundary, Compare)

	all := g.edges.slice()
	for _, e := range boundary {
		if !g.edges.has(e) {
			all = append(all, e)
		}
	}
	slices.SortFunc(all, Compare)

	return &Graph{Vertices: g.n, Edges: all, Boundary: boundary}
}

// commit moves e into the interior edge set and reports whether it was new.
func (g *generator) commit(e Edge) bool {
	if !g.edges.add(e) {
		return false
	}
	g.degree[e.A]++
	g.degree[e.B]++
	return true
}

func (g *generator) uncommit(e Edge) {
	if g.edges.remove(e) {
		g.degree[e.A]--
		g.degree[e.B]--
	}
}

// grow attaches a fan of triangles around a pivot on the boundary.
func (g *generator) grow() {
	var ab Edge
	var pivot, base int
	for attempt := 0; ; attempt++ {
		ab = g.boundary.at(g.rng.IntN(g.boundary.len()))
		pivot, base = ab.A, ab.B
		if g.rng.IntN(2) == 1 {
			pivot, base = base, pivot
		}
		if float64(g.degree[pivot])*g.rng.Float64() <= degreeCap || attempt >= g.opts.MaxRetries {
			break
		}
	}

	g.logger.Debug("adding edges", "nodes", g.n, "base", base, "pivot", pivot)
	for {
		g.boundary.remove(ab)
		g.commit(ab)
		v := g.n
		g.n++
		g.boundary.add(NewEdge(base, v))
		g.boundary.add(NewEdge(pivot, v))
		base = v
		ab = NewEdge(pivot, v)
		if g.rng.Float64() > g.opts.Denseness || g.n >= g.opts.NodeLimit {
			break
		}
	}
}

// contract closes a new face on the boundary. It returns false when every
// attempt wrapped around the boundary.
func (g *generator) contract() bool {
	for attempt := 0; attempt <= g.opts.MaxRetries; attempt++ {
		if g.tryContract() {
			return true
		}
		g.logger.Debug("contraction wrapped around boundary, retrying", "attempt", attempt+1)
	}
	g.logger.Warn("giving up on contraction", "nodes", g.n, "outside", g.boundary.len())
	return false
}

type movedEdge struct {
	edge  Edge
	added bool
}

// tryContract performs one contraction attempt and rolls it back when the
// walk wraps around the boundary.
func (g *generator) tryContract() bool {
	var moved []movedEdge
	take := func(e Edge) {
		g.boundary.remove(e)
		moved = append(moved, movedEdge{edge: e, added: g.commit(e)})
	}

	ab := g.boundary.at(g.rng.IntN(g.boundary.len()))
	take(ab)
	g.logger.Debug("removing edges", "nodes", g.n, "endpoints", ab)

	endpoints := ab
	for {
		next, ok := g.nextBoundaryEdge(endpoints)
		if !ok {
			g.rollback(moved)
			return false
		}
		take(next)
		if next.Has(endpoints.A) {
			endpoints = NewEdge(endpoints.B, next.Other(endpoints.A))
		} else {
			endpoints = NewEdge(endpoints.A, next.Other(endpoints.B))
		}
		if g.rng.Float64() > g.opts.Sparseness {
			break
		}
	}

	// The chord would duplicate a boundary edge and collapse the frontier.
	if g.boundary.has(endpoints) {
		g.rollback(moved)
		return false
	}
	g.boundary.add(endpoints)
	return true
}

// nextBoundaryEdge scans the boundary in order for an edge touching
// endpoints. Meeting endpoints itself means the walk went all the way round.
func (g *generator) nextBoundaryEdge(endpoints Edge) (Edge, bool) {
	for i := 0; i < g.boundary.len(); i++ {
		e := g.boundary.at(i)
		if e == endpoints {
			return Edge{}, false
		}
		if e.Adjacent(endpoints) {
			return e, true
		}
	}
	return Edge{}, false
}

func (g *generator) rollback(moved []movedEdge) {
	for i := len(moved) - 1; i >= 0; i-- {
		m := moved[i]
		if m.added {
			g.uncommit(m.edge)
		}
		g.boundary.add(m.edge)
	}
}
