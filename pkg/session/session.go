// Package session ties a generated graph, its drawing and a crossing tracker
// together into one playable puzzle.
//
// A [Session] is what an interactive front end talks to: it moves vertices,
// reports progress and announces the moment the drawing becomes planar.
// Sessions live in memory only.
//
// # Usage
//
//	sess, err := session.New(ctx, session.Options{
//	    Generator: planar.DefaultOptions(),
//	    Layout:    layout.DefaultOptions(),
//	})
//	if err != nil {
//	    return err
//	}
//
//	// While dragging
//	progress, err := sess.Move(ctx, v, geom.Pt(x, y))
//
//	// On mouse release
//	if sess.Release(ctx) {
//	    fmt.Println("solved in", sess.Moves(), "moves")
//	}
//
// Generation, initialisation, moves and the solved transition are reported to
// the hooks registered in pkg/observability.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/fsh/qplanarity/pkg/errors"
	"github.com/fsh/qplanarity/pkg/geom"
	"github.com/fsh/qplanarity/pkg/graph"
	"github.com/fsh/qplanarity/pkg/layout"
	"github.com/fsh/qplanarity/pkg/observability"
	"github.com/fsh/qplanarity/pkg/planar"
	"github.com/fsh/qplanarity/pkg/tangle"
)

// Options configures a new session.
type Options struct {
	Generator planar.Options // Graph generation
	Layout    layout.Options // Initial drawing
	Workers   int            // Parallelism of the initial crossing scan
	Logger    *log.Logger    // Nil selects log.Default()
}

// Session is one puzzle in play. All methods are safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	graph   *planar.Graph
	tracker *tangle.Tracker
	logger  *log.Logger
	moves   int
	solved  bool
}

// NewID returns a fresh random puzzle identifier.
func NewID() string {
	return uuid.NewString()
}

// New generates a graph, lays it out with opts.Layout and starts tracking its
// crossings.
func New(ctx context.Context, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	gen := opts.Generator
	if gen.Logger == nil {
		gen.Logger = logger
	}

	outside := gen.OutsideLimit
	if outside == 0 {
		outside = planar.DefaultOutsideLimit(gen.NodeLimit)
	}
	hooks := observability.Generator()
	hooks.OnGenerateStart(ctx, gen.NodeLimit, outside)

	start := time.Now()
	g, err := planar.Generate(gen)
	if err != nil {
		hooks.OnGenerateComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnGenerateComplete(ctx, g.Vertices, g.EdgeCount(), time.Since(start), nil)

	positions, err := layout.Place(g.Vertices, opts.Layout)
	if err != nil {
		return nil, err
	}
	return begin(ctx, NewID(), g, positions, opts.Workers, logger)
}

// FromPuzzle starts a session on a stored instance. Puzzles without positions
// are laid out with opts.Layout. A missing ID is replaced by a
// fresh one.
func FromPuzzle(ctx context.Context, p graph.Puzzle, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	g, err := p.Graph()
	if err != nil {
		return nil, err
	}

	positions := p.Points()
	if positions == nil {
		positions, err = layout.Place(g.Vertices, opts.Layout)
		if err != nil {
			return nil, err
		}
	}

	id := p.ID
	if id == "" {
		id = NewID()
	}
	return begin(ctx, id, g, positions, opts.Workers, logger)
}

func begin(ctx context.Context, id string, g *planar.Graph, positions []geom.Point, workers int, logger *log.Logger) (*Session, error) {
	logger = logger.With("puzzle", shortID(id))

	start := time.Now()
	tr, err := tangle.New(g.Vertices, g.Edges, positions,
		tangle.WithWorkers(workers),
		tangle.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	p := tr.Progress()
	observability.Tracker().OnInitialize(ctx, p.Total, p.Tangled(), elapsed)
	logger.Info("puzzle ready", "vertices", g.Vertices, "edges", p.Total, "tangled", p.Tangled())

	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		graph:     g,
		tracker:   tr,
		logger:    logger,
	}, nil
}

// Move places vertex v at p and returns the resulting progress. Errors from
// the tracker leave the session unchanged.
func (s *Session) Move(ctx context.Context, v int, p geom.Point) (tangle.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	progress, err := s.tracker.UpdateVertex(v, p)
	if err != nil {
		return progress, err
	}
	s.moves++

	observability.Tracker().OnUpdate(ctx, v, progress.Untangled, progress.Total, time.Since(start))
	s.logger.Info(progress.String(), "vertex", v, "move", s.moves)
	return progress, nil
}

// Release ends a drag and reports whether the puzzle is solved. The solved
// hook fires on the first release that finds the drawing planar and again
// only after it has been tangled and solved once more.
func (s *Session) Release(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	solved := s.tracker.IsSolved()
	if solved && !s.solved {
		observability.Tracker().OnSolved(ctx, s.moves)
		s.logger.Info("solved", "moves", s.moves)
	}
	s.solved = solved
	return solved
}

// Neighbors returns the vertices adjacent to v in ascending order.
func (s *Session) Neighbors(v int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v < 0 || v >= s.graph.Vertices {
		return nil, errors.UnknownVertex(v, s.graph.Vertices)
	}
	incident := s.tracker.Incident(v)
	out := make([]int, len(incident))
	for i, e := range incident {
		out[i] = e.Other(v)
	}
	slices.Sort(out)
	return out, nil
}

// Position returns the current position of v.
func (s *Session) Position(v int) (geom.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Position(v)
}

// Progress returns the current progress.
func (s *Session) Progress() tangle.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Progress()
}

// Moves returns the number of successful moves.
func (s *Session) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

// Vertices returns the number of vertices.
func (s *Session) Vertices() int {
	return s.graph.Vertices
}

// Graph returns the underlying graph. It must not be modified.
func (s *Session) Graph() *planar.Graph {
	return s.graph
}

// Snapshot returns the current drawing: positions, edges and which edges are
// tangled.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Positions: s.tracker.Positions(),
		Edges:     s.tracker.Edges(),
		Tangled:   make(map[planar.Edge]bool),
		Progress:  s.tracker.Progress(),
	}
	for _, e := range s.tracker.Tangled() {
		snap.Tangled[e] = true
	}
	return snap
}

// Snapshot is a copy of a session's drawing at one point in time.
type Snapshot struct {
	Positions []geom.Point
	Edges     []planar.Edge
	Tangled   map[planar.Edge]bool
	Progress  tangle.Progress
}

// Crossings returns every tangled edge with the edges it crosses.
func (s *Session) Crossings() map[planar.Edge][]planar.Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.CollisionMap()
}

// Verify checks the tracker's internal invariants.
func (s *Session) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Verify()
}

// Puzzle exports the instance with its current positions.
func (s *Session) Puzzle() graph.Puzzle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return graph.FromGraph(s.ID, s.graph, s.tracker.Positions())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
