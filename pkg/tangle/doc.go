// Package tangle tracks which edges of a drawn graph cross each other while
// its vertices are moved one at a time.
//
// # Overview
//
// A [Tracker] is built once from a vertex count, an edge list and an initial
// layout. [New] tests every pair of edges, which is quadratic but only paid
// once. After that, [Tracker.UpdateVertex] moves a single vertex and
// re-examines only the edges incident to it, using an R-tree of edge bounding
// rectangles (see [geom.Index]) to find candidates. That keeps each update
// cheap enough to run on every drag event.
//
// # Invariants
//
// The tracker maintains a collision map from each tangled edge to the set of
// edges it crosses, and the set of untangled edges. After every call:
//
//   - The relation is symmetric and irreflexive.
//   - Edges sharing an endpoint are never recorded against each other; they
//     always touch at that endpoint, which is not a crossing.
//   - An edge is a key of the collision map if and only if it crosses
//     something, and every edge is either tangled or untangled, never both.
//   - The incremental state equals what [New] would compute from scratch on
//     the current positions.
//
// [Tracker.Verify] checks the structural invariants and is intended for tests.
//
// # Usage
//
//	tr, err := tangle.New(g.Vertices, g.Edges, layout.Circle(g.Vertices, 200))
//	if err != nil {
//	    return err
//	}
//	progress, err := tr.UpdateVertex(v, geom.Pt(x, y))
//	fmt.Println(progress) // "12 out of 30 lines untangled (40.0%)"
//	if tr.IsSolved() {
//	    // victory
//	}
//
// # Concurrency
//
// A Tracker is not safe for concurrent use. Only the initial scan in [New] may
// run on several goroutines (see [WithWorkers]); its result is assembled
// before New returns.
//
// [geom.Index]: github.com/fsh/qplanarity/pkg/geom.Index
package tangle
