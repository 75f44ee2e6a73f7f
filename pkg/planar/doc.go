// Package planar generates random connected planar graphs for untangling
// puzzles.
//
// # Overview
//
// A puzzle is a planar graph drawn with crossings; the player moves vertices
// until no two edges cross. This package builds the graph. Vertices are dense
// integer indices 0..N-1 and edges are unordered pairs stored canonically as
// (min, max) by [NewEdge], so an edge compares equal no matter which endpoint
// it was discovered from.
//
// # Algorithm
//
// [Generate] starts from the triangle {(0,1), (1,2), (0,2)}, all three edges
// on the outer boundary, and alternates two steps until the vertex limit is
// reached:
//
//   - Grow: pick a boundary edge and a pivot endpoint, then attach a fan of
//     new triangles around the pivot. Each new vertex replaces one boundary
//     edge with two. Fans continue with probability [Options.Denseness].
//     Pivots with many interior edges are likely to be skipped.
//   - Contract: pick a boundary edge, walk the boundary from its endpoints and
//     replace the walked path with a single chord, closing a new face. The walk
//     continues with probability [Options.Sparseness].
//
// Contraction runs while the boundary is longer than [Options.OutsideLimit],
// breaking out early with probability 1/(1+vertices) so small graphs keep some
// irregularity.
//
// # Termination
//
// A contraction that would wrap all the way around the boundary is rolled back
// and retried from a fresh edge. Sparseness close to 1 makes long walks and
// therefore wrap-arounds likely, so termination is only probabilistic.
// [Options.MaxRetries] bounds every retry loop: a grow step that keeps
// rejecting pivots accepts the last one, and a contraction that keeps wrapping
// is skipped for that round.
//
// # Determinism
//
// All randomness comes from [Options.Rand]. Internal sets keep insertion order
// so map iteration never influences a random choice; a fixed seed reproduces
// the same graph:
//
//	g, err := planar.Generate(planar.Options{
//	    NodeLimit: 30,
//	    Rand:      rand.New(rand.NewPCG(42, 42)),
//	})
package planar
