// Package geom provides the planar geometry the crossing tracker relies on.
//
// # Primitives
//
// [Point] is a position in the plane, [Segment] a straight line between two
// points and [Rect] an axis-aligned bounding rectangle. [SegmentsCross] is the
// single collision primitive: it reports whether two closed segments share at
// least one point, using exact orientation signs rather than an epsilon.
//
// Callers decide which touches count. The tracker in package tangle, for
// example, never asks whether two edges sharing a vertex cross, because they
// always touch at that vertex.
//
// # Spatial Index
//
// [Index] answers "which items might intersect this rectangle" through an
// R-tree (github.com/tidwall/rtree). It is the candidate query used for
// incremental updates: any two crossing segments have intersecting bounding
// rectangles, so filtering the candidates with [SegmentsCross] is exact.
//
// # Concurrency
//
// Points, segments and rectangles are values and safe to share. An [Index] is
// not safe for concurrent use.
package geom
