package geom

import "github.com/tidwall/rtree"

// Index is an R-tree of items keyed by their bounding rectangles.
// The zero value is not usable; create one with [NewIndex].
type Index[K comparable] struct {
	tree   rtree.RTreeG[K]
	bounds map[K]Rect
}

// NewIndex returns an empty index.
func NewIndex[K comparable]() *Index[K] {
	return &Index[K]{bounds: make(map[K]Rect)}
}

// Len returns the number of items in the index.
func (ix *Index[K]) Len() int {
	return len(ix.bounds)
}

// Set inserts key with bounds r, replacing any rectangle previously stored
// for the same key.
func (ix *Index[K]) Set(key K, r Rect) {
	if old, ok := ix.bounds[key]; ok {
		if old == r {
			return
		}
		ix.tree.Delete(minCorner(old), maxCorner(old), key)
	}
	ix.tree.Insert(minCorner(r), maxCorner(r), key)
	ix.bounds[key] = r
}

// Remove deletes key from the index. Unknown keys are ignored.
func (ix *Index[K]) Remove(key K) {
	old, ok := ix.bounds[key]
	if !ok {
		return
	}
	ix.tree.Delete(minCorner(old), maxCorner(old), key)
	delete(ix.bounds, key)
}

// Bounds returns the rectangle stored for key.
func (ix *Index[K]) Bounds(key K) (Rect, bool) {
	r, ok := ix.bounds[key]
	return r, ok
}

// Search calls fn for every item whose rectangle intersects r.
// Iteration stops early when fn returns false. The order is unspecified.
func (ix *Index[K]) Search(r Rect, fn func(K) bool) {
	ix.tree.Search(minCorner(r), maxCorner(r), func(_, _ [2]float64, key K) bool {
		return fn(key)
	})
}

// Candidates returns every item whose rectangle intersects r.
func (ix *Index[K]) Candidates(r Rect) []K {
	var out []K
	ix.Search(r, func(k K) bool {
		out = append(out, k)
		return true
	})
	return out
}

func minCorner(r Rect) [2]float64 { return [2]float64{r.Min.X, r.Min.Y} }
func maxCorner(r Rect) [2]float64 { return [2]float64{r.Max.X, r.Max.Y} }
