package geom

import "fmt"

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// String formats the point as "(x, y)" with two decimals.
func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle. Min holds the smaller coordinates.
type Rect struct {
	Min, Max Point
}

// Intersects reports whether r and o share at least one point.
// Rectangles that only touch along an edge or corner intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Segment is the closed straight line between A and B.
type Segment struct {
	A, B Point
}

// Seg is shorthand for Segment{A: a, B: b}.
func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

// Bounds returns the smallest rectangle containing s.
func (s Segment) Bounds() Rect {
	return Rect{
		Min: Point{X: min(s.A.X, s.B.X), Y: min(s.A.Y, s.B.Y)},
		Max: Point{X: max(s.A.X, s.B.X), Y: max(s.A.Y, s.B.Y)},
	}
}

// Crosses reports whether s and o share at least one point.
func (s Segment) Crosses(o Segment) bool {
	return SegmentsCross(s.A, s.B, o.A, o.B)
}

// SegmentsCross reports whether the closed segments p1-p2 and p3-p4 intersect.
//
// Proper crossings, T-junctions where an endpoint lies on the other segment,
// and overlapping collinear segments all count. Degenerate segments (p1 == p2)
// behave like points.
func SegmentsCross(p1, p2, p3, p4 Point) bool {
	d1 := orient(p3, p4, p1)
	d2 := orient(p3, p4, p2)
	d3 := orient(p1, p2, p3)
	d4 := orient(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(p3, p4, p1):
		return true
	case d2 == 0 && onSegment(p3, p4, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, p3):
		return true
	case d4 == 0 && onSegment(p1, p2, p4):
		return true
	}
	return false
}

// orient returns the sign of the cross product (b-a) x (c-a):
// positive when a, b, c turn counter-clockwise, negative when clockwise,
// zero when collinear.
func orient(a, b, c Point) int {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// onSegment reports whether p, known to be collinear with a-b, lies within
// the bounding box of a-b.
func onSegment(a, b, p Point) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}
