// Package layout places puzzle vertices in the plane.
//
// A freshly generated planar graph has no drawing. [Circle] puts every vertex
// on a circle in a scrambled order so that most edges start out crossing;
// [Scatter] spreads them uniformly over a square instead.
package layout

import (
	"math"
	"math/rand/v2"

	"github.com/fsh/qplanarity/pkg/errors"
	"github.com/fsh/qplanarity/pkg/geom"
)

const (
	// DefaultRadius is the circle radius used by the CLI.
	DefaultRadius = 200.0

	// DefaultOffset shifts the starting slot of the scramble.
	DefaultOffset = 0xbabe
)

// Kind selects the placement strategy used by [Place].
type Kind string

const (
	KindCircle  Kind = "circle"
	KindScatter Kind = "scatter"
)

// Options configures [Circle] and [Place].
type Options struct {
	Kind   Kind    // Empty selects KindCircle
	Radius float64 // Circle radius, or half the side of the scatter square; must be positive
	Offset int     // Added to every slot index before wrapping
	Seed   uint64  // Seeds KindScatter
}

// DefaultOptions returns a circle of radius 200 with the standard offset.
func DefaultOptions() Options {
	return Options{Kind: KindCircle, Radius: DefaultRadius, Offset: DefaultOffset}
}

// Validate checks the kind and that the radius is positive and finite.
func (o Options) Validate() error {
	switch o.Kind {
	case "", KindCircle, KindScatter:
	default:
		return errors.New(errors.ErrCodeInvalidParameter, "unknown layout %q", o.Kind)
	}
	if err := errors.ValidateFinite("radius", o.Radius); err != nil {
		return err
	}
	if o.Radius <= 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "radius must be positive, got %v", o.Radius)
	}
	return nil
}

// Place lays out n vertices with the strategy named by opts.Kind.
func Place(n int, opts Options) ([]geom.Point, error) {
	if opts.Kind != KindScatter {
		return Circle(n, opts)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateMin("vertex count", n, 0); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
	return Scatter(n, 2*opts.Radius, rng), nil
}

// Circle places n vertices on a circle centred at the origin.
//
// Vertex i goes to slot (stride*i + Offset) mod n, where stride is the first
// integer at or above floor(sqrt(n)) that is coprime with n. Because the
// stride is coprime every slot is used exactly once, and because it is about
// sqrt(n) neighbouring vertices land far apart.
func Circle(n int, opts Options) ([]geom.Point, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateMin("vertex count", n, 0); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	stride := Stride(n)
	offset := ((opts.Offset % n) + n) % n
	out := make([]geom.Point, n)
	for i := range out {
		slot := (stride*i + offset) % n
		angle := 2 * math.Pi * float64(slot) / float64(n)
		out[i] = geom.Pt(opts.Radius*math.Cos(angle), opts.Radius*math.Sin(angle))
	}
	return out, nil
}

// Stride returns the smallest integer >= floor(sqrt(n)) that is coprime
// with n. It returns 1 for n < 2.
func Stride(n int) int {
	if n < 2 {
		return 1
	}
	a := int(math.Sqrt(float64(n)))
	for gcd(a, n) > 1 {
		a++
	}
	return a
}

// Scatter places n vertices uniformly at random in the square
// [-size/2, size/2]^2.
func Scatter(n int, size float64, rng *rand.Rand) []geom.Point {
	out := make([]geom.Point, n)
	for i := range out {
		out[i] = geom.Pt((rng.Float64()-0.5)*size, (rng.Float64()-0.5)*size)
	}
	return out
}

// Bounds returns the smallest rectangle containing every point, padded by
// margin on each side. An empty input yields a zero rectangle.
func Bounds(points []geom.Point, margin float64) geom.Rect {
	if len(points) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	r.Min = r.Min.Sub(geom.Pt(margin, margin))
	r.Max = r.Max.Add(geom.Pt(margin, margin))
	return r
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
