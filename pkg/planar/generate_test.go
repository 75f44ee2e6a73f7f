package planar

import (
	"io"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/fsh/qplanarity/pkg/errors"
)

func quietOptions(nodes int, seed uint64) Options {
	opts := DefaultOptions()
	opts.NodeLimit = nodes
	opts.Rand = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	opts.Logger = log.New(io.Discard)
	return opts
}

func TestGenerateValidity(t *testing.T) {
	for _, nodes := range []int{3, 4, 5, 8, 13, 30, 100, 300} {
		for seed := uint64(0); seed < 10; seed++ {
			g, err := Generate(quietOptions(nodes, seed))
			if err != nil {
				t.Fatalf("nodes=%d seed=%d: Generate: %v", nodes, seed, err)
			}

			if g.Vertices != nodes {
				t.Errorf("nodes=%d seed=%d: Vertices = %d", nodes, seed, g.Vertices)
			}
			if err := g.Validate(); err != nil {
				t.Errorf("nodes=%d seed=%d: Validate: %v", nodes, seed, err)
			}
			if !g.Connected() {
				t.Errorf("nodes=%d seed=%d: graph is not connected", nodes, seed)
			}
			for v, inc := range g.Adjacency() {
				if len(inc) < 2 {
					t.Errorf("nodes=%d seed=%d: vertex %d has degree %d", nodes, seed, v, len(inc))
				}
			}
			// Euler's bound for simple planar graphs.
			if nodes >= 3 && g.EdgeCount() > 3*nodes-6 {
				t.Errorf("nodes=%d seed=%d: %d edges exceeds 3n-6", nodes, seed, g.EdgeCount())
			}
			if !slices.IsSortedFunc(g.Edges, Compare) {
				t.Errorf("nodes=%d seed=%d: edges are not sorted", nodes, seed)
			}
			for _, e := range g.Boundary {
				if _, ok := slices.BinarySearchFunc(g.Edges, e, Compare); !ok {
					t.Errorf("nodes=%d seed=%d: boundary edge %s missing from edges", nodes, seed, e)
				}
			}
		}
	}
}

func TestGenerateTriangle(t *testing.T) {
	g, err := Generate(quietOptions(3, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []Edge{{0, 1}, {0, 2}, {1, 2}}
	if !slices.Equal(g.Edges, want) {
		t.Errorf("Edges = %v, want %v", g.Edges, want)
	}
	if !slices.Equal(g.Boundary, want) {
		t.Errorf("Boundary = %v, want %v", g.Boundary, want)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(quietOptions(60, 42))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(quietOptions(60, 42))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !slices.Equal(a.Edges, b.Edges) {
		t.Error("same seed produced different edges")
	}
	if !slices.Equal(a.Boundary, b.Boundary) {
		t.Error("same seed produced different boundaries")
	}
}

func TestGenerateSeedOption(t *testing.T) {
	opts := DefaultOptions()
	opts.NodeLimit = 40
	opts.Seed = 7
	opts.Logger = log.New(io.Discard)

	a, err := Generate(opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !slices.Equal(a.Edges, b.Edges) {
		t.Error("Seed without Rand should be reproducible")
	}
}

func TestGenerateExtremeTunables(t *testing.T) {
	tests := []struct {
		name       string
		denseness  float64
		sparseness float64
		outside    int
	}{
		{"NoFans", 0, 0, 0},
		{"LongFans", 0.95, 0.1, 0},
		{"BigHoles", 0.3, 0.9, 0},
		{"TightBoundary", 0.3, 0.6, 3},
		{"LooseBoundary", 0.3, 0.6, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := quietOptions(80, 3)
			opts.Denseness = tt.denseness
			opts.Sparseness = tt.sparseness
			opts.OutsideLimit = tt.outside
			opts.MaxRetries = 200

			g, err := Generate(opts)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if g.Vertices != 80 {
				t.Errorf("Vertices = %d, want 80", g.Vertices)
			}
			if !g.Connected() {
				t.Error("graph is not connected")
			}
			if err := g.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestGenerateInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"NodeLimitTooSmall", func(o *Options) { o.NodeLimit = 2 }},
		{"NodeLimitZero", func(o *Options) { o.NodeLimit = 0 }},
		{"OutsideLimitTooSmall", func(o *Options) { o.OutsideLimit = 2 }},
		{"DensenessOne", func(o *Options) { o.Denseness = 1 }},
		{"SparsenessNegative", func(o *Options) { o.Sparseness = -0.5 }},
		{"NegativeRetries", func(o *Options) { o.MaxRetries = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := quietOptions(10, 1)
			tt.mutate(&opts)
			g, err := Generate(opts)
			if err == nil {
				t.Fatal("Generate should fail")
			}
			if g != nil {
				t.Error("Generate should not return a graph on error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidParameter) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParameter)
			}
		})
	}
}

func TestDefaultOutsideLimit(t *testing.T) {
	tests := []struct{ nodes, want int }{
		{3, 2},
		{4, 3},
		{10, 8},
		{30, 23},
		{300, 225},
	}
	for _, tt := range tests {
		if got := DefaultOutsideLimit(tt.nodes); got != tt.want {
			t.Errorf("DefaultOutsideLimit(%d) = %d, want %d", tt.nodes, got, tt.want)
		}
	}
}
