// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about puzzle generation and crossing updates.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core packages free of observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, plain counters)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGeneratorHooks(&myGeneratorHooks{})
//	    observability.SetTrackerHooks(&myTrackerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generator().OnGenerateStart(ctx, nodes, outside)
//	// ... generate ...
//	observability.Generator().OnGenerateComplete(ctx, nodes, edges, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generator Hooks
// =============================================================================

// GeneratorHooks receives events from puzzle graph generation.
type GeneratorHooks interface {
	OnGenerateStart(ctx context.Context, nodeLimit, outsideLimit int)
	OnGenerateComplete(ctx context.Context, vertices, edges int, duration time.Duration, err error)
}

// =============================================================================
// Tracker Hooks
// =============================================================================

// TrackerHooks receives events from the crossing tracker of a puzzle session.
type TrackerHooks interface {
	// OnInitialize records the initial pairwise scan.
	OnInitialize(ctx context.Context, edges, tangled int, duration time.Duration)

	// OnUpdate records a single vertex move.
	OnUpdate(ctx context.Context, vertex, untangled, total int, duration time.Duration)

	// OnSolved records the transition to a crossing-free drawing.
	OnSolved(ctx context.Context, moves int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGeneratorHooks is a no-op implementation of GeneratorHooks.
type NoopGeneratorHooks struct{}

func (NoopGeneratorHooks) OnGenerateStart(context.Context, int, int) {}
func (NoopGeneratorHooks) OnGenerateComplete(context.Context, int, int, time.Duration, error) {
}

// NoopTrackerHooks is a no-op implementation of TrackerHooks.
type NoopTrackerHooks struct{}

func (NoopTrackerHooks) OnInitialize(context.Context, int, int, time.Duration)  {}
func (NoopTrackerHooks) OnUpdate(context.Context, int, int, int, time.Duration) {}
func (NoopTrackerHooks) OnSolved(context.Context, int)                          {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generatorHooks GeneratorHooks = NoopGeneratorHooks{}
	trackerHooks   TrackerHooks   = NoopTrackerHooks{}
	hooksMu        sync.RWMutex
)

// SetGeneratorHooks registers custom generator hooks.
// This should be called once at application startup before any puzzle is built.
func SetGeneratorHooks(h GeneratorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generatorHooks = h
	}
}

// SetTrackerHooks registers custom tracker hooks.
// This should be called once at application startup before any puzzle is built.
func SetTrackerHooks(h TrackerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		trackerHooks = h
	}
}

// Generator returns the registered generator hooks.
func Generator() GeneratorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generatorHooks
}

// Tracker returns the registered tracker hooks.
func Tracker() TrackerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return trackerHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generatorHooks = NoopGeneratorHooks{}
	trackerHooks = NoopTrackerHooks{}
}
