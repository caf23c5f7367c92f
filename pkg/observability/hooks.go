// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about codec phases, model mutations, and xref cache
// operations.
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
//   - Keeps the core library dependency-free from observability frameworks
//   - Lets UI layers observe structural changes without the model owning them
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCodecHooks(&myCodecHooks{})
//	    observability.SetModelHooks(&myModelHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Codec().OnDecodeStart(ctx, version)
//	// ... decode ...
//	observability.Codec().OnDecodeComplete(ctx, version, elementCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Codec Hooks
// =============================================================================

// CodecHooks receives events from the decode/encode pipeline.
type CodecHooks interface {
	// Decode events
	OnDecodeStart(ctx context.Context, version string)
	OnDecodeComplete(ctx context.Context, version string, elementCount int, duration time.Duration, err error)

	// Encode events
	OnEncodeStart(ctx context.Context, version string, elementCount int)
	OnEncodeComplete(ctx context.Context, version string, duration time.Duration, err error)

	// OnReferenceRepair records a repair pass that cleared dangling references.
	OnReferenceRepair(ctx context.Context, cleared int)
}

// =============================================================================
// Model Hooks
// =============================================================================

// ModelHooks receives structural-change events from the pathway model.
// Rendering and UI layers register these to track additions and removals;
// the model itself has no notion of subscribers.
type ModelHooks interface {
	// OnElementAdded records admission of an element into a pathway.
	OnElementAdded(kind, elementID string)

	// OnElementRemoved records removal of an element from a pathway.
	OnElementRemoved(kind, elementID string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from xref resolver cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCodecHooks is a no-op implementation of CodecHooks.
type NoopCodecHooks struct{}

func (NoopCodecHooks) OnDecodeStart(context.Context, string)                               {}
func (NoopCodecHooks) OnDecodeComplete(context.Context, string, int, time.Duration, error) {}
func (NoopCodecHooks) OnEncodeStart(context.Context, string, int)                          {}
func (NoopCodecHooks) OnEncodeComplete(context.Context, string, time.Duration, error)      {}
func (NoopCodecHooks) OnReferenceRepair(context.Context, int)                              {}

// NoopModelHooks is a no-op implementation of ModelHooks.
type NoopModelHooks struct{}

func (NoopModelHooks) OnElementAdded(string, string)   {}
func (NoopModelHooks) OnElementRemoved(string, string) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	codecHooks CodecHooks = NoopCodecHooks{}
	modelHooks ModelHooks = NoopModelHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetCodecHooks registers custom codec hooks.
// This should be called once at application startup before any codec operations.
func SetCodecHooks(h CodecHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		codecHooks = h
	}
}

// SetModelHooks registers custom model hooks.
// This should be called once at application startup before any model mutations.
func SetModelHooks(h ModelHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		modelHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Codec returns the registered codec hooks.
func Codec() CodecHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return codecHooks
}

// Model returns the registered model hooks.
func Model() ModelHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return modelHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	codecHooks = NoopCodecHooks{}
	modelHooks = NoopModelHooks{}
	cacheHooks = NoopCacheHooks{}
}
