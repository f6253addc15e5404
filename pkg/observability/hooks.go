// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about mesh operations, store access, and rendering.
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
//   - Keeps the mesh engine dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetMeshHooks(&myMeshHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Services call hooks to emit events:
//
//	observability.Mesh().OnBuildStart(ctx, source)
//	// ... build the mesh ...
//	observability.Mesh().OnBuildComplete(ctx, source, faceCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Mesh Hooks
// =============================================================================

// MeshHooks receives events from mesh construction and editing.
type MeshHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, source string)
	OnBuildComplete(ctx context.Context, source string, faceCount int, duration time.Duration, err error)

	// Refinement events (poke, split, circumscribe passes)
	OnRefineStart(ctx context.Context, operator string, faceCount int)
	OnRefineComplete(ctx context.Context, operator string, faceCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from snapshot store operations.
type StoreHooks interface {
	// OnStoreGet records a snapshot read and whether it was found.
	OnStoreGet(ctx context.Context, backend, name string, found bool)

	// OnStorePut records a snapshot write.
	OnStorePut(ctx context.Context, backend, name string, size int)

	// OnStoreError records a backend failure.
	OnStoreError(ctx context.Context, backend, op string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopMeshHooks is a no-op implementation of MeshHooks.
type NoopMeshHooks struct{}

func (NoopMeshHooks) OnBuildStart(context.Context, string)                                  {}
func (NoopMeshHooks) OnBuildComplete(context.Context, string, int, time.Duration, error)    {}
func (NoopMeshHooks) OnRefineStart(context.Context, string, int)                            {}
func (NoopMeshHooks) OnRefineComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopMeshHooks) OnRenderStart(context.Context, string)                                 {}
func (NoopMeshHooks) OnRenderComplete(context.Context, string, int, time.Duration, error)   {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreGet(context.Context, string, string, bool) {}
func (NoopStoreHooks) OnStorePut(context.Context, string, string, int)  {}
func (NoopStoreHooks) OnStoreError(context.Context, string, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	meshHooks  MeshHooks  = NoopMeshHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetMeshHooks registers custom mesh hooks.
// This should be called once at application startup before any mesh operations.
func SetMeshHooks(h MeshHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		meshHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Mesh returns the registered mesh hooks.
func Mesh() MeshHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return meshHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	meshHooks = NoopMeshHooks{}
	storeHooks = NoopStoreHooks{}
}
