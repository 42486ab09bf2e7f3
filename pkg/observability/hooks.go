// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about tree rebuilds, flush cycles, and document handling.
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
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTreeHooks(&myTreeHooks{})
//	    observability.SetDocumentHooks(&myDocumentHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Tree().OnFlushStart(ctx, dirtyCount)
//	// ... drain the dirty set ...
//	observability.Tree().OnFlushComplete(ctx, recordCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Tree Hooks
// =============================================================================

// TreeHooks receives events from tree rebuild and flush cycles.
type TreeHooks interface {
	// Rebuild events
	OnRebuildStart(ctx context.Context, source string)
	OnRebuildComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)

	// Flush events
	OnFlushStart(ctx context.Context, dirtyCount int)
	OnFlushComplete(ctx context.Context, recordCount int, duration time.Duration, err error)

	// OnNodeDirty records one node entering the dirty set. It fires
	// from the tree's mutation path, which carries no context.
	OnNodeDirty(nodeID int64)
}

// =============================================================================
// Document Hooks
// =============================================================================

// DocumentHooks receives events from tree document decoding and encoding.
type DocumentHooks interface {
	// OnDocumentLoad records a document read, with its detected format.
	OnDocumentLoad(ctx context.Context, path, format string)

	// OnDocumentDecoded records a successful decode.
	OnDocumentDecoded(ctx context.Context, path string, nodeCount int)

	// OnExport records an update batch written to a sink.
	OnExport(ctx context.Context, format string, size int)
}

// =============================================================================
// Event Hooks
// =============================================================================

// EventHooks receives fire-and-forget semantics events as they pass
// through an owner's event channel. The payload is the opaque value
// handed to SendEvent.
type EventHooks interface {
	// OnEvent records one dispatched semantics event.
	OnEvent(nodeID int64, event any)

	// OnEventDropped records an event with no registered handler.
	OnEventDropped(nodeID int64, event any)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTreeHooks is a no-op implementation of TreeHooks.
type NoopTreeHooks struct{}

func (NoopTreeHooks) OnRebuildStart(context.Context, string) {}
func (NoopTreeHooks) OnRebuildComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopTreeHooks) OnFlushStart(context.Context, int)                          {}
func (NoopTreeHooks) OnFlushComplete(context.Context, int, time.Duration, error) {}
func (NoopTreeHooks) OnNodeDirty(int64)                                          {}

// NoopDocumentHooks is a no-op implementation of DocumentHooks.
type NoopDocumentHooks struct{}

func (NoopDocumentHooks) OnDocumentLoad(context.Context, string, string)   {}
func (NoopDocumentHooks) OnDocumentDecoded(context.Context, string, int)   {}
func (NoopDocumentHooks) OnExport(context.Context, string, int)            {}

// NoopEventHooks is a no-op implementation of EventHooks.
type NoopEventHooks struct{}

func (NoopEventHooks) OnEvent(int64, any)        {}
func (NoopEventHooks) OnEventDropped(int64, any) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	treeHooks     TreeHooks     = NoopTreeHooks{}
	documentHooks DocumentHooks = NoopDocumentHooks{}
	eventHooks    EventHooks    = NoopEventHooks{}
	hooksMu       sync.RWMutex
)

// SetTreeHooks registers custom tree hooks.
// This should be called once at application startup before any tree operations.
func SetTreeHooks(h TreeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		treeHooks = h
	}
}

// SetDocumentHooks registers custom document hooks.
// This should be called once at application startup before any document operations.
func SetDocumentHooks(h DocumentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		documentHooks = h
	}
}

// SetEventHooks registers custom event hooks.
// This should be called once at application startup before any events are sent.
func SetEventHooks(h EventHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		eventHooks = h
	}
}

// Tree returns the registered tree hooks.
func Tree() TreeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return treeHooks
}

// Document returns the registered document hooks.
func Document() DocumentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return documentHooks
}

// Event returns the registered event hooks.
func Event() EventHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return eventHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	treeHooks = NoopTreeHooks{}
	documentHooks = NoopDocumentHooks{}
	eventHooks = NoopEventHooks{}
}
