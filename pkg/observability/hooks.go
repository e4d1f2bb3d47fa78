// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about synced files and outgoing API calls.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSyncHooks(&mySyncHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sync().OnFileStart(ctx, path)
//	// ... process the file ...
//	observability.Sync().OnFileComplete(ctx, path, status, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Sync Hooks
// =============================================================================

// SyncHooks receives events from the asset sync loop.
type SyncHooks interface {
	// OnRunStart is called once before the first file is discovered.
	OnRunStart(ctx context.Context, root string)
	// OnRunComplete is called once after the last file, with the run error if any.
	OnRunComplete(ctx context.Context, root string, files int, duration time.Duration, err error)

	// OnFileStart is called when a file is discovered.
	OnFileStart(ctx context.Context, path string)
	// OnFileComplete is called with the final status of a file.
	OnFileComplete(ctx context.Context, path, status string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSyncHooks is a no-op implementation of SyncHooks.
type NoopSyncHooks struct{}

func (NoopSyncHooks) OnRunStart(context.Context, string)                                   {}
func (NoopSyncHooks) OnRunComplete(context.Context, string, int, time.Duration, error)     {}
func (NoopSyncHooks) OnFileStart(context.Context, string)                                  {}
func (NoopSyncHooks) OnFileComplete(context.Context, string, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	syncHooks SyncHooks = NoopSyncHooks{}
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetSyncHooks registers custom sync hooks.
// This should be called once at application startup before any run.
func SetSyncHooks(h SyncHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		syncHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Sync returns the registered sync hooks.
func Sync() SyncHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return syncHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	syncHooks = NoopSyncHooks{}
	httpHooks = NoopHTTPHooks{}
}
