// Package render drives the rasterization of populated slide documents.
package render

import "context"

// Engine turns one slide of a saved presentation into an image file.
//
// Engines are stateful and thread-affine: Start, every Export, and Close
// must run on the same goroutine. The batch orchestrator owns exactly one
// engine per run, opens it lazily, and closes it once at the end regardless
// of per-row failures.
type Engine interface {
	// Start acquires the engine's resources for one batch.
	Start(ctx context.Context) error
	// Export opens docPath and writes slide slideIndex (zero-based) to
	// imagePath. A failure affects only the current row; the engine stays
	// usable for subsequent calls.
	Export(ctx context.Context, docPath string, slideIndex int, imagePath string) error
	// Close releases the engine's resources. It must be called even when
	// every Export failed.
	Close() error
}
