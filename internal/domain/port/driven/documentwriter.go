package driven

import "context"

// DocumentWriter persists a complete HTML document to path. Implementations
// return *model.RenderError on failure.
type DocumentWriter interface {
	Write(ctx context.Context, html string, path string) error
	// Extension returns the file extension, without dot, that the writer produces.
	Extension() string
}
