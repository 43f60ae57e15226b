package document

import (
	"context"
	"os"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
	"github.com/ericfisherdev/pr2pdf/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.DocumentWriter = (*HTMLWriter)(nil)

// HTMLWriter writes the collated document as-is.
type HTMLWriter struct{}

// NewHTMLWriter creates a new HTMLWriter.
func NewHTMLWriter() *HTMLWriter {
	return &HTMLWriter{}
}

// Extension returns "html".
func (w *HTMLWriter) Extension() string {
	return "html"
}

// Write stores html at path, replacing any existing file.
func (w *HTMLWriter) Write(_ context.Context, html string, path string) error {
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return &model.RenderError{Path: path, Err: err}
	}
	return nil
}
