// Package document implements DocumentWriter ports that persist the collated
// HTML, either converted to PDF by wkhtmltopdf or as a plain HTML file.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
	"github.com/ericfisherdev/pr2pdf/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.DocumentWriter = (*PDFWriter)(nil)

// PDFWriter converts HTML to PDF with the wkhtmltopdf binary. The binary is
// located through WKHTMLTOPDF_PATH or PATH when Write is called. The PDF
// title is taken from the document's <title>.
type PDFWriter struct {
	newGenerator func() (*wkhtmltopdf.PDFGenerator, error)
}

// NewPDFWriter creates a PDFWriter producing A4 pages.
func NewPDFWriter() *PDFWriter {
	return &PDFWriter{newGenerator: wkhtmltopdf.NewPDFGenerator}
}

// Extension returns "pdf".
func (w *PDFWriter) Extension() string {
	return "pdf"
}

// Write renders html to a PDF at path. The conversion runs once; failures are
// returned as *model.RenderError.
func (w *PDFWriter) Write(ctx context.Context, html string, path string) error {
	pdfg, err := w.newGenerator()
	if err != nil {
		return &model.RenderError{Path: path, Err: fmt.Errorf("locating wkhtmltopdf: %w", err)}
	}

	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.Encoding.Set("UTF-8")
	pdfg.AddPage(page)

	slog.Debug("running wkhtmltopdf", "path", path, "html_bytes", len(html))

	if err := pdfg.CreateContext(ctx); err != nil {
		return &model.RenderError{Path: path, Err: err}
	}
	if err := pdfg.WriteFile(path); err != nil {
		return &model.RenderError{Path: path, Err: err}
	}

	return nil
}
