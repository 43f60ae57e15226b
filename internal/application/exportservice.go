package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
	"github.com/ericfisherdev/pr2pdf/internal/domain/port/driven"
)

// ErrNothingExported is returned when every input URL failed, so no document was written.
var ErrNothingExported = errors.New("no pull request could be exported")

// URLResult is the outcome of one input URL.
type URLResult struct {
	URL   string
	Ref   string // empty when the URL did not parse
	Title string
	Files int
	Err   error
}

// OK reports whether the pull request made it into the document.
func (r URLResult) OK() bool {
	return r.Err == nil
}

// ExportReport summarizes a run.
type ExportReport struct {
	Results []URLResult
	Path    string // empty when nothing was written
}

// Succeeded returns the number of pull requests included in the document.
func (r *ExportReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// ExportService fetches and renders each URL, then writes one document.
// URLs are processed sequentially; a failing URL is logged and skipped.
type ExportService struct {
	fetcher  *FetchService
	renderer driven.Renderer
	writer   driven.DocumentWriter
	now      func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(fetcher *FetchService, renderer driven.Renderer, writer driven.DocumentWriter) *ExportService {
	return &ExportService{
		fetcher:  fetcher,
		renderer: renderer,
		writer:   writer,
		now:      time.Now,
	}
}

// Export processes urls in order and writes the collated document to
// OutputPath(output, writer extension). It returns ErrNothingExported when no
// URL succeeded, or the writer's error; the report is returned in every case.
func (s *ExportService) Export(ctx context.Context, urls []string, output string) (*ExportReport, error) {
	report := &ExportReport{Results: make([]URLResult, 0, len(urls))}
	fragments := make([]string, 0, len(urls))
	var titles []string

	for _, rawURL := range urls {
		result, fragment := s.exportOne(ctx, rawURL)
		report.Results = append(report.Results, result)

		if result.Err != nil {
			slog.Error("skipping pull request", "url", rawURL, "error", result.Err)
			continue
		}
		fragments = append(fragments, fragment)
		titles = append(titles, result.Title)
	}

	if len(fragments) == 0 {
		return report, ErrNothingExported
	}

	now := s.now()
	doc, err := s.renderer.RenderDocument(ctx, documentTitle(titles, now), fragments)
	if err != nil {
		return report, err
	}

	path := OutputPath(output, s.writer.Extension(), now)
	if err := s.writer.Write(ctx, doc, path); err != nil {
		return report, err
	}
	report.Path = path

	slog.Info("document written", "path", path, "pull_requests", len(fragments), "failed", len(urls)-len(fragments))
	return report, nil
}

// exportOne is the per-URL failure boundary.
func (s *ExportService) exportOne(ctx context.Context, rawURL string) (URLResult, string) {
	result := URLResult{URL: rawURL}
	if ref, err := model.ParsePRURL(rawURL); err == nil {
		result.Ref = ref.String()
	}

	pr, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		result.Err = err
		return result, ""
	}
	result.Title = pr.Details.Title
	result.Files = len(pr.Files)

	fragment, err := s.renderer.RenderPullRequest(ctx, pr)
	if err != nil {
		result.Err = err
		return result, ""
	}

	return result, fragment
}

// documentTitle names the document after its single pull request, or after
// the count and date when several are collated.
func documentTitle(titles []string, now time.Time) string {
	if len(titles) == 1 {
		return titles[0]
	}
	return fmt.Sprintf("%d pull requests - %s", len(titles), now.Format(DateLayout))
}
