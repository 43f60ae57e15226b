// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
)

// GitHubClient defines the driven port for reading pull request data from the
// GitHub REST API. Every method issues exactly one request; pagination over the
// files endpoint is driven by the caller. Failures are returned as
// *model.RemoteError (transport or non-2xx) or *model.SchemaError (body shape).
type GitHubClient interface {
	// FetchPRDetails returns the top-level pull request record, including the
	// files endpoint derived from its self link.
	FetchPRDetails(ctx context.Context, ref model.PRRef) (model.PullRequestDetails, error)

	// FetchFilePage returns one page of changed files from endpoint. An empty
	// slice means the listing is exhausted.
	FetchFilePage(ctx context.Context, endpoint string, page, perPage int) ([]model.FileDiff, error)

	// FetchReviews returns the reviews from a single (unpaginated) request.
	FetchReviews(ctx context.Context, ref model.PRRef) ([]model.Review, error)

	// FetchCommits returns the commits from a single (unpaginated) request, in API order.
	FetchCommits(ctx context.Context, ref model.PRRef) ([]model.Commit, error)
}
