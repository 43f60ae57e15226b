// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
	"github.com/ericfisherdev/pr2pdf/internal/domain/port/driven"
)

// FilePageSize is the per_page value used when listing changed files.
const FilePageSize = 100

// DefaultMaxFilePages bounds file pagination. GitHub lists at most 3000 files
// per pull request, i.e. 30 pages of 100.
const DefaultMaxFilePages = 30

// FetchService assembles a PullRequest aggregate from the GitHub API.
type FetchService struct {
	ghClient     driven.GitHubClient
	maxFilePages int
}

// NewFetchService creates a new FetchService. A non-positive maxFilePages
// selects DefaultMaxFilePages.
func NewFetchService(ghClient driven.GitHubClient, maxFilePages int) *FetchService {
	if maxFilePages <= 0 {
		maxFilePages = DefaultMaxFilePages
	}
	return &FetchService{
		ghClient:     ghClient,
		maxFilePages: maxFilePages,
	}
}

// Fetch parses rawURL and retrieves details, files, reviewers and commits, in
// that order. The first failing step aborts the fetch; *model.InvalidURLError
// is returned unwrapped.
func (s *FetchService) Fetch(ctx context.Context, rawURL string) (*model.PullRequest, error) {
	ref, err := model.ParsePRURL(rawURL)
	if err != nil {
		return nil, err
	}

	details, err := s.ghClient.FetchPRDetails(ctx, ref)
	if err != nil {
		return nil, err
	}

	files, truncated, err := s.fetchFiles(ctx, ref, details.FilesEndpoint)
	if err != nil {
		return nil, err
	}
	if truncated {
		slog.Warn("file listing truncated at page ceiling",
			"ref", ref.String(),
			"max_pages", s.maxFilePages,
			"files", len(files),
		)
	}

	reviews, err := s.ghClient.FetchReviews(ctx, ref)
	if err != nil {
		return nil, err
	}

	commits, err := s.ghClient.FetchCommits(ctx, ref)
	if err != nil {
		return nil, err
	}

	slog.Debug("pull request fetched",
		"ref", ref.String(),
		"files", len(files),
		"reviews", len(reviews),
		"commits", len(commits),
	)

	return model.NewPullRequest(ref, rawURL, details, files, model.ReviewersOf(reviews), commits), nil
}

// fetchFiles pages through the files endpoint until a page comes back empty.
// At most maxFilePages pages are kept. When every kept page is full, the next
// page is requested once to tell a truncated listing from one that ends
// exactly at the ceiling.
func (s *FetchService) fetchFiles(ctx context.Context, ref model.PRRef, endpoint string) ([]model.FileDiff, bool, error) {
	var all []model.FileDiff

	for page := 1; page <= s.maxFilePages; page++ {
		files, err := s.ghClient.FetchFilePage(ctx, endpoint, page, FilePageSize)
		if err != nil {
			return nil, false, fmt.Errorf("fetching files for %s: %w", ref, err)
		}
		if len(files) == 0 {
			return all, false, nil
		}
		all = append(all, files...)
	}

	if len(all) < s.maxFilePages*FilePageSize {
		return all, false, nil
	}

	next, err := s.ghClient.FetchFilePage(ctx, endpoint, s.maxFilePages+1, FilePageSize)
	if err != nil {
		return nil, false, fmt.Errorf("fetching files for %s: %w", ref, err)
	}
	return all, len(next) > 0, nil
}
