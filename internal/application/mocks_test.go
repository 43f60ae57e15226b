package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
)

// mockGitHubClient serves canned responses keyed by PR number.
type mockGitHubClient struct {
	details    map[string]model.PullRequestDetails
	detailsErr map[string]error
	pages      map[string][][]model.FileDiff // endpoint -> pages, 1-indexed by position
	pagesErr   error
	reviews    map[string][]model.Review
	reviewsErr error
	commits    map[string][]model.Commit
	commitsErr error

	pageCalls []int
	calls     []string
}

func newMockGitHubClient() *mockGitHubClient {
	return &mockGitHubClient{
		details:    map[string]model.PullRequestDetails{},
		detailsErr: map[string]error{},
		pages:      map[string][][]model.FileDiff{},
		reviews:    map[string][]model.Review{},
		commits:    map[string][]model.Commit{},
	}
}

// addPR registers a pull request with the given file pages.
func (m *mockGitHubClient) addPR(number, title string, pages ...[]model.FileDiff) {
	endpoint := "https://api.github.com/repos/acme/widget/pulls/" + number + "/files"
	m.details[number] = model.PullRequestDetails{
		Title:         title,
		CreatedAt:     model.NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Author:        model.User{Login: "alice", ProfileURL: "https://github.com/alice"},
		FilesEndpoint: endpoint,
	}
	m.pages[endpoint] = pages
}

func (m *mockGitHubClient) FetchPRDetails(_ context.Context, ref model.PRRef) (model.PullRequestDetails, error) {
	m.calls = append(m.calls, "details:"+ref.Number)
	if err := m.detailsErr[ref.Number]; err != nil {
		return model.PullRequestDetails{}, err
	}
	d, ok := m.details[ref.Number]
	if !ok {
		return model.PullRequestDetails{}, &model.RemoteError{Endpoint: ref.String(), StatusCode: 404, Body: "Not Found"}
	}
	return d, nil
}

func (m *mockGitHubClient) FetchFilePage(_ context.Context, endpoint string, page, perPage int) ([]model.FileDiff, error) {
	m.calls = append(m.calls, fmt.Sprintf("files:%d", page))
	m.pageCalls = append(m.pageCalls, page)
	if perPage != FilePageSize {
		return nil, fmt.Errorf("unexpected per_page %d", perPage)
	}
	if m.pagesErr != nil && page == 2 {
		return nil, m.pagesErr
	}
	pages := m.pages[endpoint]
	if page > len(pages) {
		return []model.FileDiff{}, nil
	}
	return pages[page-1], nil
}

func (m *mockGitHubClient) FetchReviews(_ context.Context, ref model.PRRef) ([]model.Review, error) {
	m.calls = append(m.calls, "reviews:"+ref.Number)
	if m.reviewsErr != nil {
		return nil, m.reviewsErr
	}
	return m.reviews[ref.Number], nil
}

func (m *mockGitHubClient) FetchCommits(_ context.Context, ref model.PRRef) ([]model.Commit, error) {
	m.calls = append(m.calls, "commits:"+ref.Number)
	if m.commitsErr != nil {
		return nil, m.commitsErr
	}
	return m.commits[ref.Number], nil
}

// mockRenderer renders a pull request as its title and collates by joining.
type mockRenderer struct {
	failFor  string
	docTitle string
	docErr   error
}

func (m *mockRenderer) RenderPullRequest(_ context.Context, pr *model.PullRequest) (string, error) {
	if pr.Details.Title == m.failFor {
		return "", errors.New("render failed")
	}
	return "[" + pr.Details.Title + "]", nil
}

func (m *mockRenderer) RenderDocument(_ context.Context, title string, fragments []string) (string, error) {
	m.docTitle = title
	if m.docErr != nil {
		return "", m.docErr
	}
	return strings.Join(fragments, ""), nil
}

// mockWriter records what it was asked to write.
type mockWriter struct {
	err    error
	writes int
	html   string
	path   string
}

func (m *mockWriter) Write(_ context.Context, html string, path string) error {
	m.writes++
	m.html = html
	m.path = path
	return m.err
}

func (m *mockWriter) Extension() string {
	return "pdf"
}

// mockHelper is a stub CredentialHelper.
type mockHelper struct {
	token  string
	err    error
	called bool
}

func (m *mockHelper) Token(_ context.Context) (string, error) {
	m.called = true
	return m.token, m.err
}

// fullPage returns FilePageSize files named after prefix.
func fullPage(prefix string) []model.FileDiff {
	names := make([]string, FilePageSize)
	for i := range names {
		names[i] = fmt.Sprintf("%s%03d.go", prefix, i)
	}
	return fileDiffs(names...)
}

func fileDiffs(names ...string) []model.FileDiff {
	files := make([]model.FileDiff, 0, len(names))
	for _, n := range names {
		files = append(files, model.FileDiff{Filename: n, Status: model.FileStatusModified})
	}
	return files
}
