package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
)

const prURL = "https://github.com/acme/widget/pull/42"

func TestFetch_AssemblesAggregate(t *testing.T) {
	gh := newMockGitHubClient()
	gh.addPR("42", "Add widgets", fileDiffs("a.go", "b.go"), fileDiffs("c.go"))
	gh.reviews["42"] = []model.Review{{ReviewerLogin: "a"}, {ReviewerLogin: "a"}, {ReviewerLogin: "b"}}
	gh.commits["42"] = []model.Commit{{SHA: "1"}, {SHA: "2"}}

	pr, err := NewFetchService(gh, 0).Fetch(context.Background(), prURL)

	require.NoError(t, err)
	assert.Equal(t, model.PRRef{Repo: "acme/widget", Number: "42"}, pr.Ref)
	assert.Equal(t, prURL, pr.URL)
	assert.Equal(t, "Add widgets", pr.Details.Title)
	assert.Equal(t, []string{"a.go", "b.go", "c.go"}, []string{pr.Files[0].Filename, pr.Files[1].Filename, pr.Files[2].Filename})
	assert.Equal(t, 2, pr.Reviewers.Len())
	assert.Len(t, pr.Commits, 2)
	assert.Equal(t, []string{"details:42", "files:1", "files:2", "files:3", "reviews:42", "commits:42"}, gh.calls)
}

func TestFetch_PaginationStopsAtFirstEmptyPage(t *testing.T) {
	gh := newMockGitHubClient()
	gh.addPR("42", "t", fileDiffs("a.go"), fileDiffs("b.go"), []model.FileDiff{}, fileDiffs("never.go"))

	pr, err := NewFetchService(gh, 10).Fetch(context.Background(), prURL)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, gh.pageCalls)
	require.Len(t, pr.Files, 2)
	assert.Equal(t, "a.go", pr.Files[0].Filename)
	assert.Equal(t, "b.go", pr.Files[1].Filename)
}

func TestFetch_PaginationCeiling(t *testing.T) {
	gh := newMockGitHubClient()
	gh.addPR("42", "t", fileDiffs("1"), fileDiffs("2"), fileDiffs("3"), fileDiffs("4"))

	pr, err := NewFetchService(gh, 2).Fetch(context.Background(), prURL)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, gh.pageCalls)
	assert.Len(t, pr.Files, 2)
}

func TestFetch_NoFiles(t *testing.T) {
	gh := newMockGitHubClient()
	gh.addPR("42", "t")

	pr, err := NewFetchService(gh, 0).Fetch(context.Background(), prURL)

	require.NoError(t, err)
	assert.NotNil(t, pr.Files)
	assert.Empty(t, pr.Files)
	assert.Equal(t, []int{1}, gh.pageCalls)
}

func TestFetch_InvalidURLMakesNoCalls(t *testing.T) {
	gh := newMockGitHubClient()

	_, err := NewFetchService(gh, 0).Fetch(context.Background(), "https://gitlab.com/acme/widget/pull/42")

	var urlErr *model.InvalidURLError
	require.ErrorAs(t, err, &urlErr)
	assert.Empty(t, gh.calls)
}

func TestFetch_FilePageErrorAbortsWholeFetch(t *testing.T) {
	gh := newMockGitHubClient()
	gh.addPR("42", "t", fileDiffs("a.go"), fileDiffs("b.go"))
	gh.pagesErr = &model.RemoteError{Endpoint: "files", StatusCode: 500, Body: "boom"}

	pr, err := NewFetchService(gh, 0).Fetch(context.Background(), prURL)

	assert.Nil(t, pr)
	assert.Equal(t, []int{1, 2}, gh.pageCalls)
	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 500, remoteErr.StatusCode)
	assert.NotContains(t, gh.calls, "reviews:42")
}

func TestFetch_ReviewErrorAborts(t *testing.T) {
	gh := newMockGitHubClient()
	gh.addPR("42", "t")
	gh.reviewsErr = errors.New("reviews down")

	_, err := NewFetchService(gh, 0).Fetch(context.Background(), prURL)

	require.EqualError(t, err, "reviews down")
	assert.NotContains(t, gh.calls, "commits:42")
}

func TestFetch_CommitErrorAborts(t *testing.T) {
	gh := newMockGitHubClient()
	gh.addPR("42", "t", fileDiffs("a.go"))
	gh.commitsErr = &model.RemoteError{Endpoint: "commits", StatusCode: 502, Body: "bad gateway"}

	pr, err := NewFetchService(gh, 0).Fetch(context.Background(), prURL)

	assert.Nil(t, pr)
	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 502, remoteErr.StatusCode)
	assert.Equal(t, []string{"details:42", "files:1", "files:2", "reviews:42", "commits:42"}, gh.calls)
}

func TestFetchFiles_TruncationReporting(t *testing.T) {
	tests := []struct {
		name          string
		pages         [][]model.FileDiff
		maxPages      int
		wantFiles     int
		wantTruncated bool
		wantCalls     []int
	}{
		{"more pages beyond ceiling", [][]model.FileDiff{fullPage("a"), fullPage("b"), fullPage("c")}, 2, 2 * FilePageSize, true, []int{1, 2, 3}},
		{"exactly ceiling full pages", [][]model.FileDiff{fullPage("a"), fullPage("b")}, 2, 2 * FilePageSize, false, []int{1, 2, 3}},
		{"ceiling reached on short page", [][]model.FileDiff{fullPage("a"), fileDiffs("last.go")}, 2, FilePageSize + 1, false, []int{1, 2}},
		{"empty page before ceiling", [][]model.FileDiff{fileDiffs("a.go")}, 5, 1, false, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := newMockGitHubClient()
			gh.addPR("42", "t", tt.pages...)
			svc := NewFetchService(gh, tt.maxPages)

			files, truncated, err := svc.fetchFiles(context.Background(), model.PRRef{Repo: "acme/widget", Number: "42"}, gh.details["42"].FilesEndpoint)

			require.NoError(t, err)
			assert.Len(t, files, tt.wantFiles)
			assert.Equal(t, tt.wantTruncated, truncated)
			assert.Equal(t, tt.wantCalls, gh.pageCalls)
		})
	}
}
