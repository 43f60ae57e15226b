// Package model defines the pull request export domain: records built from
// GitHub API responses, the URL parser, timestamp conversion and diff rows.
package model

import (
	"slices"

	"github.com/samber/lo"
)

// ReviewerSet is the distinct set of logins that reviewed a pull request.
type ReviewerSet map[string]struct{}

// NewReviewerSet builds a set from logins, ignoring duplicates.
func NewReviewerSet(logins ...string) ReviewerSet {
	set := make(ReviewerSet, len(logins))
	for _, login := range logins {
		set[login] = struct{}{}
	}
	return set
}

// Contains reports whether login reviewed the pull request.
func (s ReviewerSet) Contains(login string) bool {
	_, ok := s[login]
	return ok
}

// Len returns the number of distinct reviewers.
func (s ReviewerSet) Len() int {
	return len(s)
}

// Sorted returns the logins in lexical order.
func (s ReviewerSet) Sorted() []string {
	logins := lo.Keys(map[string]struct{}(s))
	slices.Sort(logins)
	return logins
}

// PullRequest is the aggregate produced by one fetch and consumed by one render.
// Files keep API pagination order; Commits keep API order.
type PullRequest struct {
	Ref       PRRef
	URL       string
	Details   PullRequestDetails
	Files     []FileDiff
	Reviewers ReviewerSet
	Commits   []Commit
}

// NewPullRequest assembles the aggregate, normalizing nil collections to empty.
func NewPullRequest(ref PRRef, url string, details PullRequestDetails, files []FileDiff, reviewers ReviewerSet, commits []Commit) *PullRequest {
	if files == nil {
		files = []FileDiff{}
	}
	if reviewers == nil {
		reviewers = ReviewerSet{}
	}
	if commits == nil {
		commits = []Commit{}
	}

	return &PullRequest{
		Ref:       ref,
		URL:       url,
		Details:   details,
		Files:     files,
		Reviewers: reviewers,
		Commits:   commits,
	}
}
