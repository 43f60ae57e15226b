package model

import (
	"net/url"
	"strings"
)

// PullRequestDetails is the top-level metadata of a pull request.
// FilesEndpoint is derived from the API's _links.self.href.
type PullRequestDetails struct {
	Title         string
	Body          string // Markdown; empty when the PR has no description.
	CreatedAt     Timestamp
	Author        User
	FilesEndpoint string
}

// PullRequestDetailsParams carries the raw fields needed to build PullRequestDetails.
type PullRequestDetailsParams struct {
	Title     string
	Body      string
	CreatedAt Timestamp
	Author    User
	SelfLink  string // _links.self.href
}

// NewPullRequestDetails validates the raw fields and derives FilesEndpoint.
// It fails if the self link is missing or not an absolute http(s) URL.
func NewPullRequestDetails(p PullRequestDetailsParams) (PullRequestDetails, error) {
	const record = "pull request"

	if p.Title == "" {
		return PullRequestDetails{}, missingField(record, "title")
	}
	if p.CreatedAt.IsZero() {
		return PullRequestDetails{}, missingField(record, "created_at")
	}
	if p.Author.Login == "" {
		return PullRequestDetails{}, missingField(record, "user.login")
	}

	endpoint, err := filesEndpoint(p.SelfLink)
	if err != nil {
		return PullRequestDetails{}, err
	}

	return PullRequestDetails{
		Title:         p.Title,
		Body:          p.Body,
		CreatedAt:     p.CreatedAt,
		Author:        p.Author,
		FilesEndpoint: endpoint,
	}, nil
}

// HasBody reports whether the pull request has a non-blank description.
func (d PullRequestDetails) HasBody() bool {
	return strings.TrimSpace(d.Body) != ""
}

func filesEndpoint(selfLink string) (string, error) {
	const record, field = "pull request", "_links.self.href"

	if selfLink == "" {
		return "", missingField(record, field)
	}

	u, err := url.Parse(selfLink)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &SchemaError{Record: record, Field: field, Reason: "is not an absolute URL: " + selfLink}
	}

	return strings.TrimSuffix(selfLink, "/") + "/files", nil
}
