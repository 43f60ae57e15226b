// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
	"github.com/ericfisherdev/pr2pdf/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// listPageSize is the per_page value sent on every list endpoint.
const listPageSize = 100

// Client implements the driven.GitHubClient port using the go-github library.
// Requests are never retried.
type Client struct {
	gh      *gh.Client
	timeout time.Duration
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching, backed by cache)
//  2. go-github (GitHub REST API client with bearer token auth)
//
// A nil cache selects an in-memory cache. A zero timeout disables the
// per-request deadline.
func NewClient(token, baseURL string, cache httpcache.Cache, timeout time.Duration) (*Client, error) {
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}
	cacheTransport := httpcache.NewTransport(cache)
	cacheTransport.MarkCachedResponses = true

	c, err := NewClientWithHTTPClient(cacheTransport.Client(), baseURL, token)
	if err != nil {
		return nil, err
	}
	c.timeout = timeout

	return c, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	client := gh.NewClient(httpClient)
	client.BaseURL = u

	return &Client{gh: client.WithAuthToken(token)}, nil
}

// FetchPRDetails retrieves the pull request record and derives its files endpoint
// from _links.self.href.
func (c *Client) FetchPRDetails(ctx context.Context, ref model.PRRef) (model.PullRequestDetails, error) {
	path, err := pullPath(ref, "")
	if err != nil {
		return model.PullRequestDetails{}, err
	}

	var pr pullRequestPayload
	if err := c.get(ctx, path, nil, &pr); err != nil {
		return model.PullRequestDetails{}, fmt.Errorf("fetching pull request %s: %w", ref, err)
	}

	details, err := mapPullRequestDetails(&pr)
	if err != nil {
		return model.PullRequestDetails{}, fmt.Errorf("mapping pull request %s: %w", ref, err)
	}
	return details, nil
}

// FetchFilePage retrieves one page of changed files from the derived files endpoint.
func (c *Client) FetchFilePage(ctx context.Context, endpoint string, page, perPage int) ([]model.FileDiff, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))

	var files []*gh.CommitFile
	if err := c.get(ctx, endpoint, query, &files); err != nil {
		return nil, fmt.Errorf("listing files (page %d): %w", page, err)
	}

	result := make([]model.FileDiff, 0, len(files))
	for _, f := range files {
		diff, err := model.NewFileDiff(f.GetFilename(), f.GetStatus(), f.GetPatch())
		if err != nil {
			return nil, fmt.Errorf("mapping files (page %d): %w", page, err)
		}
		result = append(result, diff)
	}

	return result, nil
}

// FetchReviews retrieves the reviews of a pull request from a single request.
func (c *Client) FetchReviews(ctx context.Context, ref model.PRRef) ([]model.Review, error) {
	path, err := pullPath(ref, "reviews")
	if err != nil {
		return nil, err
	}

	var reviews []*gh.PullRequestReview
	if err := c.get(ctx, path, perPageQuery(), &reviews); err != nil {
		return nil, fmt.Errorf("listing reviews for %s: %w", ref, err)
	}

	result := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		review, err := model.NewReview(r.GetUser().GetLogin(), r.GetState())
		if err != nil {
			return nil, fmt.Errorf("mapping reviews for %s: %w", ref, err)
		}
		result = append(result, review)
	}

	return result, nil
}

// FetchCommits retrieves the commits of a pull request from a single request, in API order.
func (c *Client) FetchCommits(ctx context.Context, ref model.PRRef) ([]model.Commit, error) {
	path, err := pullPath(ref, "commits")
	if err != nil {
		return nil, err
	}

	var commits []*commitPayload
	if err := c.get(ctx, path, perPageQuery(), &commits); err != nil {
		return nil, fmt.Errorf("listing commits for %s: %w", ref, err)
	}

	result := make([]model.Commit, 0, len(commits))
	for _, rc := range commits {
		commit, err := mapCommit(rc)
		if err != nil {
			return nil, fmt.Errorf("mapping commits for %s: %w", ref, err)
		}
		result = append(result, commit)
	}

	return result, nil
}

// get issues a single GET against urlStr (relative to the base URL, or
// absolute) and decodes the JSON body into v. Non-2xx responses and transport
// failures become *model.RemoteError; undecodable 2xx bodies become
// *model.SchemaError.
func (c *Client) get(ctx context.Context, urlStr string, query url.Values, v any) error {
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(urlStr, "?") {
			sep = "&"
		}
		urlStr += sep + query.Encode()
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.gh.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", urlStr, err)
	}
	endpoint := req.URL.String()

	resp, err := c.gh.Do(ctx, req, v)
	logRateLimit(resp, endpoint)
	if err == nil {
		return nil
	}

	if resp != nil && resp.Response != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &model.SchemaError{Record: "response from " + endpoint, Field: "(body)", Reason: "is malformed: " + err.Error()}
	}
	return remoteError(endpoint, resp, err)
}

// remoteError builds a RemoteError, preferring the raw response body (go-github
// re-populates it after reading the error) over the decoded message.
func remoteError(endpoint string, resp *gh.Response, err error) *model.RemoteError {
	re := &model.RemoteError{Endpoint: endpoint, Body: err.Error(), Err: err}
	if resp == nil || resp.Response == nil {
		return re
	}

	re.StatusCode = resp.StatusCode

	if resp.Body != nil {
		if data, readErr := io.ReadAll(resp.Body); readErr == nil && len(data) > 0 {
			re.Body = strings.TrimSpace(string(data))
			return re
		}
	}

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Message != "" {
		re.Body = errResp.Message
	}
	return re
}

// pullRequestPayload decodes a pull request with created_at kept as the raw
// string, so it is held to the strict timestamp layout rather than go-github's
// lenient RFC 3339 decoding.
type pullRequestPayload struct {
	gh.PullRequest
	CreatedAt string `json:"created_at"`
}

// commitPayload decodes the fields read from a pull request commit, keeping
// commit.author.date as the raw string.
type commitPayload struct {
	SHA    string   `json:"sha"`
	Author *gh.User `json:"author"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// mapPullRequestDetails converts a decoded pull request to domain details.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapPullRequestDetails(pr *pullRequestPayload) (model.PullRequestDetails, error) {
	author, err := model.NewUser("pull request", "user", pr.GetUser().GetLogin(), pr.GetUser().GetHTMLURL())
	if err != nil {
		return model.PullRequestDetails{}, err
	}

	created, err := parseTimestamp(pr.CreatedAt)
	if err != nil {
		return model.PullRequestDetails{}, fmt.Errorf("created_at: %w", err)
	}

	return model.NewPullRequestDetails(model.PullRequestDetailsParams{
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		CreatedAt: created,
		Author:    author,
		SelfLink:  pr.GetLinks().GetSelf().GetHRef(),
	})
}

// mapCommit converts a decoded commit to a domain Commit.
// A commit whose author has no linked GitHub account is rejected.
func mapCommit(rc *commitPayload) (model.Commit, error) {
	record := "commit " + rc.SHA

	author, err := model.NewUser(record, "author", rc.Author.GetLogin(), rc.Author.GetHTMLURL())
	if err != nil {
		return model.Commit{}, err
	}

	ts, err := parseTimestamp(rc.Commit.Author.Date)
	if err != nil {
		return model.Commit{}, fmt.Errorf("%s: commit.author.date: %w", record, err)
	}

	return model.NewCommit(rc.SHA, rc.Commit.Message, author, ts)
}

// parseTimestamp parses a strict API timestamp. An absent value yields the
// zero Timestamp so the record constructor reports the missing field.
func parseTimestamp(raw string) (model.Timestamp, error) {
	if raw == "" {
		return model.Timestamp{}, nil
	}
	return model.ParseTimestamp(raw)
}

// pullPath builds the API path of a pull request or one of its sub-resources.
// Path segments are escaped so the opaque number is sent verbatim.
func pullPath(ref model.PRRef, sub string) (string, error) {
	owner, repo, err := splitRepo(ref.Repo)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("repos/%s/%s/pulls/%s", url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(ref.Number))
	if sub != "" {
		path += "/" + sub
	}
	return path, nil
}

func perPageQuery() url.Values {
	return url.Values{"per_page": []string{strconv.Itoa(listPageSize)}}
}

// logRateLimit logs rate limit information from a GitHub API response.
func logRateLimit(resp *gh.Response, endpoint string) {
	if resp == nil || resp.Response == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"from_cache", resp.Header.Get(httpcache.XFromCache) == "1",
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits "owner/repo" into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
