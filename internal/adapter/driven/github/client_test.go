package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/ericfisherdev/pr2pdf/internal/adapter/driven/github"
	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) (*ghAdapter.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "test-token")
	require.NoError(t, err)

	return client, server
}

var testRef = model.PRRef{Repo: "acme/widget", Number: "42"}

type userJSON struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

type linkJSON struct {
	HRef string `json:"href"`
}

type linksJSON struct {
	Self *linkJSON `json:"self,omitempty"`
}

type prJSON struct {
	Title   string     `json:"title"`
	Body    *string    `json:"body"`
	Created string     `json:"created_at"`
	User    *userJSON  `json:"user,omitempty"`
	Links   *linksJSON `json:"_links,omitempty"`
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestFetchPRDetails_DerivesFilesEndpoint(t *testing.T) {
	body := "Adds widgets."
	var gotAuth string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widget/pulls/42", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		writeJSON(t, w, prJSON{
			Title:   "Add widgets",
			Body:    &body,
			Created: "2024-01-01T16:00:00Z",
			User:    &userJSON{Login: "alice", HTMLURL: "https://github.com/alice"},
			Links:   &linksJSON{Self: &linkJSON{HRef: "http://" + r.Host + "/repos/acme/widget/pulls/42"}},
		})
	})

	client, server := newTestClient(t, handler)
	details, err := client.FetchPRDetails(context.Background(), testRef)

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "Add widgets", details.Title)
	assert.Equal(t, "Adds widgets.", details.Body)
	assert.Equal(t, "alice", details.Author.Login)
	assert.Equal(t, "https://github.com/alice", details.Author.ProfileURL)
	assert.Equal(t, "2024-01-02 01:00:00", details.CreatedAt.Display())
	assert.Equal(t, server.URL+"/repos/acme/widget/pulls/42/files", details.FilesEndpoint)
}

func TestFetchPRDetails_NullBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, prJSON{
			Title:   "No description",
			Created: "2024-01-01T00:00:00Z",
			User:    &userJSON{Login: "alice", HTMLURL: "https://github.com/alice"},
			Links:   &linksJSON{Self: &linkJSON{HRef: "https://api.github.com/repos/acme/widget/pulls/42"}},
		})
	})

	client, _ := newTestClient(t, handler)
	details, err := client.FetchPRDetails(context.Background(), testRef)

	require.NoError(t, err)
	assert.False(t, details.HasBody())
}

func TestFetchPRDetails_StrictCreatedAt(t *testing.T) {
	for _, created := range []string{"2024-01-01T09:00:00+09:00", "2024-01-01T00:00:00.123Z"} {
		t.Run(created, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, prJSON{
					Title:   "Offset timestamp",
					Created: created,
					User:    &userJSON{Login: "alice", HTMLURL: "https://github.com/alice"},
					Links:   &linksJSON{Self: &linkJSON{HRef: "https://api.github.com/repos/acme/widget/pulls/42"}},
				})
			})

			client, _ := newTestClient(t, handler)
			_, err := client.FetchPRDetails(context.Background(), testRef)

			var fmtErr *model.FormatError
			require.ErrorAs(t, err, &fmtErr)
			assert.Equal(t, created, fmtErr.Value)
			assert.Contains(t, err.Error(), "created_at")
		})
	}
}

func TestFetchPRDetails_MissingCreatedAt(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, prJSON{
			Title: "No timestamp",
			User:  &userJSON{Login: "alice", HTMLURL: "https://github.com/alice"},
			Links: &linksJSON{Self: &linkJSON{HRef: "https://api.github.com/repos/acme/widget/pulls/42"}},
		})
	})

	client, _ := newTestClient(t, handler)
	_, err := client.FetchPRDetails(context.Background(), testRef)

	var schemaErr *model.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "created_at", schemaErr.Field)
}

func TestFetchPRDetails_MissingSelfLink(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, prJSON{
			Title:   "Broken",
			Created: "2024-01-01T00:00:00Z",
			User:    &userJSON{Login: "alice", HTMLURL: "https://github.com/alice"},
			Links:   &linksJSON{},
		})
	})

	client, _ := newTestClient(t, handler)
	_, err := client.FetchPRDetails(context.Background(), testRef)

	var schemaErr *model.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "_links.self.href", schemaErr.Field)
}

func TestFetchPRDetails_MissingAuthor(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, prJSON{
			Title:   "Ghost",
			Created: "2024-01-01T00:00:00Z",
			Links:   &linksJSON{Self: &linkJSON{HRef: "https://api.github.com/repos/acme/widget/pulls/42"}},
		})
	})

	client, _ := newTestClient(t, handler)
	_, err := client.FetchPRDetails(context.Background(), testRef)

	var schemaErr *model.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "user.login", schemaErr.Field)
}

func TestFetchPRDetails_RemoteErrorCarriesBody(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found","documentation_url":"https://docs.github.com/rest"}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.FetchPRDetails(context.Background(), testRef)

	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
	assert.Contains(t, remoteErr.Body, "Not Found")
	assert.Contains(t, remoteErr.Endpoint, "/repos/acme/widget/pulls/42")
	assert.Equal(t, 1, calls, "requests must not be retried")
}

func TestFetchPRDetails_ServerErrorNotRetried(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	client, _ := newTestClient(t, handler)
	_, err := client.FetchPRDetails(context.Background(), testRef)

	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusBadGateway, remoteErr.StatusCode)
	assert.Contains(t, remoteErr.Body, "upstream exploded")
	assert.Equal(t, 1, calls)
}

func TestFetchPRDetails_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(&http.Client{}, baseURL, "test-token")
	require.NoError(t, err)

	_, err = client.FetchPRDetails(context.Background(), testRef)

	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Zero(t, remoteErr.StatusCode)
}

func TestFetchPRDetails_MalformedBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title": 12}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.FetchPRDetails(context.Background(), testRef)

	var schemaErr *model.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestFetchPRDetails_InvalidRepo(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	_, err := client.FetchPRDetails(context.Background(), model.PRRef{Repo: "acme", Number: "1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected owner/repo")
}

func TestFetchFilePage_SendsPaginationParams(t *testing.T) {
	var gotQuery map[string]string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widget/pulls/42/files", r.URL.Path)
		gotQuery = map[string]string{
			"page":     r.URL.Query().Get("page"),
			"per_page": r.URL.Query().Get("per_page"),
		}
		writeJSON(t, w, []map[string]any{
			{"filename": "main.go", "status": "modified", "patch": "@@ -1 +1 @@\n-a\n+b"},
			{"filename": "logo.png", "status": "added"},
		})
	})

	client, server := newTestClient(t, handler)
	files, err := client.FetchFilePage(context.Background(), server.URL+"/repos/acme/widget/pulls/42/files", 3, 100)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"page": "3", "per_page": "100"}, gotQuery)
	require.Len(t, files, 2)
	assert.Equal(t, "main.go", files[0].Filename)
	assert.Equal(t, model.FileStatusModified, files[0].Status)
	assert.True(t, files[0].HasPatch())
	assert.Equal(t, "logo.png", files[1].Filename)
	assert.False(t, files[1].HasPatch())
}

func TestFetchFilePage_EmptyPage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []any{})
	})

	client, server := newTestClient(t, handler)
	files, err := client.FetchFilePage(context.Background(), server.URL+"/files", 1, 100)

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFetchFilePage_SchemaError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{{"status": "added"}})
	})

	client, server := newTestClient(t, handler)
	_, err := client.FetchFilePage(context.Background(), server.URL+"/files", 1, 100)

	var schemaErr *model.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "filename", schemaErr.Field)
}

func TestFetchReviews_SingleRequest(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/repos/acme/widget/pulls/42/reviews", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		// A Link header must not trigger a follow-up request.
		w.Header().Set("Link", `<http://`+r.Host+r.URL.Path+`?page=2>; rel="next"`)
		writeJSON(t, w, []map[string]any{
			{"user": map[string]string{"login": "a"}, "state": "COMMENTED"},
			{"user": map[string]string{"login": "a"}, "state": "APPROVED"},
			{"user": map[string]string{"login": "b"}, "state": "CHANGES_REQUESTED"},
		})
	})

	client, _ := newTestClient(t, handler)
	reviews, err := client.FetchReviews(context.Background(), testRef)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, reviews, 3)
	assert.Equal(t, model.ReviewStateApproved, reviews[1].State)
	assert.Equal(t, 2, model.ReviewersOf(reviews).Len())
}

func TestFetchReviews_RemoteError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.FetchReviews(context.Background(), testRef)

	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusForbidden, remoteErr.StatusCode)
	assert.Contains(t, remoteErr.Body, "Resource not accessible")
}

func TestFetchCommits_MapsFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widget/pulls/42/commits", r.URL.Path)
		writeJSON(t, w, []map[string]any{
			{
				"sha": "0123456789abcdef",
				"commit": map[string]any{
					"message": "Fix parser\n\nHandle empty input.",
					"author":  map[string]string{"date": "2024-03-01T10:00:00Z"},
				},
				"author": map[string]string{"login": "carol", "html_url": "https://github.com/carol"},
			},
			{
				"sha": "fedcba9876543210",
				"commit": map[string]any{
					"message": "Second",
					"author":  map[string]string{"date": "2024-03-01T18:30:00Z"},
				},
				"author": map[string]string{"login": "dave", "html_url": "https://github.com/dave"},
			},
		})
	})

	client, _ := newTestClient(t, handler)
	commits, err := client.FetchCommits(context.Background(), testRef)

	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "Fix parser", commits[0].Subject())
	assert.Equal(t, "carol", commits[0].Author.Login)
	assert.Equal(t, "2024-03-01 19:00:00", commits[0].Timestamp.Display())
	assert.Equal(t, "dave", commits[1].Author.Login)
	assert.Equal(t, "2024-03-02 03:30:00", commits[1].Timestamp.Display())
}

func TestFetchCommits_UnlinkedAuthor(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{
				"sha":    "0123456",
				"commit": map[string]any{"message": "x", "author": map[string]string{"date": "2024-03-01T10:00:00Z"}},
				"author": nil,
			},
		})
	})

	client, _ := newTestClient(t, handler)
	_, err := client.FetchCommits(context.Background(), testRef)

	var schemaErr *model.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "author.login", schemaErr.Field)
}

func TestFetchCommits_StrictDate(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{
				"sha":    "0123456",
				"commit": map[string]any{"message": "x", "author": map[string]string{"date": "2024-03-01 10:00:00"}},
				"author": map[string]string{"login": "carol", "html_url": "https://github.com/carol"},
			},
		})
	})

	client, _ := newTestClient(t, handler)
	_, err := client.FetchCommits(context.Background(), testRef)

	var fmtErr *model.FormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Contains(t, err.Error(), "commit.author.date")
}

func TestNewClient_TimeoutBoundsRequests(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client, err := ghAdapter.NewClient("test-token", server.URL, nil, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = client.FetchReviews(context.Background(), testRef)

	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Zero(t, remoteErr.StatusCode)
}
