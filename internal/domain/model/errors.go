package model

import "fmt"

// ExpectedPRURLFormat is the pull request URL shape accepted by ParsePRURL.
const ExpectedPRURLFormat = "https://github.com/owner/repo/pull/number"

// InvalidURLError is returned when a pull request URL does not match ExpectedPRURLFormat.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid GitHub PR URL %q: expected format %s", e.URL, ExpectedPRURLFormat)
}

// FormatError is returned when a timestamp does not match the API wire layout.
type FormatError struct {
	Value  string
	Layout string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("timestamp %q does not match layout %s", e.Value, e.Layout)
}

// SchemaError reports a required API field that is missing or malformed.
// Record names the record under construction ("pull request", "commit"),
// Field the JSON path within it.
type SchemaError struct {
	Record string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}
	return fmt.Sprintf("%s: field %q %s", e.Record, e.Field, reason)
}

func missingField(record, field string) *SchemaError {
	return &SchemaError{Record: record, Field: field}
}

// RemoteError is any failed GitHub API call. StatusCode is 0 when no
// response was received at all; Body carries the response body (or the
// transport error text) for diagnostics.
type RemoteError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request to %s failed: %s", e.Endpoint, e.Body)
	}
	return fmt.Sprintf("request to %s failed with HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// CredentialError is returned when no usable GitHub token could be resolved.
type CredentialError struct {
	Reason string
	Err    error
}

func (e *CredentialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolving GitHub credentials: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("resolving GitHub credentials: %s", e.Reason)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// RenderError is returned when the document backend fails to produce the output artifact.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
