package model

import "strings"

// PRRef identifies a pull request as parsed from its URL.
// Number is kept opaque; it is passed to the API verbatim.
type PRRef struct {
	Repo   string // "owner/repo"
	Number string
}

// String returns the conventional "owner/repo#number" form.
func (r PRRef) String() string {
	return r.Repo + "#" + r.Number
}

// ParsePRURL extracts the repository and number from a URL of the form
// https://github.com/{owner}/{repo}/pull/{number}. One trailing slash and any
// path segments after the number are ignored.
func ParsePRURL(rawURL string) (PRRef, error) {
	parts := strings.Split(strings.TrimSuffix(rawURL, "/"), "/")
	if len(parts) < 7 || parts[2] != "github.com" || parts[5] != "pull" {
		return PRRef{}, &InvalidURLError{URL: rawURL}
	}

	return PRRef{
		Repo:   parts[3] + "/" + parts[4],
		Number: parts[6],
	}, nil
}
