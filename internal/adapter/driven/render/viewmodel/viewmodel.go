// Package viewmodel defines presentation-ready structs for the document components.
// View models decouple markup generation from domain model types.
package viewmodel

// UserViewModel is a linked GitHub account.
type UserViewModel struct {
	Login string
	URL   string
}

// PullRequestViewModel holds everything rendered for one pull request.
type PullRequestViewModel struct {
	Title     string
	Ref       string // "owner/repo#number"
	URL       string
	Author    UserViewModel
	CreatedAt string // localized display time
	TimeZone  string

	// Reviewers is sorted by login; empty renders the placeholder.
	Reviewers []UserViewModel

	// OverviewHTML is the sanitized description up to "Key Changes:", and
	// KeyChanges the lines after it. When both are empty, Commits is rendered
	// in their place.
	OverviewHTML string
	KeyChanges   []string
	Commits      []CommitViewModel

	Files []FileViewModel
}

// CommitViewModel holds presentation-ready data for one commit in the fallback overview.
type CommitViewModel struct {
	ShortSHA string
	Subject  string
	Body     string // blank lines removed; empty when the message is one line
	Author   UserViewModel
	Date     string
}

// FileViewModel holds presentation-ready data for one changed file.
type FileViewModel struct {
	Filename string
	Status   string
	Rows     []DiffRowViewModel // empty for binary files and pure renames
}

// DiffRowViewModel is one rendered patch line. OldLine and NewLine are
// pre-formatted and blank when the row has no line on that side.
type DiffRowViewModel struct {
	Class   string
	OldLine string
	NewLine string
	Text    string
}
