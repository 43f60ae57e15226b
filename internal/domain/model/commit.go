package model

import "strings"

// Commit is a single commit on a pull request, in API order.
type Commit struct {
	SHA       string
	Message   string
	Author    User
	Timestamp Timestamp
}

// NewCommit validates a commit record.
func NewCommit(sha, message string, author User, ts Timestamp) (Commit, error) {
	if sha == "" {
		return Commit{}, missingField("commit", "sha")
	}
	if ts.IsZero() {
		return Commit{}, missingField("commit "+sha, "commit.author.date")
	}
	return Commit{SHA: sha, Message: message, Author: author, Timestamp: ts}, nil
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return strings.TrimSpace(subject)
}

// Body returns the message after the subject with blank lines removed.
// Returns "" for single-line messages.
func (c Commit) Body() string {
	_, rest, found := strings.Cut(strings.TrimSpace(c.Message), "\n")
	if !found {
		return ""
	}

	var lines []string
	for _, line := range strings.Split(rest, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
	}
	return strings.Join(lines, "\n")
}

// ShortSHA returns the 7-character abbreviated SHA.
func (c Commit) ShortSHA() string {
	const shortSHALength = 7
	if len(c.SHA) > shortSHALength {
		return c.SHA[:shortSHALength]
	}
	return c.SHA
}
