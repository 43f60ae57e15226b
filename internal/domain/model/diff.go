package model

import (
	"regexp"
	"strconv"
	"strings"
)

// DiffRowKind classifies a rendered patch line.
type DiffRowKind string

const (
	DiffRowHunkHeader DiffRowKind = "hunk-header"
	DiffRowAddition   DiffRowKind = "addition"
	DiffRowDeletion   DiffRowKind = "deletion"
	DiffRowContext    DiffRowKind = "context"
	DiffRowNoNewline  DiffRowKind = "no-newline-marker"
)

// NoNewlineMarker is the line git emits after a final line lacking a newline.
const NoNewlineMarker = `\ No newline at end of file`

// DiffRow is one annotated patch line. OldLine and NewLine are 0 when the
// row does not refer to that side of the diff.
type DiffRow struct {
	Kind    DiffRowKind
	OldLine int
	NewLine int
	Text    string
}

var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// ParsePatch turns a unified diff into annotated rows, tracking old and new
// line numbers across hunks. Lines before the first hunk header (including
// "---"/"+++" file headers) are dropped. Inside a hunk, any line starting with
// "+" or "-" is content, so "--- old" is the deleted line "-- old". A malformed hunk header still yields a row and resets
// both counters to 0.
func ParsePatch(patch string) []DiffRow {
	if patch == "" {
		return nil
	}

	var (
		rows             []DiffRow
		oldLine, newLine int
		inHunk           bool
	)

	for _, line := range strings.Split(patch, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			oldLine, newLine = parseHunkHeader(line)
			inHunk = true
			rows = append(rows, DiffRow{Kind: DiffRowHunkHeader, Text: line})
		case !inHunk:
			continue
		case strings.HasPrefix(line, "+"):
			rows = append(rows, DiffRow{Kind: DiffRowAddition, NewLine: newLine, Text: line})
			newLine++
		case strings.HasPrefix(line, "-"):
			rows = append(rows, DiffRow{Kind: DiffRowDeletion, OldLine: oldLine, Text: line})
			oldLine++
		case strings.HasPrefix(line, " "):
			rows = append(rows, DiffRow{Kind: DiffRowContext, OldLine: oldLine, NewLine: newLine, Text: line})
			oldLine++
			newLine++
		case line == NoNewlineMarker:
			rows = append(rows, DiffRow{Kind: DiffRowNoNewline, Text: line})
		}
	}

	return rows
}

// parseHunkHeader returns the starting old and new line numbers of a hunk
// header such as "@@ -5,2 +5,3 @@". Unparseable headers yield (0, 0).
func parseHunkHeader(line string) (int, int) {
	m := hunkHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0
	}

	oldStart, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0
	}
	newStart, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0
	}
	return oldStart, newStart
}
