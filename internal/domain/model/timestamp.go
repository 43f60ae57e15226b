package model

import (
	"regexp"
	"time"
)

const (
	// TimestampLayout is the GitHub API wire format: UTC, seconds precision, literal Z.
	TimestampLayout = "2006-01-02T15:04:05Z"
	// DisplayLayout is the layout used for localized timestamps in rendered documents.
	DisplayLayout = "2006-01-02 15:04:05"
	// DisplayOffset is the constant shift applied for display (KST, no DST).
	DisplayOffset = 9 * time.Hour
	// DisplayZone labels localized timestamps.
	DisplayZone = "KST"
)

// time.Parse tolerates unpadded hours and trailing fractional seconds, so the
// wire shape is checked separately.
var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)

// Timestamp is a UTC instant with seconds precision.
type Timestamp struct {
	t time.Time
}

// ParseTimestamp parses a strict TimestampLayout string.
func ParseTimestamp(s string) (Timestamp, error) {
	if !timestampPattern.MatchString(s) {
		return Timestamp{}, &FormatError{Value: s, Layout: TimestampLayout}
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return Timestamp{}, &FormatError{Value: s, Layout: TimestampLayout}
	}
	return Timestamp{t: t}, nil
}

// NewTimestamp converts an already-decoded time, dropping sub-second precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC().Truncate(time.Second)}
}

// IsZero reports whether the timestamp was never set.
func (ts Timestamp) IsZero() bool {
	return ts.t.IsZero()
}

// Time returns the underlying UTC time.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// String returns the timestamp in TimestampLayout.
func (ts Timestamp) String() string {
	return ts.t.Format(TimestampLayout)
}

// Display returns the timestamp shifted by DisplayOffset in DisplayLayout.
func (ts Timestamp) Display() string {
	return ts.t.Add(DisplayOffset).Format(DisplayLayout)
}

// ConvertTimestamp converts a TimestampLayout string straight to its display form.
func ConvertTimestamp(s string) (string, error) {
	ts, err := ParseTimestamp(s)
	if err != nil {
		return "", err
	}
	return ts.Display(), nil
}
