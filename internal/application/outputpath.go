package application

import (
	"path/filepath"
	"strings"
	"time"
)

// DateLayout names default output files after the run date.
const DateLayout = "2006-01-02"

// OutputPath returns "{output}.{ext}", or "{YYYY-MM-DD}.{ext}" for an empty
// output. The extension is not doubled when output already carries it.
func OutputPath(output, ext string, now time.Time) string {
	if output == "" {
		output = now.Format(DateLayout)
	}
	if strings.EqualFold(filepath.Ext(output), "."+ext) {
		return output
	}
	return output + "." + ext
}
