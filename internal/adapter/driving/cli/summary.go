package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ericfisherdev/pr2pdf/internal/application"
)

const (
	statusWidth = 6
	refWidth    = 28
	filesWidth  = 5
	detailWidth = 72
)

// PadRight pads str with spaces to width terminal cells.
func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// fit truncates str to width cells, then pads it.
func fit(str string, width int) string {
	return PadRight(runewidth.Truncate(str, width, "..."), width)
}

// printSummary writes one line per input URL: status, reference, file count
// and either the title or the failure.
func printSummary(out io.Writer, report *application.ExportReport) {
	if report == nil || len(report.Results) == 0 {
		return
	}

	fmt.Fprintln(out, strings.TrimRight(fit("STATUS", statusWidth)+" "+fit("PULL REQUEST", refWidth)+" "+fit("FILES", filesWidth)+" TITLE / ERROR", " "))

	for _, r := range report.Results {
		status, ref, files := "ok", r.Ref, strconv.Itoa(r.Files)
		detail := runewidth.Truncate(r.Title, detailWidth, "...")
		if !r.OK() {
			// Failure details are never truncated.
			status, files, detail = "FAILED", "-", firstLine(r.Err.Error())
			if ref == "" {
				ref, detail = "-", r.URL+": "+detail
			}
		}

		line := fit(status, statusWidth) + " " + fit(ref, refWidth) + " " + fit(files, filesWidth) + " " + detail
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}

	fmt.Fprintf(out, "%d of %d pull request(s) exported\n", report.Succeeded(), len(report.Results))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
