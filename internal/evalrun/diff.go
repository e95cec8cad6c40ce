package evalrun

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff renders a unified line-level diff between expected and actual,
// using go-diff's line-mode diff (chars-per-line encoding keeps the diff
// at line granularity instead of character granularity).
func LineDiff(expected, actual string) string {
	dmp := diffmatchpatch.New()

	expectedChars, actualChars, lines := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffMain(expectedChars, actualChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var b strings.Builder
	for _, d := range diffs {
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(&b, "+%s\n", line)
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(&b, "-%s\n", line)
			case diffmatchpatch.DiffEqual:
				fmt.Fprintf(&b, " %s\n", line)
			}
		}
	}
	return b.String()
}
