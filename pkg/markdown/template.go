package markdown

import (
	"fmt"
	"strings"
	"time"
)

// MonthTemplate returns a starter document for a month: a title line and one
// empty section per day. Empty sections never reach the task index, so the
// template is inert until task lines are added.
func MonthTemplate(year int, month time.Month) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d/%d\n", year, int(month))

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for d := 1; d <= daysInMonth; d++ {
		fmt.Fprintf(&b, "\n## %d/%d\n", int(month), d)
	}
	return b.String()
}
