// Package dates normalizes the loose date and time notations used in the
// todo document: section headers like "2025-1-27", "1/27" or "1月27日", and
// in-line clock ranges like "9:00~10:30".
package dates

import (
	"fmt"
	"regexp"
	"strconv"

	"todocal/pkg/model"
)

// MonthDay is a normalized month/day pair, both zero-padded to two digits.
type MonthDay struct {
	Month string
	Day   string
}

var (
	// Full ISO-like form, year captured but discarded.
	isoRe = regexp.MustCompile(`\d{4}[-/](\d{1,2})[-/](\d{1,2})`)
	// Bare M/D or M-D, with an optional year prefix that is ignored.
	slashRe = regexp.MustCompile(`(?:\d{4}[-/])?(\d{1,2})[-/](\d{1,2})`)
	// Localized M月D日 form.
	kanjiRe = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日`)

	timeRangeRe = regexp.MustCompile(`(\d{1,2}(?::\d{2})?)[~-](\d{1,2}(?::\d{2})?)?`)
	clockRe     = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?$`)
)

// ParseMonthDay extracts a month/day from a section header. Patterns are
// tried in priority order (full ISO first) and the first match wins. The
// second return is false when the header matches none of the accepted forms;
// the caller treats that as a skippable section, not an error.
func ParseMonthDay(header string) (MonthDay, bool) {
	for _, re := range []*regexp.Regexp{isoRe, slashRe, kanjiRe} {
		m := re.FindStringSubmatch(header)
		if m == nil {
			continue
		}
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		return MonthDay{
			Month: fmt.Sprintf("%02d", month),
			Day:   fmt.Sprintf("%02d", day),
		}, true
	}
	return MonthDay{}, false
}

// ExtractTimeRange finds a clock range of the form H[:MM](~|-)H[:MM]?
// anywhere in a task body. It returns nil when no range is present, meaning
// the task is all-day. End is empty when the right side of the range was
// omitted.
func ExtractTimeRange(body string) *model.TimeRange {
	m := timeRangeRe.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	return &model.TimeRange{Start: m[1], End: m[2]}
}

// ParseClock splits an H[:MM] clock string into hour and minute. Minutes
// default to zero when absent.
func ParseClock(s string) (hour, min int, err error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid clock value %q", s)
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		min, _ = strconv.Atoi(m[2])
	}
	if hour > 23 || min > 59 {
		return 0, 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hour, min, nil
}
