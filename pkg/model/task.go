package model

import "sort"

// TimeRange is a clock-time annotation found in a task body. Start is always
// present; End may be empty when the source wrote an open range like "9:00~".
type TimeRange struct {
	Start string
	End   string
}

// Task is one checklist line from the source document.
type Task struct {
	Description string
	Completed   bool
	// Time is nil for all-day tasks.
	Time *TimeRange
}

// DateKey is a canonical calendar date, always "YYYY-MM-DD" with zero-padded
// month and day. It is the join key between document sections and calendar
// events.
type DateKey string

// TaskIndex maps a DateKey to its tasks in document order. A key is present
// only if at least one task line existed under it.
type TaskIndex map[DateKey][]Task

// Dates returns the index keys in ascending date order. Lexicographic sort is
// correct because DateKeys are zero-padded.
func (idx TaskIndex) Dates() []DateKey {
	keys := make([]DateKey, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// OpenCount returns the number of not-yet-completed tasks across all dates.
func (idx TaskIndex) OpenCount() int {
	n := 0
	for _, tasks := range idx {
		for _, t := range tasks {
			if !t.Completed {
				n++
			}
		}
	}
	return n
}
