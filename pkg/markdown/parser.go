// Package markdown parses the date-sectioned todo document into a
// model.TaskIndex.
package markdown

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"todocal/pkg/dates"
	"todocal/pkg/model"
)

const (
	sectionMarker = "## "
	openMarker    = "- [ ]"
	doneMarker    = "- [x]"
)

// Parse reads a todo document and returns its task index. Section headers
// are resolved to DateKeys in the given target year; sections whose header
// matches no accepted date form are skipped with a warning. A section with
// no task lines is absent from the index, and sections resolving to the same
// date are merged in encounter order.
func Parse(r io.Reader, year int) (model.TaskIndex, error) {
	index := make(model.TaskIndex)

	// Until the first section header, lines belong to the reserved Notes
	// bucket and never produce tasks.
	var key model.DateKey
	inSection := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, sectionMarker) {
			header := strings.TrimSpace(line[len(sectionMarker):])
			md, ok := dates.ParseMonthDay(header)
			if !ok {
				log.Printf("Warning: skipping section with unparseable header %q", header)
				inSection = false
				continue
			}
			key = model.DateKey(fmt.Sprintf("%04d-%s-%s", year, md.Month, md.Day))
			inSection = true
			continue
		}
		if !inSection {
			continue
		}

		// Blank lines, prose and sub-bullets are not tasks.
		if task, ok := parseTaskLine(line); ok {
			index[key] = append(index[key], task)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return index, nil
}

// parseTaskLine recognizes the two checkbox markers. The time annotation, if
// any, stays in the description; duplicate matching compares whole trimmed
// strings on both sides, so stripping it is unnecessary.
func parseTaskLine(line string) (model.Task, bool) {
	var body string
	var completed bool
	switch {
	case strings.HasPrefix(line, openMarker):
		body = line[len(openMarker):]
	case strings.HasPrefix(line, doneMarker):
		body = line[len(doneMarker):]
		completed = true
	default:
		return model.Task{}, false
	}
	// A bare marker with no body is still a task, with an empty description.
	body = strings.TrimPrefix(body, " ")

	return model.Task{
		Description: body,
		Completed:   completed,
		Time:        dates.ExtractTimeRange(body),
	}, true
}
