// Package sync converges a calendar to the open tasks of a parsed todo
// document: open tasks become events, completed or removed tasks make their
// events disappear, and repeated passes are idempotent.
package sync

import (
	"errors"
	"fmt"
	"log"
	"strings"
	stdsync "sync"
	"time"

	"todocal/pkg/dates"
	"todocal/pkg/model"
)

// Calendar is the remote collaborator surface a pass needs.
type Calendar interface {
	ListEvents() ([]model.Event, error)
	CreateEvent(model.Draft) (model.Event, error)
	DeleteEvent(eventID string) error
}

// ErrPassInFlight is returned when Run is called while another pass is still
// executing. Overlapping passes can both clear the duplicate check before
// either creates its event, so concurrent requests are dropped, not queued.
var ErrPassInFlight = errors.New("reconciliation pass already in flight")

// Stats summarizes what one pass did.
type Stats struct {
	Created int
	Deleted int
	Skipped int
}

// Reconciler runs reconciliation passes against one calendar.
type Reconciler struct {
	cal Calendar
	loc *time.Location

	mu stdsync.Mutex
}

func New(cal Calendar, loc *time.Location) *Reconciler {
	if loc == nil {
		loc = time.Local
	}
	return &Reconciler{cal: cal, loc: loc}
}

// Run executes one full reconciliation pass: create events for open tasks,
// then delete events the document no longer asserts as open. At most one
// pass is in flight at a time. Listing failures abort the pass; individual
// create/delete failures are logged and skipped, since the next pass will
// re-decide them idempotently.
func (r *Reconciler) Run(index model.TaskIndex) (Stats, error) {
	if !r.mu.TryLock() {
		return Stats{}, ErrPassInFlight
	}
	defer r.mu.Unlock()

	var stats Stats

	// Phase A: create events for open tasks. The snapshot is re-fetched
	// before every create because the natural key (description + date) is
	// not a remote id; only the latest remote state can prove an event
	// does not already exist.
	for _, date := range index.Dates() {
		for _, task := range index[date] {
			if task.Completed {
				continue
			}

			events, err := r.cal.ListEvents()
			if err != nil {
				return stats, fmt.Errorf("listing events before create: %w", err)
			}
			if hasDuplicate(events, date, task) {
				stats.Skipped++
				continue
			}

			draft, err := r.buildDraft(date, task)
			if err != nil {
				log.Printf("Skipping task %q on %s: %v", task.Description, date, err)
				continue
			}
			if _, err := r.cal.CreateEvent(draft); err != nil {
				log.Printf("Failed to create event %q on %s: %v", task.Description, date, err)
				continue
			}
			stats.Created++
		}
	}

	// Phase B: delete events without an open counterpart. Re-fetched after
	// Phase A so just-created events are visible to the decisions here.
	events, err := r.cal.ListEvents()
	if err != nil {
		return stats, fmt.Errorf("listing events before delete: %w", err)
	}
	for _, ev := range events {
		if ev.ID == "" {
			log.Printf("Warning: event %q has no id, leaving it untouched", ev.Summary)
			continue
		}
		if task, found := findTask(index[ev.DateKey()], ev.Summary); found && !task.Completed {
			continue
		}
		// Completed, or no longer present in the document at all. Either
		// way the calendar must stop asserting it.
		if err := r.cal.DeleteEvent(ev.ID); err != nil {
			log.Printf("Failed to delete event %q (%s): %v", ev.Summary, ev.ID, err)
			continue
		}
		stats.Deleted++
	}

	return stats, nil
}

// buildDraft renders a task as an event draft. Timed tasks become RFC3339
// date-times in the configured zone, defaulting to a one hour duration when
// the range has no end; all-day tasks span exactly their date.
func (r *Reconciler) buildDraft(date model.DateKey, task model.Task) (model.Draft, error) {
	draft := model.Draft{Summary: task.Description}

	if task.Time == nil {
		draft.StartDate = string(date)
		draft.EndDate = string(date)
		return draft, nil
	}

	day, err := time.ParseInLocation("2006-01-02", string(date), r.loc)
	if err != nil {
		return model.Draft{}, fmt.Errorf("invalid date key %q: %w", date, err)
	}

	h, m, err := dates.ParseClock(task.Time.Start)
	if err != nil {
		return model.Draft{}, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, r.loc)

	end := start.Add(time.Hour)
	if task.Time.End != "" {
		eh, em, err := dates.ParseClock(task.Time.End)
		if err != nil {
			log.Printf("Ignoring invalid end time %q for %q: %v", task.Time.End, task.Description, err)
		} else {
			end = time.Date(day.Year(), day.Month(), day.Day(), eh, em, 0, 0, r.loc)
		}
	}

	draft.StartDateTime = start.Format(time.RFC3339)
	draft.EndDateTime = end.Format(time.RFC3339)
	return draft, nil
}

// sameSummary is the single matching rule used by both phases: trimmed
// whole-string equality.
func sameSummary(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

func hasDuplicate(events []model.Event, date model.DateKey, task model.Task) bool {
	for _, ev := range events {
		if ev.DateKey() == date && sameSummary(ev.Summary, task.Description) {
			return true
		}
	}
	return false
}

func findTask(tasks []model.Task, summary string) (model.Task, bool) {
	for _, t := range tasks {
		if sameSummary(t.Description, summary) {
			return t, true
		}
	}
	return model.Task{}, false
}
