package model

import "strings"

// EventTime mirrors the calendar API's start/end shape: exactly one of Date
// ("2006-01-02", all-day) or DateTime (RFC3339, timed) is populated.
type EventTime struct {
	Date     string
	DateTime string
}

// Event is the normalized view of one remote calendar entry as observed by a
// listing call. ID is the remote-assigned identifier used for deletion; it is
// never used to match against the text side.
type Event struct {
	ID      string
	Summary string
	Start   EventTime
	End     EventTime
}

// Draft describes an event to be created. Exactly one of the timed pair
// (StartDateTime/EndDateTime) or the all-day pair (StartDate/EndDate) is set.
type Draft struct {
	Summary       string
	StartDate     string
	EndDate       string
	StartDateTime string
	EndDateTime   string
}

// DateKey derives the event's calendar date from its start value. For timed
// events this is the date portion of the RFC3339 string; the zone offset is
// not consulted, matching how drafts are rendered in the configured zone.
func (e Event) DateKey() DateKey {
	if e.Start.Date != "" {
		return DateKey(e.Start.Date)
	}
	if i := strings.IndexByte(e.Start.DateTime, 'T'); i > 0 {
		return DateKey(e.Start.DateTime[:i])
	}
	return ""
}
