package google

import (
	"fmt"

	"google.golang.org/api/calendar/v3"

	"todocal/pkg/model"
)

// Client wraps the Calendar API for a single destination calendar.
type Client struct {
	srv        *calendar.Service
	calendarID string
}

// NewClient resolves a calendar by display name and returns a client bound
// to it.
func NewClient(srv *calendar.Service, calendarName string) (*Client, error) {
	id, err := FindCalendar(srv, calendarName)
	if err != nil {
		return nil, err
	}
	return &Client{srv: srv, calendarID: id}, nil
}

// FindCalendar returns the id of the calendar whose summary matches name.
func FindCalendar(srv *calendar.Service, name string) (string, error) {
	list, err := srv.CalendarList.List().Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	for _, item := range list.Items {
		if item.Summary == name {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar %q not found", name)
}

// ListEvents fetches all events on the calendar, following pagination. The
// returned order is whatever the backend provides.
func (c *Client) ListEvents() ([]model.Event, error) {
	var events []model.Event
	pageToken := ""
	for {
		call := c.srv.Events.List(c.calendarID).SingleEvents(true)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve events: %w", err)
		}
		for _, item := range page.Items {
			events = append(events, normalizeEvent(item))
		}
		if page.NextPageToken == "" {
			return events, nil
		}
		pageToken = page.NextPageToken
	}
}

// CreateEvent inserts a new event built from the draft.
func (c *Client) CreateEvent(d model.Draft) (model.Event, error) {
	ev := &calendar.Event{
		Summary: d.Summary,
		Start:   &calendar.EventDateTime{Date: d.StartDate, DateTime: d.StartDateTime},
		End:     &calendar.EventDateTime{Date: d.EndDate, DateTime: d.EndDateTime},
	}
	created, err := c.srv.Events.Insert(c.calendarID, ev).Do()
	if err != nil {
		return model.Event{}, fmt.Errorf("unable to insert event: %w", err)
	}
	return normalizeEvent(created), nil
}

// DeleteEvent removes an event by its remote id.
func (c *Client) DeleteEvent(eventID string) error {
	if err := c.srv.Events.Delete(c.calendarID, eventID).Do(); err != nil {
		return fmt.Errorf("unable to delete event %s: %w", eventID, err)
	}
	return nil
}

func normalizeEvent(ev *calendar.Event) model.Event {
	out := model.Event{ID: ev.Id, Summary: ev.Summary}
	if ev.Start != nil {
		out.Start = model.EventTime{Date: ev.Start.Date, DateTime: ev.Start.DateTime}
	}
	if ev.End != nil {
		out.End = model.EventTime{Date: ev.End.Date, DateTime: ev.End.DateTime}
	}
	return out
}
