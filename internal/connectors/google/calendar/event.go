package calendar

import (
	"encoding/json"
	"strings"

	calendarapi "google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

const eventKind = "calendar#event"

// Event is a calendar event. The structured members (times, organiser and
// attendees) use the Calendar API's generated types.
type Event struct {
	gdata.Entry

	status           string
	location         string
	htmlLink         string
	recurringEventID string

	start     *calendarapi.EventDateTime
	end       *calendarapi.EventDateTime
	organizer *calendarapi.EventOrganizer
	attendees []*calendarapi.EventAttendee
}

// NewEvent returns an event with the given id, empty for a new one.
func NewEvent(id string) *Event {
	e := &Event{}
	e.InitEntry(id)
	e.AddCategory(gdata.NewCategory(eventKind, gdata.KindScheme, ""))
	return e
}

func newEmptyEvent() *Event { return NewEvent("") }

// ContentType implements gdata.JSONParsable.
func (e *Event) ContentType() string { return gdata.ContentTypeJSON }

func decodeMember[T any](name string, value json.RawMessage, out *T) error {
	if err := json.Unmarshal(value, out); err != nil {
		return gdata.InvalidJSON(name, err.Error())
	}
	return nil
}

// ParseJSONMember handles the event members, then the entry ones.
func (e *Event) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	if ok, err := gdata.StringFromJSON(name, value, "status", gdata.OptNone, &e.status); ok {
		return true, err
	}
	if ok, err := gdata.StringFromJSON(name, value, "location", gdata.OptNone, &e.location); ok {
		return true, err
	}
	if ok, err := gdata.StringFromJSON(name, value, "htmlLink", gdata.OptNone, &e.htmlLink); ok {
		return true, err
	}
	if ok, err := gdata.StringFromJSON(name, value, "recurringEventId", gdata.OptNone, &e.recurringEventID); ok {
		return true, err
	}

	switch name {
	case "summary":
		var title string
		if _, err := gdata.StringFromJSON(name, value, name, gdata.OptNone, &title); err != nil {
			return true, err
		}
		e.SetTitle(title)
		return true, nil
	case "start":
		return true, decodeMember(name, value, &e.start)
	case "end":
		return true, decodeMember(name, value, &e.end)
	case "organizer":
		return true, decodeMember(name, value, &e.organizer)
	case "attendees":
		return true, decodeMember(name, value, &e.attendees)
	}
	return e.Entry.ParseJSONMember(name, value)
}

// PostParseJSON adds the self link. The event URI needs the calendar id,
// which the API only exposes as the organiser's address.
func (e *Event) PostParseJSON() error {
	if e.ID() == "" || e.organizer == nil || e.organizer.Email == "" {
		return nil
	}
	uri := calendarsBase + escapeID(e.organizer.Email) + "/events/" + gdata.EscapeURI(e.ID(), "")
	e.AddLink(gdata.NewLink(uri, gdata.RelSelf))
	return nil
}

func rawMember(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}

// GetJSON writes the event members.
func (e *Event) GetJSON(j *gdata.JSONBuilder) {
	if id := e.ID(); id != "" {
		j.String("id", id)
	}
	j.String("kind", eventKind)
	if etag := e.ETag(); etag != "" {
		j.String("etag", etag)
	}
	if title := e.Title(); title != "" {
		j.String("summary", title)
	}
	if summary := e.Summary(); summary != "" {
		j.String("description", summary)
	}
	if e.status != "" {
		j.String("status", e.status)
	}
	if e.location != "" {
		j.String("location", e.location)
	}
	if e.start != nil {
		j.Raw("start", rawMember(e.start))
	}
	if e.end != nil {
		j.Raw("end", rawMember(e.end))
	}
	if e.organizer != nil {
		j.Raw("organizer", rawMember(e.organizer))
	}
	if len(e.attendees) > 0 {
		j.Raw("attendees", rawMember(e.attendees))
	}
	if e.recurringEventID != "" {
		j.String("recurringEventId", e.recurringEventID)
	}
}

// Status returns "confirmed", "tentative" or "cancelled".
func (e *Event) Status() string { return e.status }

// SetStatus sets the event status.
func (e *Event) SetStatus(status string) { e.status = status }

// Location returns the free-form location.
func (e *Event) Location() string { return e.location }

// SetLocation sets the location.
func (e *Event) SetLocation(location string) { e.location = location }

// HTMLLink returns the event's page in the Calendar web UI.
func (e *Event) HTMLLink() string { return e.htmlLink }

// RecurringEventID returns the id of the recurring event this is an
// instance of.
func (e *Event) RecurringEventID() string { return e.recurringEventID }

// IsRecurringInstance reports whether the event is one occurrence of a
// recurring event.
func (e *Event) IsRecurringInstance() bool {
	return e.recurringEventID != "" && e.recurringEventID != e.ID()
}

// SetTimes sets the start and end. Each is a date-time when it contains a
// 'T', otherwise an all-day date.
func (e *Event) SetTimes(start, end string) {
	e.start = eventDateTime(start)
	e.end = eventDateTime(end)
}

func eventDateTime(s string) *calendarapi.EventDateTime {
	if s == "" {
		return nil
	}
	if strings.Contains(s, "T") {
		return &calendarapi.EventDateTime{DateTime: s}
	}
	return &calendarapi.EventDateTime{Date: s}
}

// Times returns the start and end as sent by the server: a date-time for
// timed events, a date for all-day ones.
func (e *Event) Times() (start, end string) {
	return formatDateTime(e.start), formatDateTime(e.end)
}

func formatDateTime(t *calendarapi.EventDateTime) string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

// Organizer returns the organiser's address, if known.
func (e *Event) Organizer() string {
	if e.organizer == nil {
		return ""
	}
	return e.organizer.Email
}

// Attendees returns the attendee records.
func (e *Event) Attendees() []*calendarapi.EventAttendee { return e.attendees }

// AddAttendee invites email unless already invited.
func (e *Event) AddAttendee(email, displayName string) {
	for _, a := range e.attendees {
		if strings.EqualFold(a.Email, email) {
			return
		}
	}
	e.attendees = append(e.attendees, &calendarapi.EventAttendee{Email: email, DisplayName: displayName})
}

// Text renders the event for display: title, description, location and
// attendees, separated by blank lines.
func (e *Event) Text() string {
	var parts []string
	if e.Title() != "" {
		parts = append(parts, e.Title())
	}
	if e.Summary() != "" {
		parts = append(parts, e.Summary())
	}
	if e.location != "" {
		parts = append(parts, "Location: "+e.location)
	}
	if s := formatAttendees(e.attendees); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n")
}

func formatAttendees(attendees []*calendarapi.EventAttendee) string {
	var names []string
	for _, a := range attendees {
		if a.DisplayName != "" {
			names = append(names, a.DisplayName)
		} else if a.Email != "" {
			names = append(names, a.Email)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "Attendees: " + strings.Join(names, ", ")
}
