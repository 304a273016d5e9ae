package calendar

import (
	"encoding/json"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Feed URIs of the Calendar API.
const (
	CalendarListURI    = "https://www.googleapis.com/calendar/v3/users/me/calendarList"
	OwnCalendarListURI = CalendarListURI + "?minAccessRole=owner"
)

const (
	calendarsBase     = "https://www.googleapis.com/calendar/v3/calendars/"
	calendarKind      = "calendar#calendar"
	defaultCalendarID = "default"
)

// escapeID escapes a calendar id for a path segment. Ids are usually email
// addresses, and '@' is legal there.
func escapeID(id string) string { return gdata.EscapeURI(id, "@") }

// CalendarURI returns the resource URI of the calendar with the given id.
func CalendarURI(id string) string {
	return calendarsBase + escapeID(id)
}

// EventsURI returns the event feed of the calendar with the given id, or of
// the user's default calendar when id is empty.
func EventsURI(id string) string {
	if id == "" {
		id = defaultCalendarID
	}
	return calendarsBase + escapeID(id) + "/events"
}

// ACLURI returns the access rule feed of the calendar with the given id.
func ACLURI(id string) string {
	return calendarsBase + escapeID(id) + "/acl"
}

// Calendar is one entry of the user's calendar list. The JSON API calls the
// title "summary" and the summary "description".
type Calendar struct {
	gdata.Entry

	timezone    string
	colour      gdata.Color
	hidden      bool
	selected    bool
	accessLevel string
}

// NewCalendar returns a calendar with the given id, empty for a new one.
func NewCalendar(id string) *Calendar {
	c := &Calendar{}
	c.InitEntry(id)
	c.AddCategory(gdata.NewCategory(calendarKind, gdata.KindScheme, ""))
	return c
}

func newEmptyCalendar() *Calendar { return NewCalendar("") }

// ContentType implements gdata.JSONParsable.
func (c *Calendar) ContentType() string { return gdata.ContentTypeJSON }

// ParseJSONMember handles the calendar list members, then the entry ones.
// Calendars carry no selfLink, so reading the id adds self and ACL links.
func (c *Calendar) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	if ok, err := gdata.StringFromJSON(name, value, "timeZone", gdata.OptNone, &c.timezone); ok {
		return true, err
	}
	if ok, err := gdata.ColorFromJSON(name, value, "backgroundColor", gdata.OptNone, &c.colour); ok {
		return true, err
	}
	if ok, err := gdata.BooleanFromJSON(name, value, "hidden", &c.hidden); ok {
		return true, err
	}
	if ok, err := gdata.BooleanFromJSON(name, value, "selected", &c.selected); ok {
		return true, err
	}

	switch name {
	case "summary":
		var title string
		if _, err := gdata.StringFromJSON(name, value, name, gdata.OptNone, &title); err != nil {
			return true, err
		}
		c.SetTitle(title)
		return true, nil
	case "accessRole":
		var role string
		if _, err := gdata.StringFromJSON(name, value, name, gdata.OptNone, &role); err != nil {
			return true, err
		}
		c.accessLevel = roleFromWire(role)
		return true, nil
	case "id":
		handled, err := c.Entry.ParseJSONMember(name, value)
		if err == nil && c.ID() != "" {
			c.AddLink(gdata.NewLink(CalendarURI(c.ID()), gdata.RelSelf))
			c.AddLink(gdata.NewLink(ACLURI(c.ID()), gdata.RelAccessControl))
		}
		return handled, err
	}
	return c.Entry.ParseJSONMember(name, value)
}

// GetJSON writes the calendar list members.
func (c *Calendar) GetJSON(j *gdata.JSONBuilder) {
	if id := c.ID(); id != "" {
		j.String("id", id)
	}
	j.String("kind", calendarKind)
	if etag := c.ETag(); etag != "" {
		j.String("etag", etag)
	}
	if title := c.Title(); title != "" {
		j.String("summary", title)
	}
	if summary := c.Summary(); summary != "" {
		j.String("description", summary)
	}
	if c.timezone != "" {
		j.String("timeZone", c.timezone)
	}
	j.Bool("hidden", c.hidden)
	j.String("backgroundColor", c.colour.Hex())
	j.Bool("selected", c.selected)
}

// Timezone returns the calendar's IANA zone name.
func (c *Calendar) Timezone() string { return c.timezone }

// SetTimezone sets the zone name.
func (c *Calendar) SetTimezone(zone string) { c.timezone = zone }

// Colour returns the background colour.
func (c *Calendar) Colour() gdata.Color { return c.colour }

// SetColour sets the background colour.
func (c *Calendar) SetColour(colour gdata.Color) { c.colour = colour }

// IsHidden reports whether the calendar is hidden from the list.
func (c *Calendar) IsHidden() bool { return c.hidden }

// SetIsHidden hides or shows the calendar.
func (c *Calendar) SetIsHidden(hidden bool) { c.hidden = hidden }

// IsSelected reports whether the calendar is shown in the UI.
func (c *Calendar) IsSelected() bool { return c.selected }

// SetIsSelected selects or deselects the calendar.
func (c *Calendar) SetIsSelected(selected bool) { c.selected = selected }

// AccessLevel returns the user's role on the calendar, e.g. RoleOwner.
func (c *Calendar) AccessLevel() string { return c.accessLevel }
