package calendar

import (
	"context"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

func querier(q *Query) gdata.Querier {
	if q == nil {
		return nil
	}
	return q
}

// QueryCalendars fetches a page of every calendar in the user's list.
func QueryCalendars(
	ctx context.Context,
	svc *google.Service,
	q gdata.Querier,
	progress func(*Calendar),
) (*gdata.Feed[*Calendar], error) {
	return google.QueryFeed(ctx, svc, q, CalendarListURI, newEmptyCalendar, progress)
}

// QueryOwnCalendars fetches a page of the calendars the user owns.
func QueryOwnCalendars(
	ctx context.Context,
	svc *google.Service,
	q gdata.Querier,
	progress func(*Calendar),
) (*gdata.Feed[*Calendar], error) {
	return google.QueryFeed(ctx, svc, q, OwnCalendarListURI, newEmptyCalendar, progress)
}

// QueryEvents fetches a page of the events in cal, or in the user's default
// calendar when cal is nil.
func QueryEvents(
	ctx context.Context,
	svc *google.Service,
	cal *Calendar,
	q *Query,
	progress func(*Event),
) (*gdata.Feed[*Event], error) {
	return google.QueryFeed(ctx, svc, querier(q), eventsURIFor(cal), newEmptyEvent, progress)
}

func eventsURIFor(cal *Calendar) string {
	if cal == nil {
		return EventsURI("")
	}
	return EventsURI(cal.ID())
}

// InsertEvent adds event to cal, or to the default calendar when cal is nil.
func InsertEvent(ctx context.Context, svc *google.Service, event *Event, cal *Calendar) (*Event, error) {
	return google.InsertEntry(ctx, svc, eventsURIFor(cal), event, newEmptyEvent)
}

// UpdateEvent replaces event through its self link.
func UpdateEvent(ctx context.Context, svc *google.Service, event *Event) (*Event, error) {
	return google.UpdateEntry(ctx, svc, event, newEmptyEvent)
}

// DeleteEvent removes event.
func DeleteEvent(ctx context.Context, svc *google.Service, event *Event) error {
	return google.DeleteEntry(ctx, svc, event)
}

func aclURIFor(cal *Calendar) string {
	if l := cal.LookupLink(gdata.RelAccessControl); l != nil {
		return l.URI
	}
	return ACLURI(cal.ID())
}

// QueryAccessRules fetches the sharing rules of cal.
func QueryAccessRules(
	ctx context.Context,
	svc *google.Service,
	cal *Calendar,
	progress func(*AccessRule),
) (*gdata.Feed[*AccessRule], error) {
	return google.QueryFeed(ctx, svc, nil, aclURIFor(cal), newEmptyAccessRule, progress)
}

// InsertAccessRule shares cal according to rule.
func InsertAccessRule(ctx context.Context, svc *google.Service, cal *Calendar, rule *AccessRule) (*AccessRule, error) {
	return google.InsertEntry(ctx, svc, aclURIFor(cal), rule, newEmptyAccessRule)
}
