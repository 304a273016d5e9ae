package calendar

import (
	"strings"
	"time"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Orderings accepted by SetOrderBy. The legacy names are translated when the
// URI is built; anything else is sent verbatim.
const (
	OrderByLastModified = "lastmodified"
	OrderByStartTime    = "starttime"
)

// Query filters the events of a calendar. It pages with server tokens.
type Query struct {
	gdata.Query

	orderBy      string
	singleEvents bool
	futureEvents bool
	startMin     int64
	startMax     int64
	timezone     string
	maxAttendees uint
	showDeleted  bool

	now func() time.Time
}

// NewQuery returns a query for the free-text search q, which may be empty.
func NewQuery(q string) *Query {
	return NewQueryWithLimits(q, gdata.Unset, gdata.Unset)
}

// NewQueryWithLimits returns a query restricted to events overlapping
// [startMin, startMax], either of which may be gdata.Unset.
func NewQueryWithLimits(q string, startMin, startMax int64) *Query {
	query := &Query{now: time.Now}
	query.Init(q)
	query.SetPaginationType(gdata.PaginationTokens)
	query.startMin = startMin
	query.startMax = startMax
	return query
}

// SetClock replaces the clock used for future-event queries.
func (q *Query) SetClock(now func() time.Time) { q.now = now }

// QueryURI implements gdata.Querier.
func (q *Query) QueryURI(feedURI string) (string, error) {
	return gdata.BuildURI(&q.Query, feedURI, q)
}

func orderByV3(orderBy string) string {
	switch orderBy {
	case OrderByLastModified:
		return "updated"
	case OrderByStartTime:
		return "startTime"
	default:
		return orderBy
	}
}

// AppendParams writes the shared parameters followed by the Calendar ones.
// With future events set, timeMin is the current time and timeMax is left
// out.
func (q *Query) AppendParams(w *gdata.URIWriter) {
	q.Query.AppendParams(w)

	if n := q.MaxResults(); n > 0 {
		w.UintParam("maxResults", n)
	}
	if q.orderBy != "" {
		w.Param("orderBy", orderByV3(q.orderBy))
	}
	w.BoolParam("singleEvents", q.singleEvents)

	if q.startMin != gdata.Unset {
		t := q.startMin
		if q.futureEvents {
			t = q.now().Unix()
		}
		w.TimeParam("timeMin", t)
	}
	if q.startMax != gdata.Unset && !q.futureEvents {
		w.TimeParam("timeMax", q.startMax)
	}
	if q.timezone != "" {
		w.Param("timeZone", q.timezone)
	}
	if q.maxAttendees > 0 {
		w.UintParam("maxAttendees", q.maxAttendees)
	}
	w.BoolParam("showDeleted", q.showDeleted)
}

// OrderBy returns the requested ordering.
func (q *Query) OrderBy() string { return q.orderBy }

// SetOrderBy sets the ordering, e.g. OrderByStartTime.
func (q *Query) SetOrderBy(orderBy string) {
	q.orderBy = orderBy
	q.SetETag("")
}

// SingleEvents reports whether recurring events are expanded.
func (q *Query) SingleEvents() bool { return q.singleEvents }

// SetSingleEvents expands recurring events into their instances.
func (q *Query) SetSingleEvents(single bool) {
	q.singleEvents = single
	q.SetETag("")
}

// FutureEvents reports whether only upcoming events are requested.
func (q *Query) FutureEvents() bool { return q.futureEvents }

// SetFutureEvents requests only upcoming events. It overrides the start
// bounds when the URI is built.
func (q *Query) SetFutureEvents(future bool) {
	q.futureEvents = future
	q.SetETag("")
}

// StartMin returns the lower bound on event end times, or gdata.Unset.
func (q *Query) StartMin() int64 { return q.startMin }

// SetStartMin sets the lower bound in Unix seconds.
func (q *Query) SetStartMin(t int64) error {
	return q.setTime("start-min", &q.startMin, t)
}

// StartMax returns the upper bound on event start times, or gdata.Unset.
func (q *Query) StartMax() int64 { return q.startMax }

// SetStartMax sets the upper bound in Unix seconds.
func (q *Query) SetStartMax(t int64) error {
	return q.setTime("start-max", &q.startMax, t)
}

func (q *Query) setTime(name string, field *int64, t int64) error {
	if err := gdata.ValidateTimestamp(name, t); err != nil {
		return err
	}
	*field = t
	q.SetETag("")
	return nil
}

// Timezone returns the zone results are expressed in.
func (q *Query) Timezone() string { return q.timezone }

// SetTimezone sets the result zone. Spaces become underscores, so
// "America/Los Angeles" is stored as "America/Los_Angeles".
func (q *Query) SetTimezone(zone string) {
	q.timezone = strings.ReplaceAll(zone, " ", "_")
	q.SetETag("")
}

// MaxAttendees returns the attendee limit per event, 0 for none.
func (q *Query) MaxAttendees() uint { return q.maxAttendees }

// SetMaxAttendees limits the attendees returned with each event.
func (q *Query) SetMaxAttendees(n uint) {
	q.maxAttendees = n
	q.SetETag("")
}

// ShowDeleted reports whether cancelled events are returned.
func (q *Query) ShowDeleted() bool { return q.showDeleted }

// SetShowDeleted includes or excludes cancelled events.
func (q *Query) SetShowDeleted(show bool) {
	q.showDeleted = show
	q.SetETag("")
}
