package calendar

import (
	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Config holds the options an event query can be built from.
type Config struct {
	google.QueryOptions

	// CalendarID selects the calendar; empty means the user's default.
	CalendarID string

	OrderBy      string `validate:"omitempty,oneof=lastmodified starttime updated startTime"`
	SingleEvents bool
	FutureEvents bool
	// StartMin and StartMax bound the events returned (Unix seconds).
	StartMin     int64 `validate:"gte=-1"`
	StartMax     int64 `validate:"gte=-1"`
	Timezone     string
	MaxAttendees uint
	ShowDeleted  bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		QueryOptions: google.DefaultQueryOptions(),
		StartMin:     gdata.Unset,
		StartMax:     gdata.Unset,
	}
}

// ParseConfig reads the shared keys plus calendar_id, order_by,
// single_events, future_events, start_min, start_max, timezone,
// max_attendees and show_deleted.
func ParseConfig(params map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	p := google.NewParams(params)

	cfg.Read(p)
	p.String("calendar_id", &cfg.CalendarID)
	p.String("order_by", &cfg.OrderBy)
	p.Bool("single_events", &cfg.SingleEvents)
	p.Bool("future_events", &cfg.FutureEvents)
	p.Time("start_min", &cfg.StartMin)
	p.Time("start_max", &cfg.StartMax)
	p.String("timezone", &cfg.Timezone)
	p.Uint("max_attendees", &cfg.MaxAttendees)
	p.Bool("show_deleted", &cfg.ShowDeleted)

	if err := p.Err(); err != nil {
		return nil, err
	}
	if err := google.ValidateStruct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Query builds the query the configuration describes.
func (c *Config) Query() (*Query, error) {
	q := NewQuery("")
	if err := c.Apply(&q.Query); err != nil {
		return nil, err
	}
	if err := q.SetStartMin(c.StartMin); err != nil {
		return nil, err
	}
	if err := q.SetStartMax(c.StartMax); err != nil {
		return nil, err
	}
	q.SetOrderBy(c.OrderBy)
	q.SetSingleEvents(c.SingleEvents)
	q.SetFutureEvents(c.FutureEvents)
	q.SetTimezone(c.Timezone)
	q.SetMaxAttendees(c.MaxAttendees)
	q.SetShowDeleted(c.ShowDeleted)
	return q, nil
}

// FeedURI returns the event feed the configuration targets.
func (c *Config) FeedURI() string { return EventsURI(c.CalendarID) }

// ParseQuery turns option pairs into a Query.
func ParseQuery(params map[string]string) (*Query, error) {
	cfg, err := ParseConfig(params)
	if err != nil {
		return nil, err
	}
	return cfg.Query()
}
