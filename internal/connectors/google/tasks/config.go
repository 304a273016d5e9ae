package tasks

import (
	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Config holds the options a Tasks query can be built from.
type Config struct {
	google.QueryOptions

	// CompletedMin and CompletedMax bound the completion time (Unix seconds).
	CompletedMin int64 `validate:"gte=-1"`
	CompletedMax int64 `validate:"gte=-1"`
	// DueMin and DueMax bound the due date (Unix seconds).
	DueMin int64 `validate:"gte=-1"`
	DueMax int64 `validate:"gte=-1"`

	ShowCompleted bool
	ShowDeleted   bool
	ShowHidden    bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		QueryOptions: google.DefaultQueryOptions(),
		CompletedMin: gdata.Unset,
		CompletedMax: gdata.Unset,
		DueMin:       gdata.Unset,
		DueMax:       gdata.Unset,
	}
}

// ParseConfig reads the shared keys plus completed_min, completed_max,
// due_min, due_max, show_completed, show_deleted and show_hidden.
func ParseConfig(params map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	p := google.NewParams(params)

	cfg.Read(p)
	p.Time("completed_min", &cfg.CompletedMin)
	p.Time("completed_max", &cfg.CompletedMax)
	p.Time("due_min", &cfg.DueMin)
	p.Time("due_max", &cfg.DueMax)
	p.Bool("show_completed", &cfg.ShowCompleted)
	p.Bool("show_deleted", &cfg.ShowDeleted)
	p.Bool("show_hidden", &cfg.ShowHidden)

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
	q := NewQuery()
	if err := c.Apply(&q.Query); err != nil {
		return nil, err
	}
	for _, set := range []struct {
		fn func(int64) error
		v  int64
	}{
		{q.SetCompletedMin, c.CompletedMin},
		{q.SetCompletedMax, c.CompletedMax},
		{q.SetDueMin, c.DueMin},
		{q.SetDueMax, c.DueMax},
	} {
		if err := set.fn(set.v); err != nil {
			return nil, err
		}
	}
	q.SetShowCompleted(c.ShowCompleted)
	q.SetShowDeleted(c.ShowDeleted)
	q.SetShowHidden(c.ShowHidden)
	return q, nil
}

// ParseQuery turns option pairs into a Query.
func ParseQuery(params map[string]string) (*Query, error) {
	cfg, err := ParseConfig(params)
	if err != nil {
		return nil, err
	}
	return cfg.Query()
}
