package contacts

import (
	"github.com/custodia-labs/gdata-go/internal/connectors/google"
)

// Config holds the options a contacts query can be built from.
type Config struct {
	google.QueryOptions

	OrderBy     string `validate:"omitempty,oneof=lastmodified"`
	SortOrder   string `validate:"omitempty,oneof=ascending descending"`
	ShowDeleted bool
	Group       string `validate:"omitempty,url"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{QueryOptions: google.DefaultQueryOptions()}
}

// ParseConfig reads the shared keys plus order_by, sort_order,
// show_deleted and group.
func ParseConfig(params map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	p := google.NewParams(params)

	cfg.Read(p)
	p.String("order_by", &cfg.OrderBy)
	p.String("sort_order", &cfg.SortOrder)
	p.Bool("show_deleted", &cfg.ShowDeleted)
	p.String("group", &cfg.Group)

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
	q.SetOrderBy(c.OrderBy)
	q.SetSortOrder(c.SortOrder)
	q.SetShowDeleted(c.ShowDeleted)
	q.SetGroup(c.Group)
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
