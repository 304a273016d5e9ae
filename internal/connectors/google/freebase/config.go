package freebase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Config holds the options the three Freebase queries are built from.
// Filters are "property:value" pairs joined under FilterType, with an
// optional location circle when WithinRadius is positive.
type Config struct {
	google.QueryOptions

	MQL      string
	Language string `validate:"omitempty,len=2,alpha"`
	Stemmed  bool

	Filters    []string `validate:"dive,contains=:"`
	FilterType string   `validate:"omitempty,oneof=all any not"`

	WithinRadius uint
	WithinLat    float64 `validate:"gte=-90,lte=90"`
	WithinLon    float64 `validate:"gte=-180,lte=180"`

	TopicFilters []string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{QueryOptions: google.DefaultQueryOptions()}
}

// ParseConfig reads the shared keys plus mql, language, stemmed, filters,
// filter_type, within_radius, within_lat, within_lon and topic_filters.
func ParseConfig(params map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	p := google.NewParams(params)

	cfg.Read(p)
	p.String("mql", &cfg.MQL)
	p.String("language", &cfg.Language)
	p.Bool("stemmed", &cfg.Stemmed)
	p.Strings("filters", &cfg.Filters)
	p.String("filter_type", &cfg.FilterType)
	p.Uint("within_radius", &cfg.WithinRadius)
	p.Float("within_lat", &cfg.WithinLat)
	p.Float("within_lon", &cfg.WithinLon)
	p.Strings("topic_filters", &cfg.TopicFilters)

	if err := p.Err(); err != nil {
		return nil, err
	}
	if err := google.ValidateStruct(cfg); err != nil {
		return nil, err
	}
	if cfg.Language != "" {
		if err := ValidateLanguage(cfg.Language); err != nil {
			return nil, err
		}
	}
	if cfg.MQL != "" && !json.Valid([]byte(cfg.MQL)) {
		return nil, fmt.Errorf("%w: mql is not valid JSON", domain.ErrInvalidQuery)
	}
	return cfg, nil
}

// Filter builds the search filter, or nil when none is configured.
func (c *Config) Filter() Filter {
	var children []Filter
	for _, f := range c.Filters {
		property, v, _ := strings.Cut(f, ":")
		children = append(children, Value(strings.TrimSpace(property), strings.TrimSpace(v)))
	}
	if c.WithinRadius > 0 {
		children = append(children, Within(uint64(c.WithinRadius), c.WithinLat, c.WithinLon))
	}
	if len(children) == 0 {
		return nil
	}
	switch c.FilterType {
	case "any":
		return Any(children...)
	case "not":
		return Not(children...)
	}
	return All(children...)
}

// Query builds the MQL read. q takes precedence over mql.
func (c *Config) Query() (*Query, error) {
	q := NewQuery("")
	if err := c.Apply(&q.Query); err != nil {
		return nil, err
	}
	if c.MQL != "" {
		if err := q.SetMQL(json.RawMessage(c.MQL)); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// SearchQuery builds the topic search.
func (c *Config) SearchQuery() (*SearchQuery, error) {
	q := NewSearchQuery("")
	if err := c.Apply(&q.Query); err != nil {
		return nil, err
	}
	if err := q.SetLanguage(c.Language); err != nil {
		return nil, err
	}
	q.SetStemmed(c.Stemmed)
	q.SetFilter(c.Filter())
	return q, nil
}

// TopicQuery builds the topic fetch; q holds the topic id.
func (c *Config) TopicQuery() (*TopicQuery, error) {
	q := NewTopicQuery("")
	if err := c.Apply(&q.Query); err != nil {
		return nil, err
	}
	if err := q.SetLanguage(c.Language); err != nil {
		return nil, err
	}
	q.SetFilters(c.TopicFilters)
	return q, nil
}

// QueryFor builds the query matching the endpoint feedURI points at:
// SearchURI, TopicURI, or an MQL read for anything else.
func (c *Config) QueryFor(feedURI string) (gdata.Querier, error) {
	var (
		q   gdata.Querier
		err error
	)
	switch {
	case strings.HasPrefix(feedURI, SearchURI):
		var sq *SearchQuery
		if sq, err = c.SearchQuery(); err == nil {
			q = sq
		}
	case strings.HasPrefix(feedURI, TopicURI):
		var tq *TopicQuery
		if tq, err = c.TopicQuery(); err == nil {
			q = tq
		}
	default:
		var mq *Query
		if mq, err = c.Query(); err == nil {
			q = mq
		}
	}
	return q, err
}

// ParseQuery turns option pairs into an MQL read.
func ParseQuery(params map[string]string) (*Query, error) {
	cfg, err := ParseConfig(params)
	if err != nil {
		return nil, err
	}
	return cfg.Query()
}
