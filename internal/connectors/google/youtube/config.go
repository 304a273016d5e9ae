package youtube

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
)

// Config holds the options a video search can be built from. The latitude
// and longitude default to NoLocation; out-of-range coordinates disable the
// location restriction rather than failing.
type Config struct {
	google.QueryOptions

	Age        string `validate:"omitempty,oneof=all_time today this_week this_month"`
	SafeSearch string `validate:"omitempty,oneof=none moderate strict"`
	Latitude   float64
	Longitude  float64
	Radius     float64
	OrderBy    string
	Region     string `validate:"omitempty,len=2,alpha"`
	License    string `validate:"omitempty,oneof=cc youtube"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		QueryOptions: google.DefaultQueryOptions(),
		Latitude:     NoLocation,
		Longitude:    NoLocation,
	}
}

// ParseConfig reads the shared keys plus age, safe_search, latitude,
// longitude, radius, order_by, region and license.
func ParseConfig(params map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	p := google.NewParams(params)

	cfg.Read(p)
	p.String("age", &cfg.Age)
	p.String("safe_search", &cfg.SafeSearch)
	p.Float("latitude", &cfg.Latitude)
	p.Float("longitude", &cfg.Longitude)
	p.Float("radius", &cfg.Radius)
	p.String("order_by", &cfg.OrderBy)
	p.String("region", &cfg.Region)
	p.String("license", &cfg.License)

	if err := p.Err(); err != nil {
		return nil, err
	}
	if err := google.ValidateStruct(cfg); err != nil {
		return nil, err
	}
	if err := validateOrder(cfg.OrderBy); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateOrder accepts the named orderings and relevance_lang_<tag> with a
// well-formed BCP 47 tag.
func validateOrder(orderBy string) error {
	switch orderBy {
	case "", OrderRelevance, OrderPublished, OrderViewCount, OrderRating:
		return nil
	}
	tag, ok := strings.CutPrefix(orderBy, OrderRelevanceLangPrefix)
	if !ok {
		return fmt.Errorf("%w: unknown ordering %q", domain.ErrInvalidQuery, orderBy)
	}
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("%w: ordering %q has an invalid language: %v", domain.ErrInvalidQuery, orderBy, err)
	}
	return nil
}

// ParseAge reads an Age name such as "this_week".
func ParseAge(s string) (Age, bool) {
	for a, name := range ageNames {
		if name == s {
			return a, true
		}
	}
	return AgeAllTime, false
}

// ParseSafeSearch reads a SafeSearch name such as "strict".
func ParseSafeSearch(s string) (SafeSearch, bool) {
	for v, name := range safeSearchNames {
		if name == s {
			return v, true
		}
	}
	return SafeSearchModerate, false
}

// Query builds the search the configuration describes.
func (c *Config) Query() (*Query, error) {
	q := NewQuery("")
	if err := c.Apply(&q.Query); err != nil {
		return nil, err
	}
	if c.Age != "" {
		age, _ := ParseAge(c.Age)
		q.SetAge(age)
	}
	if c.SafeSearch != "" {
		s, _ := ParseSafeSearch(c.SafeSearch)
		q.SetSafeSearch(s)
	}
	q.SetLocation(c.Latitude, c.Longitude, c.Radius)
	q.SetOrderBy(c.OrderBy)
	q.SetRestriction(strings.ToUpper(c.Region))
	q.SetLicense(c.License)
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
