package picasaweb

import (
	"github.com/custodia-labs/gdata-go/internal/connectors/google"
)

// Config holds the options an album or photo query can be built from. The
// bounding box is only sent when all four edges describe a non-empty area.
type Config struct {
	google.QueryOptions

	Visibility    string `validate:"omitempty,oneof=all public private"`
	ThumbnailSize string
	ImageSize     string
	Tag           string
	North         float64 `validate:"gte=-90,lte=90"`
	South         float64 `validate:"gte=-90,lte=90"`
	East          float64 `validate:"gte=-180,lte=180"`
	West          float64 `validate:"gte=-180,lte=180"`
	Location      string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{QueryOptions: google.DefaultQueryOptions()}
}

// ParseConfig reads the shared keys plus visibility, thumbnail_size,
// image_size, tag, bbox_north, bbox_south, bbox_east, bbox_west and
// location.
func ParseConfig(params map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	p := google.NewParams(params)

	cfg.Read(p)
	p.String("visibility", &cfg.Visibility)
	p.String("thumbnail_size", &cfg.ThumbnailSize)
	p.String("image_size", &cfg.ImageSize)
	p.String("tag", &cfg.Tag)
	p.Float("bbox_north", &cfg.North)
	p.Float("bbox_south", &cfg.South)
	p.Float("bbox_east", &cfg.East)
	p.Float("bbox_west", &cfg.West)
	p.String("location", &cfg.Location)

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
	if v, ok := ParseVisibility(c.Visibility); ok {
		q.SetVisibility(v)
	}
	q.SetThumbnailSize(c.ThumbnailSize)
	q.SetImageSize(c.ImageSize)
	q.SetTag(c.Tag)
	q.SetBoundingBox(BoundingBox{North: c.North, East: c.East, South: c.South, West: c.West})
	q.SetLocation(c.Location)
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
