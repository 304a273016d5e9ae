package google

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Params reads typed query options from string pairs, such as the CLI's
// repeated --param key=value flags. Read errors are collected and reported
// together by Err, along with any key that no reader asked for.
type Params struct {
	values map[string]string
	used   map[string]bool
	errs   []string
}

// NewParams wraps values. A nil map is treated as empty.
func NewParams(values map[string]string) *Params {
	return &Params{values: values, used: make(map[string]bool, len(values))}
}

func (p *Params) lookup(key string) (string, bool) {
	p.used[key] = true
	v, ok := p.values[key]
	return strings.TrimSpace(v), ok
}

func (p *Params) fail(key, value, want string) {
	p.errs = append(p.errs, fmt.Sprintf("%s=%q is not %s", key, value, want))
}

// String stores the value of key in dst when present.
func (p *Params) String(key string, dst *string) {
	if v, ok := p.lookup(key); ok {
		*dst = v
	}
}

// Uint stores a non-negative integer.
func (p *Params) Uint(key string, dst *uint) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.ParseUint(v, 10, 0)
	if err != nil {
		p.fail(key, v, "a non-negative integer")
		return
	}
	*dst = uint(n)
}

// Int stores a signed integer.
func (p *Params) Int(key string, dst *int) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, "an integer")
		return
	}
	*dst = n
}

// Float stores a decimal number.
func (p *Params) Float(key string, dst *float64) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, "a number")
		return
	}
	*dst = f
}

// Bool stores a boolean in any form strconv.ParseBool accepts.
func (p *Params) Bool(key string, dst *bool) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, "a boolean")
		return
	}
	*dst = b
}

// Time stores a timestamp as Unix seconds. It accepts ISO 8601, a bare
// YYYY-MM-DD date or integer seconds.
func (p *Params) Time(key string, dst *int64) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	if t, ok := gdata.ParseISO8601(v); ok {
		*dst = t
		return
	}
	if t, ok := gdata.ParseDate(v); ok {
		*dst = t
		return
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= gdata.Unset {
		*dst = n
		return
	}
	p.fail(key, v, "a timestamp")
}

// Strings stores a comma-separated list, trimming each element and dropping
// empty ones.
func (p *Params) Strings(key string, dst *[]string) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*dst = out
}

// Err reports every invalid value and unknown key. The error wraps
// domain.ErrInvalidQuery.
func (p *Params) Err() error {
	errs := slices.Clone(p.errs)
	var unknown []string
	for k := range p.values {
		if !p.used[k] {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)
	for _, k := range unknown {
		errs = append(errs, "unknown parameter "+strconv.Quote(k))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidQuery, strings.Join(errs, "; "))
}

// QueryOptions are the shared GData query parameters in option form. Service
// configs embed it so that every service accepts the same base keys.
type QueryOptions struct {
	Q          string
	Categories string
	Author     string

	UpdatedMin   int64 `validate:"gte=-1"`
	UpdatedMax   int64 `validate:"gte=-1"`
	PublishedMin int64 `validate:"gte=-1"`
	PublishedMax int64 `validate:"gte=-1"`

	StartIndex uint
	MaxResults uint
	Strict     bool
}

// DefaultQueryOptions leaves every timestamp unset.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		UpdatedMin:   gdata.Unset,
		UpdatedMax:   gdata.Unset,
		PublishedMin: gdata.Unset,
		PublishedMax: gdata.Unset,
	}
}

// Read fills o from the base keys: q, categories, author, updated_min,
// updated_max, published_min, published_max, start_index, max_results and
// strict.
func (o *QueryOptions) Read(p *Params) {
	p.String("q", &o.Q)
	p.String("categories", &o.Categories)
	p.String("author", &o.Author)
	p.Time("updated_min", &o.UpdatedMin)
	p.Time("updated_max", &o.UpdatedMax)
	p.Time("published_min", &o.PublishedMin)
	p.Time("published_max", &o.PublishedMax)
	p.Uint("start_index", &o.StartIndex)
	p.Uint("max_results", &o.MaxResults)
	p.Bool("strict", &o.Strict)
}

// Apply copies the options onto q.
func (o QueryOptions) Apply(q *gdata.Query) error {
	q.SetQ(o.Q)
	q.SetCategories(o.Categories)
	q.SetAuthor(o.Author)
	for _, set := range []struct {
		fn func(int64) error
		v  int64
	}{
		{q.SetUpdatedMin, o.UpdatedMin},
		{q.SetUpdatedMax, o.UpdatedMax},
		{q.SetPublishedMin, o.PublishedMin},
		{q.SetPublishedMax, o.PublishedMax},
	} {
		if err := set.fn(set.v); err != nil {
			return err
		}
	}
	q.SetStartIndex(o.StartIndex)
	q.SetMaxResults(o.MaxResults)
	q.SetIsStrict(o.Strict)
	return nil
}

// ParseQuery reads the base keys into a plain query paged by pagination.
// Feeds without service-specific options use it directly.
func ParseQuery(params map[string]string, pagination gdata.PaginationType) (*gdata.Query, error) {
	opts := DefaultQueryOptions()
	p := NewParams(params)
	opts.Read(p)
	if err := p.Err(); err != nil {
		return nil, err
	}
	if err := ValidateStruct(opts); err != nil {
		return nil, err
	}

	q := gdata.NewQuery(opts.Q)
	q.SetPaginationType(pagination)
	if err := opts.Apply(q); err != nil {
		return nil, err
	}
	return q, nil
}
