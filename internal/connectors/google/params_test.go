package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

func TestParams_Readers(t *testing.T) {
	p := NewParams(map[string]string{
		"name":   " tasks ",
		"count":  "25",
		"offset": "-3",
		"radius": "1.5",
		"flag":   "true",
		"iso":    "1970-01-01T01:53:09Z",
		"date":   "2014-08-30",
		"unix":   "1234",
		"list":   "a, b,,c",
	})

	var (
		name   string
		count  uint
		offset int
		radius float64
		flag   bool
		iso    int64
		date   int64
		unix   int64
		list   []string
	)
	p.String("name", &name)
	p.Uint("count", &count)
	p.Int("offset", &offset)
	p.Float("radius", &radius)
	p.Bool("flag", &flag)
	p.Time("iso", &iso)
	p.Time("date", &date)
	p.Time("unix", &unix)
	p.Strings("list", &list)

	require.NoError(t, p.Err())
	assert.Equal(t, "tasks", name)
	assert.Equal(t, uint(25), count)
	assert.Equal(t, -3, offset)
	assert.InDelta(t, 1.5, radius, 1e-9)
	assert.True(t, flag)
	assert.Equal(t, int64(6789), iso)
	assert.Equal(t, int64(1409356800), date)
	assert.Equal(t, int64(1234), unix)
	assert.Equal(t, []string{"a", "b", "c"}, list)
}

func TestParams_MissingKeysLeaveDefaults(t *testing.T) {
	p := NewParams(nil)

	count := uint(7)
	ts := gdata.Unset
	p.Uint("count", &count)
	p.Time("ts", &ts)

	require.NoError(t, p.Err())
	assert.Equal(t, uint(7), count)
	assert.Equal(t, gdata.Unset, ts)
}

func TestParams_Errors(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		read    func(p *Params)
		message string
	}{
		{
			name:    "bad uint",
			values:  map[string]string{"n": "-1"},
			read:    func(p *Params) { var v uint; p.Uint("n", &v) },
			message: `n="-1" is not a non-negative integer`,
		},
		{
			name:    "bad bool",
			values:  map[string]string{"b": "maybe"},
			read:    func(p *Params) { var v bool; p.Bool("b", &v) },
			message: `b="maybe" is not a boolean`,
		},
		{
			name:    "bad time",
			values:  map[string]string{"t": "yesterday"},
			read:    func(p *Params) { var v int64; p.Time("t", &v) },
			message: `t="yesterday" is not a timestamp`,
		},
		{
			name:    "time below unset",
			values:  map[string]string{"t": "-2"},
			read:    func(p *Params) { var v int64; p.Time("t", &v) },
			message: `t="-2" is not a timestamp`,
		},
		{
			name:    "unknown key",
			values:  map[string]string{"colour": "red"},
			read:    func(*Params) {},
			message: `unknown parameter "colour"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams(tt.values)
			tt.read(p)

			err := p.Err()
			require.ErrorIs(t, err, domain.ErrInvalidQuery)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestQueryOptions_ReadAndApply(t *testing.T) {
	p := NewParams(map[string]string{
		"q":           "dogs",
		"author":      "me",
		"updated_min": "6789",
		"start_index": "11",
		"max_results": "10",
		"strict":      "true",
	})
	opts := DefaultQueryOptions()
	opts.Read(p)
	require.NoError(t, p.Err())

	q := gdata.NewQuery("")
	require.NoError(t, opts.Apply(q))

	assert.Equal(t, "dogs", q.Q())
	assert.Equal(t, "me", q.Author())
	assert.Equal(t, int64(6789), q.UpdatedMin())
	assert.Equal(t, gdata.Unset, q.UpdatedMax())
	assert.Equal(t, uint(11), q.StartIndex())
	assert.Equal(t, uint(10), q.MaxResults())
	assert.True(t, q.IsStrict())
}

func TestQueryOptions_ValidateRejectsBadTimestamps(t *testing.T) {
	opts := DefaultQueryOptions()
	opts.PublishedMax = -5

	err := ValidateStruct(opts)
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
	assert.Contains(t, err.Error(), "PublishedMax: gte=-1")
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(map[string]string{"q": "cats", "max_results": "5"}, gdata.PaginationURIs)
	require.NoError(t, err)

	assert.Equal(t, gdata.PaginationURIs, q.PaginationType())
	uri, err := q.QueryURI("http://example.com/feed")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/feed?q=cats&max-results=5", uri)

	_, err = ParseQuery(map[string]string{"colour": "red"}, gdata.PaginationIndexed)
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
}
