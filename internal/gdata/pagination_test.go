package gdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryURI(t *testing.T, q *Query, base string) string {
	t.Helper()
	uri, err := q.QueryURI(base)
	require.NoError(t, err)
	return uri
}

func TestPagination_Indexed(t *testing.T) {
	q := NewQuery("test")
	q.SetMaxResults(15)
	assert.Equal(t, "http://example.com/?q=test&max-results=15", queryURI(t, q, "http://example.com/"))

	q.NextPage()
	assert.Equal(t, "http://example.com/?q=test&start-index=16&max-results=15", queryURI(t, q, "http://example.com/"))

	require.True(t, q.PreviousPage())
	assert.Equal(t, uint(1), q.StartIndex())

	assert.False(t, q.PreviousPage())
	assert.Equal(t, uint(1), q.StartIndex())
}

func TestPagination_IndexedWithLimits(t *testing.T) {
	q := NewQueryWithLimits("", 40, 10)
	assert.Equal(t, uint(40), q.StartIndex())

	q.NextPage()
	assert.Equal(t, uint(50), q.StartIndex())

	require.True(t, q.PreviousPage())
	assert.Equal(t, uint(40), q.StartIndex())

	require.True(t, q.PreviousPage())
	assert.Equal(t, uint(30), q.StartIndex())
}

func TestPagination_IndexedPreviousPageBoundary(t *testing.T) {
	tests := []struct {
		name       string
		startIndex uint
		maxResults uint
		wantOK     bool
		wantIndex  uint
	}{
		{"no page size", 20, 0, false, 20},
		{"start equals page size", 10, 10, false, 10},
		{"inside first page", 5, 10, false, 5},
		{"one past first page", 11, 10, true, 1},
		{"second page", 21, 10, true, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueryWithLimits("", tt.startIndex, tt.maxResults)
			q.SetETag("tag")

			ok := q.PreviousPage()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIndex, q.StartIndex())
			if ok {
				assert.Empty(t, q.ETag())
			} else {
				assert.Equal(t, "tag", q.ETag())
			}
		})
	}
}

func TestPagination_URIs(t *testing.T) {
	q := NewQuery("x")
	q.SetPaginationType(PaginationURIs)

	assert.Equal(t, "http://example.com?q=x", queryURI(t, q, "http://example.com"))
	assert.False(t, q.PreviousPage())

	q.NextPage()
	assert.True(t, q.IsFinished())
	assert.Equal(t, "", queryURI(t, q, "http://example.com"))

	q.ClearPagination()
	q.SetNextURI("http://example.com/next")
	q.SetPreviousURI("http://example.com/prev")
	assert.False(t, q.IsFinished())

	q.NextPage()
	assert.False(t, q.IsFinished())
	assert.Equal(t, "http://example.com/next", queryURI(t, q, "http://example.com"))

	require.True(t, q.PreviousPage())
	assert.Equal(t, "http://example.com/prev", queryURI(t, q, "http://example.com"))

	q.ClearPagination()
	assert.Empty(t, q.NextURI())
	assert.Empty(t, q.PreviousURI())
	assert.Equal(t, "http://example.com?q=x", queryURI(t, q, "http://example.com"))
}

func TestPagination_Tokens(t *testing.T) {
	q := NewQuery("")
	q.SetPaginationType(PaginationTokens)
	q.SetMaxResults(5)

	q.SetNextPageToken("T1")
	assert.Equal(t, "https://example.com/feed?max-results=5", queryURI(t, q, "https://example.com/feed"))

	q.NextPage()
	assert.Equal(t, "https://example.com/feed?max-results=5&pageToken=T1", queryURI(t, q, "https://example.com/feed"))
	assert.False(t, q.IsFinished())
	assert.False(t, q.PreviousPage())

	q.SetNextPageToken("a b/c")
	assert.Equal(t, "https://example.com/feed?max-results=5&pageToken=a%20b%2Fc", queryURI(t, q, "https://example.com/feed"))

	q.ClearPagination()
	assert.Empty(t, q.NextPageToken())
	q.NextPage()
	assert.True(t, q.IsFinished())
}

func TestPagination_MismatchPanics(t *testing.T) {
	q := NewQuery("")

	assert.Panics(t, func() { q.SetNextURI("x") })
	assert.Panics(t, func() { q.SetPreviousURI("x") })
	assert.Panics(t, func() { q.SetNextPageToken("x") })

	q.SetPaginationType(PaginationTokens)
	assert.Panics(t, func() { q.SetNextURI("x") })
	assert.NotPanics(t, func() { q.SetNextPageToken("x") })
}

func TestPagination_SetTypeResetsState(t *testing.T) {
	q := NewQuery("")
	q.SetPaginationType(PaginationTokens)
	q.SetNextPageToken("T")
	q.NextPage()

	q.SetPaginationType(PaginationTokens)
	assert.Empty(t, q.NextPageToken())
	assert.False(t, q.IsFinished())
}

func TestPaginationType_String(t *testing.T) {
	assert.Equal(t, "indexed", PaginationIndexed.String())
	assert.Equal(t, "uris", PaginationURIs.String())
	assert.Equal(t, "tokens", PaginationTokens.String())
	assert.Equal(t, "PaginationType(9)", PaginationType(9).String())
}
