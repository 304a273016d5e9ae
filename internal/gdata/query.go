package gdata

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
)

// ErrMissingBaseURI is returned when a query URI is requested without a feed URI.
var ErrMissingBaseURI = fmt.Errorf("%w: base URI is required", domain.ErrInvalidQuery)

// Query holds the parameters shared by every service query, the ETag of the
// last response produced by those parameters, and the pagination state.
//
// A Query is not safe for concurrent mutation. The zero value is not ready
// for use; construct one with NewQuery.
type Query struct {
	q          string
	qInternal  string
	categories string
	author     string

	updatedMin   int64
	updatedMax   int64
	publishedMin int64
	publishedMax int64

	startIndex uint
	isStrict   bool
	maxResults uint

	etag string

	pagination paginationState
}

// NewQuery creates a query for the free-text search q, which may be empty.
func NewQuery(q string) *Query {
	query := &Query{}
	query.Init(q)
	return query
}

// NewQueryWithLimits creates a query with an initial start index and page size.
func NewQueryWithLimits(q string, startIndex, maxResults uint) *Query {
	query := NewQuery(q)
	query.startIndex = startIndex
	query.maxResults = maxResults
	return query
}

// Init resets q to its defaults. Service query types embedding Query call it
// from their constructors before selecting their pagination strategy.
func (q *Query) Init(text string) {
	*q = Query{
		q:            text,
		updatedMin:   Unset,
		updatedMax:   Unset,
		publishedMin: Unset,
		publishedMax: Unset,
	}
}

// ValidateTimestamp checks that v is Unset or a real time. Service queries
// use it for their own timestamp setters.
func ValidateTimestamp(name string, v int64) error {
	if v < Unset {
		return fmt.Errorf("%w: %s must be %d or later, got %d", domain.ErrInvalidQuery, name, Unset, v)
	}
	return nil
}

// Q returns the free-text search string.
func (q *Query) Q() string { return q.q }

// SetQ sets the free-text search string.
func (q *Query) SetQ(text string) {
	q.q = text
	q.etag = ""
}

// Categories returns the category filter expression.
func (q *Query) Categories() string { return q.categories }

// SetCategories sets the category filter, e.g. "Fritz/Laurie" or "A|B".
func (q *Query) SetCategories(categories string) {
	q.categories = categories
	q.etag = ""
}

// Author returns the author filter.
func (q *Query) Author() string { return q.author }

// SetAuthor restricts results to entries by the given author.
func (q *Query) SetAuthor(author string) {
	q.author = author
	q.etag = ""
}

// UpdatedMin returns the lower update bound in Unix seconds, or Unset.
func (q *Query) UpdatedMin() int64 { return q.updatedMin }

// SetUpdatedMin sets the lower update bound. Pass Unset to clear it.
func (q *Query) SetUpdatedMin(v int64) error {
	if err := ValidateTimestamp("updated-min", v); err != nil {
		return err
	}
	q.updatedMin = v
	q.etag = ""
	return nil
}

// UpdatedMax returns the upper update bound in Unix seconds, or Unset.
func (q *Query) UpdatedMax() int64 { return q.updatedMax }

// SetUpdatedMax sets the upper update bound. Pass Unset to clear it.
func (q *Query) SetUpdatedMax(v int64) error {
	if err := ValidateTimestamp("updated-max", v); err != nil {
		return err
	}
	q.updatedMax = v
	q.etag = ""
	return nil
}

// PublishedMin returns the lower publication bound in Unix seconds, or Unset.
func (q *Query) PublishedMin() int64 { return q.publishedMin }

// SetPublishedMin sets the lower publication bound. Pass Unset to clear it.
func (q *Query) SetPublishedMin(v int64) error {
	if err := ValidateTimestamp("published-min", v); err != nil {
		return err
	}
	q.publishedMin = v
	q.etag = ""
	return nil
}

// PublishedMax returns the upper publication bound in Unix seconds, or Unset.
func (q *Query) PublishedMax() int64 { return q.publishedMax }

// SetPublishedMax sets the upper publication bound. Pass Unset to clear it.
func (q *Query) SetPublishedMax(v int64) error {
	if err := ValidateTimestamp("published-max", v); err != nil {
		return err
	}
	q.publishedMax = v
	q.etag = ""
	return nil
}

// StartIndex returns the one-based start index, or 0 if unset.
func (q *Query) StartIndex() uint { return q.startIndex }

// SetStartIndex sets the one-based start index. 0 unsets it.
func (q *Query) SetStartIndex(i uint) {
	q.startIndex = i
	q.etag = ""
}

// IsStrict reports whether the server should reject unknown parameters.
func (q *Query) IsStrict() bool { return q.isStrict }

// SetIsStrict toggles strict server-side parameter checking. It has no
// effect on how responses are parsed locally.
func (q *Query) SetIsStrict(strict bool) {
	q.isStrict = strict
	q.etag = ""
}

// MaxResults returns the page size, or 0 if unset.
func (q *Query) MaxResults() uint { return q.maxResults }

// SetMaxResults sets the page size. 0 unsets it.
func (q *Query) SetMaxResults(n uint) {
	q.maxResults = n
	q.etag = ""
}

// ETag returns the ETag of the last response for these parameters.
func (q *Query) ETag() string { return q.etag }

// SetETag stores the ETag of a response. It is the only setter that does
// not invalidate the ETag.
func (q *Query) SetETag(etag string) { q.etag = etag }

// InternalClauses returns the search clauses injected by the service query.
func (q *Query) InternalClauses() string { return q.qInternal }

// AddInternalClause appends a service-generated search clause, joined to any
// existing one with " and ". Empty clauses are ignored.
func (q *Query) AddInternalClause(clause string) {
	if clause == "" {
		return
	}
	if q.qInternal != "" {
		q.qInternal += " and "
	}
	q.qInternal += clause
}

// ClearInternalClauses removes all service-generated search clauses.
func (q *Query) ClearInternalClauses() { q.qInternal = "" }

// Base returns q itself. It lets service queries that embed Query satisfy
// interfaces that need access to the shared state.
func (q *Query) Base() *Query { return q }

// IsInvalidQuery reports whether err was produced by query validation.
func IsInvalidQuery(err error) bool {
	return errors.Is(err, domain.ErrInvalidQuery)
}
