package contacts

import (
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Orderings and sort directions the contacts feed accepts.
const (
	OrderLastModified = "lastmodified"

	SortAscending  = "ascending"
	SortDescending = "descending"
)

// Query filters the contacts feed. It pages by index and adds orderby,
// showdeleted, sortorder and group after the shared parameters.
type Query struct {
	gdata.Query

	orderBy     string
	showDeleted bool
	sortOrder   string
	group       string
}

// NewQuery returns a query for the free-text search q, which may be empty.
func NewQuery(q string) *Query {
	query := &Query{}
	query.Init(q)
	query.SetPaginationType(gdata.PaginationIndexed)
	return query
}

// NewQueryWithLimits is NewQuery with a start index and page size.
func NewQueryWithLimits(q string, startIndex, maxResults uint) *Query {
	query := NewQuery(q)
	query.SetStartIndex(startIndex)
	query.SetMaxResults(maxResults)
	return query
}

// QueryURI implements gdata.Querier.
func (q *Query) QueryURI(feedURI string) (string, error) {
	return gdata.BuildURI(&q.Query, feedURI, q)
}

// AppendParams writes the shared parameters, then orderby, showdeleted,
// sortorder and group. showdeleted is always sent.
func (q *Query) AppendParams(w *gdata.URIWriter) {
	q.Query.AppendParams(w)

	if q.orderBy != "" {
		w.Param("orderby", q.orderBy)
	}
	w.BoolParam("showdeleted", q.showDeleted)
	if q.sortOrder != "" {
		w.Param("sortorder", q.sortOrder)
	}
	if q.group != "" {
		w.Param("group", q.group)
	}
}

// OrderBy returns the sort key.
func (q *Query) OrderBy() string { return q.orderBy }

// SetOrderBy sets the sort key, currently only OrderLastModified.
func (q *Query) SetOrderBy(orderBy string) {
	q.orderBy = orderBy
	q.SetETag("")
}

// ShowDeleted reports whether deleted contacts are included.
func (q *Query) ShowDeleted() bool { return q.showDeleted }

// SetShowDeleted includes contacts deleted in the last 30 days.
func (q *Query) SetShowDeleted(show bool) {
	q.showDeleted = show
	q.SetETag("")
}

// SortOrder returns the sort direction.
func (q *Query) SortOrder() string { return q.sortOrder }

// SetSortOrder sets SortAscending or SortDescending.
func (q *Query) SetSortOrder(order string) {
	q.sortOrder = order
	q.SetETag("")
}

// Group returns the group filter.
func (q *Query) Group() string { return q.group }

// SetGroup restricts results to members of the group with the given id.
func (q *Query) SetGroup(group string) {
	q.group = group
	q.SetETag("")
}
