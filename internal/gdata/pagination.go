package gdata

import "fmt"

// PaginationType selects how a query moves between result pages.
type PaginationType int

const (
	// PaginationIndexed advances start-index by max-results.
	PaginationIndexed PaginationType = iota
	// PaginationURIs follows next/previous URIs supplied by the server.
	PaginationURIs
	// PaginationTokens sends an opaque next-page token supplied by the server.
	// Going backwards is not supported.
	PaginationTokens
)

// String returns the strategy name.
func (t PaginationType) String() string {
	switch t {
	case PaginationIndexed:
		return "indexed"
	case PaginationURIs:
		return "uris"
	case PaginationTokens:
		return "tokens"
	default:
		return fmt.Sprintf("PaginationType(%d)", int(t))
	}
}

type paginationState struct {
	kind          PaginationType
	nextURI       string
	previousURI   string
	nextPageToken string
	useNext       bool
	usePrevious   bool
}

// PaginationType returns the active pagination strategy.
func (q *Query) PaginationType() PaginationType { return q.pagination.kind }

// SetPaginationType switches strategy, discarding all pagination state.
// Service queries call it once from their constructor.
func (q *Query) SetPaginationType(t PaginationType) {
	q.ClearPagination()
	q.pagination.kind = t
}

// ClearPagination drops stored next/previous URIs or the page token and any
// pending page request. The start index is left alone.
func (q *Query) ClearPagination() {
	switch q.pagination.kind {
	case PaginationURIs:
		q.pagination.nextURI = ""
		q.pagination.previousURI = ""
	case PaginationTokens:
		q.pagination.nextPageToken = ""
	}
	q.pagination.useNext = false
	q.pagination.usePrevious = false
}

func (q *Query) requirePagination(t PaginationType, method string) {
	if q.pagination.kind != t {
		panic(fmt.Sprintf("gdata: %s called on a query using %s pagination, want %s",
			method, q.pagination.kind, t))
	}
}

// NextURI returns the server-supplied URI of the next page.
func (q *Query) NextURI() string { return q.pagination.nextURI }

// SetNextURI stores the URI of the next page. It panics unless the query
// uses PaginationURIs.
func (q *Query) SetNextURI(uri string) {
	q.requirePagination(PaginationURIs, "SetNextURI")
	q.pagination.nextURI = uri
}

// PreviousURI returns the server-supplied URI of the previous page.
func (q *Query) PreviousURI() string { return q.pagination.previousURI }

// SetPreviousURI stores the URI of the previous page. It panics unless the
// query uses PaginationURIs.
func (q *Query) SetPreviousURI(uri string) {
	q.requirePagination(PaginationURIs, "SetPreviousURI")
	q.pagination.previousURI = uri
}

// NextPageToken returns the server-supplied token for the next page.
func (q *Query) NextPageToken() string { return q.pagination.nextPageToken }

// SetNextPageToken stores the token for the next page. It panics unless the
// query uses PaginationTokens.
func (q *Query) SetNextPageToken(token string) {
	q.requirePagination(PaginationTokens, "SetNextPageToken")
	q.pagination.nextPageToken = token
}

// PageToken returns the token the next request should send: the stored
// token once NextPage has been called under PaginationTokens, else "".
// Queries that do not chain up to AppendParams write it themselves.
func (q *Query) PageToken() string {
	if q.pagination.kind != PaginationTokens || !q.pagination.useNext {
		return ""
	}
	return q.pagination.nextPageToken
}

// NextPage moves to the following page of results and clears the ETag.
//
// With indexed pagination an unset start index moves to 1+max-results, so
// the first page is always addressed as index 1.
func (q *Query) NextPage() {
	switch q.pagination.kind {
	case PaginationIndexed:
		if q.startIndex == 0 {
			q.startIndex = 1
		}
		q.startIndex += q.maxResults
	case PaginationURIs, PaginationTokens:
		q.pagination.useNext = true
		q.pagination.usePrevious = false
	}
	q.etag = ""
}

// PreviousPage moves to the preceding page of results and reports whether
// there was one. The ETag is cleared only when the move happens.
//
// With indexed pagination the move fails when the page size is unset or the
// start index is already within the first page; otherwise the index drops by
// exactly max-results, making NextPage and PreviousPage inverses for any
// start index of 1 or more. Token pagination never supports going back.
func (q *Query) PreviousPage() bool {
	switch q.pagination.kind {
	case PaginationIndexed:
		if q.maxResults == 0 || q.startIndex <= q.maxResults {
			return false
		}
		q.startIndex -= q.maxResults
	case PaginationURIs:
		if q.pagination.previousURI == "" {
			return false
		}
		q.pagination.useNext = false
		q.pagination.usePrevious = true
	default:
		return false
	}
	q.etag = ""
	return true
}

// IsFinished reports whether a next page was requested but the server gave
// nothing to continue with. Indexed queries never finish on their own.
func (q *Query) IsFinished() bool {
	switch q.pagination.kind {
	case PaginationURIs:
		return q.pagination.useNext && q.pagination.nextURI == ""
	case PaginationTokens:
		return q.pagination.useNext && q.pagination.nextPageToken == ""
	default:
		return false
	}
}
