package gdata

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
)

// CursorVersion is the current cursor format version.
const CursorVersion = 1

// ErrInvalidCursor indicates the cursor could not be decoded or does not fit
// the query it is restored into.
var ErrInvalidCursor = fmt.Errorf("%w: invalid cursor", domain.ErrInvalidQuery)

// Cursor is a portable snapshot of a query's position in a result set, so a
// later process can continue paging where an earlier one stopped.
type Cursor struct {
	// Version is the cursor format version for future compatibility.
	Version int `json:"v"`
	// Pagination names the strategy the cursor was taken from.
	Pagination string `json:"p"`
	// StartIndex is the indexed position.
	StartIndex uint `json:"start_index,omitempty"`
	// NextURI and PreviousURI are the stored server URIs.
	NextURI     string `json:"next_uri,omitempty"`
	PreviousURI string `json:"previous_uri,omitempty"`
	// PageToken is the stored next-page token.
	PageToken string `json:"page_token,omitempty"`
}

// Cursor captures q's current pagination position.
func (q *Query) Cursor() *Cursor {
	return &Cursor{
		Version:     CursorVersion,
		Pagination:  q.pagination.kind.String(),
		StartIndex:  q.startIndex,
		NextURI:     q.pagination.nextURI,
		PreviousURI: q.pagination.previousURI,
		PageToken:   q.pagination.nextPageToken,
	}
}

// RestoreCursor loads a position captured by Cursor. No page request is
// pending afterwards; call NextPage to continue.
func (q *Query) RestoreCursor(c *Cursor) error {
	if c == nil || c.Pagination != q.pagination.kind.String() {
		return ErrInvalidCursor
	}

	q.ClearPagination()
	switch q.pagination.kind {
	case PaginationIndexed:
		q.startIndex = c.StartIndex
	case PaginationURIs:
		q.pagination.nextURI = c.NextURI
		q.pagination.previousURI = c.PreviousURI
	case PaginationTokens:
		q.pagination.nextPageToken = c.PageToken
	}
	q.etag = ""
	return nil
}

// Encode serialises the cursor to a base64 string for storage.
func (c *Cursor) Encode() string {
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor deserialises a cursor produced by Encode.
func DecodeCursor(s string) (*Cursor, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, ErrInvalidCursor
	}

	// Version check for future migrations
	if cursor.Version < 1 || cursor.Version > CursorVersion {
		return nil, ErrInvalidCursor
	}

	return &cursor, nil
}
