package freebase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Query is an MQL read. It carries either a free-text query in q or an MQL
// document; q wins when both are set. None of the shared GData parameters
// other than max-results apply.
type Query struct {
	gdata.Query

	mql json.RawMessage
}

// NewQuery returns a query for the text q.
func NewQuery(q string) *Query {
	query := &Query{}
	query.Init(q)
	query.SetPaginationType(gdata.PaginationIndexed)
	return query
}

// NewMQLQuery returns a query for the MQL document mql, which must be a JSON
// object.
func NewMQLQuery(mql json.RawMessage) (*Query, error) {
	q := NewQuery("")
	if err := q.SetMQL(mql); err != nil {
		return nil, err
	}
	return q, nil
}

// QueryURI implements gdata.Querier.
func (q *Query) QueryURI(feedURI string) (string, error) {
	return gdata.BuildURI(&q.Query, feedURI, q)
}

// MQL returns the MQL document, compacted.
func (q *Query) MQL() json.RawMessage { return q.mql }

// SetMQL replaces the MQL document. nil clears it.
func (q *Query) SetMQL(mql json.RawMessage) error {
	if mql == nil {
		q.mql = nil
		q.SetETag("")
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(mql, &obj); err != nil || obj == nil {
		return fmt.Errorf("%w: MQL query is not a JSON object", domain.ErrInvalidQuery)
	}
	var b bytes.Buffer
	if err := json.Compact(&b, mql); err != nil {
		return fmt.Errorf("%w: MQL query: %v", domain.ErrInvalidQuery, err)
	}
	q.mql = b.Bytes()
	q.SetETag("")
	return nil
}

// mqlWithLimit returns the MQL document with its limit member set to n. The
// members come out in key order.
func (q *Query) mqlWithLimit(n uint) string {
	if n == 0 {
		return string(q.mql)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(q.mql, &obj); err != nil {
		return string(q.mql)
	}
	obj["limit"] = json.RawMessage(strconv.FormatUint(uint64(n), 10))
	data, err := json.Marshal(obj)
	if err != nil {
		return string(q.mql)
	}
	return string(data)
}

// AppendParams writes the single query parameter.
func (q *Query) AppendParams(w *gdata.URIWriter) {
	if text := q.Q(); text != "" {
		w.Param("query", text)
		return
	}
	if q.mql != nil {
		w.Param("query", q.mqlWithLimit(q.MaxResults()))
	}
}
