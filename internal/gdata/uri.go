package gdata

import (
	"strconv"
	"strings"
)

// ParamAppender writes a query's parameters into a URIWriter. Query
// implements it with the shared GData parameters; service queries implement
// it to add their own, calling Query.AppendParams first to chain up.
type ParamAppender interface {
	AppendParams(w *URIWriter)
}

// Querier is anything the HTTP layer can issue: it exposes the shared query
// state and builds its full URI.
type Querier interface {
	Base() *Query
	QueryURI(feedURI string) (string, error)
}

// URIWriter accumulates a query URI and tracks whether the parameter list
// has been opened with '?'.
type URIWriter struct {
	b       strings.Builder
	started bool
}

// NewURIWriter starts a URI from feedURI. If feedURI already carries a query
// string, the first parameter is joined with '&'.
func NewURIWriter(feedURI string) *URIWriter {
	w := &URIWriter{started: strings.Contains(feedURI, "?")}
	w.b.WriteString(feedURI)
	return w
}

// AppendPath writes raw text before any parameter, e.g. a path suffix.
func (w *URIWriter) AppendPath(s string) { w.b.WriteString(s) }

func (w *URIWriter) sep() {
	if w.started {
		w.b.WriteByte('&')
	} else {
		w.b.WriteByte('?')
		w.started = true
	}
}

// RawParam appends name=value without escaping value.
func (w *URIWriter) RawParam(name, value string) {
	w.sep()
	w.b.WriteString(name)
	w.b.WriteByte('=')
	w.b.WriteString(value)
}

// Param appends name=value with value percent-encoded.
func (w *URIWriter) Param(name, value string) {
	w.RawParam(name, EscapeURI(value, ""))
}

// Flag appends a bare parameter such as "strict=true".
func (w *URIWriter) Flag(param string) {
	w.sep()
	w.b.WriteString(param)
}

// BoolParam appends name=true or name=false.
func (w *URIWriter) BoolParam(name string, v bool) {
	w.RawParam(name, strconv.FormatBool(v))
}

// UintParam appends a decimal parameter.
func (w *URIWriter) UintParam(name string, v uint) {
	w.RawParam(name, strconv.FormatUint(uint64(v), 10))
}

// TimeParam appends an ISO 8601 timestamp parameter.
func (w *URIWriter) TimeParam(name string, t int64) {
	w.RawParam(name, FormatISO8601(t))
}

// String returns the URI built so far.
func (w *URIWriter) String() string { return w.b.String() }

// BuildURI resolves the URI for q against feedURI. Under URI pagination a
// pending next or previous request returns the stored server URI verbatim,
// which is empty if the server never supplied one. Otherwise p writes the
// parameters.
func BuildURI(q *Query, feedURI string, p ParamAppender) (string, error) {
	if feedURI == "" {
		return "", ErrMissingBaseURI
	}

	if q.pagination.kind == PaginationURIs {
		if q.pagination.useNext {
			return q.pagination.nextURI, nil
		}
		if q.pagination.usePrevious {
			return q.pagination.previousURI, nil
		}
	}

	w := NewURIWriter(feedURI)
	p.AppendParams(w)
	return w.String(), nil
}

// QueryURI builds the query URI for feedURI using the shared parameters.
func (q *Query) QueryURI(feedURI string) (string, error) {
	return BuildURI(q, feedURI, q)
}

// AppendParams writes the shared GData parameters in their fixed order.
func (q *Query) AppendParams(w *URIWriter) {
	if q.categories != "" {
		w.AppendPath("/-/")
		w.AppendPath(EscapeURI(q.categories, "/"))
	}

	if q.q != "" || q.qInternal != "" {
		var text strings.Builder
		if q.q != "" {
			text.WriteString(EscapeURI(q.q, ""))
			if q.qInternal != "" {
				text.WriteString("%20and%20")
			}
		}
		if q.qInternal != "" {
			text.WriteString(EscapeURI(q.qInternal, ""))
		}
		w.RawParam("q", text.String())
	}

	if q.author != "" {
		w.Param("author", q.author)
	}
	if q.updatedMin != Unset {
		w.TimeParam("updated-min", q.updatedMin)
	}
	if q.updatedMax != Unset {
		w.TimeParam("updated-max", q.updatedMax)
	}
	if q.publishedMin != Unset {
		w.TimeParam("published-min", q.publishedMin)
	}
	if q.publishedMax != Unset {
		w.TimeParam("published-max", q.publishedMax)
	}
	if q.startIndex > 0 {
		w.UintParam("start-index", q.startIndex)
	}
	if q.isStrict {
		w.Flag("strict=true")
	}
	if q.maxResults > 0 {
		w.UintParam("max-results", q.maxResults)
	}

	if token := q.PageToken(); token != "" {
		w.Param("pageToken", token)
	}
}
