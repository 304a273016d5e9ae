package freebase

import (
	"strings"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// SearchQuery is a full-text topic search. The start index maps to the
// search cursor and updated-max to as_of_time; the other shared GData
// parameters do not apply.
type SearchQuery struct {
	gdata.Query

	filter   Filter
	language string
	stemmed  bool
}

// NewSearchQuery returns a search for the text q.
func NewSearchQuery(q string) *SearchQuery {
	query := &SearchQuery{}
	query.Init(q)
	query.SetPaginationType(gdata.PaginationIndexed)
	return query
}

// QueryURI implements gdata.Querier.
func (q *SearchQuery) QueryURI(feedURI string) (string, error) {
	return gdata.BuildURI(&q.Query, feedURI, q)
}

// languages returns the lang parameter value: the explicit language, else
// the user's locale languages, else DefaultLanguage.
func (q *SearchQuery) languages() string {
	if q.language != "" {
		return q.language
	}
	if langs := UserLanguages(); len(langs) > 0 {
		return strings.Join(langs, ",")
	}
	return DefaultLanguage
}

// AppendParams writes the search parameters. lang is always present.
func (q *SearchQuery) AppendParams(w *gdata.URIWriter) {
	if text := q.Q(); text != "" {
		w.Param("query", text)
	}
	if q.filter != nil {
		w.Param("filter", FilterString(q.filter))
	}
	if t := q.UpdatedMax(); t != gdata.Unset {
		w.TimeParam("as_of_time", t)
	}
	w.RawParam("lang", q.languages())
	if q.stemmed {
		w.RawParam("stemmed", "true")
	}
	if i := q.StartIndex(); i > 0 {
		w.UintParam("cursor", i)
	}
	if n := q.MaxResults(); n > 0 {
		w.UintParam("limit", n)
	}
}

// Filter returns the filter expression, or nil.
func (q *SearchQuery) Filter() Filter { return q.filter }

// SetFilter restricts results with f; nil removes the filter.
func (q *SearchQuery) SetFilter(f Filter) {
	q.filter = f
	q.SetETag("")
}

// Language returns the explicit language, or "" to follow the locale.
func (q *SearchQuery) Language() string { return q.language }

// SetLanguage sets the two-letter language of the search terms and results.
// An empty lang follows the user's locale.
func (q *SearchQuery) SetLanguage(lang string) error {
	if lang != "" {
		if err := ValidateLanguage(lang); err != nil {
			return err
		}
	}
	q.language = strings.ToLower(lang)
	q.SetETag("")
	return nil
}

// Stemmed reports whether search terms are stemmed.
func (q *SearchQuery) Stemmed() bool { return q.stemmed }

// SetStemmed enables stemming of the search terms.
func (q *SearchQuery) SetStemmed(stemmed bool) {
	q.stemmed = stemmed
	q.SetETag("")
}
