package freebase

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// TopicQuery fetches the properties of one topic. The topic id, such as
// "/m/0d6lp", is carried in q and appended to the feed path.
type TopicQuery struct {
	gdata.Query

	language string
	filters  []string
}

// NewTopicQuery returns a query for the topic with the given id.
func NewTopicQuery(id string) *TopicQuery {
	query := &TopicQuery{}
	query.Init(id)
	query.SetPaginationType(gdata.PaginationIndexed)
	return query
}

// QueryURI implements gdata.Querier.
func (q *TopicQuery) QueryURI(feedURI string) (string, error) {
	return gdata.BuildURI(&q.Query, feedURI, q)
}

// AppendParams writes the topic id into the path, then lang, one filter
// per property prefix, dateline and limit. Only the first locale language
// is sent.
func (q *TopicQuery) AppendParams(w *gdata.URIWriter) {
	w.AppendPath(gdata.EscapeURI(q.Q(), "/"))

	lang := q.language
	if lang == "" {
		lang = DefaultLanguage
		if langs := UserLanguages(); len(langs) > 0 {
			lang = langs[0]
		}
	}
	w.RawParam("lang", lang)
	for _, f := range q.filters {
		w.Param("filter", f)
	}
	if t := q.UpdatedMax(); t != gdata.Unset {
		w.RawParam("dateline", strconv.FormatInt(t, 10))
	}
	if n := q.MaxResults(); n > 0 {
		w.UintParam("limit", n)
	}
}

// Language returns the explicit language, or "" to follow the locale.
func (q *TopicQuery) Language() string { return q.language }

// SetLanguage sets the two-letter language of the returned values.
func (q *TopicQuery) SetLanguage(lang string) error {
	if lang != "" {
		if err := ValidateLanguage(lang); err != nil {
			return err
		}
	}
	q.language = strings.ToLower(lang)
	q.SetETag("")
	return nil
}

// Filters returns the property prefixes the result is limited to.
func (q *TopicQuery) Filters() []string { return q.filters }

// SetFilters limits the result to properties under the given prefixes,
// e.g. "/common/topic". Nil returns every property.
func (q *TopicQuery) SetFilters(filters []string) {
	q.filters = filters
	q.SetETag("")
}
