package freebase

import (
	"encoding/json"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Result is the reply to an MQL read. The result member is kept as raw
// JSON since its shape mirrors the query.
type Result struct {
	gdata.Entry

	result json.RawMessage
}

// NewResult returns an empty result.
func NewResult() *Result {
	r := &Result{}
	r.InitEntry("")
	return r
}

// ContentType implements gdata.JSONParsable.
func (r *Result) ContentType() string { return gdata.ContentTypeJSON }

// ParseJSONMember keeps the result member, then defers to the entry.
func (r *Result) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	if name == "result" {
		r.result = append(json.RawMessage(nil), value...)
		return true, nil
	}
	return r.Entry.ParseJSONMember(name, value)
}

// GetJSON writes the result member.
func (r *Result) GetJSON(j *gdata.JSONBuilder) {
	if r.result != nil {
		j.Raw("result", r.result)
	}
}

// Result returns the raw result, or nil when the reply had none.
func (r *Result) Result() json.RawMessage { return r.result }

// Decode unmarshals the result into v.
func (r *Result) Decode(v any) error {
	if r.result == nil {
		return gdata.RequiredJSONContentMissing("result")
	}
	return json.Unmarshal(r.result, v)
}

// SearchItem is one topic matched by a search.
type SearchItem struct {
	MID         string  `json:"mid"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Lang        string  `json:"lang"`
	Score       float64 `json:"score"`
	NotableID   string  `json:"-"`
	NotableName string  `json:"-"`
}

type searchItemJSON struct {
	SearchItem
	Notable *struct {
		ID   *string `json:"id"`
		Name *string `json:"name"`
	} `json:"notable"`
}

// SearchResult is the reply to a search: the matched topics in score order
// and the total number of hits.
type SearchResult struct {
	gdata.Entry

	hits   int64
	cursor int64
	items  []*SearchItem
}

// NewSearchResult returns an empty search result.
func NewSearchResult() *SearchResult {
	r := &SearchResult{}
	r.InitEntry("")
	return r
}

// ContentType implements gdata.JSONParsable.
func (r *SearchResult) ContentType() string { return gdata.ContentTypeJSON }

// ParseJSONMember reads hits, cursor and the result array. Each item needs
// mid and name, and a notable object, when present, needs id and name.
func (r *SearchResult) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	if ok, err := gdata.IntFromJSON(name, value, "hits", &r.hits); ok {
		return true, err
	}
	if ok, err := gdata.IntFromJSON(name, value, "cursor", &r.cursor); ok {
		return true, err
	}
	if name != "result" {
		return r.Entry.ParseJSONMember(name, value)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(value, &raw); err != nil {
		return true, gdata.InvalidJSON(name, "JSON node ‘result’ is not an array.")
	}
	for _, data := range raw {
		var item searchItemJSON
		if err := json.Unmarshal(data, &item); err != nil {
			return true, gdata.RequiredJSONContentMissing(name)
		}
		if item.MID == "" {
			return true, gdata.RequiredJSONContentMissing("mid")
		}
		if item.Name == "" {
			return true, gdata.RequiredJSONContentMissing("name")
		}
		if n := item.Notable; n != nil {
			if n.ID == nil || n.Name == nil {
				return true, gdata.RequiredJSONContentMissing("notable")
			}
			item.NotableID, item.NotableName = *n.ID, *n.Name
		}
		r.items = append(r.items, &item.SearchItem)
	}
	return true, nil
}

type notableJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type searchItemOut struct {
	MID     string       `json:"mid"`
	ID      string       `json:"id,omitempty"`
	Name    string       `json:"name"`
	Lang    string       `json:"lang,omitempty"`
	Score   float64      `json:"score"`
	Notable *notableJSON `json:"notable,omitempty"`
}

// GetJSON writes hits and the result array.
func (r *SearchResult) GetJSON(j *gdata.JSONBuilder) {
	j.Int("hits", r.hits)
	items := make([]string, 0, len(r.items))
	for _, it := range r.items {
		out := searchItemOut{MID: it.MID, ID: it.ID, Name: it.Name, Lang: it.Lang, Score: it.Score}
		if it.NotableID != "" || it.NotableName != "" {
			out.Notable = &notableJSON{ID: it.NotableID, Name: it.NotableName}
		}
		data, err := json.Marshal(out)
		if err != nil {
			continue
		}
		items = append(items, string(data))
	}
	j.RawArray("result", items)
}

// TotalHits returns the number of topics matching the search, which may
// exceed the number of items returned.
func (r *SearchResult) TotalHits() int64 { return r.hits }

// NextCursor returns the cursor of the following page, or 0.
func (r *SearchResult) NextCursor() int64 { return r.cursor }

// Items returns the matched topics.
func (r *SearchResult) Items() []*SearchItem { return r.items }
