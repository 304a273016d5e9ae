package freebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/connectors/google/googletest"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// setLocale clears the locale variables and sets LANGUAGE to value.
func setLocale(t *testing.T, value string) {
	t.Helper()
	for _, name := range localeVars {
		t.Setenv(name, "")
	}
	t.Setenv("LANGUAGE", value)
}

func queryParams(t *testing.T, uri string) url.Values {
	t.Helper()
	u, err := url.Parse(uri)
	require.NoError(t, err)
	return u.Query()
}

func TestQuery_Text(t *testing.T) {
	q := NewQuery("Madrid city")
	q.SetMaxResults(5)
	q.SetAuthor("ignored")

	uri, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com?query=Madrid%20city", uri)
	assert.Equal(t, gdata.PaginationIndexed, q.PaginationType())
}

func TestQuery_MQL(t *testing.T) {
	q, err := NewMQLQuery(json.RawMessage(`{ "type": "/film/film", "name": null }`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"/film/film","name":null}`, string(q.MQL()))

	uri, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, `{"type":"/film/film","name":null}`, queryParams(t, uri).Get("query"))

	q.SetMaxResults(5)
	uri, err = q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, `{"limit":5,"name":null,"type":"/film/film"}`, queryParams(t, uri).Get("query"))
	assert.JSONEq(t, `{"type":"/film/film","name":null}`, string(q.MQL()))
}

func TestQuery_TextWinsOverMQL(t *testing.T) {
	q, err := NewMQLQuery(json.RawMessage(`{"type":"/film/film"}`))
	require.NoError(t, err)
	q.SetQ("madrid")

	uri, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com?query=madrid", uri)
}

func TestQuery_SetMQL(t *testing.T) {
	tests := []struct {
		name    string
		mql     string
		wantErr bool
	}{
		{"object", `{"id":null}`, false},
		{"array", `[{"id":null}]`, true},
		{"string", `"id"`, true},
		{"null", `null`, true},
		{"invalid", `{"id":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuery("")
			err := q.SetMQL(json.RawMessage(tt.mql))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidQuery)
				return
			}
			assert.NoError(t, err)
		})
	}

	q := NewQuery("")
	require.NoError(t, q.SetMQL(json.RawMessage(`{"id":null}`)))
	require.NoError(t, q.SetMQL(nil))
	uri, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", uri)
}

func TestFilterString(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"nil", nil, ""},
		{"value", All(Value("type", "/location/citytown")), `(all type:"/location/citytown")`},
		{
			"nested",
			Any(Value("a", "1"), Not(Value("b", "2"))),
			`(any a:"1"(not b:"2"))`,
		},
		{
			"location",
			All(Within(1000, 40.4167, -3.70331)),
			`(all(within radius:1000m lon:-3.7033 lat:40.4167))`,
		},
		{"escaped", All(Value("name", "say \"hi\"\\\n")), `(all name:"say \"hi\"\\\n")`},
		{"control", All(Value("name", "a\x01b")), `(all name:"a\001b")`},
		{"unicode", All(Value("name", "Zürich")), `(all name:"Zürich")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterString(tt.filter))
		})
	}
}

func TestSearchQuery_URI(t *testing.T) {
	q := NewSearchQuery("prado")
	filter := All(Value("type", "/location/citytown"), Within(1000, 40.4, -3.7))
	q.SetFilter(filter)
	require.NoError(t, q.SetUpdatedMax(86400))
	require.NoError(t, q.SetLanguage("ES"))
	q.SetStemmed(true)
	q.SetStartIndex(10)
	q.SetMaxResults(5)

	uri, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com?query=prado"+
		"&filter="+gdata.EscapeURI(FilterString(filter), "")+
		"&as_of_time=1970-01-02T00:00:00Z&lang=es&stemmed=true&cursor=10&limit=5", uri)
	assert.Equal(t, `(all type:"/location/citytown"(within radius:1000m lon:-3.7000 lat:40.4000))`,
		queryParams(t, uri).Get("filter"))
}

func TestSearchQuery_Language(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		want   string
	}{
		{"unset", "", "en"},
		{"single", "de_DE.UTF-8", "de"},
		{"list", "fr_FR.UTF-8:de_DE:fr_CA:C", "fr,de"},
		{"posix only", "C:POSIX", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setLocale(t, tt.locale)
			q := NewSearchQuery("")

			uri, err := q.QueryURI("http://example.com")
			require.NoError(t, err)
			assert.Equal(t, "http://example.com?lang="+tt.want, uri)
		})
	}
}

func TestSearchQuery_LanguageFallsThroughVars(t *testing.T) {
	setLocale(t, "")
	t.Setenv("LANG", "pt_BR.UTF-8")

	assert.Equal(t, []string{"pt"}, UserLanguages())
}

func TestValidateLanguage(t *testing.T) {
	assert.NoError(t, ValidateLanguage("en"))
	assert.NoError(t, ValidateLanguage("FR"))
	assert.ErrorIs(t, ValidateLanguage("eng"), domain.ErrInvalidQuery)
	assert.ErrorIs(t, ValidateLanguage("e1"), domain.ErrInvalidQuery)

	q := NewSearchQuery("")
	assert.Error(t, q.SetLanguage("english"))
	assert.Empty(t, q.Language())
}

func TestTopicQuery_URI(t *testing.T) {
	q := NewTopicQuery("/m/0d6lp")
	require.NoError(t, q.SetLanguage("en"))
	q.SetFilters([]string{"/common/topic", "/people"})
	require.NoError(t, q.SetUpdatedMax(1000))
	q.SetMaxResults(10)

	uri, err := q.QueryURI(TopicURI)
	require.NoError(t, err)
	assert.Equal(t, TopicURI+"/m/0d6lp?lang=en&filter=%2Fcommon%2Ftopic&filter=%2Fpeople&dateline=1000&limit=10", uri)
}

func TestTopicQuery_FirstLocaleLanguage(t *testing.T) {
	setLocale(t, "fr_FR:de_DE")
	q := NewTopicQuery("/m/0d6lp")

	uri, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/m/0d6lp?lang=fr", uri)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(map[string]string{
		"q":             "prado",
		"language":      "es",
		"stemmed":       "true",
		"filters":       "type:/location/citytown, name:Madrid",
		"filter_type":   "any",
		"within_radius": "500",
		"within_lat":    "40.4",
		"within_lon":    "-3.7",
		"max_results":   "20",
		"topic_filters": "/common/topic",
	})
	require.NoError(t, err)

	assert.Equal(t, `(any type:"/location/citytown" name:"Madrid"(within radius:500m lon:-3.7000 lat:40.4000))`,
		FilterString(cfg.Filter()))

	sq, err := cfg.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, "es", sq.Language())
	assert.True(t, sq.Stemmed())
	assert.Equal(t, uint(20), sq.MaxResults())

	querier, err := cfg.QueryFor(SearchURI)
	require.NoError(t, err)
	assert.IsType(t, &SearchQuery{}, querier)

	querier, err = cfg.QueryFor(TopicURI + "/m/0d6lp")
	require.NoError(t, err)
	require.IsType(t, &TopicQuery{}, querier)
	assert.Equal(t, []string{"/common/topic"}, querier.(*TopicQuery).Filters())

	querier, err = cfg.QueryFor(MQLReadURI)
	require.NoError(t, err)
	assert.IsType(t, &Query{}, querier)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"bad language", map[string]string{"language": "english"}},
		{"unknown language", map[string]string{"language": "q1"}},
		{"bad filter", map[string]string{"filters": "nocolon"}},
		{"bad filter type", map[string]string{"filter_type": "some"}},
		{"bad latitude", map[string]string{"within_lat": "91"}},
		{"bad mql", map[string]string{"mql": "{"}},
		{"unknown key", map[string]string{"cursor": "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.params)
			assert.ErrorIs(t, err, domain.ErrInvalidQuery)
		})
	}
}

func TestParseQuery_MQL(t *testing.T) {
	q, err := ParseQuery(map[string]string{"mql": `{"id": "/en/madrid", "name": null}`})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"/en/madrid","name":null}`, string(q.MQL()))

	_, err = ParseQuery(map[string]string{"mql": `["array"]`})
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestRead(t *testing.T) {
	svc, rec := googletest.NewService(t, google.ServiceFreebase,
		googletest.Reply(http.StatusOK, "application/json",
			`{"result": {"name": "Madrid", "type": "/location/citytown"}, "cursor": false}`))

	q := NewQuery("madrid")
	r, err := Read(context.Background(), svc, q)
	require.NoError(t, err)

	req := rec.Last()
	require.NotNil(t, req)
	assert.Equal(t, "/freebase/v1/mqlread", req.URL.Path)
	assert.Equal(t, "madrid", req.URL.Query().Get("query"))

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, r.Decode(&out))
	assert.Equal(t, "Madrid", out.Name)

	_, ok := r.ExtraJSON("cursor")
	assert.True(t, ok)
}

func TestResult_DecodeMissing(t *testing.T) {
	r, err := gdata.NewFromJSON([]byte(`{"status": "200 OK"}`), NewResult)
	require.NoError(t, err)
	assert.Nil(t, r.Result())
	assert.True(t, gdata.IsParseError(r.Decode(&struct{}{})))
}

const searchReply = `{
	"status": "200 OK",
	"result": [
		{
			"mid": "/m/0d6lp",
			"id": "/en/madrid",
			"name": "Madrid",
			"notable": {"name": "City/Town/Village", "id": "/location/citytown"},
			"lang": "en",
			"score": 812.3
		},
		{"mid": "/m/056_y", "name": "Madrid Metro", "score": 40}
	],
	"cursor": 20,
	"hits": 1024
}`

func TestSearch(t *testing.T) {
	svc, rec := googletest.NewService(t, google.ServiceFreebase,
		googletest.Reply(http.StatusOK, "application/json", searchReply))

	q := NewSearchQuery("madrid")
	require.NoError(t, q.SetLanguage("en"))
	r, err := Search(context.Background(), svc, q)
	require.NoError(t, err)

	req := rec.Last()
	require.NotNil(t, req)
	assert.Equal(t, "/freebase/v1/search", req.URL.Path)
	assert.Equal(t, "en", req.URL.Query().Get("lang"))

	assert.Equal(t, int64(1024), r.TotalHits())
	assert.Equal(t, int64(20), r.NextCursor())
	require.Len(t, r.Items(), 2)

	first := r.Items()[0]
	assert.Equal(t, "/m/0d6lp", first.MID)
	assert.Equal(t, "/en/madrid", first.ID)
	assert.Equal(t, "Madrid", first.Name)
	assert.Equal(t, "en", first.Lang)
	assert.InDelta(t, 812.3, first.Score, 1e-9)
	assert.Equal(t, "/location/citytown", first.NotableID)
	assert.Equal(t, "City/Town/Village", first.NotableName)

	second := r.Items()[1]
	assert.Empty(t, second.ID)
	assert.Empty(t, second.NotableID)

	out := gdata.GetJSON(r)
	assert.Contains(t, out, `"hits":1024`)
	assert.Contains(t, out, `"notable":{"id":"/location/citytown","name":"City/Town/Village"}`)
	assert.Contains(t, out, `"status":"200 OK"`)
}

func TestSearchResult_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"result not array", `{"result": {}}`},
		{"missing mid", `{"result": [{"name": "Madrid"}]}`},
		{"missing name", `{"result": [{"mid": "/m/0d6lp"}]}`},
		{"incomplete notable", `{"result": [{"mid": "/m/0d6lp", "name": "Madrid", "notable": {"id": "/x"}}]}`},
		{"hits not int", `{"hits": "many"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gdata.NewFromJSON([]byte(tt.json), NewSearchResult)
			assert.True(t, gdata.IsParseError(err), "got %v", err)
		})
	}
}

const topicReply = `{
	"id": "/m/0d6lp",
	"property": {
		"/type/object/name": {
			"valuetype": "string",
			"values": [{
				"text": "Madrid", "lang": "en", "value": "Madrid",
				"creator": "/user/mwcl_wikipedia_en", "timestamp": "2007-10-23T09:07:43.0024Z"
			}],
			"count": 1.0
		},
		"/location/location/geolocation": {
			"valuetype": "compound",
			"values": [{
				"text": "40.4 - -3.7", "lang": "en", "id": "/m/05kn5jn",
				"property": {
					"/location/geocode/latitude": {
						"valuetype": "float",
						"values": [{"text": "40.4", "lang": "", "value": 40.4}],
						"count": 1.0
					}
				}
			}],
			"count": 1.0
		},
		"/common/topic/image": {
			"valuetype": "object",
			"values": [{"text": "Madrid skyline", "lang": "en", "id": "/m/02bc3zj"}],
			"count": 1.0
		},
		"/location/dated_location/date_founded": {
			"valuetype": "datetime",
			"values": [
				{"text": "0865", "lang": "en", "value": "0865-01-01"},
				{"text": "bad", "lang": "en", "value": "not a date"}
			],
			"count": 2.0
		},
		"!/people/person/place_of_birth": {
			"valuetype": "object",
			"values": [{"text": "Someone", "lang": "en", "id": "/m/x"}],
			"count": 58.0
		},
		"/type/object/key": {
			"valuetype": "key",
			"values": [{"text": "madrid", "lang": "", "value": "madrid"}],
			"count": 1.0
		},
		"/common/topic/empty": {"valuetype": "string", "values": [], "count": 0.0},
		"notaproperty": {}
	}
}`

func TestGetTopic(t *testing.T) {
	setLocale(t, "")
	svc, rec := googletest.NewService(t, google.ServiceFreebase,
		googletest.Reply(http.StatusOK, "application/json", topicReply))

	r, err := GetTopic(context.Background(), svc, NewTopicQuery("/m/0d6lp"))
	require.NoError(t, err)

	req := rec.Last()
	require.NotNil(t, req)
	assert.Equal(t, "/freebase/v1/topic/m/0d6lp", req.URL.Path)
	assert.Equal(t, "en", req.URL.Query().Get("lang"))

	topic := r.Object()
	require.NotNil(t, topic)
	assert.Equal(t, "/m/0d6lp", topic.ID)
	assert.Equal(t, "/m/0d6lp", r.ID())
	assert.Equal(t, []string{
		"/common/topic/image",
		"/location/dated_location/date_founded",
		"/location/location/geolocation",
		"/people/person/place_of_birth",
		"/type/object/name",
	}, topic.Properties())

	name := topic.Values("/type/object/name")
	require.Len(t, name, 1)
	assert.Equal(t, ValueString, name[0].Type)
	assert.Equal(t, "Madrid", name[0].Value)
	assert.Equal(t, "/user/mwcl_wikipedia_en", name[0].Creator)
	assert.Equal(t, int64(1193130463), name[0].Timestamp)

	geo := topic.Values("/location/location/geolocation")
	require.Len(t, geo, 1)
	inner := geo[0].Object()
	require.NotNil(t, inner)
	assert.Equal(t, "/m/05kn5jn", inner.ID)
	lat := inner.Values("/location/geocode/latitude")
	require.Len(t, lat, 1)
	assert.Equal(t, 40.4, lat[0].Value)
	assert.Equal(t, gdata.Unset, lat[0].Timestamp)

	founded := topic.Values("/location/dated_location/date_founded")
	require.Len(t, founded, 1)
	assert.Equal(t, int64(-34870348800), founded[0].Value)
	assert.Equal(t, int64(2), topic.ValueCount("/location/dated_location/date_founded"))

	births := topic.Values("/people/person/place_of_birth")
	require.Len(t, births, 1)
	assert.Equal(t, int64(58), topic.ValueCount("/people/person/place_of_birth"))

	image := topic.Values("/common/topic/image")
	require.Len(t, image, 1)
	assert.Equal(t, ImageURIPrefix+"/m/02bc3zj?maxwidth=200&maxheight=100", image[0].ImageURI(200, 100))
	assert.Equal(t, ImageURIPrefix+"/m/02bc3zj", image[0].ImageURI(0, 0))
	assert.Empty(t, name[0].ImageURI(200, 100))
}

func TestTopicResult_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"property not object", `{"property": []}`},
		{"unknown valuetype", `{"property": {"/a": {"valuetype": "blob", "values": [], "count": 1}}}`},
		{"missing text", `{"property": {"/a": {"valuetype": "string", "values": [{"lang": "en", "value": "x"}], "count": 1}}}`},
		{"empty id", `{"id": ""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gdata.NewFromJSON([]byte(tt.json), NewTopicResult)
			assert.True(t, gdata.IsParseError(err), "got %v", err)
		})
	}
}

func TestRead_NotModified(t *testing.T) {
	svc, rec := googletest.NewService(t, google.ServiceFreebase,
		func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("If-None-Match") == `"abc"` {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"etag": "\"abc\"", "result": []}`))
		})

	q := NewQuery("madrid")
	_, err := Read(context.Background(), svc, q)
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, q.ETag())

	_, err = Read(context.Background(), svc, q)
	assert.ErrorIs(t, err, google.ErrNotModified)
	assert.Len(t, rec.Requests(), 2)
}
