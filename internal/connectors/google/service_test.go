package google

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

const testFeedXML = `<?xml version='1.0' encoding='UTF-8'?>
<feed xmlns='http://www.w3.org/2005/Atom' xmlns:gd='http://schemas.google.com/g/2005' gd:etag='W/"feed-1"'>
	<id>http://example.com/feed</id>
	<updated>2009-01-01T00:00:00Z</updated>
	<title>Test feed</title>
	<entry><id>1</id><title>First</title></entry>
	<entry><id>2</id><title>Second</title></entry>
</feed>`

const testEntryXML = `<?xml version='1.0' encoding='UTF-8'?>
<entry xmlns='http://www.w3.org/2005/Atom' xmlns:gd='http://schemas.google.com/g/2005' gd:etag='"e2"'>
	<id>http://example.com/entries/1</id>
	<title>Stored</title>
	<link rel='edit' href='http://example.com/entries/1'/>
</entry>`

func newEntry() *gdata.Entry { return gdata.NewEntry("") }

// newTestService returns a service talking to handler, with its metrics.
func newTestService(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Service, *Metrics, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	metrics := NewMetrics(prometheus.NewRegistry())
	cfg := DefaultConfig()
	cfg.UserAgent = "gdata-test"

	all := append([]Option{
		WithHTTPClient(srv.Client()),
		WithRateLimiter(NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 1000})),
		WithMetrics(metrics),
	}, opts...)
	svc, err := NewService(cfg, all...)
	require.NoError(t, err)
	return svc, metrics, srv
}

func TestNewService_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UserAgent = ""

	_, err := NewService(cfg)
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestQueryFeed_XML(t *testing.T) {
	var gotURI string
	var gotHeader http.Header
	svc, metrics, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/atom+xml; charset=UTF-8")
		_, _ = io.WriteString(w, testFeedXML)
	})

	q := gdata.NewQueryWithLimits("party", 1, 10)
	var seen int
	feed, err := QueryFeed(context.Background(), svc, q, srv.URL+"/feeds", newEntry, func(*gdata.Entry) { seen++ })
	require.NoError(t, err)
	require.NotNil(t, feed)

	assert.Equal(t, "/feeds?q=party&start-index=1&max-results=10", gotURI)
	assert.Equal(t, "gdata-test", gotHeader.Get("User-Agent"))
	assert.Equal(t, "3", gotHeader.Get("GData-Version"))
	assert.NotEmpty(t, gotHeader.Get("X-Request-Id"))
	assert.Empty(t, gotHeader.Get("If-None-Match"))

	assert.Len(t, feed.Entries(), 2)
	assert.Equal(t, 2, seen)
	assert.Equal(t, `W/"feed-1"`, q.ETag())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("generic", "GET", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.EntriesTotal.WithLabelValues("generic")))
}

func TestQueryFeed_NotModified(t *testing.T) {
	var gotETag string
	svc, metrics, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotETag = r.Header.Get("If-None-Match")
		w.WriteHeader(http.StatusNotModified)
	})

	q := gdata.NewQuery("")
	q.SetETag(`W/"feed-1"`)

	feed, err := QueryFeed(context.Background(), svc, q, srv.URL, newEntry, nil)
	require.NoError(t, err)
	assert.Nil(t, feed)
	assert.Equal(t, `W/"feed-1"`, gotETag)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.NotModifiedTotal.WithLabelValues("generic")))
}

func TestQueryFeed_TokenPagination(t *testing.T) {
	var calls atomic.Int32
	var uris []string
	svc, _, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		uris = append(uris, r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		if r.URL.Query().Get("pageToken") == "" {
			_, _ = io.WriteString(w, `{"etag":"\"p1\"","nextPageToken":"T2","items":[{"id":"a","updated":"2009-01-01T00:00:00Z"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"etag":"\"p2\"","items":[{"id":"b","updated":"2009-01-01T00:00:00Z"}]}`)
	})

	q := gdata.NewQuery("")
	q.SetPaginationType(gdata.PaginationTokens)
	ctx := context.Background()

	feed, err := QueryFeed(ctx, svc, q, srv.URL+"/tasks", newEntry, nil)
	require.NoError(t, err)
	require.Len(t, feed.Entries(), 1)
	assert.Equal(t, "T2", q.NextPageToken())
	assert.Equal(t, `"p1"`, q.ETag())
	assert.False(t, q.IsFinished())

	q.NextPage()
	feed, err = QueryFeed(ctx, svc, q, srv.URL+"/tasks", newEntry, nil)
	require.NoError(t, err)
	assert.Equal(t, "b", feed.Entries()[0].ID())
	assert.Empty(t, q.NextPageToken())

	q.NextPage()
	assert.True(t, q.IsFinished())
	feed, err = QueryFeed(ctx, svc, q, srv.URL+"/tasks", newEntry, nil)
	require.NoError(t, err)
	assert.Empty(t, feed.Entries())

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []string{"/tasks", "/tasks?pageToken=T2"}, uris)
}

func TestQueryFeed_URIPagination(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		body     string
		wantNext string
		wantPrev string
	}{
		{
			name:     "feed links",
			body:     strings.Replace(testFeedXML, "<title>Test feed</title>", "<link rel='next' href='http://example.com/p3'/><link rel='previous' href='http://example.com/p1'/>", 1),
			wantNext: "http://example.com/p3",
			wantPrev: "http://example.com/p1",
		},
		{
			name:     "link header fallback",
			link:     `<http://example.com/h3>; rel="next", <http://example.com/h1>; rel="prev"`,
			body:     testFeedXML,
			wantNext: "http://example.com/h3",
			wantPrev: "http://example.com/h1",
		},
		{
			name: "no continuation",
			body: testFeedXML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, srv := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
				if tt.link != "" {
					w.Header().Set("Link", tt.link)
				}
				_, _ = io.WriteString(w, tt.body)
			})

			q := gdata.NewQuery("")
			q.SetPaginationType(gdata.PaginationURIs)

			_, err := QueryFeed(context.Background(), svc, q, srv.URL, newEntry, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNext, q.NextURI())
			assert.Equal(t, tt.wantPrev, q.PreviousURI())
		})
	}
}

func TestQueryFeed_StatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		code        int
		body        string
		wantKind    error
		wantMessage string
	}{
		{"bad request", "", 400, "Bad parameter", domain.ErrBadRequest,
			"Invalid request URI or header, or unsupported nonstandard parameter: Bad parameter"},
		{"unauthorised", "", 401, "Token invalid", domain.ErrAuthRequired, "Authentication required: Token invalid"},
		{"forbidden", "", 403, "Nope", domain.ErrAuthRequired, "Authentication required: Nope"},
		{"not found", "", 404, "Gone away", domain.ErrNotFound, "The requested resource was not found: Gone away"},
		{"conflict", "", 409, "Changed", domain.ErrConflict, "The entry has been modified since it was downloaded: Changed"},
		{"precondition", "", 412, "Changed", domain.ErrConflict, "The entry has been modified since it was downloaded: Changed"},
		{"server error", "", 500, "Boom", domain.ErrProtocol, "Error code 500 when querying: Boom"},
		{"json error", "application/json", 404, `{"error":{"code":404,"message":"Calendar not found"}}`,
			domain.ErrNotFound, "The requested resource was not found: Calendar not found"},
		{"empty body", "", 503, "", domain.ErrProtocol, "Error code 503 when querying: Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, srv := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
				if tt.status != "" {
					w.Header().Set("Content-Type", tt.status)
				}
				w.WriteHeader(tt.code)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := QueryFeed(context.Background(), svc, gdata.NewQuery(""), srv.URL, newEntry, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrProtocol)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.EqualError(t, err, tt.wantMessage)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.code, apiErr.StatusCode)
			assert.Equal(t, OpQuery, apiErr.Operation)
		})
	}
}

func TestQueryFeed_RateLimited(t *testing.T) {
	svc, _, srv := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := QueryFeed(context.Background(), svc, nil, srv.URL, newEntry, nil)
	require.ErrorIs(t, err, domain.ErrRateLimited)
	assert.True(t, IsRateLimited(err))
	assert.True(t, svc.limiter.BackoffUntil().After(time.Now().Add(100*time.Second)))
}

func TestQueryFeed_ParseError(t *testing.T) {
	svc, _, srv := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<feed xmlns='http://www.w3.org/2005/Atom'><title>no id</title></feed>")
	})

	_, err := QueryFeed(context.Background(), svc, nil, srv.URL, newEntry, nil)
	require.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestQueryFeed_MissingBaseURI(t *testing.T) {
	svc, _, _ := newTestService(t, func(http.ResponseWriter, *http.Request) {})

	_, err := QueryFeed(context.Background(), svc, gdata.NewQuery(""), "", newEntry, nil)
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestService_ResolveURI(t *testing.T) {
	var gotURI string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		_, _ = io.WriteString(w, testFeedXML)
	}
	srv := httptest.NewServer(http.HandlerFunc(handler))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/api/"
	cfg.APIKey = "k&1"
	svc, err := NewService(cfg, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = QueryFeed(context.Background(), svc, gdata.NewQueryWithLimits("", 0, 5), "/feeds/default", newEntry, nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/feeds/default?max-results=5&key=k%261", gotURI)
}

func TestService_TokenSourceWithCustomClient(t *testing.T) {
	var auth string
	svc, _, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, testFeedXML)
	}, WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "abc"})))

	_, err := QueryFeed(context.Background(), svc, nil, srv.URL, newEntry, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", auth)
}

func TestService_StaticTokenDefaultClient(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, testFeedXML)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Token = "static"
	svc, err := NewService(cfg)
	require.NoError(t, err)

	_, err = QueryFeed(context.Background(), svc, nil, srv.URL, newEntry, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer static", auth)
}

func TestQueryEntry(t *testing.T) {
	svc, _, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"e2"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		_, _ = io.WriteString(w, testEntryXML)
	})
	ctx := context.Background()

	entry := newEntry()
	require.NoError(t, QueryEntry(ctx, svc, srv.URL+"/entries/1", "", entry))
	assert.Equal(t, "Stored", entry.Title())
	assert.Equal(t, `"e2"`, entry.ETag())

	err := QueryEntry(ctx, svc, srv.URL+"/entries/1", entry.ETag(), newEntry())
	assert.ErrorIs(t, err, ErrNotModified)
}

func TestInsertEntry(t *testing.T) {
	var gotBody, gotType, gotMethod string
	svc, _, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, testEntryXML)
	})

	entry := newEntry()
	entry.SetTitle("New")

	inserted, err := InsertEntry(context.Background(), svc, srv.URL+"/entries", entry, newEntry)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/atom+xml; charset=UTF-8", gotType)
	assert.Contains(t, gotBody, "<title type='text'>New</title>")
	assert.True(t, inserted.IsInserted())
	assert.Equal(t, "Stored", inserted.Title())
}

func TestInsertEntry_AlreadyInserted(t *testing.T) {
	var calls atomic.Int32
	svc, _, srv := newTestService(t, func(http.ResponseWriter, *http.Request) { calls.Add(1) })

	_, err := InsertEntry(context.Background(), svc, srv.URL, gdata.NewEntry("existing"), newEntry)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int32(0), calls.Load())
}

func TestUpdateEntry(t *testing.T) {
	var gotMethod, gotPath, gotIfMatch string
	svc, _, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotIfMatch = r.Header.Get("If-Match")
		_, _ = io.WriteString(w, testEntryXML)
	})

	entry := gdata.NewEntry("http://example.com/entries/1")
	entry.SetETag(`"e1"`)
	entry.AddLink(gdata.NewLink(srv.URL+"/entries/1", gdata.RelEdit))

	updated, err := UpdateEntry(context.Background(), svc, entry, newEntry)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/entries/1", gotPath)
	assert.Equal(t, `"e1"`, gotIfMatch)
	assert.Equal(t, `"e2"`, updated.ETag())
}

func TestUpdateEntry_NoEditLink(t *testing.T) {
	svc, _, _ := newTestService(t, func(http.ResponseWriter, *http.Request) {})

	_, err := UpdateEntry(context.Background(), svc, gdata.NewEntry("id"), newEntry)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteEntry(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		wantKind error
	}{
		{"no content", http.StatusNoContent, nil},
		{"ok", http.StatusOK, nil},
		{"modified", http.StatusPreconditionFailed, domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod string
			svc, _, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				w.WriteHeader(tt.code)
			})

			entry := gdata.NewEntry("id")
			entry.AddLink(gdata.NewLink(srv.URL+"/entries/1", gdata.RelEdit))

			err := DeleteEntry(context.Background(), svc, entry)
			assert.Equal(t, http.MethodDelete, gotMethod)
			if tt.wantKind == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantKind)
			assert.True(t, IsConflict(err))
			assert.Contains(t, err.Error(), "modified since it was downloaded")
		})
	}
}
