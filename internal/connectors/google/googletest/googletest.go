// Package googletest runs google.Service against a local httptest server.
// Requests for any absolute URI are redirected to the server with their path
// and query intact, so service packages can test with their real feed URIs.
package googletest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
)

// Recorder keeps the requests the server received, in order.
type Recorder struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (r *Recorder) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

// Requests returns a copy of the recorded requests.
func (r *Recorder) Requests() []*http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*http.Request(nil), r.requests...)
}

// Last returns the most recent request, or nil.
func (r *Recorder) Last() *http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return nil
	}
	return r.requests[len(r.requests)-1]
}

// redirect sends every request to target, keeping the original host in
// X-Original-Host.
type redirect struct {
	target *url.URL
	next   http.RoundTripper
}

func (t *redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Header.Set("X-Original-Host", req.URL.Host)
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = t.target.Host
	return t.next.RoundTrip(out)
}

// NewService starts a server running handler and returns a service whose
// requests all reach it. Rate limiting is effectively off and metrics go to
// a private registry.
func NewService(t *testing.T, service google.ServiceType, handler http.HandlerFunc) (*google.Service, *Recorder) {
	t.Helper()

	rec := &Recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.Clone(r.Context()))
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	client := srv.Client()
	client.Transport = &redirect{target: target, next: client.Transport}

	cfg := google.DefaultConfig()
	cfg.Service = service
	cfg.UserAgent = "gdata-test"

	svc, err := google.NewService(cfg,
		google.WithHTTPClient(client),
		google.WithRateLimiter(google.NewRateLimiterWithConfig(google.RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 1000})),
		google.WithMetrics(google.NewMetrics(prometheus.NewRegistry())),
	)
	require.NoError(t, err)
	return svc, rec
}

// Reply returns a handler that answers every request with status, the
// content type and body.
func Reply(status int, contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
