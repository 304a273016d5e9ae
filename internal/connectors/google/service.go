package google

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/core/ports/driven"
	"github.com/custodia-labs/gdata-go/internal/gdata"
	"github.com/custodia-labs/gdata-go/internal/logger"
)

// GDataVersion is the protocol version requested from XML endpoints.
const GDataVersion = "3"

// Entity is an entry that can be inserted, updated and deleted.
type Entity interface {
	gdata.Resource
	IsInserted() bool
	ETag() string
	LookupLink(rel string) *gdata.Link
}

// Service issues GData requests over an HTTP client.
type Service struct {
	cfg         Config
	client      driven.HTTPClient
	tokenSource oauth2.TokenSource
	authorised  bool
	limiter     *RateLimiter
	metrics     *Metrics
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithHTTPClient sets the client used for requests. When combined with
// WithTokenSource the Authorization header is set on each request.
func WithHTTPClient(c driven.HTTPClient) Option {
	return func(s *Service) { s.client = c }
}

// WithTokenSource authorises requests with tokens from ts.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(s *Service) { s.tokenSource = ts }
}

// WithMetrics records request metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithRateLimiter replaces the limiter derived from the configuration.
func WithRateLimiter(r *RateLimiter) Option {
	return func(s *Service) { s.limiter = r }
}

// NewService creates a Service. A static cfg.Token is used as the token
// source unless WithTokenSource supplies one.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if s.tokenSource == nil && cfg.Token != "" {
		s.tokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
	}
	if s.client == nil {
		client := &http.Client{Timeout: cfg.Timeout}
		if s.tokenSource != nil {
			client = oauth2.NewClient(context.Background(), oauth2.ReuseTokenSource(nil, s.tokenSource))
			client.Timeout = cfg.Timeout
			s.authorised = true
		}
		s.client = client
	}
	if s.limiter == nil {
		s.limiter = NewRateLimiterWithConfig(cfg.rateLimit())
		s.limiter.service = cfg.Service
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	return s, nil
}

// Config returns the service configuration.
func (s *Service) Config() Config { return s.cfg }

// serviceLabel names the service in logs and metrics.
func (s *Service) serviceLabel() string {
	if s.cfg.Service == "" {
		return "generic"
	}
	return string(s.cfg.Service)
}

// resolve prefixes relative URIs with the base URL and appends the API key.
func (s *Service) resolve(uri string) string {
	if s.cfg.BaseURL != "" && !strings.Contains(uri, "://") {
		uri = strings.TrimSuffix(s.cfg.BaseURL, "/") + "/" + strings.TrimPrefix(uri, "/")
	}
	if s.cfg.APIKey == "" {
		return uri
	}
	w := gdata.NewURIWriter(uri)
	w.Param("key", s.cfg.APIKey)
	return w.String()
}

// response is a fully read HTTP response.
type response struct {
	status int
	header http.Header
	body   []byte
}

func (r *response) isJSON() bool {
	mt, _, err := mime.ParseMediaType(r.header.Get("Content-Type"))
	return err == nil && mt == gdata.ContentTypeJSON
}

// request describes one call to send.
type request struct {
	op          Operation
	method      string
	uri         string
	body        []byte
	contentType string
	header      http.Header
	expect      []int
}

// send performs req after waiting on the rate limiter. Statuses outside
// req.expect are returned as *APIError.
func (s *Service) send(ctx context.Context, req request) (*response, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body io.Reader = http.NoBody
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.uri, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w: %w", domain.ErrInvalidQuery, err)
	}

	requestID := uuid.NewString()
	for k, v := range req.header {
		httpReq.Header[k] = v
	}
	httpReq.Header.Set("User-Agent", s.cfg.UserAgent)
	httpReq.Header.Set("X-Request-Id", requestID)
	if req.contentType != gdata.ContentTypeJSON {
		httpReq.Header.Set("GData-Version", GDataVersion)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType+"; charset=UTF-8")
	}
	if s.tokenSource != nil && !s.authorised {
		tok, err := s.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("get token: %w: %w", domain.ErrTokenUnavailable, err)
		}
		tok.SetAuthHeader(httpReq)
	}

	log := logger.Component("google")
	start := s.now()
	resp, err := s.client.Do(httpReq)
	duration := s.now().Sub(start)
	if err != nil {
		s.metrics.RecordRequest(s.serviceLabel(), req.method, 0, duration)
		log.Debug().Str("request_id", requestID).Str("method", req.method).Str("uri", req.uri).
			Err(err).Dur("duration", duration).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", req.method, req.uri, err)
	}
	defer resp.Body.Close()

	s.metrics.RecordRequest(s.serviceLabel(), req.method, resp.StatusCode, duration)
	log.Debug().Str("request_id", requestID).Str("method", req.method).Str("uri", req.uri).
		Int("status", resp.StatusCode).Dur("duration", duration).Msg("request")

	if !slices.Contains(req.expect, resp.StatusCode) {
		if resp.StatusCode == http.StatusTooManyRequests {
			s.limiter.RecordRateLimitError(RetryAfter(resp.Header, s.now()))
		}
		return nil, newAPIError(req.op, req.uri, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

// parseInto decodes a response body into p using the response's content type.
func parseInto(resp *response, p gdata.Resource) error {
	if resp.isJSON() {
		return gdata.ParseJSON(resp.body, p)
	}
	return gdata.ParseXML(resp.body, p)
}

// QueryFeed fetches a feed page for q (nil for none) from feedURI and advances
// q's pagination state from the result. A 304 response returns a nil feed
// and no error; a finished query returns an empty feed without a request.
func QueryFeed[E gdata.Resource](
	ctx context.Context,
	s *Service,
	q gdata.Querier,
	feedURI string,
	newEntry func() E,
	progress func(E),
) (*gdata.Feed[E], error) {
	uri := s.resolve(feedURI)
	header := http.Header{}

	var base *gdata.Query
	if q != nil {
		base = q.Base()
		if base.IsFinished() {
			return gdata.NewFeed(newEntry, progress), nil
		}
		built, err := q.QueryURI(feedURI)
		if err != nil {
			return nil, err
		}
		uri = s.resolve(built)
		if etag := base.ETag(); etag != "" {
			header.Set("If-None-Match", etag)
		}
	}

	resp, err := s.send(ctx, request{
		op:     OpQuery,
		method: http.MethodGet,
		uri:    uri,
		header: header,
		expect: []int{http.StatusOK, http.StatusNotModified},
	})
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotModified {
		s.metrics.RecordNotModified(s.serviceLabel())
		return nil, nil
	}

	feed := gdata.NewFeed(newEntry, progress)
	if err := parseInto(resp, feed); err != nil {
		return nil, err
	}
	s.metrics.RecordEntries(s.serviceLabel(), len(feed.Entries()))

	if base != nil {
		updatePagination(base, feed, resp.header)
	}
	return feed, nil
}

// updatePagination stores the feed's ETag and continuation state in q.
func updatePagination[E gdata.Resource](q *gdata.Query, feed *gdata.Feed[E], header http.Header) {
	q.SetETag(feed.ETag())
	q.ClearPagination()

	switch q.PaginationType() {
	case gdata.PaginationURIs:
		next, previous := linkHeaderURIs(header.Get("Link"))
		if l := feed.NextLink(); l != nil {
			next = l.URI
		}
		if l := feed.PreviousLink(); l != nil {
			previous = l.URI
		}
		q.SetNextURI(next)
		q.SetPreviousURI(previous)
	case gdata.PaginationTokens:
		q.SetNextPageToken(feed.NextPageToken())
	}
}

// QueryEntry fetches a single entry into entry. With a non-empty etag the
// request is conditional and ErrNotModified reports an unchanged entry.
func QueryEntry(ctx context.Context, s *Service, entryURI, etag string, entry gdata.Resource) error {
	header := http.Header{}
	if etag != "" {
		header.Set("If-None-Match", etag)
	}

	resp, err := s.send(ctx, request{
		op:     OpQuery,
		method: http.MethodGet,
		uri:    s.resolve(entryURI),
		header: header,
		expect: []int{http.StatusOK, http.StatusNotModified},
	})
	if err != nil {
		return err
	}
	if resp.status == http.StatusNotModified {
		s.metrics.RecordNotModified(s.serviceLabel())
		return ErrNotModified
	}
	return parseInto(resp, entry)
}

// encode serialises entry in its own wire format.
func encode(entry gdata.Resource) ([]byte, string) {
	if entry.ContentType() == gdata.ContentTypeJSON {
		return []byte(gdata.GetJSON(entry)), gdata.ContentTypeJSON
	}
	return []byte(gdata.GetXML(entry)), gdata.ContentTypeAtom
}

// InsertEntry posts a new entry to uri and returns the server's copy.
func InsertEntry[E Entity](ctx context.Context, s *Service, uri string, entry E, newEntry func() E) (E, error) {
	var zero E
	if entry.IsInserted() {
		return zero, fmt.Errorf("entry has already been inserted: %w", domain.ErrInvalidInput)
	}

	body, contentType := encode(entry)
	resp, err := s.send(ctx, request{
		op:          OpInsert,
		method:      http.MethodPost,
		uri:         s.resolve(uri),
		body:        body,
		contentType: contentType,
		expect:      []int{http.StatusCreated, http.StatusOK},
	})
	if err != nil {
		return zero, err
	}

	inserted := newEntry()
	if err := parseInto(resp, inserted); err != nil {
		return zero, err
	}
	return inserted, nil
}

// editURI returns the URI entry is modified through.
func editURI(entry Entity) (string, error) {
	if l := entry.LookupLink(gdata.RelEdit); l != nil {
		return l.URI, nil
	}
	if entry.ContentType() == gdata.ContentTypeJSON {
		if l := entry.LookupLink(gdata.RelSelf); l != nil {
			return l.URI, nil
		}
	}
	return "", fmt.Errorf("entry has no edit link: %w", domain.ErrInvalidInput)
}

func ifMatch(entry Entity) http.Header {
	header := http.Header{}
	if etag := entry.ETag(); etag != "" {
		header.Set("If-Match", etag)
	}
	return header
}

// UpdateEntry replaces entry on the server and returns the server's copy.
func UpdateEntry[E Entity](ctx context.Context, s *Service, entry E, newEntry func() E) (E, error) {
	var zero E
	uri, err := editURI(entry)
	if err != nil {
		return zero, err
	}

	body, contentType := encode(entry)
	resp, err := s.send(ctx, request{
		op:          OpUpdate,
		method:      http.MethodPut,
		uri:         s.resolve(uri),
		body:        body,
		contentType: contentType,
		header:      ifMatch(entry),
		expect:      []int{http.StatusOK},
	})
	if err != nil {
		return zero, err
	}

	updated := newEntry()
	if err := parseInto(resp, updated); err != nil {
		return zero, err
	}
	return updated, nil
}

// DeleteEntry removes entry from the server.
func DeleteEntry(ctx context.Context, s *Service, entry Entity) error {
	uri, err := editURI(entry)
	if err != nil {
		return err
	}

	_, err = s.send(ctx, request{
		op:     OpDelete,
		method: http.MethodDelete,
		uri:    s.resolve(uri),
		header: ifMatch(entry),
		expect: []int{http.StatusOK, http.StatusNoContent},
	})
	return err
}
