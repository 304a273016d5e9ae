package google

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ServiceType identifies a Google API service for rate limiting purposes.
type ServiceType string

const (
	// ServiceCalendar is the Google Calendar API service.
	ServiceCalendar ServiceType = "calendar"
	// ServiceTasks is the Google Tasks API service.
	ServiceTasks ServiceType = "tasks"
	// ServiceYouTube is the YouTube Data API service.
	ServiceYouTube ServiceType = "youtube"
	// ServiceDocuments is the Google Drive (documents) API service.
	ServiceDocuments ServiceType = "documents"
	// ServiceFreebase is the Freebase API service.
	ServiceFreebase ServiceType = "freebase"
	// ServicePicasaWeb is the PicasaWeb albums API service.
	ServicePicasaWeb ServiceType = "picasaweb"
	// ServiceContacts is the Google Contacts API service.
	ServiceContacts ServiceType = "contacts"
)

// ParseServiceType returns the ServiceType named by s, or false if unknown.
func ParseServiceType(s string) (ServiceType, bool) {
	_, ok := DefaultRateLimits[ServiceType(s)]
	return ServiceType(s), ok
}

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each Google service.
// These are well below Google's actual limits to avoid hitting quotas.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceCalendar:  {RequestsPerSecond: 5.0, BurstSize: 10},
	ServiceTasks:     {RequestsPerSecond: 5.0, BurstSize: 10},
	ServiceYouTube:   {RequestsPerSecond: 2.0, BurstSize: 5}, // Quota units are expensive
	ServiceDocuments: {RequestsPerSecond: 8.0, BurstSize: 10},
	ServiceFreebase:  {RequestsPerSecond: 5.0, BurstSize: 10},
	ServicePicasaWeb: {RequestsPerSecond: 5.0, BurstSize: 10},
	ServiceContacts:  {RequestsPerSecond: 5.0, BurstSize: 10},
}

// RateLimiter provides rate limiting for Google API requests.
// It uses a token bucket algorithm with optional backoff for 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	service ServiceType
}

// NewRateLimiter creates a new rate limiter for the specified service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		// Default fallback
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		service: service,
	}
}

// Service returns the service the limiter was created for, or "" for a
// custom configuration.
func (r *RateLimiter) Service() ServiceType {
	return r.service
}

// BackoffUntil returns the end of the current 429 backoff, if any.
func (r *RateLimiter) BackoffUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	// First, check for backoff from previous rate limit errors
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	// Then wait for the token bucket
	return r.limiter.Wait(ctx)
}

// RecordRateLimitError records a rate limit error and sets a backoff period.
// Call this when receiving a 429 response from Google APIs.
func (r *RateLimiter) RecordRateLimitError(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfterSeconds <= 0 {
		// Default backoff: 60 seconds
		retryAfterSeconds = 60
	}

	r.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}

// RetryAfter parses a Retry-After header given either as delay seconds or as
// an HTTP date. It returns 0 when the header is absent or invalid.
func RetryAfter(h http.Header, now time.Time) int {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return secs
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return int((d + time.Second - 1) / time.Second)
		}
	}
	return 0
}

// Allow checks if a request can be made immediately without blocking.
// Returns true if the request is allowed, false if it would exceed the rate limit.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}

	return r.limiter.Allow()
}
