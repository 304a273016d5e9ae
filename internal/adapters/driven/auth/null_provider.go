package auth

import (
	"context"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/core/ports/driven"
)

// Ensure NullTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*NullTokenProvider)(nil)

// NullTokenProvider is for requests that carry no bearer token: anonymous
// access, and API key access where the key travels in the query string.
type NullTokenProvider struct {
	method domain.AuthMethod
}

// NewNullTokenProvider creates a token provider for anonymous access.
func NewNullTokenProvider() *NullTokenProvider {
	return &NullTokenProvider{method: domain.AuthMethodNone}
}

// NewAPIKeyTokenProvider creates a token provider for API key access.
// The key itself is appended to request URIs by the service.
func NewAPIKeyTokenProvider() *NullTokenProvider {
	return &NullTokenProvider{method: domain.AuthMethodAPIKey}
}

// GetToken returns an empty string since no bearer token is sent.
func (p *NullTokenProvider) GetToken(_ context.Context) (string, error) {
	return "", nil
}

// AuthorizationID returns an empty string since there's no authorization.
func (p *NullTokenProvider) AuthorizationID() string {
	return ""
}

// AuthMethod returns AuthMethodNone or AuthMethodAPIKey.
func (p *NullTokenProvider) AuthMethod() domain.AuthMethod {
	return p.method
}

// IsAuthenticated always returns true since no-auth is always "authenticated".
func (p *NullTokenProvider) IsAuthenticated() bool {
	return true
}
