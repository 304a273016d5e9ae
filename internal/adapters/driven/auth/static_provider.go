package auth

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider provides a fixed bearer token.
// The token is never refreshed; when it expires the server answers 401.
type StaticTokenProvider struct {
	id    string
	token string
}

// NewStaticTokenProvider creates a token provider for a pre-issued access token.
// id names the credentials in logs and may be empty.
func NewStaticTokenProvider(id, token string) *StaticTokenProvider {
	return &StaticTokenProvider{id: id, token: token}
}

// GetToken returns the static token.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("static token %q: %w", p.id, domain.ErrTokenUnavailable)
	}
	return p.token, nil
}

// AuthorizationID returns the credentials name.
func (p *StaticTokenProvider) AuthorizationID() string {
	return p.id
}

// AuthMethod returns AuthMethodToken.
func (p *StaticTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodToken
}

// IsAuthenticated returns true if a token is configured.
func (p *StaticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}
