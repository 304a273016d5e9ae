package driven

import (
	"context"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
)

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle token refresh transparently.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it will be refreshed automatically.
	// Returns empty string for anonymous and API key access.
	GetToken(ctx context.Context) (string, error)

	// AuthorizationID identifies the credentials in use, for logs.
	// Returns empty string for anonymous access.
	AuthorizationID() string

	// AuthMethod returns the authentication method (none, apikey, token, oauth).
	AuthMethod() domain.AuthMethod

	// IsAuthenticated returns true if valid authentication is available.
	// Always true for anonymous access (NullTokenProvider).
	IsAuthenticated() bool
}
