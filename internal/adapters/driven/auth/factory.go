package auth

import (
	"fmt"
	"time"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/core/ports/driven"
)

// Configuration keys read by the Factory.
const (
	KeyMethod       = "auth.method"
	KeyID           = "auth.id"
	KeyToken        = "auth.token"
	KeyClientID     = "auth.client_id"
	KeyClientSecret = "auth.client_secret"
	KeyTokenURL     = "auth.token_url"
	KeyScopes       = "auth.scopes"
	KeyAccessToken  = "auth.access_token"
	KeyRefreshToken = "auth.refresh_token"
	KeyExpiry       = "auth.expiry"
)

// Factory creates TokenProviders from stored configuration.
type Factory struct {
	store driven.ConfigStore
}

// NewFactory creates a token provider factory.
func NewFactory(store driven.ConfigStore) *Factory {
	return &Factory{store: store}
}

// CreateTokenProvider creates the TokenProvider named by auth.method.
// An unset method means anonymous access.
func (f *Factory) CreateTokenProvider() (driven.TokenProvider, error) {
	raw := f.store.GetString(KeyMethod)
	if raw == "" {
		return NewNullTokenProvider(), nil
	}

	method, ok := domain.ParseAuthMethod(raw)
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", KeyMethod, raw, domain.ErrInvalidInput)
	}

	id := f.store.GetString(KeyID)
	switch method {
	case domain.AuthMethodNone:
		return NewNullTokenProvider(), nil
	case domain.AuthMethodAPIKey:
		return NewAPIKeyTokenProvider(), nil
	case domain.AuthMethodToken:
		return NewStaticTokenProvider(id, f.store.GetString(KeyToken)), nil
	default:
		return f.createOAuthProvider(id)
	}
}

func (f *Factory) createOAuthProvider(id string) (driven.TokenProvider, error) {
	client := OAuthClient{
		ClientID:     f.store.GetString(KeyClientID),
		ClientSecret: f.store.GetString(KeyClientSecret),
		TokenURL:     f.store.GetString(KeyTokenURL),
		Scopes:       f.store.GetStringSlice(KeyScopes),
	}
	if client.ClientID == "" {
		return nil, fmt.Errorf("oauth credentials require %s: %w", KeyClientID, domain.ErrInvalidInput)
	}

	token := domain.OAuthToken{
		AccessToken:  f.store.GetString(KeyAccessToken),
		RefreshToken: f.store.GetString(KeyRefreshToken),
		TokenType:    "Bearer",
	}
	if s := f.store.GetString(KeyExpiry); s != "" {
		expiry, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", KeyExpiry, s, domain.ErrInvalidInput)
		}
		token.Expiry = expiry
	}

	return NewOAuthTokenProvider(id, client, token, f.saveToken), nil
}

// saveToken writes a refreshed token back to the store.
func (f *Factory) saveToken(token domain.OAuthToken) error {
	if err := f.store.Set(KeyAccessToken, token.AccessToken); err != nil {
		return err
	}
	if err := f.store.Set(KeyRefreshToken, token.RefreshToken); err != nil {
		return err
	}
	if token.Expiry.IsZero() {
		return nil
	}
	return f.store.Set(KeyExpiry, token.Expiry.UTC().Format(time.RFC3339))
}
