package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/core/ports/driven"
)

// Google's OAuth 2.0 endpoints.
const (
	GoogleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	GoogleTokenURL = "https://oauth2.googleapis.com/token"
)

// Ensure OAuthTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*OAuthTokenProvider)(nil)

// TokenSaver persists a refreshed token.
type TokenSaver func(token domain.OAuthToken) error

// OAuthTokenProvider provides OAuth access tokens with automatic refresh.
type OAuthTokenProvider struct {
	id     string
	config *oauth2.Config
	save   TokenSaver

	mu            sync.RWMutex
	current       domain.OAuthToken
	cachedToken   string
	cacheExpiry   time.Time
	refreshBuffer time.Duration
}

// OAuthClient identifies the OAuth client used for refreshes.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
	// TokenURL defaults to GoogleTokenURL.
	TokenURL string
	Scopes   []string
}

// NewOAuthTokenProvider creates a token provider for stored OAuth credentials.
// save may be nil; otherwise it is called after every successful refresh.
func NewOAuthTokenProvider(id string, client OAuthClient, token domain.OAuthToken, save TokenSaver) *OAuthTokenProvider {
	tokenURL := client.TokenURL
	if tokenURL == "" {
		tokenURL = GoogleTokenURL
	}
	return &OAuthTokenProvider{
		id: id,
		config: &oauth2.Config{
			ClientID:     client.ClientID,
			ClientSecret: client.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  GoogleAuthURL,
				TokenURL: tokenURL,
			},
			Scopes: client.Scopes,
		},
		save:          save,
		current:       token,
		refreshBuffer: 5 * time.Minute,
	}
}

// GetToken returns a valid access token, refreshing if necessary.
func (p *OAuthTokenProvider) GetToken(ctx context.Context) (string, error) {
	// Fast path: check cache with read lock
	p.mu.RLock()
	if p.cachedToken != "" && time.Now().Before(p.cacheExpiry) {
		token := p.cachedToken
		p.mu.RUnlock()
		return token, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	if p.cachedToken != "" && time.Now().Before(p.cacheExpiry) {
		return p.cachedToken, nil
	}

	needsRefresh := p.current.AccessToken == "" || p.current.IsExpired()
	if !p.current.Expiry.IsZero() {
		needsRefresh = needsRefresh || time.Until(p.current.Expiry) < p.refreshBuffer
	}

	if needsRefresh {
		if p.current.RefreshToken == "" {
			if p.current.AccessToken == "" || p.current.IsExpired() {
				return "", fmt.Errorf("oauth credentials %q: %w", p.id, domain.ErrTokenUnavailable)
			}
		} else if err := p.refresh(ctx); err != nil {
			return "", err
		}
	}

	p.cachedToken = p.current.AccessToken
	if !p.current.Expiry.IsZero() {
		p.cacheExpiry = p.current.Expiry.Add(-p.refreshBuffer)
	} else {
		p.cacheExpiry = time.Now().Add(1 * time.Hour)
	}

	return p.cachedToken, nil
}

// refresh exchanges the refresh token for a new access token (caller must hold lock).
func (p *OAuthTokenProvider) refresh(ctx context.Context) error {
	// A token without an access token is never valid, so the source always
	// goes to the token endpoint.
	src := p.config.TokenSource(ctx, &oauth2.Token{RefreshToken: p.current.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return fmt.Errorf("refresh token: %w: %w", domain.ErrTokenUnavailable, err)
	}

	p.current.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		p.current.RefreshToken = tok.RefreshToken
	}
	p.current.TokenType = tok.Type()
	p.current.Expiry = tok.Expiry

	if p.save != nil {
		if err := p.save(p.current); err != nil {
			return fmt.Errorf("save refreshed token: %w", err)
		}
	}
	return nil
}

// AuthorizationID returns the credentials name.
func (p *OAuthTokenProvider) AuthorizationID() string {
	return p.id
}

// AuthMethod returns AuthMethodOAuth.
func (p *OAuthTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodOAuth
}

// IsAuthenticated returns true if the credentials can produce a token.
func (p *OAuthTokenProvider) IsAuthenticated() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cachedToken != "" && time.Now().Before(p.cacheExpiry) {
		return true
	}
	return p.current.RefreshToken != "" || (p.current.AccessToken != "" && !p.current.IsExpired())
}

// InvalidateCache clears the cached token so the next call re-checks expiry.
func (p *OAuthTokenProvider) InvalidateCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cachedToken = ""
	p.cacheExpiry = time.Time{}
}
