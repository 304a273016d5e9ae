package domain

import "time"

// AuthMethod identifies how requests are authorised.
type AuthMethod string

const (
	// AuthMethodNone sends requests anonymously.
	AuthMethodNone AuthMethod = "none"
	// AuthMethodAPIKey appends a developer key to every request URI.
	AuthMethodAPIKey AuthMethod = "apikey"
	// AuthMethodToken sends a static bearer token.
	AuthMethodToken AuthMethod = "token"
	// AuthMethodOAuth uses refreshable OAuth 2.0 credentials.
	AuthMethodOAuth AuthMethod = "oauth"
)

// ParseAuthMethod returns the AuthMethod named by s, or false if unknown.
func ParseAuthMethod(s string) (AuthMethod, bool) {
	switch m := AuthMethod(s); m {
	case AuthMethodNone, AuthMethodAPIKey, AuthMethodToken, AuthMethodOAuth:
		return m, true
	default:
		return "", false
	}
}

// OAuthToken represents stored OAuth credentials.
type OAuthToken struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
}

// IsExpired returns true if the token has expired.
func (t *OAuthToken) IsExpired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return time.Now().After(t.Expiry)
}
