package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAuthMethod(t *testing.T) {
	tests := []struct {
		in     string
		want   AuthMethod
		wantOK bool
	}{
		{"none", AuthMethodNone, true},
		{"apikey", AuthMethodAPIKey, true},
		{"token", AuthMethodToken, true},
		{"oauth", AuthMethodOAuth, true},
		{"OAuth", "", false},
		{"pat", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAuthMethod(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOAuthToken_IsExpired(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{"zero expiry never expires", time.Time{}, false},
		{"future", time.Now().Add(time.Hour), false},
		{"far future", time.Now().AddDate(10, 0, 0), false},
		{"past", time.Now().Add(-time.Hour), true},
		{"just expired", time.Now().Add(-time.Millisecond), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := &OAuthToken{AccessToken: "access", TokenType: "Bearer", Expiry: tt.expiry}
			assert.Equal(t, tt.want, token.IsExpired())
		})
	}
}

func TestOAuthToken_ExpiryWithoutRefreshToken(t *testing.T) {
	token := &OAuthToken{AccessToken: "access", Expiry: time.Now().Add(-time.Minute)}

	assert.True(t, token.IsExpired())
	assert.Empty(t, token.RefreshToken)
}
