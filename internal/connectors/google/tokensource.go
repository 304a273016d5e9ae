package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/core/ports/driven"
)

// providerSource serves tokens from a driven.TokenProvider. The provider
// refreshes on its own, so every call goes back to it.
type providerSource struct {
	ctx      context.Context
	provider driven.TokenProvider
}

// NewTokenSource exposes provider as an oauth2.TokenSource for
// WithTokenSource. Requests made through it carry a bearer token.
func NewTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return &providerSource{ctx: ctx, provider: provider}
}

func (s *providerSource) Token() (*oauth2.Token, error) {
	token, err := s.provider.GetToken(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrTokenUnavailable, s.provider.AuthorizationID(), err)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: %s credentials carry no access token",
			domain.ErrTokenUnavailable, s.provider.AuthMethod())
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}
