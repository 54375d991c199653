package auth

import (
	"context"

	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
)

// Ensure NullTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*NullTokenProvider)(nil)

// NullTokenProvider is for anonymous access.
// Used for public repositories when no GitHub token is configured.
type NullTokenProvider struct{}

// NewNullTokenProvider creates a token provider for anonymous access.
func NewNullTokenProvider() *NullTokenProvider {
	return &NullTokenProvider{}
}

// GetToken returns an empty string since no authentication is needed.
func (p *NullTokenProvider) GetToken(_ context.Context) (string, error) {
	return "", nil
}

// IsAuthenticated returns false: requests go out anonymously.
func (p *NullTokenProvider) IsAuthenticated() bool {
	return false
}
