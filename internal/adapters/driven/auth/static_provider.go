package auth

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider provides a fixed token read from configuration.
// Personal access tokens don't expire during a run, so no refresh logic is needed.
type StaticTokenProvider struct {
	name  string
	token string
}

// NewStaticTokenProvider creates a provider for token. name identifies the
// token source in error messages (e.g. "HF_TOKEN").
func NewStaticTokenProvider(name, token string) *StaticTokenProvider {
	return &StaticTokenProvider{name: name, token: token}
}

// GetToken returns the token, or ErrAuthRequired when it is empty.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("%w: %s is not set", domain.ErrAuthRequired, p.name)
	}
	return p.token, nil
}

// IsAuthenticated returns true if a token is configured.
func (p *StaticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}
