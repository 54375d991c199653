package auth

import (
	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
)

// Token source names used in error messages.
const (
	GitHubTokenName = "GITHUB_TOKEN"
	HubTokenName    = "HF_TOKEN"
)

// Factory creates TokenProviders from settings.
type Factory struct {
	settings domain.Settings
}

// NewFactory creates a token provider factory.
func NewFactory(settings domain.Settings) *Factory {
	return &Factory{settings: settings}
}

// GitHub returns the provider for the repository host.
// Returns NullTokenProvider when no token is configured so public
// repositories can still be read anonymously.
func (f *Factory) GitHub() driven.TokenProvider {
	if f.settings.GitHub.Token == "" {
		return NewNullTokenProvider()
	}
	return NewStaticTokenProvider(GitHubTokenName, f.settings.GitHub.Token)
}

// Hub returns the provider for the dataset hub. The hub always needs a token.
func (f *Factory) Hub() driven.TokenProvider {
	return NewStaticTokenProvider(HubTokenName, f.settings.Hub.Token)
}
