// Package env reads credentials and endpoint overrides from the process
// environment, optionally seeded from a .env file.
package env

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// DefaultDotEnv is loaded when present in the working directory.
const DefaultDotEnv = ".env"

// Environment lists the variables the tool understands.
type Environment struct {
	GitHubToken  string `env:"GITHUB_TOKEN"`
	GitHubAPIURL string `env:"GITHUB_API_URL"`
	HubToken     string `env:"HF_TOKEN"`
	HubEndpoint  string `env:"HF_ENDPOINT"`
	LogLevel     string `env:"LOG_LEVEL"`
	LogFormat    string `env:"LOG_FORMAT"`
}

// Load seeds the environment from the given .env files and parses it.
// Variables already set in the process win over the files; missing files
// are skipped.
func Load(dotenvPaths ...string) (*Environment, error) {
	for _, path := range dotenvPaths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			logger.Warn("failed to load %s: %v", path, err)
		}
	}

	cfg := &Environment{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: parse environment: %v", domain.ErrInvalidInput, err)
	}
	return cfg, nil
}

// Apply overrides settings with every non-empty variable.
func (e *Environment) Apply(settings *domain.Settings) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&settings.GitHub.Token, e.GitHubToken)
	set(&settings.GitHub.APIURL, e.GitHubAPIURL)
	set(&settings.Hub.Token, e.HubToken)
	set(&settings.Hub.Endpoint, e.HubEndpoint)
	set(&settings.Log.Level, e.LogLevel)
	set(&settings.Log.Format, e.LogFormat)
}
