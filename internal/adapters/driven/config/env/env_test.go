package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GITHUB_TOKEN", "GITHUB_API_URL", "HF_TOKEN", "HF_ENDPOINT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_FromProcess(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")
	t.Setenv("HF_TOKEN", "hf-token")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "gh-token", cfg.GitHubToken)
	assert.Equal(t, "hf-token", cfg.HubToken)
	assert.Empty(t, cfg.HubEndpoint)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HF_TOKEN=from-file\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("HF_TOKEN")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.HubToken)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ProcessWinsOverDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HF_TOKEN", "from-process")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HF_TOKEN=from-file\n"), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.HubToken)
}

func TestLoad_MissingDotEnv(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, &Environment{}, cfg)
}

func TestEnvironment_Apply(t *testing.T) {
	settings := domain.DefaultSettings()
	e := &Environment{
		GitHubToken: "gh",
		HubToken:    "hf",
		HubEndpoint: "https://hub.example.com",
		LogFormat:   "json",
	}

	e.Apply(&settings)

	assert.Equal(t, "gh", settings.GitHub.Token)
	assert.Equal(t, domain.DefaultGitHubAPIURL, settings.GitHub.APIURL)
	assert.Equal(t, "hf", settings.Hub.Token)
	assert.Equal(t, "https://hub.example.com", settings.Hub.Endpoint)
	assert.Equal(t, domain.DefaultLogLevel, settings.Log.Level)
	assert.Equal(t, "json", settings.Log.Format)
}
