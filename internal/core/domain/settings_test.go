package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkingStrategy_IsValid(t *testing.T) {
	assert.True(t, ChunkByTitle.IsValid())
	assert.True(t, ChunkBasic.IsValid())
	assert.False(t, ChunkingStrategy("by_page").IsValid())
	assert.Equal(t, "by_title", ChunkByTitle.String())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "docs", s.DocsFolder)
	assert.False(t, s.Private)
	assert.Equal(t, ChunkByTitle, s.Chunking.Strategy)
	assert.Equal(t, 500, s.Chunking.MaxCharacters)
	assert.Zero(t, s.Chunking.NewAfterNChars, "soft limit follows max characters")
	assert.Equal(t, CombineFollowsMax, s.Chunking.CombineUnderNChars)
	assert.Equal(t, DefaultHubEndpoint, s.Hub.Endpoint)
	assert.Equal(t, DefaultGitHubAPIURL, s.GitHub.APIURL)
}

func TestSettings_Validate(t *testing.T) {
	valid := func() Settings {
		s := DefaultSettings()
		s.DatasetName = "my-name/docs_raw"
		return s
	}

	t.Run("defaults with dataset name", func(t *testing.T) {
		s := valid()
		assert.NoError(t, s.Validate())
	})

	t.Run("missing dataset name", func(t *testing.T) {
		s := valid()
		s.DatasetName = ""
		err := s.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("dry run does not need dataset name", func(t *testing.T) {
		s := valid()
		s.DatasetName = ""
		s.DryRun = true
		assert.NoError(t, s.Validate())
	})

	t.Run("unknown strategy", func(t *testing.T) {
		s := valid()
		s.Chunking.Strategy = "semantic"
		assert.True(t, errors.Is(s.Validate(), ErrUnsupportedType))
	})

	t.Run("non-positive max characters", func(t *testing.T) {
		s := valid()
		s.Chunking.MaxCharacters = 0
		assert.True(t, errors.Is(s.Validate(), ErrInvalidInput))
	})

	t.Run("explicit combine over max", func(t *testing.T) {
		s := valid()
		s.Chunking.CombineUnderNChars = 600
		assert.True(t, errors.Is(s.Validate(), ErrInvalidInput))
	})

	t.Run("unset limits follow a lower max", func(t *testing.T) {
		s := valid()
		s.Chunking.MaxCharacters = 200
		assert.NoError(t, s.Validate())
	})

	t.Run("combine disabled", func(t *testing.T) {
		s := valid()
		s.Chunking.CombineUnderNChars = 0
		assert.NoError(t, s.Validate())
	})

	t.Run("negative combine", func(t *testing.T) {
		s := valid()
		s.Chunking.CombineUnderNChars = -2
		assert.True(t, errors.Is(s.Validate(), ErrInvalidInput))
	})

	t.Run("docs folder escaping repository", func(t *testing.T) {
		s := valid()
		s.DocsFolder = "../secrets"
		assert.True(t, errors.Is(s.Validate(), ErrInvalidInput))
	})

	t.Run("empty docs folder means repository root", func(t *testing.T) {
		s := valid()
		s.DocsFolder = ""
		assert.NoError(t, s.Validate())
	})
}

func TestValidateDatasetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"owner and name", "plaguss/argilla_sdk_docs_raw", false},
		{"name only", "docs-raw", false},
		{"dots allowed", "org/docs.v2", false},
		{"empty", "", true},
		{"too many segments", "a/b/c", true},
		{"leading dash", "-bad", true},
		{"double dash", "org/a--b", true},
		{"spaces", "org/my docs", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepoShortName(t *testing.T) {
	name, err := RepoShortName("argilla-io/argilla-python")
	require.NoError(t, err)
	assert.Equal(t, "argilla-python", name)

	for _, bad := range []string{"argilla", "/repo", "owner/", "a/b/c"} {
		_, err := RepoShortName(bad)
		assert.Error(t, err, bad)
	}
}
