package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ChunkingStrategy names a way of merging elements into chunks.
type ChunkingStrategy string

// Available chunking strategies.
const (
	// ChunkByTitle closes a chunk at every title element.
	ChunkByTitle ChunkingStrategy = "by_title"

	// ChunkBasic packs elements by size only.
	ChunkBasic ChunkingStrategy = "basic"
)

// IsValid returns true if the strategy is recognised.
func (s ChunkingStrategy) IsValid() bool {
	switch s {
	case ChunkByTitle, ChunkBasic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ChunkingStrategy) String() string {
	return string(s)
}

// Default values applied before any config source.
const (
	DefaultDocsFolder         = "docs"
	DefaultMaxCharacters      = 500
	DefaultGitHubAPIURL       = "https://api.github.com/"
	DefaultHubEndpoint        = "https://huggingface.co"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "auto"
	maxDatasetNameLen         = 96
	datasetNameComponentRegex = `[A-Za-z0-9][A-Za-z0-9_.-]*`
)

var datasetNamePattern = regexp.MustCompile(
	`^(` + datasetNameComponentRegex + `/)?` + datasetNameComponentRegex + `$`,
)

// ChunkingSettings configures how elements are merged into chunks.
type ChunkingSettings struct {
	Strategy ChunkingStrategy

	// MaxCharacters is the hard limit of a chunk. Longer elements are split.
	MaxCharacters int

	// NewAfterNChars is the soft limit; zero means MaxCharacters.
	NewAfterNChars int

	// CombineUnderNChars merges small consecutive sections; zero disables it
	// and CombineFollowsMax means MaxCharacters.
	CombineUnderNChars int
}

// CombineFollowsMax leaves CombineUnderNChars tied to MaxCharacters.
const CombineFollowsMax = -1

// GitHubSettings configures the repository host.
type GitHubSettings struct {
	APIURL string

	// Token is optional; anonymous access works for public repositories.
	Token string
}

// HubSettings configures the dataset hub.
type HubSettings struct {
	Endpoint string
	Token    string
}

// LogSettings configures the logger.
type LogSettings struct {
	Level  string
	Format string
}

// Settings holds every tunable of a run.
type Settings struct {
	DatasetName string
	DocsFolder  string
	OutputDir   string
	Private     bool

	// DryRun builds the dataset without publishing it.
	DryRun bool

	// SaveLocal, when set, writes the dataset to this parquet file.
	SaveLocal string

	Chunking ChunkingSettings
	GitHub   GitHubSettings
	Hub      HubSettings
	Log      LogSettings
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		DocsFolder: DefaultDocsFolder,
		Chunking: ChunkingSettings{
			Strategy:           ChunkByTitle,
			MaxCharacters:      DefaultMaxCharacters,
			NewAfterNChars:     0,
			CombineUnderNChars: CombineFollowsMax,
		},
		GitHub: GitHubSettings{APIURL: DefaultGitHubAPIURL},
		Hub:    HubSettings{Endpoint: DefaultHubEndpoint},
		Log:    LogSettings{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Validate checks the settings that do not depend on the publish step.
func (s *Settings) Validate() error {
	if !s.Chunking.Strategy.IsValid() {
		return fmt.Errorf("%w: chunking strategy %q", ErrUnsupportedType, s.Chunking.Strategy)
	}
	if s.Chunking.MaxCharacters <= 0 {
		return fmt.Errorf("%w: max characters must be positive, got %d",
			ErrInvalidInput, s.Chunking.MaxCharacters)
	}
	if s.Chunking.NewAfterNChars < 0 {
		return fmt.Errorf("%w: new-after-n-chars must not be negative", ErrInvalidInput)
	}
	if combine := s.Chunking.CombineUnderNChars; combine != CombineFollowsMax &&
		(combine < 0 || combine > s.Chunking.MaxCharacters) {
		return fmt.Errorf("%w: combine-under-n-chars must be between 0 and %d",
			ErrInvalidInput, s.Chunking.MaxCharacters)
	}
	if slices.Contains(strings.Split(s.DocsFolder, "/"), "..") {
		return fmt.Errorf("%w: docs folder %q", ErrInvalidInput, s.DocsFolder)
	}
	if !s.DryRun {
		if err := ValidateDatasetName(s.DatasetName); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDatasetName checks a hub dataset identifier ("owner/name" or "name").
func ValidateDatasetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: dataset name is required", ErrInvalidInput)
	}
	if len(name) > maxDatasetNameLen || !datasetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: dataset name %q", ErrInvalidInput, name)
	}
	if strings.Contains(name, "--") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: dataset name %q", ErrInvalidInput, name)
	}
	return nil
}

// RepoShortName returns the segment after "/" of an "owner/name" identifier.
func RepoShortName(fullName string) (string, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: repository %q is not owner/name", ErrInvalidInput, fullName)
	}
	return name, nil
}
