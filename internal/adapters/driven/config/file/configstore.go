package file

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// DefaultFileName is the settings file looked up in the working directory
// when no path is given.
const DefaultFileName = "docs-dataset.toml"

// Recognised keys in dot notation.
const (
	KeyDatasetName        = "dataset_name"
	KeyDocsFolder         = "docs_folder"
	KeyOutputDir          = "output_dir"
	KeyPrivate            = "private"
	KeyChunkingStrategy   = "chunking.strategy"
	KeyMaxCharacters      = "chunking.max_characters"
	KeyNewAfterNChars     = "chunking.new_after_n_chars"
	KeyCombineUnderNChars = "chunking.combine_under_n_chars"
	KeyGitHubAPIURL       = "github.api_url"
	KeyHubEndpoint        = "hub.endpoint"
	KeyLogLevel           = "log.level"
	KeyLogFormat          = "log.format"
)

// ConfigStore holds settings read from a TOML file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore reads the TOML file at path.
// A missing file is an error wrapping fs.ErrNotExist.
func NewConfigStore(path string) (*ConfigStore, error) {
	s := &ConfigStore{
		filePath: path,
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) (string, bool, error) {
	val, ok := s.Get(key)
	if !ok {
		return "", false, nil
	}

	str, ok := val.(string)
	if !ok {
		return "", false, typeError(key, "a string", val)
	}
	return str, true, nil
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) (int, bool, error) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false, nil
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v), true, nil
	case int:
		return v, true, nil
	default:
		return 0, false, typeError(key, "an integer", val)
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) (bool, bool, error) {
	val, ok := s.Get(key)
	if !ok {
		return false, false, nil
	}

	b, ok := val.(bool)
	if !ok {
		return false, false, typeError(key, "a boolean", val)
	}
	return b, true, nil
}

// Keys returns all keys in dot notation, sorted.
func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidInput, s.filePath, err)
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	// Flatten nested tables into dot-notation keys for easier access
	s.data = flattenMap(loaded, "")
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Apply overlays the values present in the file onto settings.
// Tokens are never read from the file; token and unknown keys are
// reported and ignored.
func (s *ConfigStore) Apply(settings *domain.Settings) error {
	strs := map[string]*string{
		KeyDatasetName:  &settings.DatasetName,
		KeyDocsFolder:   &settings.DocsFolder,
		KeyOutputDir:    &settings.OutputDir,
		KeyGitHubAPIURL: &settings.GitHub.APIURL,
		KeyHubEndpoint:  &settings.Hub.Endpoint,
		KeyLogLevel:     &settings.Log.Level,
		KeyLogFormat:    &settings.Log.Format,
	}
	ints := map[string]*int{
		KeyMaxCharacters:      &settings.Chunking.MaxCharacters,
		KeyNewAfterNChars:     &settings.Chunking.NewAfterNChars,
		KeyCombineUnderNChars: &settings.Chunking.CombineUnderNChars,
	}

	for _, key := range s.Keys() {
		switch {
		case strs[key] != nil:
			v, _, err := s.GetString(key)
			if err != nil {
				return err
			}
			*strs[key] = v

		case ints[key] != nil:
			v, _, err := s.GetInt(key)
			if err != nil {
				return err
			}
			*ints[key] = v

		case key == KeyPrivate:
			v, _, err := s.GetBool(key)
			if err != nil {
				return err
			}
			settings.Private = v

		case key == KeyChunkingStrategy:
			v, _, err := s.GetString(key)
			if err != nil {
				return err
			}
			settings.Chunking.Strategy = domain.ChunkingStrategy(v)

		case key == "github.token" || key == "hub.token":
			logger.Warn("config %s: %s is ignored; tokens are read from the environment", s.filePath, key)

		default:
			logger.Warn("config %s: unknown key %s", s.filePath, key)
		}
	}

	return nil
}

func typeError(key, want string, got any) error {
	return fmt.Errorf("%w: config key %s must be %s, got %T", domain.ErrInvalidInput, key, want, got)
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}
