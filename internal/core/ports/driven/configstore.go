package driven

import "github.com/custodia-labs/docs-dataset/internal/core/domain"

// ConfigStore provides read access to a settings file.
// Implementations handle parsing (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns an error wrapping domain.ErrInvalidInput if the value isn't a string.
	GetString(key string) (string, bool, error)

	// GetInt retrieves an integer configuration value.
	GetInt(key string) (int, bool, error)

	// GetBool retrieves a boolean configuration value.
	GetBool(key string) (bool, bool, error)

	// Keys returns every key in dot notation.
	Keys() []string

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string

	// Apply overlays the stored values onto settings.
	Apply(settings *domain.Settings) error
}
