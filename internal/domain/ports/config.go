package ports

import (
	"context"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

// ConfigLoader reads configuration files. Files may be partial; unset
// fields stay zero and are filled by merging.
type ConfigLoader interface {
	// LoadGlobal loads the global file, creating it with defaults if missing
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads docdeck.toml from dir. A missing file yields nil, nil.
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// CreateDefaults creates a default configuration file at the specified path
	CreateDefaults(ctx context.Context, path string) error

	// GetGlobalPath returns the path to the global configuration file
	GetGlobalPath() string

	// GetLocalPath returns the path to the local configuration file for a directory
	GetLocalPath(dir string) string
}

// ConfigMerger defines the interface for merging configurations
type ConfigMerger interface {
	// Merge merges multiple configurations with later configs taking precedence
	Merge(configs ...*entities.Config) *entities.Config

	// ApplyFlags applies CLI flag overrides keyed by flag name
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config

	// ApplyEnvVars applies DOCDECK_* and API key environment overrides
	ApplyEnvVars(config *entities.Config) *entities.Config
}

// ConfigService defines the interface for the configuration service
type ConfigService interface {
	// LoadConfig resolves defaults, global, local, env and flags in that order
	LoadConfig(ctx context.Context, workingDir string, flags map[string]interface{}) (*entities.Config, error)

	// GetDefaultConfig returns the default configuration
	GetDefaultConfig() *entities.Config

	// ValidateConfig validates a configuration
	ValidateConfig(config *entities.Config) error

	// CreateGlobalConfig writes the global configuration file with defaults
	CreateGlobalConfig(ctx context.Context) error

	// GlobalConfigPath returns the global configuration file location
	GlobalConfigPath() string
}
