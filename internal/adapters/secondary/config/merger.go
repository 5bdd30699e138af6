package config

import (
	"os"
	"strconv"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	var result *entities.Config
	for _, config := range configs {
		if config == nil {
			continue
		}
		if result == nil {
			result = deepCopy(config)
			continue
		}
		m.mergeInto(result, config)
	}

	if result == nil {
		return GetDefaultConfig()
	}
	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if provider, ok := flags["provider"].(string); ok && provider != "" {
		result.Generator.Provider = provider
	}

	if demo, ok := flags["demo"].(bool); ok && demo {
		result.Generator.Provider = entities.ProviderDemo
	}

	if model, ok := flags["model"].(string); ok && model != "" {
		result.Generator.Model = model
	}

	if style, ok := flags["style"].(string); ok && style != "" {
		result.Defaults.VisualStyle = style
	}

	if density, ok := flags["density"].(string); ok && density != "" {
		result.Defaults.ContentDensity = entities.ContentDensity(density)
	}

	if audience, ok := flags["audience"].(string); ok && audience != "" {
		result.Defaults.TargetAudience = entities.TargetAudience(audience)
	}

	if policy, ok := flags["orphan-bullets"].(string); ok && policy != "" {
		result.Parser.OrphanBullets = entities.OrphanBulletPolicy(policy)
	}

	if command, ok := flags["marp-command"].(string); ok && command != "" {
		result.Renderer.Command = command
	}

	if level, ok := flags["log-level"].(string); ok && level != "" {
		result.Logging.Level = level
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if host := os.Getenv("DOCDECK_HOST"); host != "" {
		result.Server.Host = host
	}

	if portStr := os.Getenv("DOCDECK_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			result.Server.Port = port
		}
	}

	if provider := os.Getenv("DOCDECK_PROVIDER"); provider != "" {
		result.Generator.Provider = provider
	}

	if model := os.Getenv("DOCDECK_MODEL"); model != "" {
		result.Generator.Model = model
	}

	if key := LookupAPIKey(); key != "" {
		result.Generator.APIKey = key
	}

	if command := os.Getenv("DOCDECK_MARP_COMMAND"); command != "" {
		result.Renderer.Command = command
	}

	if theme := os.Getenv("DOCDECK_THEME"); theme != "" {
		result.Defaults.VisualStyle = theme
	}

	if level := os.Getenv("DOCDECK_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	if jsonStr := os.Getenv("DOCDECK_LOG_JSON"); jsonStr != "" {
		if jsonFormat, err := strconv.ParseBool(jsonStr); err == nil {
			result.Logging.JSONFormat = jsonFormat
		}
	}

	return result
}

// mergeInto merges source configuration into target configuration.
// TOML cannot tell false from unset, so booleans only ever switch on.
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Server config
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if source.Server.MaxUploadMB != 0 {
		target.Server.MaxUploadMB = source.Server.MaxUploadMB
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = copyStrings(source.Server.CORSOrigins)
	}

	// Generator config
	if source.Generator.Provider != "" {
		target.Generator.Provider = source.Generator.Provider
	}
	if source.Generator.APIKey != "" {
		target.Generator.APIKey = source.Generator.APIKey
	}
	if source.Generator.Model != "" {
		target.Generator.Model = source.Generator.Model
	}
	if source.Generator.Temperature != 0 {
		target.Generator.Temperature = source.Generator.Temperature
	}
	if source.Generator.MaxOutputTokens != 0 {
		target.Generator.MaxOutputTokens = source.Generator.MaxOutputTokens
	}
	if source.Generator.TimeoutSeconds != 0 {
		target.Generator.TimeoutSeconds = source.Generator.TimeoutSeconds
	}
	if source.Generator.MaxRetries != 0 {
		target.Generator.MaxRetries = source.Generator.MaxRetries
	}

	// Renderer config
	if source.Renderer.Command != "" {
		target.Renderer.Command = source.Renderer.Command
	}
	if source.Renderer.Args != nil {
		target.Renderer.Args = copyStrings(source.Renderer.Args)
	}
	if source.Renderer.TimeoutSeconds != 0 {
		target.Renderer.TimeoutSeconds = source.Renderer.TimeoutSeconds
	}
	if source.Renderer.AllowLocalFiles {
		target.Renderer.AllowLocalFiles = true
	}

	// Defaults
	if source.Defaults.ContentDensity != "" {
		target.Defaults.ContentDensity = source.Defaults.ContentDensity
	}
	if source.Defaults.TargetAudience != "" {
		target.Defaults.TargetAudience = source.Defaults.TargetAudience
	}
	if source.Defaults.VisualStyle != "" {
		target.Defaults.VisualStyle = source.Defaults.VisualStyle
	}

	// Parser config
	if source.Parser.OrphanBullets != "" {
		target.Parser.OrphanBullets = source.Parser.OrphanBullets
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Logging.JSONFormat {
		target.Logging.JSONFormat = true
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := *src
	dst.Server.CORSOrigins = copyStrings(src.Server.CORSOrigins)
	dst.Renderer.Args = copyStrings(src.Renderer.Args)

	return &dst
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
