package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

// apiKeyEnvVars are checked in order for the generator API key
var apiKeyEnvVars = []string{"DOCDECK_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"}

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	config := &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("DOCDECK_HOST", "localhost"),
			Port:            getEnvIntOrDefault("DOCDECK_PORT", 3000),
			ReadTimeout:     getEnvIntOrDefault("DOCDECK_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("DOCDECK_WRITE_TIMEOUT", 180),
			ShutdownTimeout: getEnvIntOrDefault("DOCDECK_SHUTDOWN_TIMEOUT", 5),
			MaxUploadMB:     getEnvIntOrDefault("DOCDECK_MAX_UPLOAD_MB", 20),
			CORSOrigins: getEnvSliceOrDefault("DOCDECK_CORS_ORIGINS", []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			}),
		},
		Generator: entities.GeneratorConfig{
			Provider:        getEnvOrDefault("DOCDECK_PROVIDER", entities.ProviderGemini),
			Model:           getEnvOrDefault("DOCDECK_MODEL", "gemini-1.5-flash"),
			Temperature:     0.4,
			MaxOutputTokens: 4096,
			TimeoutSeconds:  120,
			MaxRetries:      2,
		},
		Renderer: entities.RendererConfig{
			Command:        getEnvOrDefault("DOCDECK_MARP_COMMAND", "npx"),
			Args:           []string{"@marp-team/marp-cli"},
			TimeoutSeconds: 60,
		},
		Defaults: entities.TransformOptions{
			ContentDensity: entities.DefaultContentDensity,
			TargetAudience: entities.DefaultTargetAudience,
			VisualStyle:    getEnvOrDefault("DOCDECK_THEME", entities.DefaultVisualStyle),
		},
		Parser: entities.ParserConfig{
			OrphanBullets: entities.OrphanBulletsSynthesize,
		},
		Logging: entities.LoggingConfig{
			Level:      getEnvOrDefault("DOCDECK_LOG_LEVEL", "info"),
			JSONFormat: getEnvBoolOrDefault("DOCDECK_LOG_JSON", false),
		},
	}

	return config
}

// LookupAPIKey returns the first usable API key from the environment.
// Placeholder values such as "your_api_key_here" are skipped.
func LookupAPIKey() string {
	for _, name := range apiKeyEnvVars {
		value := strings.TrimSpace(os.Getenv(name))
		if value != "" && !strings.HasPrefix(value, "your_") {
			return value
		}
	}
	return ""
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns a comma separated environment variable as slice or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
