package entities

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig     `toml:"server"`
	Generator GeneratorConfig  `toml:"generator"`
	Renderer  RendererConfig   `toml:"renderer"`
	Defaults  TransformOptions `toml:"defaults"`
	Parser    ParserConfig     `toml:"parser"`
	Logging   LoggingConfig    `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator config: %w", err)
	}

	if err := c.Renderer.Validate(); err != nil {
		return fmt.Errorf("renderer config: %w", err)
	}

	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults config: %w", err)
	}

	if err := c.Parser.Validate(); err != nil {
		return fmt.Errorf("parser config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	MaxUploadMB     int      `toml:"max_upload_mb"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil && s.Host != "localhost" {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	if s.MaxUploadMB < 0 {
		return errors.New("max upload size must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration. Generation can
// take a while, so the default is generous.
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 180 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetMaxUploadBytes returns the upload limit in bytes (default 20MB)
func (s ServerConfig) GetMaxUploadBytes() int64 {
	if s.MaxUploadMB <= 0 {
		return 20 << 20
	}
	return int64(s.MaxUploadMB) << 20
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}
	}
	return s.CORSOrigins
}

// Generator providers
const (
	ProviderGemini = "gemini"
	ProviderDemo   = "demo"
)

// GeneratorConfig configures the content generation backend
type GeneratorConfig struct {
	Provider        string  `toml:"provider"`
	APIKey          string  `toml:"api_key"`
	Model           string  `toml:"model"`
	Temperature     float32 `toml:"temperature"`
	MaxOutputTokens int32   `toml:"max_output_tokens"`
	TimeoutSeconds  int     `toml:"timeout_seconds"`
	MaxRetries      int     `toml:"max_retries"`
}

// Validate validates generator configuration
func (g GeneratorConfig) Validate() error {
	switch g.Provider {
	case "", ProviderGemini, ProviderDemo:
	default:
		return fmt.Errorf("unknown provider: %s (must be %s or %s)", g.Provider, ProviderGemini, ProviderDemo)
	}

	if g.Temperature < 0 || g.Temperature > 2 {
		return errors.New("temperature must be between 0 and 2")
	}

	if g.MaxOutputTokens < 0 {
		return errors.New("max output tokens must be non-negative")
	}

	if g.TimeoutSeconds < 0 {
		return errors.New("timeout must be non-negative")
	}

	if g.MaxRetries < 0 {
		return errors.New("max retries must be non-negative")
	}

	return nil
}

// HasAPIKey reports whether a usable API key is configured. Placeholder
// values copied from example env files do not count.
func (g GeneratorConfig) HasAPIKey() bool {
	key := strings.TrimSpace(g.APIKey)
	return key != "" && !strings.HasPrefix(key, "your_")
}

// GetTimeout returns the per-call generation timeout
func (g GeneratorConfig) GetTimeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// RendererConfig configures the marp-cli invocation
type RendererConfig struct {
	Command         string   `toml:"command"`
	Args            []string `toml:"args"`
	TimeoutSeconds  int      `toml:"timeout_seconds"`
	AllowLocalFiles bool     `toml:"allow_local_files"`
}

// Validate validates renderer configuration
func (r RendererConfig) Validate() error {
	if r.Command != "" && strings.TrimSpace(r.Command) == "" {
		return errors.New("renderer command cannot be blank")
	}

	if r.TimeoutSeconds < 0 {
		return errors.New("renderer timeout must be non-negative")
	}

	return nil
}

// GetTimeout returns the render timeout
func (r RendererConfig) GetTimeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// OrphanBulletPolicy decides what happens to bullets before the first heading
type OrphanBulletPolicy string

const (
	OrphanBulletsSynthesize OrphanBulletPolicy = "synthesize"
	OrphanBulletsDrop       OrphanBulletPolicy = "drop"
)

// ParserConfig configures the response parser
type ParserConfig struct {
	OrphanBullets OrphanBulletPolicy `toml:"orphan_bullets"`
}

// Validate validates parser configuration
func (p ParserConfig) Validate() error {
	switch p.OrphanBullets {
	case "", OrphanBulletsSynthesize, OrphanBulletsDrop:
		return nil
	default:
		return fmt.Errorf("invalid orphan bullet policy: %s (must be synthesize or drop)", p.OrphanBullets)
	}
}

// GetOrphanBullets returns the policy with default
func (p ParserConfig) GetOrphanBullets() OrphanBulletPolicy {
	if p.OrphanBullets == "" {
		return OrphanBulletsSynthesize
	}
	return p.OrphanBullets
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, "":
		return nil
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
