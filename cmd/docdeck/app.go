package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/docdeck/internal/adapters/secondary/config"
	"github.com/fredcamaral/docdeck/internal/adapters/secondary/document"
	"github.com/fredcamaral/docdeck/internal/adapters/secondary/gemini"
	"github.com/fredcamaral/docdeck/internal/adapters/secondary/marp"
	"github.com/fredcamaral/docdeck/internal/adapters/secondary/parser"
	"github.com/fredcamaral/docdeck/internal/adapters/secondary/preview"
	"github.com/fredcamaral/docdeck/internal/adapters/secondary/prompt"
	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/services"
)

// overridable flag names understood by the config merger
var configFlags = []string{
	"port", "host", "provider", "demo", "model",
	"style", "density", "audience", "orphan-bullets",
	"marp-command", "log-level", "verbose",
}

// app holds the wired services for one command invocation
type app struct {
	config    *entities.Config
	logger    *slog.Logger
	deck      *services.DeckService
	generator *gemini.Generator
}

func (a *app) Close() {
	if a.generator != nil {
		if err := a.generator.Close(); err != nil {
			a.logger.Warn("closing generator", slog.String("error", err.Error()))
		}
	}
}

// newConfigService builds the config service honoring --config
func newConfigService(cmd *cobra.Command) *services.ConfigService {
	loader := config.NewTOMLLoader()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader = config.NewTOMLLoaderWithPath(path)
	}
	return services.NewConfigService(loader, config.NewConfigMerger())
}

// collectFlags returns the explicitly set overridable flags
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})

	for _, name := range configFlags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}

		switch flag.Value.Type() {
		case "int":
			if v, err := cmd.Flags().GetInt(name); err == nil {
				flags[name] = v
			}
		case "bool":
			if v, err := cmd.Flags().GetBool(name); err == nil {
				flags[name] = v
			}
		default:
			flags[name] = flag.Value.String()
		}
	}

	return flags
}

// loadConfig resolves the configuration for the current working directory
func loadConfig(cmd *cobra.Command) (*entities.Config, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := newConfigService(cmd).LoadConfig(cmd.Context(), workingDir, collectFlags(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the root logger from [logging]
func newLogger(cfg entities.LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.GetLevel() {
	case entities.LogLevelDebug:
		level = slog.LevelDebug
	case entities.LogLevelWarn:
		level = slog.LevelWarn
	case entities.LogLevelError:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.JSONFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newApp loads configuration and wires the deck service
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Logging, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	return wireApp(cmd.Context(), cfg, logger)
}

// wireApp connects adapters to the deck service
func wireApp(ctx context.Context, cfg *entities.Config, logger *slog.Logger) (*app, error) {
	a := &app{config: cfg, logger: logger}

	deps := services.DeckDependencies{
		Extractor:  document.NewExtractor(logger),
		Prompts:    prompt.NewBuilder(),
		Parser:     parser.NewParser(parser.WithOrphanBullets(cfg.Parser.GetOrphanBullets())),
		Serializer: marp.NewSerializer(),
		Renderer: marp.NewCLIRenderer(marp.CLIConfig{
			Command:         cfg.Renderer.Command,
			Args:            cfg.Renderer.Args,
			Timeout:         cfg.Renderer.GetTimeout(),
			AllowLocalFiles: cfg.Renderer.AllowLocalFiles,
			Logger:          logger,
		}),
		Previewer: preview.NewRenderer(),
		Defaults:  cfg.Defaults,
		Logger:    logger,
	}

	if cfg.Generator.Provider != entities.ProviderDemo {
		generator, err := gemini.NewGenerator(ctx, cfg.Generator, logger)
		if err != nil {
			return nil, fmt.Errorf("creating generator: %w", err)
		}
		a.generator = generator
		deps.Generator = generator
	}

	a.deck = services.NewDeckService(deps)
	return a, nil
}
