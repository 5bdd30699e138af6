package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/docdeck/internal/adapters/secondary/browser"
	"github.com/fredcamaral/docdeck/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

// re-render at most this often while watching
const (
	watchInterval = 500 * time.Millisecond
	watchDebounce = time.Second
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <markup.md>",
		Short: "Render Marp markup to PDF or HTML",
		Long: `Render existing Marp markup with marp-cli.

The theme comes from --theme, then the markup's front matter, then the
default theme. With --watch the file is rendered again whenever it changes.

Example:
  docdeck render deck.md --format html --output deck.html --open
  docdeck render deck.md --watch`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}

	cmd.Flags().String("theme", "", "Theme to render with")
	cmd.Flags().StringP("format", "f", string(entities.FormatPDF), "Output format: pdf or html")
	cmd.Flags().StringP("output", "o", "", "Output file (default: input name with the format's extension)")
	cmd.Flags().String("marp-command", "", "marp-cli launcher (overrides config)")
	cmd.Flags().BoolP("watch", "w", false, "Render again when the markup changes")
	cmd.Flags().Bool("open", false, "Open the rendered file when done")

	return cmd
}

// renderJob renders one markup file to one output
type renderJob struct {
	deck   ports.DeckService
	input  string
	output string
	theme  string
	format entities.OutputFormat
}

func (j renderJob) run(ctx context.Context) error {
	markup, err := readInputFile(j.input)
	if err != nil {
		return err
	}

	rendered, err := j.deck.Render(ctx, ports.RenderRequest{
		Markup: string(markup),
		Theme:  j.theme,
		Format: j.format,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(j.output, rendered.Data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", j.output, err)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	theme, _ := cmd.Flags().GetString("theme")
	formatName, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	watch, _ := cmd.Flags().GetBool("watch")
	open, _ := cmd.Flags().GetBool("open")

	format, err := entities.ParseOutputFormat(formatName)
	if err != nil {
		return err
	}

	if output == "" {
		output = replaceExt(inputPath, format.Extension())
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	job := renderJob{deck: a.deck, input: inputPath, output: output, theme: theme, format: format}
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	if err := job.run(ctx); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Rendered %s\n", output)

	if open {
		if err := browser.NewLauncher().Open(output); err != nil {
			a.logger.Warn("could not open rendered file", slog.String("path", output), slog.String("error", err.Error()))
		}
	}

	if !watch {
		return nil
	}

	return watchAndRender(ctx, watcher.NewPollingWatcher(watchInterval, watchDebounce, a.logger), job, a.logger, func(path string) {
		fmt.Fprintf(stderr, "Rendered %s\n", path)
	})
}

// watchAndRender re-renders job on every change until ctx is cancelled.
// Render failures are logged and watching continues.
func watchAndRender(ctx context.Context, w ports.FileWatcher, job renderJob, logger *slog.Logger, rendered func(string)) error {
	changes, err := w.Watch(ctx, job.input)
	if err != nil {
		return fmt.Errorf("watching %s: %w", job.input, err)
	}

	logger.Info("watching for changes", slog.String("path", job.input))

	for change := range changes {
		if change.Removed {
			logger.Warn("markup file removed, waiting for it to return", slog.String("path", change.Path))
			continue
		}

		if err := job.run(ctx); err != nil {
			logger.Error("re-render failed", slog.String("path", job.input), slog.String("error", err.Error()))
			continue
		}
		rendered(job.output)
	}

	return nil
}
