package marp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

// CLIConfig configures the marp-cli process
type CLIConfig struct {
	Command         string
	Args            []string
	Timeout         time.Duration
	TempDir         string
	AllowLocalFiles bool
	Logger          *slog.Logger
}

// CLIRenderer renders markup by running marp-cli in a scratch directory
type CLIRenderer struct {
	command         string
	args            []string
	timeout         time.Duration
	tempDir         string
	allowLocalFiles bool
	logger          *slog.Logger

	processMutex    sync.Mutex
	activeProcesses map[string]*exec.Cmd

	availableMutex sync.Mutex
	available      bool
}

// NewCLIRenderer creates a renderer from config
func NewCLIRenderer(config CLIConfig) *CLIRenderer {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	command := config.Command
	if command == "" {
		command = "npx"
	}

	args := config.Args
	if args == nil && command == "npx" {
		args = []string{"@marp-team/marp-cli"}
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	tempDir := config.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	return &CLIRenderer{
		command:         command,
		args:            append([]string(nil), args...),
		timeout:         timeout,
		tempDir:         tempDir,
		allowLocalFiles: config.AllowLocalFiles,
		logger:          logger.With("component", "marp-cli"),
		activeProcesses: make(map[string]*exec.Cmd),
	}
}

// Render writes the markup to a job directory, runs marp-cli and returns the
// produced file
func (r *CLIRenderer) Render(ctx context.Context, markup, theme string, format entities.OutputFormat) ([]byte, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, entities.ErrEmptyMarkup
	}

	switch format {
	case entities.FormatPDF, entities.FormatHTML:
	default:
		return nil, fmt.Errorf("%w: %s", entities.ErrInvalidFormat, format)
	}

	if theme = strings.TrimSpace(theme); theme == "" {
		theme = defaultTheme
	}

	jobID := uuid.NewString()
	jobDir, err := os.MkdirTemp(r.tempDir, "docdeck-"+jobID+"-")
	if err != nil {
		return nil, fmt.Errorf("creating job directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(jobDir); err != nil {
			r.logger.Warn("removing job directory", slog.String("dir", jobDir), slog.String("error", err.Error()))
		}
	}()

	inputPath := filepath.Join(jobDir, "presentation.md")
	outputPath := filepath.Join(jobDir, "presentation."+format.Extension())

	if err := os.WriteFile(inputPath, []byte(markup), 0600); err != nil {
		return nil, fmt.Errorf("writing markup: %w", err)
	}

	args := r.buildArgs(inputPath, outputPath, theme, format)

	cmdCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// #nosec G204 - command comes from configuration and args are built here
	cmd := exec.CommandContext(cmdCtx, r.command, args...)
	cmd.Dir = jobDir

	r.track(jobID, cmd)
	defer r.untrack(jobID)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	if err != nil {
		cause := err
		if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
			cause = fmt.Errorf("timed out after %s: %w", r.timeout, err)
		}
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			cause = fmt.Errorf("%w: %v", entities.ErrRendererUnavailable, err)
		}
		return nil, &entities.RenderError{Format: format, Output: strings.TrimSpace(string(output)), Cause: cause}
	}

	data, err := os.ReadFile(outputPath) // #nosec G304 - path is inside our job directory
	if err != nil {
		return nil, &entities.RenderError{Format: format, Output: strings.TrimSpace(string(output)), Cause: fmt.Errorf("reading output: %w", err)}
	}

	r.logger.Debug("rendered markup",
		slog.String("job", jobID),
		slog.String("format", string(format)),
		slog.String("theme", theme),
		slog.Int("bytes", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// buildArgs assembles the marp-cli arguments. HTML is the default output
// of marp-cli so only PDF needs a flag.
func (r *CLIRenderer) buildArgs(inputPath, outputPath, theme string, format entities.OutputFormat) []string {
	args := append([]string(nil), r.args...)
	args = append(args, inputPath, "--theme", theme, "--output", outputPath)

	if format == entities.FormatPDF {
		args = append(args, "--pdf")
	}
	if r.allowLocalFiles {
		args = append(args, "--allow-local-files")
	}

	return args
}

// Available checks that marp-cli can be executed. A successful check is
// remembered; failures are retried on the next call.
func (r *CLIRenderer) Available(ctx context.Context) error {
	r.availableMutex.Lock()
	defer r.availableMutex.Unlock()

	if r.available {
		return nil
	}

	if _, err := exec.LookPath(r.command); err != nil {
		return fmt.Errorf("%w: %s not found", entities.ErrRendererUnavailable, r.command)
	}

	checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append(append([]string(nil), r.args...), "--version")
	// #nosec G204 - command comes from configuration
	cmd := exec.CommandContext(checkCtx, r.command, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %v (output: %s)", entities.ErrRendererUnavailable, err, strings.TrimSpace(string(output)))
	}

	r.available = true
	return nil
}

// Cleanup kills any marp-cli process still running
func (r *CLIRenderer) Cleanup() {
	r.processMutex.Lock()
	defer r.processMutex.Unlock()

	for id, cmd := range r.activeProcesses {
		if cmd.Process != nil {
			if err := cmd.Process.Kill(); err != nil {
				r.logger.Debug("killing render process", slog.String("job", id), slog.String("error", err.Error()))
			}
		}
		delete(r.activeProcesses, id)
	}
}

// ActiveJobs returns the number of renders in progress
func (r *CLIRenderer) ActiveJobs() int {
	r.processMutex.Lock()
	defer r.processMutex.Unlock()
	return len(r.activeProcesses)
}

func (r *CLIRenderer) track(id string, cmd *exec.Cmd) {
	r.processMutex.Lock()
	r.activeProcesses[id] = cmd
	r.processMutex.Unlock()
}

func (r *CLIRenderer) untrack(id string) {
	r.processMutex.Lock()
	delete(r.activeProcesses, id)
	r.processMutex.Unlock()
}

// Ensure CLIRenderer implements ports.MarkupRenderer
var _ ports.MarkupRenderer = (*CLIRenderer)(nil)
