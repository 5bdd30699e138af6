package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

const (
	providerName = "gemini"
	defaultModel = "gemini-1.5-flash"
)

// contentModel is the part of *genai.GenerativeModel the generator uses
type contentModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// RetryConfig defines retry behavior for generation calls
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig returns the retry policy used when none is configured
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    2,
		InitialDelay:  time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2,
	}
}

// Generator calls the Gemini API
type Generator struct {
	client  *genai.Client
	model   contentModel
	name    string
	timeout time.Duration
	retry   RetryConfig
	clock   ports.TimeProvider
	logger  *slog.Logger
}

// NewGenerator creates a Gemini generator. Without an API key the generator
// is created but reports itself unavailable.
func NewGenerator(ctx context.Context, config entities.GeneratorConfig, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	modelName := config.Model
	if modelName == "" {
		modelName = defaultModel
	}

	retry := DefaultRetryConfig()
	retry.MaxRetries = config.MaxRetries

	g := &Generator{
		name:    modelName,
		timeout: config.GetTimeout(),
		retry:   retry,
		clock:   ports.NewRealTimeProvider(),
		logger:  logger.With("component", "gemini", slog.String("model", modelName)),
	}

	if !config.HasAPIKey() {
		return g, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(config.Temperature)
	if config.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(config.MaxOutputTokens)
	}

	g.client = client
	g.model = model
	return g, nil
}

// Model returns the configured model name
func (g *Generator) Model() string {
	return g.name
}

// Name identifies the provider
func (g *Generator) Name() string {
	return providerName
}

// Available reports whether an API key was configured
func (g *Generator) Available() error {
	if g.model == nil {
		return entities.ErrGeneratorUnavailable
	}
	return nil
}

// Generate sends the document and prompt and returns the answer text. PDFs
// are attached inline; other documents are sent as extracted text.
func (g *Generator) Generate(ctx context.Context, doc *entities.SourceDocument, prompt string) (string, error) {
	if err := g.Available(); err != nil {
		return "", err
	}

	parts, err := buildParts(doc, prompt)
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt <= g.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := g.backoff(attempt)
			g.logger.Warn("retrying generation",
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
				slog.String("error", lastErr.Error()))

			select {
			case <-ctx.Done():
				return "", fmt.Errorf("waiting to retry: %w", ctx.Err())
			case <-g.clock.After(delay):
			}
		}

		text, err := g.generateOnce(ctx, parts)
		if err == nil {
			return text, nil
		}

		lastErr = err
		if !entities.IsRetryableGeneration(err) || ctx.Err() != nil {
			break
		}
	}

	return "", lastErr
}

func (g *Generator) generateOnce(ctx context.Context, parts []genai.Part) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := g.clock.Now()
	resp, err := g.model.GenerateContent(callCtx, parts...)
	if err != nil {
		return "", &entities.GenerationError{
			Provider:  providerName,
			Retryable: isRetryable(ctx, err),
			Cause:     err,
		}
	}

	text := responseText(resp)
	g.logger.Info("generation completed",
		slog.Duration("duration", g.clock.Now().Sub(start)),
		slog.Int("response_length", len(text)))

	return text, nil
}

// backoff returns the delay before the given retry attempt (1-based)
func (g *Generator) backoff(attempt int) time.Duration {
	delay := float64(g.retry.InitialDelay) * math.Pow(g.retry.BackoffFactor, float64(attempt-1))
	if delay > float64(g.retry.MaxDelay) {
		return g.retry.MaxDelay
	}
	return time.Duration(delay)
}

// Close releases the underlying client
func (g *Generator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func buildParts(doc *entities.SourceDocument, prompt string) ([]genai.Part, error) {
	if doc == nil {
		return nil, entities.ErrEmptyDocument
	}

	if doc.IsPDF() {
		if len(doc.Data) == 0 {
			return nil, entities.ErrEmptyDocument
		}
		return []genai.Part{
			genai.Blob{MIMEType: "application/pdf", Data: doc.Data},
			genai.Text(prompt),
		}, nil
	}

	if !doc.HasText() {
		return nil, entities.ErrEmptyDocument
	}

	return []genai.Part{
		genai.Text(fmt.Sprintf("Document %q:\n\n%s", doc.Name, doc.Text)),
		genai.Text(prompt),
	}, nil
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// isRetryable treats rate limits, server errors and per-call timeouts as
// transient. Cancellation of the parent context is final.
func isRetryable(parent context.Context, err error) bool {
	if parent.Err() != nil {
		return false
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	return false
}

// Ensure Generator implements ports.ContentGenerator
var _ ports.ContentGenerator = (*Generator)(nil)
