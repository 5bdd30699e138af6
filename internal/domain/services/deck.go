package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

// Status messages sent while a deck is generated
const (
	StatusProcessing = "Processing document content..."
	StatusDemo       = "No generator configured, building a demo presentation..."
	StatusGenerating = "Generating slide content with AI..."
	StatusParsing    = "Structuring slides..."
	StatusMarkup     = "Building presentation markup..."
	StatusReady      = "Presentation ready"
)

// DeckDependencies groups the collaborators of DeckService
type DeckDependencies struct {
	Extractor  ports.DocumentExtractor
	Generator  ports.ContentGenerator // nil means demo only
	Prompts    ports.PromptBuilder
	Parser     ports.DeckParser
	Serializer ports.MarkupSerializer
	Renderer   ports.MarkupRenderer
	Previewer  ports.SlidePreviewer
	Clock      ports.TimeProvider
	Defaults   entities.TransformOptions
	Logger     *slog.Logger
}

// DeckService turns documents into presentations and renders markup
type DeckService struct {
	extractor  ports.DocumentExtractor
	generator  ports.ContentGenerator
	prompts    ports.PromptBuilder
	parser     ports.DeckParser
	serializer ports.MarkupSerializer
	renderer   ports.MarkupRenderer
	previewer  ports.SlidePreviewer
	clock      ports.TimeProvider
	defaults   entities.TransformOptions
	logger     *slog.Logger
}

// NewDeckService creates a deck service
func NewDeckService(deps DeckDependencies) *DeckService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := deps.Clock
	if clock == nil {
		clock = ports.NewRealTimeProvider()
	}

	return &DeckService{
		extractor:  deps.Extractor,
		generator:  deps.Generator,
		prompts:    deps.Prompts,
		parser:     deps.Parser,
		serializer: deps.Serializer,
		renderer:   deps.Renderer,
		previewer:  deps.Previewer,
		clock:      clock,
		defaults:   deps.Defaults.WithDefaults(),
		logger:     logger.With("service", "deck"),
	}
}

// Generate extracts the document, asks the generator for slide content and
// turns the answer into a presentation and Marp markup. Without a usable
// generator a demo presentation is built from the document instead.
func (s *DeckService) Generate(ctx context.Context, req ports.GenerateRequest, status ports.StatusFunc) (*entities.GenerationResult, error) {
	notify := func(message string) {
		if status != nil {
			status(message)
		}
	}

	opts, err := s.resolveOptions(req.Options)
	if err != nil {
		return nil, err
	}

	if len(req.Data) == 0 {
		return nil, entities.ErrEmptyDocument
	}

	notify(StatusProcessing)

	doc, err := s.extractor.Extract(ctx, req.FileName, req.Data)
	if err != nil {
		return nil, fmt.Errorf("extracting document: %w", err)
	}

	logger := s.logger.With(
		slog.String("document", doc.Name),
		slog.String("mime_type", doc.MIMEType),
		slog.String("density", string(opts.ContentDensity)),
		slog.String("audience", string(opts.TargetAudience)),
		slog.String("style", opts.VisualStyle))

	result := &entities.GenerationResult{
		ID:    uuid.NewString(),
		Theme: opts.VisualStyle,
	}

	if reason := s.demoReason(req); reason != nil {
		logger.Warn("generating demo presentation", slog.String("reason", reason.Error()))
		notify(StatusDemo)

		result.Presentation = DemoPresentation(doc, opts)
		result.DemoMode = true
		result.Generator = entities.ProviderDemo
	} else {
		presentation, err := s.generate(ctx, logger, doc, opts, notify)
		if err != nil {
			return nil, err
		}
		result.Presentation = presentation
		result.Generator = s.generator.Name()
	}

	notify(StatusMarkup)
	result.Markup = s.serializer.Serialize(result.Presentation, opts.VisualStyle)
	result.GeneratedAt = s.clock.Now()

	logger.Info("presentation generated",
		slog.String("id", result.ID),
		slog.Int("slides", result.Presentation.SlideCount()),
		slog.Bool("demo", result.DemoMode))

	notify(StatusReady)
	return result, nil
}

func (s *DeckService) generate(ctx context.Context, logger *slog.Logger, doc *entities.SourceDocument, opts entities.TransformOptions, notify ports.StatusFunc) (*entities.Presentation, error) {
	prompt := s.prompts.Build(opts)

	notify(StatusGenerating)
	start := s.clock.Now()

	text, err := s.generator.Generate(ctx, doc, prompt)
	if err != nil {
		logger.Error("generation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("generating slides: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, entities.ErrEmptyResponse
	}

	logger.Debug("generator answered",
		slog.Duration("duration", s.clock.Now().Sub(start)),
		slog.Int("length", len(text)))

	notify(StatusParsing)

	source := doc.Text
	if strings.TrimSpace(source) == "" {
		source = doc.Name
	}

	return s.parser.ParsePresentation(text, source), nil
}

// demoReason returns why the generator is skipped, nil when it is used
func (s *DeckService) demoReason(req ports.GenerateRequest) error {
	switch {
	case req.ForceDemo:
		return errors.New("demo mode requested")
	case s.generator == nil:
		return entities.ErrGeneratorUnavailable
	default:
		return s.generator.Available()
	}
}

// resolveOptions fills empty request fields from the configured defaults
func (s *DeckService) resolveOptions(opts entities.TransformOptions) (entities.TransformOptions, error) {
	if strings.TrimSpace(string(opts.ContentDensity)) == "" {
		opts.ContentDensity = s.defaults.ContentDensity
	}
	if strings.TrimSpace(string(opts.TargetAudience)) == "" {
		opts.TargetAudience = s.defaults.TargetAudience
	}
	if strings.TrimSpace(opts.VisualStyle) == "" {
		opts.VisualStyle = s.defaults.VisualStyle
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("%w: %v", entities.ErrInvalidOptions, err)
	}

	return opts.WithDefaults(), nil
}

// Render converts markup into the requested format. An empty theme falls
// back to the markup's own front matter, then to "default".
func (s *DeckService) Render(ctx context.Context, req ports.RenderRequest) (*ports.RenderedDeck, error) {
	if strings.TrimSpace(req.Markup) == "" {
		return nil, entities.ErrEmptyMarkup
	}

	format, err := entities.ParseOutputFormat(string(req.Format))
	if err != nil {
		return nil, err
	}

	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		if fromMarkup, ok := s.parser.ThemeOf(req.Markup); ok {
			theme = fromMarkup
		} else {
			theme = entities.DefaultVisualStyle
		}
	}

	start := s.clock.Now()
	data, err := s.renderer.Render(ctx, req.Markup, theme, format)
	if err != nil {
		s.logger.Error("render failed",
			slog.String("format", string(format)),
			slog.String("theme", theme),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("rendering markup: %w", err)
	}

	s.logger.Info("markup rendered",
		slog.String("format", string(format)),
		slog.String("theme", theme),
		slog.Int("bytes", len(data)),
		slog.Duration("duration", s.clock.Now().Sub(start)))

	return &ports.RenderedDeck{
		Data:     data,
		Format:   format,
		FileName: "presentation." + format.Extension(),
	}, nil
}

// Preview renders per-slide HTML for display
func (s *DeckService) Preview(p *entities.Presentation) ([]ports.RenderedSlide, error) {
	if s.previewer == nil {
		return nil, errors.New("no slide previewer configured")
	}
	return s.previewer.Preview(p)
}

// Options returns the option catalogue with the configured defaults
func (s *DeckService) Options() ports.OptionsCatalog {
	styles := make([]entities.VisualStyle, len(entities.VisualStyles))
	copy(styles, entities.VisualStyles)

	densities := make([]entities.ContentDensity, len(entities.ContentDensities))
	copy(densities, entities.ContentDensities)

	audiences := make([]entities.TargetAudience, len(entities.TargetAudiences))
	copy(audiences, entities.TargetAudiences)

	return ports.OptionsCatalog{
		Styles:    styles,
		Densities: densities,
		Audiences: audiences,
		Defaults:  s.defaults,
	}
}

// GeneratorName names the backend Generate will use
func (s *DeckService) GeneratorName() string {
	if s.generator == nil || s.generator.Available() != nil {
		return entities.ProviderDemo
	}
	return s.generator.Name()
}

// RendererStatus reports whether markup can be rendered
func (s *DeckService) RendererStatus(ctx context.Context) error {
	if s.renderer == nil {
		return entities.ErrRendererUnavailable
	}
	return s.renderer.Available(ctx)
}

// Ensure DeckService implements ports.DeckService
var _ ports.DeckService = (*DeckService)(nil)
