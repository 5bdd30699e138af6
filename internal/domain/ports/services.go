package ports

import (
	"context"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

// StatusFunc receives human readable progress messages during generation
type StatusFunc func(message string)

// GenerateRequest asks for a deck built from an uploaded document
type GenerateRequest struct {
	FileName string
	Data     []byte
	Options  entities.TransformOptions

	// ForceDemo skips the generator even when one is configured
	ForceDemo bool
}

// RenderRequest asks for markup to be rendered into a binary format
type RenderRequest struct {
	Markup string
	Theme  string
	Format entities.OutputFormat
}

// RenderedDeck is a rendered binary artifact
type RenderedDeck struct {
	Data     []byte
	Format   entities.OutputFormat
	FileName string
}

// OptionsCatalog lists the choices offered to users
type OptionsCatalog struct {
	Styles    []entities.VisualStyle    `json:"styles"`
	Densities []entities.ContentDensity `json:"densities"`
	Audiences []entities.TargetAudience `json:"audiences"`
	Defaults  entities.TransformOptions `json:"defaults"`
}

// DeckService is the application service behind the CLI and HTTP adapters
type DeckService interface {
	// Generate turns a document into a presentation and its markup
	Generate(ctx context.Context, req GenerateRequest, status StatusFunc) (*entities.GenerationResult, error)

	// Render converts markup into PDF or HTML
	Render(ctx context.Context, req RenderRequest) (*RenderedDeck, error)

	// Preview renders a presentation into per-slide HTML
	Preview(p *entities.Presentation) ([]RenderedSlide, error)

	// Options returns the option catalogue with configured defaults
	Options() OptionsCatalog

	// GeneratorName names the active generator, "demo" when none is usable
	GeneratorName() string

	// RendererStatus reports whether the markup renderer can run
	RendererStatus(ctx context.Context) error
}
