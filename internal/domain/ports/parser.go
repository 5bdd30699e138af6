package ports

import (
	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

// PromptBuilder composes the instruction text sent to a content generator
type PromptBuilder interface {
	// Build returns the full prompt for the given options
	Build(opts entities.TransformOptions) string
}

// DeckParser turns raw generated text into a presentation. It never fails:
// degenerate input yields a placeholder slide.
type DeckParser interface {
	// ParsePresentation builds a presentation from generated text, using the
	// source document text as the last resort for the title
	ParsePresentation(generated, source string) *entities.Presentation

	// ThemeOf returns the theme directive from markup front matter
	ThemeOf(markup string) (string, bool)
}

// MarkupSerializer renders a presentation as Marp markup
type MarkupSerializer interface {
	Serialize(p *entities.Presentation, theme string) string
}
