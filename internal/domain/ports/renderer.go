package ports

import (
	"context"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

// MarkupRenderer converts Marp markup into a binary artifact
type MarkupRenderer interface {
	// Render produces the given format using the named theme
	Render(ctx context.Context, markup, theme string, format entities.OutputFormat) ([]byte, error)

	// Available reports whether the renderer can run at all
	Available(ctx context.Context) error
}

// RenderedSlide is the HTML preview of one slide
type RenderedSlide struct {
	Index     int    `json:"index"`
	Title     string `json:"title"`
	HTML      string `json:"html"`
	NotesHTML string `json:"notesHtml,omitempty"`
}

// SlidePreviewer renders a presentation into per-slide HTML for display
type SlidePreviewer interface {
	Preview(p *entities.Presentation) ([]RenderedSlide, error)
}
