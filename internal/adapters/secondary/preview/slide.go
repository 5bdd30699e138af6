package preview

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

const untitledDeckName = "Untitled Presentation"

// Renderer converts presentations into sanitized per-slide HTML
type Renderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewRenderer creates a slide preview renderer
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	return &Renderer{
		md:        md,
		sanitizer: createHTMLSanitizer(),
	}
}

// createHTMLSanitizer creates a restrictive HTML sanitizer for slide content.
// Raw HTML is allowed through goldmark and filtered here.
func createHTMLSanitizer() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("p", "br", "hr")
	p.AllowElements("strong", "b", "em", "i", "u", "s", "del", "mark")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("blockquote", "pre", "code")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("class", "id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "p", "div", "span")

	return p
}

// Preview renders every slide of p. The first slide shows the presentation
// title over its content; the rest show their heading over a bullet list.
func (r *Renderer) Preview(p *entities.Presentation) ([]ports.RenderedSlide, error) {
	if p == nil {
		return nil, errors.New("presentation cannot be nil")
	}

	rendered := make([]ports.RenderedSlide, 0, len(p.Slides))
	for i := range p.Slides {
		slide, err := r.RenderSlide(p, i)
		if err != nil {
			return nil, fmt.Errorf("rendering slide %d: %w", i+1, err)
		}
		rendered = append(rendered, *slide)
	}

	return rendered, nil
}

// RenderSlide renders the slide at index
func (r *Renderer) RenderSlide(p *entities.Presentation, index int) (*ports.RenderedSlide, error) {
	slide, err := p.GetSlideByIndex(index)
	if err != nil {
		return nil, err
	}

	title, source := slideMarkdown(p, slide, index)

	body, err := r.convert(source)
	if err != nil {
		return nil, err
	}

	notes, err := r.renderNotes(slide.Notes)
	if err != nil {
		return nil, err
	}

	return &ports.RenderedSlide{
		Index:     index,
		Title:     r.sanitizer.Sanitize(title),
		HTML:      body,
		NotesHTML: notes,
	}, nil
}

// slideMarkdown returns the display title and markdown source for a slide
func slideMarkdown(p *entities.Presentation, slide *entities.Slide, index int) (string, string) {
	var b strings.Builder

	if index == 0 {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			title = untitledDeckName
		}
		b.WriteString("# " + title + "\n")
		for _, line := range slide.Content {
			b.WriteString("\n" + strings.TrimSpace(line) + "\n")
		}
		return title, b.String()
	}

	title := strings.TrimSpace(slide.Title)
	if title == "" {
		title = entities.DefaultSlideTitle(index)
	}
	b.WriteString("## " + title + "\n")
	if len(slide.Content) > 0 {
		b.WriteString("\n")
		for _, item := range slide.Content {
			b.WriteString("- " + strings.TrimSpace(item) + "\n")
		}
	}
	return title, b.String()
}

func (r *Renderer) convert(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return r.sanitizer.Sanitize(buf.String()), nil
}

// renderNotes converts speaker notes to HTML
func (r *Renderer) renderNotes(notes string) (string, error) {
	if strings.TrimSpace(notes) == "" {
		return "", nil
	}
	return r.convert(notes)
}

// Ensure Renderer implements ports.SlidePreviewer
var _ ports.SlidePreviewer = (*Renderer)(nil)
