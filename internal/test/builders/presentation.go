package builders

import (
	"strconv"
	"strings"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

// PresentationBuilder helps build Presentation entities for testing
type PresentationBuilder struct {
	presentation *entities.Presentation
}

// NewPresentationBuilder creates a new presentation builder with sensible defaults
func NewPresentationBuilder() *PresentationBuilder {
	return &PresentationBuilder{
		presentation: &entities.Presentation{
			Title:  "Test Presentation",
			Slides: []entities.Slide{},
		},
	}
}

// WithTitle sets the presentation title
func (b *PresentationBuilder) WithTitle(title string) *PresentationBuilder {
	b.presentation.Title = title
	return b
}

// WithSlides replaces the presentation slides
func (b *PresentationBuilder) WithSlides(slides []entities.Slide) *PresentationBuilder {
	b.presentation.Slides = slides
	return b
}

// WithSlide adds a slide with the given title and content lines
func (b *PresentationBuilder) WithSlide(title string, content ...string) *PresentationBuilder {
	slide := NewSlideBuilder().WithTitle(title).WithContent(content...).Build()
	b.presentation.Slides = append(b.presentation.Slides, slide)
	return b
}

// WithSlideNotes adds a slide that carries speaker notes
func (b *PresentationBuilder) WithSlideNotes(title, notes string, content ...string) *PresentationBuilder {
	slide := NewSlideBuilder().WithTitle(title).WithContent(content...).WithNotes(notes).Build()
	b.presentation.Slides = append(b.presentation.Slides, slide)
	return b
}

// WithSlideCount adds the specified number of default slides
func (b *PresentationBuilder) WithSlideCount(count int) *PresentationBuilder {
	for i := 0; i < count; i++ {
		n := strconv.Itoa(len(b.presentation.Slides) + 1)
		slide := NewSlideBuilder().
			WithTitle("Topic " + n).
			WithContent("First point of topic "+n, "Second point of topic "+n).
			Build()
		b.presentation.Slides = append(b.presentation.Slides, slide)
	}
	return b
}

// Build creates the final Presentation entity
func (b *PresentationBuilder) Build() *entities.Presentation {
	slides := make([]entities.Slide, len(b.presentation.Slides))
	for i, s := range b.presentation.Slides {
		slides[i] = copySlide(s)
	}

	return &entities.Presentation{
		Title:  b.presentation.Title,
		Slides: slides,
	}
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide *entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: &entities.Slide{
			Title:   "Test Slide",
			Content: []string{"Test content"},
		},
	}
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithContent replaces the slide content lines
func (b *SlideBuilder) WithContent(lines ...string) *SlideBuilder {
	b.slide.Content = append([]string(nil), lines...)
	return b
}

// WithNotes sets the slide speaker notes
func (b *SlideBuilder) WithNotes(notes string) *SlideBuilder {
	b.slide.Notes = notes
	return b
}

// Build creates the final Slide entity
func (b *SlideBuilder) Build() entities.Slide {
	return copySlide(*b.slide)
}

func copySlide(s entities.Slide) entities.Slide {
	if s.Content != nil {
		s.Content = append([]string(nil), s.Content...)
	}
	return s
}

// Common presentation types for testing

// MinimalPresentation creates a presentation with only a title slide
func MinimalPresentation() *entities.Presentation {
	return NewPresentationBuilder().
		WithTitle("Minimal").
		WithSlide("Minimal", "A one slide deck").
		Build()
}

// LargePresentation creates a presentation with many slides
func LargePresentation() *entities.Presentation {
	return NewPresentationBuilder().
		WithTitle("Large Presentation").
		WithSlideCount(50).
		Build()
}

// GeneratedResponse renders a presentation the way a generation service
// usually answers: a chatty preamble and the deck inside an md fence.
func GeneratedResponse(p *entities.Presentation) string {
	var b strings.Builder
	b.WriteString("Here is your presentation:\n\n```md\n")
	b.WriteString("# " + p.Title + "\n\n")

	for i, slide := range p.Slides {
		if i > 0 {
			b.WriteString("---\n\n## " + slide.Title + "\n\n")
		}
		for _, line := range slide.Content {
			if i == 0 {
				b.WriteString(line + "\n")
			} else {
				b.WriteString("- " + line + "\n")
			}
		}
		if slide.Notes != "" {
			b.WriteString("<!-- Notes: " + slide.Notes + " -->\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("```\n\nLet me know if you want changes.")
	return b.String()
}
