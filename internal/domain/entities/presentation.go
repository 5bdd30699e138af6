package entities

import (
	"errors"
	"fmt"
)

// Presentation is the intermediate model between generated text and markup.
// The first slide is the title slide.
type Presentation struct {
	// Title is the presentation title
	Title string `json:"title"`

	// Slides contains all slides in order
	Slides []Slide `json:"slides"`
}

// Validate ensures the presentation has a title and valid slides
func (p *Presentation) Validate() error {
	if p.Title == "" {
		return errors.New("presentation title is required")
	}

	if len(p.Slides) == 0 {
		return errors.New("presentation must have at least one slide")
	}

	for i, slide := range p.Slides {
		if err := slide.Validate(); err != nil {
			return fmt.Errorf("slide %d validation failed: %w", i+1, err)
		}
	}

	return nil
}

// GetSlideByIndex returns a slide by its index (0-based)
func (p *Presentation) GetSlideByIndex(index int) (*Slide, error) {
	if index < 0 || index >= len(p.Slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(p.Slides)-1)
	}
	return &p.Slides[index], nil
}

// SlideCount returns the total number of slides
func (p *Presentation) SlideCount() int {
	return len(p.Slides)
}

// TitleSlide returns the first slide, or nil for an empty presentation
func (p *Presentation) TitleSlide() *Slide {
	if len(p.Slides) == 0 {
		return nil
	}
	return &p.Slides[0]
}
