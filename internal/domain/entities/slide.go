package entities

import (
	"errors"
	"strconv"
	"strings"
)

// Slide is one slide of a generated deck
type Slide struct {
	// Title is the slide heading, never empty once parsed
	Title string `json:"title"`

	// Content holds the slide's bullet or body lines in display order
	Content []string `json:"content"`

	// Notes contains optional speaker notes
	Notes string `json:"notes,omitempty"`
}

// Validate ensures the slide has a title and at least one content line
func (s *Slide) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("slide title cannot be empty")
	}

	if len(s.Content) == 0 {
		return errors.New("slide content cannot be empty")
	}

	return nil
}

// HasNotes returns true if the slide has speaker notes
func (s *Slide) HasNotes() bool {
	return strings.TrimSpace(s.Notes) != ""
}

// DefaultSlideTitle returns the generated title for the slide at the given
// 0-based position.
func DefaultSlideTitle(index int) string {
	return "Slide " + strconv.Itoa(index+1)
}
