package marp

import (
	"strings"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

const (
	separator        = "---"
	defaultTheme     = "default"
	untitledDeckName = "Untitled Presentation"
)

// Serializer renders presentations as Marp markdown
type Serializer struct{}

// NewSerializer creates a Marp serializer
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Serialize renders p with the given theme
func (s *Serializer) Serialize(p *entities.Presentation, theme string) string {
	return Serialize(p, theme)
}

// Serialize renders the presentation as Marp markup. Output is a pure
// function of its arguments. The first slide only contributes its content,
// printed as a description under the presentation title; every later slide
// gets a separator, a second-level heading, bullets and optional notes.
func Serialize(p *entities.Presentation, theme string) string {
	theme = singleLine(theme)
	if theme == "" {
		theme = defaultTheme
	}

	var b strings.Builder
	b.WriteString(separator + "\n")
	b.WriteString("marp: true\n")
	b.WriteString("theme: " + theme + "\n")
	b.WriteString(separator + "\n\n")

	if p == nil {
		b.WriteString("# " + untitledDeckName + "\n")
		return b.String()
	}

	title := singleLine(p.Title)
	if title == "" {
		title = untitledDeckName
	}
	b.WriteString("# " + title + "\n")

	if len(p.Slides) == 0 {
		return b.String()
	}

	if intro := p.Slides[0].Content; len(intro) > 0 {
		b.WriteString("\n")
		for _, line := range intro {
			b.WriteString(escapeBlockMarker(singleLine(line)) + "\n")
		}
	}

	for i := 1; i < len(p.Slides); i++ {
		slide := p.Slides[i]
		heading := singleLine(slide.Title)
		if heading == "" {
			heading = entities.DefaultSlideTitle(i)
		}

		b.WriteString("\n" + separator + "\n\n")
		b.WriteString("## " + heading + "\n")

		if len(slide.Content) > 0 {
			b.WriteString("\n")
			for _, item := range slide.Content {
				b.WriteString("- " + singleLine(item) + "\n")
			}
		}

		if slide.HasNotes() {
			b.WriteString("\n<!-- Notes: " + EscapeNotes(singleLine(slide.Notes)) + " -->\n")
		}
	}

	return b.String()
}

// EscapeNotes keeps notes from closing their HTML comment early
func EscapeNotes(notes string) string {
	return strings.ReplaceAll(notes, "-->", "--&gt;")
}

// escapeBlockMarker keeps an intro line that consists only of "-", "*", "_"
// or "=" from being read as a slide break or a setext underline
func escapeBlockMarker(line string) string {
	if line == "" || !strings.ContainsRune("-*_=", rune(line[0])) {
		return line
	}
	if strings.Trim(line, string(line[0])+" \t") != "" {
		return line
	}
	return `\` + line
}

// singleLine folds line breaks so one value always maps to one markup line
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// Ensure Serializer implements ports.MarkupSerializer
var _ ports.MarkupSerializer = (*Serializer)(nil)
