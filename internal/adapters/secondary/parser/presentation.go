package parser

import (
	"strings"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

// ParsePresentation unwraps the generated answer, drops any front matter the
// generator added and builds the presentation model
func (p *Parser) ParsePresentation(generated, source string) *entities.Presentation {
	body := ExtractMarkdown(generated)
	if frontmatter, rest := ExtractFrontMatter(body); frontmatter != nil {
		body = strings.TrimSpace(rest)
	}

	return &entities.Presentation{
		Title:  ResolveTitle(body, source),
		Slides: p.ParseSlides(body),
	}
}

// ThemeOf returns the theme directive carried by markup
func (p *Parser) ThemeOf(markup string) (string, bool) {
	return FrontMatterTheme(markup)
}

// Ensure Parser implements ports.DeckParser
var _ ports.DeckParser = (*Parser)(nil)
