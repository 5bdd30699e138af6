package prompt

import (
	"fmt"
	"strings"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

const transformationFormat = `You are a presentation designer specializing in Marp markdown. Your task is to transform documents into visually engaging slides.

I need you to create a Marp markdown presentation with these specifications:

Visual Style: %s (%s)

%s

%s

DESIGN GUIDELINES
1. Use a strong opening. Begin with an engaging title slide: include a main heading, a short description, and source attribution if applicable.
2. Prioritize visual clarity. Apply visual hierarchy using headings, bullet points, spacing, and bold text to guide the viewer's attention effectively.
3. Respect content boundaries. Ensure all text and visuals fit neatly within the slide margins; avoid overcrowding.
4. Format code properly. For code snippets longer than a few words, always use dedicated code blocks instead of inline text.
5. Avoid empty endings. Do not finish your presentation with a separator (---) or placeholder that would leave an unintended blank slide.
6. Be consistent. Maintain a uniform font style, color palette, and alignment throughout the presentation.
7. Focus on creating a visually balanced design with appropriate spacing and professional aesthetics.
8. Put speaker notes for a slide on a single line as <!-- Notes: your notes -->.

Your response should be formatted within markdown code fences like this:

` + "```md\n[Your slide content here]\n```"

// Builder composes the transformation prompt from transform options
type Builder struct{}

// NewBuilder creates a prompt builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Build returns the prompt for opts. Empty options take their defaults and
// unknown enumeration values fall back to general instructions.
func (b *Builder) Build(opts entities.TransformOptions) string {
	opts = opts.WithDefaults()
	styleID := strings.TrimSpace(opts.VisualStyle)

	return fmt.Sprintf(transformationFormat,
		entities.StyleDisplayName(styleID),
		styleID,
		DensityInstruction(opts.ContentDensity),
		AudienceInstruction(opts.TargetAudience),
	)
}

// Ensure Builder implements ports.PromptBuilder
var _ ports.PromptBuilder = (*Builder)(nil)
