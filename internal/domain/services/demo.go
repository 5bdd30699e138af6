package services

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

const (
	demoHighlightSlides = 3
	demoBulletsPerSlide = 3
	demoBulletRunes     = 120
)

// DemoPresentation builds a presentation without calling a generator.
// Highlights are the leading paragraphs of the extracted document text.
func DemoPresentation(doc *entities.SourceDocument, opts entities.TransformOptions) *entities.Presentation {
	opts = opts.WithDefaults()

	name := "document"
	if doc != nil && strings.TrimSpace(doc.Name) != "" {
		name = filepath.Base(doc.Name)
	}

	p := &entities.Presentation{
		Title: "Presentation on " + humanizeFileName(name),
		Slides: []entities.Slide{{
			Title: "Overview",
			Content: []string{
				fmt.Sprintf("Demo presentation generated from %s.", name),
				fmt.Sprintf("Styled for a %s audience with %s content using the %s theme.",
					opts.TargetAudience, opts.ContentDensity, entities.StyleDisplayName(opts.VisualStyle)),
			},
		}},
	}

	var paragraphs []string
	if doc != nil {
		paragraphs = demoParagraphs(doc.Text)
	}

	for i := 0; i < demoHighlightSlides && len(paragraphs) > 0; i++ {
		n := min(demoBulletsPerSlide, len(paragraphs))
		p.Slides = append(p.Slides, entities.Slide{
			Title:   fmt.Sprintf("Highlights %d", i+1),
			Content: slices.Clone(paragraphs[:n]),
			Notes:   "Demo content taken verbatim from the source document.",
		})
		paragraphs = paragraphs[n:]
	}

	p.Slides = append(p.Slides, entities.Slide{
		Title: "Next Steps",
		Content: []string{
			"Configure a Gemini API key to generate real slide content.",
			"Adjust density, audience and style to fit the talk.",
			"Export the markup to PDF or HTML.",
		},
	})

	return p
}

// demoParagraphs splits text into single-line excerpts
func demoParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		line := strings.Join(strings.Fields(block), " ")
		line = strings.TrimLeft(line, "#-*> ")
		if line == "" {
			continue
		}
		out = append(out, truncateRunes(line, demoBulletRunes))
	}
	return out
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

// humanizeFileName turns "q3_sales-report.pdf" into "Q3 Sales Report"
func humanizeFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Document"
	}
	return cases.Title(language.English).String(base)
}
