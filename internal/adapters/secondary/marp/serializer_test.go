package marp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/docdeck/internal/adapters/secondary/parser"
	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/test/builders"
)

func demoPresentation() *entities.Presentation {
	return &entities.Presentation{
		Title: "Demo",
		Slides: []entities.Slide{
			{Title: "_", Content: []string{"sub text"}},
			{Title: "Body", Content: []string{"a", "b"}, Notes: "say this"},
		},
	}
}

func TestSerialize_Layout(t *testing.T) {
	out := Serialize(demoPresentation(), "gaia")

	expected := "---\nmarp: true\ntheme: gaia\n---\n\n" +
		"# Demo\n\n" +
		"sub text\n\n" +
		"---\n\n" +
		"## Body\n\n" +
		"- a\n" +
		"- b\n\n" +
		"<!-- Notes: say this -->\n"

	assert.Equal(t, expected, out)
	assert.True(t, strings.HasPrefix(out, "---\nmarp: true\ntheme: gaia\n---"))
	assert.False(t, strings.HasSuffix(strings.TrimSpace(out), "---"))
}

func TestSerialize_TitleSlideOnly(t *testing.T) {
	p := &entities.Presentation{
		Title:  "Solo",
		Slides: []entities.Slide{{Title: "ignored", Content: []string{"line one", "line two"}}},
	}

	assert.Equal(t, "---\nmarp: true\ntheme: uncover\n---\n\n# Solo\n\nline one\nline two\n", Serialize(p, "uncover"))
}

func TestSerialize_Defaults(t *testing.T) {
	t.Run("empty theme", func(t *testing.T) {
		out := Serialize(demoPresentation(), "  ")
		assert.Contains(t, out, "theme: default\n")
	})

	t.Run("no slides", func(t *testing.T) {
		out := Serialize(&entities.Presentation{Title: "Empty"}, "gaia")
		assert.Equal(t, "---\nmarp: true\ntheme: gaia\n---\n\n# Empty\n", out)
	})

	t.Run("nil presentation", func(t *testing.T) {
		out := Serialize(nil, "")
		assert.Equal(t, "---\nmarp: true\ntheme: default\n---\n\n# Untitled Presentation\n", out)
	})

	t.Run("empty titles", func(t *testing.T) {
		p := &entities.Presentation{Slides: []entities.Slide{
			{Content: []string{"intro"}},
			{Content: []string{"x"}},
		}}
		out := Serialize(p, "gaia")
		assert.Contains(t, out, "# Untitled Presentation\n")
		assert.Contains(t, out, "## Slide 2\n")
	})

	t.Run("multi-line values are folded", func(t *testing.T) {
		p := &entities.Presentation{Title: "Two\nLines", Slides: []entities.Slide{
			{Content: []string{"a"}},
			{Title: "T", Content: []string{"first\r\nsecond"}, Notes: "n1\nn2"},
		}}
		out := Serialize(p, "gaia")
		assert.Contains(t, out, "# Two Lines\n")
		assert.Contains(t, out, "- first second\n")
		assert.Contains(t, out, "<!-- Notes: n1 n2 -->")
	})

	t.Run("notes cannot close the comment", func(t *testing.T) {
		p := demoPresentation()
		p.Slides[1].Notes = "then --> done"
		out := Serialize(p, "gaia")
		assert.Contains(t, out, "<!-- Notes: then --&gt; done -->")
	})
}

func TestSerialize_Properties(t *testing.T) {
	decks := []*entities.Presentation{
		demoPresentation(),
		builders.NewPresentationBuilder().WithSlideCount(6).Build(),
		builders.NewPresentationBuilder().WithTitle("Notes").
			WithSlide("Cover", "intro").
			WithSlideNotes("Detail", "remember", "x", "y", "z").
			Build(),
		{Title: "Empty"},
		{Title: "Rules", Slides: []entities.Slide{{Content: []string{"---"}}}},
		{Title: "Rules", Slides: []entities.Slide{
			{Content: []string{"above", "***", "= =", "below"}},
			{Title: "Body", Content: []string{"x"}},
		}},
	}

	for _, p := range decks {
		for _, theme := range []string{"default", "gaia", "uncover", ""} {
			out := Serialize(p, theme)

			assert.Equal(t, out, Serialize(p, theme), "serialization must be deterministic")
			assert.False(t, strings.HasSuffix(strings.TrimSpace(out), "---"), "no trailing separator")

			lines := strings.Split(out, "\n")
			separators := 2 + max(len(p.Slides)-1, 0)
			assert.Equal(t, separators, countBreaks(lines), "one break per later slide")
			for i := 1; i < len(p.Slides); i++ {
				cursor := indexOf(lines, "## "+p.Slides[i].Title, 0)
				require.GreaterOrEqual(t, cursor, 0, "slide %d heading", i)
				for _, item := range p.Slides[i].Content {
					next := indexOf(lines, "- "+item, cursor+1)
					require.Greater(t, next, cursor, "bullet %q of slide %d out of order", item, i)
					cursor = next
				}
			}
		}
	}
}

func TestSerialize_ParserRoundTrip(t *testing.T) {
	original := builders.NewPresentationBuilder().
		WithTitle("Round Trip").
		WithSlide("Round Trip", "A short description").
		WithSlideNotes("Findings", "mention --> arrows", "one", "two").
		WithSlide("Next Steps", "ship it").
		Build()

	markup := Serialize(original, "gaia")
	parsed := parser.NewParser().ParsePresentation(markup, "")

	assert.Equal(t, original.Title, parsed.Title)
	assert.Equal(t, original.Slides, parsed.Slides)
	assert.Equal(t, markup, Serialize(parsed, "gaia"))

	theme, ok := parser.FrontMatterTheme(markup)
	assert.True(t, ok)
	assert.Equal(t, "gaia", theme)
}

func TestSerialize_EscapesIntroRules(t *testing.T) {
	p := parser.NewParser().ParsePresentation("# Intro\n- ---", "src")
	require.Equal(t, []string{"---"}, p.Slides[0].Content)

	out := Serialize(p, "gaia")

	assert.Equal(t, "---\nmarp: true\ntheme: gaia\n---\n\n# Intro\n\n\\---\n", out)

	tests := map[string]string{
		"---":      `\---`,
		"- - -":    `\- - -`,
		"___":      `\___`,
		"==":       `\==`,
		"-":        `\-`,
		"- item":   "- item",
		"--> flow": "--> flow",
		"*bold*":   "*bold*",
		"":         "",
	}
	for in, want := range tests {
		assert.Equal(t, want, escapeBlockMarker(in), "input %q", in)
	}
}

// countBreaks counts lines Marp would read as a thematic break
func countBreaks(lines []string) int {
	n := 0
	for _, line := range lines {
		trimmed := strings.ReplaceAll(line, " ", "")
		if len(trimmed) >= 3 && strings.Trim(trimmed, trimmed[:1]) == "" && strings.ContainsAny(trimmed[:1], "-*_") {
			n++
		}
	}
	return n
}

func indexOf(lines []string, target string, from int) int {
	for i := from; i < len(lines); i++ {
		if lines[i] == target {
			return i
		}
	}
	return -1
}
