package parser

import (
	"strings"
)

const fallbackTitlePrefix = "Presentation on "

var titleLabels = []string{"Presentation Title", "Title:"}

// ResolveTitle picks the presentation title from the generated text: a
// labelled title line first, then the first non-blank line, then a title
// synthesized from the source document.
func ResolveTitle(generated, source string) string {
	lines := strings.Split(generated, "\n")

	for _, line := range lines {
		if !containsTitleLabel(line) {
			continue
		}
		if title := cleanLabelledTitle(line); title != "" {
			return title
		}
	}

	for _, line := range lines {
		if title := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#")); title != "" {
			return title
		}
	}

	return FallbackTitle(source)
}

// FallbackTitle builds a title from the first five words of the source
func FallbackTitle(source string) string {
	words := strings.Fields(source)
	if len(words) > 5 {
		words = words[:5]
	}
	return fallbackTitlePrefix + strings.Join(words, " ")
}

func containsTitleLabel(line string) bool {
	for _, label := range titleLabels {
		if strings.Contains(line, label) {
			return true
		}
	}
	return false
}

// cleanLabelledTitle returns the text after the first label on the line.
// Heading markers and emphasis wrapped around the label are dropped, e.g.
// "## **Presentation Title:** Q3 Review", as is a "**...**" or "__...__"
// wrapper around the whole title. Anything else is kept verbatim.
func cleanLabelledTitle(line string) string {
	for _, label := range titleLabels {
		idx := strings.Index(line, label)
		if idx < 0 {
			continue
		}

		opener := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line[:idx]), "#"))
		title := strings.TrimLeft(line[idx+len(label):], " \t:")
		if isEmphasisMark(opener) {
			if strings.HasPrefix(title, opener) {
				title = title[len(opener):]
			} else {
				title = strings.TrimSuffix(strings.TrimSpace(title), opener)
			}
		}

		return unwrapEmphasis(strings.TrimSpace(title))
	}
	return ""
}

var emphasisMarks = []string{"**", "__", "*", "_"}

func isEmphasisMark(s string) bool {
	for _, mark := range emphasisMarks {
		if s == mark {
			return true
		}
	}
	return false
}

func unwrapEmphasis(title string) string {
	for _, mark := range []string{"**", "__"} {
		if len(title) > 2*len(mark) && strings.HasPrefix(title, mark) && strings.HasSuffix(title, mark) {
			return strings.TrimSpace(title[len(mark) : len(title)-len(mark)])
		}
	}
	return title
}
