package parser

import (
	"regexp"
	"strings"
)

// LineKind is the classification of one trimmed line of generated text
type LineKind int

const (
	KindBlank LineKind = iota
	KindHeading
	KindSlideMarker
	KindBullet
	KindPlainText
	KindDivider
	KindCodeFence
	KindCommentOpener
)

// String returns the kind name
func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindHeading:
		return "heading"
	case KindSlideMarker:
		return "slide-marker"
	case KindBullet:
		return "bullet"
	case KindPlainText:
		return "plain-text"
	case KindDivider:
		return "divider"
	case KindCodeFence:
		return "code-fence"
	case KindCommentOpener:
		return "comment-opener"
	default:
		return "unknown"
	}
}

// Line is a classified line. Text holds the payload for the kind: the
// derived title for headings and slide markers, the bullet text without
// its marker, or the trimmed line otherwise.
type Line struct {
	Kind LineKind
	Text string

	// Notes is set for single-line "<!-- Notes: ... -->" comments
	Notes string
}

// StartsSlide reports whether the line opens a new slide
func (l Line) StartsSlide() bool {
	return l.Kind == KindHeading || l.Kind == KindSlideMarker
}

var (
	headingRe     = regexp.MustCompile(`^#+(\s|$)`)
	slideNumberRe = regexp.MustCompile(`^Slide\s+\d+:`)
	dividerRe     = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})$`)
	notesRe       = regexp.MustCompile(`^<!--\s*Notes:\s*(.*?)\s*-->$`)
)

const (
	titleSlideMarker = "Title Slide:"
	conclusionMarker = "Conclusion:"
)

// ClassifyLine assigns a kind to a single line of generated text
func ClassifyLine(raw string) Line {
	line := strings.TrimSpace(raw)

	switch {
	case line == "":
		return Line{Kind: KindBlank}

	case headingRe.MatchString(line):
		title := strings.TrimSpace(strings.TrimLeft(line, "#"))
		if stripped, ok := stripSlideMarker(title); ok {
			title = stripped
		}
		return Line{Kind: KindHeading, Text: title}

	case isSlideMarker(line):
		title, _ := stripSlideMarker(line)
		return Line{Kind: KindSlideMarker, Text: title}

	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return Line{Kind: KindBullet, Text: strings.TrimSpace(line[2:])}

	case dividerRe.MatchString(line):
		return Line{Kind: KindDivider, Text: line}

	case strings.Contains(line, fenceMarker), strings.HasPrefix(line, "~~~"):
		return Line{Kind: KindCodeFence, Text: line}

	case strings.HasPrefix(line, "<!--"):
		classified := Line{Kind: KindCommentOpener, Text: line}
		if m := notesRe.FindStringSubmatch(line); m != nil {
			classified.Notes = unescapeNotes(m[1])
		}
		return classified

	default:
		return Line{Kind: KindPlainText, Text: line}
	}
}

func isSlideMarker(line string) bool {
	return slideNumberRe.MatchString(line) ||
		strings.HasPrefix(line, titleSlideMarker) ||
		strings.HasPrefix(line, conclusionMarker)
}

// stripSlideMarker removes a leading slide marker. "Slide <n>:" and
// "Title Slide:" disappear entirely; "Conclusion:" becomes "Conclusion".
func stripSlideMarker(line string) (string, bool) {
	switch {
	case slideNumberRe.MatchString(line):
		return strings.TrimSpace(slideNumberRe.ReplaceAllString(line, "")), true
	case strings.HasPrefix(line, titleSlideMarker):
		return strings.TrimSpace(strings.TrimPrefix(line, titleSlideMarker)), true
	case strings.HasPrefix(line, conclusionMarker):
		return strings.TrimSpace("Conclusion" + strings.TrimPrefix(line, conclusionMarker)), true
	default:
		return line, false
	}
}

// unescapeNotes reverses the escaping applied when notes are serialized
// into an HTML comment.
func unescapeNotes(notes string) string {
	return strings.ReplaceAll(notes, "--&gt;", "-->")
}
