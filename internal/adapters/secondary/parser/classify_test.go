package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		kind  LineKind
		text  string
		notes string
	}{
		{name: "blank", line: "   \t", kind: KindBlank},
		{name: "h1", line: "# Intro", kind: KindHeading, text: "Intro"},
		{name: "h2 indented", line: "   ## Details  ", kind: KindHeading, text: "Details"},
		{name: "bare hash", line: "##", kind: KindHeading, text: ""},
		{name: "hashtag is text", line: "#golang rocks", kind: KindPlainText, text: "#golang rocks"},
		{name: "heading with slide marker", line: "## Slide 3: Results", kind: KindHeading, text: "Results"},
		{name: "slide marker", line: "Slide 2: Overview", kind: KindSlideMarker, text: "Overview"},
		{name: "slide marker without title", line: "Slide 10:", kind: KindSlideMarker, text: ""},
		{name: "title slide marker", line: "Title Slide: Welcome", kind: KindSlideMarker, text: "Welcome"},
		{name: "conclusion marker", line: "Conclusion: Next steps", kind: KindSlideMarker, text: "Conclusion Next steps"},
		{name: "bare conclusion", line: "Conclusion:", kind: KindSlideMarker, text: "Conclusion"},
		{name: "markers are case sensitive", line: "slide 1: lower", kind: KindPlainText, text: "slide 1: lower"},
		{name: "dash bullet", line: "- point one", kind: KindBullet, text: "point one"},
		{name: "star bullet", line: "*   point two", kind: KindBullet, text: "point two"},
		{name: "bold is not a bullet", line: "**Bold** text", kind: KindPlainText, text: "**Bold** text"},
		{name: "divider", line: "---", kind: KindDivider, text: "---"},
		{name: "long divider", line: "-----", kind: KindDivider, text: "-----"},
		{name: "star divider", line: "***", kind: KindDivider, text: "***"},
		{name: "code fence", line: "```python", kind: KindCodeFence, text: "```python"},
		{name: "inline fence", line: "use ```x``` here", kind: KindCodeFence, text: "use ```x``` here"},
		{name: "comment", line: "<!-- _class: lead -->", kind: KindCommentOpener, text: "<!-- _class: lead -->"},
		{name: "notes comment", line: "<!-- Notes: say this -->", kind: KindCommentOpener, text: "<!-- Notes: say this -->", notes: "say this"},
		{name: "escaped notes", line: "<!-- Notes: a --&gt; b -->", kind: KindCommentOpener, text: "<!-- Notes: a --&gt; b -->", notes: "a --> b"},
		{name: "plain", line: "Revenue grew 10%", kind: KindPlainText, text: "Revenue grew 10%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLine(tt.line)
			assert.Equal(t, tt.kind, got.Kind, "kind %s", got.Kind)
			assert.Equal(t, tt.text, got.Text)
			assert.Equal(t, tt.notes, got.Notes)
		})
	}
}

func TestLine_StartsSlide(t *testing.T) {
	assert.True(t, ClassifyLine("# A").StartsSlide())
	assert.True(t, ClassifyLine("Slide 1: A").StartsSlide())
	assert.False(t, ClassifyLine("- A").StartsSlide())
	assert.Equal(t, "comment-opener", KindCommentOpener.String())
}
