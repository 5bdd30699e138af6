package parser

import (
	"strings"
)

const fenceMarker = "```"

// ExtractMarkdown returns the trimmed body of the first fenced block labelled
// md, markdown or left unlabelled. Blocks with other labels are skipped.
// Without such a block the trimmed input is returned, so the function is
// idempotent.
func ExtractMarkdown(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	inOther := false
	for i, line := range lines {
		label, ok := fenceLabel(line)
		if !ok {
			continue
		}

		if inOther {
			inOther = false
			continue
		}

		if !isMarkdownLabel(label) {
			inOther = true
			continue
		}

		if body, found := fenceBody(lines[i+1:]); found {
			return body
		}
	}

	return strings.TrimSpace(text)
}

// fenceBody collects lines up to the fence closing the markdown block. Code
// blocks opened inside it with their own label are kept as content. A block
// that is never closed runs to the end of input.
func fenceBody(lines []string) (string, bool) {
	nested := false
	end := len(lines)

	for i, line := range lines {
		label, ok := fenceLabel(line)
		if !ok {
			continue
		}
		if nested {
			nested = false
			continue
		}
		if label != "" && !isMarkdownLabel(label) {
			nested = true
			continue
		}
		end = i
		break
	}

	body := strings.TrimSpace(strings.Join(lines[:end], "\n"))
	return body, body != "" || end < len(lines)
}

// fenceLabel reports whether line is a fence delimiter and returns its info
// string label in lower case.
func fenceLabel(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, fenceMarker) {
		return "", false
	}

	info := strings.TrimLeft(trimmed, "`")
	if fields := strings.Fields(info); len(fields) > 0 {
		return strings.ToLower(fields[0]), true
	}
	return "", true
}

func isMarkdownLabel(label string) bool {
	return label == "" || label == "md" || label == "markdown"
}
