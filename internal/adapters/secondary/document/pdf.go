package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDFText reads the text layer of every page, row by row. The pdf
// package panics on some malformed files, which is reported as an error.
func extractPDFText(ctx context.Context, data []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("open PDF: %w", err)
	}

	numPages := reader.NumPage()
	var sb strings.Builder

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", numPages, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText := strings.TrimSpace(pageRows(page))
		if pageText == "" {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\n")
	}

	return strings.TrimSpace(sb.String()), numPages, nil
}

// pageRows joins the words of each text row. An empty word between two
// non-empty ones marks a word boundary.
func pageRows(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}

	var result strings.Builder
	for _, row := range rows {
		var line strings.Builder
		gap := false
		for _, word := range row.Content {
			if word.S == "" {
				gap = true
				continue
			}
			if line.Len() > 0 && gap && !strings.HasSuffix(line.String(), " ") {
				line.WriteString(" ")
			}
			line.WriteString(word.S)
			gap = false
		}

		if trimmed := strings.TrimSpace(line.String()); trimmed != "" {
			result.WriteString(trimmed)
			result.WriteString("\n")
		}
	}

	return result.String()
}
