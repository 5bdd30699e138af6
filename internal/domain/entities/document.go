package entities

import (
	"fmt"
	"strings"
	"time"
)

// SourceDocument is an uploaded document after text extraction
type SourceDocument struct {
	Name      string
	MIMEType  string
	Data      []byte
	Text      string
	PageCount int
}

// IsPDF reports whether the document is a PDF
func (d *SourceDocument) IsPDF() bool {
	return strings.HasPrefix(d.MIMEType, "application/pdf")
}

// HasText reports whether any text could be extracted
func (d *SourceDocument) HasText() bool {
	return strings.TrimSpace(d.Text) != ""
}

// OutputFormat is a binary format produced by the markup renderer
type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatHTML OutputFormat = "html"
)

// ParseOutputFormat validates a user supplied format name
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q (must be pdf or html)", ErrInvalidFormat, s)
	}
}

// MIMEType returns the content type of the rendered output
func (f OutputFormat) MIMEType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension, without dot
func (f OutputFormat) Extension() string {
	return string(f)
}

// GenerationResult is the outcome of turning one document into a deck
type GenerationResult struct {
	ID           string        `json:"id"`
	Presentation *Presentation `json:"presentation"`
	Markup       string        `json:"markup"`
	Theme        string        `json:"theme"`
	DemoMode     bool          `json:"demoMode"`
	Generator    string        `json:"generator"`
	GeneratedAt  time.Time     `json:"generatedAt"`
}
