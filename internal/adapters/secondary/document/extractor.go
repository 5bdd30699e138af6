package document

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

var extensionTypes = map[string]string{
	".pdf":      "application/pdf",
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
}

// Extractor reads uploaded documents into SourceDocuments
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a document extractor
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger.With("component", "document")}
}

// Extract detects the document type and pulls out its text. PDFs whose
// text layer is empty are still returned since generators can read them
// directly.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte) (*entities.SourceDocument, error) {
	if len(data) == 0 {
		return nil, entities.ErrEmptyDocument
	}

	mimeType := DetectMIMEType(name, data)
	doc := &entities.SourceDocument{
		Name:     name,
		MIMEType: mimeType,
		Data:     data,
	}

	var err error
	switch {
	case strings.HasPrefix(mimeType, "application/pdf"):
		doc.Text, doc.PageCount, err = extractPDFText(ctx, data)
	case strings.HasPrefix(mimeType, "text/html"):
		doc.Text, err = htmlToMarkdown(decodeText(data))
	case strings.HasPrefix(mimeType, "text/"):
		doc.Text = decodeText(data)
	default:
		return nil, fmt.Errorf("%w: %s", entities.ErrUnsupportedDocument, mimeType)
	}
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", name, err)
	}

	e.logger.Debug("extracted document",
		slog.String("name", name),
		slog.String("mime", mimeType),
		slog.Int("bytes", len(data)),
		slog.Int("pages", doc.PageCount),
		slog.Int("text_length", len(doc.Text)))

	return doc, nil
}

// DetectMIMEType sniffs the content and falls back to the file extension
// when the content is not conclusive
func DetectMIMEType(name string, data []byte) string {
	detected := mimetype.Detect(data)
	byExtension, known := extensionTypes[strings.ToLower(filepath.Ext(name))]

	switch {
	case detected.Is("application/pdf"), detected.Is("text/html"):
		return detected.String()
	case known:
		return byExtension
	case detected.String() != "application/octet-stream":
		return detected.String()
	default:
		return "application/octet-stream"
	}
}

// Ensure Extractor implements ports.DocumentExtractor
var _ ports.DocumentExtractor = (*Extractor)(nil)
