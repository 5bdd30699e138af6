package builders

import (
	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

// DocumentBuilder helps build SourceDocument entities for testing
type DocumentBuilder struct {
	doc *entities.SourceDocument
}

// NewDocumentBuilder creates a plain text document with sensible defaults
func NewDocumentBuilder() *DocumentBuilder {
	text := "Quarterly results exceeded expectations across every region."
	return &DocumentBuilder{
		doc: &entities.SourceDocument{
			Name:     "report.txt",
			MIMEType: "text/plain; charset=utf-8",
			Data:     []byte(text),
			Text:     text,
		},
	}
}

// WithName sets the document file name
func (b *DocumentBuilder) WithName(name string) *DocumentBuilder {
	b.doc.Name = name
	return b
}

// WithText sets both the raw bytes and extracted text
func (b *DocumentBuilder) WithText(text string) *DocumentBuilder {
	b.doc.Data = []byte(text)
	b.doc.Text = text
	return b
}

// AsPDF marks the document as a PDF with the given page count
func (b *DocumentBuilder) AsPDF(pages int) *DocumentBuilder {
	b.doc.MIMEType = "application/pdf"
	b.doc.PageCount = pages
	return b
}

// Build creates the final SourceDocument
func (b *DocumentBuilder) Build() *entities.SourceDocument {
	doc := *b.doc
	doc.Data = append([]byte(nil), b.doc.Data...)
	return &doc
}
