package ports

import (
	"context"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

// ContentGenerator calls a generative-language service
type ContentGenerator interface {
	// Name identifies the backend in logs and results
	Name() string

	// Available returns entities.ErrGeneratorUnavailable when the backend
	// has no credentials configured
	Available() error

	// Generate sends the prompt together with the document and returns the
	// raw text answer
	Generate(ctx context.Context, doc *entities.SourceDocument, prompt string) (string, error)
}

// DocumentExtractor reads uploaded bytes into a SourceDocument
type DocumentExtractor interface {
	Extract(ctx context.Context, name string, data []byte) (*entities.SourceDocument, error)
}
