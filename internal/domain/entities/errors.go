package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument is returned when an uploaded document has no bytes
	ErrEmptyDocument = errors.New("document is empty")

	// ErrUnsupportedDocument is returned for document types that cannot be read
	ErrUnsupportedDocument = errors.New("unsupported document type")

	// ErrEmptyResponse is returned when the generator answered with blank text
	ErrEmptyResponse = errors.New("generator returned an empty response")

	// ErrEmptyMarkup is returned when asked to render blank markup
	ErrEmptyMarkup = errors.New("markup is empty")

	// ErrInvalidOptions is returned for unknown density or audience values
	ErrInvalidOptions = errors.New("invalid transform options")

	// ErrInvalidFormat is returned for output formats other than pdf and html
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrGeneratorUnavailable means no generation backend is configured
	ErrGeneratorUnavailable = errors.New("content generator unavailable")

	// ErrRendererUnavailable means the markup renderer cannot be executed
	ErrRendererUnavailable = errors.New("markup renderer unavailable")
)

// GenerationError wraps a failed call to a content generation backend
type GenerationError struct {
	Provider  string
	Retryable bool
	Cause     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// IsRetryableGeneration reports whether err is a GenerationError marked retryable
func IsRetryableGeneration(err error) bool {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Retryable
	}
	return false
}

// RenderError wraps a failed markup rendering run
type RenderError struct {
	Format OutputFormat
	Output string
	Cause  error
}

func (e *RenderError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("rendering %s failed: %v: %s", e.Format, e.Cause, e.Output)
	}
	return fmt.Sprintf("rendering %s failed: %v", e.Format, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
