package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformOptions_WithDefaults(t *testing.T) {
	opts := TransformOptions{}.WithDefaults()

	assert.Equal(t, DensityConcise, opts.ContentDensity)
	assert.Equal(t, AudienceCasual, opts.TargetAudience)
	assert.Equal(t, "default", opts.VisualStyle)

	custom := TransformOptions{
		ContentDensity: DensityComprehensive,
		TargetAudience: AudienceLeadership,
		VisualStyle:    "gaia",
	}
	assert.Equal(t, custom, custom.WithDefaults())
}

func TestTransformOptions_Validate(t *testing.T) {
	assert.NoError(t, TransformOptions{}.Validate())

	for _, d := range ContentDensities {
		for _, a := range TargetAudiences {
			assert.NoError(t, TransformOptions{ContentDensity: d, TargetAudience: a}.Validate())
		}
	}

	err := TransformOptions{ContentDensity: "dense"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content density")

	err = TransformOptions{TargetAudience: "children"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target audience")

	// Visual style is free-form and left to the renderer.
	assert.NoError(t, TransformOptions{VisualStyle: "my-corporate-theme"}.Validate())
}

func TestStyleDisplayName(t *testing.T) {
	assert.Equal(t, "Classic", StyleDisplayName("default"))
	assert.Equal(t, "Corporate", StyleDisplayName("gaia"))
	assert.Equal(t, "Modern", StyleDisplayName("uncover"))
	assert.Equal(t, "Night Sky", StyleDisplayName("night-sky"))

	_, ok := LookupStyle("unknown")
	assert.False(t, ok)
}

func TestParseOutputFormat(t *testing.T) {
	format, err := ParseOutputFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, format)
	assert.Equal(t, "application/pdf", format.MIMEType())
	assert.Equal(t, "pdf", format.Extension())

	format, err = ParseOutputFormat("html")
	require.NoError(t, err)
	assert.Equal(t, "text/html", format.MIMEType())

	_, err = ParseOutputFormat("pptx")
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := error(&GenerationError{Provider: "gemini", Retryable: true, Cause: cause})

	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsRetryableGeneration(err))
	assert.Contains(t, err.Error(), "gemini generation failed")
	assert.False(t, IsRetryableGeneration(cause))

	renderErr := &RenderError{Format: FormatPDF, Output: "boom", Cause: cause}
	assert.True(t, errors.Is(renderErr, cause))
	assert.Equal(t, "rendering pdf failed: quota exceeded: boom", renderErr.Error())
}
