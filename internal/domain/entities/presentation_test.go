package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentation_Validate(t *testing.T) {
	tests := []struct {
		name         string
		presentation Presentation
		wantErr      bool
		errMsg       string
	}{
		{
			name: "valid presentation",
			presentation: Presentation{
				Title: "Quarterly Review",
				Slides: []Slide{
					{Title: "Intro", Content: []string{"Welcome"}},
					{Title: "Numbers", Content: []string{"Up 10%"}},
				},
			},
		},
		{
			name:         "missing title",
			presentation: Presentation{Slides: []Slide{{Title: "A", Content: []string{"x"}}}},
			wantErr:      true,
			errMsg:       "presentation title is required",
		},
		{
			name:         "no slides",
			presentation: Presentation{Title: "Empty"},
			wantErr:      true,
			errMsg:       "presentation must have at least one slide",
		},
		{
			name: "invalid slide",
			presentation: Presentation{
				Title:  "Bad",
				Slides: []Slide{{Title: "A", Content: []string{"x"}}, {Title: "B"}},
			},
			wantErr: true,
			errMsg:  "slide 2 validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.presentation.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPresentation_GetSlideByIndex(t *testing.T) {
	p := Presentation{
		Title: "Deck",
		Slides: []Slide{
			{Title: "First", Content: []string{"a"}},
			{Title: "Second", Content: []string{"b"}},
		},
	}

	slide, err := p.GetSlideByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, "Second", slide.Title)

	_, err = p.GetSlideByIndex(-1)
	assert.Error(t, err)

	_, err = p.GetSlideByIndex(2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestPresentation_TitleSlide(t *testing.T) {
	assert.Nil(t, (&Presentation{}).TitleSlide())

	p := Presentation{Slides: []Slide{{Title: "Cover", Content: []string{"subtitle"}}}}
	require.NotNil(t, p.TitleSlide())
	assert.Equal(t, "Cover", p.TitleSlide().Title)
	assert.Equal(t, 1, p.SlideCount())
}
