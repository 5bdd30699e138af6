package entities

import (
	"fmt"
	"strings"
)

// ContentDensity controls how much detail the generator puts on each slide
type ContentDensity string

const (
	DensityConcise       ContentDensity = "concise"
	DensityBalanced      ContentDensity = "balanced"
	DensityComprehensive ContentDensity = "comprehensive"
)

// ContentDensities lists the supported densities in display order
var ContentDensities = []ContentDensity{DensityConcise, DensityBalanced, DensityComprehensive}

// IsValid reports whether d is one of the supported densities
func (d ContentDensity) IsValid() bool {
	for _, v := range ContentDensities {
		if d == v {
			return true
		}
	}
	return false
}

// TargetAudience selects the vocabulary and depth of the generated deck
type TargetAudience string

const (
	AudienceCasual      TargetAudience = "casual"
	AudienceEducational TargetAudience = "educational"
	AudienceSpecialized TargetAudience = "specialized"
	AudienceBusiness    TargetAudience = "business"
	AudienceLeadership  TargetAudience = "leadership"
)

// TargetAudiences lists the supported audiences in display order
var TargetAudiences = []TargetAudience{
	AudienceCasual,
	AudienceEducational,
	AudienceSpecialized,
	AudienceBusiness,
	AudienceLeadership,
}

// IsValid reports whether a is one of the supported audiences
func (a TargetAudience) IsValid() bool {
	for _, v := range TargetAudiences {
		if a == v {
			return true
		}
	}
	return false
}

// Default option values applied when a request leaves a field empty
const (
	DefaultContentDensity = DensityConcise
	DefaultTargetAudience = AudienceCasual
	DefaultVisualStyle    = "default"
)

// TransformOptions are the user's choices for one generation request.
// VisualStyle is a free-form theme id checked by the renderer, not here.
type TransformOptions struct {
	ContentDensity ContentDensity `json:"contentDensity" toml:"content_density"`
	TargetAudience TargetAudience `json:"targetAudience" toml:"target_audience"`
	VisualStyle    string         `json:"visualStyle" toml:"visual_style"`
}

// WithDefaults returns a copy with empty fields filled in
func (o TransformOptions) WithDefaults() TransformOptions {
	if strings.TrimSpace(string(o.ContentDensity)) == "" {
		o.ContentDensity = DefaultContentDensity
	}
	if strings.TrimSpace(string(o.TargetAudience)) == "" {
		o.TargetAudience = DefaultTargetAudience
	}
	if strings.TrimSpace(o.VisualStyle) == "" {
		o.VisualStyle = DefaultVisualStyle
	}
	return o
}

// Validate checks the enumerated fields. Empty values are accepted and
// resolved by WithDefaults.
func (o TransformOptions) Validate() error {
	if o.ContentDensity != "" && !o.ContentDensity.IsValid() {
		return fmt.Errorf("invalid content density: %s", o.ContentDensity)
	}
	if o.TargetAudience != "" && !o.TargetAudience.IsValid() {
		return fmt.Errorf("invalid target audience: %s", o.TargetAudience)
	}
	return nil
}
