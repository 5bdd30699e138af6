package entities

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// VisualStyle describes a renderer theme offered to users
type VisualStyle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// VisualStyles is the built-in catalogue of Marp themes
var VisualStyles = []VisualStyle{
	{ID: "default", Name: "Classic", Description: "Clean and professional with a white background"},
	{ID: "gaia", Name: "Corporate", Description: "Bold colors with a modern business feel"},
	{ID: "uncover", Name: "Modern", Description: "Minimalist design with elegant typography"},
}

// LookupStyle returns the catalogue entry for id
func LookupStyle(id string) (VisualStyle, bool) {
	for _, s := range VisualStyles {
		if s.ID == id {
			return s, true
		}
	}
	return VisualStyle{}, false
}

// StyleDisplayName returns a human readable name for a theme id. Themes
// outside the catalogue are title-cased.
func StyleDisplayName(id string) string {
	if s, ok := LookupStyle(id); ok {
		return s.Name
	}
	name := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(id))
	return cases.Title(language.English).String(name)
}
