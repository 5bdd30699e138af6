package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ExtractFrontMatter splits a leading YAML front matter block from markup.
// Input without a well-formed block is returned unchanged with nil metadata.
func ExtractFrontMatter(markup string) (map[string]interface{}, string) {
	content := strings.TrimLeft(strings.ReplaceAll(markup, "\r\n", "\n"), "\n")
	if !strings.HasPrefix(content, "---\n") {
		return nil, markup
	}

	lines := strings.Split(content, "\n")
	endIndex := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			endIndex = i
			break
		}
	}

	if endIndex == -1 {
		return nil, markup
	}

	block := strings.Join(lines[1:endIndex], "\n")

	frontmatter := make(map[string]interface{})
	if strings.TrimSpace(block) != "" {
		if err := yaml.Unmarshal([]byte(block), &frontmatter); err != nil {
			return nil, markup
		}
	}

	return frontmatter, strings.Join(lines[endIndex+1:], "\n")
}

// getStringFromMap safely extracts a string value from a map
func getStringFromMap(m map[string]interface{}, key string) (string, bool) {
	if m == nil {
		return "", false
	}

	val, exists := m[key]
	if !exists {
		return "", false
	}

	str, ok := val.(string)
	return str, ok
}

// FrontMatterTheme returns the theme directive of the markup, if any
func FrontMatterTheme(markup string) (string, bool) {
	frontmatter, _ := ExtractFrontMatter(markup)
	theme, ok := getStringFromMap(frontmatter, "theme")
	if !ok || strings.TrimSpace(theme) == "" {
		return "", false
	}
	return strings.TrimSpace(theme), true
}
