package content

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML header of a docs page.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	UpdatedAt   string `yaml:"updated_at"`
}

// ParseDocument splits raw markdown into its front matter and body.
// A document without a leading "---" block has empty front matter.
func ParseDocument(raw []byte) (FrontMatter, []byte, error) {
	fm, body := splitFrontMatter(string(raw))
	front := FrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return FrontMatter{}, nil, fmt.Errorf("content: parse front matter: %w", err)
		}
	}
	front.Title = strings.TrimSpace(front.Title)
	front.Description = strings.TrimSpace(front.Description)
	front.UpdatedAt = strings.TrimSpace(front.UpdatedAt)
	return front, []byte(body), nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// PrettifyID turns "design-tokens" into "Design Tokens".
func PrettifyID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return id
	}
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	// a Caser is stateful, so one per call
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// SanitizeID trims a page id and rejects anything that could escape the
// docs directory. Ids are case-sensitive slugs. It returns "" for unusable ids.
func SanitizeID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.Trim(id, "/")
	if id == "" || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return ""
	}
	return id
}
