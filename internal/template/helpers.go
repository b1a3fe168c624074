package template

import (
	"encoding/json"
	"regexp"
	"strings"
	texttemplate "text/template"
)

// HelperFuncMap returns template helper functions.
func HelperFuncMap() texttemplate.FuncMap {
	return texttemplate.FuncMap{
		"slugify": Slugify,
		"toJSON":  ToJSON,
		"quote":   Quote,
	}
}

// ToJSON marshals a value to a compact JSON string for template rendering.
func ToJSON(value interface{}) string {
	b, err := json.Marshal(value)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Quote renders s as a double-quoted YAML scalar.
func Quote(s string) string {
	return ToJSON(s)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9-]+`)

// Slugify normalizes a string into kebab-case. It returns "" when nothing
// usable is left.
func Slugify(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.Join(strings.Fields(s), "-")
	s = nonSlug.ReplaceAllString(s, "")
	return strings.Trim(s, "-")
}
