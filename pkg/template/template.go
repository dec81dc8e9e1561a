// Package template renders flat {{name}} placeholders.
//
// It is deliberately not a template language: there are no conditionals,
// loops or pipelines. Each placeholder is replaced by the value stored
// under its name, and placeholders with no value are left in place so a
// text can be rendered in several stages.
package template

import (
	"regexp"
	"strings"
)

// placeholder matches one whole token; a token is never matched partially
var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Render substitutes every known placeholder in text in a single pass.
// Substituted values are not scanned again.
func Render(text string, ctx map[string]string) string {
	if len(ctx) == 0 || !strings.Contains(text, "{{") {
		return text
	}

	return placeholder.ReplaceAllStringFunc(text, func(token string) string {
		name := placeholder.FindStringSubmatch(token)[1]
		if value, ok := ctx[name]; ok {
			return value
		}
		return token
	})
}

// Placeholders returns the distinct placeholder names in text, in order of
// first appearance.
func Placeholders(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholder.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Unresolved returns the placeholder names in text that ctx cannot fill
func Unresolved(text string, ctx map[string]string) []string {
	var missing []string
	for _, name := range Placeholders(text) {
		if _, ok := ctx[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
