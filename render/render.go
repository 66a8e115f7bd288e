// Package render substitutes {{key}} tokens in template text.
package render

import (
	"regexp"
)

// TokenPattern matches a placeholder token. The key is captured in group 1.
var TokenPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Token returns the placeholder text for key.
func Token(key string) string {
	return "{{" + key + "}}"
}

// Render replaces every token whose key has a non-empty value in vars. Tokens with
// absent or empty values are left in place. Substituted values are never rescanned.
func Render(text string, vars map[string]string) string {
	if len(vars) == 0 {
		return text
	}
	return TokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		key := token[2 : len(token)-2]
		if v := vars[key]; v != "" {
			return v
		}
		return token
	})
}

// Tokens lists the distinct keys referenced by text in order of first appearance.
func Tokens(text string) []string {
	keys := []string{}
	seen := map[string]bool{}
	for _, m := range TokenPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}

// Unresolved lists the keys whose tokens remain in a rendered text.
func Unresolved(rendered string) []string {
	return Tokens(rendered)
}
