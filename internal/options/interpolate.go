package options

import "regexp"

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Substitute replaces every ${name} placeholder whose name is present
// in bindings. Unbound placeholders pass through byte-for-byte: a
// partially configured run still produces readable, if imprecise,
// paths instead of failing.
func Substitute(text string, bindings map[string]string) string {
	if len(bindings) == 0 {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := bindings[name]; ok {
			return value
		}
		return match
	})
}
