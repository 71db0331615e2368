package options

import (
	"regexp"
	"strings"
)

// unquote strips the string delimiters from a Nix string literal
// without unescaping: "..." or ''...''. Non-string text is returned
// unchanged.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	if len(s) >= 4 && strings.HasPrefix(s, "''") && strings.HasSuffix(s, "''") {
		inner := s[2 : len(s)-2]
		// Indented strings usually start with a newline that is not
		// part of the text.
		inner = strings.TrimPrefix(inner, "\n")
		return inner
	}
	return s
}

// dedentKeepFirst removes the common leading indentation from every
// line after the first. The first line is preserved as-is, since in
// source it follows the opening delimiter and carries no indentation.
func dedentKeepFirst(text string) string {
	idx := strings.IndexByte(text, '\n')
	if idx < 0 {
		return text
	}
	first, rest := text[:idx], text[idx+1:]
	lines := strings.Split(rest, "\n")

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return text
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return first + "\n" + strings.Join(lines, "\n")
}

// directivePattern matches inline doc directives like {option}`foo.bar`
// or {var}`x`; only the backtick span is kept.
var directivePattern = regexp.MustCompile("\\{[a-z]+\\}(`[^`]+`)")

// cleanDirectives strips Nix documentation markup directives from
// description text, keeping the code span they annotate.
func cleanDirectives(text string) string {
	return directivePattern.ReplaceAllString(text, "$1")
}

// cleanLiteralExpr unwraps lib.literalExpression / literalMD wrappers
// around default and example values, exposing the inner text. Values
// without a recognized wrapper are returned unchanged.
func cleanLiteralExpr(value string) string {
	value = strings.TrimSpace(value)

	wrapped := false
	for _, prefix := range []string{"lib.literalExpression", "literalExpression", "lib.literalMD", "literalMD"} {
		if strings.HasPrefix(value, prefix) {
			wrapped = true
			break
		}
	}
	if !wrapped {
		return value
	}

	if start := strings.Index(value, "''"); start >= 0 {
		if end := strings.LastIndex(value, "''"); end > start+2 {
			return strings.TrimSpace(value[start+2 : end])
		}
	} else if start := strings.IndexByte(value, '"'); start >= 0 {
		if end := strings.LastIndexByte(value, '"'); end > start+1 {
			return strings.TrimSpace(value[start+1 : end])
		}
	}
	return value
}
