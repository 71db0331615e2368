package options

import (
	"regexp"
	"strings"
)

// Pandoc-style callout delimiters as used in NixOS option docs:
//
//	::: {.warning}
//	Don't do this.
//	:::
var (
	admonitionStart = regexp.MustCompile(`^\s*:::\s*\{\.([A-Za-z][A-Za-z0-9_-]*)\}\s*$`)
	admonitionEnd   = regexp.MustCompile(`^\s*:::\s*$`)
)

// ParseDescription structures raw description text into plain and
// admonition segments. Kind names are preserved verbatim, including
// ones outside the usual note/warning/important/caution/tip set, to
// stay forward-compatible with new callout vocabularies. Nested blocks
// are not supported: a start marker inside a block is kept as body
// text. An unterminated block is closed at end of input.
func ParseDescription(raw string) Description {
	var (
		desc    Description
		body    strings.Builder
		kind    string
		inBlock bool
	)

	flush := func() {
		if body.Len() == 0 {
			return
		}
		desc.Segments = append(desc.Segments, Segment{Admonition: kind, Body: body.String()})
		body.Reset()
	}

	// SplitAfter keeps each line's trailing newline inside the segment
	// bodies, so concatenating bodies reproduces the input with only
	// the delimiter lines removed.
	for _, line := range strings.SplitAfter(raw, "\n") {
		if line == "" {
			continue
		}
		trimmed := strings.TrimSuffix(line, "\n")
		if !inBlock {
			if m := admonitionStart.FindStringSubmatch(trimmed); m != nil {
				flush()
				kind = m[1]
				inBlock = true
				continue
			}
			body.WriteString(line)
			continue
		}
		if admonitionEnd.MatchString(trimmed) {
			flush()
			kind = ""
			inBlock = false
			continue
		}
		body.WriteString(line)
	}
	flush()
	return desc
}
