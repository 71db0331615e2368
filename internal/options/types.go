// Package options is the extraction, normalization, and merge engine:
// it walks parsed Nix syntax trees to locate module option declarations,
// canonicalizes their type expressions, structures their descriptions,
// resolves ${var} substitutions in paths, and merges partial
// declarations of the same option found across files into one
// deterministic record set.
package options

import "strings"

// Path is the ordered sequence of attribute-name segments identifying
// one option. Segments are never empty; the dot-joined form is the
// unique merge key.
type Path []string

// String returns the dot-joined display form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// HasPrefix reports whether the dot-joined path starts with prefix.
func (p Path) HasPrefix(prefix string) bool {
	return strings.HasPrefix(p.String(), prefix)
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Location identifies where a declaration was found.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// TypeDescriptor is the canonical human-readable summary of a declared
// type, alongside the raw source expression it was derived from.
// Recognized is false when the canonical text is a best-effort raw
// rendering rather than a known constructor.
type TypeDescriptor struct {
	Canonical  string `json:"canonical"`
	Raw        string `json:"raw,omitempty"`
	Recognized bool   `json:"recognized"`
}

// Segment is one span of a structured description: plain text when
// Admonition is empty, or the body of a callout block tagged with its
// kind. The kind is an open string tag so renderers decide their own
// visual mapping.
type Segment struct {
	Admonition string `json:"admonition,omitempty"`
	Body       string `json:"body"`
}

// Description is an ordered sequence of plain and admonition segments.
type Description struct {
	Segments []Segment `json:"segments"`
}

// Text reconstructs the description text by concatenating segment
// bodies in order. This equals the original text with the admonition
// delimiter lines removed.
func (d Description) Text() string {
	var b strings.Builder
	for _, s := range d.Segments {
		b.WriteString(s.Body)
	}
	return b.String()
}

// Empty reports whether the description carries no visible text.
func (d Description) Empty() bool {
	return strings.TrimSpace(d.Text()) == ""
}

// OptionRecord is one extracted option declaration. Records are plain
// data and immutable once emitted by the locator; the merger owns the
// combined records it produces.
type OptionRecord struct {
	Path        Path           `json:"path"`
	Type        *TypeDescriptor `json:"type,omitempty"`
	Default     *string        `json:"default,omitempty"`
	Example     *string        `json:"example,omitempty"`
	Description *Description   `json:"description,omitempty"`
	Location    Location       `json:"location"`
}

// Name returns the dot-joined option path.
func (r OptionRecord) Name() string {
	return r.Path.String()
}

// DescriptionText returns the flattened description, or "" when absent.
func (r OptionRecord) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return r.Description.Text()
}

func strPtr(s string) *string { return &s }
