package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/optdoc/optdoc/internal/options"
)

// githubAlertKinds maps callout kinds to the GitHub alert vocabulary.
// Unknown kinds degrade to NOTE.
var githubAlertKinds = map[string]string{
	"note":      "NOTE",
	"warning":   "WARNING",
	"caution":   "WARNING",
	"important": "IMPORTANT",
	"tip":       "TIP",
}

// Markdown renders one section per option with its description, type,
// default, and example, linking the heading to the source location.
type Markdown struct{}

func (m *Markdown) Render(w io.Writer, records []options.OptionRecord) error {
	var b strings.Builder
	b.WriteString("# Module Options\n\n")

	for _, rec := range records {
		fmt.Fprintf(&b, "\n## [`%s`](%s#L%d)\n", rec.Name(), rec.Location.File, rec.Location.Line)

		if rec.Description != nil {
			b.WriteString("\n")
			b.WriteString(renderDescriptionMarkdown(*rec.Description))
			b.WriteString("\n")
		}
		if rec.Type != nil {
			writeField(&b, "Type", rec.Type.Canonical)
		}
		if rec.Default != nil {
			writeField(&b, "Default", *rec.Default)
		}
		if rec.Example != nil {
			writeField(&b, "Example", *rec.Example)
		}
	}

	b.WriteString("\n---\n*Generated with optdoc*\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// writeField writes a labelled value, switching to a code block for
// multi-line or long values so formatting survives. Values containing a
// backtick also take the code-block path: backslashes are inert inside
// inline code spans, so there is no way to escape one there.
func writeField(b *strings.Builder, label, value string) {
	if strings.Contains(value, "\n") || strings.Contains(value, "`") || len(value) > 72 {
		fmt.Fprintf(b, "\n**%s:**\n\n```nix\n%s\n```\n", label, strings.TrimRight(value, "\n"))
		return
	}
	fmt.Fprintf(b, "\n**%s:** `%s`\n", label, value)
}

// renderDescriptionMarkdown flattens description segments, turning
// admonition blocks into GitHub alert blockquotes.
func renderDescriptionMarkdown(desc options.Description) string {
	var b strings.Builder
	for _, seg := range desc.Segments {
		body := strings.TrimSpace(seg.Body)
		if body == "" {
			continue
		}
		if seg.Admonition == "" {
			b.WriteString(body)
			b.WriteString("\n")
			continue
		}
		kind, ok := githubAlertKinds[strings.ToLower(seg.Admonition)]
		if !ok {
			kind = "NOTE"
		}
		fmt.Fprintf(&b, "\n> [!%s]  \n> %s\n", kind, strings.ReplaceAll(body, "\n", "\n> "))
	}
	return strings.TrimRight(b.String(), "\n")
}
