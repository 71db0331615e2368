// Package render turns the final option record set into output
// documents. Renderers only consume plain record data; nothing in the
// records is renderer-specific.
package render

import (
	"fmt"
	"io"

	"github.com/optdoc/optdoc/internal/options"
)

// Renderer writes a record set to an output stream in one format.
type Renderer interface {
	Render(w io.Writer, records []options.OptionRecord) error
}

// Formats lists the supported output format names.
func Formats() []string {
	return []string{"markdown", "json", "html", "csv", "table"}
}

// New returns the renderer for a format name.
func New(format string) (Renderer, error) {
	switch format {
	case "markdown", "md":
		return &Markdown{}, nil
	case "json":
		return &JSON{}, nil
	case "html":
		return &HTML{}, nil
	case "csv":
		return &CSV{}, nil
	case "table":
		return &Table{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (supported: %v)", format, Formats())
}
