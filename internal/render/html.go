package render

import (
	"html/template"
	"io"
	"strings"

	"github.com/optdoc/optdoc/internal/options"
)

// HTML renders a standalone page with one section per option.
type HTML struct{}

type htmlOption struct {
	Name     string
	Anchor   string
	Type     string
	Default  string
	Example  string
	Segments []options.Segment
	File     string
	Line     int
}

var htmlPage = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Module Options</title>
<style>
body { font-family: system-ui, -apple-system, sans-serif; margin: 40px auto; max-width: 800px; line-height: 1.6; color: #333; padding: 0 10px; }
h1 { margin-bottom: 1.5em; }
.option { margin-bottom: 2.5em; padding-bottom: 1.5em; border-bottom: 1px solid #eee; }
.option h2 { margin-top: 0; font-family: monospace; }
.location { color: #666; font-size: 0.9em; }
pre { background-color: #f6f8fa; padding: 16px; border-radius: 6px; overflow: auto; }
code { font-family: ui-monospace, monospace; background-color: rgba(175, 184, 193, 0.2); padding: 0.2em 0.4em; border-radius: 3px; }
.admonition { padding: 0.5rem 1rem; margin: 1em 0; border-radius: 6px; border-left: 0.25rem solid #d0d7de; background-color: #f6f8fa; }
.admonition .kind { font-weight: bold; text-transform: capitalize; }
.footer { margin-top: 3em; text-align: center; color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Module Options</h1>
{{range .}}<div class="option" id="{{.Anchor}}">
<h2>{{.Name}}</h2>
<p class="location">{{.File}}:{{.Line}}</p>
{{range .Segments}}{{if .Admonition}}<div class="admonition"><span class="kind">{{.Admonition}}</span><p>{{.Body}}</p></div>
{{else}}<p>{{.Body}}</p>
{{end}}{{end}}{{if .Type}}<p><strong>Type:</strong> <code>{{.Type}}</code></p>
{{end}}{{if .Default}}<p><strong>Default:</strong></p><pre><code>{{.Default}}</code></pre>
{{end}}{{if .Example}}<p><strong>Example:</strong></p><pre><code>{{.Example}}</code></pre>
{{end}}</div>
{{end}}<div class="footer">Generated with optdoc</div>
</body>
</html>
`))

func (h *HTML) Render(w io.Writer, records []options.OptionRecord) error {
	out := make([]htmlOption, 0, len(records))
	for _, rec := range records {
		opt := htmlOption{
			Name:    rec.Name(),
			Anchor:  strings.ReplaceAll(rec.Name(), ".", "-"),
			Default: deref(rec.Default),
			Example: deref(rec.Example),
			File:    rec.Location.File,
			Line:    rec.Location.Line,
		}
		if rec.Type != nil {
			opt.Type = rec.Type.Canonical
		}
		if rec.Description != nil {
			for _, seg := range rec.Description.Segments {
				if strings.TrimSpace(seg.Body) == "" {
					continue
				}
				opt.Segments = append(opt.Segments, options.Segment{
					Admonition: seg.Admonition,
					Body:       strings.TrimSpace(seg.Body),
				})
			}
		}
		out = append(out, opt)
	}
	return htmlPage.Execute(w, out)
}
