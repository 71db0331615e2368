package render

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/optdoc/optdoc/internal/options"
)

// CSV renders one row per option, with multi-line descriptions
// flattened to a single line.
type CSV struct{}

func (c *CSV) Render(w io.Writer, records []options.OptionRecord) error {
	wtr := csv.NewWriter(w)
	if err := wtr.Write([]string{"Option", "Type", "Default", "Example", "Description", "FilePath", "LineNumber"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Name(),
			orDash(typeText(rec)),
			orDash(deref(rec.Default)),
			orDash(deref(rec.Example)),
			orDash(flatten(rec.DescriptionText())),
			rec.Location.File,
			strconv.Itoa(rec.Location.Line),
		}
		if err := wtr.Write(row); err != nil {
			return err
		}
	}
	wtr.Flush()
	return wtr.Error()
}

func typeText(rec options.OptionRecord) string {
	if rec.Type == nil {
		return ""
	}
	return rec.Type.Canonical
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
