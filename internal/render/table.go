package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/optdoc/optdoc/internal/options"
)

// Table renders a terminal table, truncating long values so the output
// stays readable in a shell.
type Table struct{}

const tableCellLimit = 48

func (t *Table) Render(w io.Writer, records []options.OptionRecord) error {
	headerStyle := lipgloss.NewStyle().Bold(true)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Option", "Type", "Default", "Description")

	for _, rec := range records {
		tbl.Row(
			rec.Name(),
			truncateCell(typeText(rec)),
			truncateCell(deref(rec.Default)),
			truncateCell(flatten(rec.DescriptionText())),
		)
	}

	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

func truncateCell(s string) string {
	s = flatten(s)
	if len(s) > tableCellLimit {
		return strings.TrimSpace(s[:tableCellLimit-1]) + "…"
	}
	return s
}
