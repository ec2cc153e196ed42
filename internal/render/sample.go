package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/glimpsedb/glimpse/internal/catalog"
)

// SamplePage is the assembled input for the row-sample view of one table
// or view.
type SamplePage struct {
	Path     string
	Name     string
	Type     string // object type from the catalog, "table" or "view"
	Columns  []string
	Rows     [][]any
	Total    int64 // rows in the object
	Selected int64 // rows matching the filter, valid when Filtered
	Filtered bool
}

// Sample renders the row-sample view: a header naming the object, the row
// grid, and a count footer.
func Sample(pg SamplePage, o Options) string {
	p := newPalette(o.Color)
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s %s\n", pg.Path, p.name.Sprint(catalog.QuoteIdent(pg.Name)), pg.Type)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	// Column names come from the catalog; keep their case.
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(pg.Columns))
	for i, name := range pg.Columns {
		header[i] = name
	}
	tw.AppendHeader(header)
	for _, row := range pg.Rows {
		cells := make(table.Row, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		tw.AppendRow(cells)
	}
	b.WriteString(tw.Render())
	b.WriteByte('\n')

	if pg.Filtered {
		fmt.Fprintf(&b, "%d of %d selected rows (of %d in table)\n", len(pg.Rows), pg.Selected, pg.Total)
	} else {
		fmt.Fprintf(&b, "%d of %d rows\n", len(pg.Rows), pg.Total)
	}
	return b.String()
}
