package render

import (
	"fmt"
	"strings"

	"github.com/glimpsedb/glimpse/internal/catalog"
	"github.com/glimpsedb/glimpse/internal/schema"
)

// Schema renders the full schema report: the header line, every table with
// its columns, constraints, indexes and triggers, the hidden groups when
// present, and finally the views.
func Schema(d *schema.Description, o Options) string {
	p := newPalette(o.Color)
	var b strings.Builder

	fmt.Fprintf(&b, "%s — %d tables\n\n", p.strong.Sprint(d.Path), d.TableCount())

	for _, t := range d.Tables {
		writeTable(&b, p, t, o)
	}
	if len(d.ShadowTables) > 0 {
		b.WriteString("Shadow tables:\n\n")
		for _, t := range d.ShadowTables {
			writeTable(&b, p, t, o)
		}
	}
	if len(d.SystemTables) > 0 {
		b.WriteString("System tables:\n\n")
		for _, t := range d.SystemTables {
			writeTable(&b, p, t, o)
		}
	}
	for _, v := range d.Views {
		writeView(&b, p, v)
	}
	return b.String()
}

func writeTable(b *strings.Builder, p *palette, t schema.Table, o Options) {
	fmt.Fprintf(b, "%s %s (%d rows)%s:\n",
		p.name.Sprint(catalog.QuoteIdent(t.Name)), kindText(t), t.RowCount, attrText(p, t))

	for _, col := range t.Columns {
		if col.Hidden == catalog.HiddenColumn && !o.ShowHidden {
			continue
		}
		writeColumn(b, p, col)
	}

	// The composite key and multicolumn constraints get their own lines
	// because no single column owns them.
	if len(t.PKColumns) > 1 {
		fmt.Fprintf(b, "PRIMARY KEY (%s)\n", p.colNames(t.PKColumns))
	}
	for _, fk := range schema.ForeignKeySet(t.ForeignKeys).Multicolumn() {
		fmt.Fprintf(b, "FOREIGN KEY (%s) REFERENCES %s (%s)\n",
			p.colNames(fk.From), p.ref.Sprint(fk.Table), p.colNames(fk.To))
	}

	if len(t.OtherIndexes) > 0 {
		b.WriteString("Indexes:\n")
		for _, ix := range t.OtherIndexes {
			fmt.Fprintf(b, "  %s (%s)", ix.Name, p.colNames(ix.Columns))
			if ix.Unique {
				b.WriteString(" UNIQUE")
			}
			b.WriteByte('\n')
		}
	}

	if len(t.Triggers) > 0 {
		b.WriteString("Triggers:\n")
		for _, name := range t.Triggers {
			b.WriteString("  " + p.trigger.Sprint(name) + "\n")
		}
	}
	b.WriteByte('\n')
}

func writeColumn(b *strings.Builder, p *palette, col schema.Column) {
	b.WriteString("  " + p.column.Sprint(col.Name))
	if col.Type != "" {
		b.WriteString(" " + col.Type)
	}
	if col.NotNull {
		b.WriteString(" NOT NULL")
	}
	switch {
	case col.PrimaryKey:
		b.WriteString(" PRIMARY KEY")
	case col.Unique:
		b.WriteString(" UNIQUE")
	case col.Indexed:
		b.WriteString(" indexed")
	}
	if col.Default != nil {
		b.WriteString(" DEFAULT " + *col.Default)
	}
	if col.Ref != nil {
		b.WriteString(" REFERENCES " + p.ref.Sprint(col.Ref.Table))
		if col.Ref.Column != "" {
			fmt.Fprintf(b, " (%s)", p.column.Sprint(col.Ref.Column))
		}
	}
	switch {
	case col.Generated != "":
		fmt.Fprintf(b, " AS (%s)", col.Generated)
		if col.Stored {
			b.WriteString(" STORED")
		}
	case col.Hidden == catalog.HiddenColumn:
		b.WriteString(" hidden")
	}
	b.WriteByte('\n')
}

func writeView(b *strings.Builder, p *palette, v schema.View) {
	fmt.Fprintf(b, "%s view (%d rows):\n", p.name.Sprint(catalog.QuoteIdent(v.Name)), v.RowCount)
	for _, name := range v.Columns {
		b.WriteString("  " + p.column.Sprint(name) + "\n")
	}
	if v.Select != "" {
		b.WriteString("AS " + v.Select + "\n")
	}
}

func kindText(t schema.Table) string {
	switch t.Kind {
	case schema.KindVirtual:
		if t.Module != "" {
			return "virtual table using " + t.Module
		}
		return "virtual table"
	case schema.KindShadow:
		return "shadow table"
	default:
		return "table"
	}
}

func attrText(p *palette, t schema.Table) string {
	var attrs []string
	if t.Strict {
		attrs = append(attrs, p.strong.Sprint("STRICT"))
	}
	if t.WithoutRowid {
		attrs = append(attrs, p.strong.Sprint("WITHOUT ROWID"))
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}
