package schema

import "github.com/glimpsedb/glimpse/internal/catalog"

// ForeignKeySet holds a table's resolved foreign key constraints.
type ForeignKeySet []ForeignKey

// ResolveForeignKeys groups the flat pragma rows into constraints. Rows
// arrive ordered by (id, seq); a new id opens a new constraint and every row
// with the same id appends its column pair to the open one. The grouping is
// a single pass and depends on that ordering.
func ResolveForeignKeys(rows []catalog.ForeignKeyRow) ForeignKeySet {
	var set ForeignKeySet
	var open *ForeignKey
	openID := 0

	for _, row := range rows {
		if open == nil || row.ID != openID {
			set = append(set, ForeignKey{
				Table:    row.Table,
				OnUpdate: row.OnUpdate,
				OnDelete: row.OnDelete,
			})
			open = &set[len(set)-1]
			openID = row.ID
		}
		to := ""
		if row.To != nil {
			to = *row.To
		}
		open.From = append(open.From, row.From)
		open.To = append(open.To, to)
	}
	return set
}

// ForName returns the constraint whose only source column is col, or nil.
// Multicolumn constraints never match; they render as standalone lines.
func (s ForeignKeySet) ForName(col string) *ForeignKey {
	for i := range s {
		if len(s[i].From) == 1 && s[i].From[0] == col {
			return &s[i]
		}
	}
	return nil
}

// Multicolumn returns the constraints spanning more than one column.
func (s ForeignKeySet) Multicolumn() []ForeignKey {
	var out []ForeignKey
	for _, fk := range s {
		if len(fk.From) > 1 {
			out = append(out, fk)
		}
	}
	return out
}
