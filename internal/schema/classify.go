package schema

// Classification partitions a table's indexes for display: the primary key
// column list, the columns annotated UNIQUE or indexed inline, and the
// indexes listed in their own block.
type Classification struct {
	PKColumns []string
	Unique    map[string]bool
	Indexed   map[string]bool
	Other     []Index
}

// ClassifyIndexes sorts a table's indexes into the Classification buckets.
//
// The pk-origin index supplies the primary key columns in key order; a table
// has at most one. A single-column index annotates its column inline, UNIQUE
// or indexed. Everything else, composite and expression indexes, goes to
// Other for the index block. Partial indexes route like any other; the flag
// is carried on the Index for anyone who needs it.
//
// An INTEGER PRIMARY KEY aliases the rowid and gets no index at all, so when
// no pk-origin index exists and exactly one column has a PK ordinal, that
// column is the primary key.
func ClassifyIndexes(indexes []Index, columns []Column) Classification {
	c := Classification{
		Unique:  map[string]bool{},
		Indexed: map[string]bool{},
	}

	for _, ix := range indexes {
		switch {
		case ix.Origin == "pk":
			c.PKColumns = ix.Columns
		case len(ix.Columns) == 1:
			if ix.Unique {
				c.Unique[ix.Columns[0]] = true
			} else {
				c.Indexed[ix.Columns[0]] = true
			}
		default:
			c.Other = append(c.Other, ix)
		}
	}

	if len(c.PKColumns) == 0 {
		var pk []string
		for _, col := range columns {
			if col.PKOrdinal > 0 {
				pk = append(pk, col.Name)
			}
		}
		if len(pk) == 1 {
			c.PKColumns = pk
		}
	}

	return c
}

// annotate applies the Classification to a column: PRIMARY KEY when the
// column is a PK by itself, otherwise UNIQUE, otherwise indexed. The
// precedence means a PK column is never also reported UNIQUE.
func (c Classification) annotate(col *Column) {
	switch {
	case col.PKOrdinal > 0 && len(c.PKColumns) <= 1:
		col.PrimaryKey = true
	case c.Unique[col.Name]:
		col.Unique = true
	case c.Indexed[col.Name]:
		col.Indexed = true
	}
}
