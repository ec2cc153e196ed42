package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Hidden kinds reported by pragma_table_xinfo for a column.
const (
	HiddenNone    = 0 // ordinary column
	HiddenColumn  = 1 // hidden virtual-table column
	HiddenVirtual = 2 // generated, VIRTUAL
	HiddenStored  = 3 // generated, STORED
)

// Sentinels for index key columns that are not table columns.
// pragma_index_info reports cid -1 for the rowid and -2 for an expression.
const (
	RowidKey      = "<rowid>"
	ExpressionKey = "<expression>"
)

// Object is one row of the sqlite_schema table/view listing.
type Object struct {
	Name string `db:"name"`
	Type string `db:"type"`
}

// TableMeta is the catalog's classification of a table, from pragma_table_list.
type TableMeta struct {
	Name         string
	Kind         string // "table", "view", "virtual", or "shadow"
	WithoutRowid bool
	Strict       bool
}

// Column is one row of pragma_table_xinfo.
type Column struct {
	CID       int     `db:"cid"`
	Name      string  `db:"name"`
	Type      string  `db:"type"`
	NotNull   int     `db:"notnull"`
	Default   *string `db:"dflt_value"`
	PKOrdinal int     `db:"pk"`
	Hidden    int     `db:"hidden"`
}

// Index is one row of pragma_index_list.
type Index struct {
	Seq     int    `db:"seq"`
	Name    string `db:"name"`
	Unique  int    `db:"unique"`
	Origin  string `db:"origin"` // "c" created, "u" unique constraint, "pk" primary key
	Partial int    `db:"partial"`
}

// ForeignKeyRow is one row of pragma_foreign_key_list. Rows for a single
// multicolumn constraint share an ID and are ordered by Seq.
type ForeignKeyRow struct {
	ID       int     `db:"id"`
	Seq      int     `db:"seq"`
	Table    string  `db:"table"`
	From     string  `db:"from"`
	To       *string `db:"to"` // nil when the constraint references the parent's primary key implicitly
	OnUpdate string  `db:"on_update"`
	OnDelete string  `db:"on_delete"`
	Match    string  `db:"match"`
}

// Sample is a bounded slice of rows from one table or view.
type Sample struct {
	Columns []string
	Rows    [][]any
}

// Objects lists every table and view in the database, including internal
// sqlite_* tables, in catalog listing order.
func (r *Reader) Objects(ctx context.Context) ([]Object, error) {
	const query = `SELECT name, type FROM sqlite_schema WHERE type IN ('table', 'view')`

	var objs []Object
	if err := r.db.SelectContext(ctx, &objs, query); err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	return objs, nil
}

// ObjectType returns the schema type ("table" or "view") of a named object,
// or ErrNotFound.
func (r *Reader) ObjectType(ctx context.Context, name string) (string, error) {
	const query = `SELECT type FROM sqlite_schema WHERE type IN ('table', 'view') AND name = ?`

	var typ string
	err := r.db.GetContext(ctx, &typ, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("look up %q: %w", name, err)
	}
	return typ, nil
}

// TableMeta reports how the catalog classifies a table: ordinary, view,
// virtual, or shadow, plus the WITHOUT ROWID and STRICT flags.
func (r *Reader) TableMeta(ctx context.Context, name string) (TableMeta, error) {
	const query = `SELECT name, "type", wr, strict FROM pragma_table_list(?) WHERE schema = 'main'`

	var row struct {
		Name   string `db:"name"`
		Type   string `db:"type"`
		WR     int    `db:"wr"`
		Strict int    `db:"strict"`
	}
	err := r.db.GetContext(ctx, &row, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return TableMeta{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return TableMeta{}, fmt.Errorf("table_list for %q: %w", name, err)
	}
	return TableMeta{
		Name:         row.Name,
		Kind:         row.Type,
		WithoutRowid: row.WR != 0,
		Strict:       row.Strict != 0,
	}, nil
}

// Columns returns the columns of a table or view, including hidden and
// generated ones, in declaration order.
func (r *Reader) Columns(ctx context.Context, name string) ([]Column, error) {
	const query = `SELECT cid, name, "type", "notnull", dflt_value, pk, hidden FROM pragma_table_xinfo(?)`

	var cols []Column
	if err := r.db.SelectContext(ctx, &cols, query, name); err != nil {
		return nil, fmt.Errorf("table_xinfo for %q: %w", name, err)
	}
	return cols, nil
}

// Indexes returns the indexes on a table.
func (r *Reader) Indexes(ctx context.Context, name string) ([]Index, error) {
	const query = `SELECT seq, name, "unique", origin, partial FROM pragma_index_list(?)`

	var idxs []Index
	if err := r.db.SelectContext(ctx, &idxs, query, name); err != nil {
		return nil, fmt.Errorf("index_list for %q: %w", name, err)
	}
	return idxs, nil
}

// IndexColumns returns the key columns of an index in index order. Keys that
// are not table columns come back as the RowidKey or ExpressionKey sentinel.
func (r *Reader) IndexColumns(ctx context.Context, indexName string) ([]string, error) {
	const query = `SELECT seqno, cid, name FROM pragma_index_info(?) ORDER BY seqno`

	type infoRow struct {
		SeqNo int     `db:"seqno"`
		CID   int     `db:"cid"`
		Name  *string `db:"name"`
	}

	var rows []infoRow
	if err := r.db.SelectContext(ctx, &rows, query, indexName); err != nil {
		return nil, fmt.Errorf("index_info for %q: %w", indexName, err)
	}

	cols := make([]string, 0, len(rows))
	for _, row := range rows {
		switch {
		case row.Name != nil:
			cols = append(cols, *row.Name)
		case row.CID == -1:
			cols = append(cols, RowidKey)
		default:
			cols = append(cols, ExpressionKey)
		}
	}
	return cols, nil
}

// ForeignKeys returns the raw foreign key rows of a table, ordered by
// (id, seq) so that multicolumn constraints arrive as contiguous runs.
func (r *Reader) ForeignKeys(ctx context.Context, name string) ([]ForeignKeyRow, error) {
	const query = `SELECT id, seq, "table", "from", "to", on_update, on_delete, "match"
		FROM pragma_foreign_key_list(?) ORDER BY id, seq`

	var rows []ForeignKeyRow
	if err := r.db.SelectContext(ctx, &rows, query, name); err != nil {
		return nil, fmt.Errorf("foreign_key_list for %q: %w", name, err)
	}
	return rows, nil
}

// Triggers returns the names of triggers attached to a table, in catalog
// listing order.
func (r *Reader) Triggers(ctx context.Context, name string) ([]string, error) {
	const query = `SELECT name FROM sqlite_schema WHERE type = 'trigger' AND tbl_name = ?`

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, name); err != nil {
		return nil, fmt.Errorf("list triggers for %q: %w", name, err)
	}
	return names, nil
}

// CreateSQL returns the stored CREATE statement for an object. Internal
// objects have no statement; those return the empty string.
func (r *Reader) CreateSQL(ctx context.Context, name string) (string, error) {
	const query = `SELECT sql FROM sqlite_schema WHERE name = ?`

	var stmt sql.NullString
	err := r.db.GetContext(ctx, &stmt, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("create sql for %q: %w", name, err)
	}
	return stmt.String, nil
}

// Count returns the number of rows in a table or view. Counting a view
// evaluates it, so a failing view body surfaces here.
func (r *Reader) Count(ctx context.Context, name string) (int64, error) {
	query := fmt.Sprintf("SELECT count(*) FROM %s", QuoteIdent(name))

	var n int64
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("count %q: %w", name, err)
	}
	return n, nil
}

// CountWhere returns the number of rows matching a filter expression. The
// expression is the user's own SQL and is passed to the engine verbatim.
func (r *Reader) CountWhere(ctx context.Context, name, where string) (int64, error) {
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", QuoteIdent(name), where)

	var n int64
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("count %q: %w", name, err)
	}
	return n, nil
}

// SampleRows reads at most limit rows from a table or view. A non-empty
// where expression is passed to the engine verbatim. Values keep their
// driver types: int64, float64, string, []byte, or nil.
func (r *Reader) SampleRows(ctx context.Context, name, where string, limit int) (*Sample, error) {
	query := fmt.Sprintf("SELECT * FROM %s", QuoteIdent(name))
	if where != "" {
		query += " WHERE " + where
	}
	query += " LIMIT ?"

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("sample %q: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sample %q: %w", name, err)
	}

	sample := &Sample{Columns: cols}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("sample %q: %w", name, err)
		}
		sample.Rows = append(sample.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sample %q: %w", name, err)
	}
	return sample, nil
}
