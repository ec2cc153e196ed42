// Package schema builds the description of a SQLite database that the
// report renders: tables with classified indexes and constraints, views,
// and the hidden shadow/system groups. Everything here is assembled fresh
// from catalog reads per invocation and discarded after rendering.
package schema

// Table kinds as classified by the catalog.
const (
	KindTable   = "table"
	KindVirtual = "virtual"
	KindShadow  = "shadow"
)

// Description is the full schema description of one database file.
type Description struct {
	Path         string  `json:"path" yaml:"path"`
	Tables       []Table `json:"tables" yaml:"tables"`
	Views        []View  `json:"views" yaml:"views"`
	ShadowTables []Table `json:"shadow_tables,omitempty" yaml:"shadow_tables,omitempty"`
	SystemTables []Table `json:"system_tables,omitempty" yaml:"system_tables,omitempty"`
}

// TableCount is the number of tables in the listing, hidden groups included.
// Views are listed but not counted.
func (d *Description) TableCount() int {
	return len(d.Tables) + len(d.ShadowTables) + len(d.SystemTables)
}

// Table describes one table: its columns with display annotations already
// resolved, the primary key, constraints, and the indexes listed separately.
type Table struct {
	Name         string       `json:"name" yaml:"name"`
	Kind         string       `json:"kind" yaml:"kind"`
	Module       string       `json:"module,omitempty" yaml:"module,omitempty"` // virtual table module
	Strict       bool         `json:"strict,omitempty" yaml:"strict,omitempty"`
	WithoutRowid bool         `json:"without_rowid,omitempty" yaml:"without_rowid,omitempty"`
	RowCount     int64        `json:"row_count" yaml:"row_count"`
	Columns      []Column     `json:"columns" yaml:"columns"`
	PKColumns    []string     `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	ForeignKeys  []ForeignKey `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
	OtherIndexes []Index      `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	Triggers     []string     `json:"triggers,omitempty" yaml:"triggers,omitempty"`
}

// Column describes one column. The PrimaryKey/Unique/Indexed annotations are
// mutually exclusive; the builder resolves their precedence so renderers do
// not re-derive it.
type Column struct {
	Name       string  `json:"name" yaml:"name"`
	Type       string  `json:"type,omitempty" yaml:"type,omitempty"`
	NotNull    bool    `json:"not_null,omitempty" yaml:"not_null,omitempty"`
	Default    *string `json:"default,omitempty" yaml:"default,omitempty"`
	PKOrdinal  int     `json:"-" yaml:"-"`
	Hidden     int     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	PrimaryKey bool    `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	Unique     bool    `json:"unique,omitempty" yaml:"unique,omitempty"`
	Indexed    bool    `json:"indexed,omitempty" yaml:"indexed,omitempty"`
	Ref        *Ref    `json:"references,omitempty" yaml:"references,omitempty"`
	Generated  string  `json:"generated,omitempty" yaml:"generated,omitempty"` // recovered expression
	Stored     bool    `json:"stored,omitempty" yaml:"stored,omitempty"`
}

// Ref is a single-column foreign key reference shown inline on the column.
// Column is empty when the constraint references the parent's primary key
// implicitly.
type Ref struct {
	Table  string `json:"table" yaml:"table"`
	Column string `json:"column,omitempty" yaml:"column,omitempty"`
}

// Index describes one index with its resolved key columns.
type Index struct {
	Name    string   `json:"name" yaml:"name"`
	Origin  string   `json:"origin" yaml:"origin"`
	Unique  bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Partial bool     `json:"partial,omitempty" yaml:"partial,omitempty"`
	Columns []string `json:"columns" yaml:"columns"`
}

// ForeignKey is one resolved constraint. From and To hold the column pairs
// in constraint order; a To entry is empty when the target is the parent's
// implicit primary key.
type ForeignKey struct {
	Table    string   `json:"table" yaml:"table"`
	From     []string `json:"from" yaml:"from"`
	To       []string `json:"to" yaml:"to"`
	OnUpdate string   `json:"on_update,omitempty" yaml:"on_update,omitempty"`
	OnDelete string   `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
}

// View describes one view: name, row count, column names, and the SELECT
// body recovered from its CREATE statement (empty when unrecoverable).
type View struct {
	Name     string   `json:"name" yaml:"name"`
	RowCount int64    `json:"row_count" yaml:"row_count"`
	Columns  []string `json:"columns" yaml:"columns"`
	Select   string   `json:"select,omitempty" yaml:"select,omitempty"`
}
