package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

// newTestReader builds a database file from ddl in a temp dir and reopens it
// through the read-only path.
func newTestReader(t *testing.T, ddl string) *Reader {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		t.Fatalf("create fixture db: %v", err)
	}
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		t.Fatalf("apply fixture ddl: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close fixture db: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

const fixtureDDL = `
	CREATE TABLE t1 (a INT);
	CREATE UNIQUE INDEX t1_a ON t1 (a);
	CREATE TABLE multi_pk (a, b, c, PRIMARY KEY (b, a));
	CREATE TABLE "select" ("CREATE" INTEGER PRIMARY KEY, a, b,
		FOREIGN KEY (a, b) REFERENCES multi_pk (a, b));
	CREATE VIEW v1 (recip_a) AS SELECT (1/a) FROM t1 WHERE a != 0;
`

// ---------------------------------------------------------------------------
// Open
// ---------------------------------------------------------------------------

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"))
	if err == nil {
		t.Fatal("Open on a missing file should fail")
	}
}

func TestOpenDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	if err == nil {
		t.Fatal("Open on a directory should fail")
	}
}

func TestOpenIsReadOnly(t *testing.T) {
	r := newTestReader(t, fixtureDDL)

	if _, err := r.db.Exec(`INSERT INTO t1 (a) VALUES (1)`); err == nil {
		t.Fatal("write through a read-only handle should fail")
	}
}

// ---------------------------------------------------------------------------
// Listings
// ---------------------------------------------------------------------------

func TestObjects(t *testing.T) {
	r := newTestReader(t, fixtureDDL)

	objs, err := r.Objects(context.Background())
	if err != nil {
		t.Fatalf("Objects: %v", err)
	}

	byName := map[string]string{}
	for _, o := range objs {
		byName[o.Name] = o.Type
	}
	want := map[string]string{
		"t1":       "table",
		"multi_pk": "table",
		"select":   "table",
		"v1":       "view",
	}
	for name, typ := range want {
		if byName[name] != typ {
			t.Errorf("object %q = %q, want %q", name, byName[name], typ)
		}
	}
}

func TestObjectsOrder(t *testing.T) {
	r := newTestReader(t, fixtureDDL)

	objs, err := r.Objects(context.Background())
	if err != nil {
		t.Fatalf("Objects: %v", err)
	}

	// Catalog listing order is creation order, not name order.
	var names []string
	for _, o := range objs {
		names = append(names, o.Name)
	}
	want := []string{"t1", "multi_pk", "select", "v1"}
	if len(names) != len(want) {
		t.Fatalf("Objects = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Objects = %v, want %v", names, want)
		}
	}
}

func TestObjectType(t *testing.T) {
	r := newTestReader(t, fixtureDDL)
	ctx := context.Background()

	tests := []struct {
		name    string
		object  string
		want    string
		wantErr error
	}{
		{"table", "t1", "table", nil},
		{"view", "v1", "view", nil},
		{"quoted keyword table", "select", "table", nil},
		{"unknown", "nope", "", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ObjectType(ctx, tt.object)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ObjectType(%q) error = %v, want %v", tt.object, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ObjectType(%q): %v", tt.object, err)
			}
			if got != tt.want {
				t.Errorf("ObjectType(%q) = %q, want %q", tt.object, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Table metadata
// ---------------------------------------------------------------------------

func TestTableMeta(t *testing.T) {
	ddl := fixtureDDL + `
		CREATE TABLE st (a INTEGER) STRICT;
		CREATE TABLE wr (a TEXT PRIMARY KEY) WITHOUT ROWID;
		CREATE TABLE both (a INTEGER PRIMARY KEY, b ANY) STRICT, WITHOUT ROWID;
	`
	r := newTestReader(t, ddl)
	ctx := context.Background()

	tests := []struct {
		name string
		want TableMeta
	}{
		{"t1", TableMeta{Name: "t1", Kind: "table"}},
		{"v1", TableMeta{Name: "v1", Kind: "view"}},
		{"st", TableMeta{Name: "st", Kind: "table", Strict: true}},
		{"wr", TableMeta{Name: "wr", Kind: "table", WithoutRowid: true}},
		{"both", TableMeta{Name: "both", Kind: "table", Strict: true, WithoutRowid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.TableMeta(ctx, tt.name)
			if err != nil {
				t.Fatalf("TableMeta(%q): %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("TableMeta(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}

	if _, err := r.TableMeta(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("TableMeta on unknown table = %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Columns
// ---------------------------------------------------------------------------

func TestColumnsPKOrdinals(t *testing.T) {
	r := newTestReader(t, fixtureDDL)

	cols, err := r.Columns(context.Background(), "multi_pk")
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("got %d columns, want 3", len(cols))
	}

	// PRIMARY KEY (b, a): ordinals follow key order, not declaration order.
	ordinals := map[string]int{}
	for _, c := range cols {
		ordinals[c.Name] = c.PKOrdinal
	}
	if ordinals["b"] != 1 || ordinals["a"] != 2 || ordinals["c"] != 0 {
		t.Errorf("pk ordinals = %v, want b=1 a=2 c=0", ordinals)
	}
}

func TestColumnsGenerated(t *testing.T) {
	ddl := `
		CREATE TABLE g (
			a INTEGER NOT NULL,
			square INTEGER AS (a * a) STORED,
			hexa TEXT GENERATED ALWAYS AS (hex(a))
		);
	`
	r := newTestReader(t, ddl)

	cols, err := r.Columns(context.Background(), "g")
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}

	hidden := map[string]int{}
	notnull := map[string]int{}
	for _, c := range cols {
		hidden[c.Name] = c.Hidden
		notnull[c.Name] = c.NotNull
	}
	if hidden["a"] != HiddenNone {
		t.Errorf("a hidden = %d, want %d", hidden["a"], HiddenNone)
	}
	if hidden["square"] != HiddenStored {
		t.Errorf("square hidden = %d, want %d", hidden["square"], HiddenStored)
	}
	if hidden["hexa"] != HiddenVirtual {
		t.Errorf("hexa hidden = %d, want %d", hidden["hexa"], HiddenVirtual)
	}
	if notnull["a"] != 1 {
		t.Errorf("a notnull = %d, want 1", notnull["a"])
	}
}

func TestColumnsDefault(t *testing.T) {
	r := newTestReader(t, `CREATE TABLE d (a TEXT DEFAULT 'x', b INT);`)

	cols, err := r.Columns(context.Background(), "d")
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	if cols[0].Default == nil || *cols[0].Default != "'x'" {
		t.Errorf("a default = %v, want 'x' literal", cols[0].Default)
	}
	if cols[1].Default != nil {
		t.Errorf("b default = %q, want nil", *cols[1].Default)
	}
}

// ---------------------------------------------------------------------------
// Indexes
// ---------------------------------------------------------------------------

func TestIndexes(t *testing.T) {
	r := newTestReader(t, fixtureDDL)
	ctx := context.Background()

	idxs, err := r.Indexes(ctx, "t1")
	if err != nil {
		t.Fatalf("Indexes: %v", err)
	}
	if len(idxs) != 1 {
		t.Fatalf("got %d indexes on t1, want 1", len(idxs))
	}
	if idxs[0].Name != "t1_a" || idxs[0].Unique != 1 || idxs[0].Origin != "c" {
		t.Errorf("t1_a = %+v, want unique created index", idxs[0])
	}

	idxs, err = r.Indexes(ctx, "multi_pk")
	if err != nil {
		t.Fatalf("Indexes: %v", err)
	}
	if len(idxs) != 1 || idxs[0].Origin != "pk" {
		t.Fatalf("multi_pk indexes = %+v, want one pk-origin autoindex", idxs)
	}

	cols, err := r.IndexColumns(ctx, idxs[0].Name)
	if err != nil {
		t.Fatalf("IndexColumns: %v", err)
	}
	if len(cols) != 2 || cols[0] != "b" || cols[1] != "a" {
		t.Errorf("pk index columns = %v, want [b a]", cols)
	}
}

func TestIndexColumnsExpression(t *testing.T) {
	ddl := fixtureDDL + `CREATE INDEX t1_abs ON t1 (abs(a));`
	r := newTestReader(t, ddl)

	cols, err := r.IndexColumns(context.Background(), "t1_abs")
	if err != nil {
		t.Fatalf("IndexColumns: %v", err)
	}
	if len(cols) != 1 || cols[0] != ExpressionKey {
		t.Errorf("expression index columns = %v, want [%s]", cols, ExpressionKey)
	}
}

func TestIndexesPartial(t *testing.T) {
	ddl := `
		CREATE TABLE p (a INT, b INT);
		CREATE INDEX p_a ON p (a) WHERE b > 0;
	`
	r := newTestReader(t, ddl)

	idxs, err := r.Indexes(context.Background(), "p")
	if err != nil {
		t.Fatalf("Indexes: %v", err)
	}
	if len(idxs) != 1 || idxs[0].Partial != 1 {
		t.Errorf("p indexes = %+v, want one partial index", idxs)
	}
}

// ---------------------------------------------------------------------------
// Foreign keys
// ---------------------------------------------------------------------------

func TestForeignKeysOrdered(t *testing.T) {
	r := newTestReader(t, fixtureDDL)

	rows, err := r.ForeignKeys(context.Background(), "select")
	if err != nil {
		t.Fatalf("ForeignKeys: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d fk rows, want 2", len(rows))
	}
	for i, row := range rows {
		if row.ID != 0 || row.Seq != i {
			t.Errorf("row %d = id %d seq %d, want id 0 seq %d", i, row.ID, row.Seq, i)
		}
		if row.Table != "multi_pk" {
			t.Errorf("row %d table = %q, want multi_pk", i, row.Table)
		}
	}
	if rows[0].From != "a" || rows[1].From != "b" {
		t.Errorf("from columns = %q, %q, want a, b", rows[0].From, rows[1].From)
	}
	if rows[0].To == nil || *rows[0].To != "a" {
		t.Errorf("row 0 to = %v, want a", rows[0].To)
	}
}

func TestForeignKeysImplicitTarget(t *testing.T) {
	ddl := `
		CREATE TABLE parent (id INTEGER PRIMARY KEY);
		CREATE TABLE child (p INTEGER REFERENCES parent);
	`
	r := newTestReader(t, ddl)

	rows, err := r.ForeignKeys(context.Background(), "child")
	if err != nil {
		t.Fatalf("ForeignKeys: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d fk rows, want 1", len(rows))
	}
	if rows[0].To != nil {
		t.Errorf("implicit fk target = %q, want nil", *rows[0].To)
	}
}

// ---------------------------------------------------------------------------
// Triggers and CREATE statements
// ---------------------------------------------------------------------------

func TestTriggers(t *testing.T) {
	ddl := fixtureDDL + `
		CREATE TRIGGER t1_audit AFTER INSERT ON t1 BEGIN
			SELECT 1;
		END;
	`
	r := newTestReader(t, ddl)
	ctx := context.Background()

	names, err := r.Triggers(ctx, "t1")
	if err != nil {
		t.Fatalf("Triggers: %v", err)
	}
	if len(names) != 1 || names[0] != "t1_audit" {
		t.Errorf("Triggers(t1) = %v, want [t1_audit]", names)
	}

	names, err = r.Triggers(ctx, "multi_pk")
	if err != nil {
		t.Fatalf("Triggers: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Triggers(multi_pk) = %v, want none", names)
	}
}

func TestCreateSQL(t *testing.T) {
	r := newTestReader(t, fixtureDDL)

	stmt, err := r.CreateSQL(context.Background(), "v1")
	if err != nil {
		t.Fatalf("CreateSQL: %v", err)
	}
	want := "CREATE VIEW v1 (recip_a) AS SELECT (1/a) FROM t1 WHERE a != 0"
	if stmt != want {
		t.Errorf("CreateSQL(v1) = %q, want %q", stmt, want)
	}

	if _, err := r.CreateSQL(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateSQL on unknown object = %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Counting and sampling
// ---------------------------------------------------------------------------

func TestCount(t *testing.T) {
	ddl := fixtureDDL + `
		INSERT INTO t1 (a) VALUES (0), (1), (2);
	`
	r := newTestReader(t, ddl)
	ctx := context.Background()

	n, err := r.Count(ctx, "t1")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count(t1) = %d, want 3", n)
	}

	// Counting a view evaluates its body.
	n, err = r.Count(ctx, "v1")
	if err != nil {
		t.Fatalf("Count(v1): %v", err)
	}
	if n != 2 {
		t.Errorf("Count(v1) = %d, want 2", n)
	}

	n, err = r.CountWhere(ctx, "t1", "a > 0")
	if err != nil {
		t.Fatalf("CountWhere: %v", err)
	}
	if n != 2 {
		t.Errorf("CountWhere(t1, a > 0) = %d, want 2", n)
	}

	if _, err := r.CountWhere(ctx, "t1", "no_such_column = 1"); err == nil {
		t.Error("CountWhere with a bad expression should fail")
	}
}

func TestSampleRows(t *testing.T) {
	ddl := `
		CREATE TABLE s (id INTEGER PRIMARY KEY, name TEXT, data BLOB, score REAL);
		INSERT INTO s (name, data, score) VALUES
			('alpha', x'0102', 1.5),
			('beta', NULL, 2.5),
			('gamma', x'03', 3.5);
	`
	r := newTestReader(t, ddl)
	ctx := context.Background()

	sample, err := r.SampleRows(ctx, "s", "", 2)
	if err != nil {
		t.Fatalf("SampleRows: %v", err)
	}
	wantCols := []string{"id", "name", "data", "score"}
	if len(sample.Columns) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", sample.Columns, wantCols)
	}
	for i := range wantCols {
		if sample.Columns[i] != wantCols[i] {
			t.Fatalf("columns = %v, want %v", sample.Columns, wantCols)
		}
	}
	if len(sample.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(sample.Rows))
	}

	row := sample.Rows[0]
	if _, ok := row[0].(int64); !ok {
		t.Errorf("id value = %T, want int64", row[0])
	}
	if s, ok := row[1].(string); !ok || s != "alpha" {
		t.Errorf("name value = %v (%T), want alpha", row[1], row[1])
	}
	if b, ok := row[2].([]byte); !ok || len(b) != 2 {
		t.Errorf("data value = %v (%T), want 2-byte blob", row[2], row[2])
	}
	if _, ok := row[3].(float64); !ok {
		t.Errorf("score value = %T, want float64", row[3])
	}
	if sample.Rows[1][2] != nil {
		t.Errorf("NULL blob = %v, want nil", sample.Rows[1][2])
	}
}

func TestSampleRowsWhere(t *testing.T) {
	ddl := `
		CREATE TABLE s (a INT);
		INSERT INTO s (a) VALUES (1), (2), (3), (4);
	`
	r := newTestReader(t, ddl)
	ctx := context.Background()

	sample, err := r.SampleRows(ctx, "s", "a % 2 = 0", 10)
	if err != nil {
		t.Fatalf("SampleRows: %v", err)
	}
	if len(sample.Rows) != 2 {
		t.Errorf("got %d rows, want 2", len(sample.Rows))
	}

	if _, err := r.SampleRows(ctx, "s", "bogus syntax here", 10); err == nil {
		t.Error("SampleRows with a bad where expression should fail")
	}
}

func TestSampleRowsZeroLimit(t *testing.T) {
	ddl := `
		CREATE TABLE s (a INT);
		INSERT INTO s (a) VALUES (1);
	`
	r := newTestReader(t, ddl)

	sample, err := r.SampleRows(context.Background(), "s", "", 0)
	if err != nil {
		t.Fatalf("SampleRows: %v", err)
	}
	if len(sample.Columns) != 1 {
		t.Errorf("columns = %v, want [a]", sample.Columns)
	}
	if len(sample.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(sample.Rows))
	}
}
