// Package catalog reads SQLite's schema catalog: the sqlite_schema listing
// and the table-valued PRAGMA functions that describe columns, indexes, and
// foreign keys. It returns typed rows without interpreting them; turning them
// into a schema description is the schema package's job.
package catalog

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Reader is a read-only handle on a single SQLite database file.
type Reader struct {
	db   *sqlx.DB
	path string
}

// Open opens the database file read-only. The file must already exist;
// Open never creates or modifies anything.
func Open(path string) (*Reader, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("open %s: is a directory", path)
	}

	db, err := sqlx.Connect("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	db.SetMaxOpenConns(1) // one connection, one reader

	return &Reader{db: db, path: path}, nil
}

// Path returns the file path the reader was opened on.
func (r *Reader) Path() string {
	return r.path
}

// Close closes the underlying connection.
func (r *Reader) Close() error {
	return r.db.Close()
}
