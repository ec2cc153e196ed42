package catalog

import "errors"

// ErrNotFound is returned when a requested table or view does not exist
// in the database.
var ErrNotFound = errors.New("no such table or view")
