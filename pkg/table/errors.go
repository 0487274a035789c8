package table

import (
	"errors"
	"fmt"
	"strings"

	// also registers the "sqlite" database/sql driver
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrSchema reports a malformed table spec, an unknown table or column,
	// or a reference to a table that does not exist.
	ErrSchema = errors.New("table: schema error")
	// ErrConstraintViolation reports a unique, foreign key, NOT NULL or
	// check constraint failure.
	ErrConstraintViolation = errors.New("table: constraint violation")
)

// classify maps driver errors onto the package sentinels. Unrecognized
// errors are returned unchanged.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%s: %w: %w", op, ErrConstraintViolation, err)
		case sqlite3.SQLITE_ERROR:
			if strings.Contains(se.Error(), "no such table") || strings.Contains(se.Error(), "no such column") {
				return fmt.Errorf("%s: %w: %w", op, ErrSchema, err)
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
