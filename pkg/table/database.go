package table

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
)

const memoryPath = ":memory:"

// CreateDatabase opens the database file <name>.db, creating it when it does
// not exist. A name that already has an extension, or ":memory:", is used
// as is.
func CreateDatabase(name string) (*sql.DB, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create database: empty name")
	}
	path := name
	if name != memoryPath && filepath.Ext(name) == "" {
		path = name + ".db"
	}
	return ConnectDatabase(path)
}

// ConnectDatabase opens the database at path. Foreign keys are enforced and
// the pool is limited to one connection, so writers are serialized and an
// in-memory database stays a single database.
func ConnectDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func dsn(path string) string {
	pragmas := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)"}
	if path != memoryPath {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}
	return path + "?" + strings.Join(pragmas, "&")
}
