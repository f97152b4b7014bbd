package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

func appDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	base := filepath.Join(home, ".local", "share", "gatedesk")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	return base, nil
}

// Open opens the database at path, or the default location when path
// is empty, and applies the schema.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		dir, err := appDataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "gatedesk.db")
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path,
	)

	dbh, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := migrate(dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}

	return dbh, nil
}

// OpenMemory opens a throwaway in-memory database. Used by tests.
func OpenMemory() (*sql.DB, error) {
	dbh, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, err
	}
	// each pooled connection would otherwise get its own empty memory db
	dbh.SetMaxOpenConns(1)
	if err := migrate(dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	return dbh, nil
}

func migrate(dbh *sql.DB) error {
	b, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := dbh.Exec(string(b)); err != nil {
		return errors.Join(fmt.Errorf("schema apply failed"), err)
	}
	return nil
}
