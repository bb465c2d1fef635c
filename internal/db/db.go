package db

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection to a Joplin database file
type DB struct {
	conn     *sql.DB
	Path     string
	Writable bool
}

// Open opens an existing Joplin database. The file must already exist;
// this tool never creates databases. Unless write is set, the connection
// is pinned read-only with PRAGMA query_only so no statement can touch
// the file.
func Open(path string, write bool) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %s", path)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if !write {
		if _, err := conn.Exec("PRAGMA query_only=ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting read-only mode: %w", err)
		}
	}

	return &DB{conn: conn, Path: path, Writable: write}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (d *DB) Conn() *sql.DB {
	return d.conn
}
