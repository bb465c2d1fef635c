package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the slice of the
// Joplin schema this tool reads.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// The pool must stay on one connection or the in-memory schema vanishes.
	conn.SetMaxOpenConns(1)

	_, err = conn.Exec(`
		CREATE TABLE folders (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT "",
			parent_id TEXT NOT NULL DEFAULT ""
		);
		CREATE TABLE notes (
			id TEXT PRIMARY KEY,
			parent_id TEXT NOT NULL DEFAULT "",
			title TEXT NOT NULL DEFAULT "",
			body TEXT NOT NULL DEFAULT "",
			created_time INTEGER NOT NULL DEFAULT 0,
			updated_time INTEGER NOT NULL DEFAULT 0,
			user_updated_time INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE tags (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT ""
		);
		CREATE TABLE note_tags (
			id TEXT PRIMARY KEY,
			note_id TEXT NOT NULL,
			tag_id TEXT NOT NULL
		);
		CREATE TABLE resources (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT "",
			mime TEXT NOT NULL DEFAULT "",
			filename TEXT NOT NULL DEFAULT "",
			data BLOB
		);
		CREATE TABLE note_resources (
			id TEXT PRIMARY KEY,
			note_id TEXT NOT NULL,
			resource_id TEXT NOT NULL
		);
	`)
	if err != nil {
		t.Fatal(err)
	}

	return &DB{conn: conn, Path: ":memory:", Writable: true}
}

// setupFTS adds the notes_fts table and indexes every existing note,
// mirroring how the desktop client keeps rowids aligned.
func setupFTS(t *testing.T, d *DB) {
	t.Helper()
	if _, err := d.conn.Exec(`CREATE VIRTUAL TABLE notes_fts USING fts5(title, body)`); err != nil {
		t.Fatal(err)
	}
	_, err := d.conn.Exec(`
		INSERT INTO notes_fts(rowid, title, body)
		SELECT rowid, title, body FROM notes
	`)
	if err != nil {
		t.Fatal(err)
	}
}

func insertFolder(t *testing.T, d *DB, id, title, parentID string) {
	t.Helper()
	_, err := d.conn.Exec(
		`INSERT INTO folders (id, title, parent_id) VALUES (?, ?, ?)`,
		id, title, parentID,
	)
	if err != nil {
		t.Fatal(err)
	}
}

func insertNote(t *testing.T, d *DB, id, folderID, title, body string) {
	t.Helper()
	_, err := d.conn.Exec(
		`INSERT INTO notes (id, parent_id, title, body, created_time, updated_time) VALUES (?, ?, ?, ?, 1000, 2000)`,
		id, folderID, title, body,
	)
	if err != nil {
		t.Fatal(err)
	}
}

func insertTag(t *testing.T, d *DB, tagID, title, noteID string) {
	t.Helper()
	_, err := d.conn.Exec(`INSERT OR IGNORE INTO tags (id, title) VALUES (?, ?)`, tagID, title)
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.conn.Exec(
		`INSERT INTO note_tags (id, note_id, tag_id) VALUES (?, ?, ?)`,
		"nt-"+tagID+"-"+noteID, noteID, tagID,
	)
	if err != nil {
		t.Fatal(err)
	}
}

func insertResource(t *testing.T, d *DB, id, title, mime, filename string, data []byte, noteID string) {
	t.Helper()
	_, err := d.conn.Exec(
		`INSERT INTO resources (id, title, mime, filename, data) VALUES (?, ?, ?, ?, ?)`,
		id, title, mime, filename, data,
	)
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.conn.Exec(
		`INSERT INTO note_resources (id, note_id, resource_id) VALUES (?, ?, ?)`,
		"nr-"+id+"-"+noteID, noteID, id,
	)
	if err != nil {
		t.Fatal(err)
	}
}
