package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetNote(t *testing.T) {
	d := setupTestDB(t)
	defer d.Close()

	insertNote(t, d, "abc123", "f1", "Todo", "buy milk")

	n, err := d.GetNote("abc123")
	if err != nil {
		t.Fatal(err)
	}
	if n == nil {
		t.Fatal("expected note, got nil")
	}
	if n.Title != "Todo" || n.Body != "buy milk" || n.ParentID != "f1" {
		t.Errorf("unexpected note: %+v", n)
	}
	if n.CreatedTime != 1000 || n.UpdatedTime != 2000 {
		t.Errorf("unexpected timestamps: %d/%d", n.CreatedTime, n.UpdatedTime)
	}
}

func TestGetNote_Missing(t *testing.T) {
	d := setupTestDB(t)
	defer d.Close()

	n, err := d.GetNote("nope")
	if err != nil {
		t.Fatal(err)
	}
	if n != nil {
		t.Errorf("expected nil for missing note, got %+v", n)
	}
}

func TestNotesByFolder_Ordering(t *testing.T) {
	d := setupTestDB(t)
	defer d.Close()

	insertNote(t, d, "n1", "f1", "Zebra", "")
	insertNote(t, d, "n2", "f1", "Apple", "")
	insertNote(t, d, "n3", "other", "Middle", "")

	notes, err := d.NotesByFolder("f1")
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Title != "Apple" || notes[1].Title != "Zebra" {
		t.Errorf("expected [Apple Zebra], got [%s %s]", notes[0].Title, notes[1].Title)
	}
}

func TestNoteCountsByFolder(t *testing.T) {
	d := setupTestDB(t)
	defer d.Close()

	insertNote(t, d, "n1", "f1", "One", "")
	insertNote(t, d, "n2", "f1", "Two", "")
	insertNote(t, d, "n3", "f2", "Three", "")

	counts, err := d.NoteCountsByFolder()
	if err != nil {
		t.Fatal(err)
	}
	if counts["f1"] != 2 || counts["f2"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if _, ok := counts["f3"]; ok {
		t.Error("folder without notes should have no entry")
	}
}

func TestUpdateNoteBody(t *testing.T) {
	d := setupTestDB(t)
	defer d.Close()

	insertNote(t, d, "n1", "f1", "Todo", "old body")

	if err := d.UpdateNoteBody("n1", "new body", 5000); err != nil {
		t.Fatal(err)
	}

	n, err := d.GetNote("n1")
	if err != nil {
		t.Fatal(err)
	}
	if n.Body != "new body" {
		t.Errorf("body not updated, got %q", n.Body)
	}
	if n.UpdatedTime != 5000 {
		t.Errorf("updated_time not stamped, got %d", n.UpdatedTime)
	}

	var userUpdated int64
	if err := d.conn.QueryRow(`SELECT user_updated_time FROM notes WHERE id = 'n1'`).Scan(&userUpdated); err != nil {
		t.Fatal(err)
	}
	if userUpdated != 5000 {
		t.Errorf("user_updated_time not stamped, got %d", userUpdated)
	}
}

func TestUpdateNoteBody_MissingNote(t *testing.T) {
	d := setupTestDB(t)
	defer d.Close()

	if err := d.UpdateNoteBody("nope", "body", 1); err == nil {
		t.Error("expected error for missing note")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.sqlite"), false)
	if err == nil {
		t.Fatal("expected error for missing database file")
	}
}

func TestOpen_ReadOnlyRejectsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// Seed schema and a note through a writable handle
	w, err := Open(path, true)
	if err != nil {
		t.Fatal(err)
	}
	_, err = w.Conn().Exec(`
		CREATE TABLE notes (
			id TEXT PRIMARY KEY,
			parent_id TEXT NOT NULL DEFAULT "",
			title TEXT NOT NULL DEFAULT "",
			body TEXT NOT NULL DEFAULT "",
			created_time INTEGER NOT NULL DEFAULT 0,
			updated_time INTEGER NOT NULL DEFAULT 0,
			user_updated_time INTEGER NOT NULL DEFAULT 0
		);
		INSERT INTO notes (id, title, body) VALUES ('n1', 'Todo', 'body');
	`)
	if err != nil {
		t.Fatal(err)
	}
	w.Close()

	r, err := Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.Writable {
		t.Error("read-only handle reports Writable")
	}
	if err := r.UpdateNoteBody("n1", "changed", 1); err == nil {
		t.Error("expected write to fail on read-only connection")
	}

	// Reads still work
	n, err := r.GetNote("n1")
	if err != nil {
		t.Fatal(err)
	}
	if n == nil || n.Body != "body" {
		t.Errorf("read-only handle cannot read, got %+v", n)
	}
}
