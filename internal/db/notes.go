package db

import (
	"database/sql"
	"fmt"
)

// scanNote scans a row into a Note. The row must carry the six standard
// note columns in order.
func scanNote(scanner interface{ Scan(dest ...any) error }) (Note, error) {
	var n Note
	err := scanner.Scan(
		&n.ID, &n.ParentID, &n.Title, &n.Body,
		&n.CreatedTime, &n.UpdatedTime,
	)
	return n, err
}

// GetNote returns a single note by exact ID, or nil if not found
func (d *DB) GetNote(id string) (*Note, error) {
	row := d.conn.QueryRow(`
		SELECT id, parent_id, title, body, created_time, updated_time
		FROM notes WHERE id = ?
	`, id)

	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// NotesByFolder returns the notes directly inside a folder ordered by title
func (d *DB) NotesByFolder(folderID string) ([]Note, error) {
	rows, err := d.conn.Query(`
		SELECT id, parent_id, title, body, created_time, updated_time
		FROM notes WHERE parent_id = ? ORDER BY title
	`, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// NoteCountsByFolder returns note counts grouped by parent folder.
// Folders without notes have no entry.
func (d *DB) NoteCountsByFolder() (map[string]int, error) {
	rows, err := d.conn.Query(`
		SELECT parent_id, COUNT(*) FROM notes GROUP BY parent_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var parentID string
		var n int
		if err := rows.Scan(&parentID, &n); err != nil {
			return nil, err
		}
		counts[parentID] = n
	}
	return counts, rows.Err()
}

// UpdateNoteBody is the single write this tool performs: it replaces a
// note's body and stamps both updated_time columns the way the Joplin
// client does.
func (d *DB) UpdateNoteBody(id, body string, updatedMs int64) error {
	res, err := d.conn.Exec(`
		UPDATE notes SET body = ?, updated_time = ?, user_updated_time = ?
		WHERE id = ?
	`, body, updatedMs, updatedMs, id)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("updating note: no note with id %s", id)
	}
	return nil
}
