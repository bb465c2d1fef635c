package db

import "database/sql"

// scanFolder scans a row into a Folder
func scanFolder(scanner interface{ Scan(dest ...any) error }) (Folder, error) {
	var f Folder
	err := scanner.Scan(&f.ID, &f.Title, &f.ParentID)
	return f, err
}

// FoldersByParent returns the direct child folders of parentID ordered by
// title. An empty parentID selects root-level folders, matching Joplin's
// empty-string root marker.
func (d *DB) FoldersByParent(parentID string) ([]Folder, error) {
	rows, err := d.conn.Query(`
		SELECT id, title, parent_id
		FROM folders WHERE parent_id = ? ORDER BY title
	`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// AllFolders returns every folder ordered by title
func (d *DB) AllFolders() ([]Folder, error) {
	rows, err := d.conn.Query(`
		SELECT id, title, parent_id
		FROM folders ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// GetFolder returns a single folder by ID, or nil if not found
func (d *DB) GetFolder(id string) (*Folder, error) {
	row := d.conn.QueryRow(`
		SELECT id, title, parent_id
		FROM folders WHERE id = ?
	`, id)

	f, err := scanFolder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// NoteCount returns the number of notes directly inside a folder
func (d *DB) NoteCount(folderID string) (int, error) {
	var count int
	err := d.conn.QueryRow(`
		SELECT COUNT(*) FROM notes WHERE parent_id = ?
	`, folderID).Scan(&count)
	return count, err
}
