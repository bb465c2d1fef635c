package db

import "database/sql"

// scanResource scans a row into a Resource
func scanResource(scanner interface{ Scan(dest ...any) error }) (Resource, error) {
	var r Resource
	err := scanner.Scan(&r.ID, &r.Title, &r.Mime, &r.Filename)
	return r, err
}

// Resources returns the attachments of a note ordered by title. Payloads
// are not loaded here; fetch them one at a time with ResourceData.
func (d *DB) Resources(noteID string) ([]Resource, error) {
	rows, err := d.conn.Query(`
		SELECT r.id, r.title, r.mime, r.filename
		FROM resources r
		JOIN note_resources nr ON r.id = nr.resource_id
		WHERE nr.note_id = ?
		ORDER BY r.title
	`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// ResourceData returns the binary payload of a resource, or nil when the
// resource is missing or its payload was never synced.
func (d *DB) ResourceData(resourceID string) ([]byte, error) {
	var data []byte
	err := d.conn.QueryRow(`
		SELECT data FROM resources WHERE id = ?
	`, resourceID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
