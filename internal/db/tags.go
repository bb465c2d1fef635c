package db

// TagTitles returns the titles of all tags attached to a note, ordered
// alphabetically
func (d *DB) TagTitles(noteID string) ([]string, error) {
	rows, err := d.conn.Query(`
		SELECT t.title
		FROM tags t
		JOIN note_tags nt ON t.id = nt.tag_id
		WHERE nt.note_id = ?
		ORDER BY t.title
	`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}
