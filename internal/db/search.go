package db

import "strings"

const searchLimit = 50

// BuildMatchQuery wraps each whitespace-separated token of a user search
// term in FTS quotes so characters that are operators in the MATCH grammar
// (quotes, dashes, parens) cannot break the query. Tokens combine as an
// implicit AND. Returns "" for a blank term.
func BuildMatchQuery(term string) string {
	words := strings.Fields(term)
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " ")
}

// SearchNotes performs full-text search against the notes_fts table that
// the Joplin desktop client maintains. Databases without that table (a
// stripped or partially synced copy) fall back to a plain substring scan
// so search still works, just without tokenization.
func (d *DB) SearchNotes(term string) ([]Note, error) {
	matchQuery := BuildMatchQuery(term)
	if matchQuery == "" {
		return nil, nil
	}

	rows, err := d.conn.Query(`
		SELECT n.id, n.parent_id, n.title, n.body, n.created_time, n.updated_time
		FROM notes_fts ft
		JOIN notes n ON n.rowid = ft.rowid
		WHERE notes_fts MATCH ?
		LIMIT ?
	`, matchQuery, searchLimit)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return d.searchNotesLike(term)
		}
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

func (d *DB) searchNotesLike(term string) ([]Note, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := d.conn.Query(`
		SELECT id, parent_id, title, body, created_time, updated_time
		FROM notes
		WHERE title LIKE ? ESCAPE '\' OR body LIKE ? ESCAPE '\'
		ORDER BY title
		LIMIT ?
	`, pattern, pattern, searchLimit)
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

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
