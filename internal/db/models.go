package db

import "time"

// Folder represents a row in the folders table. Joplin marks root-level
// folders with an empty parent_id rather than NULL.
type Folder struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ParentID string `json:"parent_id"`
}

// Note represents a row in the notes table
type Note struct {
	ID          string `json:"id"`
	ParentID    string `json:"parent_id"` // owning folder id
	Title       string `json:"title"`
	Body        string `json:"body"`
	CreatedTime int64  `json:"created_time"` // Unix millis, 0 = unknown
	UpdatedTime int64  `json:"updated_time"` // Unix millis, 0 = unknown
}

// Resource represents a row in the resources table. Payload bytes live in
// the data column and are fetched separately via ResourceData.
type Resource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Mime     string `json:"mime"`     // empty = unknown
	Filename string `json:"filename"` // original filename, often empty
}

// FormatTime renders a millisecond epoch timestamp as YYYY-MM-DD HH:MM:SS,
// or an em dash placeholder when the timestamp is unset.
func FormatTime(ms int64) string {
	if ms == 0 {
		return "—"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}
