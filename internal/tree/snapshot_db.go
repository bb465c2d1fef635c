package tree

import "joplin/console/internal/db"

// SnapshotFromDB loads a folder-forest Snapshot from the database
func SnapshotFromDB(d *db.DB) (*Snapshot, error) {
	dbFolders, err := d.AllFolders()
	if err != nil {
		return nil, err
	}
	counts, err := d.NoteCountsByFolder()
	if err != nil {
		return nil, err
	}

	folders := make([]*FolderInfo, 0, len(dbFolders))
	for _, f := range dbFolders {
		folders = append(folders, &FolderInfo{
			ID:       f.ID,
			Title:    f.Title,
			ParentID: f.ParentID,
		})
	}
	return NewSnapshot(folders, counts), nil
}
