// Package tree analyzes the folder forest for structural problems:
// parent cycles, dangling parent references, and depth/note
// distribution statistics.
package tree

import "sort"

// FolderInfo is a lightweight folder representation decoupled from DB types
type FolderInfo struct {
	ID       string
	Title    string
	ParentID string
}

// Snapshot holds the folder forest with note counts per folder
type Snapshot struct {
	Folders map[string]*FolderInfo
	Notes   map[string]int
}

// NewSnapshot builds a Snapshot from raw folders and per-folder note counts
func NewSnapshot(folders []*FolderInfo, noteCounts map[string]int) *Snapshot {
	folderMap := make(map[string]*FolderInfo, len(folders))
	for _, f := range folders {
		folderMap[f.ID] = f
	}
	if noteCounts == nil {
		noteCounts = map[string]int{}
	}
	return &Snapshot{Folders: folderMap, Notes: noteCounts}
}

// FolderIDs returns a sorted list of all folder IDs (for deterministic output)
func (s *Snapshot) FolderIDs() []string {
	ids := make([]string, 0, len(s.Folders))
	for id := range s.Folders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
