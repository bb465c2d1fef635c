// Package nav tracks the session's position in the folder tree. Movement
// is recorded on a back-stack so ".." undoes both plain enters and jumps
// to the root.
package nav

import (
	"fmt"

	"joplin/console/internal/db"
)

// Lookup is the slice of storage the navigator needs to render paths.
// *db.DB satisfies it.
type Lookup interface {
	GetFolder(id string) (*db.Folder, error)
}

// Navigator holds the current folder cursor and the back-stack.
// An empty current id means the root level.
type Navigator struct {
	current string
	back    []string
}

func New() *Navigator {
	return &Navigator{}
}

// CurrentID returns the current folder id, or "" at root level
func (n *Navigator) CurrentID() string {
	return n.current
}

// AtRoot reports whether the cursor is at the root level
func (n *Navigator) AtRoot() bool {
	return n.current == ""
}

// Enter moves into a folder, recording the previous location when one
// was active.
func (n *Navigator) Enter(folderID string) {
	if n.current != "" {
		n.back = append(n.back, n.current)
	}
	n.current = folderID
}

// GoUp pops the most recent location off the back-stack. With an empty
// stack the cursor lands at root level, which is a terminal state rather
// than an error. Returns whether a stacked location was restored.
func (n *Navigator) GoUp() bool {
	if len(n.back) > 0 {
		n.current = n.back[len(n.back)-1]
		n.back = n.back[:len(n.back)-1]
		return true
	}
	n.current = ""
	return false
}

// GoRoot clears the cursor to root level. The current folder is pushed
// first so a following GoUp restores it.
func (n *Navigator) GoRoot() {
	if n.current != "" {
		n.back = append(n.back, n.current)
	}
	n.current = ""
}

// Path returns the folder titles from a root down to the current folder.
// Empty at root level. A missing ancestor or a parent cycle is storage
// corruption: Path reports it instead of walking forever.
func (n *Navigator) Path(lk Lookup) ([]string, error) {
	var titles []string
	seen := make(map[string]bool)
	for id := n.current; id != ""; {
		if seen[id] {
			return nil, fmt.Errorf("folder ancestry loops at %s", id)
		}
		seen[id] = true

		f, err := lk.GetFolder(id)
		if err != nil {
			return nil, fmt.Errorf("walking folder path: %w", err)
		}
		if f == nil {
			return nil, fmt.Errorf("broken folder chain: %s does not exist", id)
		}
		titles = append(titles, f.Title)
		id = f.ParentID
	}

	// Collected child-first, flip to root-first
	for i, j := 0, len(titles)-1; i < j; i, j = i+1, j-1 {
		titles[i], titles[j] = titles[j], titles[i]
	}
	return titles, nil
}
