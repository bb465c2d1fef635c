package tree

import "sort"

// DepthBucket is one bucket in the folder depth histogram
type DepthBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CycleMember is one folder on a parent cycle
type CycleMember struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Orphan is a folder whose parent id names a folder that does not exist
type Orphan struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	MissingParent string `json:"missing_parent"`
}

// FolderNotes pairs a folder with its note count
type FolderNotes struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Notes int    `json:"notes"`
}

// Report contains folder-forest integrity results
type Report struct {
	TotalFolders     int             `json:"total_folders"`
	TotalNotes       int             `json:"total_notes"`
	RootCount        int             `json:"root_count"`
	EmptyFolders     int             `json:"empty_folders"`
	MaxDepth         int             `json:"max_depth"`
	DepthHistogram   []DepthBucket   `json:"depth_histogram"`
	Cycles           [][]CycleMember `json:"cycles"`
	Orphans          []Orphan        `json:"orphans"`
	NoteDistribution []FolderNotes   `json:"note_distribution"`
}

// Healthy reports whether the forest is free of cycles and orphans
func (r *Report) Healthy() bool {
	return len(r.Cycles) == 0 && len(r.Orphans) == 0
}

const (
	stateUnresolved = iota
	stateResolved
	stateTainted
)

// Check walks every folder's parent chain once, memoizing depths.
// Folders on or below a cycle are excluded from depth statistics; an
// orphan acts as the root of its own subtree so its descendants still
// get a relative depth.
func Check(snap *Snapshot, topN int) *Report {
	ids := snap.FolderIDs()

	state := make(map[string]int, len(ids))
	depth := make(map[string]int, len(ids))
	var cycles [][]CycleMember
	var orphans []Orphan

	for _, start := range ids {
		if state[start] != stateUnresolved {
			continue
		}
		var path []string
		index := make(map[string]int)
		cur := start
		for {
			if cur == "" {
				resolvePath(path, 0, state, depth)
				break
			}
			if st := state[cur]; st != stateUnresolved {
				if st == stateResolved {
					resolvePath(path, depth[cur]+1, state, depth)
				} else {
					taintPath(path, state)
				}
				break
			}
			if pos, ok := index[cur]; ok {
				loop := normalizeCycle(path[pos:])
				members := make([]CycleMember, len(loop))
				for i, id := range loop {
					members[i] = CycleMember{ID: id, Title: snap.Folders[id].Title}
				}
				cycles = append(cycles, members)
				taintPath(path, state)
				break
			}
			f, ok := snap.Folders[cur]
			if !ok {
				child := path[len(path)-1]
				orphans = append(orphans, Orphan{
					ID:            child,
					Title:         snap.Folders[child].Title,
					MissingParent: cur,
				})
				resolvePath(path, 0, state, depth)
				break
			}
			index[cur] = len(path)
			path = append(path, cur)
			cur = f.ParentID
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0].ID < cycles[j][0].ID })
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].ID < orphans[j].ID })

	report := &Report{
		TotalFolders:   len(ids),
		DepthHistogram: defaultDepthHistogram(),
		Cycles:         cycles,
		Orphans:        orphans,
	}

	for _, id := range ids {
		if snap.Folders[id].ParentID == "" {
			report.RootCount++
		}
		if state[id] != stateResolved {
			continue
		}
		d := depth[id]
		if d > report.MaxDepth {
			report.MaxDepth = d
		}
		report.DepthHistogram[depthBucket(d)].Count++
	}

	var dist []FolderNotes
	for _, id := range ids {
		n := snap.Notes[id]
		report.TotalNotes += n
		if n == 0 {
			report.EmptyFolders++
			continue
		}
		dist = append(dist, FolderNotes{ID: id, Title: snap.Folders[id].Title, Notes: n})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Notes != dist[j].Notes {
			return dist[i].Notes > dist[j].Notes
		}
		return dist[i].ID < dist[j].ID
	})
	if len(dist) > topN {
		dist = dist[:topN]
	}
	report.NoteDistribution = dist

	return report
}

// resolvePath assigns depths walking down from the chain's top folder
func resolvePath(path []string, topDepth int, state, depth map[string]int) {
	for i := len(path) - 1; i >= 0; i-- {
		depth[path[i]] = topDepth + (len(path) - 1 - i)
		state[path[i]] = stateResolved
	}
}

func taintPath(path []string, state map[string]int) {
	for _, id := range path {
		state[id] = stateTainted
	}
}

// normalizeCycle rotates a cycle so its smallest id comes first,
// keeping discovery order independent of the walk's entry point
func normalizeCycle(loop []string) []string {
	min := 0
	for i, id := range loop {
		if id < loop[min] {
			min = i
		}
	}
	out := make([]string, 0, len(loop))
	out = append(out, loop[min:]...)
	out = append(out, loop[:min]...)
	return out
}

func defaultDepthHistogram() []DepthBucket {
	return []DepthBucket{
		{Label: "0"}, {Label: "1"}, {Label: "2"},
		{Label: "3"}, {Label: "4-5"}, {Label: "6+"},
	}
}

func depthBucket(d int) int {
	switch {
	case d <= 3:
		return d
	case d <= 5:
		return 4
	default:
		return 5
	}
}
