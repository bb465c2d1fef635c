package resolve

import (
	"errors"
	"sort"
	"testing"

	"joplin/console/internal/db"
)

// fakeStore serves folders and notes from memory with the same
// alphabetical ordering the storage layer produces.
type fakeStore struct {
	folders []db.Folder
	notes   []db.Note
}

func (f *fakeStore) FoldersByParent(parentID string) ([]db.Folder, error) {
	var out []db.Folder
	for _, folder := range f.folders {
		if folder.ParentID == parentID {
			out = append(out, folder)
		}
	}
	sortFolders(out)
	return out, nil
}

func (f *fakeStore) AllFolders() ([]db.Folder, error) {
	out := append([]db.Folder(nil), f.folders...)
	sortFolders(out)
	return out, nil
}

func (f *fakeStore) NotesByFolder(folderID string) ([]db.Note, error) {
	var out []db.Note
	for _, n := range f.notes {
		if n.ParentID == folderID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (f *fakeStore) GetNote(id string) (*db.Note, error) {
	for i := range f.notes {
		if f.notes[i].ID == id {
			return &f.notes[i], nil
		}
	}
	return nil, nil
}

func sortFolders(folders []db.Folder) {
	sort.Slice(folders, func(i, j int) bool { return folders[i].Title < folders[j].Title })
}

func testStore() *fakeStore {
	return &fakeStore{
		folders: []db.Folder{
			{ID: "aaaa1111aaaa1111", Title: "Work", ParentID: ""},
			{ID: "bbbb2222bbbb2222", Title: "Home", ParentID: ""},
			{ID: "aabb3333aabb3333", Title: "Archive", ParentID: "aaaa1111aaaa1111"},
		},
		notes: []db.Note{
			{ID: "cccc3333cccc3333", ParentID: "aaaa1111aaaa1111", Title: "Todo"},
			{ID: "dead1111dead1111", ParentID: "aaaa1111aaaa1111", Title: "Draft A"},
			{ID: "dead2222dead2222", ParentID: "aaaa1111aaaa1111", Title: "Draft B"},
			{ID: "eeee4444eeee4444", ParentID: "bbbb2222bbbb2222", Title: "Groceries"},
		},
	}
}

func TestFolder_UniquePrefix(t *testing.T) {
	f, err := Folder(testStore(), Scope{}, "aaaa")
	if err != nil {
		t.Fatal(err)
	}
	if f.Title != "Work" {
		t.Errorf("expected Work, got %s", f.Title)
	}
}

func TestFolder_FullID(t *testing.T) {
	f, err := Folder(testStore(), Scope{}, "bbbb2222bbbb2222")
	if err != nil {
		t.Fatal(err)
	}
	if f.Title != "Home" {
		t.Errorf("expected Home, got %s", f.Title)
	}
}

func TestFolder_NotFound(t *testing.T) {
	_, err := Folder(testStore(), Scope{}, "zzzz")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFolder_ScopedToChildren(t *testing.T) {
	// "aabb" names a child of Work, invisible from the root scope
	_, err := Folder(testStore(), Scope{}, "aabb")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound at root, got %v", err)
	}

	f, err := Folder(testStore(), Scope{FolderID: "aaaa1111aaaa1111"}, "aabb")
	if err != nil {
		t.Fatal(err)
	}
	if f.Title != "Archive" {
		t.Errorf("expected Archive, got %s", f.Title)
	}
}

func TestFolder_AmbiguousReportsAllCandidates(t *testing.T) {
	s := testStore()
	s.folders = append(s.folders, db.Folder{ID: "aacc4444aacc4444", Title: "Admin", ParentID: ""})

	_, err := Folder(s, Scope{}, "aa")
	var ambig *AmbiguousError
	if !errors.As(err, &ambig) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	if len(ambig.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ambig.Candidates))
	}
	// Storage order is alphabetical by title: Admin before Work
	if ambig.Candidates[0].Title != "Admin" || ambig.Candidates[1].Title != "Work" {
		t.Errorf("unexpected candidate order: %v", ambig.Candidates)
	}
}

func TestFolder_CaseSensitive(t *testing.T) {
	_, err := Folder(testStore(), Scope{}, "AAAA")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("prefix match must be byte-exact, got %v", err)
	}
}

func TestNote_BareExactAnywhere(t *testing.T) {
	// Exact full id works even from the root scope
	n, err := Note(testStore(), Scope{}, "cccc3333cccc3333")
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "Todo" {
		t.Errorf("expected Todo, got %s", n.Title)
	}
}

func TestNote_BarePrefixScopedToCurrentFolder(t *testing.T) {
	n, err := Note(testStore(), Scope{FolderID: "aaaa1111aaaa1111"}, "cccc")
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "Todo" {
		t.Errorf("expected Todo, got %s", n.Title)
	}
}

func TestNote_BarePrefixNotGlobal(t *testing.T) {
	// "eeee" lives in Home; from the root scope a bare prefix resolves nothing
	_, err := Note(testStore(), Scope{}, "eeee")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// From the wrong folder the prefix also fails
	_, err = Note(testStore(), Scope{FolderID: "aaaa1111aaaa1111"}, "eeee")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound in wrong folder, got %v", err)
	}
}

func TestNote_AmbiguousPrefix(t *testing.T) {
	_, err := Note(testStore(), Scope{FolderID: "aaaa1111aaaa1111"}, "dead")
	var ambig *AmbiguousError
	if !errors.As(err, &ambig) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	if len(ambig.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ambig.Candidates))
	}
	if ambig.Candidates[0].Title != "Draft A" || ambig.Candidates[1].Title != "Draft B" {
		t.Errorf("unexpected candidates: %v", ambig.Candidates)
	}
}

func TestNote_QualifiedPath(t *testing.T) {
	// Folder token resolves against all folders regardless of scope
	n, err := Note(testStore(), Scope{FolderID: "bbbb2222bbbb2222"}, "aaaa/cccc")
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "Todo" {
		t.Errorf("expected Todo, got %s", n.Title)
	}
}

func TestNote_QualifiedFolderMiss(t *testing.T) {
	_, err := Note(testStore(), Scope{}, "zzzz/cccc")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown folder, got %v", err)
	}
}

func TestNote_QualifiedAmbiguousFolder(t *testing.T) {
	_, err := Note(testStore(), Scope{}, "aa/cccc")
	var ambig *AmbiguousError
	if !errors.As(err, &ambig) {
		t.Fatalf("expected AmbiguousError for folder token, got %v", err)
	}
	if ambig.Kind != "folder" {
		t.Errorf("expected folder ambiguity, got %s", ambig.Kind)
	}
}

func TestNote_QualifiedNoteMiss(t *testing.T) {
	_, err := Note(testStore(), Scope{}, "bbbb/cccc")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for note in wrong folder, got %v", err)
	}
}

func TestNote_NotFoundIdentifiesMissingPart(t *testing.T) {
	cases := []struct {
		name       string
		token      string
		wantKind   string
		wantFolder string
	}{
		{"qualified folder miss", "zzzz/cccc", "folder", ""},
		{"qualified note miss", "bbbb/cccc", "note", "Home"},
		{"bare miss", "zzzz", "note", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Note(testStore(), Scope{}, tc.token)
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}
			if nf.Kind != tc.wantKind {
				t.Errorf("Kind = %s, want %s", nf.Kind, tc.wantKind)
			}
			if nf.Folder != tc.wantFolder {
				t.Errorf("Folder = %q, want %q", nf.Folder, tc.wantFolder)
			}
		})
	}
}
