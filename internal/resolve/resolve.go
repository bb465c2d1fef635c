// Package resolve turns short user-typed identifiers into folders and
// notes. Resolution is a pure function of the token and an explicit
// scope; ambiguity is surfaced as a value carrying every candidate so
// the caller can show the full set.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"joplin/console/internal/db"
)

// ErrNotFound marks a token that matched nothing in scope.
var ErrNotFound = errors.New("not found")

// NotFoundError identifies which part of a lookup missed. Folder is the
// title of the notebook a qualified note lookup searched, empty otherwise.
// errors.Is(err, ErrNotFound) matches it.
type NotFoundError struct {
	Kind   string // "folder" or "note"
	Token  string
	Folder string
}

func (e *NotFoundError) Error() string {
	if e.Folder != "" {
		return fmt.Sprintf("%s %s in notebook %s: not found", e.Kind, e.Token, e.Folder)
	}
	return fmt.Sprintf("%s %s: not found", e.Kind, e.Token)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Store is the slice of storage resolution reads. *db.DB satisfies it.
type Store interface {
	FoldersByParent(parentID string) ([]db.Folder, error)
	AllFolders() ([]db.Folder, error)
	NotesByFolder(folderID string) ([]db.Note, error)
	GetNote(id string) (*db.Note, error)
}

// Scope carries the navigation context a token is resolved against.
// An empty FolderID means the root level.
type Scope struct {
	FolderID string
}

// Candidate is one member of an ambiguous match set
type Candidate struct {
	ID    string
	Title string
}

// AmbiguousError reports a prefix that matched more than one entity.
// Candidates keep the storage order, alphabetical by title.
type AmbiguousError struct {
	Token      string
	Kind       string // "folder" or "note"
	Candidates []Candidate
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s id %q: %d matches", e.Kind, e.Token, len(e.Candidates))
}

// Folder resolves a token against the direct children of the scope
// folder, or against root-level folders when the scope is empty. The
// token must be a case-sensitive byte prefix of the folder id; the full
// id matches as well.
func Folder(s Store, scope Scope, token string) (*db.Folder, error) {
	folders, err := s.FoldersByParent(scope.FolderID)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	return pickFolder(folders, token)
}

// Note resolves a note token in one of three forms:
//
//   - "folder-token/note-token" resolves the folder prefix against every
//     folder in the database, then the note prefix inside that folder
//   - a bare token matching a full note id exactly, anywhere
//   - a bare prefix matched against the current folder's notes only
//
// A bare prefix is never resolved against the whole database; outside a
// folder only exact ids work.
func Note(s Store, scope Scope, token string) (*db.Note, error) {
	if folderTok, noteTok, ok := strings.Cut(token, "/"); ok {
		return qualifiedNote(s, folderTok, noteTok)
	}

	note, err := s.GetNote(token)
	if err != nil {
		return nil, fmt.Errorf("looking up note: %w", err)
	}
	if note != nil {
		return note, nil
	}

	if scope.FolderID == "" {
		return nil, &NotFoundError{Kind: "note", Token: token}
	}

	notes, err := s.NotesByFolder(scope.FolderID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return pickNote(notes, token)
}

func qualifiedNote(s Store, folderTok, noteTok string) (*db.Note, error) {
	folders, err := s.AllFolders()
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	folder, err := pickFolder(folders, folderTok)
	if err != nil {
		return nil, err
	}

	notes, err := s.NotesByFolder(folder.ID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	note, err := pickNote(notes, noteTok)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			nf.Folder = folder.Title
		}
		return nil, err
	}
	return note, nil
}

func pickFolder(folders []db.Folder, token string) (*db.Folder, error) {
	var matches []db.Folder
	for _, f := range folders {
		if strings.HasPrefix(f.ID, token) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 1:
		return &matches[0], nil
	case 0:
		return nil, &NotFoundError{Kind: "folder", Token: token}
	default:
		e := &AmbiguousError{Token: token, Kind: "folder"}
		for _, f := range matches {
			e.Candidates = append(e.Candidates, Candidate{ID: f.ID, Title: f.Title})
		}
		return nil, e
	}
}

func pickNote(notes []db.Note, token string) (*db.Note, error) {
	var matches []db.Note
	for _, n := range notes {
		if strings.HasPrefix(n.ID, token) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 1:
		return &matches[0], nil
	case 0:
		return nil, &NotFoundError{Kind: "note", Token: token}
	default:
		e := &AmbiguousError{Token: token, Kind: "note"}
		for _, n := range matches {
			e.Candidates = append(e.Candidates, Candidate{ID: n.ID, Title: n.Title})
		}
		return nil, e
	}
}
