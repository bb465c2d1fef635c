// Package export writes folder trees and single notes to disk as
// markdown or plain text, mirroring the folder hierarchy in the
// destination directory.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"joplin/console/internal/db"
)

// Store is the slice of the note database the exporter reads from.
type Store interface {
	FoldersByParent(parentID string) ([]db.Folder, error)
	NotesByFolder(folderID string) ([]db.Note, error)
	TagTitles(noteID string) ([]string, error)
	Resources(noteID string) ([]db.Resource, error)
	ResourceData(resourceID string) ([]byte, error)
}

// Stats counts what an export run touched.
type Stats struct {
	Folders     int `json:"folders"`
	Notes       int `json:"notes"`
	Attachments int `json:"attachments"`
	Warnings    int `json:"warnings"`
}

// Add accumulates another run's counters
func (s *Stats) Add(o Stats) {
	s.Folders += o.Folders
	s.Notes += o.Notes
	s.Attachments += o.Attachments
	s.Warnings += o.Warnings
}

// Walker exports folders depth-first, rendering a folder's notes before
// descending into its subfolders. Directory creation is idempotent, so
// exporting into a populated destination overwrites files in place.
type Walker struct {
	store    Store
	format   Format
	withMeta bool
	log      zerolog.Logger
}

func NewWalker(store Store, format Format, withMeta bool, log zerolog.Logger) *Walker {
	return &Walker{store: store, format: format, withMeta: withMeta, log: log}
}

// All exports every root folder into destDir.
func (w *Walker) All(destDir string) (Stats, error) {
	var st Stats
	roots, err := w.store.FoldersByParent("")
	if err != nil {
		return st, fmt.Errorf("listing root folders: %w", err)
	}
	for i := range roots {
		if err := w.walkFolder(&roots[i], destDir, &st); err != nil {
			return st, err
		}
	}
	return st, nil
}

// Folder exports one folder and everything beneath it into destDir.
func (w *Walker) Folder(folder *db.Folder, destDir string) (Stats, error) {
	var st Stats
	err := w.walkFolder(folder, destDir, &st)
	return st, err
}

// Note exports a single note into destDir and returns the written path.
func (w *Walker) Note(note *db.Note, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", destDir, err)
	}
	var st Stats
	return w.writeNote(note, destDir, &st)
}

func (w *Walker) walkFolder(folder *db.Folder, destDir string, st *Stats) error {
	dir := filepath.Join(destDir, sanitizeTitle(folder.Title))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	st.Folders++
	w.log.Debug().Str("folder", folder.Title).Str("dir", dir).Msg("exporting folder")

	notes, err := w.store.NotesByFolder(folder.ID)
	if err != nil {
		return fmt.Errorf("listing notes in %s: %w", folder.Title, err)
	}
	for i := range notes {
		if _, err := w.writeNote(&notes[i], dir, st); err != nil {
			return err
		}
	}

	subs, err := w.store.FoldersByParent(folder.ID)
	if err != nil {
		return fmt.Errorf("listing subfolders of %s: %w", folder.Title, err)
	}
	for i := range subs {
		if err := w.walkFolder(&subs[i], dir, st); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) writeNote(note *db.Note, dir string, st *Stats) (string, error) {
	tags, err := w.store.TagTitles(note.ID)
	if err != nil {
		return "", fmt.Errorf("loading tags for %s: %w", note.Title, err)
	}
	resources, err := w.store.Resources(note.ID)
	if err != nil {
		return "", fmt.Errorf("loading attachments for %s: %w", note.Title, err)
	}

	// Payloads land on disk before the note renders so the rendered
	// links point at real files.
	var saved map[string]string
	if w.withMeta && len(resources) > 0 {
		saved = w.extractAttachments(note.Title, resources, dir, st)
	}

	refs := make([]attachmentRef, 0, len(resources))
	for _, r := range resources {
		ref := saved[r.Title]
		if ref == "" {
			ref = r.Filename
		}
		if ref == "" {
			ref = "unknown"
		}
		refs = append(refs, attachmentRef{Title: r.Title, Ref: ref})
	}

	path := filepath.Join(dir, sanitizeTitle(note.Title)+"."+w.format.Ext())
	if err := os.WriteFile(path, renderNote(note, w.format, tags, refs, w.withMeta), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	st.Notes++
	w.log.Info().Str("note", note.Title).Str("path", path).Msg("exported note")
	return path, nil
}

// extractAttachments saves resource payloads under
// attachments/<note-title>/ and maps resource titles to the saved
// paths, relative to dir. Unreadable payloads are skipped, not fatal.
func (w *Walker) extractAttachments(noteTitle string, resources []db.Resource, dir string, st *Stats) map[string]string {
	relDir := filepath.Join("attachments", sanitizeTitle(noteTitle))
	attachDir := filepath.Join(dir, relDir)
	if err := os.MkdirAll(attachDir, 0o755); err != nil {
		w.log.Warn().Err(err).Str("dir", attachDir).Msg("cannot create attachments dir")
		st.Warnings++
		return nil
	}

	saved := make(map[string]string, len(resources))
	for _, r := range resources {
		data, err := w.store.ResourceData(r.ID)
		if err != nil {
			w.log.Warn().Err(err).Str("resource", r.Title).Msg("cannot read attachment payload")
			st.Warnings++
			continue
		}
		if len(data) == 0 {
			w.log.Warn().Str("resource", r.Title).Msg("attachment has no payload")
			st.Warnings++
			continue
		}
		name := attachmentFilename(r)
		if err := os.WriteFile(filepath.Join(attachDir, name), data, 0o644); err != nil {
			w.log.Warn().Err(err).Str("resource", r.Title).Msg("cannot write attachment")
			st.Warnings++
			continue
		}
		saved[r.Title] = filepath.ToSlash(filepath.Join(relDir, name))
		st.Attachments++
	}
	return saved
}
