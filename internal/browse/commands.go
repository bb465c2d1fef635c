package browse

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"joplin/console/internal/db"
	"joplin/console/internal/export"
	"joplin/console/internal/resolve"
)

func (s *Session) cmdList() {
	current := s.nav.CurrentID()
	folders, err := s.store.FoldersByParent(current)
	if err != nil {
		s.reportErr(err)
		return
	}

	if current == "" {
		fmt.Fprintln(s.out, "\n=== Your Joplin Folders ===")
	} else {
		title := "Unknown Folder"
		if folder, err := s.store.GetFolder(current); err == nil && folder != nil {
			title = folder.Title
		}
		fmt.Fprintf(s.out, "\n=== %s ===\n", title)
	}

	if len(folders) > 0 {
		fmt.Fprintln(s.out, "\nFolders:")
		for _, f := range folders {
			count, err := s.store.NoteCount(f.ID)
			if err != nil {
				s.reportErr(err)
				return
			}
			fmt.Fprintf(s.out, "  [%s] %s (%d notes)\n", shortID(f.ID), f.Title, count)
		}
	} else {
		fmt.Fprintln(s.out, "(No subfolders)")
	}

	// Notes are only listed inside a folder; the root level holds
	// folders alone.
	var notes []db.Note
	if current != "" {
		notes, err = s.store.NotesByFolder(current)
		if err != nil {
			s.reportErr(err)
			return
		}
	}
	if len(notes) > 0 {
		fmt.Fprintf(s.out, "\nNotes (%d):\n", len(notes))
		for _, n := range notes {
			tags, err := s.store.TagTitles(n.ID)
			if err != nil {
				s.reportErr(err)
				return
			}
			tagStr := strings.Join(tags, ", ")
			if tagStr == "" {
				tagStr = "—"
			}
			fmt.Fprintf(s.out, "  [%s] %s | tags: %s\n", shortID(n.ID), n.Title, tagStr)
		}
	} else {
		fmt.Fprintln(s.out, "(No notes)")
	}
}

func (s *Session) cmdCd(arg string) {
	switch arg {
	case "..":
		if s.nav.GoUp() {
			fmt.Fprintln(s.out, "Going back to parent folder")
		} else {
			fmt.Fprintln(s.out, "Going back to root level")
		}
	case "/":
		s.nav.GoRoot()
		fmt.Fprintln(s.out, "Going to root level")
	case "":
		fmt.Fprintln(s.out, "Usage: cd <folder-id>, cd .., or cd /")
	default:
		folder, err := resolve.Folder(s.store, resolve.Scope{FolderID: s.nav.CurrentID()}, arg)
		if err != nil {
			var ambig *resolve.AmbiguousError
			switch {
			case errors.As(err, &ambig):
				fmt.Fprintln(s.out, "Ambiguous ID - matches:")
				for _, c := range ambig.Candidates {
					fmt.Fprintf(s.out, "  [%s] %s\n", shortID(c.ID), c.Title)
				}
			case errors.Is(err, resolve.ErrNotFound):
				fmt.Fprintln(s.out, "Folder not found.")
			default:
				s.reportErr(err)
			}
			return
		}
		s.nav.Enter(folder.ID)
		fmt.Fprintf(s.out, "Entered: %s\n", folder.Title)
	}
}

func (s *Session) cmdView(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "Usage: n <note-id>")
		return
	}
	note := s.resolveNote(arg)
	if note == nil {
		return
	}

	fmt.Fprintf(s.out, "\n=== %s ===\n", note.Title)
	fmt.Fprintf(s.out, "ID: %s\n", note.ID)
	fmt.Fprintf(s.out, "Created: %s\n", db.FormatTime(note.CreatedTime))
	fmt.Fprintf(s.out, "Updated: %s\n", db.FormatTime(note.UpdatedTime))

	tags, err := s.store.TagTitles(note.ID)
	if err != nil {
		s.reportErr(err)
		return
	}
	if len(tags) > 0 {
		fmt.Fprintf(s.out, "Tags: %s\n", strings.Join(tags, ", "))
	} else {
		fmt.Fprintln(s.out, "Tags: (no tags)")
	}

	resources, err := s.store.Resources(note.ID)
	if err != nil {
		s.reportErr(err)
		return
	}
	if len(resources) > 0 {
		fmt.Fprintf(s.out, "\nAttachments (%d):\n", len(resources))
		for _, r := range resources {
			fmt.Fprintf(s.out, "  • %s (%s)\n", r.Title, r.Mime)
			if r.Filename != "" {
				fmt.Fprintf(s.out, "    File: %s\n", r.Filename)
			}
		}
	} else {
		fmt.Fprintln(s.out, "\nAttachments: (none)")
	}

	fmt.Fprintln(s.out, "\n--- Content ---")
	if note.Body != "" {
		fmt.Fprintln(s.out, note.Body)
	} else {
		fmt.Fprintln(s.out, "(No content)")
	}
	fmt.Fprintln(s.out)
}

func (s *Session) cmdCat(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "Usage: cat <note-id>")
		return
	}
	note := s.resolveNote(arg)
	if note == nil {
		return
	}
	fmt.Fprintf(s.out, "# %s\n\n", note.Title)
	if note.Body != "" {
		fmt.Fprintln(s.out, note.Body)
	} else {
		fmt.Fprintln(s.out, "(This note has no content)")
	}
	fmt.Fprintln(s.out)
}

func (s *Session) cmdVim(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "Usage: vim <note-id>")
		return
	}
	note := s.resolveNote(arg)
	if note == nil {
		return
	}
	if err := s.editor.Edit(note); err != nil {
		s.reportErr(err)
	}
}

func (s *Session) cmdSearch(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "Usage: s <search-term>")
		return
	}
	fmt.Fprintf(s.out, "Searching for: '%s'...\n", arg)
	results, err := s.store.SearchNotes(arg)
	if err != nil {
		s.reportErr(err)
		return
	}
	if len(results) == 0 {
		fmt.Fprintln(s.out, "No matches found.")
		return
	}
	fmt.Fprintf(s.out, "\nSearch results for '%s' (%d hits):\n", arg, len(results))
	for _, n := range results {
		if n.ParentID != "" {
			fmt.Fprintf(s.out, "  [%s/%s] %s\n", shortID(n.ParentID), shortID(n.ID), n.Title)
		} else {
			fmt.Fprintf(s.out, "  [%s] %s\n", shortID(n.ID), n.Title)
		}
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Tip: Use the full path format (notebook-id/note-id) with n, cat, or vim commands!")
	fmt.Fprintln(s.out)
}

func (s *Session) cmdExport(arg string) {
	walker := export.NewWalker(s.store, s.format, s.cfg.IncludeMetadata, s.log)
	dest := s.cfg.ExportDir

	// A token exports one resolved note into the export root.
	if arg != "" {
		note := s.resolveNote(arg)
		if note == nil {
			return
		}
		path, err := walker.Note(note, dest)
		if err != nil {
			s.reportErr(err)
			return
		}
		fmt.Fprintf(s.out, "Exported → %s\n", path)
		return
	}

	var stats export.Stats
	if s.nav.AtRoot() {
		fmt.Fprintln(s.out, "Exporting **all** notebooks…")
		st, err := walker.All(dest)
		if err != nil {
			s.reportErr(err)
			return
		}
		stats = st
	} else {
		folder, err := s.store.GetFolder(s.nav.CurrentID())
		if err != nil {
			s.reportErr(err)
			return
		}
		if folder == nil {
			fmt.Fprintln(s.out, "Current folder not found.")
			return
		}
		fmt.Fprintf(s.out, "Exporting notebook “%s”…\n", folder.Title)
		st, err := walker.Folder(folder, dest)
		if err != nil {
			s.reportErr(err)
			return
		}
		stats = st
	}
	s.log.Info().Int("folders", stats.Folders).Int("notes", stats.Notes).
		Int("attachments", stats.Attachments).Int("warnings", stats.Warnings).
		Msg("export complete")

	abs, err := filepath.Abs(dest)
	if err != nil {
		abs = dest
	}
	fmt.Fprintf(s.out, "\nExport finished → %s\n", abs)
}

func (s *Session) printWelcome() {
	fmt.Fprintln(s.out, "\n=== Joplin Console Browser ===")
	fmt.Fprint(s.out, "Browse, search, and export your Joplin notes.\n\n")
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  l                 - List folders/notes at current location")
	fmt.Fprintln(s.out, "  cd <folder-id>    - Navigate into folder")
	fmt.Fprintln(s.out, "  cd ..             - Go back to parent folder")
	fmt.Fprintln(s.out, "  cd /              - Go back to root level")
	fmt.Fprintln(s.out, "  s <search-term>   - Search all notes (full-text search)")
	fmt.Fprintln(s.out, "  n <note-id>       - View full note content")
	fmt.Fprintln(s.out, "  n <notebook-id>/<note-id> - View note with notebook context")
	fmt.Fprintln(s.out, "  cat <note-id>     - View note content (no metadata)")
	fmt.Fprintln(s.out, "  cat <notebook-id>/<note-id> - View note content with notebook context")
	fmt.Fprintln(s.out, "  vim <note-id>     - Open note in Vim editor")
	fmt.Fprintf(s.out, "  e [note-id]       - Export to %s (current folder or single note)\n", strings.ToUpper(string(s.format)))
	fmt.Fprintln(s.out, "  q                 - Quit")
	fmt.Fprintln(s.out)
	s.printQuickStart()
	fmt.Fprintln(s.out, "Tip: Use first 8 chars of any ID!")
	fmt.Fprintln(s.out)
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, "\n=== Joplin Console Browser ===")
	fmt.Fprint(s.out, "Browse, search, and export your Joplin notes.\n\n")
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  l                 - List folders/notes at current location")
	fmt.Fprintln(s.out, "  cd <folder-id>    - Navigate into folder")
	fmt.Fprintln(s.out, "  cd ..             - Go back to parent folder")
	fmt.Fprintln(s.out, "  cd /              - Go back to root level")
	fmt.Fprintln(s.out, "  s <search-term>   - Search all notes (full-text search)")
	fmt.Fprintln(s.out, "  n <note-id>       - View full note content with metadata")
	fmt.Fprintln(s.out, "  cat <note-id>     - View note content (no metadata)")
	fmt.Fprintln(s.out, "  vim <note-id>     - Open note in Vim editor")
	fmt.Fprintf(s.out, "  e [note-id]       - Export to %s (current folder or single note)\n", strings.ToUpper(string(s.format)))
	fmt.Fprintln(s.out, "  h, help, ?        - Show this help message")
	fmt.Fprintln(s.out, "  q                 - Quit")
	fmt.Fprintln(s.out)
	s.printQuickStart()
	fmt.Fprintln(s.out, "Tip: Use first 8 chars of any ID!")
	fmt.Fprintln(s.out, "Use UP/DOWN arrows to navigate command history")
	fmt.Fprintln(s.out)
}

func (s *Session) printQuickStart() {
	fmt.Fprintln(s.out, "Quick start:")
	fmt.Fprintln(s.out, "  1. 'l' - see your folders")
	fmt.Fprintln(s.out, "  2. 'cd <id>' - enter a folder")
	fmt.Fprintln(s.out, "  3. 'n <id>' - read a note")
	fmt.Fprintln(s.out, "  4. 'cd /' - return to root level")
	fmt.Fprintln(s.out)
}
