// Package browse runs the interactive session: prompt, command
// dispatch, and the formatted views over folders, notes, search
// results, and exports.
package browse

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"joplin/console/internal/config"
	"joplin/console/internal/db"
	"joplin/console/internal/export"
	"joplin/console/internal/nav"
	"joplin/console/internal/resolve"
)

// Store is the full slice of storage the session reads and, through the
// editor bridge, writes. *db.DB satisfies it.
type Store interface {
	FoldersByParent(parentID string) ([]db.Folder, error)
	AllFolders() ([]db.Folder, error)
	GetFolder(id string) (*db.Folder, error)
	NoteCount(folderID string) (int, error)
	GetNote(id string) (*db.Note, error)
	NotesByFolder(folderID string) ([]db.Note, error)
	TagTitles(noteID string) ([]string, error)
	Resources(noteID string) ([]db.Resource, error)
	ResourceData(resourceID string) ([]byte, error)
	SearchNotes(term string) ([]db.Note, error)
	UpdateNoteBody(id, body string, updatedMs int64) error
}

// LineReader yields one submitted input line per call. End of input is
// io.EOF; an aborted line is ("", nil).
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// NoteEditor opens a note for editing and applies the outcome.
type NoteEditor interface {
	Edit(note *db.Note) error
}

// Session owns the interactive loop state: the navigation cursor, the
// configured export settings, and the I/O endpoints.
type Session struct {
	store  Store
	cfg    *config.Config
	nav    *nav.Navigator
	reader LineReader
	editor NoteEditor
	out    io.Writer
	log    zerolog.Logger
	format export.Format
}

// NewSession wires a session over an opened store. The export format
// from config is validated here so a bad value fails at startup, not on
// the first export.
func NewSession(store Store, cfg *config.Config, reader LineReader, editor NoteEditor, out io.Writer, log zerolog.Logger) (*Session, error) {
	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return nil, err
	}
	return &Session{
		store:  store,
		cfg:    cfg,
		nav:    nav.New(),
		reader: reader,
		editor: editor,
		out:    out,
		log:    log,
		format: format,
	}, nil
}

// Run prints the welcome screen and processes commands until quit or
// end of input.
func (s *Session) Run() error {
	s.printWelcome()
	for {
		line, err := s.reader.ReadLine(s.prompt())
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out, "Bye!")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := s.dispatch(line); quit {
			return nil
		}
	}
}

// prompt renders the current location as slash-joined folder titles.
// Corrupt ancestry downgrades to a placeholder prompt instead of
// killing the session.
func (s *Session) prompt() string {
	path, err := s.nav.Path(s.store)
	if err != nil {
		s.log.Warn().Err(err).Msg("cannot render folder path")
		return "(?) > "
	}
	if len(path) == 0 {
		return "(root) > "
	}
	return strings.Join(path, "/") + " > "
}

func (s *Session) dispatch(line string) bool {
	action, arg := splitCommand(line)
	switch action {
	case "q", "quit", "exit":
		fmt.Fprintln(s.out, "Bye!")
		return true
	case "l", "list":
		s.cmdList()
	case "cd", "go", "enter":
		s.cmdCd(arg)
	case "n", "note", "view", "read", "show":
		s.cmdView(arg)
	case "cat", "content", "body":
		s.cmdCat(arg)
	case "vim", "edit", "vi":
		s.cmdVim(arg)
	case "s", "search", "find":
		s.cmdSearch(arg)
	case "e":
		s.cmdExport(arg)
	case "h", "help", "?":
		s.printHelp()
	default:
		fmt.Fprintln(s.out, "Unknown command. Available: l, cd <id>, n <id>, s <term>, cat <id>, vim <id>, e [id], h, q")
	}
	return false
}

// splitCommand separates the action word from its argument on the first
// whitespace run. The action is lowercased; the argument keeps its case.
func splitCommand(line string) (action, arg string) {
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		return strings.ToLower(line[:i]), strings.TrimSpace(line[i+1:])
	}
	return strings.ToLower(line), ""
}

// resolveNote runs the note resolver for the current scope and prints
// the outcome on failure. A nil return means the failure was already
// reported.
func (s *Session) resolveNote(token string) *db.Note {
	note, err := resolve.Note(s.store, resolve.Scope{FolderID: s.nav.CurrentID()}, token)
	if err == nil {
		return note
	}

	var ambig *resolve.AmbiguousError
	var missing *resolve.NotFoundError
	switch {
	case errors.As(err, &ambig):
		switch {
		case ambig.Kind == "folder":
			fmt.Fprintln(s.out, "Ambiguous notebook ID - matches:")
		case strings.Contains(token, "/"):
			fmt.Fprintln(s.out, "Ambiguous note ID - multiple notes match:")
		default:
			fmt.Fprintln(s.out, "Ambiguous ID - multiple notes match:")
		}
		for _, c := range ambig.Candidates {
			fmt.Fprintf(s.out, "  [%s] %s\n", shortID(c.ID), c.Title)
		}
	case errors.As(err, &missing):
		switch {
		case missing.Kind == "folder":
			fmt.Fprintf(s.out, "Notebook %s not found.\n", shortID(missing.Token))
		case missing.Folder != "":
			fmt.Fprintf(s.out, "Note %s not found in notebook %s.\n", shortID(missing.Token), missing.Folder)
		default:
			fmt.Fprintln(s.out, "Note not found.")
		}
	default:
		s.reportErr(err)
	}
	return nil
}

// reportErr surfaces a storage or I/O failure without ending the
// session.
func (s *Session) reportErr(err error) {
	s.log.Error().Err(err).Msg("command failed")
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
