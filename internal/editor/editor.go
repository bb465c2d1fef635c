// Package editor opens a note in an external text editor and applies
// the edited body back to the database when write mode allows it.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"

	"joplin/console/internal/db"
)

// Updater persists an edited note body.
type Updater interface {
	UpdateNoteBody(id, body string, updatedMs int64) error
}

// Bridge runs one editor session per note. Write mode is an explicit
// value on the bridge, decided by configuration at startup.
type Bridge struct {
	updater Updater
	command string
	write   bool
	out     io.Writer
	log     zerolog.Logger

	// Replaced in tests.
	run func(path string) error
	now func() time.Time
}

func NewBridge(updater Updater, command string, write bool, out io.Writer, log zerolog.Logger) *Bridge {
	b := &Bridge{
		updater: updater,
		command: command,
		write:   write,
		out:     out,
		log:     log,
		now:     time.Now,
	}
	b.run = b.runEditor
	return b
}

// Edit opens the note in the editor, waits for it to exit, and reports
// what happened. Expected failures (editor missing, save rejected) are
// messages to the user, not errors; only temp-file handling can fail.
func (b *Bridge) Edit(note *db.Note) error {
	tmp, err := os.CreateTemp("", "joplin-note-*.md")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(seedContent(note)); err != nil {
		tmp.Close()
		return fmt.Errorf("seeding temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	fmt.Fprintf(b.out, "Opening '%s' in Vim...\n", note.Title)
	if b.write {
		fmt.Fprintln(b.out, "EDIT MODE: Changes will be saved to database!")
	} else {
		fmt.Fprintln(b.out, "READ-ONLY MODE: Changes will NOT be saved to database")
	}

	if err := b.run(path); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			fmt.Fprintln(b.out, "Vim not found. Please ensure Vim is installed.")
			return nil
		}
		return fmt.Errorf("running editor: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading edited note: %w", err)
	}
	body := stripHeader(string(edited), note.Title)

	if body == note.Body {
		fmt.Fprintln(b.out, "No changes made to the note.")
		return nil
	}

	added, removed := changeSummary(note.Body, body)
	if !b.write {
		fmt.Fprintf(b.out, "Note '%s' has been modified. (+%d/-%d chars)\n", note.Title, added, removed)
		fmt.Fprintln(b.out, "READ-ONLY: Changes are not saved to database.")
		fmt.Fprintln(b.out, "Restart with '--write' flag to enable saving changes")
		fmt.Fprintln(b.out, "Or use 'e <note-id>' to export the modified version")
		return nil
	}

	updated := b.now().UnixMilli()
	if err := b.updater.UpdateNoteBody(note.ID, body, updated); err != nil {
		b.log.Error().Err(err).Str("note", note.ID).Msg("saving edited note")
		fmt.Fprintf(b.out, "Failed to save changes to database: %v\n", err)
		fmt.Fprintln(b.out, "Use 'e <note-id>' to export the modified version")
		return nil
	}
	note.Body = body
	note.UpdatedTime = updated
	fmt.Fprintf(b.out, "Note '%s' has been updated in database! (+%d/-%d chars)\n", note.Title, added, removed)
	fmt.Fprintf(b.out, "   Updated time: %s\n", db.FormatTime(updated))
	return nil
}

func (b *Bridge) runEditor(path string) error {
	args := append(editorArgs(b.command), path)
	cmd := exec.Command(b.command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// editorArgs returns extra arguments for the editor command. The vim
// family gets cursor-at-end plus insert mode; other editors get none.
func editorArgs(command string) []string {
	switch filepath.Base(command) {
	case "vim", "vi", "nvim", "gvim":
		return []string{"+", "+startinsert"}
	}
	return nil
}

// seedContent is the text the editor opens on: a title header followed
// by the note body.
func seedContent(note *db.Note) string {
	return fmt.Sprintf("# %s\n\n", note.Title) + note.Body
}

// stripHeader removes the seeded title header from edited content. Both
// the blank-line form and a bare header line are recognized, so a body
// edit that deletes the blank line still round-trips.
func stripHeader(content, title string) string {
	if rest, ok := strings.CutPrefix(content, fmt.Sprintf("# %s\n\n", title)); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(content, fmt.Sprintf("# %s\n", title)); ok {
		return rest
	}
	return content
}

// changeSummary counts inserted and deleted characters between the
// original and edited body.
func changeSummary(oldBody, newBody string) (added, removed int) {
	dmp := diffmatchpatch.New()
	for _, d := range dmp.DiffMain(oldBody, newBody, false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += utf8.RuneCountInString(d.Text)
		}
	}
	return added, removed
}
