package lineedit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestHistory_LoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	h := LoadHistory(path, 100, zerolog.Nop())
	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d entries", h.Len())
	}
}

func TestHistory_AppendPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	h := LoadHistory(path, 100, zerolog.Nop())
	h.Append("l")
	h.Append("cd aaaa")

	reloaded := LoadHistory(path, 100, zerolog.Nop())
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", reloaded.Len())
	}
	if last, _ := reloaded.Last(); last != "cd aaaa" {
		t.Errorf("expected cd aaaa last, got %q", last)
	}
}

func TestHistory_CapEnforced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	h := LoadHistory(path, 5, zerolog.Nop())
	for i := 0; i < 12; i++ {
		h.Append(fmt.Sprintf("cmd-%d", i))
	}
	if h.Len() != 5 {
		t.Errorf("expected cap of 5 in memory, got %d", h.Len())
	}

	reloaded := LoadHistory(path, 5, zerolog.Nop())
	if reloaded.Len() != 5 {
		t.Fatalf("expected cap of 5 on disk, got %d", reloaded.Len())
	}
	if last, _ := reloaded.Last(); last != "cmd-11" {
		t.Errorf("expected newest entry kept, got %q", last)
	}
}

func TestHistory_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(path, []byte("one\n\n  \ntwo\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := LoadHistory(path, 100, zerolog.Nop())
	if h.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", h.Len())
	}
}

func TestHistory_FileFormatIsOnePerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	h := LoadHistory(path, 100, zerolog.Nop())
	h.Append("first")
	h.Append("second")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first\nsecond\n" {
		t.Errorf("unexpected file contents: %q", string(data))
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("history file should end with a newline")
	}
}
