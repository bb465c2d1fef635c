package lineedit

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// History is the append-only scrollback shared by every ReadLine call.
// It mirrors to a file so recall survives restarts; file trouble is
// logged and otherwise ignored.
type History struct {
	path    string
	max     int
	entries []string
	log     zerolog.Logger
}

// LoadHistory reads a history file, one entry per line, keeping at most
// max entries. A missing file starts an empty history.
func LoadHistory(path string, max int, log zerolog.Logger) *History {
	h := &History{path: path, max: max, log: log}
	if path == "" {
		return h
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Err(err).Str("path", path).Msg("history load failed")
		}
		return h
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			h.entries = append(h.entries, line)
		}
	}
	h.trim()
	return h
}

// Last returns the most recent entry
func (h *History) Last() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *History) Len() int {
	return len(h.entries)
}

// Append records an accepted line and rewrites the file capped at max
func (h *History) Append(line string) {
	h.entries = append(h.entries, line)
	h.trim()
	if h.path == "" {
		return
	}
	if err := h.save(); err != nil {
		h.log.Debug().Err(err).Str("path", h.path).Msg("history save failed")
	}
}

func (h *History) trim() {
	if h.max > 0 && len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

func (h *History) save() error {
	return os.WriteFile(h.path, []byte(strings.Join(h.entries, "\n")+"\n"), 0o600)
}
