// Package config resolves runtime settings from the environment, an
// optional YAML file, and built-in defaults. Command-line flags are
// applied on top by the CLI layer, giving the precedence
// flags > environment > file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration.
type Config struct {
	File string `yaml:"-"`

	// DBPath is the Joplin database to open. Empty means auto-detect.
	DBPath string `yaml:"db_path"`
	// Write allows editor sessions to save back to the database.
	Write bool `yaml:"write" default:"false"`
	// ExportDir receives exported notes, relative to the working dir.
	ExportDir string `yaml:"export_dir" default:"joplin_export"`
	// ExportFormat is md or txt.
	ExportFormat string `yaml:"export_format" default:"md"`
	// IncludeMetadata adds timestamps, tags, and attachments to exports.
	IncludeMetadata bool `yaml:"include_metadata" default:"false"`
	// HistoryFile persists the interactive command history.
	HistoryFile string `yaml:"history_file" default:"~/.joplin_history"`
	// Editor is the external editor command.
	Editor string `yaml:"editor" default:"vim"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" default:"false"`
}

// Load reads the config file at path, or the default
// ~/.config/joplin-console/config.yaml when path is empty, then applies
// environment overrides. A missing default file is fine; a missing
// explicit file is an error.
func Load(path string) (*Config, error) {
	c := new(Config)
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("applying config defaults: %w", err)
	}

	explicit := path != ""
	if path == "" {
		path = defaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
			// Refill fields the file set to empty values.
			if err := defaults.Set(c); err != nil {
				return nil, fmt.Errorf("applying config defaults: %w", err)
			}
			c.File = path
		case explicit:
			return nil, fmt.Errorf("reading config file: %w", err)
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("JOPLIN_CONSOLE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("JOPLIN_CONSOLE_WRITE"); v != "" {
		w, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("JOPLIN_CONSOLE_WRITE: %w", err)
		}
		c.Write = w
	}

	c.DBPath = expandHome(c.DBPath)
	c.HistoryFile = expandHome(c.HistoryFile)
	return c, nil
}

// ResolveDBPath returns the database path, probing the desktop app's
// default locations when none is configured.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", "joplin-desktop", "database.sqlite")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		p := filepath.Join(appdata, "Joplin", "database.sqlite")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.New("could not auto-detect database.sqlite, provide the path explicitly")
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "joplin-console", "config.yaml")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
