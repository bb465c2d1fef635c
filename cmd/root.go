package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"joplin/console/internal/browse"
	"joplin/console/internal/config"
	"joplin/console/internal/db"
	"joplin/console/internal/editor"
	"joplin/console/internal/lineedit"
)

const historyMax = 100

var (
	flagConfig          string
	flagDB              string
	flagWrite           bool
	flagExportDir       string
	flagExportFormat    string
	flagIncludeMetadata bool
	flagVerbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "joplin-console [database.sqlite]",
	Short: "Interactive console browser for Joplin's database.sqlite",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		log := newLogger(cfg.Verbose)

		if cfg.Write {
			fmt.Println("WRITE MODE ENABLED - vim edits will be saved to database")
			fmt.Println("Changes will be written to database.sqlite")
			fmt.Println("   Use with caution - this modifies your Joplin data")
			fmt.Println()
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		history := lineedit.LoadHistory(cfg.HistoryFile, historyMax, log)
		reader := lineedit.New(os.Stdin, os.Stdout, history)
		bridge := editor.NewBridge(store, cfg.Editor, cfg.Write, os.Stdout, log)

		session, err := browse.NewSession(store, cfg, reader, bridge, os.Stdout, log)
		if err != nil {
			return err
		}
		return session.Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config file (default: ~/.config/joplin-console/config.yaml)")
	pf.StringVar(&flagDB, "db", "", "Path to database.sqlite (default: auto-detect for desktop app)")
	pf.BoolVar(&flagWrite, "write", false, "Enable write mode - allows vim command to save changes back to database (default: read-only)")
	pf.StringVar(&flagExportDir, "export-dir", "", "Directory where exported files will be written")
	pf.StringVar(&flagExportFormat, "export-format", "", "Export format: 'md' for Markdown or 'txt' for plain text (default: md)")
	pf.BoolVar(&flagIncludeMetadata, "include-metadata", false, "Include metadata (timestamps, tags, attachments) in exported files (default: disabled)")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

// loadConfig layers the resolved flag values over whatever the config
// file and environment produced. Only flags the user actually set
// override; a positional database argument counts like --db but the
// flag wins when both are given.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.DBPath = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = flagDB
	}
	if flags.Changed("write") {
		cfg.Write = flagWrite
	}
	if flags.Changed("export-dir") {
		cfg.ExportDir = flagExportDir
	}
	if flags.Changed("export-format") {
		cfg.ExportFormat = flagExportFormat
	}
	if flags.Changed("include-metadata") {
		cfg.IncludeMetadata = flagIncludeMetadata
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
	return cfg, nil
}

// newLogger builds the stderr console logger so diagnostics never
// interleave with the interactive UI on stdout.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
}

func openStore(cfg *config.Config) (*db.DB, error) {
	path, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, err
	}
	fmt.Printf("Opening database: %s\n", path)
	store, err := db.Open(path, cfg.Write)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}
