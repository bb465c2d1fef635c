package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"joplin/console/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [database.sqlite]",
	Short: "Export every notebook to disk and exit (no interactive mode)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		log := newLogger(cfg.Verbose)

		format, err := export.ParseFormat(cfg.ExportFormat)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		dest, err := filepath.Abs(cfg.ExportDir)
		if err != nil {
			dest = cfg.ExportDir
		}
		fmt.Printf("Exporting all notebooks to %s in %s format...\n", dest, strings.ToUpper(string(format)))
		meta := "disabled"
		if cfg.IncludeMetadata {
			meta = "enabled"
		}
		fmt.Printf("Metadata inclusion: %s\n", meta)

		roots, err := store.FoldersByParent("")
		if err != nil {
			return fmt.Errorf("listing notebooks: %w", err)
		}
		if len(roots) == 0 {
			fmt.Println("No notebooks found to export.")
			return nil
		}

		walker := export.NewWalker(store, format, cfg.IncludeMetadata, log)
		var total export.Stats
		for i := range roots {
			fmt.Printf("Exporting notebook: %s\n", roots[i].Title)
			st, err := walker.Folder(&roots[i], cfg.ExportDir)
			if err != nil {
				return fmt.Errorf("exporting %s: %w", roots[i].Title, err)
			}
			total.Add(st)
		}

		fmt.Println("\nExport completed successfully!")
		fmt.Printf("Files saved to: %s\n", dest)
		fmt.Printf("Exported %d folders, %d notes, %d attachments\n",
			total.Folders, total.Notes, total.Attachments)
		if total.Warnings > 0 {
			fmt.Printf("%d items could not be exported, see log output\n", total.Warnings)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
