package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"joplin/console/internal/tree"
)

var (
	checkJSON bool
	checkTopN int
)

var checkCmd = &cobra.Command{
	Use:   "check [database.sqlite]",
	Short: "Check folder tree integrity: cycles, orphans, depth, note distribution",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		snap, err := tree.SnapshotFromDB(store)
		if err != nil {
			return fmt.Errorf("loading folder tree: %w", err)
		}

		report := tree.Check(snap, checkTopN)

		if checkJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			printReport(report)
		}

		// Scriptable: corruption exits nonzero
		if !report.Healthy() {
			store.Close()
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output as JSON")
	checkCmd.Flags().IntVar(&checkTopN, "top-n", 10, "Number of folders to show in the note distribution")
	rootCmd.AddCommand(checkCmd)
}

func printReport(r *tree.Report) {
	fmt.Println("\n  FOLDER TREE")
	fmt.Println("  ────────────────────────────────────────")
	fmt.Printf("  Folders: %d  Notes: %d  Roots: %d\n", r.TotalFolders, r.TotalNotes, r.RootCount)
	fmt.Printf("  Max depth: %d  Empty folders: %d\n", r.MaxDepth, r.EmptyFolders)

	fmt.Println("\n  Depth distribution:")
	for _, b := range r.DepthHistogram {
		if b.Count > 0 {
			fmt.Printf("    %5s: %4d  %s\n", b.Label, b.Count, strings.Repeat("=", barWidth(b.Count)))
		}
	}

	if len(r.Cycles) > 0 {
		fmt.Println("\n  PARENT CYCLES")
		fmt.Println("  ────────────────────────────────────────")
		fmt.Printf("  %d cycles (folders unreachable from any root):\n", len(r.Cycles))
		for _, cycle := range r.Cycles {
			parts := make([]string, len(cycle))
			for i, m := range cycle {
				parts[i] = fmt.Sprintf("%s (%s)", truncID(m.ID), truncTitle(m.Title, 30))
			}
			fmt.Printf("    %s -> ...\n", strings.Join(parts, " -> "))
		}
	}

	if len(r.Orphans) > 0 {
		fmt.Println("\n  ORPHANED FOLDERS")
		fmt.Println("  ────────────────────────────────────────")
		fmt.Printf("  %d folders point at a missing parent:\n", len(r.Orphans))
		for _, o := range r.Orphans {
			fmt.Printf("    %s %s (parent %s missing)\n",
				truncID(o.ID), truncTitle(o.Title, 40), truncID(o.MissingParent))
		}
	}

	if len(r.NoteDistribution) > 0 {
		fmt.Println("\n  Most loaded folders:")
		for _, fn := range r.NoteDistribution {
			fmt.Printf("    %s %4d notes  %s\n", truncID(fn.ID), fn.Notes, truncTitle(fn.Title, 40))
		}
	}

	if r.Healthy() {
		fmt.Println("\n  No structural problems found.")
	}
	fmt.Println()
}

func barWidth(count int) int {
	w := int(math.Log2(float64(count))) + 2
	if w < 1 {
		w = 1
	}
	return w
}

func truncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Find a safe UTF-8 boundary
	truncated := s[:max]
	for len(truncated) > 0 && truncated[len(truncated)-1]>>6 == 2 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "..."
}
