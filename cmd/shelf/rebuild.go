package main

import (
	"fmt"
	"os"

	"github.com/matsen/docshelf/internal/config"
	"github.com/matsen/docshelf/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query index from the bibliography",
	Long: `Rebuild the SQLite query index from the JSON bibliography.

Queries rebuild the index automatically when the bibliography is newer; use
this after editing the bibliography by hand or if the index is corrupted.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status     string `json:"status"`
	References int    `json:"references"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	count, err := db.RebuildFromJSON(cfg.ReferencesJSONPath())
	if err != nil {
		exitWithError(ExitDataError, "rebuilding index: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt index with %d references\n", count)
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", References: count})
	}
	return nil
}
