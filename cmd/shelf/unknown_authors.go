package main

import (
	"fmt"
	"path/filepath"

	"github.com/matsen/docshelf/internal/audit"
	"github.com/matsen/docshelf/internal/review"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(unknownAuthorsCmd)
}

var unknownAuthorsCmd = &cobra.Command{
	Use:   "unknown-authors",
	Short: "Find references without a usable author",
	Long: `List references whose author is missing, "Unknown" or a placeholder and
write unknown_authors.json to the report directory.

Fill in suggested_author or set "quarantine": true, then run
'shelf apply unknown-authors'.`,
	Args: cobra.NoArgs,
	RunE: runUnknownAuthors,
}

func runUnknownAuthors(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	_, refs := mustLoadReferences(cfg)

	entries := audit.UnknownAuthors(refs)
	path := filepath.Join(cfg.ReportPath(), review.KindUnknownAuthors.ReportFile())
	writeReport(path, entries, len(entries), fmt.Sprintf("Found %d reference(s) with unknown authors", len(entries)))
	return nil
}
