package main

import (
	"fmt"
	"path/filepath"

	"github.com/matsen/docshelf/internal/audit"
	"github.com/matsen/docshelf/internal/review"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(brokenTitlesCmd)
}

var brokenTitlesCmd = &cobra.Command{
	Use:   "broken-titles",
	Short: "Find references whose titles look like extraction garbage",
	Long: `Flag titles that look like journal identifiers, DOIs, file paths,
scanner output or other non-titles and write broken_titles.json to the
report directory.

Fill in suggested_title (and optionally suggested_author or suggested_year)
or set "quarantine": true, then run 'shelf apply broken-titles'.`,
	Args: cobra.NoArgs,
	RunE: runBrokenTitles,
}

func runBrokenTitles(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	_, refs := mustLoadReferences(cfg)

	entries := audit.BrokenTitles(refs)
	path := filepath.Join(cfg.ReportPath(), review.KindBrokenTitles.ReportFile())
	writeReport(path, entries, len(entries), fmt.Sprintf("Found %d reference(s) with broken titles", len(entries)))
	return nil
}
