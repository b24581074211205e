package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matsen/docshelf/internal/logging"
	"github.com/matsen/docshelf/internal/review"
	"github.com/spf13/cobra"
)

var applyFile string

func init() {
	applyCmd.Flags().StringVar(&applyFile, "file", "", "Annotated report to apply (default: the kind's report in the report directory)")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply <kind>",
	Short: "Apply review decisions from an annotated report",
	Long: `Apply the quarantine flags and suggested_* corrections from an annotated
review report.

Kinds:
  exact-duplicates  duplicate_candidates.json (exact_duplicates groups)
  similar-pairs     similar_pairs.json
  unknown-authors   unknown_authors.json
  broken-titles     broken_titles.json

Quarantined files move to the quarantine directory and leave the
bibliography. Suggested values rename the file and update its record. The
markdown bibliography is regenerated and a <kind>_update_log.md is written
to the markdown directory.

Examples:
  shelf apply unknown-authors
  shelf apply similar-pairs --file reviewed_pairs.json`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	kind, err := review.ParseKind(args[0])
	if err != nil {
		exitWithError(ExitError, "%v (valid: %s)", err, kindNames())
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	path := applyFile
	if path == "" {
		path = filepath.Join(cfg.ReportPath(), kind.ReportFile())
	}
	entries, err := review.LoadEntries(kind, path)
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", path, err)
	}

	applier := review.NewApplier(cfg, newLogger(cfg), logging.NewRunID())
	result, err := applier.Apply(kind, entries)
	if err != nil {
		exitWithError(ExitDataError, "applying %s: %v", kind, err)
	}

	if humanOutput {
		printApplyResult(result)
	} else {
		outputJSON(result)
	}
	return nil
}

func kindNames() string {
	names := make([]string, len(review.Kinds))
	for i, k := range review.Kinds {
		names[i] = strings.ReplaceAll(string(k), "_", "-")
	}
	return strings.Join(names, ", ")
}

func printApplyResult(r *review.Result) {
	fmt.Printf("Reviewed %d file(s)\n", r.Total)
	fmt.Printf("  Quarantined: %d\n", len(r.Quarantined))
	fmt.Printf("  Updated:     %d\n", len(r.Updated))
	fmt.Printf("  Skipped:     %d\n", len(r.Skipped))
	for _, u := range r.Updated {
		fmt.Printf("  %s -> %s (%s)\n", u.OldFilename, u.NewFilename, strings.Join(u.Changes, ", "))
	}
	printNameList("Quarantine errors", r.QuarantineErrors)
	printNameList("Update errors", r.UpdateErrors)
}
