package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/matsen/docshelf/internal/review"
	"github.com/matsen/docshelf/internal/similarity"
	"github.com/spf13/cobra"
)

var duplicatesThreshold float64

func init() {
	duplicatesCmd.Flags().Float64Var(&duplicatesThreshold, "threshold", 0, "Title similarity cutoff (default: similarity_threshold from config)")
	rootCmd.AddCommand(duplicatesCmd)
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Find duplicate references",
	Long: `Scan the bibliography for duplicates in three tiers:

  exact_duplicates  records sharing a content hash
  similar_pairs     same normalized author with similar titles
  suffix_files      files carrying a _N collision suffix

The report is written to duplicate_candidates.json in the report directory.
Mark files with "quarantine": true or fill in suggested_* fields, then run
'shelf apply exact-duplicates', or apply the similar pairs with
'shelf apply similar-pairs --file <report-dir>/duplicate_candidates.json'.`,
	Args: cobra.NoArgs,
	RunE: runDuplicates,
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	_, refs := mustLoadReferences(cfg)

	threshold := cfg.SimilarityThreshold
	if duplicatesThreshold > 0 {
		threshold = duplicatesThreshold
	}

	report := similarity.Scan(refs, threshold, time.Now())
	path := filepath.Join(cfg.ReportPath(), review.KindExactDuplicates.ReportFile())
	s := report.Summary
	count := s.ExactGroups + s.SimilarPairs + s.SuffixFiles
	writeReport(path, report, count, fmt.Sprintf(
		"Scanned %d references: %d exact duplicate group(s), %d similar pair(s), %d suffix file(s)",
		s.TotalReferences, s.ExactGroups, s.SimilarPairs, s.SuffixFiles))
	return nil
}
