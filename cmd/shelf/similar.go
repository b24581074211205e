package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/matsen/docshelf/internal/review"
	"github.com/matsen/docshelf/internal/similarity"
	"github.com/spf13/cobra"
)

var similarThreshold float64

func init() {
	similarCmd.Flags().Float64Var(&similarThreshold, "threshold", 0, "Title similarity cutoff (default: similarity_threshold from config)")
	rootCmd.AddCommand(similarCmd)
}

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Find references with the same author and similar titles",
	Long: `Run only the fuzzy tier of the duplicate scan and write similar_pairs.json
to the report directory.`,
	Args: cobra.NoArgs,
	RunE: runSimilar,
}

func runSimilar(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	_, refs := mustLoadReferences(cfg)

	threshold := cfg.SimilarityThreshold
	if similarThreshold > 0 {
		threshold = similarThreshold
	}

	report := similarity.ScanPairs(refs, threshold, time.Now())
	path := filepath.Join(cfg.ReportPath(), review.KindSimilarPairs.ReportFile())
	writeReport(path, report, len(report.Pairs), fmt.Sprintf("Found %d similar pair(s) at threshold %.2f", len(report.Pairs), threshold))
	return nil
}
