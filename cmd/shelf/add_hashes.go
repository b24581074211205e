package main

import (
	"fmt"

	"github.com/matsen/docshelf/internal/logging"
	"github.com/matsen/docshelf/internal/repair"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addHashesCmd)
}

var addHashesCmd = &cobra.Command{
	Use:   "add-hashes",
	Short: "Record content hashes for references that lack one",
	Long: `Compute the SHA-256 hash of every referenced file that has no file_hash
yet and save it to the bibliography, so exact duplicate detection covers
older records.`,
	Args: cobra.NoArgs,
	RunE: runAddHashes,
}

func runAddHashes(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	store, refs := mustLoadReferences(cfg)

	log := logging.WithRun(newLogger(cfg), logging.NewRunID(), "add-hashes")
	result := repair.AddHashes(refs, cfg.ReferencePath())
	for _, e := range result.Errors {
		log.Warn().Str("error", e).Msg("hash not recorded")
	}
	log.Info().Int("updated", result.Updated).Int("already_hashed", result.AlreadyHashed).Msg("hashing done")
	if result.Updated > 0 {
		if err := store.Save(refs); err != nil {
			exitWithError(ExitError, "saving bibliography: %v", err)
		}
	}

	if humanOutput {
		fmt.Printf("Hashed %d reference(s), %d already hashed\n", result.Updated, result.AlreadyHashed)
		printNameList("Errors", result.Errors)
	} else {
		outputJSON(result)
	}
	return nil
}
