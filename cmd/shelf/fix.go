package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/matsen/docshelf/internal/config"
	"github.com/matsen/docshelf/internal/logging"
	"github.com/matsen/docshelf/internal/naming"
	"github.com/matsen/docshelf/internal/repair"
	"github.com/matsen/docshelf/internal/storage"
	"github.com/spf13/cobra"
)

var (
	fixYes    bool
	fixDryRun bool
)

func init() {
	fixCmd.PersistentFlags().BoolVarP(&fixYes, "yes", "y", false, "Apply without asking for confirmation")
	fixCmd.PersistentFlags().BoolVar(&fixDryRun, "dry-run", false, "Only list the proposed fixes")
	fixCmd.AddCommand(fixFilenamesCmd)
	fixCmd.AddCommand(fixAuthorsCmd)
	rootCmd.AddCommand(fixCmd)
}

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair filenames and author lists in the bibliography",
}

var fixFilenamesCmd = &cobra.Command{
	Use:   "filenames",
	Short: "Rename files whose name does not match their author",
	Long: `Find records whose filename does not start with the author token derived
from their author field, and rename the file and record to the canonical
Author_Title.pdf form.

The bibliography is backed up with a .backup-filenames suffix first.`,
	Args: cobra.NoArgs,
	RunE: runFixFilenames,
}

var fixAuthorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Remove repeated names from author lists",
	Long: `Find author lists that name the same person more than once, compared
case-insensitively, and rewrite them without the repeats.

The bibliography is backed up with a .backup-authors suffix first.`,
	Args: cobra.NoArgs,
	RunE: runFixAuthors,
}

// FixResult is the response for the fix commands.
type FixResult struct {
	Status   string   `json:"status"`
	Proposed int      `json:"proposed"`
	Applied  int      `json:"applied"`
	Backup   string   `json:"backup,omitempty"`
	Errors   []string `json:"errors"`
	Fixes    any      `json:"fixes"`
}

func runFixFilenames(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	store, refs := mustLoadReferences(cfg)

	gen := &naming.Generator{
		MaxLength:     cfg.MaxFilenameLength,
		TruncateWords: cfg.TruncateWords,
		Exists:        naming.DirProbe(cfg.ReferencePath()),
	}
	renames := repair.MismatchedFilenames(refs, gen)
	if humanOutput {
		for _, r := range renames {
			fmt.Printf("  %s -> %s\n", r.OldFilename, r.NewFilename)
		}
	}
	result := FixResult{Status: "none", Proposed: len(renames), Errors: []string{}, Fixes: renames}
	if len(renames) == 0 || fixDryRun || !confirmFix(fmt.Sprintf("Rename %d file(s)?", len(renames))) {
		if len(renames) > 0 {
			result.Status = "proposed"
		}
		printFixResult(result)
		return nil
	}

	log := logging.WithRun(newLogger(cfg), logging.NewRunID(), "fix-filenames")
	result.Backup = mustBackup(cfg, ".backup-filenames")
	applied := repair.ApplyRenames(refs, renames, cfg.ReferencePath(), gen)
	for _, r := range applied.Renamed {
		log.Info().Str("file", r.OldFilename).Str("filename", r.NewFilename).Msg("renamed")
	}
	for _, e := range applied.Errors {
		log.Warn().Str("error", e).Msg("rename failed")
	}
	if err := store.Save(refs); err != nil {
		exitWithError(ExitError, "saving bibliography: %v", err)
	}

	result.Status = "applied"
	result.Applied = len(applied.Renamed)
	result.Errors = applied.Errors
	result.Fixes = applied.Renamed
	printFixResult(result)
	return nil
}

func runFixAuthors(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	store, refs := mustLoadReferences(cfg)

	fixes := repair.DuplicateAuthors(refs)
	if humanOutput {
		for _, f := range fixes {
			fmt.Printf("  %s: %s -> %s\n", f.Filename, f.Old, f.New)
		}
	}
	result := FixResult{Status: "none", Proposed: len(fixes), Errors: []string{}, Fixes: fixes}
	if len(fixes) == 0 || fixDryRun || !confirmFix(fmt.Sprintf("Rewrite %d author list(s)?", len(fixes))) {
		if len(fixes) > 0 {
			result.Status = "proposed"
		}
		printFixResult(result)
		return nil
	}

	log := logging.WithRun(newLogger(cfg), logging.NewRunID(), "fix-authors")
	result.Backup = mustBackup(cfg, ".backup-authors")
	repair.ApplyAuthorFixes(refs, fixes)
	for _, f := range fixes {
		log.Info().Str("file", f.Filename).Str("author", f.New).Msg("author list rewritten")
	}
	if err := store.Save(refs); err != nil {
		exitWithError(ExitError, "saving bibliography: %v", err)
	}

	result.Status = "applied"
	result.Applied = len(fixes)
	printFixResult(result)
	return nil
}

// confirmFix asks before modifying files. JSON mode never prompts, so
// agents must pass --yes.
func confirmFix(title string) bool {
	if fixYes {
		return true
	}
	if !humanOutput {
		return false
	}
	var ok bool
	if err := huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok).Run(); err != nil {
		return false
	}
	return ok
}

func mustBackup(cfg *config.Config, suffix string) string {
	backup, err := storage.Backup(cfg.ReferencesJSONPath(), suffix)
	if err != nil {
		exitWithError(ExitError, "backing up bibliography: %v", err)
	}
	return backup
}

func printFixResult(r FixResult) {
	if !humanOutput {
		outputJSON(r)
		return
	}
	switch r.Status {
	case "none":
		fmt.Println("Nothing to fix")
	case "proposed":
		fmt.Printf("%d fix(es) proposed, none applied (use --yes to apply)\n", r.Proposed)
	default:
		fmt.Printf("Applied %d of %d fix(es)\n", r.Applied, r.Proposed)
		if r.Backup != "" {
			fmt.Printf("Backup: %s\n", r.Backup)
		}
		printNameList("Errors", r.Errors)
	}
}
