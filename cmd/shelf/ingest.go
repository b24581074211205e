package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/matsen/docshelf/internal/ingest"
	"github.com/matsen/docshelf/internal/logging"
	"github.com/matsen/docshelf/internal/metadata"
	"github.com/matsen/docshelf/internal/pdf"
	"github.com/spf13/cobra"
)

var ingestDryRun bool

func init() {
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Show what would be done without moving files or writing the bibliography")
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Process documents waiting in the inbox",
	Long: `Process every PDF in the inbox directory.

For each document the metadata is extracted from the embedded PDF info and
the filename, corrected from the overrides file if configured, and used to
generate an Author_Title.pdf name. Documents whose content or name collides
with an existing record are held back in the inbox and written to
ingestion_conflicts.json. Everything else is moved to the reference
directory and added to the bibliography.

A log.md summary is written to the markdown directory after each run.

Examples:
  shelf ingest
  shelf ingest --dry-run`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	overrides, err := metadata.LoadOverrides(cfg.OverridesPath())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	proc := ingest.NewProcessor(cfg, pdf.Extractor{}, overrides, newLogger(cfg), logging.NewRunID())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := proc.Run(ctx, ingest.Options{DryRun: ingestDryRun})
	if err != nil {
		exitWithError(ExitDataError, "ingest: %v", err)
	}

	if humanOutput {
		printIngestResult(result)
	} else {
		outputJSON(result)
	}
	return nil
}

func printIngestResult(r *ingest.Result) {
	verb := "Processed"
	if r.DryRun {
		verb = "Would process"
	}
	fmt.Printf("%s %d document(s)\n", verb, len(r.Processed))
	for _, p := range r.Processed {
		fmt.Printf("  %s -> %s\n", p.OriginalFilename, p.Filename)
	}
	if len(r.Conflicts) > 0 {
		fmt.Printf("\n%d conflict(s) held in inbox:\n", len(r.Conflicts))
		for _, c := range r.Conflicts {
			for _, cf := range c.Conflicts {
				fmt.Printf("  %s: %s\n", c.OriginalFilename, cf.Message)
			}
		}
	}
	if len(r.SkippedLarge) > 0 {
		fmt.Printf("\nSkipped %d large file(s):\n", len(r.SkippedLarge))
		for _, s := range r.SkippedLarge {
			fmt.Printf("  %s (%s)\n", s.Name, humanize.Bytes(uint64(s.Size)))
		}
	}
	if len(r.SkippedNonPDF) > 0 {
		fmt.Printf("\nSkipped %d non-PDF file(s)\n", len(r.SkippedNonPDF))
	}
	if len(r.Errors) > 0 {
		fmt.Printf("\n%d error(s):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  %s\n", e)
		}
	}
	if len(r.Issues) > 0 {
		fmt.Printf("\n%d issue(s) logged\n", len(r.Issues))
	}
}
