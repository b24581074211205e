package main

import (
	"fmt"
	"os"

	"github.com/matsen/docshelf/internal/export"
	"github.com/matsen/docshelf/internal/files"
	"github.com/spf13/cobra"
)

var renderNormalizeOnly bool

func init() {
	renderCmd.Flags().BoolVar(&renderNormalizeOnly, "normalize-only", false, "Only collapse blank-line runs in the existing markdown file")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Regenerate the Harvard-style markdown bibliography",
	Long: `Regenerate the markdown bibliography from the JSON bibliography.

Entries are sorted by filename. With --normalize-only the existing markdown
file is kept and only its spacing is normalized.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

// RenderResult is the response for the render command.
type RenderResult struct {
	Status     string `json:"status"`
	Path       string `json:"path"`
	References int    `json:"references"`
}

func runRender(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	path := cfg.ReferencesMDPath()

	count := 0
	if renderNormalizeOnly {
		data, err := os.ReadFile(path)
		if err != nil {
			exitWithError(ExitDataError, "reading markdown: %v", err)
		}
		normalized := export.NormalizeSpacing(string(data))
		if err := files.WriteText(path, normalized); err != nil {
			exitWithError(ExitError, "writing markdown: %v", err)
		}
		count = len(export.ParseMarkdown(normalized))
	} else {
		_, refs := mustLoadReferences(cfg)
		if err := export.WriteMarkdown(path, refs); err != nil {
			exitWithError(ExitError, "writing markdown: %v", err)
		}
		count = len(refs)
	}

	if humanOutput {
		fmt.Printf("Wrote %d references to %s\n", count, path)
	} else {
		outputJSON(RenderResult{Status: "written", Path: path, References: count})
	}
	return nil
}
