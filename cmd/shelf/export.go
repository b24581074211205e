package main

import (
	"fmt"
	"os"

	"github.com/matsen/docshelf/internal/export"
	"github.com/matsen/docshelf/internal/files"
	"github.com/matsen/docshelf/internal/reference"
	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [filename...]",
	Short: "Export references to BibTeX",
	Long: `Export references to BibTeX format.

With no arguments every reference is exported.

Examples:
  shelf export
  shelf export Smith_Deep_Learning.pdf -o refs.bib`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	_, refs := mustLoadReferences(cfg)

	selected := refs
	if len(args) > 0 {
		byName := make(map[string]reference.Reference, len(refs))
		for _, r := range refs {
			byName[r.Filename] = r
		}
		selected = make([]reference.Reference, 0, len(args))
		for _, name := range args {
			r, ok := byName[name]
			if !ok {
				exitWithError(ExitError, "reference not found: %s", name)
			}
			selected = append(selected, r)
		}
	}

	bib := export.ToBibTeXList(selected)
	if exportOutput == "" {
		fmt.Print(bib)
		return nil
	}
	if err := files.WriteText(exportOutput, bib); err != nil {
		exitWithError(ExitError, "writing %s: %v", exportOutput, err)
	}
	fmt.Fprintf(os.Stderr, "Exported %d references to %s\n", len(selected), exportOutput)
	return nil
}
