package main

import (
	"fmt"
	"os"

	"github.com/matsen/docshelf/internal/audit"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the markdown bibliography against the JSON records",
	Long: `Parse the rendered markdown bibliography and compare the files it names
with the JSON records. Duplicate filenames in the records are reported too.

Exits with status 4 when the two disagree; run 'shelf render' to fix.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	_, refs := mustLoadReferences(cfg)

	md, err := os.ReadFile(cfg.ReferencesMDPath())
	if err != nil && !os.IsNotExist(err) {
		exitWithError(ExitDataError, "reading markdown: %v", err)
	}

	v := audit.ValidateMarkdown(string(md), refs)
	if humanOutput {
		fmt.Printf("Markdown entries: %d\n", v.MarkdownEntries)
		fmt.Printf("JSON entries:     %d\n", v.JSONEntries)
		printNameList("Missing in markdown", v.MissingInMarkdown)
		printNameList("Missing in JSON", v.MissingInJSON)
		printNameList("Duplicate filenames", v.DuplicateFilenames)
		if v.OK() {
			fmt.Println("Markdown and JSON are consistent")
		}
	} else {
		outputJSON(v)
	}
	if !v.OK() {
		os.Exit(ExitFindings)
	}
	return nil
}

func printNameList(heading string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Printf("\n%s (%d):\n", heading, len(names))
	for _, n := range names {
		fmt.Printf("  %s\n", n)
	}
}
