package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/matsen/docshelf/internal/config"
	"github.com/matsen/docshelf/internal/files"
	"github.com/matsen/docshelf/internal/metadata"
	"github.com/matsen/docshelf/internal/naming"
	"github.com/matsen/docshelf/internal/pdf"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show what metadata a PDF yields and the name it would get",
	Long: `Show the embedded Info dictionary, page count and first-page preview of a
PDF, together with the metadata and filename ingestion would derive from it.

The file may be a path or a name in the inbox, reference or quarantine
directory.

Example:
  shelf inspect todo/scan0001.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

// InspectResult is the response for the inspect command.
type InspectResult struct {
	pdf.Inspection
	Resolved     metadata.Metadata `json:"resolved"`
	ProposedName string            `json:"proposed_name"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	path := locateDocument(cfg, args[0])
	if path == "" {
		exitWithError(ExitError, "file not found: %s", args[0])
	}

	overrides, err := metadata.LoadOverrides(cfg.OverridesPath())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	result := InspectResult{Inspection: pdf.Inspect(path)}
	embedded, err := pdf.Extractor{}.Extract(path)
	if err != nil {
		embedded = metadata.Metadata{}
	}
	result.Resolved = metadata.Resolve(filepath.Base(path), embedded, overrides)
	gen := &naming.Generator{
		MaxLength:     cfg.MaxFilenameLength,
		TruncateWords: cfg.TruncateWords,
		Exists:        naming.DirProbe(cfg.ReferencePath()),
	}
	result.ProposedName, _ = gen.Generate(result.Resolved.Author, result.Resolved.Title, nil)

	if humanOutput {
		printInspection(result)
	} else {
		outputJSON(result)
	}
	return nil
}

// locateDocument resolves name as a path, then inside the working directories.
func locateDocument(cfg *config.Config, name string) string {
	if files.Exists(name) {
		return name
	}
	for _, dir := range []string{cfg.InboxPath(), cfg.ReferencePath(), cfg.QuarantinePath()} {
		p := filepath.Join(dir, name)
		if files.Exists(p) {
			return p
		}
	}
	return ""
}

func printInspection(r InspectResult) {
	fmt.Println(r.Filename)
	if r.Error != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", r.Error)
	}
	fmt.Printf("Pages:     %d\n", r.NumPages)

	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-12s %s\n", k+":", r.Metadata[k])
	}

	fmt.Println()
	fmt.Printf("Author:    %s\n", r.Resolved.Author)
	fmt.Printf("Title:     %s\n", r.Resolved.Title)
	fmt.Printf("Year:      %s\n", r.Resolved.Year)
	fmt.Printf("Publisher: %s\n", r.Resolved.Publisher)
	fmt.Printf("Name:      %s\n", r.ProposedName)
	if r.FirstPagePreview != "" {
		fmt.Printf("\n%s\n", wrapText(r.FirstPagePreview, TextWrapWidth, ""))
	}
}
