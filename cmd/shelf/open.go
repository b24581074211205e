package main

import (
	"fmt"

	"github.com/matsen/docshelf/internal/config"
	"github.com/matsen/docshelf/internal/pdf"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <filename>...",
	Short: "Open documents in the configured PDF reader",
	Long: `Open documents from the reference or quarantine directory in the PDF
reader named by pdf_reader (repository config, then global config, then
the system default).

Examples:
  shelf open Smith_Deep_Learning.pdf
  shelf config pdf-reader zathura`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOpen,
}

// OpenResult is the response for the open command.
type OpenResult struct {
	Status string   `json:"status"`
	Opened []string `json:"opened"`
}

func runOpen(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	opener := pdf.NewOpener(pdfReader(cfg), cfg.ReferencePath(), cfg.QuarantinePath())

	// Resolve everything first so a typo opens nothing
	paths := make([]string, 0, len(args))
	for _, name := range args {
		p, err := opener.ResolvePath(name)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		paths = append(paths, p)
	}
	for _, p := range paths {
		if err := opener.Open(p); err != nil {
			exitWithError(ExitError, "opening PDF: %v", err)
		}
	}

	if humanOutput {
		for _, p := range paths {
			fmt.Printf("Opened %s\n", p)
		}
	} else {
		outputJSON(OpenResult{Status: "opened", Opened: paths})
	}
	return nil
}

func pdfReader(cfg *config.Config) string {
	if cfg.PDFReader != "" {
		return cfg.PDFReader
	}
	if g, err := config.LoadGlobalConfig(); err == nil && g.PDFReader != "" {
		return g.PDFReader
	}
	return ""
}
