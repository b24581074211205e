package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/docshelf/internal/audit"
	"github.com/matsen/docshelf/internal/files"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Cross-check the bibliography against the reference directory",
	Long: `Compare the bibliography with the PDFs in the reference directory.

Reports files without a record, records without a file and filenames that
suggest bad metadata. The suspect list is written to bad_metadata.md in the
report directory.

Exits with status 4 when files and records disagree.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	_, refs := mustLoadReferences(cfg)

	names, err := files.PDFNames(cfg.ReferencePath())
	if err != nil {
		exitWithError(ExitError, "listing reference directory: %v", err)
	}

	v := audit.Verify(refs, names)
	badPath := filepath.Join(cfg.ReportPath(), audit.BadMetadataFile)
	if err := files.WriteText(badPath, audit.RenderBadMetadata(v.SuspectFiles)); err != nil {
		exitWithError(ExitError, "writing %s: %v", audit.BadMetadataFile, err)
	}

	if humanOutput {
		printVerification(v, badPath)
	} else {
		outputJSON(v)
	}
	if v.Discrepancies() > 0 {
		os.Exit(ExitFindings)
	}
	return nil
}

func printVerification(v audit.Verification, badPath string) {
	fmt.Printf("PDF files:    %d\n", v.PDFCount)
	fmt.Printf("Bibliography: %d\n", v.RecordCount)
	printNameList("Files not in bibliography", v.FilesNotInBib)
	printNameList("Entries without a file", v.EntriesNoFile)
	fmt.Printf("\n%d suspect filename(s) listed in %s\n", len(v.SuspectFiles), badPath)
	if v.Discrepancies() == 0 {
		fmt.Println("All files and entries match")
	}
}
