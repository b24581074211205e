package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <filename>",
	Short: "Get a single reference by filename",
	Long: `Get a single reference by its filename in the reference directory.

Example:
  shelf get Smith_Deep_Learning.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(cfg)
	defer db.Close()

	filename := args[0]
	ref, err := db.GetByFilename(filename)
	if err != nil {
		exitWithError(ExitError, "getting reference: %v", err)
	}
	if ref == nil {
		exitWithError(ExitError, "reference not found: %s", filename)
	}

	if humanOutput {
		printRefDetail(*ref)
	} else {
		outputJSON(ref)
	}
	return nil
}
