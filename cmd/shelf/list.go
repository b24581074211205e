package main

import (
	"github.com/matsen/docshelf/internal/reference"
	"github.com/spf13/cobra"
)

var (
	listLimit int
	listYear  string
)

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum references to list (0 = all)")
	listCmd.Flags().StringVar(&listYear, "year", "", "Filter by year: exact (2024), range (2020:2024), or open (2020: or :2024)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List references in bibliography order",
	Long: `List references in bibliography order.

Examples:
  shelf list
  shelf list --year 2020: --limit 20`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(cfg)
	defer db.Close()

	var refs []reference.Reference
	var err error
	if listYear != "" {
		from, to, perr := parseYearRange(listYear)
		if perr != nil {
			exitWithError(ExitError, "invalid year format: %v", perr)
		}
		refs, err = db.ListByYear(from, to, listLimit)
	} else {
		refs, err = db.ListAll(listLimit)
	}
	if err != nil {
		exitWithError(ExitError, "listing references: %v", err)
	}
	if refs == nil {
		refs = []reference.Reference{}
	}

	if humanOutput {
		printRefs(refs)
	} else {
		outputJSON(refs)
	}
	return nil
}
