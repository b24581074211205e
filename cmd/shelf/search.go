package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/docshelf/internal/reference"
	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultListLimit, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search references by keyword, author, title or publisher",
	Long: `Search references with full-text matching.

Query Syntax:
  Plain text       - Searches filename, author, title and publisher
  author:name      - Search author names only
  title:text       - Search title only
  publisher:name   - Search publisher only

Examples:
  shelf search "deep learning"
  shelf search author:Smith`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(cfg)
	defer db.Close()

	var refs []reference.Reference
	var err error
	if field, value, ok := splitFieldQuery(args[0]); ok {
		refs, err = db.SearchField(field, value, searchLimit)
	} else {
		refs, err = db.Search(args[0], searchLimit)
	}
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	// Empty result is not an error
	if refs == nil {
		refs = []reference.Reference{}
	}

	if humanOutput {
		if len(refs) > 0 {
			fmt.Printf("Found %d references:\n\n", len(refs))
		}
		printRefs(refs)
	} else {
		outputJSON(refs)
	}
	return nil
}

// splitFieldQuery recognizes author:, title: and publisher: prefixes.
func splitFieldQuery(query string) (field, value string, ok bool) {
	for _, f := range []string{"author", "title", "publisher"} {
		if v, found := strings.CutPrefix(query, f+":"); found {
			return f, v, true
		}
	}
	return "", "", false
}

// parseYearRange parses a year filter into from/to values.
// Supported formats: "2024", "2020:2024", "2020:", ":2024"
func parseYearRange(expr string) (from, to int, err error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, 0, nil
	}

	// Check for range syntax
	if strings.Contains(expr, ":") {
		parts := strings.SplitN(expr, ":", 2)

		if parts[0] != "" {
			from, err = strconv.Atoi(parts[0])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid start year %q", parts[0])
			}
		}

		if parts[1] != "" {
			to, err = strconv.Atoi(parts[1])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid end year %q", parts[1])
			}
		}

		return from, to, nil
	}

	// Single year - exact match
	year, err := strconv.Atoi(expr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", expr)
	}

	return year, year, nil
}
