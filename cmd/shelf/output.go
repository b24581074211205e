package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/docshelf/internal/files"
	"github.com/matsen/docshelf/internal/reference"
)

// Constants for output formatting.
const (
	DefaultListLimit = 50 // Default limit for search/list commands

	ListTitleMaxLen   = 50 // Used in list command output
	DetailTitleMaxLen = 70 // Used in get command detail view
	TextWrapWidth     = 60 // Standard text wrap width
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ReportResponse points at a report file written by a scan command.
type ReportResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	var currentLine strings.Builder
	for _, word := range strings.Fields(text) {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}

// printRefLine prints a one-line summary used by list and search.
func printRefLine(ref reference.Reference) {
	year := ref.Year.String()
	if year == "" {
		year = "n.d."
	}
	fmt.Printf("%-40s  %s (%s)\n", truncateString(ref.Filename, 40), truncateString(ref.Title, ListTitleMaxLen), year)
}

// printRefs prints references in list form, or a placeholder when empty.
func printRefs(refs []reference.Reference) {
	if len(refs) == 0 {
		fmt.Println("No references found")
		return
	}
	for _, ref := range refs {
		printRefLine(ref)
	}
}

// printRefDetail prints every field of a single reference.
func printRefDetail(ref reference.Reference) {
	fmt.Println(ref.Filename)
	fmt.Println(strings.Repeat("=", DetailTitleMaxLen))
	fmt.Println()
	fmt.Printf("Title:     %s\n", wrapText(ref.Title, TextWrapWidth, "           "))
	fmt.Printf("Author:    %s\n", wrapText(ref.Author, TextWrapWidth, "           "))
	if y := ref.Year.String(); y != "" {
		fmt.Printf("Year:      %s\n", y)
	}
	if p := ref.Publisher.String(); p != "" {
		fmt.Printf("Publisher: %s\n", p)
	}
	if ref.OriginalFilename != "" {
		fmt.Printf("Original:  %s\n", ref.OriginalFilename)
	}
	if ref.FileHash != "" {
		fmt.Printf("Hash:      %s\n", ref.FileHash)
	}
}

// writeReport writes a scan report to the report directory and prints where it went.
func writeReport(path string, v any, count int, summary string) {
	if err := files.WriteJSON(path, v); err != nil {
		exitWithError(ExitError, "writing report: %v", err)
	}
	if humanOutput {
		fmt.Printf("%s\nReport written to %s\n", summary, path)
	} else {
		outputJSON(ReportResponse{Status: "written", Path: path, Count: count})
	}
}
