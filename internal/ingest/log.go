package ingest

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// RenderLog formats a run result as the Markdown processing log.
func RenderLog(r *Result) string {
	var b strings.Builder

	b.WriteString("# Document Processing Log\n\n")
	fmt.Fprintf(&b, "Run: `%s`\n\n", r.RunID)
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total PDFs processed**: %d\n", len(r.Processed))
	fmt.Fprintf(&b, "- **Conflicts detected (kept in inbox)**: %d\n", len(r.Conflicts))
	fmt.Fprintf(&b, "- **Large PDFs skipped**: %d\n", len(r.SkippedLarge))
	fmt.Fprintf(&b, "- **Non-PDF files skipped**: %d\n", len(r.SkippedNonPDF))
	fmt.Fprintf(&b, "- **Errors encountered**: %d\n", len(r.Errors))
	fmt.Fprintf(&b, "- **Issues logged**: %d\n\n", len(r.Issues))

	if len(r.Conflicts) > 0 {
		b.WriteString("## Files with Conflicts (Kept in inbox)\n\n")
		for _, report := range r.Conflicts {
			fmt.Fprintf(&b, "### %s\n\n", report.OriginalFilename)
			for _, c := range report.Conflicts {
				fmt.Fprintf(&b, "- **%s**: %s\n", c.Type, c.Message)
				fmt.Fprintf(&b, "  - Existing file: `%s`\n", c.ExistingFilename)
				if c.ExistingTitle != "" {
					fmt.Fprintf(&b, "  - Existing title: %s\n", c.ExistingTitle)
				}
			}
			b.WriteString("\n")
		}
	}

	if len(r.SkippedLarge) > 0 {
		b.WriteString("## Large Files Skipped\n\n")
		for _, s := range r.SkippedLarge {
			fmt.Fprintf(&b, "- %s (%s)\n", s.Name, humanize.Bytes(uint64(s.Size)))
		}
		b.WriteString("\n")
	}

	writeList(&b, "Non-PDF Files Skipped", r.SkippedNonPDF)
	writeList(&b, "Errors", r.Errors)
	writeList(&b, "Issues and Warnings", r.Issues)

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
