package review

import (
	"fmt"
	"strings"
)

var titles = map[Kind]string{
	KindExactDuplicates: "Exact Duplicates",
	KindSimilarPairs:    "Similar Pairs",
	KindUnknownAuthors:  "Unknown Authors",
	KindBrokenTitles:    "Broken Titles",
}

// RenderLog formats an apply result as Markdown.
func RenderLog(r *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Update Log\n\n", titles[r.Kind])
	fmt.Fprintf(&b, "Run: `%s`\n\n", r.RunID)
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total files processed**: %d\n", r.Total)
	fmt.Fprintf(&b, "- **Files quarantined**: %d\n", len(r.Quarantined))
	fmt.Fprintf(&b, "- **Files updated**: %d\n", len(r.Updated))
	fmt.Fprintf(&b, "- **Files skipped (no suggestions)**: %d\n", len(r.Skipped))
	fmt.Fprintf(&b, "- **Quarantine errors**: %d\n", len(r.QuarantineErrors))
	fmt.Fprintf(&b, "- **Update errors**: %d\n\n", len(r.UpdateErrors))

	if len(r.Quarantined) > 0 {
		b.WriteString("## Quarantined Files\n\n")
		for _, q := range r.Quarantined {
			if q.NewFilename != q.Filename {
				fmt.Fprintf(&b, "- %s -> %s\n", q.Filename, q.NewFilename)
			} else {
				fmt.Fprintf(&b, "- %s\n", q.Filename)
			}
		}
		b.WriteString("\n")
	}

	if len(r.Updated) > 0 {
		b.WriteString("## Updated Files\n\n")
		for _, u := range r.Updated {
			fmt.Fprintf(&b, "- **%s**", u.OldFilename)
			if u.NewFilename != u.OldFilename {
				fmt.Fprintf(&b, " -> %s", u.NewFilename)
			}
			if len(u.Changes) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(u.Changes, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	writeList(&b, "Quarantine Errors", r.QuarantineErrors)
	writeList(&b, "Update Errors", r.UpdateErrors)
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
