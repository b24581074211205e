// Package export renders bibliography references as Harvard-style Markdown
// and BibTeX.
package export

import (
	"fmt"
	"strings"

	"github.com/matsen/docshelf/internal/reference"
)

// FileLabel prefixes the filename line of every rendered entry.
const FileLabel = "**File**:"

// Harvard formats one citation block:
//
//	Smith and Jones (2020) *Title*. Publisher.
//	**File**: Smith_Jones_Title.pdf
//
// A missing year renders as (n.d.), a missing title as *Untitled*, and a
// missing publisher emits nothing.
func Harvard(names []string, year, title, publisher, filename string) string {
	year = strings.TrimSpace(year)
	if year == "" {
		year = "n.d."
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) *%s*.", reference.FormatAuthors(names), year, title)
	if p := strings.TrimRight(strings.TrimSpace(publisher), "."); p != "" {
		fmt.Fprintf(&b, " %s.", p)
	}
	fmt.Fprintf(&b, "\n%s %s", FileLabel, filename)
	return b.String()
}

// HarvardFor formats a stored reference.
func HarvardFor(ref reference.Reference) string {
	return Harvard(reference.SplitAuthors(ref.Author), ref.Year.String(), ref.Title, ref.Publisher.String(), ref.Filename)
}
