package export

import (
	"regexp"
	"sort"
	"strings"

	"github.com/matsen/docshelf/internal/files"
	"github.com/matsen/docshelf/internal/reference"
)

// MarkdownHeader opens every rendered bibliography.
const MarkdownHeader = "# References\n\nHarvard-style bibliography of processed documents.\n\n---\n\n"

// RenderMarkdown renders the whole bibliography sorted by lowercase filename.
func RenderMarkdown(refs []reference.Reference) string {
	sorted := make([]reference.Reference, len(refs))
	copy(sorted, refs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Filename) < strings.ToLower(sorted[j].Filename)
	})

	var b strings.Builder
	b.WriteString(MarkdownHeader)
	for _, ref := range sorted {
		b.WriteString(HarvardFor(ref))
		b.WriteString("\n\n")
	}
	return b.String()
}

// WriteMarkdown regenerates the Markdown bibliography at path.
func WriteMarkdown(path string, refs []reference.Reference) error {
	return files.WriteText(path, RenderMarkdown(refs))
}

// Entry is a citation parsed back out of rendered Markdown.
type Entry struct {
	Authors   string `json:"authors"`
	Year      string `json:"year"`
	Title     string `json:"title"`
	Publisher string `json:"publisher,omitempty"`
	Filename  string `json:"filename"`
}

var entryPattern = regexp.MustCompile(`([^\n]+?)\s+\(([^)]+)\)\s+\*([^*]+)\*\.([^\n]*)\n\*\*File\*\*:\s+([^\n]+)`)

// ParseMarkdown extracts every citation block from rendered Markdown.
func ParseMarkdown(content string) []Entry {
	var entries []Entry
	for _, m := range entryPattern.FindAllStringSubmatch(content, -1) {
		entries = append(entries, Entry{
			Authors:   strings.TrimSpace(m[1]),
			Year:      m[2],
			Title:     m[3],
			Publisher: strings.TrimSuffix(strings.TrimSpace(m[4]), "."),
			Filename:  strings.TrimSpace(m[5]),
		})
	}
	return entries
}

// NormalizeSpacing leaves exactly one blank line after every filename line.
func NormalizeSpacing(content string) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")

	var out []string
	afterFile := false
	for _, line := range lines {
		if afterFile {
			if strings.TrimSpace(line) == "" {
				continue
			}
			afterFile = false
		}
		out = append(out, line)
		if strings.HasPrefix(line, FileLabel) {
			out = append(out, "")
			afterFile = true
		}
	}
	return strings.Join(out, "\n") + "\n"
}
