package audit

import (
	"sort"

	"github.com/matsen/docshelf/internal/export"
	"github.com/matsen/docshelf/internal/reference"
)

// MarkdownValidation reports differences between the rendered Markdown
// bibliography and the JSON records.
type MarkdownValidation struct {
	MarkdownEntries    int      `json:"markdown_entries"`
	JSONEntries        int      `json:"json_entries"`
	MissingInMarkdown  []string `json:"missing_in_markdown"`
	MissingInJSON      []string `json:"missing_in_json"`
	DuplicateFilenames []string `json:"duplicate_filenames"`
}

// OK reports whether both sides name the same unique files.
func (v MarkdownValidation) OK() bool {
	return len(v.MissingInMarkdown) == 0 && len(v.MissingInJSON) == 0 && len(v.DuplicateFilenames) == 0
}

// ValidateMarkdown parses rendered entries out of md and compares their
// filenames with refs. Duplicate filenames in refs are reported too.
func ValidateMarkdown(md string, refs []reference.Reference) MarkdownValidation {
	mdNames := make(map[string]bool)
	for _, e := range export.ParseMarkdown(md) {
		mdNames[e.Filename] = true
	}

	counts := make(map[string]int, len(refs))
	for _, ref := range refs {
		counts[ref.Filename]++
	}

	v := MarkdownValidation{
		MarkdownEntries:    len(mdNames),
		JSONEntries:        len(counts),
		MissingInMarkdown:  []string{},
		MissingInJSON:      []string{},
		DuplicateFilenames: []string{},
	}
	for name, n := range counts {
		if !mdNames[name] {
			v.MissingInMarkdown = append(v.MissingInMarkdown, name)
		}
		if n > 1 {
			v.DuplicateFilenames = append(v.DuplicateFilenames, name)
		}
	}
	for name := range mdNames {
		if counts[name] == 0 {
			v.MissingInJSON = append(v.MissingInJSON, name)
		}
	}

	sort.Strings(v.MissingInMarkdown)
	sort.Strings(v.MissingInJSON)
	sort.Strings(v.DuplicateFilenames)
	return v
}
