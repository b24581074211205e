package audit

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/matsen/docshelf/internal/reference"
)

// BadMetadataFile is the Markdown list of suspect filenames.
const BadMetadataFile = "bad_metadata.md"

var leadingNumbers = regexp.MustCompile(`^\d+_`)

// IsSuspectFilename reports whether a filename suggests missing or bad
// metadata: a numeric prefix, an "untitled" name, a very short stem without
// structure, or a stem that is mostly digits.
func IsSuspectFilename(name string) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if leadingNumbers.MatchString(stem) {
		return true
	}
	if strings.HasPrefix(strings.ToLower(stem), "untitled") {
		return true
	}
	if len(stem) < 8 && !strings.Contains(stem, "_") {
		return true
	}

	var digits, total int
	for _, r := range stem {
		total++
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return total > 0 && digits*2 > total
}

// Verification compares the bibliography with the reference directory.
type Verification struct {
	PDFCount      int      `json:"pdf_count"`
	RecordCount   int      `json:"record_count"`
	FilesNotInBib []string `json:"files_not_in_bibliography"`
	EntriesNoFile []string `json:"entries_without_file"`
	SuspectFiles  []string `json:"suspect_filenames"`
}

// Discrepancies counts files and entries without a counterpart.
func (v Verification) Discrepancies() int {
	return len(v.FilesNotInBib) + len(v.EntriesNoFile)
}

// Verify cross-checks records against the PDF names present on disk.
func Verify(refs []reference.Reference, pdfNames map[string]bool) Verification {
	v := Verification{
		PDFCount:      len(pdfNames),
		FilesNotInBib: []string{},
		EntriesNoFile: []string{},
		SuspectFiles:  []string{},
	}

	referenced := make(map[string]bool, len(refs))
	for _, ref := range refs {
		referenced[ref.Filename] = true
	}
	v.RecordCount = len(referenced)

	for name := range pdfNames {
		if !referenced[name] {
			v.FilesNotInBib = append(v.FilesNotInBib, name)
		}
		if IsSuspectFilename(name) {
			v.SuspectFiles = append(v.SuspectFiles, name)
		}
	}
	for name := range referenced {
		if !pdfNames[name] {
			v.EntriesNoFile = append(v.EntriesNoFile, name)
		}
	}

	sort.Strings(v.FilesNotInBib)
	sort.Strings(v.EntriesNoFile)
	sort.Strings(v.SuspectFiles)
	return v
}

// RenderBadMetadata formats the suspect filename list as Markdown.
func RenderBadMetadata(suspect []string) string {
	var b strings.Builder
	b.WriteString("# Files with Suspect Metadata\n\n")
	b.WriteString("These files appear to have bad or missing metadata based on their filenames.\n")
	b.WriteString("They may need manual review and renaming.\n\n")
	fmt.Fprintf(&b, "**Total suspect files**: %d\n\n", len(suspect))
	b.WriteString("---\n\n")

	if len(suspect) == 0 {
		b.WriteString("No suspect files found.\n")
		return b.String()
	}
	b.WriteString("## Files to Review\n\n")
	for i, name := range suspect {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, name)
	}
	return b.String()
}
