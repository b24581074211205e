package audit

import (
	"sort"
	"strings"

	"github.com/matsen/docshelf/internal/reference"
)

// IsUnknownAuthor reports whether an author field carries no usable name.
func IsUnknownAuthor(author string) bool {
	switch strings.ToLower(strings.TrimSpace(author)) {
	case "", "unknown", "---", "null":
		return true
	}
	return false
}

func unknownReason(author string) []string {
	s := strings.TrimSpace(author)
	switch {
	case s == "":
		return []string{"Author field is empty"}
	case strings.ToLower(s) == "unknown":
		return []string{`Author is "Unknown"`}
	case s == "---":
		return []string{`Author is "---"`}
	}
	return []string{}
}

// UnknownAuthors returns review entries for records without a usable author,
// sorted by filename.
func UnknownAuthors(refs []reference.Reference) []ReviewEntry {
	entries := []ReviewEntry{}
	for _, ref := range refs {
		if IsUnknownAuthor(ref.Author) {
			entries = append(entries, reviewEntry(ref, unknownReason(ref.Author)))
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Filename < entries[j].Filename
	})
	return entries
}
