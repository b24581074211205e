// Package review applies manual decisions recorded in annotated review
// reports: quarantining documents and correcting their metadata.
package review

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/matsen/docshelf/internal/files"
	"github.com/matsen/docshelf/internal/reference"
)

// Kind names a review report.
type Kind string

const (
	KindExactDuplicates Kind = "exact_duplicates"
	KindSimilarPairs    Kind = "similar_pairs"
	KindUnknownAuthors  Kind = "unknown_authors"
	KindBrokenTitles    Kind = "broken_titles"
)

// Kinds lists the accepted report kinds.
var Kinds = []Kind{KindExactDuplicates, KindSimilarPairs, KindUnknownAuthors, KindBrokenTitles}

// ParseKind accepts a kind name with dashes or underscores.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(s), "-", "_"))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown review kind %q", s)
}

// ReportFile is the default report filename for the kind.
func (k Kind) ReportFile() string {
	switch k {
	case KindExactDuplicates:
		return "duplicate_candidates.json"
	default:
		return string(k) + ".json"
	}
}

// LogFile is the Markdown log written after applying the kind.
func (k Kind) LogFile() string {
	return string(k) + "_update_log.md"
}

// renamesOnQuarantine reports whether quarantined files take a name derived
// from the suggested metadata.
func (k Kind) renamesOnQuarantine() bool {
	return k == KindUnknownAuthors || k == KindBrokenTitles
}

// Entry is one annotated file from a review report.
type Entry struct {
	Filename string `json:"filename"`
	reference.Annotation
}

// LoadEntries reads the annotated files of a report of the given kind.
func LoadEntries(kind Kind, path string) ([]Entry, error) {
	switch kind {
	case KindExactDuplicates:
		var doc struct {
			ExactDuplicates []struct {
				Files []Entry `json:"files"`
			} `json:"exact_duplicates"`
		}
		if err := files.ReadJSON(path, &doc); err != nil {
			return nil, err
		}
		var entries []Entry
		for _, g := range doc.ExactDuplicates {
			entries = append(entries, g.Files...)
		}
		return entries, nil

	case KindSimilarPairs:
		var doc struct {
			SimilarPairs []map[string]json.RawMessage `json:"similar_pairs"`
		}
		if err := files.ReadJSON(path, &doc); err != nil {
			return nil, err
		}
		var entries []Entry
		for _, pair := range doc.SimilarPairs {
			pairEntries, err := pairFiles(pair)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			entries = append(entries, pairEntries...)
		}
		return entries, nil

	default:
		var entries []Entry
		if err := files.ReadJSON(path, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	}
}

// pairFiles decodes every "file*" member of a pair, in key order, so pairs
// extended by hand with file3, file4 and so on are honored.
func pairFiles(pair map[string]json.RawMessage) ([]Entry, error) {
	var keys []string
	for k := range pair {
		if strings.HasPrefix(k, "file") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var entries []Entry
	for _, k := range keys {
		var e Entry
		if err := json.Unmarshal(pair[k], &e); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		if e.Filename != "" {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Flatten merges entries that name the same file, keeping first-seen order.
// Quarantine is sticky and later non-null suggestions win.
func Flatten(entries []Entry) []Entry {
	index := make(map[string]int)
	var out []Entry
	for _, e := range entries {
		if i, ok := index[e.Filename]; ok {
			out[i].Annotation.Merge(e.Annotation)
			continue
		}
		index[e.Filename] = len(out)
		out = append(out, e)
	}
	return out
}
