// Package similarity finds likely-duplicate documents in the bibliography by
// content hash, fuzzy title match and numbered-suffix filenames.
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/matsen/docshelf/internal/reference"
)

// DefaultThreshold is the minimum title similarity for a fuzzy pair.
const DefaultThreshold = 0.70

// FileEntry is one document as it appears in a duplicate report.
type FileEntry struct {
	Filename  string `json:"filename"`
	Title     string `json:"title"`
	Year      string `json:"year"`
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	reference.Annotation
}

// DuplicateGroup is a set of documents with identical content.
type DuplicateGroup struct {
	FileHash string      `json:"file_hash"`
	Count    int         `json:"count"`
	Files    []FileEntry `json:"files"`
}

// SimilarPair is two documents with the same author and similar titles.
type SimilarPair struct {
	Similarity float64   `json:"similarity"`
	Author     string    `json:"author"`
	File1      FileEntry `json:"file1"`
	File2      FileEntry `json:"file2"`
}

// SuffixFile is a document whose filename ends in a numeric collision suffix.
type SuffixFile struct {
	Filename string `json:"filename"`
	Base     string `json:"base"`
	Suffix   int    `json:"suffix"`
	Title    string `json:"title"`
	Author   string `json:"author"`
}

// NormalizeAuthor lowercases and trims an author string for comparison.
func NormalizeAuthor(author string) string {
	return strings.ToLower(strings.TrimSpace(author))
}

// editionPattern matches a trailing edition marker such as "2nd Edition" or "(Third ed.)".
var editionPattern = regexp.MustCompile(`(?i)[\s,:;(\-]*\b(\d+(st|nd|rd|th)|first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|revised|updated|expanded)\s+(edition|ed\.?)\)?\s*$`)

// editionOnlyScore is the highest score for titles that are not identical.
const editionOnlyScore = 0.99

// TitleSimilarity scores two titles in [0,1]: 1.0 for case-insensitive
// equality, 0.0 when either is empty, otherwise 2*LCS/(len1+len2) over the
// runes of the lowercased strings. Titles that differ only by a trailing
// edition marker score as the better of the raw and marker-stripped ratios,
// capped at editionOnlyScore so only identical titles reach 1.
func TitleSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	score := lcsRatio(a, b)
	sa := strings.TrimSpace(editionPattern.ReplaceAllString(a, ""))
	sb := strings.TrimSpace(editionPattern.ReplaceAllString(b, ""))
	if (sa != a || sb != b) && sa != "" && sb != "" {
		score = math.Max(score, math.Min(lcsRatio(sa, sb), editionOnlyScore))
	}
	return score
}

func lcsRatio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	return 2 * float64(edlib.LCS(a, b)) / float64(total)
}

// ExactDuplicates groups references sharing a non-empty file hash. Groups are
// ordered by the position of their first member.
func ExactDuplicates(refs []reference.Reference) []DuplicateGroup {
	byHash := make(map[string][]reference.Reference)
	var order []string
	for _, ref := range refs {
		if ref.FileHash == "" {
			continue
		}
		if _, seen := byHash[ref.FileHash]; !seen {
			order = append(order, ref.FileHash)
		}
		byHash[ref.FileHash] = append(byHash[ref.FileHash], ref)
	}

	var groups []DuplicateGroup
	for _, hash := range order {
		members := byHash[hash]
		if len(members) < 2 {
			continue
		}
		group := DuplicateGroup{FileHash: hash, Count: len(members)}
		for _, ref := range members {
			group.Files = append(group.Files, entryFor(ref))
		}
		groups = append(groups, group)
	}
	return groups
}

// SimilarPairs compares every unordered pair of references whose normalized
// authors match exactly and reports those scoring at least threshold.
// References with an empty author never pair.
func SimilarPairs(refs []reference.Reference, threshold float64) []SimilarPair {
	authors := make([]string, len(refs))
	for i, ref := range refs {
		authors[i] = NormalizeAuthor(ref.Author)
	}

	var pairs []SimilarPair
	for i := 0; i < len(refs); i++ {
		if authors[i] == "" {
			continue
		}
		for j := i + 1; j < len(refs); j++ {
			if authors[i] != authors[j] {
				continue
			}
			score := TitleSimilarity(refs[i].Title, refs[j].Title)
			if score < threshold {
				continue
			}
			pairs = append(pairs, SimilarPair{
				Similarity: math.Round(score*1000) / 1000,
				Author:     refs[i].Author,
				File1:      entryFor(refs[i]),
				File2:      entryFor(refs[j]),
			})
		}
	}
	return pairs
}

var suffixPattern = regexp.MustCompile(`^(.+)_(\d+)\.pdf$`)

// SuffixFiles lists references whose filename looks like "Base_N.pdf",
// sorted by base then numeric suffix.
func SuffixFiles(refs []reference.Reference) []SuffixFile {
	var out []SuffixFile
	for _, ref := range refs {
		m := suffixPattern.FindStringSubmatch(ref.Filename)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		out = append(out, SuffixFile{
			Filename: ref.Filename,
			Base:     m[1],
			Suffix:   n,
			Title:    ref.Title,
			Author:   ref.Author,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Base != out[j].Base {
			return out[i].Base < out[j].Base
		}
		return out[i].Suffix < out[j].Suffix
	})
	return out
}

func entryFor(ref reference.Reference) FileEntry {
	return FileEntry{
		Filename:  ref.Filename,
		Title:     ref.Title,
		Year:      ref.Year.String(),
		Author:    ref.Author,
		Publisher: ref.Publisher.String(),
	}
}
