package similarity

import (
	"time"

	"github.com/matsen/docshelf/internal/reference"
)

// Summary counts the findings of a duplicate scan.
type Summary struct {
	TotalReferences int     `json:"total_references"`
	ExactGroups     int     `json:"exact_duplicate_groups"`
	SimilarPairs    int     `json:"similar_pairs"`
	SuffixFiles     int     `json:"suffix_files"`
	Threshold       float64 `json:"threshold"`
}

// Report is the duplicate_candidates.json document.
type Report struct {
	Generated       string           `json:"generated"`
	Summary         Summary          `json:"summary"`
	ExactDuplicates []DuplicateGroup `json:"exact_duplicates"`
	SimilarPairs    []SimilarPair    `json:"similar_pairs"`
	SuffixFiles     []SuffixFile     `json:"suffix_files"`
}

// PairsReport is the similar_pairs.json document.
type PairsReport struct {
	Generated string        `json:"generated"`
	Threshold float64       `json:"threshold"`
	Pairs     []SimilarPair `json:"similar_pairs"`
}

// Scan runs all three detection tiers.
func Scan(refs []reference.Reference, threshold float64, now time.Time) Report {
	r := Report{
		Generated:       now.Format(time.RFC3339),
		ExactDuplicates: nonNil(ExactDuplicates(refs)),
		SimilarPairs:    nonNil(SimilarPairs(refs, threshold)),
		SuffixFiles:     nonNil(SuffixFiles(refs)),
	}
	r.Summary = Summary{
		TotalReferences: len(refs),
		ExactGroups:     len(r.ExactDuplicates),
		SimilarPairs:    len(r.SimilarPairs),
		SuffixFiles:     len(r.SuffixFiles),
		Threshold:       threshold,
	}
	return r
}

// ScanPairs runs only the fuzzy tier.
func ScanPairs(refs []reference.Reference, threshold float64, now time.Time) PairsReport {
	return PairsReport{
		Generated: now.Format(time.RFC3339),
		Threshold: threshold,
		Pairs:     nonNil(SimilarPairs(refs, threshold)),
	}
}

// nonNil keeps empty findings encoding as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
