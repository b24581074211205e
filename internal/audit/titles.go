// Package audit inspects the bibliography and reference directory for
// entries that need manual attention.
package audit

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/matsen/docshelf/internal/reference"
)

// ReviewEntry is one record flagged for review. The annotation fields start
// empty and are filled in by hand before the report is applied.
type ReviewEntry struct {
	Author string `json:"author"`
	Title  string `json:"title"`
	reference.Annotation
	Year      reference.OptString `json:"year"`
	Publisher reference.OptString `json:"publisher"`
	Filename  string              `json:"filename"`
	Reasons   []string            `json:"reasons"`
}

func reviewEntry(ref reference.Reference, reasons []string) ReviewEntry {
	return ReviewEntry{
		Author:    ref.Author,
		Title:     ref.Title,
		Year:      ref.Year,
		Publisher: ref.Publisher,
		Filename:  ref.Filename,
		Reasons:   reasons,
	}
}

type titleCheck struct {
	reason string
	match  func(title string) bool
}

func anyMatch(patterns ...string) func(string) bool {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return func(s string) bool {
		for _, re := range res {
			if re.MatchString(s) {
				return true
			}
		}
		return false
	}
}

var (
	isbnTitle      = regexp.MustCompile(`^978\d{10}`)
	fileExtension  = regexp.MustCompile(`\.(pdf|dvi|tex|indd)$`)
	medicalTopic   = regexp.MustCompile(`(?i)clinical|coronary|disease diagnosis|medical`)
	medicalMLTopic = regexp.MustCompile(`(?i)machine learning|neural network|classification`)
)

// titleChecks run independently; every match adds its reason.
var titleChecks = []titleCheck{
	{"Contains underscores - likely extraction error", func(t string) bool {
		return strings.Contains(t, "_") && !strings.HasPrefix(t, "9781")
	}},
	{"Generic placeholder title", anyMatch(
		`^My title$`, `^Untitled$`, `^untitled$`, `^Data Driven$`, `^Deep Learning$`, `^Machine Learning$`,
	)},
	{"Title is an ISBN code", isbnTitle.MatchString},
	{"All CAPS - formatting error", func(t string) bool {
		return isAllCaps(t) && len(t) > 15 && strings.Contains(t, " ")
	}},
	{"Contains file extension", func(t string) bool {
		return fileExtension.MatchString(strings.ToLower(t))
	}},
	{"Very short/broken title", anyMatch(
		`^IR_draft$`, `^SVMs$`, `^Dropout$`, `^backprop$`, `^Lecture \d+$`, `^nipstut\d+\.pdf$`,
	)},
	{"PII/DOI code as title", anyMatch(`^(PII:|DOI:)`)},
	{"Cooking/food content - out of place", anyMatch(`(?i)(cookbook|recipe|hero veg|celebration.*hero)`)},
	{"Roman archaeology - completely off-topic", anyMatch(`(?i)roman sacrifice`)},
	{"Music/sound topic - likely off-topic", anyMatch(`(?i)sonic warfare|music science`)},
	{"Metadata artifact/placeholder", anyMatch(
		`(?i)CITY UNIVERSITY$`, `(?i)Combined DVI Document`, `(?i)CIA Athens Document`,
		`(?i)Eriksson anomaly_$`, `(?i)The-Briefing-\d+-Print`,
		`(?i)Conference Proceedings Document$`, `(?i)Voice User Interface Document$`,
	)},
	{"Title contains line break", func(t string) bool { return strings.Contains(t, "\n") }},
	{"Medical/clinical topic - possibly off-topic", func(t string) bool {
		return medicalTopic.MatchString(t) && !medicalMLTopic.MatchString(t)
	}},
}

// TitleReasons returns every reason the title looks broken or out of place.
func TitleReasons(title string) []string {
	var reasons []string
	for _, c := range titleChecks {
		if c.match(title) {
			reasons = append(reasons, c.reason)
		}
	}
	return reasons
}

// BrokenTitles returns a review entry for every record with a suspect title,
// in bibliography order.
func BrokenTitles(refs []reference.Reference) []ReviewEntry {
	entries := []ReviewEntry{}
	for _, ref := range refs {
		if reasons := TitleReasons(ref.Title); len(reasons) > 0 {
			entries = append(entries, reviewEntry(ref, reasons))
		}
	}
	return entries
}

// isAllCaps reports whether s has at least one cased letter and no lowercase ones.
func isAllCaps(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
