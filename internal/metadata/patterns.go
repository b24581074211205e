package metadata

import (
	"regexp"
	"strings"
)

// PatternKind names the filename convention a stem matched.
type PatternKind string

const (
	PatternBracketedAuthor PatternKind = "bracketed_author" // [Author]Title
	PatternYearAuthorTitle PatternKind = "year_author_title" // YYYY-Author-Title
	PatternYearBookTitle   PatternKind = "year_book_title"   // YYYY_Book_Title
	PatternArxivID         PatternKind = "arxiv_id"          // 2101.01234 Title
	PatternFallback        PatternKind = "fallback"
)

type matcher struct {
	kind    PatternKind
	re      *regexp.Regexp
	extract func(m []string) Metadata
}

// matchers are tried in order; the first match wins.
var matchers = []matcher{
	{
		kind: PatternBracketedAuthor,
		re:   regexp.MustCompile(`^\[([^\]]+)\](.+)$`),
		extract: func(m []string) Metadata {
			return Metadata{Author: strings.TrimSpace(m[1]), Title: cleanStem(m[2])}
		},
	},
	{
		kind: PatternYearAuthorTitle,
		re:   regexp.MustCompile(`^(\d{4})-([^-]+)-(.+)$`),
		extract: func(m []string) Metadata {
			return Metadata{Year: m[1], Author: cleanStem(m[2]), Title: cleanStem(m[3])}
		},
	},
	{
		kind: PatternYearBookTitle,
		re:   regexp.MustCompile(`^(\d{4})_(?:Book|Article)_(.+)$`),
		extract: func(m []string) Metadata {
			return Metadata{Year: m[1], Title: cleanStem(m[2])}
		},
	},
	{
		kind: PatternArxivID,
		re:   regexp.MustCompile(`^(\d{4})\.\d+(?:v\d+)?\s*(.*)$`),
		extract: func(m []string) Metadata {
			return Metadata{Year: "20" + m[1][:2], Title: cleanStem(m[2])}
		},
	},
}

var fallbackYear = regexp.MustCompile(`\d{4}`)

// FromFilename extracts metadata from a filename stem using the first
// matching convention. The fallback uses the whole stem as title and the
// first four-digit run as year.
func FromFilename(stem string) (Metadata, PatternKind) {
	for _, mt := range matchers {
		if m := mt.re.FindStringSubmatch(stem); m != nil {
			return mt.extract(m), mt.kind
		}
	}
	return Metadata{Title: cleanStem(stem), Year: fallbackYear.FindString(stem)}, PatternFallback
}
