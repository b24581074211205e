// Package naming derives canonical, filesystem-safe filenames from noisy
// author and title metadata.
package naming

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/matsen/docshelf/internal/reference"
)

// etAlPattern matches "et al", "et al.", "et. al" and "Et Al" anywhere in a string.
var etAlPattern = regexp.MustCompile(`(?i)\bet\.?\s*al\b\.?`)

// ParseAuthor turns a free-text author field into a filename token and an
// ordered list of author names.
//
// One author keeps the original string as its only name. Two authors become
// "A_B" with surname names. Three or more authors, or two with a trailing
// "et al", become "First_et_al"; the count is taken before surnames are
// deduplicated case-insensitively for the returned names.
func ParseAuthor(raw string) (token string, names []string) {
	s := strings.TrimSpace(raw)
	if s == "" || s == reference.UnknownAuthor {
		return reference.UnknownAuthor, []string{reference.UnknownAuthor}
	}

	etAl := etAlPattern.MatchString(s)
	rest := s
	if etAl {
		rest = trimJoiners(etAlPattern.ReplaceAllString(s, ""))
	}

	parts := splitNames(rest)
	surnames := dedupeFold(surnamesOf(parts))
	if len(surnames) == 0 {
		return reference.UnknownAuthor, []string{reference.UnknownAuthor}
	}

	first := filenameSafe(surnames[0])
	switch {
	case len(parts) == 1 && etAl:
		return first + "_et_al", []string{s}
	case len(parts) == 1:
		return first, []string{parts[0]}
	case etAl, len(parts) >= 3:
		return first + "_et_al", surnames
	case len(surnames) == 2:
		return first + "_" + filenameSafe(surnames[1]), surnames
	default:
		// Both names shared one surname.
		return first, surnames
	}
}

// splitNames splits on " and " and then on commas, so "A, B, and C" yields
// exactly A, B and C.
func splitNames(s string) []string {
	var parts []string
	for _, chunk := range strings.Split(s, " and ") {
		for _, p := range strings.Split(chunk, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
	}
	return parts
}

func surnamesOf(parts []string) []string {
	var out []string
	for _, p := range parts {
		if sn := Surname(p); sn != "" {
			out = append(out, sn)
		}
	}
	return out
}

// Surname returns the final whitespace-delimited token of a name. Trailing
// parenthesized qualifiers such as "(eds)" are dropped and enclosing
// parentheses stripped; apostrophes and hyphens are preserved.
func Surname(name string) string {
	fields := strings.Fields(name)
	for len(fields) > 1 && isParenthetical(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	if len(fields) == 0 {
		return ""
	}
	last := strings.Trim(fields[len(fields)-1], "()")
	return strings.TrimRight(last, ".,;:")
}

func isParenthetical(tok string) bool {
	return strings.HasPrefix(tok, "(") && strings.HasSuffix(tok, ")")
}

// dedupeFold removes case-insensitive repeats, keeping first occurrences.
func dedupeFold(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// trimJoiners removes separators left dangling after stripping "et al".
func trimJoiners(s string) string {
	for {
		t := strings.TrimRight(strings.TrimSpace(s), ",;&")
		t = strings.TrimSuffix(t, " and")
		if t == s {
			return t
		}
		s = t
	}
}

// filenameSafe keeps letters, digits, apostrophes, hyphens and underscores.
func filenameSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-' || r == '_' {
			return r
		}
		return -1
	}, s)
}
