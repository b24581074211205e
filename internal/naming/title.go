package naming

import (
	"regexp"
	"strings"
	"unicode"
)

// UntitledToken is used when a title is empty or sanitizes to nothing.
const UntitledToken = "Untitled"

// Prepositions holds the lowercase articles, prepositions and conjunctions
// dropped from title tokens.
var Prepositions = map[string]bool{
	"a": true, "an": true, "the": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	"from": true, "by": true, "with": true, "into": true, "onto": true,
	"upon": true, "via": true, "about": true, "over": true, "under": true,
	"between": true, "through": true, "during": true, "without": true,
	"within": true, "among": true, "against": true, "toward": true,
	"towards": true, "per": true, "vs": true, "versus": true, "as": true,
	"and": true, "or": true, "but": true, "nor": true,
}

// DomainAdjectives holds lowercase adjectives that are always kept in titles.
var DomainAdjectives = map[string]bool{
	"deep": true, "machine": true, "neural": true, "statistical": true,
	"bayesian": true, "probabilistic": true, "linear": true, "nonlinear": true,
	"artificial": true, "computational": true, "natural": true,
	"reinforcement": true, "supervised": true, "unsupervised": true,
	"convolutional": true, "recurrent": true, "generative": true,
	"stochastic": true, "numerical": true, "mathematical": true,
	"applied": true, "quantum": true, "digital": true,
}

// titleCharPattern matches characters not allowed in a title token.
var titleCharPattern = regexp.MustCompile(`[^A-Za-z0-9'\-]`)

// SanitizeTitle converts a free-text title into underscore-joined filename
// tokens with stopwords removed. Kept tokens retain their casing.
func SanitizeTitle(title string) string {
	fields := strings.FieldsFunc(title, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '/'
	})

	var words []string
	for _, f := range fields {
		w := strings.Trim(titleCharPattern.ReplaceAllString(f, ""), "'-")
		if w == "" {
			continue
		}
		lower := strings.ToLower(w)
		if Prepositions[lower] && !DomainAdjectives[lower] {
			continue
		}
		words = append(words, w)
	}

	if len(words) == 0 {
		return UntitledToken
	}
	return strings.Join(words, "_")
}
