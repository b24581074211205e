package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matsen/docshelf/internal/reference"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// ToBibTeX converts a reference to BibTeX format. The citation key is the
// filename without its extension.
func ToBibTeX(ref reference.Reference) string {
	entryType := determineEntryType(ref)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, citeKey(ref.Filename)))

	if names := reference.SplitAuthors(ref.Author); len(names) > 0 && ref.Author != reference.UnknownAuthor {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", escapeLatex(strings.Join(names, " and "))))
	}

	title := ref.Title
	if title == "" {
		title = "Untitled"
	}
	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(title)))

	if p := ref.Publisher.String(); p != "" {
		b.WriteString(fmt.Sprintf("  publisher = {%s},\n", escapeLatex(p)))
	}

	if y := ref.Year.String(); yearPattern.MatchString(y) {
		b.WriteString(fmt.Sprintf("  year = {%s},\n", y))
	}

	b.WriteString(fmt.Sprintf("  file = {%s},\n", ref.Filename))

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple references to BibTeX format.
func ToBibTeXList(refs []reference.Reference) string {
	var entries []string
	for _, ref := range refs {
		entries = append(entries, ToBibTeX(ref))
	}
	return strings.Join(entries, "\n")
}

// determineEntryType returns book for published volumes and misc otherwise.
func determineEntryType(ref reference.Reference) string {
	if ref.Publisher != "" {
		return "book"
	}
	return "misc"
}

// citeKey strips the extension and any characters BibTeX keys reject.
func citeKey(filename string) string {
	stem := strings.TrimSuffix(filename, ".pdf")
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', ',', '{', '}', '(', ')', '=', '#', '%', '"', '\'', '\\', '~':
			return -1
		}
		return r
	}, stem)
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
