package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxLength is the longest filename the generator produces, in bytes.
	DefaultMaxLength = 150
	// DefaultTruncateWords is how many title words survive truncation.
	DefaultTruncateWords = 10

	pdfExt = ".pdf"
)

// Generator composes canonical filenames and resolves collisions.
type Generator struct {
	MaxLength     int
	TruncateWords int
	// Exists reports whether a filename is already taken on disk.
	Exists func(name string) bool
}

// NewGenerator returns a generator that probes dir for on-disk collisions.
func NewGenerator(dir string) *Generator {
	return &Generator{
		MaxLength:     DefaultMaxLength,
		TruncateWords: DefaultTruncateWords,
		Exists:        DirProbe(dir),
	}
}

// DirProbe returns an existence check for regular files and directories in dir.
// An empty dir never reports a collision.
func DirProbe(dir string) func(string) bool {
	return func(name string) bool {
		if dir == "" {
			return false
		}
		_, err := os.Stat(filepath.Join(dir, name))
		return err == nil
	}
}

// Generate returns a collision-free canonical filename for the given author
// and title, together with the parsed author names. processed holds names
// already allocated during the current run.
func (g *Generator) Generate(author, title string, processed map[string]bool) (string, []string) {
	token, names := ParseAuthor(author)
	name := g.Compose(token, SanitizeTitle(title))
	return g.Resolve(name, processed), names
}

// Compose joins an author token and a title token into "{author}_{title}.pdf",
// truncating the title to TruncateWords words when the result is too long.
// The returned name never exceeds MaxLength bytes.
func (g *Generator) Compose(authorToken, titleToken string) string {
	max := g.maxLength()
	name := authorToken + "_" + titleToken + pdfExt
	if len(name) <= max {
		return name
	}

	words := strings.Split(titleToken, "_")
	if n := g.truncateWords(); len(words) > n {
		words = words[:n]
	}
	for {
		name = authorToken + "_" + strings.Join(words, "_") + pdfExt
		if len(name) <= max || len(words) == 1 {
			break
		}
		words = words[:len(words)-1]
	}
	if len(name) <= max {
		return name
	}
	return fitStem(strings.TrimSuffix(name, pdfExt), max-len(pdfExt)) + pdfExt
}

// Resolve appends _2, _3, ... before the extension until the name is absent
// from both processed and the on-disk probe.
func (g *Generator) Resolve(name string, processed map[string]bool) string {
	if !g.taken(name, processed) {
		return name
	}

	stem := strings.TrimSuffix(name, pdfExt)
	ext := name[len(stem):]
	for i := 2; ; i++ {
		suffix := fmt.Sprintf("_%d", i)
		candidate := fitStem(stem, g.maxLength()-len(ext)-len(suffix)) + suffix + ext
		if !g.taken(candidate, processed) {
			return candidate
		}
	}
}

func (g *Generator) taken(name string, processed map[string]bool) bool {
	if processed[name] {
		return true
	}
	return g.Exists != nil && g.Exists(name)
}

func (g *Generator) maxLength() int {
	if g.MaxLength > 0 {
		return g.MaxLength
	}
	return DefaultMaxLength
}

func (g *Generator) truncateWords() int {
	if g.TruncateWords > 0 {
		return g.TruncateWords
	}
	return DefaultTruncateWords
}

// fitStem cuts s to at most n bytes on a rune boundary and trims dangling separators.
func fitStem(s string, n int) string {
	if n < 1 {
		n = 1
	}
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	trimmed := strings.TrimRight(s[:cut], "_-")
	if trimmed == "" {
		return s[:cut]
	}
	return trimmed
}
