package export

import (
	"strings"
	"testing"

	"github.com/matsen/docshelf/internal/reference"
)

func TestToBibTeX_Book(t *testing.T) {
	ref := reference.Reference{
		Filename:  "Hastie_et_al_Elements_Statistical_Learning.pdf",
		Author:    "Hastie, Tibshirani and Friedman",
		Title:     "The Elements of Statistical Learning",
		Year:      "2009",
		Publisher: "Springer",
	}

	got := ToBibTeX(ref)

	if !strings.HasPrefix(got, "@book{Hastie_et_al_Elements_Statistical_Learning,") {
		t.Errorf("ToBibTeX() should start with @book key, got:\n%s", got)
	}
	if !strings.Contains(got, `author = {Hastie and Tibshirani and Friedman}`) {
		t.Errorf("ToBibTeX() should contain authors, got:\n%s", got)
	}
	if !strings.Contains(got, `publisher = {Springer}`) {
		t.Errorf("ToBibTeX() should contain publisher, got:\n%s", got)
	}
	if !strings.Contains(got, `year = {2009}`) {
		t.Errorf("ToBibTeX() should contain year, got:\n%s", got)
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("ToBibTeX() should end with closing brace, got:\n%s", got)
	}
}

func TestToBibTeX_MiscWithoutYear(t *testing.T) {
	ref := reference.Reference{
		Filename: "Unknown_R&D_Notes.pdf",
		Author:   "Unknown",
		Title:    "R&D Notes",
		Year:     "n.d.",
	}

	got := ToBibTeX(ref)

	if !strings.HasPrefix(got, "@misc{Unknown_R&D_Notes,") {
		t.Errorf("ToBibTeX() key line wrong, got:\n%s", got)
	}
	if strings.Contains(got, "author =") {
		t.Errorf("ToBibTeX() should omit unknown author, got:\n%s", got)
	}
	if strings.Contains(got, "year =") {
		t.Errorf("ToBibTeX() should omit non-numeric year, got:\n%s", got)
	}
	if !strings.Contains(got, `title = {R\&D Notes}`) {
		t.Errorf("ToBibTeX() should escape title, got:\n%s", got)
	}
}

func TestEscapeLatex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"50% off", `50\% off`},
		{"a_b", `a\_b`},
		{"$x$", `\$x\$`},
	}
	for _, tt := range tests {
		if got := escapeLatex(tt.input); got != tt.want {
			t.Errorf("escapeLatex(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToBibTeXList(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "A.pdf", Title: "A"},
		{Filename: "B.pdf", Title: "B"},
	}
	got := ToBibTeXList(refs)
	if strings.Count(got, "@misc{") != 2 {
		t.Errorf("ToBibTeXList() = %s", got)
	}
}
