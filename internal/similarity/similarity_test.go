package similarity

import (
	"math"
	"testing"
	"time"

	"github.com/matsen/docshelf/internal/reference"
)

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		a, b    string
		min     float64
		max     float64
		comment string
	}{
		{"Deep Learning", "deep learning", 1, 1, "case-insensitive identity"},
		{"", "Deep Learning", 0, 0, "empty side"},
		{"Deep Learning", "", 0, 0, "empty side"},
		{"Introduction to Machine Learning", "Introduction to Machine Learning Workbook", 0.87, 0.88, "trailing word"},
		{"Introduction to Machine Learning", "Introduction to Machine Learning 2nd Edition", 0.99, 0.99, "edition suffix"},
		{"Deep Learning", "Deep Learning 2nd Edition", 0.99, 0.99, "edition marker only"},
		{"Pattern Recognition", "Pattern Recognition, Third ed.", 0.99, 0.99, "spelled edition marker"},
		{"Deep Learning 2nd Edition", "Deep Learning 3rd Edition", 0.99, 0.99, "two edition markers"},
		{"Deep Learning", "Cooking Recipes", 0, 0.3, "unrelated"},
		{"Deep Learning", "Machine Learning", 0.68, 0.70, "shared word"},
	}

	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			got := TitleSimilarity(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("TitleSimilarity(%q, %q) = %.3f, want in [%.2f, %.2f]", tt.a, tt.b, got, tt.min, tt.max)
			}
			if back := TitleSimilarity(tt.b, tt.a); math.Abs(back-got) > 1e-9 {
				t.Errorf("TitleSimilarity not symmetric: %.3f vs %.3f", got, back)
			}
		})
	}
}

func TestNormalizeAuthor(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  John Smith ", "john smith"},
		{"SMITH", "smith"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAuthor(tt.input); got != tt.want {
			t.Errorf("NormalizeAuthor(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExactDuplicates(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "a.pdf", FileHash: "h1"},
		{Filename: "b.pdf", FileHash: "h2"},
		{Filename: "c.pdf", FileHash: "h1"},
		{Filename: "d.pdf"},
		{Filename: "e.pdf"},
		{Filename: "f.pdf", FileHash: "h1"},
	}

	groups := ExactDuplicates(refs)
	if len(groups) != 1 {
		t.Fatalf("ExactDuplicates() returned %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.FileHash != "h1" || g.Count != 3 {
		t.Errorf("group = %+v", g)
	}
	names := []string{g.Files[0].Filename, g.Files[1].Filename, g.Files[2].Filename}
	if names[0] != "a.pdf" || names[1] != "c.pdf" || names[2] != "f.pdf" {
		t.Errorf("group members = %v", names)
	}
}

func TestSimilarPairs(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "1.pdf", Author: "John Smith", Title: "Introduction to Machine Learning"},
		{Filename: "2.pdf", Author: " john smith", Title: "Introduction to Machine Learning 2nd Edition"},
		{Filename: "3.pdf", Author: "Jane Doe", Title: "Introduction to Machine Learning"},
		{Filename: "4.pdf", Author: "John Smith", Title: "Cooking Recipes"},
		{Filename: "5.pdf", Author: "", Title: "Introduction to Machine Learning"},
		{Filename: "6.pdf", Author: "", Title: "Introduction to Machine Learning"},
	}

	pairs := SimilarPairs(refs, DefaultThreshold)
	if len(pairs) != 1 {
		t.Fatalf("SimilarPairs() returned %d pairs, want 1: %+v", len(pairs), pairs)
	}
	p := pairs[0]
	if p.File1.Filename != "1.pdf" || p.File2.Filename != "2.pdf" {
		t.Errorf("pair = %s, %s", p.File1.Filename, p.File2.Filename)
	}
	if p.Similarity < 0.7 {
		t.Errorf("Similarity = %.3f, want >= 0.7", p.Similarity)
	}
}

func TestSimilarPairs_DifferentAuthorsNeverPair(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "1.pdf", Author: "Smith", Title: "Deep Learning"},
		{Filename: "2.pdf", Author: "Jones", Title: "Deep Learning"},
	}
	if pairs := SimilarPairs(refs, 0.0); len(pairs) != 0 {
		t.Errorf("SimilarPairs() paired different authors: %+v", pairs)
	}
}

func TestSuffixFiles(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "Smith_Deep_Learning_10.pdf"},
		{Filename: "Smith_Deep_Learning_2.pdf"},
		{Filename: "Adams_Title_3.pdf"},
		{Filename: "Smith_Deep_Learning.pdf"},
	}

	got := SuffixFiles(refs)
	want := []string{"Adams_Title_3.pdf", "Smith_Deep_Learning_2.pdf", "Smith_Deep_Learning_10.pdf"}
	if len(got) != len(want) {
		t.Fatalf("SuffixFiles() returned %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Filename != want[i] {
			t.Errorf("SuffixFiles()[%d] = %s, want %s", i, got[i].Filename, want[i])
		}
	}
	if got[2].Base != "Smith_Deep_Learning" || got[2].Suffix != 10 {
		t.Errorf("SuffixFiles()[2] = %+v", got[2])
	}
}

func TestScan_EmptyListsEncodeAsArrays(t *testing.T) {
	r := Scan(nil, DefaultThreshold, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if r.ExactDuplicates == nil || r.SimilarPairs == nil || r.SuffixFiles == nil {
		t.Error("Scan() left nil slices")
	}
	if r.Generated != "2026-01-02T03:04:05Z" {
		t.Errorf("Generated = %q", r.Generated)
	}
}
