package audit

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/docshelf/internal/export"
	"github.com/matsen/docshelf/internal/reference"
)

func TestTitleReasons(t *testing.T) {
	tests := []struct {
		title string
		want  []string
	}{
		{"The Elements of Statistical Learning", nil},
		{"Deep Learning", []string{"Generic placeholder title"}},
		{"my_scanned_doc", []string{"Contains underscores - likely extraction error"}},
		{"9781234567897_book", []string{"Title is an ISBN code"}},
		{"A VERY LOUD TITLE INDEED", []string{"All CAPS - formatting error"}},
		{"NASA", nil},
		{"slides.PDF", []string{"Contains file extension"}},
		{"Lecture 12", []string{"Very short/broken title"}},
		{"PII: S0893-6080", []string{"PII/DOI code as title"}},
		{"The Vegetarian Cookbook", []string{"Cooking/food content - out of place"}},
		{"Line one\nline two", []string{"Title contains line break"}},
		{"Clinical Trials Handbook", []string{"Medical/clinical topic - possibly off-topic"}},
		{"Machine Learning for Medical Imaging", nil},
		{"Conference Proceedings Document", []string{"Metadata artifact/placeholder"}},
		{"IR_draft", []string{"Contains underscores - likely extraction error", "Very short/broken title"}},
	}

	for _, tt := range tests {
		got := TitleReasons(tt.title)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("TitleReasons(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestBrokenTitles(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "Smith_Elements.pdf", Author: "Smith", Title: "Elements"},
		{Filename: "Unknown_Untitled.pdf", Author: "Unknown", Title: "Untitled", Year: "2001"},
	}

	got := BrokenTitles(refs)
	if len(got) != 1 || got[0].Filename != "Unknown_Untitled.pdf" {
		t.Fatalf("BrokenTitles() = %+v", got)
	}
	if got[0].Year != "2001" {
		t.Errorf("Year = %q, want 2001", got[0].Year)
	}

	data, err := json.Marshal(got[0])
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"suggested_author":null`, `"quarantine":false`, `"publisher":null`, `"reasons":["Generic placeholder title"]`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("review entry JSON %s missing %s", data, key)
		}
	}
}

func TestIsUnknownAuthor(t *testing.T) {
	tests := []struct {
		author string
		want   bool
	}{
		{"unknown", true},
		{"Unknown", true},
		{"UNKNOWN", true},
		{"---", true},
		{"null", true},
		{"", true},
		{"   ", true},
		{"John Smith", false},
		{"Hastie", false},
	}
	for _, tt := range tests {
		if got := IsUnknownAuthor(tt.author); got != tt.want {
			t.Errorf("IsUnknownAuthor(%q) = %v, want %v", tt.author, got, tt.want)
		}
	}
}

func TestUnknownAuthors(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "z.pdf", Author: "---"},
		{Filename: "Smith_A.pdf", Author: "Smith"},
		{Filename: "a.pdf", Author: ""},
		{Filename: "m.pdf", Author: "unknown"},
	}

	got := UnknownAuthors(refs)
	var names []string
	for _, e := range got {
		names = append(names, e.Filename)
	}
	if want := []string{"a.pdf", "m.pdf", "z.pdf"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("UnknownAuthors() filenames = %v, want %v", names, want)
	}
	if got[0].Reasons[0] != "Author field is empty" || got[1].Reasons[0] != `Author is "Unknown"` || got[2].Reasons[0] != `Author is "---"` {
		t.Errorf("reasons = %v, %v, %v", got[0].Reasons, got[1].Reasons, got[2].Reasons)
	}
}

func TestIsSuspectFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Smith_Deep_Learning.pdf", false},
		{"Hastie_et_al_Statistical_Learning.pdf", false},
		{"12345_Document.pdf", true},
		{"19_56_25_Document.pdf", true},
		{"untitled.pdf", true},
		{"Untitled_Document.pdf", true},
		{"abc.pdf", true},
		{"123456789.pdf", true},
		{"ML_Intro.pdf", false},
	}
	for _, tt := range tests {
		if got := IsSuspectFilename(tt.name); got != tt.want {
			t.Errorf("IsSuspectFilename(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestVerify(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "Smith_Deep_Learning.pdf"},
		{Filename: "Gone_Missing.pdf"},
	}
	pdfs := map[string]bool{
		"Smith_Deep_Learning.pdf": true,
		"12345_Document.pdf":      true,
	}

	v := Verify(refs, pdfs)
	if v.PDFCount != 2 || v.RecordCount != 2 {
		t.Errorf("counts = %d pdfs, %d records", v.PDFCount, v.RecordCount)
	}
	if !reflect.DeepEqual(v.FilesNotInBib, []string{"12345_Document.pdf"}) {
		t.Errorf("FilesNotInBib = %v", v.FilesNotInBib)
	}
	if !reflect.DeepEqual(v.EntriesNoFile, []string{"Gone_Missing.pdf"}) {
		t.Errorf("EntriesNoFile = %v", v.EntriesNoFile)
	}
	if !reflect.DeepEqual(v.SuspectFiles, []string{"12345_Document.pdf"}) {
		t.Errorf("SuspectFiles = %v", v.SuspectFiles)
	}
	if v.Discrepancies() != 2 {
		t.Errorf("Discrepancies() = %d, want 2", v.Discrepancies())
	}
}

func TestRenderBadMetadata(t *testing.T) {
	out := RenderBadMetadata([]string{"abc.pdf", "untitled.pdf"})
	if !strings.Contains(out, "**Total suspect files**: 2\n") {
		t.Errorf("missing total:\n%s", out)
	}
	if !strings.Contains(out, "1. `abc.pdf`\n2. `untitled.pdf`\n") {
		t.Errorf("missing numbered list:\n%s", out)
	}

	if empty := RenderBadMetadata(nil); !strings.HasSuffix(empty, "No suspect files found.\n") {
		t.Errorf("empty report = %q", empty)
	}
}

func TestValidateMarkdown(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "Adams_Alpha.pdf", Author: "Adams", Title: "Alpha", Year: "2001"},
		{Filename: "Brown_Beta.pdf", Author: "Brown", Title: "Beta"},
	}

	if v := ValidateMarkdown(export.RenderMarkdown(refs), refs); !v.OK() {
		t.Errorf("ValidateMarkdown() on fresh render = %+v, want OK", v)
	}

	stale := export.RenderMarkdown(refs[:1])
	withExtra := append(refs, reference.Reference{Filename: "Adams_Alpha.pdf", Title: "Dup"})
	v := ValidateMarkdown(stale, withExtra)
	if v.OK() {
		t.Fatal("ValidateMarkdown() = OK, want differences")
	}
	if !reflect.DeepEqual(v.MissingInMarkdown, []string{"Brown_Beta.pdf"}) {
		t.Errorf("MissingInMarkdown = %v", v.MissingInMarkdown)
	}
	if !reflect.DeepEqual(v.DuplicateFilenames, []string{"Adams_Alpha.pdf"}) {
		t.Errorf("DuplicateFilenames = %v", v.DuplicateFilenames)
	}

	v = ValidateMarkdown(export.RenderMarkdown(refs), refs[:1])
	if !reflect.DeepEqual(v.MissingInJSON, []string{"Brown_Beta.pdf"}) {
		t.Errorf("MissingInJSON = %v", v.MissingInJSON)
	}
}
