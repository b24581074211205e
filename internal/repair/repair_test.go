package repair

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/docshelf/internal/files"
	"github.com/matsen/docshelf/internal/naming"
	"github.com/matsen/docshelf/internal/reference"
)

func touch(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestAddHashes(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf", "alpha")

	refs := []reference.Reference{
		{Filename: "a.pdf"},
		{Filename: "b.pdf", FileHash: "existing"},
		{Filename: "missing.pdf"},
	}
	result := AddHashes(refs, dir)

	if result.Updated != 1 || result.AlreadyHashed != 1 {
		t.Errorf("AddHashes() = %+v, want 1 updated and 1 already hashed", result)
	}
	if !reflect.DeepEqual(result.Errors, []string{"File not found: missing.pdf"}) {
		t.Errorf("Errors = %v", result.Errors)
	}

	want, _ := files.Hash(filepath.Join(dir, "a.pdf"))
	if refs[0].FileHash != want {
		t.Errorf("FileHash = %q, want %q", refs[0].FileHash, want)
	}
	if refs[1].FileHash != "existing" {
		t.Errorf("existing hash overwritten: %q", refs[1].FileHash)
	}
}

func TestMismatchedFilenames(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "Smith_Deep_Learning.pdf", Author: "John Smith", Title: "Deep Learning"},
		{Filename: "Hastie_Elements.pdf", Author: "Hastie, Tibshirani and Friedman", Title: "The Elements of Statistical Learning"},
		{Filename: "scan.pdf", Author: "Unknown", Title: "Scan"},
		{Filename: "x.pdf", Author: "Jane Doe", Title: ""},
	}
	gen := &naming.Generator{}

	got := MismatchedFilenames(refs, gen)
	if len(got) != 1 {
		t.Fatalf("MismatchedFilenames() = %+v, want one rename", got)
	}
	r := got[0]
	if r.Index != 1 || r.ExpectedPrefix != "Hastie_et_al" {
		t.Errorf("rename = %+v", r)
	}
	if r.NewFilename != "Hastie_et_al_Elements_Statistical_Learning.pdf" {
		t.Errorf("NewFilename = %q", r.NewFilename)
	}
}

func TestApplyRenames(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Hastie_Elements.pdf", "h")
	touch(t, dir, "Hastie_et_al_Elements_Statistical_Learning.pdf", "taken")

	refs := []reference.Reference{
		{Filename: "Hastie_Elements.pdf", Author: "Hastie, Tibshirani and Friedman"},
		{Filename: "Gone.pdf", Author: "Gone"},
	}
	renames := []Rename{
		{Index: 0, OldFilename: "Hastie_Elements.pdf", NewFilename: "Hastie_et_al_Elements_Statistical_Learning.pdf"},
		{Index: 1, OldFilename: "Gone.pdf", NewFilename: "Gone_Gone.pdf"},
	}

	result := ApplyRenames(refs, renames, dir, naming.NewGenerator(dir))
	if len(result.Renamed) != 1 || len(result.Errors) != 1 {
		t.Fatalf("ApplyRenames() = %+v", result)
	}
	want := "Hastie_et_al_Elements_Statistical_Learning_2.pdf"
	if refs[0].Filename != want {
		t.Errorf("Filename = %q, want %q", refs[0].Filename, want)
	}
	if !files.Exists(filepath.Join(dir, want)) || files.Exists(filepath.Join(dir, "Hastie_Elements.pdf")) {
		t.Error("file not renamed on disk")
	}
	if refs[1].Filename != "Gone.pdf" {
		t.Errorf("record for missing file changed: %q", refs[1].Filename)
	}
}

func TestDuplicateAuthors(t *testing.T) {
	refs := []reference.Reference{
		{Filename: "a.pdf", Author: "Smith, smith and Jones"},
		{Filename: "b.pdf", Author: "Hastie, Tibshirani and Friedman"},
		{Filename: "c.pdf", Author: "Unknown"},
		{Filename: "d.pdf", Author: "Jane Doe and Jane Doe"},
	}

	fixes := DuplicateAuthors(refs)
	if len(fixes) != 2 {
		t.Fatalf("DuplicateAuthors() = %+v, want 2 fixes", fixes)
	}
	if fixes[0].New != "Smith and Jones" {
		t.Errorf("fix[0].New = %q, want %q", fixes[0].New, "Smith and Jones")
	}
	if fixes[1].New != "Jane Doe" {
		t.Errorf("fix[1].New = %q, want %q", fixes[1].New, "Jane Doe")
	}

	ApplyAuthorFixes(refs, fixes)
	if refs[0].Author != "Smith and Jones" || refs[3].Author != "Jane Doe" {
		t.Errorf("ApplyAuthorFixes() left %q, %q", refs[0].Author, refs[3].Author)
	}
	if refs[1].Author != "Hastie, Tibshirani and Friedman" {
		t.Errorf("unrelated author changed: %q", refs[1].Author)
	}
}
