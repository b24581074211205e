package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pdf")
	writeFile(t, path, "hello")

	got, err := Hash(path)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("Hash() = %s, want %s", got, want)
	}
	if len(got) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(got))
	}

	if _, err := Hash(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Hash(missing) expected error")
	}
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "inbox", "a.pdf")
	dst := filepath.Join(dir, "reference", "b.pdf")
	writeFile(t, src, "x")

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if Exists(src) || !Exists(dst) {
		t.Error("Move() did not move the file")
	}
}

func TestMove_SamePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pdf")
	writeFile(t, path, "x")
	if err := Move(path, path); err != nil {
		t.Errorf("Move(same) error = %v, want nil", err)
	}
}

func TestMove_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Move(filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "b.pdf"))
	if !errors.Is(err, ErrSourceMissing) {
		t.Errorf("Move(missing) error = %v, want ErrSourceMissing", err)
	}
}

func TestMove_DestinationExists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"), "a")
	writeFile(t, filepath.Join(dir, "b.pdf"), "b")
	if err := Move(filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")); err == nil {
		t.Error("Move() onto existing file expected error")
	}
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.PDF"), "1")
	writeFile(t, filepath.Join(dir, "a.pdf"), "12")
	writeFile(t, filepath.Join(dir, "notes.txt"), "n")
	writeFile(t, filepath.Join(dir, ".hidden.pdf"), "h")
	os.Mkdir(filepath.Join(dir, "sub.pdf"), 0755)

	pdfs, other, err := ListDir(dir)
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}
	if len(pdfs) != 2 || pdfs[0].Name != "a.pdf" || pdfs[1].Name != "b.PDF" {
		t.Errorf("pdfs = %+v", pdfs)
	}
	if pdfs[0].Size != 2 {
		t.Errorf("pdfs[0].Size = %d, want 2", pdfs[0].Size)
	}
	if len(other) != 1 || other[0].Name != "notes.txt" {
		t.Errorf("other = %+v", other)
	}

	pdfs, other, err = ListDir(filepath.Join(dir, "missing"))
	if err != nil || pdfs != nil || other != nil {
		t.Errorf("ListDir(missing) = %v, %v, %v", pdfs, other, err)
	}
}

func TestWriteReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "out.json")

	in := map[string]string{"title": "Café & Co"}
	if err := WriteJSON(path, in); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{\n  \"title\": \"Café & Co\"\n}\n"; string(data) != want {
		t.Errorf("WriteJSON() wrote %q, want %q", data, want)
	}

	var out map[string]string
	if err := ReadJSON(path, &out); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if out["title"] != "Café & Co" {
		t.Errorf("ReadJSON() title = %q", out["title"])
	}
}

func TestReadJSON_Missing(t *testing.T) {
	var v any
	if err := ReadJSON(filepath.Join(t.TempDir(), "nope.json"), &v); err == nil {
		t.Error("ReadJSON() should fail for a missing file")
	}
}
