package naming

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	g := NewGenerator(t.TempDir())

	name, names := g.Generate("Zhang, Jiang, Tong", "Sentiment Classification for Chinese Microblog", map[string]bool{})
	if name != "Zhang_et_al_Sentiment_Classification_Chinese_Microblog.pdf" {
		t.Errorf("Generate() name = %q", name)
	}
	if strings.Join(names, ",") != "Zhang,Jiang,Tong" {
		t.Errorf("Generate() names = %v", names)
	}

	name, _ = g.Generate("John Smith", "Deep Learning", nil)
	if name != "Smith_Deep_Learning.pdf" {
		t.Errorf("Generate() name = %q, want %q", name, "Smith_Deep_Learning.pdf")
	}
}

func TestGenerate_ProcessedCollisions(t *testing.T) {
	g := NewGenerator(t.TempDir())

	processed := map[string]bool{"Smith_Deep_Learning.pdf": true}
	if name, _ := g.Generate("John Smith", "Deep Learning", processed); name != "Smith_Deep_Learning_2.pdf" {
		t.Errorf("one collision: got %q, want Smith_Deep_Learning_2.pdf", name)
	}

	processed["Smith_Deep_Learning_2.pdf"] = true
	processed["Smith_Deep_Learning_3.pdf"] = true
	if name, _ := g.Generate("John Smith", "Deep Learning", processed); name != "Smith_Deep_Learning_4.pdf" {
		t.Errorf("three collisions: got %q, want Smith_Deep_Learning_4.pdf", name)
	}
}

func TestGenerate_DirectoryCollisions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Smith_Deep_Learning.pdf"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Smith_Deep_Learning_3.pdf"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	g := NewGenerator(dir)

	// _2 clears the directory but not processed; _3 clears processed but not the directory.
	processed := map[string]bool{"Smith_Deep_Learning_2.pdf": true}
	if name, _ := g.Generate("John Smith", "Deep Learning", processed); name != "Smith_Deep_Learning_4.pdf" {
		t.Errorf("mixed collisions: got %q, want Smith_Deep_Learning_4.pdf", name)
	}
}

func TestGenerate_LengthLimit(t *testing.T) {
	g := NewGenerator(t.TempDir())

	longTitle := strings.Repeat("Word ", 50)
	name, _ := g.Generate("John Smith", longTitle, nil)
	if len(name) > 150 {
		t.Errorf("len(name) = %d, want <= 150", len(name))
	}
	if name != "Smith_Word_Word_Word_Word_Word_Word_Word_Word_Word_Word.pdf" {
		t.Errorf("truncated name = %q", name)
	}

	hugeWords := strings.Repeat("Supercalifragilisticexpialidocious ", 12)
	name, _ = g.Generate(strings.Repeat("Longname", 10), hugeWords, nil)
	if len(name) > 150 {
		t.Errorf("len(name) = %d, want <= 150", len(name))
	}
	if !strings.HasSuffix(name, ".pdf") {
		t.Errorf("name %q lost its extension", name)
	}
}

func TestResolve_SuffixStaysWithinLimit(t *testing.T) {
	g := &Generator{MaxLength: 20}
	name := "Abcdefghijklmno.pdf" // 19 bytes
	got := g.Resolve(name, map[string]bool{name: true})
	if len(got) > 20 {
		t.Errorf("Resolve() = %q (%d bytes), want <= 20", got, len(got))
	}
	if !strings.HasSuffix(got, "_2.pdf") {
		t.Errorf("Resolve() = %q, want _2 suffix", got)
	}
}

func TestCompose_ShortNameUnchanged(t *testing.T) {
	g := NewGenerator("")
	if got := g.Compose("Smith", "Untitled"); got != "Smith_Untitled.pdf" {
		t.Errorf("Compose() = %q", got)
	}
}
