package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/docshelf/internal/config"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"inbox-dir", "inbox-dir"},
		{"inbox_dir", "inbox-dir"},
		{"INBOX_DIR", "inbox-dir"},
		{"Pdf-Reader", "pdf-reader"},
	}
	for _, tt := range tests {
		if got := normalizeKey(tt.input); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestConfigKeys_SetAndGet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{"inbox_dir", "incoming", "incoming", false},
		{"pdf-reader", "zathura", "zathura", false},
		{"pdf-reader", "acrobat", "", true},
		{"max-file-size", "1024", "1024", false},
		{"max-file-size", "big", "", true},
		{"truncate-words", "6", "6", false},
		{"similarity-threshold", "0.85", "0.85", false},
		{"similarity-threshold", "high", "", true},
		{"log-level", "debug", "debug", false},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := config.ForRoot(t.TempDir())
			k, ok := lookupConfigKey(tt.key)
			if !ok {
				t.Fatalf("lookupConfigKey(%q) not found", tt.key)
			}
			err := k.set(cfg, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("set(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := k.get(cfg); got != tt.want {
				t.Errorf("get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookupConfigKey_Unknown(t *testing.T) {
	if _, ok := lookupConfigKey("papers-repo"); ok {
		t.Error("lookupConfigKey(papers-repo) found, want unknown")
	}
}

func TestConfigKeys_JSONNamesMatchConfigFile(t *testing.T) {
	want := map[string]bool{
		"inbox_dir": true, "reference_dir": true, "quarantine_dir": true,
		"report_dir": true, "markdown_dir": true, "references_json": true,
		"references_md": true, "overrides_file": true, "pdf_reader": true,
		"max_file_size": true, "max_filename_length": true, "truncate_words": true,
		"similarity_threshold": true, "log_level": true, "log_format": true,
	}
	if len(configKeys) != len(want) {
		t.Errorf("len(configKeys) = %d, want %d", len(configKeys), len(want))
	}
	for _, k := range configKeys {
		if !want[jsonKey(k.name)] {
			t.Errorf("unexpected config key %q", k.name)
		}
	}
}

func TestLocateDocument(t *testing.T) {
	root := t.TempDir()
	cfg := config.ForRoot(root)
	for _, d := range cfg.WorkDirs() {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	inRef := filepath.Join(cfg.ReferencePath(), "Smith_Deep.pdf")
	inQuarantine := filepath.Join(cfg.QuarantinePath(), "Old_Scan.pdf")
	for _, p := range []string{inRef, inQuarantine} {
		if err := os.WriteFile(p, []byte("%PDF"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		want string
	}{
		{"Smith_Deep.pdf", inRef},
		{"Old_Scan.pdf", inQuarantine},
		{inRef, inRef},
		{"missing.pdf", ""},
	}
	for _, tt := range tests {
		if got := locateDocument(cfg, tt.name); got != tt.want {
			t.Errorf("locateDocument(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestKindNames(t *testing.T) {
	want := "exact-duplicates, similar-pairs, unknown-authors, broken-titles"
	if got := kindNames(); got != want {
		t.Errorf("kindNames() = %q, want %q", got, want)
	}
}
