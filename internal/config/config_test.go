package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathFunctions(t *testing.T) {
	root := "/test/repo"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"ShelfPath", ShelfPath, "/test/repo/.shelf"},
		{"ConfigPath", ConfigPath, "/test/repo/.shelf/config.yaml"},
		{"CachePath", CachePath, "/test/repo/.shelf/cache"},
		{"DBPath", DBPath, "/test/repo/.shelf/cache/index.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(root)
			if got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, root, got, tt.want)
			}
		})
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := ForRoot("/lib")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"InboxPath", cfg.InboxPath(), "/lib/todo"},
		{"ReferencePath", cfg.ReferencePath(), "/lib/reference"},
		{"QuarantinePath", cfg.QuarantinePath(), "/lib/quarantine"},
		{"ReportPath", cfg.ReportPath(), "/lib/json_output"},
		{"MarkdownPath", cfg.MarkdownPath(), "/lib/markdown"},
		{"ReferencesJSONPath", cfg.ReferencesJSONPath(), "/lib/references.json"},
		{"ReferencesMDPath", cfg.ReferencesMDPath(), "/lib/markdown/references.md"},
		{"OverridesPath", cfg.OverridesPath(), ""},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}

	cfg.ReferenceDir = "/elsewhere/pdfs"
	if got := cfg.ReferencePath(); got != "/elsewhere/pdfs" {
		t.Errorf("ReferencePath() = %q, want absolute path kept", got)
	}
}

func TestIsRepository(t *testing.T) {
	tmpDir := t.TempDir()

	if IsRepository(tmpDir) {
		t.Error("IsRepository() = true for non-repo directory")
	}

	if err := os.Mkdir(filepath.Join(tmpDir, ShelfDir), 0755); err != nil {
		t.Fatalf("Failed to create .shelf: %v", err)
	}

	if !IsRepository(tmpDir) {
		t.Error("IsRepository() = false for repo directory")
	}
}

func TestIsRepository_FileNotDir(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, ShelfDir), []byte("not a dir"), 0644); err != nil {
		t.Fatalf("Failed to create .shelf file: %v", err)
	}

	if IsRepository(tmpDir) {
		t.Error("IsRepository() = true when .shelf is a file")
	}
}

func TestFindRepository(t *testing.T) {
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, "repo")
	nestedDir := filepath.Join(repoDir, "reference", "sub")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}
	if err := os.Mkdir(filepath.Join(repoDir, ShelfDir), 0755); err != nil {
		t.Fatalf("Failed to create .shelf: %v", err)
	}

	for _, start := range []string{nestedDir, repoDir} {
		found, err := FindRepository(start)
		if err != nil {
			t.Fatalf("FindRepository(%q) error = %v", start, err)
		}
		if found != repoDir {
			t.Errorf("FindRepository(%q) = %q, want %q", start, found, repoDir)
		}
	}
}

func TestFindRepository_NotFound(t *testing.T) {
	if _, err := FindRepository(t.TempDir()); err == nil {
		t.Error("FindRepository() should return error when no repo found")
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Defaults()
	cfg.InboxDir = "incoming"
	cfg.SimilarityThreshold = 0.85
	cfg.PDFReader = "skim"
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.InboxDir != "incoming" {
		t.Errorf("InboxDir = %q, want incoming", loaded.InboxDir)
	}
	if loaded.SimilarityThreshold != 0.85 {
		t.Errorf("SimilarityThreshold = %v, want 0.85", loaded.SimilarityThreshold)
	}
	if loaded.PDFReader != "skim" {
		t.Errorf("PDFReader = %q, want skim", loaded.PDFReader)
	}
	if loaded.Root() != tmpDir {
		t.Errorf("Root() = %q, want %q", loaded.Root(), tmpDir)
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Defaults()
	if cfg.ReferenceDir != want.ReferenceDir || cfg.MaxFileSize != want.MaxFileSize || cfg.TruncateWords != want.TruncateWords {
		t.Errorf("Load() without file = %+v, want defaults", cfg)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("SHELF_INBOX_DIR", "drop")
	t.Setenv("SHELF_LOG_LEVEL", "debug")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.InboxDir != "drop" {
		t.Errorf("InboxDir = %q, want drop", cfg.InboxDir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(ShelfPath(tmpDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(tmpDir), []byte("inbox_dir: [unclosed\n"), 0644); err != nil {
		t.Fatalf("Failed to write invalid config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() should return error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"threshold zero", func(c *Config) { c.SimilarityThreshold = 0 }, true},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }, true},
		{"threshold one", func(c *Config) { c.SimilarityThreshold = 1 }, false},
		{"file size", func(c *Config) { c.MaxFileSize = 0 }, true},
		{"filename length", func(c *Config) { c.MaxFilenameLength = 8 }, true},
		{"truncate words", func(c *Config) { c.TruncateWords = 0 }, true},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"json format", func(c *Config) { c.Log.Format = "json" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
		{"~/docs", filepath.Join(home, "docs")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
