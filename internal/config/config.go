// Package config handles repository and global configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	ShelfDir   = ".shelf"
	ConfigFile = "config.yaml"
	CacheDir   = "cache"
	DBFile     = "index.db"

	// EnvPrefix prefixes environment overrides, e.g. SHELF_INBOX_DIR.
	EnvPrefix = "SHELF"
)

// LogConfig selects logger level and format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // console, json
}

// Config is the repository configuration stored in .shelf/config.yaml.
// Relative paths resolve against the repository root.
type Config struct {
	InboxDir       string `mapstructure:"inbox_dir" yaml:"inbox_dir"`
	ReferenceDir   string `mapstructure:"reference_dir" yaml:"reference_dir"`
	QuarantineDir  string `mapstructure:"quarantine_dir" yaml:"quarantine_dir"`
	ReportDir      string `mapstructure:"report_dir" yaml:"report_dir"`
	MarkdownDir    string `mapstructure:"markdown_dir" yaml:"markdown_dir"`
	ReferencesJSON string `mapstructure:"references_json" yaml:"references_json"`
	ReferencesMD   string `mapstructure:"references_md" yaml:"references_md"`
	OverridesFile  string `mapstructure:"overrides_file" yaml:"overrides_file,omitempty"`
	PDFReader      string `mapstructure:"pdf_reader" yaml:"pdf_reader,omitempty"`

	MaxFileSize         int64   `mapstructure:"max_file_size" yaml:"max_file_size"`
	MaxFilenameLength   int     `mapstructure:"max_filename_length" yaml:"max_filename_length"`
	TruncateWords       int     `mapstructure:"truncate_words" yaml:"truncate_words"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	root string
}

// Defaults returns the configuration written by init.
func Defaults() Config {
	return Config{
		InboxDir:            "todo",
		ReferenceDir:        "reference",
		QuarantineDir:       "quarantine",
		ReportDir:           "json_output",
		MarkdownDir:         "markdown",
		ReferencesJSON:      "references.json",
		ReferencesMD:        "references.md",
		MaxFileSize:         50 * 1024 * 1024,
		MaxFilenameLength:   150,
		TruncateWords:       10,
		SimilarityThreshold: 0.70,
		Log:                 LogConfig{Level: "info", Format: "console"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("inbox_dir", d.InboxDir)
	v.SetDefault("reference_dir", d.ReferenceDir)
	v.SetDefault("quarantine_dir", d.QuarantineDir)
	v.SetDefault("report_dir", d.ReportDir)
	v.SetDefault("markdown_dir", d.MarkdownDir)
	v.SetDefault("references_json", d.ReferencesJSON)
	v.SetDefault("references_md", d.ReferencesMD)
	v.SetDefault("overrides_file", "")
	v.SetDefault("pdf_reader", "")
	v.SetDefault("max_file_size", d.MaxFileSize)
	v.SetDefault("max_filename_length", d.MaxFilenameLength)
	v.SetDefault("truncate_words", d.TruncateWords)
	v.SetDefault("similarity_threshold", d.SimilarityThreshold)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// ShelfPath returns the path to the .shelf directory from a root path.
func ShelfPath(root string) string {
	return filepath.Join(root, ShelfDir)
}

// ConfigPath returns the path to config.yaml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ShelfDir, ConfigFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, ShelfDir, CacheDir)
}

// DBPath returns the path to the query index from a root path.
func DBPath(root string) string {
	return filepath.Join(root, ShelfDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a .shelf directory.
func IsRepository(root string) bool {
	info, err := os.Stat(ShelfPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a repository.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a shelf repository (no %s directory found)", ShelfDir)
		}
		abs = parent
	}
}

// Load reads the repository configuration, applying defaults and SHELF_*
// environment overrides. A missing config file yields the defaults.
func Load(root string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(ConfigPath(root))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.root = root

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// ForRoot returns the defaults bound to root, for callers that need paths
// before a config file exists.
func ForRoot(root string) *Config {
	cfg := Defaults()
	cfg.root = root
	return &cfg
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(ShelfPath(root), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", ShelfDir, err)
	}
	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks numeric limits and the log settings.
func (c *Config) Validate() error {
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0, 1], got %v", c.SimilarityThreshold)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	}
	if c.MaxFilenameLength < 16 {
		return fmt.Errorf("max_filename_length must be at least 16, got %d", c.MaxFilenameLength)
	}
	if c.TruncateWords < 1 {
		return fmt.Errorf("truncate_words must be positive, got %d", c.TruncateWords)
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "pretty", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	return nil
}

// Root returns the repository root the config was loaded from.
func (c *Config) Root() string {
	return c.root
}

func (c *Config) resolve(p string) string {
	p = ExpandPath(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.root, p)
}

// InboxPath returns the directory of unprocessed documents.
func (c *Config) InboxPath() string { return c.resolve(c.InboxDir) }

// ReferencePath returns the directory of accepted documents.
func (c *Config) ReferencePath() string { return c.resolve(c.ReferenceDir) }

// QuarantinePath returns the directory of rejected documents.
func (c *Config) QuarantinePath() string { return c.resolve(c.QuarantineDir) }

// ReportPath returns the directory for JSON review reports.
func (c *Config) ReportPath() string { return c.resolve(c.ReportDir) }

// MarkdownPath returns the directory for Markdown logs.
func (c *Config) MarkdownPath() string { return c.resolve(c.MarkdownDir) }

// ReferencesJSONPath returns the bibliography file.
func (c *Config) ReferencesJSONPath() string { return c.resolve(c.ReferencesJSON) }

// ReferencesMDPath returns the rendered Markdown bibliography.
func (c *Config) ReferencesMDPath() string {
	if filepath.IsAbs(ExpandPath(c.ReferencesMD)) || strings.ContainsRune(c.ReferencesMD, filepath.Separator) {
		return c.resolve(c.ReferencesMD)
	}
	return filepath.Join(c.MarkdownPath(), c.ReferencesMD)
}

// OverridesPath returns the override table, or "" when none is configured.
func (c *Config) OverridesPath() string { return c.resolve(c.OverridesFile) }

// WorkDirs lists the directories init creates.
func (c *Config) WorkDirs() []string {
	return []string{c.InboxPath(), c.ReferencePath(), c.QuarantinePath(), c.ReportPath(), c.MarkdownPath(), CachePath(c.root)}
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
