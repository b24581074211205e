package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matsen/docshelf/internal/config"
	"github.com/matsen/docshelf/internal/pdf"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  shelf config                          # Show all config
  shelf config inbox-dir                # Get specific value
  shelf config inbox-dir ~/Downloads    # Set value
  shelf config pdf-reader skim          # Set PDF reader

Keys:
  inbox-dir, reference-dir, quarantine-dir, report-dir, markdown-dir
  references-json, references-md, overrides-file
  pdf-reader            (system, skim, preview, zathura, evince, okular)
  max-file-size         bytes
  max-filename-length   bytes, including .pdf
  truncate-words        title words kept in generated names
  similarity-threshold  fuzzy title match cutoff in (0, 1]
  log-level, log-format

Environment variables SHELF_<KEY> (e.g. SHELF_INBOX_DIR) override the file.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// configKey binds a CLI key to a config field.
type configKey struct {
	name string
	get  func(*config.Config) string
	set  func(*config.Config, string) error
}

func stringKey(name string, field func(*config.Config) *string) configKey {
	return configKey{
		name: name,
		get:  func(c *config.Config) string { return *field(c) },
		set: func(c *config.Config, v string) error {
			*field(c) = v
			return nil
		},
	}
}

func intKey(name string, field func(*config.Config) *int) configKey {
	return configKey{
		name: name,
		get:  func(c *config.Config) string { return strconv.Itoa(*field(c)) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s must be an integer: %q", name, v)
			}
			*field(c) = n
			return nil
		},
	}
}

var configKeys = []configKey{
	stringKey("inbox-dir", func(c *config.Config) *string { return &c.InboxDir }),
	stringKey("reference-dir", func(c *config.Config) *string { return &c.ReferenceDir }),
	stringKey("quarantine-dir", func(c *config.Config) *string { return &c.QuarantineDir }),
	stringKey("report-dir", func(c *config.Config) *string { return &c.ReportDir }),
	stringKey("markdown-dir", func(c *config.Config) *string { return &c.MarkdownDir }),
	stringKey("references-json", func(c *config.Config) *string { return &c.ReferencesJSON }),
	stringKey("references-md", func(c *config.Config) *string { return &c.ReferencesMD }),
	stringKey("overrides-file", func(c *config.Config) *string { return &c.OverridesFile }),
	{
		name: "pdf-reader",
		get:  func(c *config.Config) string { return c.PDFReader },
		set: func(c *config.Config, v string) error {
			if !slices.Contains(pdf.ValidReaders, v) {
				return fmt.Errorf("invalid pdf reader %q (valid: %s)", v, strings.Join(pdf.ValidReaders, ", "))
			}
			c.PDFReader = v
			return nil
		},
	},
	{
		name: "max-file-size",
		get:  func(c *config.Config) string { return strconv.FormatInt(c.MaxFileSize, 10) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("max-file-size must be an integer: %q", v)
			}
			c.MaxFileSize = n
			return nil
		},
	},
	intKey("max-filename-length", func(c *config.Config) *int { return &c.MaxFilenameLength }),
	intKey("truncate-words", func(c *config.Config) *int { return &c.TruncateWords }),
	{
		name: "similarity-threshold",
		get:  func(c *config.Config) string { return strconv.FormatFloat(c.SimilarityThreshold, 'f', -1, 64) },
		set: func(c *config.Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("similarity-threshold must be a number: %q", v)
			}
			c.SimilarityThreshold = f
			return nil
		},
	},
	stringKey("log-level", func(c *config.Config) *string { return &c.Log.Level }),
	stringKey("log-format", func(c *config.Config) *string { return &c.Log.Format }),
}

func lookupConfigKey(key string) (configKey, bool) {
	key = normalizeKey(key)
	for _, k := range configKeys {
		if k.name == key {
			return k, true
		}
	}
	return configKey{}, false
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			for _, k := range configKeys {
				fmt.Printf("%-21s %s\n", k.name+":", k.get(cfg))
			}
		} else {
			all := make(map[string]string, len(configKeys))
			for _, k := range configKeys {
				all[jsonKey(k.name)] = k.get(cfg)
			}
			outputJSON(all)
		}
		return nil
	}

	k, ok := lookupConfigKey(args[0])
	if !ok {
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	// One arg: get specific value
	if len(args) == 1 {
		if humanOutput {
			fmt.Println(k.get(cfg))
		} else {
			outputJSON(map[string]string{jsonKey(k.name): k.get(cfg)})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if strings.HasSuffix(k.name, "-dir") || strings.HasSuffix(k.name, "-file") {
		value = config.ExpandPath(value)
	}
	if err := k.set(cfg, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", k.name, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    k.name,
			Value:  value,
		})
	}
	return nil
}

// normalizeKey converts key formats (inbox-dir, inbox_dir, INBOX_DIR) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}

func jsonKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
