// Package main provides the shelf CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/docshelf/internal/config"
	"github.com/matsen/docshelf/internal/logging"
	"github.com/matsen/docshelf/internal/reference"
	"github.com/matsen/docshelf/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// rootFlag overrides repository discovery
var rootFlag string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Document library and bibliography manager",
	Long: `shelf ingests PDF documents from an inbox, names them consistently,
and keeps a bibliography of everything on the shelf.

Core features:
  - Metadata extraction from embedded PDF info and filename patterns
  - Deterministic Author_Title.pdf naming with collision handling
  - Conflict detection for duplicate content and names
  - Harvard-style markdown and BibTeX export
  - Duplicate, broken-title and unknown-author review workflows

The bibliography is stored as JSON with an ephemeral SQLite index for queries.
All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for SHELF_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Repository root (default: $SHELF_ROOT, current directory, then global default_root)")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a repository.
// The --root flag wins, then SHELF_ROOT, then the working directory.
func getStartingDirectory() (string, int) {
	if rootFlag != "" {
		return config.ExpandPath(rootFlag), 0
	}
	if env := os.Getenv(config.EnvPrefix + "_ROOT"); env != "" {
		return config.ExpandPath(env), 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindRepository finds and validates the repository, exits on error.
// Falls back to the global default_root when nothing is found from the start directory.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err == nil {
		return repoRoot
	}
	if rootFlag == "" {
		if root, derr := config.DefaultRoot(); derr == nil {
			return root
		}
	}
	fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
	os.Exit(ExitConfigError)
	return ""
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the SQLite index, rebuilding it when the
// bibliography is newer. The caller is responsible for calling Close().
func mustOpenDatabase(cfg *config.Config) *storage.DB {
	if err := os.MkdirAll(config.CachePath(cfg.Root()), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	dbPath := config.DBPath(cfg.Root())
	stale := storage.IsStale(dbPath, cfg.ReferencesJSONPath())

	db, err := storage.OpenDB(dbPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	if stale {
		if _, err := db.RebuildFromJSON(cfg.ReferencesJSONPath()); err != nil {
			db.Close()
			exitWithError(ExitDataError, "rebuilding index: %v", err)
		}
	}
	return db
}

// mustLoadReferences reads the bibliography, exits on error.
func mustLoadReferences(cfg *config.Config) (*storage.Store, []reference.Reference) {
	store := storage.NewStore(cfg.ReferencesJSONPath())
	refs, err := store.Load()
	if err != nil {
		exitWithError(ExitDataError, "reading bibliography: %v", err)
	}
	return store, refs
}

// newLogger builds the operation logger from the repository log settings.
func newLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
}
