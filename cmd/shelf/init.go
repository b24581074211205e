package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/docshelf/internal/config"
	"github.com/matsen/docshelf/internal/files"
	"github.com/matsen/docshelf/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Initialize a new shelf repository",
	Long: `Initialize a new shelf repository in the given directory (default: current directory).

Creates .shelf/config.yaml with default settings, the inbox, reference,
quarantine, report and markdown directories, and an empty bibliography.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, err := absDir(dir)
	if err != nil {
		exitWithError(ExitError, "resolving directory: %v", err)
	}

	if config.IsRepository(root) {
		exitWithError(ExitConfigError, "already a shelf repository: %s", root)
	}

	cfg := config.ForRoot(root)
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}
	for _, d := range cfg.WorkDirs() {
		if err := os.MkdirAll(d, 0755); err != nil {
			exitWithError(ExitError, "creating %s: %v", d, err)
		}
	}
	if !files.Exists(cfg.ReferencesJSONPath()) {
		if err := storage.WriteAll(cfg.ReferencesJSONPath(), nil); err != nil {
			exitWithError(ExitError, "creating bibliography: %v", err)
		}
	}

	if humanOutput {
		fmt.Printf("Initialized shelf repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: root})
	}
	return nil
}

// absDir resolves dir to an absolute path, creating it if needed.
func absDir(dir string) (string, error) {
	abs, err := filepath.Abs(config.ExpandPath(dir))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", err
	}
	return abs, nil
}
