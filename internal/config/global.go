package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/shelf/config.yml.
type GlobalConfig struct {
	DefaultRoot string `yaml:"default_root,omitempty"`
	PDFReader   string `yaml:"pdf_reader,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "shelf"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// ErrNoDefaultRoot is returned when default_root is not set in the global config.
var ErrNoDefaultRoot = errors.New("default_root not configured")

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/shelf/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.DefaultRoot != "" {
		cfg.DefaultRoot = ExpandPath(cfg.DefaultRoot)
	}
	return &cfg, nil
}

// DefaultRoot returns the configured fallback repository, checking that it
// is an initialized shelf.
func DefaultRoot() (string, error) {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.DefaultRoot == "" {
		return "", ErrNoDefaultRoot
	}
	if !IsRepository(cfg.DefaultRoot) {
		return "", fmt.Errorf("default_root %s is not a shelf repository", cfg.DefaultRoot)
	}
	return cfg.DefaultRoot, nil
}

// HelpfulConfigMessage explains how to point the CLI at a repository.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No shelf repository found.

Run 'shelf init' in your document directory, or create %s:
  mkdir -p %s
  echo 'default_root: /path/to/your/library' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
