package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lookup supplies known-correct metadata for specific documents.
type Lookup interface {
	Lookup(filename string) (Metadata, bool)
}

// Overrides is a table of corrections keyed by original filename or stem.
type Overrides map[string]Metadata

// Lookup finds an override by exact filename, then by stem.
func (o Overrides) Lookup(filename string) (Metadata, bool) {
	if m, ok := o[filename]; ok {
		return m, true
	}
	m, ok := o[strings.TrimSuffix(filename, filepath.Ext(filename))]
	return m, ok
}

// LoadOverrides reads a YAML override table. An empty path or missing file
// yields an empty table.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return Overrides{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return nil, fmt.Errorf("reading overrides: %w", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parsing overrides %s: %w", path, err)
	}
	if o == nil {
		o = Overrides{}
	}
	return o, nil
}
