// Package conflict decides whether a candidate document may be committed to
// the bibliography.
package conflict

import (
	"fmt"

	"github.com/matsen/docshelf/internal/reference"
)

// Kind tags a conflict descriptor.
type Kind string

const (
	KindHashDuplicate     Kind = "hash_duplicate"     // Same content already in the bibliography
	KindFilenameCollision Kind = "filename_collision" // Candidate name already used by an entry
)

// Conflict describes why a candidate was held back.
type Conflict struct {
	Type             Kind   `json:"type"`
	ExistingFilename string `json:"existing_filename"`
	ExistingTitle    string `json:"existing_title"`
	Message          string `json:"message"`
}

func (c Conflict) Error() string {
	return fmt.Sprintf("%s: %s", c.Type, c.Message)
}

// Report groups the conflicts of one held-back inbox file.
type Report struct {
	FilePath         string         `json:"file_path"`
	OriginalFilename string         `json:"original_filename"`
	Stub             reference.Stub `json:"stub"`
	Conflicts        []Conflict     `json:"conflicts"`
}
