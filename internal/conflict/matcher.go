package conflict

import (
	"fmt"

	"github.com/matsen/docshelf/internal/reference"
)

// Detect checks a stub against the loaded references and returns every
// conflict found. An empty result means the stub may be committed.
func Detect(stub reference.Stub, refs []reference.Reference) []Conflict {
	var conflicts []Conflict

	if existing := MatchHash(stub.FileHash, refs); existing != nil {
		conflicts = append(conflicts, Conflict{
			Type:             KindHashDuplicate,
			ExistingFilename: existing.Filename,
			ExistingTitle:    existing.Title,
			Message:          fmt.Sprintf("identical content already stored as %s", existing.Filename),
		})
	}

	if existing := MatchFilename(stub.Filename, refs); existing != nil {
		conflicts = append(conflicts, Conflict{
			Type:             KindFilenameCollision,
			ExistingFilename: existing.Filename,
			ExistingTitle:    existing.Title,
			Message:          fmt.Sprintf("filename %s already used by %q", existing.Filename, existing.Title),
		})
	}

	return conflicts
}

// MatchHash returns the first reference whose file_hash equals hash. Empty
// hashes and references without a hash never match.
func MatchHash(hash string, refs []reference.Reference) *reference.Reference {
	if hash == "" {
		return nil
	}
	for i := range refs {
		if refs[i].FileHash != "" && refs[i].FileHash == hash {
			return &refs[i]
		}
	}
	return nil
}

// MatchFilename returns the reference with exactly this filename.
func MatchFilename(filename string, refs []reference.Reference) *reference.Reference {
	if filename == "" {
		return nil
	}
	for i := range refs {
		if refs[i].Filename == filename {
			return &refs[i]
		}
	}
	return nil
}
