// Package repair fixes bibliography records left inconsistent by older
// naming rules or missing fields.
package repair

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matsen/docshelf/internal/files"
	"github.com/matsen/docshelf/internal/naming"
	"github.com/matsen/docshelf/internal/reference"
)

// HashResult summarizes AddHashes.
type HashResult struct {
	Updated       int      `json:"updated"`
	AlreadyHashed int      `json:"already_hashed"`
	Errors        []string `json:"errors"`
}

// AddHashes fills in missing file hashes from files in refDir, modifying
// refs in place.
func AddHashes(refs []reference.Reference, refDir string) HashResult {
	result := HashResult{Errors: []string{}}
	for i := range refs {
		if refs[i].FileHash != "" {
			result.AlreadyHashed++
			continue
		}
		path := filepath.Join(refDir, refs[i].Filename)
		if !files.Exists(path) {
			result.Errors = append(result.Errors, "File not found: "+refs[i].Filename)
			continue
		}
		hash, err := files.Hash(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", refs[i].Filename, err))
			continue
		}
		refs[i].FileHash = hash
		result.Updated++
	}
	return result
}

// Rename is a proposed filename correction.
type Rename struct {
	Index          int    `json:"-"`
	Author         string `json:"author"`
	Title          string `json:"title"`
	OldFilename    string `json:"old_filename"`
	NewFilename    string `json:"new_filename"`
	ExpectedPrefix string `json:"expected_prefix"`
}

// MismatchedFilenames proposes canonical names for records whose filename
// does not start with the author token their author field yields. Records
// without an author or title are left alone.
func MismatchedFilenames(refs []reference.Reference, gen *naming.Generator) []Rename {
	renames := []Rename{}
	for i, ref := range refs {
		if ref.Author == "" || ref.Title == "" || ref.Author == reference.UnknownAuthor {
			continue
		}
		token, _ := naming.ParseAuthor(ref.Author)
		if strings.HasPrefix(ref.Filename, token) {
			continue
		}
		renames = append(renames, Rename{
			Index:          i,
			Author:         ref.Author,
			Title:          ref.Title,
			OldFilename:    ref.Filename,
			NewFilename:    gen.Compose(token, naming.SanitizeTitle(ref.Title)),
			ExpectedPrefix: token,
		})
	}
	return renames
}

// RenameResult summarizes ApplyRenames.
type RenameResult struct {
	Renamed []Rename `json:"renamed"`
	Errors  []string `json:"errors"`
}

// ApplyRenames moves each file in refDir to its proposed name, resolving
// collisions, and updates the matching record in refs.
func ApplyRenames(refs []reference.Reference, renames []Rename, refDir string, gen *naming.Generator) RenameResult {
	result := RenameResult{Renamed: []Rename{}, Errors: []string{}}
	processed := make(map[string]bool)

	for _, r := range renames {
		oldPath := filepath.Join(refDir, r.OldFilename)
		if !files.Exists(oldPath) {
			result.Errors = append(result.Errors, "File not found: "+r.OldFilename)
			continue
		}
		r.NewFilename = gen.Resolve(r.NewFilename, processed)
		if err := files.Move(oldPath, filepath.Join(refDir, r.NewFilename)); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", r.OldFilename, err))
			continue
		}
		refs[r.Index].Filename = r.NewFilename
		processed[r.NewFilename] = true
		result.Renamed = append(result.Renamed, r)
	}
	return result
}

// AuthorFix is a display author string with repeated names removed.
type AuthorFix struct {
	Index    int    `json:"-"`
	Filename string `json:"filename"`
	Old      string `json:"old_author"`
	New      string `json:"new_author"`
}

// DuplicateAuthors finds records whose author list names someone more than
// once, compared case-insensitively, and proposes the deduplicated list.
func DuplicateAuthors(refs []reference.Reference) []AuthorFix {
	fixes := []AuthorFix{}
	for i, ref := range refs {
		if ref.Author == "" || ref.Author == reference.UnknownAuthor {
			continue
		}
		names := reference.SplitAuthors(ref.Author)
		seen := make(map[string]bool, len(names))
		var kept []string
		for _, n := range names {
			key := strings.ToLower(strings.TrimSpace(n))
			if seen[key] {
				continue
			}
			seen[key] = true
			kept = append(kept, n)
		}
		if len(kept) == len(names) {
			continue
		}
		fixes = append(fixes, AuthorFix{
			Index:    i,
			Filename: ref.Filename,
			Old:      ref.Author,
			New:      reference.FormatAuthors(kept),
		})
	}
	return fixes
}

// ApplyAuthorFixes writes the proposed author strings into refs.
func ApplyAuthorFixes(refs []reference.Reference, fixes []AuthorFix) {
	for _, f := range fixes {
		refs[f.Index].Author = f.New
	}
}
