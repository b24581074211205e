// Package storage persists the bibliography as a JSON document and mirrors it
// into an ephemeral SQLite index for queries.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/docshelf/internal/reference"
)

// Update holds the fields rewritten by Store.Update.
type Update struct {
	Filename    string
	AuthorNames []string
	Year        string
	Title       string
	Publisher   string
}

// Store is the bibliography file. Each method reads and rewrites the whole
// document; there is no concurrent-writer protocol.
type Store struct {
	path string
}

// NewStore returns a store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the bibliography file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all references. A missing file yields an empty slice.
func (s *Store) Load() ([]reference.Reference, error) {
	return ReadAll(s.path)
}

// Save overwrites the bibliography with refs. Empty year and publisher are
// written as null, and an empty file_hash or original_filename is omitted, so
// a file that stored "" for those fields does not survive a save byte for byte.
func (s *Store) Save(refs []reference.Reference) error {
	return WriteAll(s.path, refs)
}

// Upsert replaces the reference with the same filename in place, or appends it.
func (s *Store) Upsert(ref reference.Reference) error {
	refs, err := s.Load()
	if err != nil {
		return err
	}
	if idx, found := FindByFilename(refs, ref.Filename); found {
		refs[idx] = ref
	} else {
		refs = append(refs, ref)
	}
	return s.Save(refs)
}

// Remove deletes the reference with exactly this filename and reports
// whether one was found.
func (s *Store) Remove(filename string) (bool, error) {
	refs, err := s.Load()
	if err != nil {
		return false, err
	}
	idx, found := FindByFilename(refs, filename)
	if !found {
		return false, nil
	}
	refs = append(refs[:idx], refs[idx+1:]...)
	return true, s.Save(refs)
}

// Update rewrites filename, author, year, title and publisher of the reference
// keyed by oldFilename. Other fields are preserved. It reports false and writes
// nothing when no such reference exists, or when the new filename already
// belongs to another reference.
func (s *Store) Update(oldFilename string, u Update) (bool, error) {
	refs, err := s.Load()
	if err != nil {
		return false, err
	}
	idx, found := FindByFilename(refs, oldFilename)
	if !found {
		return false, nil
	}
	if u.Filename != oldFilename {
		if _, taken := FindByFilename(refs, u.Filename); taken {
			return false, nil
		}
	}
	ApplyUpdate(&refs[idx], u)
	return true, s.Save(refs)
}

// Get returns the reference with this filename, or nil.
func (s *Store) Get(filename string) (*reference.Reference, error) {
	refs, err := s.Load()
	if err != nil {
		return nil, err
	}
	if idx, found := FindByFilename(refs, filename); found {
		return &refs[idx], nil
	}
	return nil, nil
}

// ApplyUpdate rewrites the updatable fields of ref in place.
func ApplyUpdate(ref *reference.Reference, u Update) {
	ref.Filename = u.Filename
	ref.Author = reference.FormatAuthors(u.AuthorNames)
	ref.Year = reference.OptString(u.Year)
	ref.Title = u.Title
	ref.Publisher = reference.OptString(u.Publisher)
}

// ReadAll reads a JSON array of references from path.
func ReadAll(path string) ([]reference.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []reference.Reference{}, nil
		}
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []reference.Reference{}, nil
	}

	var refs []reference.Reference
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("parsing bibliography %s: %w", path, err)
	}
	if refs == nil {
		refs = []reference.Reference{}
	}
	return refs, nil
}

// WriteAll writes refs as an indented JSON array with non-ASCII and HTML
// characters left unescaped. The write goes to a temporary file that is
// renamed over path.
func WriteAll(path string, refs []reference.Reference) error {
	if refs == nil {
		refs = []reference.Reference{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(refs); err != nil {
		return fmt.Errorf("encoding bibliography: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".bibliography-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing bibliography: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing bibliography: %w", err)
	}
	return nil
}

// FindByFilename searches for a reference by exact, case-sensitive filename.
func FindByFilename(refs []reference.Reference, filename string) (int, bool) {
	for i, ref := range refs {
		if ref.Filename == filename {
			return i, true
		}
	}
	return -1, false
}

// FindByHash searches for a reference carrying this content hash.
// An empty hash never matches.
func FindByHash(refs []reference.Reference, hash string) (int, bool) {
	if hash == "" {
		return -1, false
	}
	for i, ref := range refs {
		if ref.FileHash != "" && ref.FileHash == hash {
			return i, true
		}
	}
	return -1, false
}

// Backup copies the bibliography file to path+suffix and returns the copy's
// path. A missing bibliography is not backed up.
func Backup(path, suffix string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading bibliography: %w", err)
	}
	dst := path + suffix
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return dst, nil
}
