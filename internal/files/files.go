// Package files provides the filesystem primitives used by batch runs:
// hashing, moving and listing documents.
package files

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrSourceMissing is returned by Move when the source file does not exist.
var ErrSourceMissing = errors.New("source file does not exist")

// Hash returns the SHA-256 hex digest of the file's bytes.
func Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Move renames src to dst, creating dst's directory. Moving a file onto
// itself succeeds. Renames across filesystems fall back to copy and remove.
func Move(src, dst string) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		if !Exists(src) {
			return ErrSourceMissing
		}
		return nil
	}
	if !Exists(src) {
		return fmt.Errorf("%w: %s", ErrSourceMissing, src)
	}
	if Exists(dst) {
		return fmt.Errorf("destination already exists: %s", dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("removing %s after copy: %w", src, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Close()
}

// Entry is a regular file found in a directory.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// IsPDF reports whether name has a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// ListDir returns the regular, non-hidden files in dir sorted by name,
// partitioned into PDFs and everything else. A missing dir is empty.
func ListDir(dir string) (pdfs, other []Entry, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		entry := Entry{Name: e.Name(), Path: filepath.Join(dir, e.Name()), Size: info.Size()}
		if IsPDF(e.Name()) {
			pdfs = append(pdfs, entry)
		} else {
			other = append(other, entry)
		}
	}
	return pdfs, other, nil
}

// PDFNames returns the set of PDF filenames in dir.
func PDFNames(dir string) (map[string]bool, error) {
	pdfs, _, err := ListDir(dir)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(pdfs))
	for _, p := range pdfs {
		names[p.Name] = true
	}
	return names, nil
}
