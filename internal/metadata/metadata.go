// Package metadata resolves bibliographic fields for an inbox document from
// embedded PDF metadata, filename patterns and a manual override table.
package metadata

import (
	"path/filepath"
	"strings"
)

// NoDate is the year used when none can be determined.
const NoDate = "n.d."

// Metadata holds best-effort bibliographic fields. Empty means unknown.
type Metadata struct {
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Year      string `json:"year,omitempty" yaml:"year,omitempty"`
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
}

// Extractor reads embedded metadata from a document.
type Extractor interface {
	Extract(path string) (Metadata, error)
}

// Merge combines sources field by field: embedded metadata first, then the
// filename pattern, then the bare stem for the title. Year defaults to n.d.
func Merge(embedded, fromName Metadata, stem string) Metadata {
	m := Metadata{
		Title:     first(embedded.Title, fromName.Title, cleanStem(stem)),
		Author:    first(embedded.Author, fromName.Author),
		Year:      first(embedded.Year, fromName.Year, NoDate),
		Publisher: first(embedded.Publisher, fromName.Publisher),
	}
	return m
}

// Overlay replaces every field of m that o sets.
func Overlay(m, o Metadata) Metadata {
	if o.Title != "" {
		m.Title = o.Title
	}
	if o.Author != "" {
		m.Author = o.Author
	}
	if o.Year != "" {
		m.Year = o.Year
	}
	if o.Publisher != "" {
		m.Publisher = o.Publisher
	}
	return m
}

// Resolve runs the full pipeline for one file: filename pattern, merge with
// embedded metadata, then the override table.
func Resolve(filename string, embedded Metadata, overrides Lookup) Metadata {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	fromName, _ := FromFilename(stem)
	m := Merge(embedded, fromName, stem)
	if overrides != nil {
		if o, ok := overrides.Lookup(filename); ok {
			m = Overlay(m, o)
		}
	}
	return m
}

func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// cleanStem turns a filename stem into a readable title.
func cleanStem(stem string) string {
	return strings.Join(strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(stem)), " ")
}
