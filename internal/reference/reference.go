// Package reference defines the core domain types for the document bibliography.
package reference

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Reference is one bibliography entry describing a document in the reference directory.
// Filename is the primary key within a bibliography.
type Reference struct {
	Filename         string    `json:"filename"`
	Author           string    `json:"author"` // Display string, joined per FormatAuthors
	Title            string    `json:"title"`
	Year             OptString `json:"year"`
	Publisher        OptString `json:"publisher"`
	FileHash         string    `json:"file_hash,omitempty"`         // SHA-256 hex of file contents
	OriginalFilename string    `json:"original_filename,omitempty"` // Name before canonicalization
}

// Stub is a proposed Reference computed during ingestion, before any side effects.
type Stub struct {
	Filename         string   `json:"filename"`
	FileHash         string   `json:"file_hash"`
	Author           string   `json:"author"`
	AuthorNames      []string `json:"author_names"`
	Title            string   `json:"title"`
	Year             string   `json:"year"`
	Publisher        string   `json:"publisher"`
	OriginalFilename string   `json:"original_filename"`
}

// Reference converts the stub into the entry that would be stored for it.
func (s Stub) Reference() Reference {
	return Reference{
		Filename:         s.Filename,
		Author:           FormatAuthors(s.AuthorNames),
		Title:            s.Title,
		Year:             OptString(s.Year),
		Publisher:        OptString(s.Publisher),
		FileHash:         s.FileHash,
		OriginalFilename: s.OriginalFilename,
	}
}

// OptString is an optional string field. The empty value encodes as JSON null,
// and strings, numbers and null all decode.
type OptString string

func (o OptString) MarshalJSON() ([]byte, error) {
	if o == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(o))
}

func (o *OptString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = OptString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if i, err := strconv.Atoi(n.String()); err == nil {
			*o = OptString(strconv.Itoa(i))
			return nil
		}
		*o = OptString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into OptString", string(data))
}

func (o OptString) String() string {
	return string(o)
}
