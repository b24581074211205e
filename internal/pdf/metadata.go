// Package pdf reads embedded document metadata and opens documents in a viewer.
package pdf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/matsen/docshelf/internal/metadata"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Extractor reads the PDF Info dictionary.
type Extractor struct{}

// Extract returns /Title, /Author, the year from /CreationDate (or /ModDate)
// and /Producer as publisher. Missing keys are empty.
func (Extractor) Extract(filePath string) (m metadata.Metadata, err error) {
	info, closeFn, err := openInfo(filePath)
	if err != nil {
		return metadata.Metadata{}, err
	}
	defer closeFn()

	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			m, err = metadata.Metadata{}, fmt.Errorf("reading metadata of %s: %v", filePath, r)
		}
	}()

	m.Title = infoText(info, "Title")
	m.Author = infoText(info, "Author")
	m.Publisher = infoText(info, "Producer")
	for _, key := range []string{"CreationDate", "ModDate"} {
		if y := yearPattern.FindString(infoText(info, key)); y != "" {
			m.Year = y
			break
		}
	}
	return m, nil
}

// InfoFields returns every string entry of the Info dictionary.
func InfoFields(filePath string) (fields map[string]string, err error) {
	info, closeFn, err := openInfo(filePath)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	defer func() {
		if r := recover(); r != nil {
			fields, err = nil, fmt.Errorf("reading metadata of %s: %v", filePath, r)
		}
	}()

	fields = make(map[string]string)
	for _, key := range info.Keys() {
		if v := infoText(info, key); v != "" {
			fields[key] = v
		}
	}
	return fields, nil
}

func openInfo(filePath string) (info pdf.Value, closeFn func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("opening %s: %v", filePath, r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return pdf.Value{}, nil, fmt.Errorf("opening %s: %w", filePath, err)
	}
	return r.Trailer().Key("Info"), func() { f.Close() }, nil
}

func infoText(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.IsNull() {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(v.Text(), "\x00", ""))
}

// FirstPageText returns the plain text of page one, truncated to maxChars runes.
func FirstPageText(filePath string, maxChars int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("extracting text of %s: %v", filePath, r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", nil
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return "", nil
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", nil
	}

	runes := []rune(strings.TrimSpace(text))
	if maxChars > 0 && len(runes) > maxChars {
		runes = runes[:maxChars]
	}
	return string(runes), nil
}
