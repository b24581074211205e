package pdf

import (
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PreviewChars bounds the first-page preview in an inspection.
const PreviewChars = 1000

// Inspection is a diagnostic view of a single document.
type Inspection struct {
	Filename         string            `json:"filename"`
	Success          bool              `json:"success"`
	Error            string            `json:"error,omitempty"`
	Metadata         map[string]string `json:"metadata"`
	NumPages         int               `json:"num_pages"`
	FirstPagePreview string            `json:"first_page_preview"`
}

// Inspect gathers the Info dictionary, page count and a first-page preview.
// Failures are reported in the result rather than returned.
func Inspect(filePath string) Inspection {
	result := Inspection{
		Filename: filepath.Base(filePath),
		Metadata: map[string]string{},
	}

	pages, err := PageCount(filePath)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.NumPages = pages

	if fields, err := InfoFields(filePath); err == nil {
		result.Metadata = fields
	} else {
		result.Error = err.Error()
	}
	if text, err := FirstPageText(filePath, PreviewChars); err == nil {
		result.FirstPagePreview = text
	}

	result.Success = result.Error == ""
	return result
}

// PageCount validates the file structure and returns its page count.
func PageCount(filePath string) (int, error) {
	return api.PageCountFile(filePath)
}
