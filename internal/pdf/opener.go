package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ValidReaders lists the supported pdf_reader values.
var ValidReaders = []string{"system", "skim", "preview", "zathura", "evince", "okular"}

// Opener resolves bibliography filenames to documents and opens them.
type Opener struct {
	dirs      []string
	pdfReader string
}

// NewOpener searches dirs in order when resolving a filename.
func NewOpener(pdfReader string, dirs ...string) *Opener {
	if pdfReader == "" {
		pdfReader = "system"
	}
	return &Opener{
		dirs:      dirs,
		pdfReader: pdfReader,
	}
}

// ResolvePath returns the first existing path for filename.
func (o *Opener) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("no filename specified")
	}

	for _, dir := range o.dirs {
		fullPath := filepath.Join(dir, filename)
		if _, err := os.Stat(fullPath); err == nil {
			return fullPath, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("checking PDF: %w", err)
		}
	}
	return "", fmt.Errorf("PDF not found: %s", filename)
}

// Open opens a PDF file using the configured reader.
func (o *Opener) Open(fullPath string) error {
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("PDF file does not exist: %s", fullPath)
		}
		return fmt.Errorf("checking PDF file: %w", err)
	}

	cmd, err := o.command(runtime.GOOS, fullPath)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func (o *Opener) command(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		switch o.pdfReader {
		case "skim":
			return exec.Command("open", "-a", "Skim", path), nil
		case "preview":
			return exec.Command("open", "-a", "Preview", path), nil
		default:
			return exec.Command("open", path), nil
		}
	case "linux":
		switch o.pdfReader {
		case "zathura", "evince", "okular":
			return exec.Command(o.pdfReader, path), nil
		default:
			return exec.Command("xdg-open", path), nil
		}
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
