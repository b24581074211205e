package review

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/matsen/docshelf/internal/config"
	"github.com/matsen/docshelf/internal/export"
	"github.com/matsen/docshelf/internal/files"
	"github.com/matsen/docshelf/internal/logging"
	"github.com/matsen/docshelf/internal/metadata"
	"github.com/matsen/docshelf/internal/naming"
	"github.com/matsen/docshelf/internal/reference"
	"github.com/matsen/docshelf/internal/storage"
)

// Quarantined records a document moved out of the reference directory.
type Quarantined struct {
	Filename    string `json:"filename"`
	NewFilename string `json:"new_filename"`
}

// Updated records a metadata correction.
type Updated struct {
	OldFilename string   `json:"old_filename"`
	NewFilename string   `json:"new_filename"`
	Changes     []string `json:"changes"`
}

// Result summarizes an apply run.
type Result struct {
	Kind             Kind          `json:"kind"`
	RunID            string        `json:"run_id"`
	Total            int           `json:"total"`
	Quarantined      []Quarantined `json:"quarantined"`
	Updated          []Updated     `json:"updated"`
	Skipped          []string      `json:"skipped"`
	QuarantineErrors []string      `json:"quarantine_errors"`
	UpdateErrors     []string      `json:"update_errors"`
}

// Applier applies review decisions to the reference directory and bibliography.
type Applier struct {
	cfg    *config.Config
	store  *storage.Store
	logger zerolog.Logger
	runID  string
}

// NewApplier returns an applier for the repository.
func NewApplier(cfg *config.Config, logger zerolog.Logger, runID string) *Applier {
	return &Applier{
		cfg:    cfg,
		store:  storage.NewStore(cfg.ReferencesJSONPath()),
		logger: logging.WithRun(logger, runID, "apply"),
		runID:  runID,
	}
}

// Apply runs both phases over entries: quarantine first, then metadata
// updates. The bibliography is re-rendered and a log written afterwards.
// Missing files and records are reported in the result; only bibliography
// I/O failures return an error.
func (a *Applier) Apply(kind Kind, entries []Entry) (*Result, error) {
	entries = Flatten(entries)
	result := &Result{
		Kind:             kind,
		RunID:            a.runID,
		Total:            len(entries),
		Quarantined:      []Quarantined{},
		Updated:          []Updated{},
		Skipped:          []string{},
		QuarantineErrors: []string{},
		UpdateErrors:     []string{},
	}
	log := a.logger.With().Str("kind", string(kind)).Logger()

	quarantineGen := a.generator(a.cfg.QuarantinePath(), "")
	quarantined := make(map[string]bool)
	for _, e := range entries {
		if !e.Quarantine {
			continue
		}
		if err := a.quarantine(kind, e, quarantineGen, quarantined, result); err != nil {
			return result, err
		}
		log.Info().Str("file", e.Filename).Msg("quarantine processed")
	}

	processed := make(map[string]bool)
	for _, e := range entries {
		if e.Quarantine {
			continue
		}
		if !e.HasSuggestion() {
			result.Skipped = append(result.Skipped, e.Filename)
			continue
		}
		if err := a.update(e, processed, result); err != nil {
			return result, err
		}
		log.Info().Str("file", e.Filename).Msg("update processed")
	}

	if len(result.Quarantined) > 0 || len(result.Updated) > 0 {
		refs, err := a.store.Load()
		if err != nil {
			return result, err
		}
		if err := export.WriteMarkdown(a.cfg.ReferencesMDPath(), refs); err != nil {
			return result, fmt.Errorf("regenerating bibliography: %w", err)
		}
	}

	if err := files.WriteText(filepath.Join(a.cfg.MarkdownPath(), kind.LogFile()), RenderLog(result)); err != nil {
		return result, fmt.Errorf("writing log: %w", err)
	}
	return result, nil
}

func (a *Applier) generator(dir, self string) *naming.Generator {
	probe := naming.DirProbe(dir)
	return &naming.Generator{
		MaxLength:     a.cfg.MaxFilenameLength,
		TruncateWords: a.cfg.TruncateWords,
		Exists: func(name string) bool {
			return name != self && probe(name)
		},
	}
}

func (a *Applier) quarantine(kind Kind, e Entry, gen *naming.Generator, taken map[string]bool, result *Result) error {
	src := filepath.Join(a.cfg.ReferencePath(), e.Filename)
	if !files.Exists(src) {
		result.QuarantineErrors = append(result.QuarantineErrors, "File not found: "+e.Filename)
		return nil
	}

	name := e.Filename
	if kind.renamesOnQuarantine() && e.HasSuggestion() {
		rec, err := a.store.Get(e.Filename)
		if err != nil {
			return err
		}
		if rec == nil {
			result.QuarantineErrors = append(result.QuarantineErrors, "Entry not in bibliography: "+e.Filename)
			return nil
		}
		author, title, _ := finalValues(e.Annotation, *rec)
		name, _ = gen.Generate(author, title, taken)
	} else {
		name = gen.Resolve(name, taken)
	}

	if err := files.Move(src, filepath.Join(a.cfg.QuarantinePath(), name)); err != nil {
		result.QuarantineErrors = append(result.QuarantineErrors, fmt.Sprintf("%s: %v", e.Filename, err))
		return nil
	}
	taken[name] = true

	removed, err := a.store.Remove(e.Filename)
	if err != nil {
		return err
	}
	if !removed {
		result.QuarantineErrors = append(result.QuarantineErrors, "Entry not in bibliography: "+e.Filename)
	}
	result.Quarantined = append(result.Quarantined, Quarantined{Filename: e.Filename, NewFilename: name})
	return nil
}

func (a *Applier) update(e Entry, processed map[string]bool, result *Result) error {
	rec, err := a.store.Get(e.Filename)
	if err != nil {
		return err
	}
	if rec == nil {
		result.UpdateErrors = append(result.UpdateErrors, "Entry not in bibliography: "+e.Filename)
		return nil
	}

	src := filepath.Join(a.cfg.ReferencePath(), e.Filename)
	if !files.Exists(src) {
		result.UpdateErrors = append(result.UpdateErrors, "File not found: "+e.Filename)
		return nil
	}

	author, title, year := finalValues(e.Annotation, *rec)
	newName, names := a.generator(a.cfg.ReferencePath(), e.Filename).Generate(author, title, processed)

	if newName != e.Filename {
		existing, err := a.store.Get(newName)
		if err != nil {
			return err
		}
		if existing != nil {
			result.UpdateErrors = append(result.UpdateErrors, "Filename already in bibliography: "+newName)
			return nil
		}
		if err := files.Move(src, filepath.Join(a.cfg.ReferencePath(), newName)); err != nil {
			result.UpdateErrors = append(result.UpdateErrors, fmt.Sprintf("Error renaming %s: %v", e.Filename, err))
			return nil
		}
	}

	ok, err := a.store.Update(e.Filename, storage.Update{
		Filename:    newName,
		AuthorNames: names,
		Year:        year,
		Title:       title,
		Publisher:   rec.Publisher.String(),
	})
	if err != nil {
		return err
	}
	if !ok {
		result.UpdateErrors = append(result.UpdateErrors, "Entry not in bibliography: "+e.Filename)
		return nil
	}

	processed[newName] = true
	result.Updated = append(result.Updated, Updated{
		OldFilename: e.Filename,
		NewFilename: newName,
		Changes:     changes(e.Annotation),
	})
	return nil
}

// finalValues overlays suggestions on the current record. A suggested year
// of n.d. clears the year.
func finalValues(ann reference.Annotation, rec reference.Reference) (author, title, year string) {
	author, title, year = rec.Author, rec.Title, rec.Year.String()
	if ann.SuggestedAuthor != nil {
		author = *ann.SuggestedAuthor
	}
	if ann.SuggestedTitle != nil {
		title = *ann.SuggestedTitle
	}
	if ann.SuggestedYear != nil {
		year = *ann.SuggestedYear
	}
	if year == metadata.NoDate {
		year = ""
	}
	return author, title, year
}

func changes(ann reference.Annotation) []string {
	var out []string
	if ann.SuggestedAuthor != nil {
		out = append(out, "author")
	}
	if ann.SuggestedTitle != nil {
		out = append(out, "title")
	}
	if ann.SuggestedYear != nil {
		out = append(out, "year")
	}
	return out
}
