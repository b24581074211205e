// Package ingest moves new documents from the inbox into the reference
// directory under canonical names and records them in the bibliography.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/matsen/docshelf/internal/config"
	"github.com/matsen/docshelf/internal/conflict"
	"github.com/matsen/docshelf/internal/export"
	"github.com/matsen/docshelf/internal/files"
	"github.com/matsen/docshelf/internal/logging"
	"github.com/matsen/docshelf/internal/metadata"
	"github.com/matsen/docshelf/internal/naming"
	"github.com/matsen/docshelf/internal/reference"
	"github.com/matsen/docshelf/internal/storage"
)

const (
	// LogFile is written to the Markdown directory after every run.
	LogFile = "log.md"
	// ConflictsFile is written to the report directory when conflicts exist.
	ConflictsFile = "ingestion_conflicts.json"
)

// Options controls a single run.
type Options struct {
	// DryRun computes stubs and conflicts without moving or writing anything.
	DryRun bool
}

// Processed describes a document committed during a run.
type Processed struct {
	OriginalFilename string `json:"original_filename"`
	Filename         string `json:"filename"`
	Author           string `json:"author"`
	Title            string `json:"title"`
	Year             string `json:"year"`
	FileHash         string `json:"file_hash"`
}

// Skipped describes an inbox file that was not considered.
type Skipped struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Result summarizes a run.
type Result struct {
	RunID         string            `json:"run_id"`
	DryRun        bool              `json:"dry_run"`
	Processed     []Processed       `json:"processed"`
	Conflicts     []conflict.Report `json:"conflicts"`
	SkippedLarge  []Skipped         `json:"skipped_large"`
	SkippedNonPDF []string          `json:"skipped_non_pdf"`
	Errors        []string          `json:"errors"`
	Issues        []string          `json:"issues"`
}

// ConflictReport is the JSON document written for held-back files.
type ConflictReport struct {
	Generated string            `json:"generated"`
	RunID     string            `json:"run_id"`
	Conflicts []conflict.Report `json:"conflicts"`
}

// Processor runs ingestion batches.
type Processor struct {
	cfg       *config.Config
	store     *storage.Store
	extractor metadata.Extractor
	overrides metadata.Lookup
	generator *naming.Generator
	logger    zerolog.Logger
	runID     string
	now       func() time.Time
}

// NewProcessor wires a processor from the repository configuration.
// overrides may be nil.
func NewProcessor(cfg *config.Config, extractor metadata.Extractor, overrides metadata.Lookup, logger zerolog.Logger, runID string) *Processor {
	return &Processor{
		cfg:       cfg,
		store:     storage.NewStore(cfg.ReferencesJSONPath()),
		extractor: extractor,
		overrides: overrides,
		generator: &naming.Generator{
			MaxLength:     cfg.MaxFilenameLength,
			TruncateWords: cfg.TruncateWords,
			Exists:        naming.DirProbe(cfg.ReferencePath()),
		},
		logger: logging.WithRun(logger, runID, "ingest"),
		runID:  runID,
		now:    time.Now,
	}
}

// run carries the mutable state of one batch.
type run struct {
	result    *Result
	snapshot  []reference.Reference
	processed map[string]bool
	opts      Options
}

// Run processes every document in the inbox. Per-document failures are
// collected in the result; only an unreadable or unwritable bibliography
// or a cancelled context returns an error.
func (p *Processor) Run(ctx context.Context, opts Options) (*Result, error) {
	refs, err := p.store.Load()
	if err != nil {
		return nil, err
	}
	p.logger.Info().Int("existing", len(refs)).Msg("loaded bibliography")

	pdfs, other, err := files.ListDir(p.cfg.InboxPath())
	if err != nil {
		return nil, fmt.Errorf("scanning inbox: %w", err)
	}

	r := &run{
		result: &Result{
			RunID:         p.runID,
			DryRun:        opts.DryRun,
			Processed:     []Processed{},
			Conflicts:     []conflict.Report{},
			SkippedLarge:  []Skipped{},
			SkippedNonPDF: []string{},
			Errors:        []string{},
			Issues:        []string{},
		},
		snapshot:  refs,
		processed: make(map[string]bool),
		opts:      opts,
	}

	for _, e := range other {
		r.result.SkippedNonPDF = append(r.result.SkippedNonPDF, e.Name)
	}

	for _, e := range pdfs {
		if e.Size >= p.cfg.MaxFileSize {
			r.result.SkippedLarge = append(r.result.SkippedLarge, Skipped{Name: e.Name, Size: e.Size})
			p.logger.Info().Str("file", e.Name).Str("size", humanize.Bytes(uint64(e.Size))).Msg("skipping large file")
			continue
		}
		if err := ctx.Err(); err != nil {
			return r.result, err
		}
		if err := p.processFile(r, e); err != nil {
			return r.result, err
		}
	}

	if opts.DryRun {
		return r.result, nil
	}
	if err := p.finish(r.result); err != nil {
		return r.result, err
	}
	return r.result, nil
}

// processFile handles one inbox document. The returned error is fatal to
// the batch; recoverable problems are recorded on the result.
func (p *Processor) processFile(r *run, e files.Entry) error {
	log := p.logger.With().Str("file", e.Name).Logger()

	embedded, err := p.extractor.Extract(e.Path)
	if err != nil {
		r.result.Issues = append(r.result.Issues, fmt.Sprintf("Error extracting metadata from %s: %v", e.Name, err))
		log.Warn().Err(err).Msg("metadata extraction failed")
		embedded = metadata.Metadata{}
	}
	m := metadata.Resolve(e.Name, embedded, p.overrides)

	hash, err := files.Hash(e.Path)
	if err != nil {
		r.result.Errors = append(r.result.Errors, fmt.Sprintf("Error processing %s: %v", e.Name, err))
		log.Error().Err(err).Msg("hashing failed")
		return nil
	}

	filename, names := p.generator.Generate(m.Author, m.Title, r.processed)
	year := m.Year
	if year == metadata.NoDate {
		year = ""
	}
	stub := reference.Stub{
		Filename:         filename,
		FileHash:         hash,
		Author:           reference.FormatAuthors(names),
		AuthorNames:      names,
		Title:            m.Title,
		Year:             year,
		Publisher:        m.Publisher,
		OriginalFilename: e.Name,
	}

	if conflicts := conflict.Detect(stub, r.snapshot); len(conflicts) > 0 {
		r.result.Conflicts = append(r.result.Conflicts, conflict.Report{
			FilePath:         e.Path,
			OriginalFilename: e.Name,
			Stub:             stub,
			Conflicts:        conflicts,
		})
		r.result.Issues = append(r.result.Issues, fmt.Sprintf("CONFLICT: %s - %s", e.Name, conflicts[0].Message))
		log.Warn().Str("type", string(conflicts[0].Type)).Str("existing", conflicts[0].ExistingFilename).Msg("conflict, left in inbox")
		return nil
	}

	if len(filename) >= p.cfg.MaxFilenameLength {
		r.result.Issues = append(r.result.Issues, fmt.Sprintf("Long filename (%d chars): %s -> %s", len(filename), e.Name, filename))
	}

	ref := stub.Reference()
	if !r.opts.DryRun {
		dest := filepath.Join(p.cfg.ReferencePath(), filename)
		if err := files.Move(e.Path, dest); err != nil {
			r.result.Errors = append(r.result.Errors, fmt.Sprintf("Error processing %s: %v", e.Name, err))
			log.Error().Err(err).Msg("move failed")
			return nil
		}
		if err := p.store.Upsert(ref); err != nil {
			return fmt.Errorf("recording %s: %w", filename, err)
		}
	}

	r.processed[filename] = true
	r.snapshot = append(r.snapshot, ref)
	r.result.Processed = append(r.result.Processed, Processed{
		OriginalFilename: e.Name,
		Filename:         filename,
		Author:           ref.Author,
		Title:            ref.Title,
		Year:             m.Year,
		FileHash:         hash,
	})
	log.Info().Str("filename", filename).Msg("processed")
	return nil
}

// finish writes the batch artifacts: the regenerated bibliography, the
// processing log and the conflict report.
func (p *Processor) finish(result *Result) error {
	if len(result.Processed) > 0 {
		refs, err := p.store.Load()
		if err != nil {
			return err
		}
		if err := export.WriteMarkdown(p.cfg.ReferencesMDPath(), refs); err != nil {
			return fmt.Errorf("regenerating bibliography: %w", err)
		}
	}

	if err := files.WriteText(filepath.Join(p.cfg.MarkdownPath(), LogFile), RenderLog(result)); err != nil {
		return fmt.Errorf("writing log: %w", err)
	}

	if len(result.Conflicts) > 0 {
		report := ConflictReport{
			Generated: p.now().Format(time.RFC3339),
			RunID:     result.RunID,
			Conflicts: result.Conflicts,
		}
		path := filepath.Join(p.cfg.ReportPath(), ConflictsFile)
		if err := files.WriteJSON(path, report); err != nil {
			return fmt.Errorf("writing conflict report: %w", err)
		}
		p.logger.Info().Str("path", path).Int("conflicts", len(result.Conflicts)).Msg("conflict report written")
	}
	return nil
}
