package storage

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/docshelf/internal/reference"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite query index. The bibliography JSON stays the source of
// truth; the index is rebuilt from it and may be deleted at any time.
type DB struct {
	db *sql.DB
}

// selectRefFields contains the standard field list for SELECT queries.
const selectRefFields = `filename, author, title, year, publisher, file_hash, original_filename`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS refs (
			position INTEGER NOT NULL,
			filename TEXT PRIMARY KEY,
			author TEXT NOT NULL,
			title TEXT NOT NULL,
			year TEXT,
			publisher TEXT,
			file_hash TEXT,
			original_filename TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_refs_hash ON refs(file_hash) WHERE file_hash IS NOT NULL;

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS refs_fts USING fts5(
			filename,
			author,
			title,
			publisher
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSON clears the index and rebuilds it from a bibliography file.
func (d *DB) RebuildFromJSON(path string) (int, error) {
	refs, err := ReadAll(path)
	if err != nil {
		return 0, err
	}
	return d.Rebuild(refs)
}

// Rebuild clears the index and inserts refs in order.
func (d *DB) Rebuild(refs []reference.Reference) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM refs"); err != nil {
		return 0, fmt.Errorf("clearing refs table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM refs_fts"); err != nil {
		return 0, fmt.Errorf("clearing refs_fts table: %w", err)
	}

	refsStmt, err := tx.Prepare(`
		INSERT INTO refs (position, ` + selectRefFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing refs insert: %w", err)
	}
	defer refsStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO refs_fts (filename, author, title, publisher)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, ref := range refs {
		_, err := refsStmt.Exec(i, ref.Filename, ref.Author, ref.Title,
			nullableStringValue(ref.Year.String()), nullableStringValue(ref.Publisher.String()),
			nullableStringValue(ref.FileHash), nullableStringValue(ref.OriginalFilename))
		if err != nil {
			return 0, fmt.Errorf("inserting ref %s: %w", ref.Filename, err)
		}

		if _, err := ftsStmt.Exec(ref.Filename, ref.Author, ref.Title, ref.Publisher.String()); err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", ref.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(refs), nil
}

// IsStale reports whether the index at dbPath is missing or older than the
// bibliography at jsonPath.
func IsStale(dbPath, jsonPath string) bool {
	dbInfo, err := os.Stat(dbPath)
	if err != nil {
		return true
	}
	jsonInfo, err := os.Stat(jsonPath)
	if err != nil {
		return false
	}
	return jsonInfo.ModTime().After(dbInfo.ModTime())
}

// GetByFilename retrieves a reference by its filename.
func (d *DB) GetByFilename(filename string) (*reference.Reference, error) {
	row := d.db.QueryRow(`SELECT `+selectRefFields+` FROM refs WHERE filename = ?`, filename)
	return scanReference(row)
}

// FindByHash returns every reference carrying the given content hash.
func (d *DB) FindByHash(hash string) ([]reference.Reference, error) {
	rows, err := d.db.Query(`SELECT `+selectRefFields+` FROM refs WHERE file_hash = ? ORDER BY position`, hash)
	if err != nil {
		return nil, fmt.Errorf("querying by hash: %w", err)
	}
	defer rows.Close()
	return scanReferences(rows)
}

// Search performs a full-text search across filename, author, title and publisher.
func (d *DB) Search(query string, limit int) ([]reference.Reference, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT `+selectRefFields+`
		FROM refs
		WHERE filename IN (SELECT filename FROM refs_fts WHERE refs_fts MATCH ?)
		ORDER BY position
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// SearchField performs a search on a specific field.
func (d *DB) SearchField(field, value string, limit int) ([]reference.Reference, error) {
	switch field {
	case "author", "title", "publisher":
	default:
		return nil, fmt.Errorf("unknown search field: %s", field)
	}
	ftsQuery := field + ":" + prepareFTSQuery(value)

	rows, err := d.db.Query(`
		SELECT `+selectRefFields+`
		FROM refs
		WHERE filename IN (SELECT filename FROM refs_fts WHERE refs_fts MATCH ?)
		ORDER BY position
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", field, err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// ListByYear returns references whose year falls in [from, to]. Zero bounds are open.
func (d *DB) ListByYear(from, to, limit int) ([]reference.Reference, error) {
	query := `SELECT ` + selectRefFields + ` FROM refs WHERE year GLOB '[0-9][0-9][0-9][0-9]'`
	var args []interface{}
	if from > 0 {
		query += " AND CAST(year AS INTEGER) >= ?"
		args = append(args, from)
	}
	if to > 0 {
		query += " AND CAST(year AS INTEGER) <= ?"
		args = append(args, to)
	}
	query += " ORDER BY position"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing by year: %w", err)
	}
	defer rows.Close()
	return scanReferences(rows)
}

// ListAll returns all references in bibliography order, optionally limited.
func (d *DB) ListAll(limit int) ([]reference.Reference, error) {
	query := `SELECT ` + selectRefFields + ` FROM refs ORDER BY position`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing refs: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// Count returns the total number of references.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM refs").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReference(s scanner) (*reference.Reference, error) {
	var ref reference.Reference
	var year, publisher, hash, original sql.NullString

	err := s.Scan(&ref.Filename, &ref.Author, &ref.Title, &year, &publisher, &hash, &original)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	ref.Year = reference.OptString(year.String)
	ref.Publisher = reference.OptString(publisher.String)
	ref.FileHash = hash.String
	ref.OriginalFilename = original.String
	return &ref, nil
}

func scanReferences(rows *sql.Rows) ([]reference.Reference, error) {
	var refs []reference.Reference
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			refs = append(refs, *ref)
		}
	}
	return refs, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~._'") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
