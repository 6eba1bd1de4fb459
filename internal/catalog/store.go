// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists extracted lessons in a SQLite database so they
// can be listed, searched and rendered without fetching the notebooks again.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/lesson-scraper/pkg/types"
)

const (
	dbFile            = "lessons.db"
	defaultMaxResults = 20
)

// ErrNotFound is returned by Get when no lesson matches the identifier.
var ErrNotFound = errors.New("lesson not found")

// Store manages the lesson catalog database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Open opens or creates the catalog at cfg.Dir/lessons.db and creates the
// schema if it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		dir:        dir,
		maxResults: maxResults,
	}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS lessons (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			source_url TEXT,
			extracted_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_title ON lessons(title)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IndexSummary holds counts from an indexing run.
type IndexSummary struct {
	Indexed   int
	Updated   int
	Unchanged int
}

// Total returns the number of lessons processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Unchanged
}

// Index stores lessons, replacing any previous row with the same id. Rows
// whose title and body are unchanged are left alone.
func (s *Store) Index(ctx context.Context, lessons []types.Lesson, w io.Writer) (IndexSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary IndexSummary
	for _, l := range lessons {
		var title, body string
		err := tx.QueryRowContext(ctx,
			`SELECT title, body FROM lessons WHERE id = ?`, l.ID,
		).Scan(&title, &body)
		switch {
		case err == nil && title == l.Title && body == l.Body:
			summary.Unchanged++
			continue
		case err == nil:
			summary.Updated++
			fmt.Fprintf(w, "updated %s\n", l.ID)
		case errors.Is(err, sql.ErrNoRows):
			summary.Indexed++
			fmt.Fprintf(w, "indexing %s\n", l.ID)
		default:
			return summary, fmt.Errorf("looking up %s: %w", l.ID, err)
		}

		extractedAt := ""
		if !l.ExtractedAt.IsZero() {
			extractedAt = l.ExtractedAt.UTC().Format(time.RFC3339Nano)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO lessons (id, title, body, source_url, extracted_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				title=excluded.title, body=excluded.body,
				source_url=excluded.source_url, extracted_at=excluded.extracted_at`,
			l.ID, l.Title, l.Body, l.SourceURL, extractedAt,
		)
		if err != nil {
			return summary, fmt.Errorf("upserting %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}
	fmt.Fprintf(w, "\nindexed: %d, updated: %d, unchanged: %d\n",
		summary.Indexed, summary.Updated, summary.Unchanged)
	return summary, nil
}

const selectColumns = `SELECT id, title, body, source_url, extracted_at FROM lessons`

// Get returns the lesson stored under id. The .ipynb suffix may be omitted.
func (s *Store) Get(ctx context.Context, id string) (types.Lesson, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+` WHERE id = ? OR id = ? ORDER BY id = ? DESC LIMIT 1`,
		id, id+".ipynb", id,
	)
	l, err := scanLesson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Lesson{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return l, err
}

// List returns every stored lesson ordered by id.
func (s *Store) List(ctx context.Context) ([]types.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing lessons: %w", err)
	}
	return collect(rows)
}

// Search returns lessons whose title or body contains query, ignoring ASCII
// case. Title matches rank first, then ids in order. maxResults <= 0 uses
// the store default.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]types.Lesson, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}
	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` WHERE title LIKE ? ESCAPE '\' OR body LIKE ? ESCAPE '\'
		 ORDER BY (title LIKE ? ESCAPE '\') DESC, id
		 LIMIT ?`,
		pattern, pattern, pattern, maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("searching lessons: %w", err)
	}
	return collect(rows)
}

// escapeLike escapes the LIKE wildcards in s.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLesson(row scanner) (types.Lesson, error) {
	var (
		l           types.Lesson
		sourceURL   sql.NullString
		extractedAt sql.NullString
	)
	if err := row.Scan(&l.ID, &l.Title, &l.Body, &sourceURL, &extractedAt); err != nil {
		return types.Lesson{}, err
	}
	l.SourceURL = sourceURL.String
	if extractedAt.String != "" {
		if t, err := time.Parse(time.RFC3339Nano, extractedAt.String); err == nil {
			l.ExtractedAt = t
		}
	}
	return l, nil
}

func collect(rows *sql.Rows) ([]types.Lesson, error) {
	defer rows.Close()
	var lessons []types.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lessons: %w", err)
	}
	return lessons, nil
}
