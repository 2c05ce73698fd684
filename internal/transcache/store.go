package transcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"subburn/internal/transcript"
)

// Store persists word level transcripts keyed by media fingerprint so
// repeated runs against an unchanged file skip speech recognition.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the transcript cache database.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) applySchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS transcripts (
            fingerprint TEXT PRIMARY KEY,
            model TEXT NOT NULL,
            language TEXT NOT NULL,
            words_json TEXT NOT NULL,
            created_at TEXT NOT NULL
        )`)
	if err != nil {
		return fmt.Errorf("create transcripts table: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the cached words for the fingerprint, or ok=false on a miss.
// A cache entry only matches when model and language also agree.
func (s *Store) Get(ctx context.Context, fingerprint, model, lang string) ([]transcript.Word, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT words_json FROM transcripts WHERE fingerprint = ? AND model = ? AND language = ?`,
		fingerprint, model, lang)

	var wordsJSON string
	if err := row.Scan(&wordsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query transcript: %w", err)
	}

	var words []transcript.Word
	if err := json.Unmarshal([]byte(wordsJSON), &words); err != nil {
		return nil, false, fmt.Errorf("decode cached transcript: %w", err)
	}
	return words, true, nil
}

// Put stores the words for the fingerprint, replacing any prior entry.
func (s *Store) Put(ctx context.Context, fingerprint, model, lang string, words []transcript.Word) error {
	wordsJSON, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transcripts (fingerprint, model, language, words_json, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(fingerprint) DO UPDATE SET
            model = excluded.model,
            language = excluded.language,
            words_json = excluded.words_json,
            created_at = excluded.created_at`,
		fingerprint, model, lang, string(wordsJSON), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store transcript: %w", err)
	}
	return nil
}

// Delete removes the cached entry for the fingerprint if present.
func (s *Store) Delete(ctx context.Context, fingerprint string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transcripts WHERE fingerprint = ?`, fingerprint); err != nil {
		return fmt.Errorf("delete transcript: %w", err)
	}
	return nil
}
