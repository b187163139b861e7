// Package store is a sqlite-backed translation memory. Texts already
// translated in earlier runs are reused instead of being sent to the
// completion service again.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Stats summarizes the memory's contents.
type Stats struct {
	Entries   int
	Languages []string
	Reuses    int
}

// Open opens (or creates) the translation memory at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open translation memory: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate translation memory: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		usage_count INTEGER DEFAULT 1,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_text, source_lang, target_lang)
	);

	CREATE INDEX IF NOT EXISTS idx_memory_lookup
		ON translation_memory(source_text, source_lang, target_lang);
	`

	_, err := s.db.Exec(schema)
	return err
}

// normalize canonicalizes a lookup key: NFC so composed and decomposed
// forms of the same text hit the same row, trimmed of surrounding space.
func normalize(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// Lookup returns the remembered translation for source, if any, and bumps
// its usage counter on a hit.
func (s *Store) Lookup(ctx context.Context, source, sourceLang, targetLang string) (string, bool, error) {
	var translated string
	err := s.db.QueryRowContext(ctx, `
		SELECT translated_text FROM translation_memory
		WHERE source_text = ? AND source_lang = ? AND target_lang = ?`,
		normalize(source), sourceLang, targetLang).Scan(&translated)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("translation memory lookup: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE translation_memory
		SET usage_count = usage_count + 1, last_used = CURRENT_TIMESTAMP
		WHERE source_text = ? AND source_lang = ? AND target_lang = ?`,
		normalize(source), sourceLang, targetLang)
	if err != nil {
		return "", false, fmt.Errorf("translation memory update: %w", err)
	}
	return translated, true, nil
}

// Save remembers a validated translation, replacing any previous one for
// the same source text and language pair.
func (s *Store) Save(ctx context.Context, source, sourceLang, targetLang, translated string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO translation_memory (id, source_text, source_lang, target_lang, translated_text)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source_text, source_lang, target_lang)
		DO UPDATE SET translated_text = excluded.translated_text, last_used = CURRENT_TIMESTAMP`,
		uuid.NewString(), normalize(source), sourceLang, targetLang, translated)
	if err != nil {
		return fmt.Errorf("translation memory save: %w", err)
	}
	return nil
}

// GetStats reports the size and reuse of the memory.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(usage_count - 1), 0) FROM translation_memory`).
		Scan(&stats.Entries, &stats.Reuses)
	if err != nil {
		return Stats{}, fmt.Errorf("translation memory stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT target_lang FROM translation_memory ORDER BY target_lang`)
	if err != nil {
		return Stats{}, fmt.Errorf("translation memory stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return Stats{}, err
		}
		stats.Languages = append(stats.Languages, lang)
	}
	return stats, rows.Err()
}

// Clear drops every remembered translation.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory`)
	if err != nil {
		return fmt.Errorf("translation memory clear: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
