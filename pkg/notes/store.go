// Package notes persists favorites and per-rule notes in a local SQLite
// database. Entries are keyed by (program, season, rule ID) so favorites
// from one season never leak into another.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/coolbeans/rulehub/pkg/manual"
)

// schema contains the DDL executed on every open. IF NOT EXISTS makes it
// safe to run on startup.
const schema = `
CREATE TABLE IF NOT EXISTS favorites (
    program    TEXT NOT NULL,
    season     TEXT NOT NULL,
    rule_id    TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (program, season, rule_id)
);

CREATE TABLE IF NOT EXISTS notes (
    program    TEXT NOT NULL,
    season     TEXT NOT NULL,
    rule_id    TEXT NOT NULL,
    body       TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (program, season, rule_id)
);
`

// Favorite is a starred rule.
type Favorite struct {
	Program   manual.Program `json:"program"`
	Season    string         `json:"season"`
	RuleID    string         `json:"rule_id"`
	CreatedAt time.Time      `json:"created_at"`
}

// Note is a free-text annotation attached to a rule.
type Note struct {
	Program   manual.Program `json:"program"`
	Season    string         `json:"season"`
	RuleID    string         `json:"rule_id"`
	Body      string         `json:"body"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store persists favorites and notes in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath, enables WAL mode and a
// busy timeout, and creates the schema.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("notes: open database: %w", err)
	}

	// SQLite supports a single writer; one connection avoids SQLITE_BUSY
	// contention between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("notes: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("notes: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("notes: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddFavorite stars a rule. Adding an existing favorite is a no-op.
func (s *Store) AddFavorite(ctx context.Context, program manual.Program, season, ruleID string) error {
	const q = `
		INSERT INTO favorites (program, season, rule_id)
		VALUES (?, ?, ?)
		ON CONFLICT(program, season, rule_id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, q, string(program), season, ruleID); err != nil {
		return fmt.Errorf("notes: add favorite %s: %w", ruleID, err)
	}
	return nil
}

// RemoveFavorite unstars a rule. Removing a missing favorite is a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, program manual.Program, season, ruleID string) error {
	const q = `DELETE FROM favorites WHERE program = ? AND season = ? AND rule_id = ?`
	if _, err := s.db.ExecContext(ctx, q, string(program), season, ruleID); err != nil {
		return fmt.Errorf("notes: remove favorite %s: %w", ruleID, err)
	}
	return nil
}

// IsFavorite reports whether a rule is starred.
func (s *Store) IsFavorite(ctx context.Context, program manual.Program, season, ruleID string) (bool, error) {
	const q = `SELECT 1 FROM favorites WHERE program = ? AND season = ? AND rule_id = ?`
	var one int
	err := s.db.QueryRowContext(ctx, q, string(program), season, ruleID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("notes: check favorite %s: %w", ruleID, err)
	}
	return true, nil
}

// ListFavorites returns all starred rules for a program and season in
// star order.
func (s *Store) ListFavorites(ctx context.Context, program manual.Program, season string) ([]Favorite, error) {
	const q = `
		SELECT program, season, rule_id, created_at
		FROM favorites
		WHERE program = ? AND season = ?
		ORDER BY created_at, rule_id`
	rows, err := s.db.QueryContext(ctx, q, string(program), season)
	if err != nil {
		return nil, fmt.Errorf("notes: list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var f Favorite
		var prog string
		if err := rows.Scan(&prog, &f.Season, &f.RuleID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("notes: scan favorite: %w", err)
		}
		f.Program = manual.Program(prog)
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("notes: list favorites: %w", err)
	}
	return favorites, nil
}

// SetNote writes the note for a rule, replacing any existing body.
func (s *Store) SetNote(ctx context.Context, program manual.Program, season, ruleID, body string) error {
	const q = `
		INSERT INTO notes (program, season, rule_id, body, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(program, season, rule_id)
		DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.ExecContext(ctx, q, string(program), season, ruleID, body); err != nil {
		return fmt.Errorf("notes: set note %s: %w", ruleID, err)
	}
	return nil
}

// GetNote returns the note body for a rule, or false when none exists.
func (s *Store) GetNote(ctx context.Context, program manual.Program, season, ruleID string) (string, bool, error) {
	const q = `SELECT body FROM notes WHERE program = ? AND season = ? AND rule_id = ?`
	var body string
	err := s.db.QueryRowContext(ctx, q, string(program), season, ruleID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("notes: get note %s: %w", ruleID, err)
	}
	return body, true, nil
}

// DeleteNote removes the note for a rule. Deleting a missing note is a
// no-op.
func (s *Store) DeleteNote(ctx context.Context, program manual.Program, season, ruleID string) error {
	const q = `DELETE FROM notes WHERE program = ? AND season = ? AND rule_id = ?`
	if _, err := s.db.ExecContext(ctx, q, string(program), season, ruleID); err != nil {
		return fmt.Errorf("notes: delete note %s: %w", ruleID, err)
	}
	return nil
}

// ListNotes returns all notes for a program and season, most recently
// updated first.
func (s *Store) ListNotes(ctx context.Context, program manual.Program, season string) ([]Note, error) {
	const q = `
		SELECT program, season, rule_id, body, updated_at
		FROM notes
		WHERE program = ? AND season = ?
		ORDER BY updated_at DESC, rule_id`
	rows, err := s.db.QueryContext(ctx, q, string(program), season)
	if err != nil {
		return nil, fmt.Errorf("notes: list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var prog string
		if err := rows.Scan(&prog, &n.Season, &n.RuleID, &n.Body, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("notes: scan note: %w", err)
		}
		n.Program = manual.Program(prog)
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("notes: list notes: %w", err)
	}
	return notes, nil
}
