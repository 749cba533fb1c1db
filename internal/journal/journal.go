// Package journal persists a record of every activation so unattended
// runs can be audited after the fact.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded activation.
type Entry struct {
	At          time.Time
	WindowTitle string
	ControlText string
	ControlType string
	Target      string
	Tier        string
	Rect        string
}

// Journal is an append-only SQLite activation log.
type Journal struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS activations (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	at           TEXT NOT NULL,
	window_title TEXT NOT NULL DEFAULT '',
	control_text TEXT NOT NULL DEFAULT '',
	control_type TEXT NOT NULL DEFAULT '',
	target       TEXT NOT NULL DEFAULT '',
	tier         TEXT NOT NULL DEFAULT '',
	rect         TEXT NOT NULL DEFAULT ''
);`

// Open opens (and if needed creates) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one activation.
func (j *Journal) Record(e Entry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.Exec(
		`INSERT INTO activations (at, window_title, control_text, control_type, target, tier, rect)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		at.Format(time.RFC3339Nano), e.WindowTitle, e.ControlText, e.ControlType, e.Target, e.Tier, e.Rect,
	)
	if err != nil {
		return fmt.Errorf("record activation: %w", err)
	}
	return nil
}

// Recent returns up to limit activations, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT at, window_title, control_text, control_type, target, tier, rect
		 FROM activations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&at, &e.WindowTitle, &e.ControlText, &e.ControlType, &e.Target, &e.Tier, &e.Rect); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.At = parsed
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
