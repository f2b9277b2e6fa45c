// Package storage persists the scan history in a local SQLite database.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Scan is one recorded classification of a scanned product.
type Scan struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name,omitempty"`
	Diet       string    `json:"diet"`
	Verdict    string    `json:"verdict"`
	Confidence int       `json:"confidence"`
	ScannedAt  time.Time `json:"scanned_at"`
}

// HistoryStore is a SQLite-backed scan history.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewHistoryStore(dbPath string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &HistoryStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS scans (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        code TEXT NOT NULL,
        name TEXT NOT NULL DEFAULT '',
        diet TEXT NOT NULL,
        verdict TEXT NOT NULL,
        confidence INTEGER NOT NULL,
        scanned_at DATETIME NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_scans_scanned_at ON scans(scanned_at);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveScan records one classification. A zero ScannedAt is set to now, and
// the assigned row id is written back into the scan.
func (s *HistoryStore) SaveScan(scan *Scan) error {
	if scan.ScannedAt.IsZero() {
		scan.ScannedAt = time.Now().UTC()
	}

	result, err := s.db.Exec(`
        INSERT INTO scans (code, name, diet, verdict, confidence, scanned_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		scan.Code, scan.Name, scan.Diet, scan.Verdict, scan.Confidence,
		scan.ScannedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read scan id: %w", err)
	}
	scan.ID = id
	return nil
}

// ListScans returns the most recent scans, newest first.
func (s *HistoryStore) ListScans(limit int) ([]Scan, error) {
	rows, err := s.db.Query(`
        SELECT id, code, name, diet, verdict, confidence, scanned_at
        FROM scans
        ORDER BY scanned_at DESC, id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var scan Scan
		var scannedAt string
		if err := rows.Scan(&scan.ID, &scan.Code, &scan.Name, &scan.Diet,
			&scan.Verdict, &scan.Confidence, &scannedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if scan.ScannedAt, err = time.Parse(time.RFC3339, scannedAt); err != nil {
			return nil, fmt.Errorf("failed to parse scanned_at: %w", err)
		}
		scans = append(scans, scan)
	}

	return scans, rows.Err()
}
