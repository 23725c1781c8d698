// Package audit persists conversion outcomes so every segmentation and
// validation decision stays reviewable after the fact. Entries are append
// only; the store never updates or deletes past conversions.
package audit

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tsawler/restitch/model"
)

// Schema for the conversions table. Applied by Open.
const Schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	log_id TEXT NOT NULL UNIQUE,
	source_name TEXT NOT NULL,
	source_hash TEXT NOT NULL,
	profile_id TEXT,
	profile_confidence REAL,
	status TEXT NOT NULL,
	tables_validated INTEGER NOT NULL,
	tables_passed INTEGER NOT NULL,
	tables_with_warnings INTEGER NOT NULL,
	tables_failed INTEGER NOT NULL,
	report TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_ts ON conversions(timestamp);
CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source_name);
`

// Entry is one recorded conversion.
type Entry struct {
	LogID              string
	SourceName         string
	SourceHash         string
	ProfileID          string
	ProfileConfidence  float64
	Status             string
	TablesValidated    int
	TablesPassed       int
	TablesWithWarnings int
	TablesFailed       int
	ReportJSON         string
	Timestamp          time.Time
}

// Store persists conversion audit entries to a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying audit schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores the outcome of one conversion and returns its log id.
func (s *Store) Record(meta model.DocumentMetadata, report *model.Report) (string, error) {
	now := time.Now()
	logID := newLogID(meta.SourceName, now)

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO conversions
		(log_id, source_name, source_hash, profile_id, profile_confidence,
		 status, tables_validated, tables_passed, tables_with_warnings, tables_failed,
		 report, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		logID, meta.SourceName, meta.SourceHash, meta.ProfileID, meta.ProfileConfidence,
		report.OverallStatus.String(), report.TablesValidated, report.TablesPassed,
		report.TablesWithWarnings, report.TablesFailed,
		string(reportJSON), now.Unix())
	if err != nil {
		return "", fmt.Errorf("recording conversion: %w", err)
	}

	return logID, nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(`SELECT log_id, source_name, source_hash, profile_id,
		profile_confidence, status, tables_validated, tables_passed,
		tables_with_warnings, tables_failed, report, timestamp
		FROM conversions ORDER BY timestamp DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.LogID, &e.SourceName, &e.SourceHash, &e.ProfileID,
			&e.ProfileConfidence, &e.Status, &e.TablesValidated, &e.TablesPassed,
			&e.TablesWithWarnings, &e.TablesFailed, &e.ReportJSON, &ts); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// newLogID derives a short stable id from the source name and record time.
func newLogID(source string, ts time.Time) string {
	sum := sha256.Sum256([]byte(source + ts.Format(time.RFC3339Nano)))
	return ts.Format("20060102_150405") + "_" + hex.EncodeToString(sum[:6])
}
