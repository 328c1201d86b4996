// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extracted records in a local SQLite database and
// serves name searches over them. One database accumulates every ingested
// report; re-ingesting a report replaces its rows.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/texreports/arrestx/pkg/types"
)

// Store manages the record database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			name_normalized TEXT NOT NULL,
			identifier TEXT,
			book_in_date TEXT,
			address TEXT,
			charge_text TEXT,
			source_file TEXT NOT NULL,
			page_first INTEGER,
			page_last INTEGER,
			ocr_used INTEGER NOT NULL DEFAULT 0,
			warnings TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS charges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			record_id INTEGER NOT NULL REFERENCES records(rowid) ON DELETE CASCADE,
			booking_no TEXT NOT NULL,
			description TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_source ON records(source_file)`,
		`CREATE INDEX IF NOT EXISTS idx_charges_record ON charges(record_id)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			source_file TEXT PRIMARY KEY,
			report_date TEXT,
			ingested_at TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over names and charge text, with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(
				name, name_normalized, charge_text,
				content=records, content_rowid=rowid)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, name, name_normalized, charge_text)
				VALUES (new.rowid, new.name, new.name_normalized, new.charge_text);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, name, name_normalized, charge_text)
				VALUES('delete', old.rowid, old.name, old.name_normalized, old.charge_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// IngestSummary holds counts from one report ingestion.
type IngestSummary struct {
	Inserted int
	Replaced bool
}

// Ingest stores a report's records, replacing any rows previously ingested
// from the same source file. reportDate may be empty when page 1 carried no
// date line.
func (s *Store) Ingest(ctx context.Context, sourceFile, reportDate string, records []types.Record, w io.Writer) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary IngestSummary

	var prior int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM ingest_status WHERE source_file = ?`, sourceFile,
	).Scan(&prior)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("checking ingest status: %w", err)
	}
	if prior > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM records WHERE source_file = ?`, sourceFile); err != nil {
			return IngestSummary{}, fmt.Errorf("deleting old records: %w", err)
		}
		summary.Replaced = true
	}

	recStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records
			(name, name_normalized, identifier, book_in_date, address, charge_text,
			 source_file, page_first, page_last, ocr_used, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing record insert: %w", err)
	}
	defer recStmt.Close()

	chargeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO charges (record_id, booking_no, description) VALUES (?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing charge insert: %w", err)
	}
	defer chargeStmt.Close()

	for _, r := range records {
		addrJSON, _ := json.Marshal(r.Address)
		warnJSON, _ := json.Marshal(r.ParseWarnings)

		res, err := recStmt.ExecContext(ctx,
			r.Name, r.NameNormalized, r.Identifier, r.BookInDate,
			string(addrJSON), chargeText(r), sourceFile,
			r.SourcePageSpan[0], r.SourcePageSpan[1], r.OCRUsed, string(warnJSON))
		if err != nil {
			return IngestSummary{}, fmt.Errorf("inserting record %q: %w", r.Name, err)
		}
		recordID, err := res.LastInsertId()
		if err != nil {
			return IngestSummary{}, fmt.Errorf("record id for %q: %w", r.Name, err)
		}

		for _, c := range r.Charges {
			if _, err := chargeStmt.ExecContext(ctx, recordID, c.BookingNo, c.Description); err != nil {
				return IngestSummary{}, fmt.Errorf("inserting charge %s: %w", c.BookingNo, err)
			}
		}
		summary.Inserted++
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ingest_status (source_file, report_date, ingested_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(source_file) DO UPDATE SET
			report_date=excluded.report_date, ingested_at=excluded.ingested_at`,
		sourceFile, reportDate, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return IngestSummary{}, fmt.Errorf("updating ingest status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, err
	}

	if summary.Replaced {
		fmt.Fprintf(w, "re-ingested %s (%d records)\n", sourceFile, summary.Inserted)
	} else {
		fmt.Fprintf(w, "ingested %s (%d records)\n", sourceFile, summary.Inserted)
	}
	return summary, nil
}

// chargeText concatenates charge descriptions for full-text indexing.
func chargeText(r types.Record) string {
	var b []byte
	for i, c := range r.Charges {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, c.Description...)
	}
	return string(b)
}
