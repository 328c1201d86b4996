// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const defaultSearchLimit = 50

// Match is one charge-level hit from a name search.
type Match struct {
	Name           string `json:"name"`
	NameNormalized string `json:"name_normalized"`
	Identifier     string `json:"identifier"`
	BookInDate     string `json:"book_in_date"`
	SourceFile     string `json:"source_file"`
	BookingNo      string `json:"booking_no,omitempty"`
	Description    string `json:"description,omitempty"`
}

// SearchName looks a person up across every ingested report. The query
// matches the printed or normalized name (and charge text) via the FTS
// index; each matching record yields one Match per charge, or a single
// chargeless Match. Results are relevance-ranked.
func (s *Store) SearchName(ctx context.Context, query string, limit int) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.name, r.name_normalized, r.identifier, r.book_in_date,
			r.source_file, c.booking_no, c.description
		 FROM records_fts
		 JOIN records r ON r.rowid = records_fts.rowid
		 LEFT JOIN charges c ON c.record_id = r.rowid
		 WHERE records_fts MATCH ?
		 ORDER BY records_fts.rank, r.rowid, c.id
		 LIMIT ?`,
		ftsQuote(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			m          Match
			identifier sql.NullString
			date       sql.NullString
			booking    sql.NullString
			desc       sql.NullString
		)
		if err := rows.Scan(&m.Name, &m.NameNormalized, &identifier, &date,
			&m.SourceFile, &booking, &desc); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		m.Identifier = identifier.String
		m.BookInDate = date.String
		m.BookingNo = booking.String
		m.Description = desc.String
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ftsQuote turns free text into a quoted FTS5 phrase per token, so names
// with commas or apostrophes do not reach the query parser raw.
func ftsQuote(query string) string {
	fields := strings.Fields(query)
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " ")
}
