// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportRecord is the flattened shape written by the export commands.
type ExportRecord struct {
	Name           string         `json:"name" yaml:"name"`
	NameNormalized string         `json:"name_normalized" yaml:"name_normalized"`
	Identifier     string         `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	BookInDate     string         `json:"book_in_date,omitempty" yaml:"book_in_date,omitempty"`
	Address        []string       `json:"address,omitempty" yaml:"address,omitempty"`
	SourceFile     string         `json:"source_file" yaml:"source_file"`
	Charges        []ExportCharge `json:"charges" yaml:"charges"`
}

// ExportCharge is one charge row in an export.
type ExportCharge struct {
	BookingNo   string `json:"booking_no" yaml:"booking_no"`
	Description string `json:"description" yaml:"description"`
}

// ExportYAML writes every stored record, with its charges, as a YAML
// document to w. Records come out in ingestion order.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rowid, name, name_normalized, identifier, book_in_date, address, source_file
		 FROM records ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var entries []ExportRecord
	var ids []int64
	for rows.Next() {
		var (
			e        ExportRecord
			id       int64
			addrJSON string
		)
		if err := rows.Scan(&id, &e.Name, &e.NameNormalized, &e.Identifier,
			&e.BookInDate, &addrJSON, &e.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		json.Unmarshal([]byte(addrJSON), &e.Address)
		e.Charges = []ExportCharge{}
		entries = append(entries, e)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		charges, err := s.chargesFor(ctx, id)
		if err != nil {
			return nil, err
		}
		entries[i].Charges = charges
	}
	return entries, nil
}

func (s *Store) chargesFor(ctx context.Context, recordID int64) ([]ExportCharge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT booking_no, description FROM charges WHERE record_id = ? ORDER BY id`, recordID)
	if err != nil {
		return nil, fmt.Errorf("querying charges: %w", err)
	}
	defer rows.Close()

	charges := []ExportCharge{}
	for rows.Next() {
		var c ExportCharge
		if err := rows.Scan(&c.BookingNo, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning charge: %w", err)
		}
		charges = append(charges, c)
	}
	return charges, rows.Err()
}
