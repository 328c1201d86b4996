// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writers serializes extracted records to the supported output
// formats. Formats that flatten to rows (CSV, XLSX, denormalized NDJSON)
// emit one row per charge; the record-shaped formats keep the nested form.
package writers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/texreports/arrestx/pkg/types"
)

// addressSeparator joins address lines into one CSV/XLSX cell.
const addressSeparator = " | "

// WriteJSON writes the records as one JSON array.
func WriteJSON(records []types.Record, pretty bool, w io.Writer) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(records)
}

// WriteNDJSON writes one JSON object per record, newline-delimited.
func WriteNDJSON(records []types.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// chargeRow is the flattened row shape shared by the denormalized formats.
type chargeRow struct {
	Name           string `json:"name"`
	NameNormalized string `json:"name_normalized"`
	Identifier     string `json:"identifier"`
	BookInDate     string `json:"book_in_date"`
	Address        string `json:"address"`
	BookingNo      string `json:"booking_no"`
	Description    string `json:"description"`
	SourceFile     string `json:"source_file,omitempty"`
	OCRUsed        bool   `json:"ocr_used,omitempty"`
}

// chargeRows flattens records to one row per charge. A record without
// charges still yields one row so it is not silently lost.
func chargeRows(records []types.Record) []chargeRow {
	var rows []chargeRow
	for _, r := range records {
		base := chargeRow{
			Name:           r.Name,
			NameNormalized: r.NameNormalized,
			Identifier:     r.Identifier,
			BookInDate:     r.BookInDate,
			Address:        strings.Join(r.Address, addressSeparator),
			SourceFile:     r.SourceFile,
			OCRUsed:        r.OCRUsed,
		}
		if len(r.Charges) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, c := range r.Charges {
			row := base
			row.BookingNo = c.BookingNo
			row.Description = c.Description
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteNDJSONDenormalized writes one JSON object per charge.
func WriteNDJSONDenormalized(records []types.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, row := range chargeRows(records) {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

var csvHeader = []string{
	"name", "name_normalized", "identifier", "book_in_date",
	"address", "booking_no", "description", "source_file", "ocr_used",
}

// WriteCSV writes a header row plus one row per charge.
func WriteCSV(records []types.Record, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range chargeRows(records) {
		rec := []string{
			row.Name, row.NameNormalized, row.Identifier, row.BookInDate,
			row.Address, row.BookingNo, row.Description, row.SourceFile,
			strconv.FormatBool(row.OCRUsed),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFiles writes every output format with a configured path, applying
// the configured redactions first. Progress lines go to w.
func WriteFiles(records []types.Record, cfg types.OutputConfig, w io.Writer) error {
	records = Redact(records, cfg)

	type output struct {
		path  string
		write func(io.Writer) error
	}
	outputs := []output{
		{cfg.JSONPath, func(f io.Writer) error { return WriteJSON(records, cfg.PrettyJSON, f) }},
		{cfg.CSVPath, func(f io.Writer) error { return WriteCSV(records, f) }},
		{cfg.NDJSONPath, func(f io.Writer) error { return WriteNDJSON(records, f) }},
		{cfg.XLSXPath, func(f io.Writer) error { return WriteXLSX(records, f) }},
	}

	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := writeFile(out.path, out.write); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s (%d records)\n", out.path, len(records))
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
