// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writers

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/texreports/arrestx/pkg/types"
)

// WriteXLSX writes a single-sheet workbook with one row per charge.
func WriteXLSX(records []types.Record, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Arrests"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	headers := []string{
		"Name", "Normalized", "Identifier", "Book In Date",
		"Address", "Booking No", "Description", "Source", "OCR",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for n, row := range chargeRows(records) {
		values := []any{
			row.Name, row.NameNormalized, row.Identifier, row.BookInDate,
			row.Address, row.BookingNo, row.Description, row.SourceFile,
			row.OCRUsed,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, n+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "B", 26); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "E", "E", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "G", "G", 48); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
