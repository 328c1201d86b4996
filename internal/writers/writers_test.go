// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texreports/arrestx/pkg/types"
)

func sampleRecords() []types.Record {
	return []types.Record{
		{
			Name:           "AGUILAR, MARIA",
			NameNormalized: "Maria Aguilar",
			Identifier:     "2345678",
			BookInDate:     "2025-10-15",
			Address:        []string{"123 MAIN ST", "ORLANDO, FL 32801"},
			Charges: []types.Charge{
				{BookingNo: "25-0123456", Description: "THEFT OF PROPERTY"},
				{BookingNo: "25-0123457", Description: "RESIST ARREST"},
			},
			SourceFile: "report.pdf",
		},
		{
			Name:           "DOE, JANE",
			NameNormalized: "Jane Doe",
			ParseWarnings:  []string{"no charges found"},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(sampleRecords(), true, &buf))

	var decoded []types.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Maria Aguilar", decoded[0].NameNormalized)
	assert.Len(t, decoded[0].Charges, 2)

	// Pretty output is indented.
	assert.Contains(t, buf.String(), "\n  ")
}

func TestWriteNDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNDJSON(sampleRecords(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first types.Record
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "AGUILAR, MARIA", first.Name)
}

func TestWriteNDJSONDenormalized(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNDJSONDenormalized(sampleRecords(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Two charges for the first record, one placeholder row for the second.
	require.Len(t, lines, 3)

	var row chargeRow
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &row))
	assert.Equal(t, "25-0123456", row.BookingNo)
	assert.Equal(t, "123 MAIN ST | ORLANDO, FL 32801", row.Address)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(sampleRecords(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 2 charges + 1 chargeless record

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "AGUILAR, MARIA", rows[1][0])
	assert.Equal(t, "25-0123456", rows[1][5])
	assert.Equal(t, "25-0123457", rows[2][5])
	assert.Equal(t, "DOE, JANE", rows[3][0])
	assert.Empty(t, rows[3][5])
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := types.OutputConfig{
		JSONPath:   filepath.Join(dir, "out", "arrests.json"),
		CSVPath:    filepath.Join(dir, "arrests.csv"),
		NDJSONPath: filepath.Join(dir, "arrests.ndjson"),
		XLSXPath:   filepath.Join(dir, "arrests.xlsx"),
		PrettyJSON: true,
	}

	var progress bytes.Buffer
	require.NoError(t, WriteFiles(sampleRecords(), cfg, &progress))

	for _, p := range []string{cfg.JSONPath, cfg.CSVPath, cfg.NDJSONPath, cfg.XLSXPath} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
	assert.Contains(t, progress.String(), "arrests.json (2 records)")
}

func TestWriteFiles_EmptyPathsDisabled(t *testing.T) {
	var progress bytes.Buffer
	require.NoError(t, WriteFiles(sampleRecords(), types.OutputConfig{}, &progress))
	assert.Empty(t, progress.String())
}
