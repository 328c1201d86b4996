// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texreports/arrestx/pkg/types"
)

func testParsingConfig() types.ParsingConfig {
	return types.ParsingConfig{
		NameRegexStrict:    true,
		AllowTwoLineIDDate: true,
		StallCeiling:       500,
	}
}

func onePage(lines ...string) []types.Page {
	return []types.Page{{Number: 1, Lines: lines}}
}

func TestParse_OneLineNameIDDate(t *testing.T) {
	records := Parse(onePage(
		"AGUILAR, MARIA 2345678 10/15/2025",
		"123 MAIN ST",
		"ORLANDO, FL 32801",
		"25-0123456 THEFT OF PROPERTY",
		"25-0123457 RESIST ARREST",
	), testParsingConfig())

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "AGUILAR, MARIA", r.Name)
	assert.Equal(t, "Maria Aguilar", r.NameNormalized)
	assert.Equal(t, "2345678", r.Identifier)
	assert.Equal(t, "2025-10-15", r.BookInDate)
	assert.Equal(t, []string{"123 MAIN ST", "ORLANDO, FL 32801"}, r.Address)
	require.Len(t, r.Charges, 2)
	assert.Equal(t, types.Charge{BookingNo: "25-0123456", Description: "THEFT OF PROPERTY"}, r.Charges[0])
	assert.Equal(t, types.Charge{BookingNo: "25-0123457", Description: "RESIST ARREST"}, r.Charges[1])
	assert.Empty(t, r.ParseWarnings)
}

func TestParse_IDDateAfterAddress(t *testing.T) {
	records := Parse(onePage(
		"ADAMS, JOHN Q",
		"456 OAK AVE APT 2",
		"TAMPA, FL 33601",
		"1234567 10/15/2025",
		"25-0111111 DUI",
	), testParsingConfig())

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "John Q Adams", r.NameNormalized)
	assert.Equal(t, "1234567", r.Identifier)
	assert.Equal(t, "2025-10-15", r.BookInDate)
	assert.Equal(t, []string{"456 OAK AVE APT 2", "TAMPA, FL 33601"}, r.Address)
	require.Len(t, r.Charges, 1)
	assert.Empty(t, r.ParseWarnings)
}

func TestParse_AddressLinesAfterIDDatePair(t *testing.T) {
	records := Parse(onePage(
		"ADAMS, NINA",
		"1234567 10/15/2025",
		"123 MAIN ST",
		"ORLANDO, FL 32801",
		"25-0240350 NO VALID DL",
	), testParsingConfig())

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "ADAMS, NINA", r.Name)
	assert.Equal(t, "1234567", r.Identifier)
	assert.Equal(t, "2025-10-15", r.BookInDate)
	assert.Equal(t, []string{"123 MAIN ST", "ORLANDO, FL 32801"}, r.Address)
	require.Len(t, r.Charges, 1)
	assert.Equal(t, types.Charge{BookingNo: "25-0240350", Description: "NO VALID DL"}, r.Charges[0])
	assert.Empty(t, r.ParseWarnings)
}

func TestParse_AddressShapeBetweenCharges(t *testing.T) {
	records := Parse(onePage(
		"CRUZ, ANA 2222222 10/11/2025",
		"12 LAKE DR",
		"25-0333333 BURGLARY",
		"ORLANDO, FL 32801",
		"25-0444444 TRESPASS",
	), testParsingConfig())

	// The city/state line carries a name-shaped "ORLANDO, FL" token but must
	// stay with the open record's address, not start a new one.
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "Ana Cruz", r.NameNormalized)
	assert.Equal(t, []string{"12 LAKE DR", "ORLANDO, FL 32801"}, r.Address)
	require.Len(t, r.Charges, 2)
	assert.Equal(t, "25-0333333", r.Charges[0].BookingNo)
	assert.Equal(t, "25-0444444", r.Charges[1].BookingNo)
	assert.Empty(t, r.ParseWarnings)
}

func TestParse_NumericColumnsAboveName(t *testing.T) {
	records := Parse(onePage(
		"1234567 10/15/2025",
		"BROWN, TIM",
		"55 HILL ST",
		"25-0666666 DWI",
	), testParsingConfig())

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "Tim Brown", r.NameNormalized)
	assert.Equal(t, "1234567", r.Identifier)
	assert.Equal(t, "2025-10-15", r.BookInDate)
	assert.Empty(t, r.ParseWarnings)
}

func TestParse_TwoLineIdentifierAndDate(t *testing.T) {
	records := Parse(onePage(
		"BAKER, ANN",
		"789 PINE RD",
		"1234568",
		"10/16/2025",
		"25-0222222 ASSAULT",
	), testParsingConfig())

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "1234568", r.Identifier)
	assert.Equal(t, "2025-10-16", r.BookInDate)
	assert.Equal(t, []string{"789 PINE RD"}, r.Address)
	require.Len(t, r.Charges, 1)
	assert.Empty(t, r.ParseWarnings)
}

func TestParse_TwoLineLayoutDisabled(t *testing.T) {
	cfg := testParsingConfig()
	cfg.AllowTwoLineIDDate = false

	records := Parse(onePage(
		"BAKER, ANN",
		"789 PINE RD",
		"1234568",
		"10/16/2025",
		"25-0222222 ASSAULT",
	), cfg)

	require.Len(t, records, 1)
	r := records[0]
	// The lone tokens fall into the address block instead.
	assert.Empty(t, r.Identifier)
	assert.Empty(t, r.BookInDate)
	assert.Equal(t, []string{"789 PINE RD", "1234568", "10/16/2025"}, r.Address)
	assert.Contains(t, r.ParseWarnings, "missing identifier")
	assert.Contains(t, r.ParseWarnings, "missing book-in date")
}

func TestParse_EmbeddedNameSplitsRecords(t *testing.T) {
	records := Parse(onePage(
		"SMITH, BOB 1111111 10/12/2025",
		"100 ELM ST",
		"25-0111111 SPEEDING",
		"25-0123456 NO VALID DL WYATT, JOSH 9876543 10/12/2025",
		"200 OAK ST",
		"25-0999999 THEFT",
	), testParsingConfig())

	require.Len(t, records, 2)

	smith := records[0]
	assert.Equal(t, "Bob Smith", smith.NameNormalized)
	require.Len(t, smith.Charges, 2)
	assert.Equal(t, types.Charge{BookingNo: "25-0123456", Description: "NO VALID DL"}, smith.Charges[1])
	assert.Empty(t, smith.ParseWarnings)

	wyatt := records[1]
	assert.Equal(t, "WYATT, JOSH", wyatt.Name)
	assert.Equal(t, "Josh Wyatt", wyatt.NameNormalized)
	assert.Equal(t, "9876543", wyatt.Identifier)
	assert.Equal(t, "2025-10-12", wyatt.BookInDate)
	assert.Equal(t, []string{"200 OAK ST"}, wyatt.Address)
	require.Len(t, wyatt.Charges, 1)
	assert.Equal(t, types.Charge{BookingNo: "25-0999999", Description: "THEFT"}, wyatt.Charges[0])
	assert.Empty(t, wyatt.ParseWarnings)
}

func TestParse_EmbeddedNameInFirstChargeLine(t *testing.T) {
	records := Parse(onePage(
		"SMITH, BOB 1111111 10/12/2025",
		"25-0123456 NO VALID DL WYATT, JOSH 9876543 10/12/2025",
	), testParsingConfig())

	require.Len(t, records, 2)
	smith := records[0]
	require.Len(t, smith.Charges, 1)
	assert.Equal(t, types.Charge{BookingNo: "25-0123456", Description: "NO VALID DL"}, smith.Charges[0])

	wyatt := records[1]
	assert.Equal(t, "WYATT, JOSH", wyatt.Name)
	assert.Equal(t, "9876543", wyatt.Identifier)
	assert.Equal(t, "2025-10-12", wyatt.BookInDate)
}

func TestParse_MalformedBookingDropped(t *testing.T) {
	records := Parse(onePage(
		"CRUZ, ANA 2222222 10/11/2025",
		"12 LAKE DR",
		"25-0333333 BURGLARY",
		"25-12 BAD",
		"25-0444444 TRESPASS",
	), testParsingConfig())

	require.Len(t, records, 1)
	r := records[0]
	require.Len(t, r.Charges, 2)
	assert.Equal(t, "25-0333333", r.Charges[0].BookingNo)
	assert.Equal(t, "25-0444444", r.Charges[1].BookingNo)
	assert.Equal(t, []string{`dropped malformed booking line "25-12 BAD"`}, r.ParseWarnings)
}

func TestParse_IncompleteRecordWarned(t *testing.T) {
	records := Parse(onePage(
		"DOE, JANE",
		"NEXT, PERSON 1234567 10/15/2025",
	), testParsingConfig())

	require.Len(t, records, 2)

	doe := records[0]
	assert.Contains(t, doe.ParseWarnings, "incomplete record: new name before identifier/date")
	assert.Contains(t, doe.ParseWarnings, "missing identifier")
	assert.Contains(t, doe.ParseWarnings, "missing book-in date")
	assert.Contains(t, doe.ParseWarnings, "no charges found")
	assert.Contains(t, doe.ParseWarnings, "no address captured")

	next := records[1]
	assert.Equal(t, "1234567", next.Identifier)
	assert.Equal(t, "2025-10-15", next.BookInDate)
}

func TestParse_TolerantNameWarns(t *testing.T) {
	cfg := testParsingConfig()
	cfg.NameRegexStrict = false

	records := Parse(onePage(
		"Garcia, Luis",
		"1111111 10/15/2025",
		"25-0777777 THEFT",
	), cfg)

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "Luis Garcia", r.NameNormalized)
	assert.Contains(t, r.ParseWarnings, "name matched by tolerant pattern: Garcia, Luis")
}

func TestParse_StrictSkipsMixedCaseName(t *testing.T) {
	records := Parse(onePage(
		"Garcia, Luis",
		"1111111 10/15/2025",
		"25-0777777 THEFT",
	), testParsingConfig())

	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestParse_EmptyInput(t *testing.T) {
	records := Parse(nil, testParsingConfig())
	require.NotNil(t, records)
	assert.Empty(t, records)

	records = Parse([]types.Page{{Number: 1, Lines: []string{"", "   "}}}, testParsingConfig())
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestParse_NoiseTerminates(t *testing.T) {
	var lines []string
	for i := 0; i < 500; i++ {
		lines = append(lines, fmt.Sprintf("### %d ???", i))
	}
	records := Parse(onePage(lines...), testParsingConfig())
	assert.Empty(t, records)

	// A record buried in noise still comes out.
	lines = append(lines,
		"HILL, SAM 3333333 10/10/2025",
		"25-0123450 THEFT",
	)
	records = Parse(onePage(lines...), testParsingConfig())
	require.Len(t, records, 1)
	assert.Equal(t, "Sam Hill", records[0].NameNormalized)
}

func TestParse_OneRecordPerName(t *testing.T) {
	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines,
			fmt.Sprintf("PERSON%c, TEST %d 10/15/2025", 'A'+i, 1000000+i),
			fmt.Sprintf("25-0%06d THEFT", 100000+i),
		)
	}
	records := Parse(onePage(lines...), testParsingConfig())
	assert.Len(t, records, 5)
}

func TestParse_PageSpan(t *testing.T) {
	pages := []types.Page{
		{Number: 1, Lines: []string{"AGUILAR, MARIA 2345678 10/15/2025", "12 OAK ST"}},
		{Number: 2, Lines: []string{"25-0888888 THEFT"}},
	}
	records := Parse(pages, testParsingConfig())
	require.Len(t, records, 1)
	assert.Equal(t, [2]int{1, 2}, records[0].SourcePageSpan)
}
