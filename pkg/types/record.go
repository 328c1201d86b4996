// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across arrestx stages.
package types

// Charge is one booking charge as printed on the report. Charges belong to
// exactly one Record and keep their appearance order on the page.
type Charge struct {
	// BookingNo is the booking number: two digits, a dash, then 6-7 digits
	// (e.g. "25-0240350").
	BookingNo string `json:"booking_no" yaml:"booking_no"`

	// Description is the free-text offense description. Wrapped continuation
	// lines are merged with a single space.
	Description string `json:"description" yaml:"description"`
}

// Record is one extracted arrest record.
type Record struct {
	// Name is the raw name as printed: "LAST, FIRST MIDDLE".
	Name string `json:"name" yaml:"name"`

	// NameNormalized is the derived "First Middle Last" form.
	NameNormalized string `json:"name_normalized" yaml:"name_normalized"`

	// Address holds 0-3 free-text address lines in appearance order.
	Address []string `json:"address" yaml:"address"`

	// Identifier is the facility-assigned numeric person identifier
	// (5-8 digits). Empty when the report did not carry one; never fabricated.
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	// BookInDate is the admission date in ISO 8601 (YYYY-MM-DD), or empty.
	BookInDate string `json:"book_in_date,omitempty" yaml:"book_in_date,omitempty"`

	// Charges lists the booking charges in page order. May be empty.
	Charges []Charge `json:"charges" yaml:"charges"`

	// SourceFile is the report file the record was extracted from.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`

	// SourcePageSpan is [first, last] page index touched while building
	// this record.
	SourcePageSpan [2]int `json:"source_page_span" yaml:"source_page_span"`

	// ParseWarnings collects human-readable diagnostics accumulated during
	// extraction. Defects downgrade to warnings; extraction never aborts.
	ParseWarnings []string `json:"parse_warnings" yaml:"parse_warnings"`

	// OCRUsed reports whether OCR was needed to recover the source text.
	OCRUsed bool `json:"ocr_used" yaml:"ocr_used"`
}

// AddWarning appends a diagnostic to the record, dropping exact duplicates.
func (r *Record) AddWarning(msg string) {
	for _, w := range r.ParseWarnings {
		if w == msg {
			return
		}
	}
	r.ParseWarnings = append(r.ParseWarnings, msg)
}

// Page is one page of already-extracted report text: whitespace-normalized
// lines in visual reading order, tagged with the 1-based page number.
type Page struct {
	Number int      `json:"number" yaml:"number"`
	Lines  []string `json:"lines" yaml:"lines"`
}
