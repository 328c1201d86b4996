// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parser turns page-tagged report text lines into arrest records.
// The entry point is Parse; everything else supports its line classifier,
// state machine, and post-processing passes.
package parser

import (
	"regexp"
	"strings"
)

// Recognizer regexes. Strict variants require upper-case tokens and are
// always tried first; tolerant variants accept mixed case and feed a
// lower-confidence path.
var (
	nameStrict   = regexp.MustCompile(`^(?P<last>[A-Z][A-Z .'-]+),\s+(?P<firstmid>[A-Z][A-Z .'-]+)$`)
	nameTolerant = regexp.MustCompile(`^(?P<last>[A-Za-z][A-Za-z .'-]+),\s+(?P<firstmid>[A-Za-z][A-Za-z .'-]+)$`)

	// Embedded-name variants match anywhere in a line. Single-token last and
	// first names only; the caller must verify the match starts at the line
	// start or after whitespace.
	nameEmbeddedStrict   = regexp.MustCompile(`\b(?P<last>[A-Z]+),\s+(?P<firstmid>[A-Z]+)`)
	nameEmbeddedTolerant = regexp.MustCompile(`\b(?P<last>[A-Za-z]+),\s+(?P<firstmid>[A-Za-z]+)`)

	nameIDDateStrict   = regexp.MustCompile(`^(?P<last>[A-Z][A-Z .'-]+),\s+(?P<firstmid>[A-Z][A-Z .'-]+)\s+(?P<id>\d{5,8})\s+(?P<date>\d{1,2}/\d{1,2}/\d{4})$`)
	nameIDDateTolerant = regexp.MustCompile(`^(?P<last>[A-Za-z][A-Za-z .'-]+),\s+(?P<firstmid>[A-Za-z][A-Za-z .'-]+)\s+(?P<id>\d{5,8})\s+(?P<date>\d{1,2}/\d{1,2}/\d{4})$`)

	// Identifier + optional CID + date, anywhere in a line.
	idDateRe = regexp.MustCompile(`(?P<id>\b\d{5,8}\b)(?:\s+\b\d{4,10}\b)?\s+(?P<date>\b\d{1,2}/\d{1,2}/\d{4}\b)`)

	identifierOnlyRe = regexp.MustCompile(`^\s*(?P<id>\d{5,8})\s*$`)
	dateOnlyRe       = regexp.MustCompile(`^\s*(?P<date>\d{1,2}/\d{1,2}/\d{4})\s*$`)

	// Booking number: two digits, dash, 6-7 digits.
	bookingLineRe = regexp.MustCompile(`^(?P<booking>\d{2}-\d{6,7})(?:\s+(?P<desc>.*))?$`)
	bookingAnyRe  = regexp.MustCompile(`\b(?P<booking>\d{2}-\d{6,7})\b(?:\s+(?P<desc>.*))?$`)

	// bookingShapedRe catches lines that look like a booking line but carry
	// the wrong digit widths ("25-12 BAD"). Those are dropped with a warning
	// rather than parsed or treated as continuation text.
	bookingShapedRe = regexp.MustCompile(`^\d{2}-\d+\b`)

	cityStateZipRe  = regexp.MustCompile(`^[A-Za-z0-9\s.,#'-]+\s+[A-Z]{2}\s+\d{5}(-\d{4})?$`)
	streetAddressRe = regexp.MustCompile(`^[0-9]+\s+[A-Za-z0-9\s.,#'-]+$`)
	aptRe           = regexp.MustCompile(`(?i)^(APT|UNIT|#|APT#)\s*[A-Z0-9-]+$`)

	// Address shapes inside free text, used by the reclassifier: a trailing
	// street or city/state/zip fragment glued onto a charge description.
	addressSuffixRe = regexp.MustCompile(`\b\d+\s+[A-Za-z0-9 .,#'-]+?\s+[A-Z]{2}\s+\d{5}(-\d{4})?$`)
)

// Patterns is the immutable pattern library for one scan. Built once per
// Parse call and passed through; it holds no mutable state.
type Patterns struct {
	strictOnly bool
}

// NewPatterns selects strict-only or strict+tolerant matching. With
// strictOnly false, tolerant variants are tried after strict fails and a
// successful tolerant match is reported so the caller can warn.
func NewPatterns(strictOnly bool) Patterns {
	return Patterns{strictOnly: strictOnly}
}

// nameMatch is a recognized "LAST, FIRST MIDDLE" signature.
type nameMatch struct {
	raw      string // matched text as printed
	last     string
	firstMid string
	start    int  // offset of the match within the line
	end      int  // offset just past the match
	tolerant bool // matched only by the mixed-case variant
}

// idDateMatch is a recognized identifier+date pair.
type idDateMatch struct {
	id    string
	date  string // as printed, M/D/YYYY
	start int
	end   int
}

// bookingMatch is a recognized booking line.
type bookingMatch struct {
	bookingNo string
	desc      string
	start     int
}

// matchName recognizes a whole line shaped "LAST, FIRST MIDDLE".
func (p Patterns) matchName(line string) (nameMatch, bool) {
	if m := nameStrict.FindStringSubmatch(line); m != nil {
		return nameMatch{raw: line, last: m[1], firstMid: m[2], end: len(line)}, true
	}
	if p.strictOnly {
		return nameMatch{}, false
	}
	if m := nameTolerant.FindStringSubmatch(line); m != nil {
		return nameMatch{raw: line, last: m[1], firstMid: m[2], end: len(line), tolerant: true}, true
	}
	return nameMatch{}, false
}

// matchNameIDDate recognizes "LAST, FIRST 1234567 10/15/2025" on one line.
func (p Patterns) matchNameIDDate(line string) (nameMatch, idDateMatch, bool) {
	res := nameIDDateStrict.FindStringSubmatch(line)
	tolerant := false
	if res == nil && !p.strictOnly {
		res = nameIDDateTolerant.FindStringSubmatch(line)
		tolerant = true
	}
	if res == nil {
		return nameMatch{}, idDateMatch{}, false
	}
	name := nameMatch{
		raw:      res[1] + ", " + res[2],
		last:     res[1],
		firstMid: res[2],
		tolerant: tolerant,
	}
	return name, idDateMatch{id: res[3], date: res[4]}, true
}

// findEmbeddedName finds a name signature anywhere in the line. The match is
// accepted only when preceded by start-of-line or whitespace, which keeps it
// from firing inside a longer token.
func (p Patterns) findEmbeddedName(line string) (nameMatch, bool) {
	res := p.findEmbeddedWith(nameEmbeddedStrict, line)
	if res != nil {
		return *res, true
	}
	if p.strictOnly {
		return nameMatch{}, false
	}
	if res = p.findEmbeddedWith(nameEmbeddedTolerant, line); res != nil {
		res.tolerant = true
		return *res, true
	}
	return nameMatch{}, false
}

func (p Patterns) findEmbeddedWith(re *regexp.Regexp, line string) *nameMatch {
	loc := re.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil
	}
	start, end := loc[0], loc[1]
	if start > 0 && line[start-1] != ' ' && line[start-1] != '\t' {
		return nil
	}
	return &nameMatch{
		raw:      line[start:end],
		last:     line[loc[2]:loc[3]],
		firstMid: line[loc[4]:loc[5]],
		start:    start,
		end:      end,
	}
}

// findIDDate finds an identifier+date pair anywhere in the line.
func (p Patterns) findIDDate(line string) (idDateMatch, bool) {
	loc := idDateRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return idDateMatch{}, false
	}
	return idDateMatch{
		id:    line[loc[2]:loc[3]],
		date:  line[loc[4]:loc[5]],
		start: loc[0],
		end:   loc[1],
	}, true
}

// matchIdentifierOnly recognizes a line that is exactly a 5-8 digit token.
func (p Patterns) matchIdentifierOnly(line string) (string, bool) {
	m := identifierOnlyRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchDateOnly recognizes a line that is exactly an M/D/YYYY token.
func (p Patterns) matchDateOnly(line string) (string, bool) {
	m := dateOnlyRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchBooking recognizes a booking line: booking number at line start, the
// remainder is the charge description (possibly empty).
func (p Patterns) matchBooking(line string) (bookingMatch, bool) {
	m := bookingLineRe.FindStringSubmatch(line)
	if m == nil {
		return bookingMatch{}, false
	}
	return bookingMatch{bookingNo: m[1], desc: strings.TrimSpace(m[2])}, true
}

// findBooking finds a booking number anywhere in the line.
func (p Patterns) findBooking(line string) (bookingMatch, bool) {
	loc := bookingAnyRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return bookingMatch{}, false
	}
	desc := ""
	if loc[4] >= 0 {
		desc = strings.TrimSpace(line[loc[4]:loc[5]])
	}
	return bookingMatch{
		bookingNo: line[loc[2]:loc[3]],
		desc:      desc,
		start:     loc[0],
	}, true
}

// isMalformedBooking reports whether the line starts with a booking-shaped
// token that is not a syntactically valid booking number.
func (p Patterns) isMalformedBooking(line string) bool {
	if !bookingShapedRe.MatchString(line) {
		return false
	}
	_, ok := p.matchBooking(line)
	return !ok
}

// isAddressShape reports whether a whole line looks like an address: a
// leading house-number + street pattern, a trailing STATE ZIP pattern, or an
// apartment/unit designator.
func (p Patterns) isAddressShape(line string) bool {
	return cityStateZipRe.MatchString(line) ||
		streetAddressRe.MatchString(line) ||
		aptRe.MatchString(line)
}

// findAddressSuffix locates a trailing address fragment inside free text.
// Returns the offset where the fragment starts, or -1.
func (p Patterns) findAddressSuffix(text string) int {
	loc := addressSuffixRe.FindStringIndex(text)
	if loc == nil {
		return -1
	}
	return loc[0]
}
