// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/texreports/arrestx/pkg/types"
)

// maxAddressLines caps the address block to keep charge text from bleeding
// into it on badly wrapped reports.
const maxAddressLines = 3

var validBookingRe = regexp.MustCompile(`^\d{2}-\d{6,7}$`)

// accumulator owns the in-progress record. The record is mutable only while
// held here; finalize seals it exactly once and the machine appends it to
// the output list, never to be revisited except by the reclassifier.
type accumulator struct {
	cur        *types.Record
	lastCharge int // index of the open charge in cur.Charges, -1 when none
	firstPage  int
	lastPage   int
}

// open starts a new record from a recognized name. Warnings deferred from
// before the record existed (progress-guard diagnostics on leading noise)
// are attached to it.
func (a *accumulator) open(name nameMatch, page int, deferred []string) {
	a.cur = &types.Record{
		Name:           name.raw,
		NameNormalized: normalizeName(name.last, name.firstMid),
		Address:        []string{},
		Charges:        []types.Charge{},
		ParseWarnings:  []string{},
	}
	a.lastCharge = -1
	a.firstPage = page
	a.lastPage = page
	for _, w := range deferred {
		a.cur.AddWarning(w)
	}
	if name.tolerant {
		a.cur.AddWarning("name matched by tolerant pattern: " + name.raw)
	}
}

// active reports whether a record is currently being built.
func (a *accumulator) active() bool { return a.cur != nil }

// touch records that the scan visited page while building this record.
func (a *accumulator) touch(page int) {
	if a.cur != nil && page > a.lastPage {
		a.lastPage = page
	}
}

func (a *accumulator) hasIdentifier() bool { return a.cur.Identifier != "" }
func (a *accumulator) hasDate() bool       { return a.cur.BookInDate != "" }

// setIdentifier stores the identifier if none is set yet. Identifiers are
// never overwritten; the first capture wins.
func (a *accumulator) setIdentifier(id string) {
	if a.cur.Identifier == "" {
		a.cur.Identifier = id
	}
}

// setDate stores the book-in date, normalized to ISO 8601, if none is set.
func (a *accumulator) setDate(printed string) {
	if a.cur.BookInDate == "" {
		a.cur.BookInDate = normalizeDate(printed)
	}
}

// addCharge appends a new charge and makes it the open charge for
// continuation lines.
func (a *accumulator) addCharge(bookingNo, desc string) {
	a.cur.Charges = append(a.cur.Charges, types.Charge{
		BookingNo:   bookingNo,
		Description: strings.TrimSpace(desc),
	})
	a.lastCharge = len(a.cur.Charges) - 1
}

// openCharge reports whether a charge is open for continuation text.
func (a *accumulator) openCharge() bool { return a.lastCharge >= 0 }

// appendToCharge merges wrapped continuation text into the open charge's
// description with a single joining space.
func (a *accumulator) appendToCharge(text string) {
	text = strings.TrimSpace(text)
	if text == "" || a.lastCharge < 0 {
		return
	}
	c := &a.cur.Charges[a.lastCharge]
	if c.Description == "" {
		c.Description = text
	} else {
		c.Description += " " + text
	}
}

// appendAddress adds an address line verbatim, up to the cap.
func (a *accumulator) appendAddress(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if len(a.cur.Address) < maxAddressLines {
		a.cur.Address = append(a.cur.Address, line)
	}
}

func (a *accumulator) warn(msg string) {
	a.cur.AddWarning(msg)
}

// finalize validates and seals the current record. It never fails: every
// defect becomes a parse warning. Charges whose booking number is not
// syntactically valid are dropped with a warning.
func (a *accumulator) finalize() types.Record {
	r := a.cur
	a.cur = nil
	a.lastCharge = -1

	kept := r.Charges[:0]
	for _, c := range r.Charges {
		if !validBookingRe.MatchString(c.BookingNo) {
			r.AddWarning(fmt.Sprintf("dropped charge with malformed booking number %q", c.BookingNo))
			continue
		}
		kept = append(kept, c)
	}
	r.Charges = kept

	if r.Identifier == "" {
		r.AddWarning("missing identifier")
	}
	if r.BookInDate == "" {
		r.AddWarning("missing book-in date")
	}
	if len(r.Charges) == 0 {
		r.AddWarning("no charges found")
	}
	if len(r.Address) == 0 {
		r.AddWarning("no address captured")
	}

	r.SourcePageSpan = [2]int{a.firstPage, a.lastPage}
	return *r
}
