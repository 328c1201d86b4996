// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"
	"strings"

	"github.com/texreports/arrestx/pkg/types"
)

// defaultStallCeiling is the number of consecutive no-progress iterations
// tolerated before the progress guard forces the scan forward.
const defaultStallCeiling = 500

// state enumerates the extraction states. The set is closed: every
// transition in this file names one of these four values.
type state int

const (
	seekName state = iota
	captureAddress
	seekIDDate
	captureCharges
)

func (s state) String() string {
	switch s {
	case seekName:
		return "seek_name"
	case captureAddress:
		return "capture_address"
	case seekIDDate:
		return "seek_id_date"
	case captureCharges:
		return "capture_charges"
	}
	return "unknown"
}

// line is one input line tagged with its 1-based page number.
type line struct {
	text string
	page int
}

// machine drives the accumulator through the extraction states. It is
// built fresh for every document; nothing survives a Parse call.
type machine struct {
	pats  Patterns
	cfg   types.ParsingConfig
	lines []line

	i     int // scan position: the only true cursor state
	state state
	acc   accumulator
	out   []types.Record

	// deferred holds diagnostics raised while no record was open; they
	// attach to the next record started.
	deferred []string
}

// Parse scans page-tagged report lines and returns the extracted records in
// encounter order. It is pure and synchronous: no I/O, no shared state, safe
// to call concurrently for different documents. Empty or nil input yields an
// empty slice, never an error; all defects are reported as per-record
// warnings.
func Parse(pages []types.Page, cfg types.ParsingConfig) []types.Record {
	var lines []line
	for _, pg := range pages {
		for _, t := range pg.Lines {
			t = strings.TrimSpace(t)
			if t != "" {
				lines = append(lines, line{text: t, page: pg.Number})
			}
		}
	}

	m := &machine{
		pats:  NewPatterns(cfg.NameRegexStrict),
		cfg:   cfg,
		lines: lines,
		state: seekName,
		out:   []types.Record{},
	}
	m.run()
	Reclassify(m.out)
	return m.out
}

// run executes the scan loop under the progress guard. The guard is the
// loop invariant that guarantees termination: if the position has not moved
// for more than the stall ceiling, it forces the index forward by one and
// records a diagnostic instead of spinning.
func (m *machine) run() {
	ceiling := m.cfg.StallCeiling
	if ceiling <= 0 {
		ceiling = defaultStallCeiling
	}

	lastIdx := -1
	stalls := 0

	for m.i < len(m.lines) {
		if m.i == lastIdx {
			stalls++
			if stalls > ceiling {
				ln := m.lines[m.i]
				m.warnf("scanner made no progress at line %d (%q), forcing advance", m.i+1, ln.text)
				m.i++
				stalls = 0
				continue
			}
		} else {
			lastIdx = m.i
			stalls = 0
		}

		ln := m.lines[m.i]
		c := classify(m.pats, ln.text)

		switch m.state {
		case seekName:
			m.stepSeekName(ln, c)
		case captureAddress:
			m.stepCaptureAddress(ln, c)
		case seekIDDate:
			m.stepSeekIDDate(ln, c)
		case captureCharges:
			m.stepCaptureCharges(ln, c)
		}
	}

	if m.acc.active() {
		m.out = append(m.out, m.acc.finalize())
	}
}

// warnf records a diagnostic on the open record, or defers it to the next
// record when none is open.
func (m *machine) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if m.acc.active() {
		m.acc.warn(msg)
	} else {
		m.deferred = append(m.deferred, msg)
	}
}

// startRecord seals any open record and opens a new one for name.
func (m *machine) startRecord(name nameMatch, page int) {
	if m.acc.active() {
		m.out = append(m.out, m.acc.finalize())
	}
	m.acc.open(name, page, m.deferred)
	m.deferred = nil
}

// stepSeekName looks for the start of a record. Priority: name+identifier+
// date on one line; identifier+date on the previous line followed by a bare
// name; bare name alone. Anything else is noise left behind by upstream
// header filtering and is skipped.
func (m *machine) stepSeekName(ln line, c classification) {
	switch {
	case c.nameIDDate != nil:
		m.startRecord(c.nameIDDate.name, ln.page)
		m.acc.setIdentifier(c.nameIDDate.idDate.id)
		m.acc.setDate(c.nameIDDate.idDate.date)
		m.state = captureAddress

	case c.name != nil:
		m.startRecord(*c.name, ln.page)
		// Some report variants print the numeric columns one line above
		// the name; seed from the previous line when it carried the pair.
		if m.i > 0 {
			if idd, ok := m.pats.findIDDate(m.lines[m.i-1].text); ok {
				m.acc.setIdentifier(idd.id)
				m.acc.setDate(idd.date)
			}
		}
		m.state = captureAddress
	}
	m.i++
}

// stepCaptureAddress collects address lines until the identifier+date pair
// or the first booking line ends the address phase.
func (m *machine) stepCaptureAddress(ln line, c classification) {
	m.acc.touch(ln.page)

	// A full name+identifier+date line means the previous record never got
	// its numeric columns and the next person has begun.
	if c.nameIDDate != nil {
		m.warnf("incomplete record: new name before identifier/date")
		m.startRecord(c.nameIDDate.name, ln.page)
		m.acc.setIdentifier(c.nameIDDate.idDate.id)
		m.acc.setDate(c.nameIDDate.idDate.date)
		m.i++
		return
	}

	// The identifier+date pair closes the numeric columns wherever it
	// appears in the line; text around it splits into address and charge
	// parts. Address lines may still follow the pair, so the machine moves
	// to captureCharges only once a booking line has actually shown up.
	if !m.acc.hasIdentifier() && !m.acc.hasDate() && c.idDate != nil {
		m.acc.setIdentifier(c.idDate.id)
		m.acc.setDate(c.idDate.date)
		if prefix := strings.TrimSpace(ln.text[:c.idDate.start]); prefix != "" {
			m.acc.appendAddress(prefix)
		}
		m.state = seekIDDate
		if suffix := strings.TrimSpace(ln.text[c.idDate.end:]); suffix != "" {
			if bk, ok := m.pats.matchBooking(suffix); ok {
				m.acc.addCharge(bk.bookingNo, bk.desc)
				m.state = captureCharges
			} else {
				m.acc.appendAddress(suffix)
			}
		}
		m.i++
		return
	}

	// Two-line layout: a lone identifier now, the date on a later line.
	if m.cfg.AllowTwoLineIDDate && !m.acc.hasIdentifier() && c.idOnly != "" {
		m.acc.setIdentifier(c.idOnly)
		m.state = seekIDDate
		m.i++
		return
	}

	switch {
	case c.malformedBooking:
		m.warnf("dropped malformed booking line %q", ln.text)

	case c.bookingAtStart:
		desc := c.booking.desc
		if em, ok := m.pats.findEmbeddedName(desc); ok {
			m.acc.addCharge(c.booking.bookingNo, desc[:em.start])
			m.startEmbedded(em, desc[em.end:], ln.page)
		} else {
			m.acc.addCharge(c.booking.bookingNo, desc)
			m.state = captureCharges
		}

	case c.name != nil:
		// A new name before this record saw its numeric columns.
		m.warnf("incomplete record: new name before identifier/date")
		m.startRecord(*c.name, ln.page)

	default:
		m.acc.appendAddress(ln.text)
	}
	m.i++
}

// stepSeekIDDate runs between the numeric columns and the first booking
// line. It completes a two-line identifier/date layout, consuming the
// tokens independently, and collects any address lines printed below the
// pair.
func (m *machine) stepSeekIDDate(ln line, c classification) {
	m.acc.touch(ln.page)

	switch {
	case c.nameIDDate != nil:
		if !m.acc.hasIdentifier() || !m.acc.hasDate() {
			m.warnf("incomplete record: new name before identifier/date")
		}
		m.startRecord(c.nameIDDate.name, ln.page)
		m.acc.setIdentifier(c.nameIDDate.idDate.id)
		m.acc.setDate(c.nameIDDate.idDate.date)
		m.state = captureAddress

	case !m.acc.hasDate() && c.idDate != nil:
		m.acc.setIdentifier(c.idDate.id)
		m.acc.setDate(c.idDate.date)

	case !m.acc.hasIdentifier() && c.idOnly != "":
		m.acc.setIdentifier(c.idOnly)

	case !m.acc.hasDate() && c.dateOnly != "":
		m.acc.setDate(c.dateOnly)

	case c.malformedBooking:
		m.warnf("dropped malformed booking line %q", ln.text)

	case c.bookingAtStart:
		// First booking line ends the address phase whether or not the
		// numeric columns ever showed up.
		m.acc.addCharge(c.booking.bookingNo, c.booking.desc)
		m.state = captureCharges

	case c.name != nil:
		if !m.acc.hasIdentifier() || !m.acc.hasDate() {
			m.warnf("incomplete record: new name before identifier/date")
		}
		m.startRecord(*c.name, ln.page)
		m.state = captureAddress

	default:
		m.acc.appendAddress(ln.text)
	}
	m.i++
}

// stepCaptureCharges consumes booking lines and wrapped description text.
// Priority order is the machine's central contract: a name always beats
// charge continuation, because a dangling name is by definition the start
// of the next person.
func (m *machine) stepCaptureCharges(ln line, c classification) {
	m.acc.touch(ln.page)

	switch {
	// (1) A name at line start always seals this record and starts the
	// next, with or without the numeric columns on the same line.
	case c.nameIDDate != nil:
		m.startRecord(c.nameIDDate.name, ln.page)
		m.acc.setIdentifier(c.nameIDDate.idDate.id)
		m.acc.setDate(c.nameIDDate.idDate.date)
		m.state = captureAddress

	case c.name != nil:
		m.startRecord(*c.name, ln.page)
		m.state = captureAddress

	// (2) Booking-shaped but invalid: drop with a diagnostic.
	case c.malformedBooking:
		m.warnf("dropped malformed booking line %q", ln.text)

	// (3) Booking line anywhere: text before the number continues the open
	// charge; the rest is the new charge's description, which may itself
	// carry an embedded name starting the next record.
	case c.booking != nil:
		if prefix := strings.TrimSpace(ln.text[:c.booking.start]); prefix != "" {
			m.acc.appendToCharge(prefix)
		}
		desc := c.booking.desc
		if em, ok := m.pats.findEmbeddedName(desc); ok {
			m.acc.addCharge(c.booking.bookingNo, desc[:em.start])
			m.startEmbedded(em, desc[em.end:], ln.page)
		} else {
			m.acc.addCharge(c.booking.bookingNo, desc)
		}

	// (4) Address-shaped text printed below the numeric columns stays with
	// the open record's address; without this check a city/state line would
	// be mistaken for an embedded name.
	case c.addressShape:
		m.acc.appendAddress(ln.text)

	// (5) Embedded name mid-line: split between the closing record and the
	// one that starts here.
	case c.embedded != nil:
		if before := strings.TrimSpace(ln.text[:c.embedded.start]); before != "" {
			m.acc.appendToCharge(before)
		}
		m.startEmbedded(*c.embedded, ln.text[c.embedded.end:], ln.page)

	// (6) Continuation of the open charge's wrapped description.
	case m.acc.openCharge():
		m.acc.appendToCharge(ln.text)

	default:
		m.warnf("orphan text with no open charge: %q", ln.text)
	}
	m.i++
}
