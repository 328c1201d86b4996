// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

// classification is the outcome of running the pattern library over one
// line. Each recognizer's result is captured independently; the state
// machine consults them in the priority order its current state demands.
type classification struct {
	// nameIDDate is set when the whole line is "LAST, FIRST 1234567 10/15/2025".
	nameIDDate *nameIDDateMatch

	// name is set when the whole line is a bare "LAST, FIRST MIDDLE".
	name *nameMatch

	// booking is set when the line carries a valid booking number anywhere.
	// bookingAtStart additionally marks the canonical booking-line layout.
	booking        *bookingMatch
	bookingAtStart bool

	// malformedBooking marks a line that starts with a booking-shaped token
	// of the wrong digit widths.
	malformedBooking bool

	// idDate is set when the line carries an identifier+date pair.
	idDate *idDateMatch

	// idOnly / dateOnly are set for single-token lines (two-line layouts).
	idOnly   string
	dateOnly string

	// embedded is set when a name signature occurs mid-line.
	embedded *nameMatch

	// addressShape marks lines matching one of the address recognizers.
	addressShape bool
}

// nameIDDateMatch pairs the name and numeric captures of a one-line
// name+identifier+date layout.
type nameIDDateMatch struct {
	name   nameMatch
	idDate idDateMatch
}

// classify applies every recognizer to one line. Pure: no state survives
// the call, and the same line always yields the same classification.
func classify(p Patterns, line string) classification {
	var c classification

	if name, idd, ok := p.matchNameIDDate(line); ok {
		c.nameIDDate = &nameIDDateMatch{name: name, idDate: idd}
	}
	if name, ok := p.matchName(line); ok {
		c.name = &name
	}
	if bk, ok := p.findBooking(line); ok {
		c.booking = &bk
		c.bookingAtStart = bk.start == 0
	}
	c.malformedBooking = p.isMalformedBooking(line)
	if idd, ok := p.findIDDate(line); ok {
		c.idDate = &idd
	}
	if id, ok := p.matchIdentifierOnly(line); ok {
		c.idOnly = id
	}
	if d, ok := p.matchDateOnly(line); ok {
		c.dateOnly = d
	}
	if em, ok := p.findEmbeddedName(line); ok {
		c.embedded = &em
	}
	c.addressShape = p.isAddressShape(line)

	return c
}
