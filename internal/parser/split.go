// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import "strings"

// startEmbedded handles a name signature found mid-line: the record being
// built is sealed, a new one opens with the matched name, and the trailing
// text seeds it. If an identifier+date pair follows the name those fields
// are taken; any remaining fragments become the new record's first address
// lines. The machine resumes in the address-capture state.
//
// The caller is responsible for the text before the match; it belongs to
// the record being closed.
func (m *machine) startEmbedded(name nameMatch, trailing string, page int) {
	m.startRecord(name, page)
	m.state = captureAddress

	rest := strings.TrimSpace(trailing)
	if rest == "" {
		return
	}

	idd, ok := m.pats.findIDDate(rest)
	if !ok {
		m.acc.appendAddress(rest)
		return
	}

	m.acc.setIdentifier(idd.id)
	m.acc.setDate(idd.date)
	if pre := strings.TrimSpace(rest[:idd.start]); pre != "" {
		m.acc.appendAddress(pre)
	}
	if tail := strings.TrimSpace(rest[idd.end:]); tail != "" {
		m.acc.appendAddress(tail)
	}
}
