// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import "github.com/texreports/arrestx/pkg/types"

// Reclassify is the corrective second pass over finalized records. It moves
// misclassified lines between the address block and the charge list using
// shape heuristics; it never invents or drops content beyond whitespace
// normalization.
func Reclassify(records []types.Record) {
	p := NewPatterns(true)

	for idx := range records {
		r := &records[idx]

		// Address entries that are actually booking lines become charges.
		// Should not occur given the state machine's priorities, but the
		// classifier has edge cases on concatenated upstream text.
		kept := r.Address[:0]
		for _, a := range r.Address {
			if bk, ok := p.matchBooking(a); ok {
				r.Charges = append(r.Charges, types.Charge{
					BookingNo:   bk.bookingNo,
					Description: collapseSpaces(bk.desc),
				})
				continue
			}
			kept = append(kept, a)
		}
		r.Address = kept

		// A trailing address fragment glued onto the last charge's
		// description moves into the address block. When the address block
		// is already full the description is left alone rather than losing
		// the fragment.
		if n := len(r.Charges); n > 0 {
			desc := r.Charges[n-1].Description
			if at := p.findAddressSuffix(desc); at > 0 && len(r.Address) < maxAddressLines {
				r.Address = append(r.Address, collapseSpaces(desc[at:]))
				r.Charges[n-1].Description = collapseSpaces(desc[:at])
			}
		}
	}
}
