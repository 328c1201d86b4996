// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writers

import (
	"fmt"
	"regexp"

	"github.com/texreports/arrestx/pkg/types"
)

var (
	bookingFormatRe = regexp.MustCompile(`^\d{2}-\d{6,7}$`)
	isoDateRe       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Validate checks records against the output contract and returns a
// human-readable problem list, empty when everything conforms. It reports,
// never repairs; parse warnings are the parser's channel, this is the
// writer's.
func Validate(records []types.Record) []string {
	var problems []string
	for i, r := range records {
		label := r.Name
		if label == "" {
			label = fmt.Sprintf("record %d", i+1)
			problems = append(problems, label+": missing name")
		}
		if r.BookInDate != "" && !isoDateRe.MatchString(r.BookInDate) {
			problems = append(problems, fmt.Sprintf("%s: book-in date %q is not ISO 8601", label, r.BookInDate))
		}
		for _, c := range r.Charges {
			if !bookingFormatRe.MatchString(c.BookingNo) {
				problems = append(problems, fmt.Sprintf("%s: booking number %q has the wrong shape", label, c.BookingNo))
			}
		}
	}
	return problems
}
