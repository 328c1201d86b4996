// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfio

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/texreports/arrestx/pkg/types"
)

// Tokenized page footers: "Page:" on one line, "1 of 5" on the next.
var (
	pageTokenRe  = regexp.MustCompile(`^Page:?$`)
	pageOfRe     = regexp.MustCompile(`^\d+\s+of\s+\d+$`)
	columnJoiner = " | "
)

// Preprocess removes layout chrome from extracted pages: lines matching any
// of the header patterns, and two-line page footers whose "Page:" and
// "N of M" tokens landed on separate lines. Multi-column lines joined with
// " | " are split back into their logical lines first, so a header fragment
// sharing a visual line with record text does not take the record text with
// it. Page tagging is preserved.
func Preprocess(pages []types.Page, headerPatterns []string) ([]types.Page, error) {
	res := make([]*regexp.Regexp, 0, len(headerPatterns))
	for _, p := range headerPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("header pattern %q: %w", p, err)
		}
		res = append(res, re)
	}

	out := make([]types.Page, 0, len(pages))
	for _, pg := range pages {
		var split []string
		for _, ln := range pg.Lines {
			for _, part := range strings.Split(ln, columnJoiner) {
				if part = strings.TrimSpace(part); part != "" {
					split = append(split, part)
				}
			}
		}

		var kept []string
		for i := 0; i < len(split); i++ {
			ln := split[i]
			if pageTokenRe.MatchString(ln) && i+1 < len(split) && pageOfRe.MatchString(split[i+1]) {
				i++
				continue
			}
			if matchesAny(res, ln) {
				continue
			}
			kept = append(kept, ln)
		}
		out = append(out, types.Page{Number: pg.Number, Lines: kept})
	}
	return out, nil
}

func matchesAny(res []*regexp.Regexp, line string) bool {
	for _, re := range res {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
