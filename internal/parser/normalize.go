// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// normalizeName converts captured "LAST, FIRST MIDDLE" parts into
// "First Middle Last".
func normalizeName(last, firstMid string) string {
	return titleCase(firstMid) + " " + titleCase(last)
}

// titleCase lowercases the input and capitalizes every letter that follows
// a non-letter, so "O'BRIEN-SMITH" becomes "O'Brien-Smith".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// normalizeDate converts an M/D/YYYY token to ISO 8601 (YYYY-MM-DD).
// Implausible month or day values leave the input unchanged rather than
// fabricating a date.
func normalizeDate(printed string) string {
	parts := strings.Split(printed, "/")
	if len(parts) != 3 {
		return printed
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || len(parts[2]) != 4 {
		return printed
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return printed
	}
	return fmt.Sprintf("%s-%02d-%02d", parts[2], month, day)
}

// collapseSpaces trims and squeezes internal whitespace to single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
