// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"fmt"
	"regexp"
	"time"

	"github.com/texreports/arrestx/internal/pdfio"
	"github.com/texreports/arrestx/pkg/types"
)

var (
	reportDateRe    = regexp.MustCompile(`Report Date:\s*(\d{1,2}/\d{1,2}/\d{4})`)
	standaloneDayRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
)

// ReportDate extracts the printed report date from the first page of a
// report PDF and returns it in ISO 8601 form. An explicit "Report Date:"
// label wins; failing that, the first line that is exactly a date is taken.
func ReportDate(path string) (string, error) {
	pages, err := pdfio.ExtractPages(path)
	if err != nil {
		return "", err
	}
	date := reportDateFromPages(pages)
	if date == "" {
		return "", fmt.Errorf("no report date found in %s", path)
	}
	return date, nil
}

func reportDateFromPages(pages []types.Page) string {
	if len(pages) == 0 {
		return ""
	}
	fallback := ""
	for _, ln := range pages[0].Lines {
		if m := reportDateRe.FindStringSubmatch(ln); m != nil {
			if iso := toISODate(m[1]); iso != "" {
				return iso
			}
		}
		if fallback == "" && standaloneDayRe.MatchString(ln) {
			fallback = toISODate(ln)
		}
	}
	return fallback
}

// toISODate converts M/D/YYYY to YYYY-MM-DD, empty on an implausible date.
func toISODate(printed string) string {
	t, err := time.Parse("1/2/2006", printed)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
