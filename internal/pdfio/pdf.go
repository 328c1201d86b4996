// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfio turns report PDFs into page-tagged text lines. Extraction
// reads pdfcpu content streams directly; Preprocess then strips the layout
// chrome (headers, footers, column rules) before parsing.
package pdfio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/texreports/arrestx/pkg/types"
)

// ExtractPages reads a PDF and returns one Page per document page, in order,
// with 1-based numbering. Pages that yield no text are returned with empty
// Lines so callers can decide on an OCR fallback per page.
func ExtractPages(path string) ([]types.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf %s: %w", path, err)
	}

	pages := make([]types.Page, 0, ctx.PageCount)
	for nr := 1; nr <= ctx.PageCount; nr++ {
		pages = append(pages, types.Page{Number: nr, Lines: pageLines(ctx, nr)})
	}
	return pages, nil
}

// HasText reports whether any page carries at least one text line.
func HasText(pages []types.Page) bool {
	for _, p := range pages {
		if len(p.Lines) > 0 {
			return true
		}
	}
	return false
}

func pageLines(ctx *model.Context, pageNr int) []string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return nil
	}
	return linesFromContent(data)
}

// pdfStringRe matches PDF string literals: (text).
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// linesFromContent reassembles visual text lines from content stream
// operators. Text-show operators (Tj, TJ, ') contribute characters; the
// positioning operators decide line breaks. A Td/TD with zero vertical
// displacement keeps the baseline, so its text joins the current line with a
// space; any vertical move, T*, or ' starts a new line.
func linesFromContent(data []byte) []string {
	var lines []string
	var cur strings.Builder

	flush := func() {
		if s := cleanLine(cur.String()); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}
	show := func(op []byte) {
		for _, m := range pdfStringRe.FindAllSubmatch(op, -1) {
			cur.WriteString(decodeString(m[1]))
		}
	}

	for _, raw := range bytes.Split(data, []byte{'\n'}) {
		op := bytes.TrimSpace(raw)
		if len(op) == 0 {
			continue
		}
		switch {
		case bytes.HasSuffix(op, []byte("Tj")), bytes.HasSuffix(op, []byte("TJ")):
			show(op)
		case bytes.HasSuffix(op, []byte("'")) && bytes.Contains(op, []byte("(")):
			flush()
			show(op)
		case bytes.Equal(op, []byte("T*")):
			flush()
		case bytes.HasSuffix(op, []byte("Td")), bytes.HasSuffix(op, []byte("TD")):
			if sameBaseline(op) {
				if cur.Len() > 0 {
					cur.WriteByte(' ')
				}
			} else {
				flush()
			}
		}
	}
	flush()
	return lines
}

// sameBaseline reports whether a Td/TD operator moves horizontally only.
func sameBaseline(op []byte) bool {
	fields := strings.Fields(string(op))
	if len(fields) < 3 {
		return false
	}
	ty, err := strconv.ParseFloat(fields[len(fields)-2], 64)
	return err == nil && ty == 0
}

// decodeString resolves PDF string escape sequences, including octal codes.
func decodeString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n', 'r':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c < '0' || c > '7' {
				sb.WriteByte(c)
				break
			}
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}

// cleanLine drops non-printable runes and squeezes whitespace runs to a
// single space.
func cleanLine(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = sb.Len() > 0
			continue
		}
		if !unicode.IsPrint(r) {
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
