// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"path/filepath"

	"github.com/texreports/arrestx/internal/ocr"
	"github.com/texreports/arrestx/internal/parser"
	"github.com/texreports/arrestx/internal/pdfio"
	"github.com/texreports/arrestx/pkg/types"
)

// ocrEngine is the slice of ocr.Engine the strategies need.
type ocrEngine interface {
	Available() bool
	PageLines(path string, page int) ([]string, error)
}

// DefaultChain builds the shipped strategy order: selectable text first,
// full-document OCR last. The OCR stage joins only when the fallback is
// enabled in cfg.
func DefaultChain(cfg types.Config) []Strategy {
	engine := ocr.New(cfg.Input.OCRLang)
	chain := []Strategy{&textStrategy{ocr: engine}}
	if cfg.Input.OCRFallback {
		chain = append(chain, &ocrStrategy{ocr: engine})
	}
	return chain
}

// textStrategy reads the PDF's own text layer. Pages without selectable
// text are filled in by OCR when the fallback is enabled and the tools are
// present; records touched by such pages are flagged.
type textStrategy struct {
	ocr ocrEngine
}

func (s *textStrategy) Name() string { return "text" }

func (s *textStrategy) Extract(path string, cfg types.Config) ([]types.Record, error) {
	pages, err := pdfio.ExtractPages(path)
	if err != nil {
		return nil, err
	}

	ocrUsed := false
	if cfg.Input.OCRFallback && s.ocr.Available() {
		for i := range pages {
			if len(pages[i].Lines) > 0 {
				continue
			}
			lines, err := s.ocr.PageLines(path, pages[i].Number)
			if err != nil {
				continue
			}
			pages[i].Lines = lines
			ocrUsed = ocrUsed || len(lines) > 0
		}
	}

	return parsePages(pages, path, cfg, ocrUsed)
}

// ocrStrategy re-reads the whole document through OCR. It exists for scans
// whose text layer is present but garbled, where the text strategy returns
// pages that parse to nothing.
type ocrStrategy struct {
	ocr ocrEngine
}

func (s *ocrStrategy) Name() string { return "ocr" }

func (s *ocrStrategy) Extract(path string, cfg types.Config) ([]types.Record, error) {
	if !s.ocr.Available() {
		return nil, fmt.Errorf("ocr tools not on PATH")
	}

	pages, err := pdfio.ExtractPages(path)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		lines, err := s.ocr.PageLines(path, pages[i].Number)
		if err != nil {
			return nil, err
		}
		pages[i].Lines = lines
	}

	return parsePages(pages, path, cfg, true)
}

// parsePages runs preprocessing and the state machine, then stamps record
// provenance.
func parsePages(pages []types.Page, path string, cfg types.Config, ocrUsed bool) ([]types.Record, error) {
	pages, err := pdfio.Preprocess(pages, cfg.Parsing.HeaderPatterns)
	if err != nil {
		return nil, err
	}
	records := parser.Parse(pages, cfg.Parsing)
	for i := range records {
		records[i].SourceFile = filepath.Base(path)
		records[i].OCRUsed = records[i].OCRUsed || ocrUsed
	}
	return records, nil
}
