// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract runs ranked extraction strategies over report PDFs. Each
// strategy turns one document into records; the chain tries them in order
// and the first one to produce records wins.
package extract

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/texreports/arrestx/pkg/types"
)

// Strategy turns one report document into records. Implementations decide
// how the text is obtained; the record semantics are shared.
type Strategy interface {
	// Name identifies the strategy in progress output.
	Name() string

	// Extract parses the document at path. No records with a nil error
	// means the document held nothing this strategy could read; the chain
	// moves on.
	Extract(path string, cfg types.Config) ([]types.Record, error)
}

// Document runs the strategies against one document in order and returns
// the first non-empty result. When every strategy fails or comes up empty,
// the last failure is returned.
func Document(strategies []Strategy, path string, cfg types.Config, w io.Writer) ([]types.Record, error) {
	base := filepath.Base(path)
	var lastErr error
	for _, s := range strategies {
		records, err := s.Extract(path, cfg)
		if err != nil {
			fmt.Fprintf(w, "strategy %s failed on %s: %v\n", s.Name(), base, err)
			lastErr = err
			continue
		}
		if len(records) == 0 {
			lastErr = fmt.Errorf("strategy %s found no records in %s", s.Name(), base)
			continue
		}
		return records, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no extraction strategies configured")
	}
	return nil, lastErr
}

// BatchResult summarizes one extraction run over several documents.
type BatchResult struct {
	Processed int
	Failed    int
	Records   []types.Record
}

// Total returns the number of documents attempted.
func (r BatchResult) Total() int { return r.Processed + r.Failed }

// HasFailures reports whether any document produced no records.
func (r BatchResult) HasFailures() bool { return r.Failed > 0 }

// Batch extracts every document, printing per-file status to w, and returns
// the combined records with a summary. A failing document does not stop the
// batch.
func Batch(strategies []Strategy, paths []string, cfg types.Config, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		records, err := Document(strategies, path, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", filepath.Base(path), err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "extracted: %s (%d records)\n", filepath.Base(path), len(records))
		result.Processed++
		result.Records = append(result.Records, records...)
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed (total: %d)\n",
		result.Processed, result.Failed, result.Total())
	return result
}
