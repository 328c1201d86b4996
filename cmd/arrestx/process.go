// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/texreports/arrestx/internal/extract"
	"github.com/texreports/arrestx/internal/store"
	"github.com/texreports/arrestx/internal/web"
	"github.com/texreports/arrestx/internal/writers"
	"github.com/texreports/arrestx/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process [pdf...]",
	Short: "Extract records from report PDFs and write the configured outputs",
	Long: `Process runs the extraction pipeline over the given PDFs, or over the
configured input globs when none are given. Extracted records go to every
output format with a configured path, and into the local record store when
it is enabled.`,
	Args: cobra.ArbitraryArgs,
	RunE: runProcess,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, processCmd} {
		cmd.Flags().Bool("ocr", false, "enable OCR fallback for pages without selectable text")
		cmd.Flags().Bool("store", false, "ingest extracted records into the local record store")
	}
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if on, _ := cmd.Flags().GetBool("ocr"); on {
		cfg.Input.OCRFallback = true
	}
	if on, _ := cmd.Flags().GetBool("store"); on {
		cfg.Store.Enabled = true
	}

	paths, err := inputPaths(args, cfg.Input)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input reports found")
	}

	chain := extract.DefaultChain(cfg)

	byFile := make(map[string][]types.Record)
	var all []types.Record
	processed, failed := 0, 0
	for _, path := range paths {
		records, err := extract.Document(chain, path, cfg, os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed:    %s (%v)\n", filepath.Base(path), err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stderr, "extracted: %s (%d records)\n", filepath.Base(path), len(records))
		processed++
		byFile[path] = records
		all = append(all, records...)
	}
	fmt.Fprintf(os.Stderr, "\n%d report(s) extracted, %d failed, %d records total\n",
		processed, failed, len(all))

	for _, problem := range writers.Validate(all) {
		fmt.Fprintf(os.Stderr, "validation: %s\n", problem)
	}

	if err := writers.WriteFiles(all, cfg.Output, os.Stderr); err != nil {
		return err
	}

	if cfg.Store.Enabled {
		if err := ingestAll(byFile, cfg.Store); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d report(s) failed extraction", failed)
	}
	return nil
}

// inputPaths resolves explicit arguments or the configured globs into a
// sorted, de-duplicated path list.
func inputPaths(args []string, cfg types.InputConfig) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Paths
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("input pattern %q: %w", pattern, err)
		}
		if matches == nil {
			// Not a pattern match; keep literal paths so missing files fail
			// loudly during extraction instead of vanishing.
			if _, statErr := os.Stat(pattern); statErr == nil {
				matches = []string{pattern}
			}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func ingestAll(byFile map[string][]types.Record, cfg types.StoreConfig) error {
	s, err := store.Open(cfg.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	ctx := context.Background()
	for _, path := range paths {
		date, err := web.ReportDate(path)
		if err != nil {
			date = ""
		}
		if _, err := s.Ingest(ctx, filepath.Base(path), date, byFile[path], os.Stderr); err != nil {
			return err
		}
	}
	return nil
}
