// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web retrieves the published daily report PDF and manages the
// local report archive.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/texreports/arrestx/internal/httputil"
	"github.com/texreports/arrestx/pkg/types"
)

// Fetcher downloads the daily report according to WebConfig.
type Fetcher struct {
	cfg    types.WebConfig
	client *http.Client

	// reportDate extracts the printed report date from a saved PDF.
	// Overridable for tests.
	reportDate func(path string) (string, error)
}

// NewFetcher builds a fetcher with a timeout-bound HTTP client.
func NewFetcher(cfg types.WebConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Fetcher{
		cfg:        cfg,
		client:     &http.Client{Timeout: timeout},
		reportDate: ReportDate,
	}
}

// Fetch downloads the report, names it after its printed report date, and
// returns the saved path. With SkipIfExisting set, a report whose date is
// already on disk is discarded and the existing path is returned. Progress
// lines go to w.
func (f *Fetcher) Fetch(ctx context.Context, w io.Writer) (string, error) {
	if f.cfg.URL == "" {
		return "", fmt.Errorf("no report url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.URL, nil)
	if err != nil {
		return "", err
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0, w)
	if err != nil {
		return "", fmt.Errorf("fetching report: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching report: %s", resp.Status)
	}

	dir := f.cfg.DownloadDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".download-*.pdf")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("saving report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	date, err := f.reportDate(tmpPath)
	if err != nil || date == "" {
		// No readable date; keep the file under a timestamp name.
		date = time.Now().Format("20060102-150405")
	}

	target := filepath.Join(dir, "booked-in-"+date+".pdf")
	if f.cfg.SkipIfExisting {
		if _, err := os.Stat(target); err == nil {
			os.Remove(tmpPath)
			fmt.Fprintf(w, "already have %s, skipping\n", filepath.Base(target))
			return target, nil
		}
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("saving report: %w", err)
	}
	fmt.Fprintf(w, "saved %s\n", filepath.Base(target))
	return target, nil
}
