// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const archiveDir = "archive"

// Backup copies a report into an archive/ directory next to it, suffixing
// the file name with the report date. An existing archived copy for the
// same date is left untouched.
func Backup(path, date string, w io.Writer) (string, error) {
	if date == "" {
		return "", fmt.Errorf("backup needs a report date")
	}

	dir := filepath.Join(filepath.Dir(path), archiveDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	dest := filepath.Join(dir, strings.TrimSuffix(base, ext)+"-"+date+ext)

	if _, err := os.Stat(dest); err == nil {
		fmt.Fprintf(w, "archive copy %s already exists\n", filepath.Base(dest))
		return dest, nil
	}

	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dest)
		return "", fmt.Errorf("copying to archive: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	fmt.Fprintf(w, "archived %s\n", filepath.Base(dest))
	return dest, nil
}
