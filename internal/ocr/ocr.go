// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr recovers text from scanned report pages with external tools:
// pdftoppm renders a page to an image and tesseract reads it. Both binaries
// must be on PATH; Available reports whether the fallback can run at all.
package ocr

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	binRender = "pdftoppm"
	binOCR    = "tesseract"

	renderDPI = 300
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunOut(name string, stdout io.Writer, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunOut(name string, stdout io.Writer, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// Engine runs the render-then-recognize pipeline for one language setting.
type Engine struct {
	lang string
	exec executor
}

// New returns an engine recognizing the given tesseract language code.
// Empty means English.
func New(lang string) *Engine {
	if lang == "" {
		lang = "eng"
	}
	return &Engine{lang: lang, exec: defaultExec}
}

// Available reports whether both external tools are on PATH.
func (e *Engine) Available() bool {
	if _, err := e.exec.LookPath(binRender); err != nil {
		return false
	}
	_, err := e.exec.LookPath(binOCR)
	return err == nil
}

// PageLines OCRs one page (1-based) of a PDF and returns its non-empty text
// lines in reading order.
func (e *Engine) PageLines(path string, page int) ([]string, error) {
	text, err := e.pageText(path, page)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines, nil
}

func (e *Engine) pageText(path string, page int) (string, error) {
	dir, err := os.MkdirTemp("", "arrestx-ocr-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	pg := strconv.Itoa(page)
	err = e.exec.RunSilent(binRender,
		"-r", strconv.Itoa(renderDPI), "-gray", "-png",
		"-f", pg, "-l", pg, path, prefix)
	if err != nil {
		return "", fmt.Errorf("render page %d of %s: %w", page, path, err)
	}

	img, err := renderedImage(prefix)
	if err != nil {
		return "", fmt.Errorf("render page %d of %s: %w", page, path, err)
	}

	var out bytes.Buffer
	if err := e.exec.RunOut(binOCR, &out, img, "stdout", "-l", e.lang); err != nil {
		return "", fmt.Errorf("ocr page %d of %s: %w", page, path, err)
	}
	return out.String(), nil
}

// renderedImage finds the single page image produced under prefix. pdftoppm
// zero-pads the page number depending on the document size, so the exact
// name is not predictable.
func renderedImage(prefix string) (string, error) {
	matches, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no image produced")
	}
	sort.Strings(matches)
	return matches[0], nil
}
