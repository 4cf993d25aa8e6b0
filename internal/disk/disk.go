// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package disk implements the path-oriented merge variant: reading source
// files, resolving and sandboxing output paths, and writing results.
// Implements: prd002-disk-merge (R1-R4);
//
//	docs/ARCHITECTURE § Disk Merge.
package disk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdfmerge/internal/merge"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

// ErrOutsideBase is returned when an output path escapes the configured
// base directory and AllowOutsideBase is not set.
var ErrOutsideBase = errors.New("output path escapes the base directory")

// BatchResult holds the outcome of a best-effort merge run.
type BatchResult struct {
	Appended int
	Skipped  int
	Failed   int
	Pages    int
}

// Total returns the total number of source files processed.
func (r BatchResult) Total() int {
	return r.Appended + r.Skipped + r.Failed
}

// HasFailures reports whether any source failed to read or append.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// MergeStrict reads every source file, merges them in order, and writes
// the result to outPath (resolved against cfg.BaseDir). Any read or append
// failure aborts the whole merge; nothing is written (R1.2). It returns
// the resolved output path and the content page count.
func MergeStrict(paths []string, outPath string, cfg types.DiskConfig, w io.Writer) (string, int, error) {
	resolved, err := ResolveOutput(outPath, cfg)
	if err != nil {
		return "", 0, err
	}

	sources := make([][]byte, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", 0, fmt.Errorf("%w: reading %s: %v", merge.ErrMerge, p, err)
		}
		sources[i] = data
	}

	doc, err := merge.Accumulate(merge.PDFAppender{}, sources)
	if err != nil {
		return "", 0, err
	}
	out, err := doc.Save()
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", merge.ErrMerge, err)
	}

	if err := writeOutput(resolved, out); err != nil {
		return "", 0, err
	}
	fmt.Fprintf(w, "merged %d file(s), %d page(s) -> %s\n", len(paths), doc.PageCount(), resolved)
	return resolved, doc.PageCount(), nil
}

// MergeBestEffort merges what it can: a source that fails to read or
// append is reported on w and skipped, and the remaining sources still
// land in the output (R3.1). The accumulated document is always written,
// even when every source failed. It returns the per-source summary and
// the resolved output path.
func MergeBestEffort(paths []string, outPath string, cfg types.DiskConfig, w io.Writer) (BatchResult, string, error) {
	resolved, err := ResolveOutput(outPath, cfg)
	if err != nil {
		return BatchResult{}, "", err
	}

	var result BatchResult
	doc := merge.NewDocument()
	appender := merge.PDFAppender{}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", p, err)
			result.Failed++
			continue
		}

		res := appender.Append(data, doc)
		switch {
		case res.Err != nil:
			fmt.Fprintf(w, "failed:   %s (%v)\n", p, res.Err)
			result.Failed++
		case res.PagesAdded == 0:
			fmt.Fprintf(w, "skipped:  %s (no pages)\n", p)
			result.Skipped++
		default:
			fmt.Fprintf(w, "appended: %s (%d pages)\n", p, res.PagesAdded)
			result.Appended++
		}
	}
	result.Pages = doc.PageCount()

	out, err := doc.Save()
	if err != nil {
		return result, "", fmt.Errorf("%w: %v", merge.ErrMerge, err)
	}
	if err := writeOutput(resolved, out); err != nil {
		return result, "", err
	}

	fmt.Fprintf(w, "\nBatch summary: %d appended, %d skipped, %d failed (total: %d, pages: %d)\n",
		result.Appended, result.Skipped, result.Failed, result.Total(), result.Pages)
	return result, resolved, nil
}

// WriteFile resolves outPath against the base directory and writes data
// there, creating intermediate directories. It returns the resolved path.
func WriteFile(outPath string, data []byte, cfg types.DiskConfig) (string, error) {
	resolved, err := ResolveOutput(outPath, cfg)
	if err != nil {
		return "", err
	}
	if err := writeOutput(resolved, data); err != nil {
		return "", err
	}
	return resolved, nil
}

// ResolveOutput resolves outPath against cfg.BaseDir. Relative paths join
// the base; any path landing outside the base is rejected unless
// cfg.AllowOutsideBase is set (R2.2).
func ResolveOutput(outPath string, cfg types.DiskConfig) (string, error) {
	if outPath == "" {
		return "", errors.New("output path required")
	}

	p := outPath
	if !filepath.IsAbs(p) {
		p = filepath.Join(cfg.BaseDir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving output path: %w", err)
	}

	if cfg.AllowOutsideBase {
		return abs, nil
	}

	base, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, outPath)
	}
	return abs, nil
}

// writeOutput writes data to path, creating intermediate directories. It
// writes to a temp file and renames on success so a failed write never
// leaves a truncated output behind.
func writeOutput(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".merge-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
