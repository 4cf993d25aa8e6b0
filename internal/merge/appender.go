// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Result reports the outcome of appending one source buffer. It is returned
// by value rather than raised, so the caller decides disposition.
type Result struct {
	// PagesAdded is the exact number of pages the source carried at copy
	// time; 0 for a structurally empty document or on failure.
	PagesAdded int
	Err        error
}

// OK reports whether the append succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Appender appends all pages of one source buffer into a Document.
// Different backends implement this interface; tests inject fakes.
type Appender interface {
	// Append parses src and appends its pages, in source order, onto doc.
	// It must not mutate or retain src, and must leave doc untouched on
	// failure or when the source has no pages.
	Append(src []byte, doc *Document) Result
}

// PDFAppender is the pdfcpu-backed Appender.
//
// A buffer that carries a valid %PDF- signature but fails deeper parsing is
// a load failure like any other unparseable buffer; there is no zero-page
// fallback.
type PDFAppender struct{}

// PageCount reports the number of pages a PDF buffer carries.
func PageCount(src []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(src), conf)
	if err != nil {
		return 0, fmt.Errorf("loading document: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return ctx.PageCount, nil
}

// Append loads src, counts its pages, and absorbs them into doc.
func (PDFAppender) Append(src []byte, doc *Document) Result {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(src), doc.conf)
	if err != nil {
		return Result{Err: fmt.Errorf("loading source document: %w", err)}
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return Result{Err: fmt.Errorf("counting source pages: %w", err)}
	}
	if ctx.PageCount == 0 {
		return Result{}
	}

	if err := doc.absorb(src, ctx, ctx.PageCount); err != nil {
		return Result{Err: err}
	}
	return Result{PagesAdded: ctx.PageCount}
}
