// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge implements the buffer-oriented PDF merge core.
// Implements: prd001-merge (R1-R4);
//
//	docs/ARCHITECTURE § Merge Core.
//
// All PDF parsing and serialization is delegated to pdfcpu; this package
// only orchestrates load, append, and save.
package merge

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Document accumulates pages during a single merge call. A Document is
// created fresh per merge, owned exclusively by that call, and discarded
// after Save. It is append-only: the content page count never decreases.
//
// A Document is not safe for concurrent use; concurrent merges must each
// use their own Document.
type Document struct {
	// buf holds the serialized accumulated state, nil until the first
	// non-empty source is absorbed.
	buf   []byte
	pages int
	conf  *model.Configuration
}

// NewDocument returns an empty Document with relaxed validation, matching
// how real-world inputs (scanner output, legacy producers) parse.
func NewDocument() *Document {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Document{conf: conf}
}

// PageCount reports the number of content pages appended so far.
func (d *Document) PageCount() int { return d.pages }

// absorb appends all pages of a source onto the document. ctx is the
// already-validated source context and pages its page count (> 0).
func (d *Document) absorb(src []byte, ctx *model.Context, pages int) error {
	if d.buf == nil {
		// First source: serialize its context as the accumulated state.
		var out bytes.Buffer
		if err := api.WriteContext(ctx, &out); err != nil {
			return fmt.Errorf("serializing source document: %w", err)
		}
		d.buf = out.Bytes()
		d.pages = pages
		return nil
	}

	readers := []io.ReadSeeker{bytes.NewReader(d.buf), bytes.NewReader(src)}
	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, d.conf); err != nil {
		return fmt.Errorf("appending pages: %w", err)
	}
	d.buf = out.Bytes()
	d.pages += pages
	return nil
}

// Save serializes the accumulated document to a byte buffer. A Document
// that never received a page saves as a valid single-blank-page PDF, the
// pdfcpu-level equivalent of an empty document; PageCount still reports 0.
func (d *Document) Save() ([]byte, error) {
	if d.buf == nil {
		return blankDocument(), nil
	}
	return d.buf, nil
}

// blankDocument assembles a minimal one-page PDF with computed xref
// offsets. pdfcpu exposes no api-level primitive for creating an empty
// document, so the zero-input merge result is materialized from this
// deterministic template.
func blankDocument() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, 3)
	for _, obj := range []string{
		"1 0 obj\n<</Type/Catalog/Pages 2 0 R>>\nendobj\n",
		"2 0 obj\n<</Type/Pages/Kids[3 0 R]/Count 1>>\nendobj\n",
		"3 0 obj\n<</Type/Page/MediaBox[0 0 595 842]/Parent 2 0 R/Resources<<>>>>\nendobj\n",
	} {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	xref := buf.Len()
	buf.WriteString("xref\n0 4\n")
	fmt.Fprintf(&buf, "%010d %05d f \r\n", 0, 65535)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d %05d n \r\n", off, 0)
	}
	buf.WriteString("trailer\n<</Size 4/Root 1 0 R>>\nstartxref\n")
	fmt.Fprintf(&buf, "%d\n%%%%EOF", xref)

	return buf.Bytes()
}
