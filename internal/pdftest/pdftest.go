// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds minimal valid PDF fixtures for tests. The
// documents carry blank pages only; xref offsets are computed during
// assembly so the output parses under strict readers.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Document returns a valid PDF with the given number of blank pages.
// pages must be at least 1.
func Document(pages int) []byte {
	if pages < 1 {
		panic("pdftest: page count must be at least 1")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	// Object 1: catalog, object 2: page tree, objects 3..pages+2: pages.
	offsets := make([]int, 0, pages+2)

	offsets = append(offsets, buf.Len())
	buf.WriteString("1 0 obj\n<</Type/Catalog/Pages 2 0 R>>\nendobj\n")

	kids := make([]byte, 0, pages*7)
	for i := 0; i < pages; i++ {
		if i > 0 {
			kids = append(kids, ' ')
		}
		kids = fmt.Appendf(kids, "%d 0 R", i+3)
	}
	offsets = append(offsets, buf.Len())
	fmt.Fprintf(&buf, "2 0 obj\n<</Type/Pages/Kids[%s]/Count %d>>\nendobj\n", kids, pages)

	for i := 0; i < pages; i++ {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n<</Type/Page/MediaBox[0 0 612 792]/Parent 2 0 R/Resources<<>>>>\nendobj\n", i+3)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", pages+3)
	fmt.Fprintf(&buf, "%010d %05d f \r\n", 0, 65535)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d %05d n \r\n", off, 0)
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF", pages+3, xref)

	return buf.Bytes()
}

// Garbage returns a buffer that is not a PDF at all.
func Garbage() []byte {
	return []byte("this is not a portable document")
}

// BadSignature returns a buffer that opens with a valid %PDF- signature
// but fails any deeper parse.
func BadSignature() []byte {
	return []byte("%PDF-1.7\nno objects, no xref, no trailer")
}

// WriteFile writes a fixture with the given page count into dir and
// returns its path.
func WriteFile(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Document(pages), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
