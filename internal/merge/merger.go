// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"errors"
	"fmt"
)

// ErrMerge is the stable marker wrapped into every merge failure. Callers
// match it with errors.Is rather than parsing messages.
var ErrMerge = errors.New("failed to merge PDFs")

// Merge creates a fresh document, appends every source buffer into it in
// order, and serializes the result. It is the pdfcpu-backed convenience
// form of MergeWith.
func Merge(sources [][]byte) ([]byte, error) {
	return MergeWith(PDFAppender{}, sources)
}

// MergeWith runs the merge loop with an injected Appender.
//
// The first failed append aborts the call: no further sources are
// processed and nothing is serialized. On success the output contains the
// pages of all sources in input order; with zero sources it is a valid
// document with no content pages. A failed call never returns a partial
// buffer.
func MergeWith(a Appender, sources [][]byte) ([]byte, error) {
	doc, err := Accumulate(a, sources)
	if err != nil {
		return nil, err
	}

	out, err := doc.Save()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return out, nil
}

// Accumulate appends every source into a fresh Document and returns it
// unserialized, so callers can inspect the page count before saving. The
// first failed append aborts with the failure wrapped in ErrMerge.
func Accumulate(a Appender, sources [][]byte) (*Document, error) {
	doc := NewDocument()
	for i, src := range sources {
		res := a.Append(src, doc)
		if res.Err != nil {
			return nil, fmt.Errorf("%w: source %d: %v", ErrMerge, i+1, appendCause(res.Err))
		}
	}
	return doc, nil
}

// appendCause guards against appenders that report failure with an empty
// message; the wrapped error must always carry a cause.
func appendCause(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}
