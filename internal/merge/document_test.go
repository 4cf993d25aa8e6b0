// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bytes"
	"testing"
)

func TestNewDocument_Empty(t *testing.T) {
	doc := NewDocument()
	if doc.PageCount() != 0 {
		t.Errorf("fresh document PageCount = %d, want 0", doc.PageCount())
	}
}

func TestDocument_SaveEmpty(t *testing.T) {
	doc := NewDocument()

	out, err := doc.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("empty document output lacks PDF signature")
	}
	if got := pageCount(t, out); got != 1 {
		t.Errorf("empty document materializes %d pages, want 1 blank page", got)
	}
	if doc.PageCount() != 0 {
		t.Errorf("PageCount after save = %d, want 0 content pages", doc.PageCount())
	}
}

func TestBlankDocument_Deterministic(t *testing.T) {
	if !bytes.Equal(blankDocument(), blankDocument()) {
		t.Error("blank document template should be deterministic")
	}
}
