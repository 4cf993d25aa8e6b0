// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfmerge/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := types.MergeRecord{
		ID:        "a1",
		Mode:      types.ModeStrict,
		Sources:   3,
		Pages:     6,
		Output:    "/out/merged.pdf",
		Status:    types.StatusOK,
		CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	second := types.MergeRecord{
		ID:        "b2",
		Mode:      types.ModeBestEffort,
		Sources:   2,
		Pages:     0,
		Output:    "",
		Status:    types.StatusFailed,
		Error:     "failed to merge PDFs: source 1: loading source document",
		CreatedAt: time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Record(ctx, first))
	require.NoError(t, s.Record(ctx, second))

	records, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "b2", records[0].ID)
	assert.Equal(t, "a1", records[1].ID)

	assert.Equal(t, types.ModeBestEffort, records[0].Mode)
	assert.Equal(t, types.StatusFailed, records[0].Status)
	assert.Contains(t, records[0].Error, "failed to merge PDFs")
	assert.Equal(t, 6, records[1].Pages)
	assert.True(t, records[1].CreatedAt.Equal(first.CreatedAt))
}

func TestStore_ListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := types.MergeRecord{
			ID:        string(rune('a' + i)),
			Mode:      types.ModeStrict,
			Status:    types.StatusOK,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.Record(ctx, rec))
	}

	records, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "e", records[0].ID)
}

func TestStore_DuplicateIDRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := types.MergeRecord{ID: "dup", Mode: types.ModeStrict, Status: types.StatusOK}
	require.NoError(t, s.Record(ctx, rec))
	assert.Error(t, s.Record(ctx, rec))
}

func TestStore_FillsCreatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, types.MergeRecord{
		ID: "nots", Mode: types.ModeStrict, Status: types.StatusOK,
	}))

	records, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].CreatedAt.IsZero())
}
