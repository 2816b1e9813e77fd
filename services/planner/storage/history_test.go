// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianMotion/services/planner/datatypes"
)

func newTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := NewHistoryStore(HistoryConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(id string, createdAt time.Time) *PlanRecord {
	return &PlanRecord{
		ID:        id,
		CreatedAt: createdAt,
		Scenario:  "corridor-1d",
		Found:     true,
		Path:      [][]float64{{0}, {0.5}, {1}},
		Stats: datatypes.PlanStats{
			Iterations: 12,
			Attempts:   1,
			Samples:    12,
			DurationMs: 3,
		},
	}
}

func TestNewHistoryStore_InMemory(t *testing.T) {
	store, err := NewHistoryStore(HistoryConfig{})
	require.NoError(t, err)
	defer store.Close()

	assert.True(t, store.InMemory())
}

func TestHistoryStore_PutGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := testRecord("req-1", now)
	require.NoError(t, store.Put(ctx, rec))

	got, err := store.Get(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "req-1", got.ID)
	assert.Equal(t, "corridor-1d", got.Scenario)
	assert.True(t, got.Found)
	assert.Equal(t, rec.Path, got.Path)
	assert.Equal(t, rec.Stats, got.Stats)
	assert.True(t, now.Equal(got.CreatedAt), "CreatedAt should round-trip")
}

func TestHistoryStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryStore_Put_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("nil record", func(t *testing.T) {
		assert.Error(t, store.Put(ctx, nil))
	})

	t.Run("empty ID", func(t *testing.T) {
		assert.Error(t, store.Put(ctx, &PlanRecord{}))
	})

	t.Run("zero CreatedAt filled", func(t *testing.T) {
		rec := &PlanRecord{ID: "req-fill"}
		require.NoError(t, store.Put(ctx, rec))
		assert.False(t, rec.CreatedAt.IsZero())

		got, err := store.Get(ctx, "req-fill")
		require.NoError(t, err)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, store.Put(cancelled, testRecord("req-ctx", time.Now())))
	})
}

func TestHistoryStore_Recent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		records, err := store.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := testRecord(fmt.Sprintf("req-%d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, store.Put(ctx, rec))
	}

	t.Run("newest first", func(t *testing.T) {
		records, err := store.Recent(ctx, 3)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "req-4", records[0].ID)
		assert.Equal(t, "req-3", records[1].ID)
		assert.Equal(t, "req-2", records[2].ID)
	})

	t.Run("default limit", func(t *testing.T) {
		records, err := store.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, records, 5)
	})

	t.Run("limit above store size", func(t *testing.T) {
		records, err := store.Recent(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, records, 5)
	})
}

func TestHistoryStore_ConfiguredRecentLimit(t *testing.T) {
	store, err := NewHistoryStore(HistoryConfig{RecentLimit: 2})
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		rec := testRecord(fmt.Sprintf("req-%d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, store.Put(ctx, rec))
	}

	records, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "req-3", records[0].ID)
}

func TestHistoryStore_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewHistoryStore(HistoryConfig{Path: dir})
	require.NoError(t, err)
	assert.False(t, store.InMemory())

	rec := testRecord("req-durable", time.Now().UTC())
	require.NoError(t, store.Put(ctx, rec))
	require.NoError(t, store.Close())

	// Reopen and verify the record survived.
	reopened, err := NewHistoryStore(HistoryConfig{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "req-durable")
	require.NoError(t, err)
	assert.Equal(t, rec.Path, got.Path)
}

func TestHistoryStore_TTLWritable(t *testing.T) {
	store, err := NewHistoryStore(HistoryConfig{TTL: time.Hour})
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testRecord("req-ttl", time.Now().UTC())))

	got, err := store.Get(ctx, "req-ttl")
	require.NoError(t, err)
	assert.Equal(t, "req-ttl", got.ID)

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
