// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package storage persists completed plan requests so they can be
// inspected after the fact (GET /v1/motion/plans).
//
// Records live in an embedded BadgerDB instance. Each record is stored
// twice: the full JSON document under "plan/<id>" for direct lookup, and
// a small time index entry under "ts/<reversed-nanos>/<id>" so that a
// plain ascending key scan yields records newest-first. Both entries
// share the same optional TTL, so they expire together.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/AleutianAI/AleutianMotion/services/planner/datatypes"
	badgerstore "github.com/AleutianAI/AleutianMotion/services/planner/storage/badger"
)

// ============================================================================
// Records
// ============================================================================

// PlanRecord is the persisted form of one completed plan request.
type PlanRecord struct {
	// ID is the request ID the record was stored under.
	ID string `json:"id"`

	// CreatedAt is when the plan completed. Put fills it when zero.
	CreatedAt time.Time `json:"created_at"`

	// Scenario is the scenario name the request referenced.
	// Empty when the request carried an inline spec.
	Scenario string `json:"scenario,omitempty"`

	// Found reports whether the search connected start and goal.
	Found bool `json:"found"`

	// Path is the waypoint sequence, present only when Found is true.
	Path [][]float64 `json:"path,omitempty"`

	// Stats are the search statistics in wire form.
	Stats datatypes.PlanStats `json:"stats"`
}

// ============================================================================
// Store
// ============================================================================

const (
	recordPrefix = "plan/"
	indexPrefix  = "ts/"

	// DefaultRecentLimit is used when Recent is called with limit <= 0.
	DefaultRecentLimit = 50

	// MaxRecentLimit caps how many records a single Recent call returns.
	MaxRecentLimit = 500
)

// ErrNotFound is returned by Get when no record exists for the ID.
var ErrNotFound = errors.New("plan record not found")

// HistoryConfig configures a HistoryStore.
type HistoryConfig struct {
	// Path is the directory for the BadgerDB files.
	// Empty selects in-memory mode (history is lost on restart).
	Path string

	// TTL is the optional record retention window.
	// Zero keeps records until the database is deleted.
	TTL time.Duration

	// RecentLimit is the listing size used when Recent is called with
	// limit <= 0. Zero selects DefaultRecentLimit.
	RecentLimit int

	// Logger receives BadgerDB's internal log output. Optional.
	Logger *slog.Logger
}

// HistoryStore persists and retrieves plan records.
//
// # Thread Safety
//
//	Safe for concurrent use; BadgerDB transactions provide isolation.
type HistoryStore struct {
	db          *badgerstore.DB
	ttl         time.Duration
	recentLimit int
}

// NewHistoryStore opens the backing database and returns a ready store.
//
// # Description
//
//	Opens a persistent BadgerDB at cfg.Path, or an in-memory instance
//	when the path is empty. The caller owns the store and must call
//	Close when done.
//
// # Inputs
//
//	cfg - Store configuration.
//
// # Outputs
//
//	*HistoryStore - The opened store.
//	error - Non-nil if the database cannot be opened.
func NewHistoryStore(cfg HistoryConfig) (*HistoryStore, error) {
	var dbCfg badgerstore.Config
	if cfg.Path == "" {
		dbCfg = badgerstore.InMemoryConfig()
	} else {
		dbCfg = badgerstore.DefaultConfig()
		dbCfg.Path = cfg.Path
	}
	dbCfg.Logger = cfg.Logger

	db, err := badgerstore.OpenDB(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	recentLimit := cfg.RecentLimit
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	return &HistoryStore{db: db, ttl: cfg.TTL, recentLimit: recentLimit}, nil
}

// InMemory reports whether the store runs without disk persistence.
func (s *HistoryStore) InMemory() bool {
	return s.db.InMemory()
}

// Close stops background GC and closes the database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Put stores a plan record.
//
// # Description
//
//	Writes the record document and its time index entry in a single
//	transaction. A zero CreatedAt is filled with the current time.
//	When the store was configured with a TTL, both entries carry it.
//
// # Inputs
//
//	ctx - Checked for cancellation before the write starts.
//	rec - The record. ID must be non-empty.
//
// # Outputs
//
//	error - Non-nil on invalid input or write failure.
func (s *HistoryStore) Put(ctx context.Context, rec *PlanRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}
	if rec == nil {
		return errors.New("record must not be nil")
	}
	if rec.ID == "" {
		return errors.New("record ID must not be empty")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal plan record: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		doc := badger.NewEntry(recordKey(rec.ID), payload)
		idx := badger.NewEntry(indexKey(rec.CreatedAt, rec.ID), []byte(rec.ID))
		if s.ttl > 0 {
			doc = doc.WithTTL(s.ttl)
			idx = idx.WithTTL(s.ttl)
		}
		if err := txn.SetEntry(doc); err != nil {
			return err
		}
		return txn.SetEntry(idx)
	})
}

// Get retrieves a plan record by ID.
//
// # Outputs
//
//	*PlanRecord - The stored record.
//	error - ErrNotFound if no record exists, other errors on read failure.
func (s *HistoryStore) Get(ctx context.Context, id string) (*PlanRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	if id == "" {
		return nil, ErrNotFound
	}

	var rec PlanRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Recent returns the most recent plan records, newest first.
//
// # Description
//
//	Scans the time index in key order. Index keys embed the reversed
//	creation timestamp, so ascending iteration visits newest records
//	first and can stop as soon as the limit is reached.
//
// # Inputs
//
//	ctx - Checked for cancellation before the scan starts.
//	limit - Maximum number of records. Values <= 0 use the configured
//	        RecentLimit; values above MaxRecentLimit are clamped.
//
// # Outputs
//
//	[]*PlanRecord - Up to limit records, newest first. Empty slice when
//	                the store holds no records.
//	error - Non-nil on read failure.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]*PlanRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	if limit <= 0 {
		limit = s.recentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	records := make([]*PlanRecord, 0, limit)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(indexPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid() && len(records) < limit; it.Next() {
			var id string
			if err := it.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			item, err := txn.Get(recordKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				// Index entry outlived the record; skip it.
				continue
			}
			if err != nil {
				return err
			}

			rec := new(PlanRecord)
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ============================================================================
// Keys
// ============================================================================

func recordKey(id string) []byte {
	return []byte(recordPrefix + id)
}

// indexKey builds a time index key that sorts newest-first under an
// ascending scan. The timestamp is reversed (MaxInt64 - nanos) and
// zero-padded so lexicographic order matches numeric order.
func indexKey(createdAt time.Time, id string) []byte {
	reversed := uint64(math.MaxInt64 - createdAt.UnixNano())
	return []byte(fmt.Sprintf("%s%020d/%s", indexPrefix, reversed, id))
}
