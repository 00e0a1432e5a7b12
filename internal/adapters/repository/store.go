// Package repository persists the collection.
package repository

import (
	"context"
	"time"

	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/pkg/metrics"
)

// Store provides read/write access to the collection.
type Store interface {
	// GetAll returns every record in collection order.
	GetAll(ctx context.Context) ([]model.Pokemon, error)

	// Get returns one record. Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Pokemon, error)

	// Put inserts p or replaces the record with the same id.
	Put(ctx context.Context, p model.Pokemon) error

	// Delete removes a record. Returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id string) error

	// Clear removes every record.
	Clear(ctx context.Context) error

	// Replace swaps the whole collection for records in one step. On error
	// the previous collection is kept. A repeated id keeps the position of
	// its first occurrence and the value of its last.
	Replace(ctx context.Context, records []model.Pokemon) error

	// Count returns the number of records.
	Count(ctx context.Context) int

	// Close releases resources held by the store.
	Close() error
}

// observe records latency and failures of one store operation.
func observe(backend, operation string, start time.Time, err error) {
	metrics.RecordStoreLatency(backend, operation, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordStoreError(backend, operation)
	}
}
