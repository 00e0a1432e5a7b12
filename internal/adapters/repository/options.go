package repository

import (
	"time"

	"github.com/okian/dexkeeper/pkg/logger"
)

// Option applies a configuration option to the BadgerStore.
type Option func(*BadgerStore)

// WithInMemory runs badger without touching disk. The path is ignored.
func WithInMemory() Option {
	return func(s *BadgerStore) {
		s.inMemory = true
	}
}

// WithSyncWrites makes every write fsync before returning.
func WithSyncWrites(sync bool) Option {
	return func(s *BadgerStore) {
		s.syncWrites = sync
	}
}

// WithGCInterval sets the interval for background value log garbage collection.
func WithGCInterval(interval time.Duration) Option {
	return func(s *BadgerStore) {
		if interval > 0 {
			s.gcInterval = interval
		}
	}
}

// WithLogger sets the logger used for background failures.
func WithLogger(l logger.Logger) Option {
	return func(s *BadgerStore) {
		if l != nil {
			s.log = l
		}
	}
}
