package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/pkg/logger"
)

const (
	backendBadger   = "badger"
	pokemonPrefix   = "pokemon:"
	gcDiscardRatio  = 0.5
	defaultGCPeriod = 10 * time.Minute
)

// BadgerStore persists the collection in a badger database, one JSON value
// per record under "pokemon:<id>".
type BadgerStore struct {
	db  *badger.DB
	log logger.Logger

	inMemory   bool
	syncWrites bool
	gcInterval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewBadgerStore opens (or creates) a badger database at path and starts the
// value log GC loop. Call Close to stop it.
func NewBadgerStore(ctx context.Context, path string, opts ...Option) (*BadgerStore, error) {
	s := &BadgerStore{gcInterval: defaultGCPeriod, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	bopts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(s.syncWrites)
	if s.inMemory {
		bopts = bopts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	s.db = db

	gcCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	if !s.inMemory {
		s.startValueLogGC(gcCtx)
	}
	return s, nil
}

func key(id string) []byte {
	return []byte(pokemonPrefix + id)
}

func (s *BadgerStore) checkOpen() error {
	if s.closed.Load() {
		return ErrClosed
	}
	return nil
}

// GetAll returns every record ordered by creation time, then id.
func (s *BadgerStore) GetAll(ctx context.Context) (out []model.Pokemon, err error) {
	defer func(start time.Time) { observe(backendBadger, "get_all", start, err) }(time.Now())

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	out = make([]model.Pokemon, 0)
	err = s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(pokemonPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var p model.Pokemon
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Get returns the record with id.
func (s *BadgerStore) Get(_ context.Context, id string) (p model.Pokemon, err error) {
	defer func(start time.Time) {
		if errors.Is(err, ErrNotFound) {
			observe(backendBadger, "get", start, nil)
			return
		}
		observe(backendBadger, "get", start, err)
	}(time.Now())

	if err := s.checkOpen(); err != nil {
		return model.Pokemon{}, err
	}
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get pokemon: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	if err != nil {
		return model.Pokemon{}, err
	}
	return p, nil
}

// Put inserts p or replaces the record with the same id.
func (s *BadgerStore) Put(_ context.Context, p model.Pokemon) (err error) {
	defer func(start time.Time) { observe(backendBadger, "put", start, err) }(time.Now())

	if err := s.checkOpen(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidID
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pokemon: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key(p.ID), data); err != nil {
			return fmt.Errorf("set pokemon: %w", err)
		}
		return nil
	})
}

// Delete removes the record with id.
func (s *BadgerStore) Delete(_ context.Context, id string) (err error) {
	defer func(start time.Time) { observe(backendBadger, "delete", start, err) }(time.Now())

	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get pokemon: %w", err)
		}
		return txn.Delete(key(id))
	})
}

// Clear removes every record.
func (s *BadgerStore) Clear(_ context.Context) (err error) {
	defer func(start time.Time) { observe(backendBadger, "clear", start, err) }(time.Now())

	if err := s.checkOpen(); err != nil {
		return err
	}
	var keys [][]byte
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(pokemonPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("list pokemon keys: %w", err)
	}

	wb := s.db.NewWriteBatch()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			wb.Cancel()
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush deletes: %w", err)
	}
	return nil
}

// Replace deletes the records missing from records and writes the rest in
// one transaction. Collections too large for a single transaction fail with
// badger.ErrTxnTooBig and are left untouched.
func (s *BadgerStore) Replace(_ context.Context, records []model.Pokemon) (err error) {
	defer func(start time.Time) { observe(backendBadger, "replace", start, err) }(time.Now())

	if err := s.checkOpen(); err != nil {
		return err
	}
	values := make(map[string][]byte, len(records))
	for _, p := range records {
		if strings.TrimSpace(p.ID) == "" {
			return ErrInvalidID
		}
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal pokemon %s: %w", p.ID, err)
		}
		values[p.ID] = data
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := []byte(pokemonPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().KeyCopy(nil)
			if _, ok := values[string(k[len(prefix):])]; !ok {
				stale = append(stale, k)
			}
		}
		it.Close()

		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return fmt.Errorf("delete %s: %w", k, err)
			}
		}
		for id, data := range values {
			if err := txn.Set(key(id), data); err != nil {
				return fmt.Errorf("set pokemon %s: %w", id, err)
			}
		}
		return nil
	})
}

// Count returns the number of records. Read failures count as zero.
func (s *BadgerStore) Count(ctx context.Context) int {
	if s.closed.Load() {
		return 0
	}
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(pokemonPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		s.log.Warn(ctx, "count failed", logger.String("backend", backendBadger), logger.Error(err))
		observe(backendBadger, "count", time.Now(), err)
		return 0
	}
	return n
}

// Close stops the GC loop and closes the database. Later calls return
// ErrClosed.
func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close badger: %w", err)
	}
	return nil
}

func (s *BadgerStore) startValueLogGC(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.gcInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runValueLogGC()
			}
		}
	}()
}

// runValueLogGC rewrites value log files until badger reports nothing left to reclaim.
func (s *BadgerStore) runValueLogGC() {
	for {
		if err := s.db.RunValueLogGC(gcDiscardRatio); err != nil {
			return
		}
	}
}
