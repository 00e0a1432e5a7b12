// Package service provides the collection service behind the HTTP API and CLI.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/dexkeeper/internal/adapters/refdata"
	"github.com/okian/dexkeeper/internal/adapters/repository"
	"github.com/okian/dexkeeper/internal/domain/analytics"
	"github.com/okian/dexkeeper/internal/domain/browse"
	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/internal/domain/stat"
	"github.com/okian/dexkeeper/internal/validation"
	"github.com/okian/dexkeeper/pkg/logger"
	"github.com/okian/dexkeeper/pkg/metrics"
)

const defaultMaxPageSize = 200

// Service owns the collection and answers every read and write on it.
type Service struct {
	// mu guards lifecycle state and serializes writes so that
	// multi-step mutations (import with replace) are atomic to readers.
	mu sync.RWMutex

	store       repository.Store
	refs        *refdata.Provider
	generations []analytics.Generation

	now         func() time.Time
	newID       func() string
	maxPageSize int

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		generations: analytics.Generations(),
		now:         time.Now,
		newID:       uuid.NewString,
		maxPageSize: defaultMaxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start fills in defaults for the store and reference data and marks the
// service ready. Calling Start twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory store")
	}
	if s.refs == nil {
		refs, err := refdata.Embedded()
		if err != nil {
			return fmt.Errorf("load reference data: %w", err)
		}
		s.refs = refs
	}

	count := s.store.Count(ctx)
	metrics.UpdateCollectionSize(count)

	s.started = true
	s.logger.Info(ctx, "collection service started",
		logger.Int("records", count),
		logger.Int("species", len(s.refs.ListSpecies(ctx))),
		logger.Int("maxPageSize", s.maxPageSize),
	)
	return nil
}

// Stop closes the store. The service can not be restarted afterwards with the same store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "close store", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "collection service stopped")
}

// References returns the reference tables. Nil before Start.
func (s *Service) References() *refdata.Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refs
}

// Generations returns the generation table in use.
func (s *Service) Generations() []analytics.Generation {
	return append([]analytics.Generation(nil), s.generations...)
}

// Add stores a new record built from draft. Any id or createdAt on draft is
// replaced. Missing name and types are filled from the species table.
func (s *Service) Add(ctx context.Context, draft model.Pokemon) (model.Pokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Pokemon{}, ErrNotStarted
	}

	p := s.prepare(ctx, draft)
	p.ID = s.newID()
	p.CreatedAt = s.now().UTC()
	if err := validate(p); err != nil {
		return model.Pokemon{}, err
	}
	if err := s.store.Put(ctx, p); err != nil {
		return model.Pokemon{}, fmt.Errorf("store pokemon: %w", err)
	}

	s.changed(ctx, "add")
	s.logger.Debug(ctx, "pokemon added", logger.String("id", p.ID), logger.Int("species", p.SpeciesID))
	return p, nil
}

// Update replaces the mutable fields of record id with edit.
func (s *Service) Update(ctx context.Context, id string, edit model.Edit) (model.Pokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Pokemon{}, ErrNotStarted
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return model.Pokemon{}, err
	}
	edit.Nature = canonicalNature(edit.Nature)
	edit.Project = canonicalProject(edit.Project)
	if err := validate(edit); err != nil {
		return model.Pokemon{}, err
	}
	p.ApplyEdit(edit)
	if err := s.store.Put(ctx, p); err != nil {
		return model.Pokemon{}, fmt.Errorf("store pokemon: %w", err)
	}

	s.changed(ctx, "update")
	return p, nil
}

// Remove deletes record id.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, "remove")
	return nil
}

// Clear deletes every record.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	s.changed(ctx, "clear")
	s.logger.Info(ctx, "collection cleared")
	return nil
}

// Get returns record id.
func (s *Service) Get(ctx context.Context, id string) (model.Pokemon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.Pokemon{}, ErrNotStarted
	}
	return s.store.Get(ctx, id)
}

// List returns one page of the collection. Limit is capped at the maximum page size.
func (s *Service) List(ctx context.Context, q browse.Query) (browse.Page, error) {
	records, err := s.snapshot(ctx)
	if err != nil {
		return browse.Page{}, err
	}
	if q.Limit <= 0 || q.Limit > s.maxPageSize {
		q.Limit = s.maxPageSize
	}
	page, err := browse.Apply(records, q, s.generations)
	if err != nil {
		return browse.Page{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return page, nil
}

// Analytics computes the analytics snapshot of the whole collection.
func (s *Service) Analytics(ctx context.Context) (analytics.Snapshot, error) {
	records, err := s.snapshot(ctx)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	start := time.Now()
	snap := analytics.Compute(records,
		analytics.WithClock(s.now),
		analytics.WithGenerations(s.generations),
	)
	metrics.RecordAnalyticsLatency(float64(time.Since(start).Microseconds()) / 1000)
	return snap, nil
}

// Status reports lifecycle and size information for monitoring.
func (s *Service) Status(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := map[string]any{
		"started":     s.started,
		"maxPageSize": s.maxPageSize,
		"generations": len(s.generations),
	}
	if s.started {
		count := s.store.Count(ctx)
		status["records"] = count
		status["species"] = len(s.refs.ListSpecies(ctx))
		status["moves"] = len(s.refs.ListMoves(ctx))
		metrics.UpdateCollectionSize(count)
	}
	return status
}

// snapshot reads the whole collection under the read lock.
func (s *Service) snapshot(ctx context.Context) ([]model.Pokemon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	return records, nil
}

// changed records a mutation. Callers hold the write lock.
func (s *Service) changed(ctx context.Context, kind string) {
	metrics.RecordCollectionChange(kind)
	metrics.UpdateCollectionSize(s.store.Count(ctx))
}

// prepare canonicalizes free-text fields and fills species details.
func (s *Service) prepare(ctx context.Context, p model.Pokemon) model.Pokemon {
	p = p.Clone()
	p.Name = strings.TrimSpace(p.Name)
	p.Nature = canonicalNature(p.Nature)
	p.Project = canonicalProject(p.Project)
	for i, t := range p.Types {
		p.Types[i] = strings.ToLower(strings.TrimSpace(t))
	}

	if p.Name != "" && len(p.Types) > 0 {
		return p
	}
	sp, err := s.refs.SpeciesByID(ctx, p.SpeciesID)
	if err != nil {
		return p
	}
	if p.Name == "" {
		p.Name = sp.Name
	}
	if len(p.Types) == 0 {
		p.Types = sp.Types
	}
	return p
}

func canonicalNature(name string) string {
	if n, ok := stat.LookupNature(name); ok {
		return n.Name
	}
	return strings.TrimSpace(name)
}

func canonicalProject(p model.Project) model.Project {
	if parsed, ok := model.ParseProject(string(p)); ok {
		return parsed
	}
	return p
}

func validate(v any) error {
	if err := validation.ValidateStruct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
