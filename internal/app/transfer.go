package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/pkg/logger"
	"github.com/okian/dexkeeper/pkg/metrics"
)

// ImportResult summarizes an import.
type ImportResult struct {
	Imported int  `json:"imported"`
	Replaced bool `json:"replaced"` // the collection was swapped for the import
	Total    int  `json:"total"`    // records after the import
}

// Export returns the whole collection in collection order.
func (s *Service) Export(ctx context.Context) ([]model.Pokemon, error) {
	return s.snapshot(ctx)
}

// Import writes records into the collection. Every record is validated
// before anything is written, so a bad record leaves the collection as it
// was. Records without an id get a new one; records without createdAt are
// stamped in input order. With replace the collection becomes exactly the
// imported records, otherwise records replace existing ones with the same
// id. The result is written in one store operation, so a store failure also
// leaves the collection as it was. A repeated id counts once and keeps its
// last value.
func (s *Service) Import(ctx context.Context, records []model.Pokemon, replace bool) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ImportResult{}, ErrNotStarted
	}

	now := s.now().UTC()
	prepared := make([]model.Pokemon, len(records))
	unique := make(map[string]struct{}, len(records))
	for i, r := range records {
		p := s.prepare(ctx, r)
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			p.ID = s.newID()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		}
		if err := validate(p); err != nil {
			return ImportResult{}, fmt.Errorf("record %d: %w", i, err)
		}
		prepared[i] = p
		unique[p.ID] = struct{}{}
	}

	next := prepared
	if !replace {
		existing, err := s.store.GetAll(ctx)
		if err != nil {
			return ImportResult{}, fmt.Errorf("read collection: %w", err)
		}
		next = append(existing, prepared...)
	}
	if err := s.store.Replace(ctx, next); err != nil {
		return ImportResult{}, fmt.Errorf("write collection: %w", err)
	}

	metrics.RecordImportedRecords(len(unique))
	s.changed(ctx, "import")
	result := ImportResult{Imported: len(unique), Replaced: replace, Total: s.store.Count(ctx)}
	s.logger.Info(ctx, "collection imported",
		logger.Int("imported", result.Imported),
		logger.Bool("replaced", replace),
		logger.Int("total", result.Total),
	)
	return result, nil
}
