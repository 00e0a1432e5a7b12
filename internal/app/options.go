package service

import (
	"time"

	"github.com/okian/dexkeeper/internal/adapters/refdata"
	"github.com/okian/dexkeeper/internal/adapters/repository"
	"github.com/okian/dexkeeper/internal/domain/analytics"
	"github.com/okian/dexkeeper/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the persistence store. The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithReferenceData sets the species and move tables.
func WithReferenceData(refs *refdata.Provider) Option {
	return func(s *Service) {
		if refs != nil {
			s.refs = refs
		}
	}
}

// WithClock overrides the time source used for createdAt and analytics.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithMaxPageSize caps the number of records List returns at once.
func WithMaxPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPageSize = n
		}
	}
}

// WithGenerations replaces the generation table used by analytics and browse.
func WithGenerations(table []analytics.Generation) Option {
	return func(s *Service) {
		if len(table) > 0 {
			s.generations = table
		}
	}
}
