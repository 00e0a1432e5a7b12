package seed

import (
	"time"

	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/pkg/logger"
)

// Option configures a Generator.
type Option func(*Generator)

// WithSeed fixes the random sequence. Equal seeds give equal collections.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithShinyRate sets the probability in [0, 1] that a record is shiny.
func WithShinyRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate <= 1 {
			g.shinyRate = rate
		}
	}
}

// WithDateRange bounds the generated capture dates, inclusive. from is raised
// to model.EarliestCaughtDate.
func WithDateRange(from, to time.Time) Option {
	return func(g *Generator) {
		if from.Before(model.EarliestCaughtDate) {
			from = model.EarliestCaughtDate
		}
		if !to.Before(from) {
			g.from, g.to = from, to
		}
	}
}

// WithClock sets the time the newest record was created at.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}
