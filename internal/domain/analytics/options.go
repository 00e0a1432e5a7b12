package analytics

import "time"

// Option applies a configuration option to Compute.
type Option func(*options)

type options struct {
	now         func() time.Time
	generations []Generation
}

// WithClock sets the clock used to end the growth series.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithGenerations replaces the generation table.
func WithGenerations(table []Generation) Option {
	return func(o *options) {
		if len(table) > 0 {
			o.generations = table
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		now:         time.Now,
		generations: generations,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
