package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/dexkeeper/internal/adapters/refdata"
	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/internal/domain/stat"
	"github.com/okian/dexkeeper/internal/validation"
)

type noSpecies struct{}

func (noSpecies) ListSpecies(context.Context) []refdata.Species { return nil }

func TestGenerate(t *testing.T) {
	Convey("Given the embedded reference data", t, func() {
		refs, err := refdata.Embedded()
		So(err, ShouldBeNil)
		ctx := context.Background()
		now := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
		clock := func() time.Time { return now }

		Convey("When generating twice with the same seed", func() {
			a, err := New(refs, WithSeed(42), WithClock(clock)).Generate(ctx, 50)
			So(err, ShouldBeNil)
			b, err := New(refs, WithSeed(42), WithClock(clock)).Generate(ctx, 50)
			So(err, ShouldBeNil)

			Convey("Then the collections are identical", func() {
				So(a, ShouldResemble, b)
			})

			Convey("Then a different seed gives a different collection", func() {
				c, err := New(refs, WithSeed(43), WithClock(clock)).Generate(ctx, 50)
				So(err, ShouldBeNil)
				So(c, ShouldNotResemble, a)
			})
		})

		Convey("When generating a large collection", func() {
			from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
			records, err := New(refs, WithSeed(7), WithClock(clock), WithDateRange(from, to)).Generate(ctx, 300)
			So(err, ShouldBeNil)
			So(len(records), ShouldEqual, 300)

			Convey("Then every record passes validation", func() {
				for _, p := range records {
					So(validation.ValidateStruct(p), ShouldBeNil)
				}
			})

			Convey("Then spreads stay within training limits", func() {
				for _, p := range records {
					So(p.EVs.Total(), ShouldBeLessThanOrEqualTo, stat.MaxEVTotal)
					for _, s := range stat.Stats() {
						So(p.EVs.Get(s), ShouldBeBetweenOrEqual, 0, stat.MaxEV)
						So(p.IVs.Get(s), ShouldBeBetweenOrEqual, 0, stat.MaxIV)
					}
				}
			})

			Convey("Then capture dates fall in the range", func() {
				for _, p := range records {
					at, ok := p.CaughtAt()
					if !ok {
						So(p.CaughtDate, ShouldBeEmpty)
						continue
					}
					So(at.Before(from), ShouldBeFalse)
					So(at.After(to), ShouldBeFalse)
				}
			})

			Convey("Then ids are unique and creation times ascend to now", func() {
				seen := make(map[string]bool, len(records))
				for i, p := range records {
					So(seen[p.ID], ShouldBeFalse)
					seen[p.ID] = true
					if i > 0 {
						So(p.CreatedAt.After(records[i-1].CreatedAt), ShouldBeTrue)
					}
				}
				So(records[len(records)-1].CreatedAt, ShouldEqual, now)
			})
		})

		Convey("When the date range starts before the first games", func() {
			g := New(refs, WithDateRange(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(1997, 1, 1, 0, 0, 0, 0, time.UTC)))
			So(g.from, ShouldEqual, model.EarliestCaughtDate)
		})

		Convey("When the shiny rate is one", func() {
			records, err := New(refs, WithShinyRate(1)).Generate(ctx, 20)
			So(err, ShouldBeNil)
			for _, p := range records {
				So(p.Shiny, ShouldBeTrue)
			}
		})

		Convey("When the shiny rate is out of range", func() {
			g := New(refs, WithShinyRate(2))
			So(g.shinyRate, ShouldEqual, DefaultShinyRate)
		})

		Convey("When the count is zero", func() {
			records, err := New(refs).Generate(ctx, 0)
			So(err, ShouldBeNil)
			So(records, ShouldBeEmpty)
		})

		Convey("When the count is negative", func() {
			_, err := New(refs).Generate(ctx, -1)
			So(err, ShouldEqual, ErrInvalidCount)
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := New(refs).Generate(cctx, 5)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given no species", t, func() {
		_, err := New(noSpecies{}).Generate(context.Background(), 3)
		So(err, ShouldEqual, ErrNoSpecies)
	})
}
