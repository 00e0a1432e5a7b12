package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/okian/dexkeeper/internal/domain/analytics"
	"github.com/okian/dexkeeper/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func catch(id string, species int, shiny bool, date string, types ...string) model.Pokemon {
	return model.Pokemon{ID: id, SpeciesID: species, Name: fmt.Sprintf("species-%d", species), Shiny: shiny, CaughtDate: date, Types: types}
}

func TestGenerations(t *testing.T) {
	Convey("Given the built-in generation table", t, func() {
		table := analytics.Generations()

		Convey("Then ranges are contiguous from 1 and never overlap", func() {
			So(table, ShouldHaveLength, 9)
			So(table[0].MinDex, ShouldEqual, 1)
			for i := 1; i < len(table); i++ {
				So(table[i].MinDex, ShouldEqual, table[i-1].MaxDex+1)
				So(table[i].Total(), ShouldBeGreaterThan, 0)
			}
			So(table[len(table)-1].MaxDex, ShouldEqual, 1025)
		})

		Convey("Then Kanto holds the first 151", func() {
			So(table[0].Region, ShouldEqual, "Kanto")
			So(table[0].Total(), ShouldEqual, 151)
		})

		Convey("Then lookups find the owning generation", func() {
			g, ok := analytics.GenerationOf(table, 445)
			So(ok, ShouldBeTrue)
			So(g.Region, ShouldEqual, "Sinnoh")
			_, ok = analytics.GenerationOf(table, 10100)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestCompute_Empty(t *testing.T) {
	Convey("Given an empty collection", t, func() {
		snap := analytics.Compute(nil, analytics.WithClock(clock))

		Convey("Then every count is zero", func() {
			So(snap.TotalCaught, ShouldEqual, 0)
			So(snap.UniqueSpecies, ShouldEqual, 0)
			So(snap.UniqueShiny, ShouldEqual, 0)
			So(snap.CompletionPercentage, ShouldEqual, 0)
			So(snap.Milestones, ShouldBeEmpty)
		})

		Convey("And every generation is at 0%", func() {
			So(snap.Generations, ShouldHaveLength, 9)
			for _, g := range snap.Generations {
				So(g.Caught, ShouldEqual, 0)
				So(g.CaughtPercentage, ShouldEqual, 0)
				So(g.ShinyPercentage, ShouldEqual, 0)
				So(g.Complete, ShouldBeFalse)
			}
		})

		Convey("And the growth series falls back to ten years of empty months", func() {
			So(snap.Growth, ShouldHaveLength, 121)
			So(snap.Growth[0].Month, ShouldEqual, "2014-06")
			So(snap.Growth[len(snap.Growth)-1].Month, ShouldEqual, "2024-06")
			So(snap.Growth[len(snap.Growth)-1].Cumulative, ShouldEqual, 0)
		})
	})
}

func TestCompute_Uniqueness(t *testing.T) {
	Convey("Given records that differ only by form", t, func() {
		Convey("When a regional form and its base species are both caught", func() {
			snap := analytics.Compute([]model.Pokemon{
				catch("a", 26, false, ""),
				catch("b", 10100, false, ""),
			}, analytics.WithClock(clock))

			Convey("Then they collapse to one species but remain two catches", func() {
				So(snap.UniqueSpecies, ShouldEqual, 1)
				So(snap.TotalCaught, ShouldEqual, 2)
			})
		})

		Convey("When Pikachu and Raichu-Alola are caught", func() {
			snap := analytics.Compute([]model.Pokemon{
				catch("a", 25, false, ""),
				catch("b", 10100, false, ""),
			}, analytics.WithClock(clock))

			Convey("Then they are distinct species", func() {
				So(snap.UniqueSpecies, ShouldEqual, 2)
				So(snap.Generations[0].Caught, ShouldEqual, 2)
			})
		})

		Convey("When the same species is shiny twice and plain once", func() {
			snap := analytics.Compute([]model.Pokemon{
				catch("a", 133, true, ""),
				catch("b", 133, true, ""),
				catch("c", 133, false, ""),
				catch("d", 152, false, ""),
			}, analytics.WithClock(clock))

			So(snap.UniqueSpecies, ShouldEqual, 2)
			So(snap.UniqueShiny, ShouldEqual, 1)
			So(snap.ShinyCaught, ShouldEqual, 2)
			So(snap.Generations[0].Shiny, ShouldEqual, 1)
			So(snap.Generations[1].Shiny, ShouldEqual, 0)
			So(snap.Generations[1].Caught, ShouldEqual, 1)
		})
	})
}

func TestCompute_GenerationCompletion(t *testing.T) {
	Convey("Given a small custom generation table", t, func() {
		table := []analytics.Generation{
			{ID: 1, Name: "Tiny", Region: "Test", MinDex: 1, MaxDex: 4},
			{ID: 2, Name: "Next", Region: "Test", MinDex: 5, MaxDex: 8},
		}
		records := []model.Pokemon{
			catch("a", 1, true, ""),
			catch("b", 2, false, ""),
			catch("c", 3, false, ""),
			catch("d", 4, false, ""),
			catch("e", 5, false, ""),
		}
		snap := analytics.Compute(records, analytics.WithClock(clock), analytics.WithGenerations(table))

		Convey("Then a fully caught range is complete", func() {
			So(snap.Generations[0].CaughtPercentage, ShouldEqual, 100)
			So(snap.Generations[0].Complete, ShouldBeTrue)
			So(snap.Generations[0].ShinyPercentage, ShouldEqual, 25)
		})

		Convey("And a partial range is not", func() {
			So(snap.Generations[1].CaughtPercentage, ShouldEqual, 25)
			So(snap.Generations[1].Complete, ShouldBeFalse)
		})

		Convey("And roster totals follow the table", func() {
			So(snap.TotalSpecies, ShouldEqual, 8)
			So(snap.CompletionPercentage, ShouldEqual, 62.5)
			So(snap.ShinyPercentage, ShouldEqual, 12.5)
		})
	})
}

func TestCompute_Breakdowns(t *testing.T) {
	Convey("Given records with types, projects and favorites", t, func() {
		a := catch("a", 4, false, "", "Fire")
		a.Project = model.ProjectTrophy
		a.Favorite = true
		b := catch("b", 7, false, "", "water")
		b.Project = model.Project("Bogus")
		c := catch("c", 6, false, "", "fire", "flying")

		snap := analytics.Compute([]model.Pokemon{a, b, c, catch("d", 1, false, "")}, analytics.WithClock(clock))

		So(snap.TypeCounts, ShouldResemble, map[string]int{"fire": 2, "water": 1})
		So(snap.ProjectCounts, ShouldResemble, map[string]int{"Trophy": 1})
		So(snap.FavoriteCount, ShouldEqual, 1)
	})
}

func TestGrowthSeries(t *testing.T) {
	Convey("Given dated and undated records", t, func() {
		records := []model.Pokemon{
			catch("a", 1, false, "2024-03-02"),
			catch("b", 2, true, "2024-03-28"),
			catch("c", 3, false, "2024-05-10T08:00:00Z"),
			catch("d", 4, false, ""),
			catch("e", 5, true, "not a date"),
		}
		series := analytics.GrowthSeries(records, fixedNow)

		Convey("Then the series runs from the earliest month to now", func() {
			So(series, ShouldHaveLength, 4)
			So(series[0].Month, ShouldEqual, "2024-03")
			So(series[3].Month, ShouldEqual, "2024-06")
		})

		Convey("And months hold new, shiny and cumulative counts", func() {
			So(series[0].Caught, ShouldEqual, 2)
			So(series[0].Shiny, ShouldEqual, 1)
			So(series[0].Cumulative, ShouldEqual, 2)
			So(series[1].Caught, ShouldEqual, 0)
			So(series[1].Cumulative, ShouldEqual, 2)
			So(series[2].Caught, ShouldEqual, 1)
			So(series[2].Cumulative, ShouldEqual, 3)
			So(series[3].Cumulative, ShouldEqual, 3)
		})

		Convey("And undated records are left out of the buckets", func() {
			total := 0
			for _, b := range series {
				total += b.Caught
			}
			So(total, ShouldEqual, 3)
		})
	})

	Convey("Given records spanning a year boundary", t, func() {
		series := analytics.GrowthSeries([]model.Pokemon{
			catch("a", 1, false, "2023-11-30"),
		}, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

		So(series, ShouldHaveLength, 4)
		So(series[1].Month, ShouldEqual, "2023-12")
		So(series[2].Month, ShouldEqual, "2024-01")
	})

	Convey("Given records all dated after now", t, func() {
		series := analytics.GrowthSeries([]model.Pokemon{
			catch("a", 1, false, "2030-01-01"),
		}, fixedNow)

		Convey("Then the series holds only the current month", func() {
			So(series, ShouldHaveLength, 1)
			So(series[0].Month, ShouldEqual, fixedNow.Format("2006-01"))
			So(series[0].Caught, ShouldEqual, 0)
		})
	})

	Convey("Given a record dated in year one", t, func() {
		series := analytics.GrowthSeries([]model.Pokemon{
			catch("a", 1, false, "0001-01-01"),
			catch("b", 2, false, "2024-05-10"),
		}, fixedNow)

		Convey("Then it is treated as undated", func() {
			So(series[0].Month, ShouldEqual, "2024-05")
			So(series[0].Caught, ShouldEqual, 1)
		})
	})
}

func TestDetectMilestones(t *testing.T) {
	Convey("Given three shiny catches in chronological order", t, func() {
		a := catch("A", 58, true, "2020-04-01", "fire")
		a.Project = model.ProjectTrophy
		b := catch("B", 77, true, "2021-02-01", "fire")
		b.Project = model.ProjectTrophy
		c := catch("C", 60, true, "2021-07-01", "water")
		c.Project = model.ProjectOther

		Convey("When they are stored out of chronological order", func() {
			ms := analytics.DetectMilestones([]model.Pokemon{c, a, b})

			Convey("Then A is first, a collection step, a new type, project and year", func() {
				So(ms, ShouldHaveLength, 3)
				So(ms[0].PokemonID, ShouldEqual, "A")
				So(ms[0].Position, ShouldEqual, 1)
				So(ms[0].Kinds, ShouldResemble, []analytics.MilestoneKind{
					analytics.MilestoneFirst,
					analytics.MilestoneCollection,
					analytics.MilestoneType,
					analytics.MilestoneProject,
					analytics.MilestoneYear,
				})
			})

			Convey("And B is only the first of 2021", func() {
				So(ms[1].PokemonID, ShouldEqual, "B")
				So(ms[1].Kinds, ShouldResemble, []analytics.MilestoneKind{analytics.MilestoneYear})
			})

			Convey("And C is a new type and project but not a new year", func() {
				So(ms[2].PokemonID, ShouldEqual, "C")
				So(ms[2].Kinds, ShouldResemble, []analytics.MilestoneKind{analytics.MilestoneType, analytics.MilestoneProject})
				So(ms[2].Has(analytics.MilestoneYear), ShouldBeFalse)
			})
		})
	})

	Convey("Given non-shiny records", t, func() {
		ms := analytics.DetectMilestones([]model.Pokemon{catch("x", 1, false, "2020-01-01", "grass")})
		So(ms, ShouldBeEmpty)
	})

	Convey("Given fifty shiny catches of one species and type", t, func() {
		var records []model.Pokemon
		start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 50; i++ {
			records = append(records, catch(fmt.Sprintf("r%02d", i), 19, true, start.AddDate(0, 0, i).Format("2006-01-02"), "normal"))
		}
		ms := analytics.DetectMilestones(records)

		Convey("Then positions 1, 25 and 50 are collection milestones", func() {
			var positions []int
			for _, m := range ms {
				if m.Has(analytics.MilestoneCollection) {
					positions = append(positions, m.Position)
				}
			}
			So(positions, ShouldResemble, []int{1, 25, 50})
		})
	})

	Convey("Given rare and common shiny catches", t, func() {
		common := catch("common", 19, true, "2020-01-01", "normal")
		starter := catch("starter", 4, true, "2020-02-01", "fire")
		form := catch("form", 10100, true, "2020-03-01", "electric")
		ms := analytics.DetectMilestones([]model.Pokemon{form, starter, common})

		Convey("Then only the earliest rare catch is flagged rare", func() {
			So(ms[0].Has(analytics.MilestoneRare), ShouldBeFalse)
			So(ms[1].PokemonID, ShouldEqual, "starter")
			So(ms[1].Has(analytics.MilestoneRare), ShouldBeTrue)
			So(ms[2].PokemonID, ShouldEqual, "form")
			So(ms[2].Has(analytics.MilestoneRare), ShouldBeFalse)
		})
	})

	Convey("Given shiny catches with missing dates", t, func() {
		undated := catch("undated", 1, true, "", "grass")
		dated := catch("dated", 19, true, "2023-05-05", "normal")
		sameDay := catch("same-day", 20, true, "2023-05-05", "normal")
		ms := analytics.DetectMilestones([]model.Pokemon{undated, dated, sameDay})

		Convey("Then dated catches come first in collection order", func() {
			So(ms[0].PokemonID, ShouldEqual, "dated")
			So(ms[0].Has(analytics.MilestoneFirst), ShouldBeTrue)
		})

		Convey("And the undated catch sorts last and never claims a year", func() {
			last := ms[len(ms)-1]
			So(last.PokemonID, ShouldEqual, "undated")
			So(last.Position, ShouldEqual, 3)
			So(last.Has(analytics.MilestoneYear), ShouldBeFalse)
			So(last.Has(analytics.MilestoneType), ShouldBeTrue)
			So(last.Has(analytics.MilestoneRare), ShouldBeTrue)
		})
	})
}

func TestIsRareShiny(t *testing.T) {
	Convey("Given the rare shiny predicate", t, func() {
		So(analytics.IsRareShiny(891), ShouldBeTrue)
		So(analytics.IsRareShiny(890), ShouldBeFalse)
		So(analytics.IsRareShiny(10100), ShouldBeTrue)
		So(analytics.IsRareShiny(1), ShouldBeTrue)
		So(analytics.IsRareShiny(149), ShouldBeTrue)
		So(analytics.IsRareShiny(25), ShouldBeFalse)
	})
}
