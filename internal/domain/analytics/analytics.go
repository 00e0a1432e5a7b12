// Package analytics derives completion, growth and milestone statistics
// from a collection. Every function is pure and never mutates its input.
package analytics

import (
	"github.com/okian/dexkeeper/internal/domain/dex"
	"github.com/okian/dexkeeper/internal/domain/model"
)

const fullPercentage = 100

// GenerationProgress is the completion of one generation.
type GenerationProgress struct {
	Generation
	Caught           int     `json:"caught"`
	Shiny            int     `json:"shiny"`
	Total            int     `json:"total"`
	CaughtPercentage float64 `json:"caughtPercentage"`
	ShinyPercentage  float64 `json:"shinyPercentage"`
	Complete         bool    `json:"complete"`
}

// Snapshot is the derived view of a collection at one instant.
type Snapshot struct {
	// TotalCaught counts records, including repeat catches of a species.
	TotalCaught int `json:"totalCaught"`
	// UniqueSpecies counts distinct canonical species ids.
	UniqueSpecies int `json:"uniqueSpecies"`
	// UniqueShiny counts distinct canonical species ids caught shiny.
	UniqueShiny int `json:"uniqueShiny"`
	ShinyCaught int `json:"shinyCaught"`

	TotalSpecies         int     `json:"totalSpecies"`
	CompletionPercentage float64 `json:"completionPercentage"`
	ShinyPercentage      float64 `json:"shinyPercentage"`
	FavoriteCount        int     `json:"favoriteCount"`

	Generations   []GenerationProgress `json:"generations"`
	TypeCounts    map[string]int       `json:"typeCounts"`
	ProjectCounts map[string]int       `json:"projectCounts"`
	Growth        []MonthBucket        `json:"growth"`
	Milestones    []Milestone          `json:"milestones"`
}

// Compute builds a Snapshot of records.
func Compute(records []model.Pokemon, opts ...Option) Snapshot {
	o := newOptions(opts)

	species := make(map[int]struct{})
	shiny := make(map[int]struct{})
	snap := Snapshot{
		TotalCaught:   len(records),
		TypeCounts:    make(map[string]int),
		ProjectCounts: make(map[string]int),
	}

	for _, p := range records {
		id := dex.Normalize(p.SpeciesID)
		species[id] = struct{}{}
		if p.Shiny {
			shiny[id] = struct{}{}
			snap.ShinyCaught++
		}
		if t := p.PrimaryType(); t != "" {
			snap.TypeCounts[t]++
		}
		if p.HasProject() {
			snap.ProjectCounts[string(p.Project)]++
		}
		if p.Favorite {
			snap.FavoriteCount++
		}
	}

	snap.UniqueSpecies = len(species)
	snap.UniqueShiny = len(shiny)
	snap.Generations = generationProgress(o.generations, species, shiny)

	snap.TotalSpecies = rosterSize(o.generations)
	caughtInRoster, shinyInRoster := 0, 0
	for _, g := range snap.Generations {
		caughtInRoster += g.Caught
		shinyInRoster += g.Shiny
	}
	snap.CompletionPercentage = percentage(caughtInRoster, snap.TotalSpecies)
	snap.ShinyPercentage = percentage(shinyInRoster, snap.TotalSpecies)

	snap.Growth = GrowthSeries(records, o.now())
	snap.Milestones = DetectMilestones(records)
	return snap
}

func generationProgress(table []Generation, species, shiny map[int]struct{}) []GenerationProgress {
	out := make([]GenerationProgress, 0, len(table))
	for _, g := range table {
		gp := GenerationProgress{Generation: g, Total: g.Total()}
		for id := range species {
			if g.Contains(id) {
				gp.Caught++
			}
		}
		for id := range shiny {
			if g.Contains(id) {
				gp.Shiny++
			}
		}
		gp.CaughtPercentage = percentage(gp.Caught, gp.Total)
		gp.ShinyPercentage = percentage(gp.Shiny, gp.Total)
		gp.Complete = gp.CaughtPercentage == fullPercentage
		out = append(out, gp)
	}
	return out
}

func percentage(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total) * fullPercentage
}
