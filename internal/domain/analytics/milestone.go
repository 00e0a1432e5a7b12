package analytics

import (
	"sort"
	"time"

	"github.com/okian/dexkeeper/internal/domain/dex"
	"github.com/okian/dexkeeper/internal/domain/model"
)

// collectionStep flags every n-th shiny catch.
const collectionStep = 25

// rareSpeciesThreshold marks species ids above it as rare shinies.
const rareSpeciesThreshold = 890

// MilestoneKind names one reason a shiny catch is notable.
type MilestoneKind string

// Milestone kinds, in the order they are reported.
const (
	MilestoneFirst      MilestoneKind = "first"
	MilestoneCollection MilestoneKind = "collection"
	MilestoneType       MilestoneKind = "type"
	MilestoneProject    MilestoneKind = "project"
	MilestoneRare       MilestoneKind = "rare"
	MilestoneYear       MilestoneKind = "year"
)

// Milestone is a shiny catch flagged with every kind it satisfies.
type Milestone struct {
	PokemonID  string          `json:"id"`
	SpeciesID  int             `json:"pokemonId"`
	Name       string          `json:"name"`
	CaughtDate string          `json:"caughtDate,omitempty"`
	Position   int             `json:"position"` // 1-indexed among shiny catches
	Kinds      []MilestoneKind `json:"kinds"`
}

// Has reports whether the milestone includes kind.
func (m Milestone) Has(kind MilestoneKind) bool {
	for _, k := range m.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

var starterSpecies = map[int]struct{}{
	1: {}, 4: {}, 7: {},
	152: {}, 155: {}, 158: {},
	252: {}, 255: {}, 258: {},
	387: {}, 390: {}, 393: {},
	495: {}, 498: {}, 501: {},
	650: {}, 653: {}, 656: {},
	722: {}, 725: {}, 728: {},
	810: {}, 813: {}, 816: {},
	906: {}, 909: {}, 912: {},
}

var pseudoLegendarySpecies = map[int]struct{}{
	147: {}, 148: {}, 149: {},
	246: {}, 247: {}, 248: {},
	371: {}, 372: {}, 373: {},
	374: {}, 375: {}, 376: {},
	443: {}, 444: {}, 445: {},
	633: {}, 634: {}, 635: {},
	704: {}, 705: {}, 706: {},
	782: {}, 783: {}, 784: {},
	885: {}, 886: {}, 887: {},
	996: {}, 997: {}, 998: {},
}

// IsRareShiny reports whether a shiny of speciesID counts as rare: a recent
// species, an alternate form, a starter or a pseudo-legendary line.
func IsRareShiny(speciesID int) bool {
	if speciesID > rareSpeciesThreshold || dex.IsAlternateForm(speciesID) {
		return true
	}
	if _, ok := starterSpecies[speciesID]; ok {
		return true
	}
	_, ok := pseudoLegendarySpecies[speciesID]
	return ok
}

type shinyCatch struct {
	p     model.Pokemon
	at    time.Time
	dated bool
}

// DetectMilestones walks the shiny records in capture order and returns the
// ones that satisfy at least one milestone kind.
//
// Order is by capture date ascending; records sharing a date keep their
// collection order. Records without a usable date come after every dated
// record, in collection order, and never count as a first of their year.
func DetectMilestones(records []model.Pokemon) []Milestone {
	catches := make([]shinyCatch, 0, len(records))
	for _, p := range records {
		if !p.Shiny {
			continue
		}
		at, ok := p.CaughtAt()
		catches = append(catches, shinyCatch{p: p, at: at, dated: ok})
	}
	sort.SliceStable(catches, func(i, j int) bool {
		a, b := catches[i], catches[j]
		if a.dated != b.dated {
			return a.dated
		}
		return a.dated && a.at.Before(b.at)
	})

	seenTypes := make(map[string]struct{})
	seenProjects := make(map[model.Project]struct{})
	seenYears := make(map[int]struct{})
	seenRare := false

	out := make([]Milestone, 0)
	for i, c := range catches {
		pos := i + 1
		var kinds []MilestoneKind

		if pos == 1 {
			kinds = append(kinds, MilestoneFirst)
		}
		if pos == 1 || pos%collectionStep == 0 {
			kinds = append(kinds, MilestoneCollection)
		}
		if t := c.p.PrimaryType(); t != "" {
			if _, seen := seenTypes[t]; !seen {
				seenTypes[t] = struct{}{}
				kinds = append(kinds, MilestoneType)
			}
		}
		if c.p.HasProject() {
			if _, seen := seenProjects[c.p.Project]; !seen {
				seenProjects[c.p.Project] = struct{}{}
				kinds = append(kinds, MilestoneProject)
			}
		}
		if !seenRare && IsRareShiny(c.p.SpeciesID) {
			seenRare = true
			kinds = append(kinds, MilestoneRare)
		}
		if c.dated {
			if _, seen := seenYears[c.at.Year()]; !seen {
				seenYears[c.at.Year()] = struct{}{}
				kinds = append(kinds, MilestoneYear)
			}
		}

		if len(kinds) == 0 {
			continue
		}
		out = append(out, Milestone{
			PokemonID:  c.p.ID,
			SpeciesID:  c.p.SpeciesID,
			Name:       c.p.Name,
			CaughtDate: c.p.CaughtDate,
			Position:   pos,
			Kinds:      kinds,
		})
	}
	return out
}
