// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"

	"github.com/okian/dexkeeper/internal/domain/stat"
)

// EarliestCaughtDate is the first capture date CaughtAt accepts. The games
// date from 1996.
var EarliestCaughtDate = time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC)

// Accepted layouts for CaughtDate, tried in order.
var caughtDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// Pokemon is one owned catch in the collection. The JSON shape is the
// import/export format.
type Pokemon struct {
	ID        string   `json:"id"`                                   // collection-scoped id, assigned at creation
	SpeciesID int      `json:"pokemonId" validate:"min=1"`           // species or alternate-form id
	Name      string   `json:"name" validate:"required,max=64"`      // display name, possibly "base-form"
	Types     []string `json:"types" validate:"max=2,dive,required"` // first entry is the primary type

	Level   int          `json:"level" validate:"min=1,max=100"`
	Nature  string       `json:"nature" validate:"omitempty,nature"`
	IVs     stat.StatSet `json:"ivs"`
	EVs     stat.StatSet `json:"evs"`
	Ability string       `json:"ability,omitempty"`
	Gender  string       `json:"gender,omitempty"`
	Shiny   bool         `json:"isShiny"`
	Moves   []string     `json:"moves,omitempty" validate:"max=4"`

	CaughtDate      string `json:"caughtDate,omitempty" validate:"omitempty,caughtdate"`
	Location        string `json:"location,omitempty"`
	Game            string `json:"game,omitempty"`
	Pokeball        string `json:"pokeball,omitempty"`
	OriginalTrainer string `json:"originalTrainer,omitempty"`
	TrainerID       string `json:"trainerId,omitempty"`
	Comments        string `json:"comments,omitempty"`

	Project   Project   `json:"project,omitempty" validate:"omitempty,project"`
	Favorite  bool      `json:"isFavorite,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PrimaryType returns the lower-cased first type, or "" when none is set.
func (p Pokemon) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(p.Types[0]))
}

// CaughtAt parses CaughtDate. ok is false when the date is missing, malformed
// or before EarliestCaughtDate.
func (p Pokemon) CaughtAt() (time.Time, bool) {
	raw := strings.TrimSpace(p.CaughtDate)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range caughtDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, !t.Before(EarliestCaughtDate)
		}
	}
	return time.Time{}, false
}

// HasProject reports whether the record is tagged with a known project.
func (p Pokemon) HasProject() bool {
	return p.Project.Valid()
}

// Edit carries the mutable fields of a record. Identity and the species
// reference (id, name, types) are not part of it.
type Edit struct {
	Level           int          `json:"level" validate:"min=1,max=100"`
	Nature          string       `json:"nature" validate:"omitempty,nature"`
	IVs             stat.StatSet `json:"ivs"`
	EVs             stat.StatSet `json:"evs"`
	Ability         string       `json:"ability,omitempty"`
	Gender          string       `json:"gender,omitempty"`
	Shiny           bool         `json:"isShiny"`
	Moves           []string     `json:"moves,omitempty" validate:"max=4"`
	CaughtDate      string       `json:"caughtDate,omitempty" validate:"omitempty,caughtdate"`
	Location        string       `json:"location,omitempty"`
	Game            string       `json:"game,omitempty"`
	Pokeball        string       `json:"pokeball,omitempty"`
	OriginalTrainer string       `json:"originalTrainer,omitempty"`
	TrainerID       string       `json:"trainerId,omitempty"`
	Comments        string       `json:"comments,omitempty"`
	Project         Project      `json:"project,omitempty" validate:"omitempty,project"`
	Favorite        bool         `json:"isFavorite,omitempty"`
}

// EditOf returns the mutable fields of p as an Edit.
func EditOf(p Pokemon) Edit {
	return Edit{
		Level:           p.Level,
		Nature:          p.Nature,
		IVs:             p.IVs,
		EVs:             p.EVs,
		Ability:         p.Ability,
		Gender:          p.Gender,
		Shiny:           p.Shiny,
		Moves:           append([]string(nil), p.Moves...),
		CaughtDate:      p.CaughtDate,
		Location:        p.Location,
		Game:            p.Game,
		Pokeball:        p.Pokeball,
		OriginalTrainer: p.OriginalTrainer,
		TrainerID:       p.TrainerID,
		Comments:        p.Comments,
		Project:         p.Project,
		Favorite:        p.Favorite,
	}
}

// ApplyEdit overwrites every mutable field of p with e.
func (p *Pokemon) ApplyEdit(e Edit) {
	p.Level = e.Level
	p.Nature = e.Nature
	p.IVs = e.IVs
	p.EVs = e.EVs
	p.Ability = e.Ability
	p.Gender = e.Gender
	p.Shiny = e.Shiny
	p.Moves = append([]string(nil), e.Moves...)
	p.CaughtDate = e.CaughtDate
	p.Location = e.Location
	p.Game = e.Game
	p.Pokeball = e.Pokeball
	p.OriginalTrainer = e.OriginalTrainer
	p.TrainerID = e.TrainerID
	p.Comments = e.Comments
	p.Project = e.Project
	p.Favorite = e.Favorite
}

// Clone returns a copy of p that shares no slices with it.
func (p Pokemon) Clone() Pokemon {
	c := p
	c.Types = append([]string(nil), p.Types...)
	c.Moves = append([]string(nil), p.Moves...)
	return c
}
