package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/dexkeeper/internal/adapters/refdata"
	"github.com/okian/dexkeeper/internal/domain/dex"
	"github.com/okian/dexkeeper/internal/domain/stat"
)

// StatReport is the effective stat line of one build.
type StatReport struct {
	PokemonID string       `json:"id,omitempty"`
	SpeciesID int          `json:"pokemonId,omitempty"`
	Name      string       `json:"name,omitempty"`
	Level     int          `json:"level"`
	Nature    string       `json:"nature"`
	Base      stat.StatSet `json:"base"`
	IVs       stat.StatSet `json:"ivs"`
	EVs       stat.StatSet `json:"evs"`
	Stats     stat.StatSet `json:"stats"`
	Total     int          `json:"total"`
}

// CalcInput describes a build for CalculateStats. Base wins over SpeciesID
// when both are given.
type CalcInput struct {
	SpeciesID int           `json:"pokemonId"`
	Base      *stat.StatSet `json:"base,omitempty"`
	IVs       stat.StatSet  `json:"ivs"`
	EVs       stat.StatSet  `json:"evs"`
	Level     int           `json:"level"`
	Nature    string        `json:"nature"`
}

// EffectiveStats computes the stats of record id from its species' base stats.
func (s *Service) EffectiveStats(ctx context.Context, id string) (StatReport, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return StatReport{}, err
	}
	sp, err := s.baseSpecies(ctx, p.SpeciesID)
	if err != nil {
		return StatReport{}, err
	}
	r := report(sp.BaseStats, p.IVs, p.EVs, p.Level, p.Nature)
	r.PokemonID = p.ID
	r.SpeciesID = p.SpeciesID
	r.Name = p.Name
	return r, nil
}

// CalculateStats computes a stat line for an arbitrary build.
func (s *Service) CalculateStats(ctx context.Context, in CalcInput) (StatReport, error) {
	if in.Level < stat.MinLevel || in.Level > stat.MaxLevel {
		return StatReport{}, fmt.Errorf("%w: level must be between %d and %d", ErrInvalidInput, stat.MinLevel, stat.MaxLevel)
	}
	if in.Base != nil {
		return report(*in.Base, in.IVs, in.EVs, in.Level, in.Nature), nil
	}
	if in.SpeciesID <= 0 {
		return StatReport{}, fmt.Errorf("%w: base stats or pokemonId required", ErrInvalidInput)
	}
	sp, err := s.baseSpecies(ctx, in.SpeciesID)
	if err != nil {
		return StatReport{}, err
	}
	r := report(sp.BaseStats, in.IVs, in.EVs, in.Level, in.Nature)
	r.SpeciesID = in.SpeciesID
	r.Name = sp.Name
	return r, nil
}

// baseSpecies finds the species entry for id, falling back to its canonical species.
func (s *Service) baseSpecies(ctx context.Context, id int) (refdata.Species, error) {
	refs := s.References()
	if refs == nil {
		return refdata.Species{}, ErrNotStarted
	}
	sp, err := refs.SpeciesByID(ctx, id)
	if errors.Is(err, refdata.ErrNotFound) && dex.Normalize(id) != id {
		sp, err = refs.SpeciesByID(ctx, dex.Normalize(id))
	}
	if err != nil {
		return refdata.Species{}, fmt.Errorf("%w: %d", ErrUnknownSpecies, id)
	}
	return sp, nil
}

func report(base, ivs, evs stat.StatSet, level int, nature string) StatReport {
	stats := stat.Compute(base, evs, ivs, level, nature)
	return StatReport{
		Level:  level,
		Nature: canonicalNature(nature),
		Base:   base,
		IVs:    ivs,
		EVs:    evs,
		Stats:  stats,
		Total:  stats.Total(),
	}
}
