// Package seed generates sample collections from the reference data, for
// demos and load tests.
package seed

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/okian/dexkeeper/internal/adapters/refdata"
	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/internal/domain/stat"
	"github.com/okian/dexkeeper/pkg/logger"
)

// Errors.
var (
	ErrNoSpecies    = errors.New("no species to draw from")
	ErrInvalidCount = errors.New("count must not be negative")
)

// Defaults.
const (
	DefaultSeed      = 1
	DefaultShinyRate = 0.05
	defaultSpanDays  = 3 * 365
	createdInterval  = time.Minute
)

// Percent chances of optional fields.
const (
	undatedPercent  = 10
	projectPercent  = 35
	favoritePercent = 10
	movesPercent    = 60
)

// Training profiles.
const (
	profileWild = iota
	profileCasual
	profileCompetitive
	profileCount
)

var (
	games     = []string{"Red", "Gold", "Ruby", "Diamond", "Black", "X", "Sun", "Sword", "Scarlet", "Legends: Arceus"}
	pokeballs = []string{"Poke Ball", "Great Ball", "Ultra Ball", "Premier Ball", "Luxury Ball", "Dusk Ball", "Quick Ball"}
	locations = []string{"Route 1", "Viridian Forest", "Mt. Moon", "Safari Zone", "Victory Road", "Wild Area", "Area Zero"}
	trainers  = []string{"Ash", "Misty", "Brock", "May", "Dawn", "Serena"}
	genders   = []string{"male", "female"}
)

// SpeciesSource lists the species records may be drawn from.
type SpeciesSource interface {
	ListSpecies(ctx context.Context) []refdata.Species
}

// Generator builds deterministic sample collections.
type Generator struct {
	species   SpeciesSource
	seed      uint64
	shinyRate float64
	from, to  time.Time
	now       func() time.Time
	log       logger.Logger
}

// New creates a generator drawing from species.
func New(species SpeciesSource, opts ...Option) *Generator {
	g := &Generator{
		species:   species,
		seed:      DefaultSeed,
		shinyRate: DefaultShinyRate,
		now:       time.Now,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.from.IsZero() {
		g.to = g.now().UTC().Truncate(24 * time.Hour)
		g.from = g.to.AddDate(0, 0, -defaultSpanDays)
	}
	return g
}

// Generate returns count records that pass collection validation. Ids come
// from the seeded stream, so the output depends only on the options.
func (g *Generator) Generate(ctx context.Context, count int) ([]model.Pokemon, error) {
	if count < 0 {
		return nil, ErrInvalidCount
	}
	pool := g.species.ListSpecies(ctx)
	if len(pool) == 0 {
		return nil, ErrNoSpecies
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], g.seed)
	src := rand.NewChaCha8(key)
	rng := rand.New(src)
	natures := stat.Natures()
	projects := model.Projects()
	days := int64(g.to.Sub(g.from)/(24*time.Hour)) + 1
	newest := g.now().UTC()

	out := make([]model.Pokemon, count)
	for i := range out {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generate record %d: %w", i, err)
		}
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return nil, fmt.Errorf("generate id: %w", err)
		}
		sp := pool[rng.IntN(len(pool))]

		p := model.Pokemon{
			ID:              id.String(),
			SpeciesID:       sp.ID,
			Name:            sp.Name,
			Types:           append([]string(nil), sp.Types...),
			Nature:          natures[rng.IntN(len(natures))].Name,
			Gender:          pick(rng, genders),
			Shiny:           rng.Float64() < g.shinyRate,
			Location:        pick(rng, locations),
			Game:            pick(rng, games),
			Pokeball:        pick(rng, pokeballs),
			OriginalTrainer: pick(rng, trainers),
			TrainerID:       fmt.Sprintf("%06d", rng.IntN(1000000)),
			CreatedAt:       newest.Add(-time.Duration(count-1-i) * createdInterval),
		}
		if len(sp.Abilities) > 0 {
			p.Ability = pick(rng, sp.Abilities)
		}
		p.Level, p.IVs, p.EVs = train(rng)
		if rng.IntN(100) >= undatedPercent {
			p.CaughtDate = g.from.AddDate(0, 0, int(rng.Int64N(days))).Format("2006-01-02")
		}
		if rng.IntN(100) < projectPercent {
			p.Project = projects[rng.IntN(len(projects))]
		}
		p.Favorite = rng.IntN(100) < favoritePercent
		if rng.IntN(100) < movesPercent {
			p.Moves = []string{"protect", "substitute"}[:1+rng.IntN(2)]
		}
		out[i] = p
	}

	g.log.Debug(ctx, "generated sample collection",
		logger.Int("count", count),
		logger.Any("seed", g.seed),
	)
	return out, nil
}

// train draws a level and stat spread for one of the training profiles.
func train(rng *rand.Rand) (level int, ivs, evs stat.StatSet) {
	switch rng.IntN(profileCount) {
	case profileWild:
		level = 2 + rng.IntN(50)
		for _, s := range stat.Stats() {
			ivs.Set(s, rng.IntN(stat.MaxIV+1))
		}
	case profileCasual:
		level = 20 + rng.IntN(61)
		for _, s := range stat.Stats() {
			ivs.Set(s, rng.IntN(stat.MaxIV+1))
		}
		evs = spread(rng, rng.IntN(stat.MaxEVTotal+1))
	case profileCompetitive:
		level = stat.MaxLevel
		for _, s := range stat.Stats() {
			ivs.Set(s, stat.MaxIV-rng.IntN(2))
		}
		evs = spread(rng, stat.MaxEVTotal)
	}
	return level, ivs, evs
}

// spread distributes up to budget EVs over the stats in random order,
// never more than MaxEV on one stat.
func spread(rng *rand.Rand, budget int) stat.StatSet {
	var evs stat.StatSet
	order := stat.Stats()
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	for _, s := range order {
		if budget == 0 {
			break
		}
		v := min(stat.MaxEV, 1+rng.IntN(budget))
		evs.Set(s, v)
		budget -= v
	}
	return evs
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}
