// Package refdata serves species and move reference tables.
package refdata

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/okian/dexkeeper/internal/domain/dex"
	"github.com/okian/dexkeeper/internal/domain/stat"
	"github.com/okian/dexkeeper/pkg/metrics"
)

//go:embed data/*.json
var embedded embed.FS

const (
	speciesFile = "species.json"
	movesFile   = "moves.json"
)

// Sentinel kinds for reference lookups.
var (
	ErrNotFound = errors.New("reference entry not found")
	ErrBadData  = errors.New("invalid reference data")
)

// Species is one species or alternate form.
type Species struct {
	ID            int          `json:"id"`
	BaseSpeciesID int          `json:"baseSpeciesId"`
	Name          string       `json:"name"`
	Types         []string     `json:"types"`
	BaseStats     stat.StatSet `json:"baseStats"`
	Abilities     []string     `json:"abilities"`
	Generation    int          `json:"generation"`
}

// Move is one move.
type Move struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Power    *int   `json:"power"`
	Accuracy *int   `json:"accuracy"`
	PP       int    `json:"pp"`
}

// Provider answers reference lookups from in-memory tables.
type Provider struct {
	species       []Species
	speciesByID   map[int]int
	speciesByName map[string]int

	moves       []Move
	movesByID   map[int]int
	movesByName map[string]int
}

// Embedded returns a Provider over the tables compiled into the binary.
func Embedded() (*Provider, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadData, err)
	}
	return fromFS(sub)
}

// Load reads species.json and moves.json from dir.
func Load(dir string) (*Provider, error) {
	return fromFS(os.DirFS(dir))
}

func fromFS(fsys fs.FS) (*Provider, error) {
	var species []Species
	if err := readJSON(fsys, speciesFile, &species); err != nil {
		return nil, err
	}
	var moves []Move
	if err := readJSON(fsys, movesFile, &moves); err != nil {
		return nil, err
	}
	return New(species, moves)
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrBadData, name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrBadData, name, err)
	}
	return nil
}

// New indexes the given tables. Ids must be positive and unique per table.
func New(species []Species, moves []Move) (*Provider, error) {
	p := &Provider{
		species:       make([]Species, 0, len(species)),
		speciesByID:   make(map[int]int, len(species)),
		speciesByName: make(map[string]int, len(species)),
		moves:         make([]Move, 0, len(moves)),
		movesByID:     make(map[int]int, len(moves)),
		movesByName:   make(map[string]int, len(moves)),
	}

	sorted := append([]Species(nil), species...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, s := range sorted {
		if s.ID <= 0 {
			return nil, fmt.Errorf("%w: species %q has id %d", ErrBadData, s.Name, s.ID)
		}
		if _, dup := p.speciesByID[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate species id %d", ErrBadData, s.ID)
		}
		s.BaseSpeciesID = dex.Normalize(s.ID)
		p.speciesByID[s.ID] = len(p.species)
		p.speciesByName[nameKey(s.Name)] = len(p.species)
		p.species = append(p.species, s)
	}

	sortedMoves := append([]Move(nil), moves...)
	sort.Slice(sortedMoves, func(i, j int) bool { return sortedMoves[i].ID < sortedMoves[j].ID })
	for _, m := range sortedMoves {
		if m.ID <= 0 {
			return nil, fmt.Errorf("%w: move %q has id %d", ErrBadData, m.Name, m.ID)
		}
		if _, dup := p.movesByID[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate move id %d", ErrBadData, m.ID)
		}
		p.movesByID[m.ID] = len(p.moves)
		p.movesByName[nameKey(m.Name)] = len(p.moves)
		p.moves = append(p.moves, m)
	}
	return p, nil
}

// nameKey folds "Mr. Mime", "mr-mime" and "MR MIME" to the same key.
func nameKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, ".", "")
	return strings.Join(strings.Fields(strings.ReplaceAll(name, "-", " ")), "-")
}

// Species looks up a species by numeric id or case-insensitive name.
func (p *Provider) Species(_ context.Context, key string) (Species, error) {
	i, ok := lookup(key, p.speciesByID, p.speciesByName)
	metrics.RecordRefdataLookup("species", ok)
	if !ok {
		return Species{}, fmt.Errorf("%w: species %q", ErrNotFound, key)
	}
	return cloneSpecies(p.species[i]), nil
}

// SpeciesByID looks up a species by id.
func (p *Provider) SpeciesByID(ctx context.Context, id int) (Species, error) {
	return p.Species(ctx, strconv.Itoa(id))
}

// Move looks up a move by numeric id or case-insensitive name.
func (p *Provider) Move(_ context.Context, key string) (Move, error) {
	i, ok := lookup(key, p.movesByID, p.movesByName)
	metrics.RecordRefdataLookup("move", ok)
	if !ok {
		return Move{}, fmt.Errorf("%w: move %q", ErrNotFound, key)
	}
	return p.moves[i], nil
}

// ListSpecies returns every species ordered by id.
func (p *Provider) ListSpecies(_ context.Context) []Species {
	out := make([]Species, len(p.species))
	for i, s := range p.species {
		out[i] = cloneSpecies(s)
	}
	return out
}

// ListMoves returns every move ordered by id.
func (p *Provider) ListMoves(_ context.Context) []Move {
	out := make([]Move, len(p.moves))
	copy(out, p.moves)
	return out
}

func lookup(key string, byID map[int]int, byName map[string]int) (int, bool) {
	key = strings.TrimSpace(key)
	if id, err := strconv.Atoi(key); err == nil {
		i, ok := byID[id]
		return i, ok
	}
	i, ok := byName[nameKey(key)]
	return i, ok
}

func cloneSpecies(s Species) Species {
	s.Types = append([]string(nil), s.Types...)
	s.Abilities = append([]string(nil), s.Abilities...)
	return s
}
