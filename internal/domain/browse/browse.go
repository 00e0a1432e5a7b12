// Package browse filters, sorts and pages a collection for display.
package browse

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/dexkeeper/internal/domain/analytics"
	"github.com/okian/dexkeeper/internal/domain/dex"
	"github.com/okian/dexkeeper/internal/domain/model"
)

// Sort orders.
const (
	SortRecent = "recent"
	SortOldest = "oldest"
	SortDex    = "dex"
	SortName   = "name"
	SortLevel  = "level"
	SortCaught = "caught"
)

// ErrInvalidQuery reports an unknown sort order or a negative window.
var ErrInvalidQuery = errors.New("invalid query")

// Query selects a window of the collection. Zero values mean "no filter".
type Query struct {
	Search        string
	Type          string
	Project       model.Project
	Generation    int
	ShinyOnly     bool
	FavoritesOnly bool
	Sort          string
	Limit         int // 0 means everything after Offset
	Offset        int
}

// Page is the result of a Query.
type Page struct {
	Items []model.Pokemon `json:"items"`
	Total int             `json:"total"` // matches before paging
}

// Validate checks the sort order and paging window.
func (q Query) Validate() error {
	switch q.Sort {
	case "", SortRecent, SortOldest, SortDex, SortName, SortLevel, SortCaught:
	default:
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidQuery, q.Sort)
	}
	if q.Limit < 0 || q.Offset < 0 {
		return fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidQuery)
	}
	if q.Generation < 0 {
		return fmt.Errorf("%w: generation must not be negative", ErrInvalidQuery)
	}
	return nil
}

// Apply filters, sorts and pages records. records is not modified.
func Apply(records []model.Pokemon, q Query, generations []analytics.Generation) (Page, error) {
	if err := q.Validate(); err != nil {
		return Page{}, err
	}

	matched := make([]model.Pokemon, 0, len(records))
	for _, p := range records {
		if q.matches(p, generations) {
			matched = append(matched, p)
		}
	}
	sortRecords(matched, q.Sort)

	page := Page{Total: len(matched), Items: make([]model.Pokemon, 0)}
	if q.Offset >= len(matched) {
		return page, nil
	}
	end := len(matched)
	if q.Limit > 0 && q.Offset+q.Limit < end {
		end = q.Offset + q.Limit
	}
	page.Items = append(page.Items, matched[q.Offset:end]...)
	return page, nil
}

func (q Query) matches(p model.Pokemon, generations []analytics.Generation) bool {
	if q.ShinyOnly && !p.Shiny {
		return false
	}
	if q.FavoritesOnly && !p.Favorite {
		return false
	}
	if q.Project != "" && p.Project != q.Project {
		return false
	}
	if q.Type != "" && !hasType(p, q.Type) {
		return false
	}
	if q.Generation > 0 {
		g, ok := analytics.GenerationOf(generations, dex.Normalize(p.SpeciesID))
		if !ok || g.ID != q.Generation {
			return false
		}
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		return searchable(p, s)
	}
	return true
}

func hasType(p model.Pokemon, typ string) bool {
	for _, t := range p.Types {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(typ)) {
			return true
		}
	}
	return false
}

func searchable(p model.Pokemon, needle string) bool {
	for _, field := range []string{p.Name, p.Location, p.Game, p.OriginalTrainer, p.Nature} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	n, err := strconv.Atoi(strings.TrimPrefix(needle, "#"))
	return err == nil && n == dex.Normalize(p.SpeciesID)
}

func sortRecords(records []model.Pokemon, order string) {
	var less func(a, b model.Pokemon) bool
	switch order {
	case SortOldest:
		less = func(a, b model.Pokemon) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortDex:
		less = func(a, b model.Pokemon) bool {
			da, db := dex.Normalize(a.SpeciesID), dex.Normalize(b.SpeciesID)
			if da != db {
				return da < db
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortName:
		less = func(a, b model.Pokemon) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortLevel:
		less = func(a, b model.Pokemon) bool { return a.Level > b.Level }
	case SortCaught:
		less = func(a, b model.Pokemon) bool {
			ta, oka := a.CaughtAt()
			tb, okb := b.CaughtAt()
			if oka != okb {
				return oka
			}
			return oka && ta.After(tb)
		}
	default:
		less = func(a, b model.Pokemon) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(records, func(i, j int) bool { return less(records[i], records[j]) })
}
