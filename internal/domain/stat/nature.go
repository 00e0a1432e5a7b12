package stat

import "strings"

// Modifier percentages applied by natures.
const (
	boostedPercent  = 110
	neutralPercent  = 100
	hinderedPercent = 90
)

// Nature is one of the 25 personality values. Increased and Decreased are
// equal for the five neutral natures.
type Nature struct {
	Name      string `json:"name"`
	Increased Stat   `json:"increased"`
	Decreased Stat   `json:"decreased"`
}

// Neutral reports whether the nature leaves every stat unchanged.
func (n Nature) Neutral() bool {
	return n.Increased == n.Decreased
}

// natureGrid rows are the increased stat and columns the decreased stat,
// both in the order attack, defense, special-attack, special-defense, speed.
var natureGrid = [5][5]string{
	{"Hardy", "Lonely", "Adamant", "Naughty", "Brave"},
	{"Bold", "Docile", "Impish", "Lax", "Relaxed"},
	{"Modest", "Mild", "Bashful", "Rash", "Quiet"},
	{"Calm", "Gentle", "Careful", "Quirky", "Sassy"},
	{"Timid", "Hasty", "Jolly", "Naive", "Serious"},
}

var gridStats = [5]Stat{Attack, Defense, SpecialAttack, SpecialDefense, Speed}

var naturesByName = func() map[string]Nature {
	m := make(map[string]Nature, len(natureGrid)*len(natureGrid))
	for i, row := range natureGrid {
		for j, name := range row {
			m[strings.ToLower(name)] = Nature{Name: name, Increased: gridStats[i], Decreased: gridStats[j]}
		}
	}
	return m
}()

// Natures returns the 25 natures in grid order.
func Natures() []Nature {
	out := make([]Nature, 0, len(natureGrid)*len(natureGrid))
	for _, row := range natureGrid {
		for _, name := range row {
			out = append(out, naturesByName[strings.ToLower(name)])
		}
	}
	return out
}

// LookupNature finds a nature by name, ignoring case and surrounding space.
func LookupNature(name string) (Nature, bool) {
	n, ok := naturesByName[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

// NatureModifier returns 1.1, 0.9 or 1.0 for stat s under nature.
// HP, neutral natures and unknown names always yield 1.0.
func NatureModifier(nature string, s Stat) float64 {
	return float64(modifierPercent(nature, s)) / percent
}

func modifierPercent(nature string, s Stat) int {
	n, ok := LookupNature(nature)
	if !ok || n.Neutral() || s == HP {
		return neutralPercent
	}
	switch s {
	case n.Increased:
		return boostedPercent
	case n.Decreased:
		return hinderedPercent
	}
	return neutralPercent
}
