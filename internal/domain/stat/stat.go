// Package stat computes in-game stat values from base stats, IVs, EVs,
// level and nature.
package stat

// Stat names one of the six battle stats.
type Stat string

// Battle stats.
const (
	HP             Stat = "hp"
	Attack         Stat = "attack"
	Defense        Stat = "defense"
	SpecialAttack  Stat = "special-attack"
	SpecialDefense Stat = "special-defense"
	Speed          Stat = "speed"
)

// Training limits.
const (
	MaxIV      = 31
	MaxEV      = 252
	MaxEVTotal = 510
	MinLevel   = 1
	MaxLevel   = 100
)

// Formula constants.
const (
	hpLevelBonus  = 10
	statFlatBonus = 5
	evDivisor     = 4
	levelDivisor  = 100
	percent       = 100
)

// Stats returns all six stats in display order.
func Stats() []Stat {
	return []Stat{HP, Attack, Defense, SpecialAttack, SpecialDefense, Speed}
}

// Valid reports whether s is one of the six known stats.
func (s Stat) Valid() bool {
	switch s {
	case HP, Attack, Defense, SpecialAttack, SpecialDefense, Speed:
		return true
	}
	return false
}

// StatSet holds one value per stat. It is used for base stats, IVs, EVs
// and computed totals alike.
type StatSet struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

// Get returns the value stored for s, or 0 for an unknown stat.
func (ss StatSet) Get(s Stat) int {
	switch s {
	case HP:
		return ss.HP
	case Attack:
		return ss.Attack
	case Defense:
		return ss.Defense
	case SpecialAttack:
		return ss.SpecialAttack
	case SpecialDefense:
		return ss.SpecialDefense
	case Speed:
		return ss.Speed
	}
	return 0
}

// Set stores v for s. Unknown stats are ignored.
func (ss *StatSet) Set(s Stat, v int) {
	switch s {
	case HP:
		ss.HP = v
	case Attack:
		ss.Attack = v
	case Defense:
		ss.Defense = v
	case SpecialAttack:
		ss.SpecialAttack = v
	case SpecialDefense:
		ss.SpecialDefense = v
	case Speed:
		ss.Speed = v
	}
}

// Total returns the sum of all six values.
func (ss StatSet) Total() int {
	return ss.HP + ss.Attack + ss.Defense + ss.SpecialAttack + ss.SpecialDefense + ss.Speed
}

// EffectiveStat returns the in-game value of stat s.
//
//	hp:    floor((2*base + iv + floor(ev/4)) * level / 100) + level + 10
//	other: floor((floor((2*base + iv + floor(ev/4)) * level / 100) + 5) * modifier)
//
// Every division floors. Inputs outside the game's ranges are not rejected.
func EffectiveStat(base, ev, iv, level int, nature string, s Stat) int {
	core := floorDiv((2*base+iv+floorDiv(ev, evDivisor))*level, levelDivisor)
	if s == HP {
		return core + level + hpLevelBonus
	}
	return floorDiv((core+statFlatBonus)*modifierPercent(nature, s), percent)
}

// Compute returns all six effective stats.
func Compute(base, evs, ivs StatSet, level int, nature string) StatSet {
	var out StatSet
	for _, s := range Stats() {
		out.Set(s, EffectiveStat(base.Get(s), evs.Get(s), ivs.Get(s), level, nature, s))
	}
	return out
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
