// Package dex maps species identifiers to canonical National Dex numbers.
package dex

import (
	"fmt"
	"strings"
)

// AlternateFormThreshold is the first identifier reserved for alternate forms.
// It is a fixed range convention and is not derived from the form table.
const AlternateFormThreshold = 10000

// dexNumberWidth is the minimum number of digits in a formatted dex number.
const dexNumberWidth = 3

// Normalize returns the canonical species id for id. Ids absent from the
// alternate-form table are already canonical and are returned unchanged.
func Normalize(id int) int {
	if base, ok := alternateForms[id]; ok {
		return base
	}
	return id
}

// IsAlternateForm reports whether id lies in the alternate-form range.
func IsAlternateForm(id int) bool {
	return id >= AlternateFormThreshold
}

// FormatDexNumber renders the canonical dex number of id as "#" followed by
// at least three digits, e.g. "#001", "#026", "#1025".
func FormatDexNumber(id int) string {
	return fmt.Sprintf("#%0*d", dexNumberWidth, Normalize(id))
}

// SplitFormName splits a display name of the shape "base-form".
// base is the text before the first hyphen and form the text between the
// first and second hyphen (or to the end). ok is false when name has no
// hyphen, in which case base is the whole name.
func SplitFormName(name string) (base, form string, ok bool) {
	base, rest, found := strings.Cut(name, "-")
	if !found {
		return name, "", false
	}
	form, _, _ = strings.Cut(rest, "-")
	return base, form, true
}

// AlternateForms returns a copy of the alternate-form table.
func AlternateForms() map[int]int {
	out := make(map[int]int, len(alternateForms))
	for k, v := range alternateForms {
		out[k] = v
	}
	return out
}
