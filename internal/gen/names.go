// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"fmt"
	"strings"
)

// namePool draws names without replacement, falling back to synthetic names
// once the pool is exhausted. The pool order is shuffled once at creation from
// the run's stream, so draws stay deterministic per seed.
type namePool struct {
	names     []string
	next      int
	synthetic string // fmt pattern with one %d verb
	serial    int
}

func newNamePool(r *Run, names []string, synthetic string) *namePool {
	shuffled := make([]string, len(names))
	copy(shuffled, names)
	Shuffle(r, shuffled)
	return &namePool{names: shuffled, synthetic: synthetic}
}

// Draw returns the next unused name, or a synthetic one once exhausted.
func (p *namePool) Draw() string {
	if p.next < len(p.names) {
		name := p.names[p.next]
		p.next++
		return name
	}
	p.serial++
	return fmt.Sprintf(p.synthetic, p.serial)
}

var cityNames = []string{
	"Neo Kirova", "Arcadia Bay", "Veridian City", "Port Halcyon", "New Shenzhen",
	"Okuda Sprawl", "Meridian Falls", "Cobalt Ridge", "Santa Lumen", "Ashgrove",
	"Karakura Heights", "Delta Verde", "North Amaranth", "Zhongli Prime", "Vesper",
	"Ironhaven", "Cascadia Nova", "Black Harbor", "Solace Point", "Ubezhishche",
}

var districtPrefixes = []string{
	"Old", "New", "Upper", "Lower", "East", "West", "North", "South", "Inner", "Outer",
}

var districtBodies = []string{
	"Exchange", "Foundry", "Docks", "Terrace", "Gardens", "Junction", "Quarter",
	"Row", "Heights", "Hollow", "Strip", "Yards", "Commons", "Circuit", "Sprawl",
}

var corpPrefixes = []string{
	"Arasoft", "Helix", "Kessler", "Nakatomi", "Vantage", "Orbital", "Praxis",
	"Dynacore", "Sterling", "Moravec", "Zenshin", "Caldera",
}

var corpSuffixes = []string{
	"Industries", "Dynamics", "Holdings", "Biotech", "Systems", "Securities",
	"Logistics", "Group", "Labs", "Syndicate",
}

var firstNames = []string{
	"Adrian", "Bex", "Cassius", "Dana", "Emiko", "Farid", "Greta", "Hiro",
	"Imani", "Jonas", "Kira", "Lazlo", "Mirei", "Nadia", "Oleg", "Priya",
	"Quinn", "Rafael", "Sable", "Tomas", "Uma", "Viktor", "Wren", "Ximena",
	"Yusuf", "Zoya",
}

var lastNames = []string{
	"Aldana", "Brandt", "Castellan", "Dragomir", "Eszterhazy", "Fontaine",
	"Gruber", "Hayashi", "Ivanova", "Jakande", "Kowalczyk", "Laurent",
	"Mbeki", "Novak", "Okafor", "Petrov", "Quintero", "Reyes", "Soderberg",
	"Takahashi", "Ulvaeus", "Vasquez", "Winterbourne", "Yamada", "Zielinski",
}

// Item flavor word pools, assembled prefix + body + suffix.
var (
	itemPrefixes = []string{
		"Mk-II", "Shadow", "Quantum", "Street", "Chrome", "Phantom", "Surplus",
		"Prime", "Raptor", "Null", "Vector", "Ghost",
	}
	itemSuffixes = []string{
		"Edition", "Custom", "Series", "Protocol", "Variant", "Special",
	}
)

// corpName assembles a corporation name from the prefix/suffix pools.
func corpName(r *Run) string {
	return Pick(r, corpPrefixes) + " " + Pick(r, corpSuffixes)
}

// personName assembles a character name from the first/last name pools.
func personName(r *Run) string {
	return Pick(r, firstNames) + " " + Pick(r, lastNames)
}

// districtName assembles a district name. Roughly half the names carry a
// directional or age prefix.
func districtName(r *Run) string {
	body := Pick(r, districtBodies)
	if r.Chance(0.5) {
		return Pick(r, districtPrefixes) + " " + body
	}
	return "The " + body
}

// itemName assembles a flavor name around the type's display word, e.g.
// "Quantum Deck Mk-II Custom". Suffixes appear on a minority of items.
func itemName(r *Run, typeWord string) string {
	parts := []string{Pick(r, itemPrefixes), typeWord}
	if r.Chance(0.3) {
		parts = append(parts, Pick(r, itemSuffixes))
	}
	return strings.Join(parts, " ")
}

// displayWord turns a snake_case type key into its title-cased display form,
// e.g. "assault_rifle" -> "Assault Rifle".
func displayWord(typeKey string) string {
	words := strings.Split(typeKey, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
