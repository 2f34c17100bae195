// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package dex

import (
	"strings"

	"github.com/Ukawamochi/Pokemon-Champions/simerr"
)

// Dex is the read-only interface the rest of the simulator consults. It is
// an interface (not a concrete struct) so a future generated-table loader
// can satisfy it without touching any consumer (§4.1, SPEC_FULL DOMAIN STACK).
type Dex interface {
	Species(id string) (*SpeciesRecord, bool)
	Move(id string) (*MoveRecord, bool)
	Ability(id string) (*AbilityRecord, bool)
	Item(id string) (*ItemRecord, bool)
	TypeEffectiveness(attacker, defender Type) float64
	Nature(id string) (Nature, bool)
}

// Normalize lowercases id and strips everything but letters and digits, the
// contract §4.1 promises callers who pass display forms.
func Normalize(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		}
	}
	return b.String()
}

// Static is the in-memory Dex implementation. Populated once at construction
// via NewStatic, never mutated afterward.
type Static struct {
	species    map[string]*SpeciesRecord
	moves      map[string]*MoveRecord
	abilities  map[string]*AbilityRecord
	items      map[string]*ItemRecord
	natures    map[string]Nature
	typeChart  map[[2]Type]float64
}

// NewStatic builds a Static Dex from the given records, normalizing every id.
func NewStatic(
	species []*SpeciesRecord,
	moves []*MoveRecord,
	abilities []*AbilityRecord,
	items []*ItemRecord,
	natures []Nature,
	typeChart map[[2]Type]float64,
) (*Static, error) {
	d := &Static{
		species:   make(map[string]*SpeciesRecord, len(species)),
		moves:     make(map[string]*MoveRecord, len(moves)),
		abilities: make(map[string]*AbilityRecord, len(abilities)),
		items:     make(map[string]*ItemRecord, len(items)),
		natures:   make(map[string]Nature, len(natures)),
		typeChart: make(map[[2]Type]float64, len(typeChart)),
	}
	for _, s := range species {
		if s == nil {
			continue
		}
		d.species[Normalize(s.ID)] = s
	}
	for _, m := range moves {
		if m == nil {
			continue
		}
		d.moves[Normalize(m.ID)] = m
	}
	for _, a := range abilities {
		if a == nil {
			continue
		}
		d.abilities[Normalize(a.ID)] = a
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		d.items[Normalize(it.ID)] = it
	}
	for _, n := range natures {
		d.natures[Normalize(n.ID)] = n
	}
	for k, v := range typeChart {
		d.typeChart[k] = v
	}
	if len(d.species) == 0 {
		return nil, simerr.New(simerr.CodeInvalidArgument, "dex: at least one species is required")
	}
	return d, nil
}

// Species implements Dex.
func (d *Static) Species(id string) (*SpeciesRecord, bool) {
	s, ok := d.species[Normalize(id)]
	return s, ok
}

// Move implements Dex.
func (d *Static) Move(id string) (*MoveRecord, bool) {
	m, ok := d.moves[Normalize(id)]
	return m, ok
}

// Ability implements Dex.
func (d *Static) Ability(id string) (*AbilityRecord, bool) {
	a, ok := d.abilities[Normalize(id)]
	return a, ok
}

// Item implements Dex.
func (d *Static) Item(id string) (*ItemRecord, bool) {
	it, ok := d.items[Normalize(id)]
	return it, ok
}

// Nature implements Dex.
func (d *Static) Nature(id string) (Nature, bool) {
	n, ok := d.natures[Normalize(id)]
	return n, ok
}

// TypeEffectiveness implements Dex. Defaults to neutral (1.0) for any pair
// not present in the chart, rather than erroring — an omission in a hand
// assembled chart should degrade gracefully, not crash a battle.
func (d *Static) TypeEffectiveness(attacker, defender Type) float64 {
	if v, ok := d.typeChart[[2]Type{attacker, defender}]; ok {
		return v
	}
	return 1.0
}
