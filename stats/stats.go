// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package stats computes a battler's final stats from its species, level,
// individual values, effort values, and nature (§4.2). It has no mutable
// state: Compute is a pure function from inputs to a dex.StatBlock.
package stats

import (
	"github.com/Ukawamochi/Pokemon-Champions/dex"
	"github.com/Ukawamochi/Pokemon-Champions/simerr"
)

// MaxIV, MaxEVPerStat, and MaxEVTotal bound the per-stat individual value,
// the per-stat effort value, and the total effort values a Build input may
// carry (§4.2 edge cases).
const (
	MaxIV        = 31
	MaxEVPerStat = 252
	MaxEVTotal   = 508
)

// Build describes the inputs needed to compute a species' final stats at a
// given level.
type Build struct {
	Species string
	Level   int
	IVs     dex.StatBlock
	EVs     dex.StatBlock
	Nature  string
}

// Validate checks Build against §4.2's bounds, independent of any Dex lookup.
func (b Build) Validate() error {
	if b.Level < 1 || b.Level > 100 {
		return simerr.New(simerr.CodeInvalidArgument, "stats: level must be in [1,100]", simerr.WithMeta("level", b.Level))
	}
	for name, iv := range b.ivMap() {
		if iv < 0 || iv > MaxIV {
			return simerr.New(simerr.CodeInvalidArgument, "stats: IV out of range", simerr.WithMeta("stat", name), simerr.WithMeta("value", iv))
		}
	}
	total := 0
	for name, ev := range b.evMap() {
		if ev < 0 || ev > MaxEVPerStat {
			return simerr.New(simerr.CodeInvalidArgument, "stats: EV out of range", simerr.WithMeta("stat", name), simerr.WithMeta("value", ev))
		}
		total += ev
	}
	if total > MaxEVTotal {
		return simerr.New(simerr.CodeInvalidArgument, "stats: total EVs exceed budget", simerr.WithMeta("total", total))
	}
	return nil
}

func (b Build) ivMap() map[string]int {
	return map[string]int{"hp": b.IVs.HP, "atk": b.IVs.Atk, "def": b.IVs.Def, "spa": b.IVs.SpA, "spd": b.IVs.SpD, "spe": b.IVs.Spe}
}

func (b Build) evMap() map[string]int {
	return map[string]int{"hp": b.EVs.HP, "atk": b.EVs.Atk, "def": b.EVs.Def, "spa": b.EVs.SpA, "spd": b.EVs.SpD, "spe": b.EVs.Spe}
}

// Compute derives a battler's final StatBlock from its species record and
// build parameters (§4.2). HP uses the dedicated HP formula; the other five
// stats share a formula modified by the nature's 10% boost/cut.
func Compute(species *dex.SpeciesRecord, build Build, nature dex.Nature) (dex.StatBlock, error) {
	if species == nil {
		return dex.StatBlock{}, simerr.New(simerr.CodeNotFound, "stats: species is required")
	}
	if err := build.Validate(); err != nil {
		return dex.StatBlock{}, err
	}

	hp := hpStat(species.BaseStats.HP, build.IVs.HP, build.EVs.HP, build.Level)
	atk := otherStat(species.BaseStats.Atk, build.IVs.Atk, build.EVs.Atk, build.Level, nature.Mod("atk"))
	def := otherStat(species.BaseStats.Def, build.IVs.Def, build.EVs.Def, build.Level, nature.Mod("def"))
	spa := otherStat(species.BaseStats.SpA, build.IVs.SpA, build.EVs.SpA, build.Level, nature.Mod("spa"))
	spd := otherStat(species.BaseStats.SpD, build.IVs.SpD, build.EVs.SpD, build.Level, nature.Mod("spd"))
	spe := otherStat(species.BaseStats.Spe, build.IVs.Spe, build.EVs.Spe, build.Level, nature.Mod("spe"))

	return dex.StatBlock{HP: hp, Atk: atk, Def: def, SpA: spa, SpD: spd, Spe: spe}, nil
}

// hpStat implements HP = floor((2*base+IV+floor(EV/4))*level/100) + level + 10.
func hpStat(base, iv, ev, level int) int {
	return (2*base+iv+ev/4)*level/100 + level + 10
}

// otherStat implements stat = floor((floor((2*base+IV+floor(EV/4))*level/100)+5) * natureMod).
func otherStat(base, iv, ev, level int, natureMod float64) int {
	raw := (2*base+iv+ev/4)*level/100 + 5
	return int(float64(raw) * natureMod)
}
