// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package damage implements the fixed-point damage pipeline (§4.4): the
// deterministic chain/modify arithmetic and the nine-step sequence that
// turns a move, an attacker, and a defender into a final damage value.
package damage

import (
	"github.com/Ukawamochi/Pokemon-Champions/battler"
	"github.com/Ukawamochi/Pokemon-Champions/dex"
	"github.com/Ukawamochi/Pokemon-Champions/rng"
)

// fixedPointScale is the 4096 denominator both chain() and modify() round
// through, matching the fixed-point precision named in §4.4.
const fixedPointScale = 4096

// Chain composes two fixed-point multipliers the way successive ability,
// item, and field modifiers stack on the same damage value: each is
// converted to its 4096ths representation before combining, and the product
// is rounded to the nearest 4096th. Because every step rounds, the same
// factors grouped differently can differ by 1/4096.
func Chain(a, b float64) float64 {
	af := int64(a * fixedPointScale)
	bf := int64(b * fixedPointScale)
	combined := (af*bf + fixedPointScale/2) / fixedPointScale
	return float64(combined) / fixedPointScale
}

// ChainAll folds Chain over every multiplier in order, starting from 1.0.
// An empty list returns the identity multiplier.
func ChainAll(multipliers ...float64) float64 {
	result := 1.0
	for _, m := range multipliers {
		result = Chain(result, m)
	}
	return result
}

// Modify applies a single fixed-point multiplier to an integer damage value.
// The multiplier is first truncated to 4096ths, then the product is rounded
// to the nearest integer with exact ties broken downward: floor((value*mf +
// scale/2 - 1) / scale). This is the chain/modify rounding every
// weather/STAB/type/burn/field step in §4.4 uses; it is deliberately not a
// plain ceiling (that over-rounds odd values at exact half-steps).
func Modify(value int, m float64) int {
	mf := int64(m * fixedPointScale)
	num := int64(value) * mf
	return int((num + fixedPointScale/2 - 1) / fixedPointScale)
}

// TypeExponent converts the product of two per-type effectiveness lookups
// into the {-2,-1,0,1,2} exponent the pipeline multiplies by 2^k (§4.4
// step 6): dual-typed defenders combine each type's factor independently,
// and the combined 0/0.25/0.5/1/2/4 value collapses to one exponent.
func TypeExponent(effectiveness float64) int {
	switch effectiveness {
	case 0:
		return 0 // immunity short-circuits the pipeline entirely; see Immune
	case 0.25:
		return -2
	case 0.5:
		return -1
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	default:
		return 0
	}
}

// Immune reports whether the combined type effectiveness is exactly zero.
func Immune(effectiveness float64) bool {
	return effectiveness == 0
}

// CritStageChance gives the §4.4 critical-hit probability for a given crit
// stage (0 = base rate, higher from high-crit moves/Focus Energy/Scope
// Lens stacking).
func CritStageChance(stage int) (num, den int) {
	switch {
	case stage <= 0:
		return 1, 24
	case stage == 1:
		return 1, 8
	case stage == 2:
		return 1, 2
	default:
		return 1, 1
	}
}

// RollCrit draws whether this hit crits, for the given crit stage.
func RollCrit(source rng.Source, stage int) bool {
	num, den := CritStageChance(stage)
	return source.Chance(num, den)
}

// RandomRollPercent draws the 85..100 random damage roll (§4.4 step 4).
func RandomRollPercent(source rng.Source) int {
	return 85 + source.Intn(16)
}

// Input bundles everything the pipeline needs for one hit's base and final
// damage computation.
type Input struct {
	AttackerLevel int
	Power         int
	AttackStat    int
	DefenseStat   int
	MoveType      dex.Type
	AttackerTypes []dex.Type
	Crit          bool
	RandomRollPct int // 85-100; caller supplies the already-rolled value
	TypeEffectiveness float64
	// WeatherMult applies to the damage before the random roll (§4.4 step 2),
	// e.g. 1.5 for a boosted same-type move in weather, 0.5 for a weakened one.
	WeatherMult float64
	// Burned halves physical damage (status-category moves are never routed
	// through this pipeline, so no category check is needed here).
	Burned bool
	// IsPhysical distinguishes whether the burn halving step applies.
	IsPhysical bool
	// ExtraChain collects every further chained ability/item/field/screen
	// modifier (§4.4 step 8), already expressed as fixed-point multipliers.
	ExtraChain []float64
}

// Result is one hit's fully resolved damage plus the facts a caller needs to
// log or branch on.
type Result struct {
	Damage  int
	Crit    bool
	Effectiveness float64
	Immune  bool
}

// Compute runs the full nine-step pipeline (§4.4) for one hit.
func Compute(in Input) Result {
	if Immune(in.TypeEffectiveness) {
		return Result{Immune: true, Effectiveness: 0}
	}

	// Step 1: base damage.
	levelTerm := (2*in.AttackerLevel)/5 + 2
	base := (levelTerm*in.Power*in.AttackStat/in.DefenseStat)/50 + 2

	value := base

	// Step 2: weather.
	if in.WeatherMult != 0 && in.WeatherMult != 1 {
		value = Modify(value, in.WeatherMult)
	}

	// Step 3: critical hit. Rolled directly against the raw value rather
	// than through Modify: the multiplier here is exact (1.5), so a plain
	// floor((value*3)/2) avoids the fixed-point truncation Modify exists for.
	if in.Crit {
		value = (value * 3) / 2
	}

	// Step 4: random roll. Also direct rather than chained: the roll is
	// already an 85-100 integer percent, so value*pct/100 is exact where
	// routing it through 4096ths would introduce rounding error (0.85 has no
	// exact 4096ths representation).
	rollPct := in.RandomRollPct
	if rollPct == 0 {
		rollPct = 100
	}
	value = value * rollPct / 100

	// Step 5: STAB.
	if hasType(in.AttackerTypes, in.MoveType) {
		value = Modify(value, 1.5)
	}

	// Step 6: type effectiveness.
	k := TypeExponent(in.TypeEffectiveness)
	if k != 0 {
		typeMult := 1.0
		for i := 0; i < abs(k); i++ {
			typeMult *= 2
		}
		if k < 0 {
			typeMult = 1.0 / typeMult
		}
		value = Modify(value, typeMult)
	}

	// Step 7: burn.
	if in.Burned && in.IsPhysical && !in.Crit {
		value = Modify(value, 0.5)
	}

	// Step 8: chained ability/item/field/screen modifiers.
	if len(in.ExtraChain) > 0 {
		combined := ChainAll(in.ExtraChain...)
		value = Modify(value, combined)
	}

	// Step 9: floor with a minimum of 1.
	if value < 1 {
		value = 1
	}

	return Result{Damage: value, Crit: in.Crit, Effectiveness: in.TypeEffectiveness}
}

func hasType(types []dex.Type, t dex.Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CombinedTypeEffectiveness multiplies a move's effectiveness against each
// of the defender's types (§4.4 step 6 dual-type combination).
func CombinedTypeEffectiveness(lookup func(attacker, defender dex.Type) float64, moveType dex.Type, defenderTypes []dex.Type) float64 {
	result := 1.0
	for _, dt := range defenderTypes {
		result *= lookup(moveType, dt)
	}
	return result
}

// AccuracyCheck rolls whether a move hits, folding in the move's base
// accuracy, the attacker's accuracy stage, and the defender's evasion stage
// (§4.4's accuracy check, run ahead of the nine-step damage pipeline for
// damaging moves, and standalone for status moves).
func AccuracyCheck(source rng.Source, moveAccuracy int, attackerAccuracyStage, defenderEvasionStage int) bool {
	if moveAccuracy == dex.AlwaysHits {
		return true
	}
	mult := battler.AccuracyMultiplier(attackerAccuracyStage) / battler.AccuracyMultiplier(defenderEvasionStage)
	effective := float64(moveAccuracy) * mult
	if effective >= 100 {
		return true
	}
	if effective <= 0 {
		return false
	}
	return source.Chance(int(effective), 100)
}

// MultiHitCount resolves how many times a multi-hit move strikes, using the
// canonical 2/3/4/5-hit distribution (2 and 3 hits each 3/8, 4 and 5 hits
// each 1/8) when the move does not specify a fixed count.
func MultiHitCount(source rng.Source, spec *dex.MultiHitSpec) int {
	if spec == nil {
		return 1
	}
	if spec.Fixed > 0 {
		return spec.Fixed
	}
	roll := source.Intn(8)
	switch {
	case roll < 3:
		return 2
	case roll < 6:
		return 3
	case roll < 7:
		return 4
	default:
		return 5
	}
}
