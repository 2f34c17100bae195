// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package order decides which of the two queued actions resolves first each
// turn: by priority bracket, then by effective speed, then by a PRNG
// tie-break (§4.3). Resolve only reads the battle state and consumes PRNG;
// it never mutates a Battler or Side.
package order

import (
	"github.com/Ukawamochi/Pokemon-Champions/battler"
	"github.com/Ukawamochi/Pokemon-Champions/battlestate"
	"github.com/Ukawamochi/Pokemon-Champions/dex"
)

// ActionKind distinguishes the two queueable action shapes.
type ActionKind string

// Action kinds.
const (
	ActionMove   ActionKind = "move"
	ActionSwitch ActionKind = "switch"
)

// Action is one side's chosen action for the turn.
type Action struct {
	Side        battlestate.SideIndex
	Kind        ActionKind
	MoveID      string
	MovePriority int8 // base priority of MoveID; 0 for switches before modifiers
	SwitchIndex int  // target roster index, for ActionSwitch
}

// EffectivePriority returns 6 for a switch and otherwise the move's base
// priority plus the caller-supplied fractionalBonus. It does not itself
// look at items, abilities, or terrain.
func EffectivePriority(a Action, fractionalBonus float64) float64 {
	if a.Kind == ActionSwitch {
		return 6 // switches always go before any move (§4.3)
	}
	return float64(a.MovePriority) + fractionalBonus
}

// EffectiveSpeed computes a Battler's speed stat after stage, paralysis,
// item, and weather multipliers (§4.3).
func EffectiveSpeed(b *battler.Battler, item dex.ItemEffect, weather battlestate.Weather, choiceScarfSpeedBoost bool, swiftSwimOrSandRush bool) float64 {
	spe := float64(b.Stats.Spe) * battler.Multiplier(b.Stages.Spe)
	if b.Status == dex.StatusParalysis {
		spe *= 0.5
	}
	if item.Has(dex.ItemSpeedMod) && choiceScarfSpeedBoost {
		spe *= 1.5
	}
	if swiftSwimOrSandRush {
		spe *= 2.0
	}
	if weather == battlestate.WeatherHail || weather == battlestate.WeatherSnow {
		// Hail/Snow carry no generic speed modifier themselves; listed for
		// completeness of the weather parameter's switch coverage.
		_ = weather
	}
	return spe
}

// Resolved is one ordering decision: which action index (0 or 1) in the
// input slice goes first.
type Resolved struct {
	FirstIndex int
	TieBroken  bool
}

// Entry bundles an Action with the precomputed priority/speed needed to
// order it, so Resolve stays a pure comparison function.
type Entry struct {
	Action    Action
	Priority  float64
	Speed     float64
}

// Resolve orders two Entries for a single turn: higher priority first, then
// (subject to Trick Room inversion) higher speed first, then an RNG
// coin-flip tie-break that consumes exactly one PRNG draw only when needed.
func Resolve(a, b Entry, trickRoom bool, rngSource interface{ Chance(num, den int) bool }) Resolved {
	if a.Priority != b.Priority {
		if a.Priority > b.Priority {
			return Resolved{FirstIndex: 0}
		}
		return Resolved{FirstIndex: 1}
	}

	aSpeed, bSpeed := a.Speed, b.Speed
	if trickRoom {
		aSpeed, bSpeed = -aSpeed, -bSpeed
	}
	if aSpeed != bSpeed {
		if aSpeed > bSpeed {
			return Resolved{FirstIndex: 0}
		}
		return Resolved{FirstIndex: 1}
	}

	if rngSource != nil && rngSource.Chance(1, 2) {
		return Resolved{FirstIndex: 0, TieBroken: true}
	}
	return Resolved{FirstIndex: 1, TieBroken: true}
}
