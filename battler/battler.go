// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package battler models a single Pokemon's in-battle state (§3). A Battler
// is a value-semantics struct: battlestate clones it by copy, never by
// pointer aliasing, so MCTS rollouts can fork cheaply.
package battler

import (
	"github.com/Ukawamochi/Pokemon-Champions/dex"
)

// MinStage and MaxStage bound every entry of the stage vector (§3).
const (
	MinStage = -6
	MaxStage = 6
)

// Stages holds the five boostable stat stages plus accuracy/evasion.
type Stages struct {
	Atk      int
	Def      int
	SpA      int
	SpD      int
	Spe      int
	Accuracy int
	Evasion  int
}

// Get returns the current stage for the named boost.
func (s Stages) Get(b dex.Boost) int {
	switch b {
	case dex.BoostAtk:
		return s.Atk
	case dex.BoostDef:
		return s.Def
	case dex.BoostSpA:
		return s.SpA
	case dex.BoostSpD:
		return s.SpD
	case dex.BoostSpe:
		return s.Spe
	case dex.BoostAccuracy:
		return s.Accuracy
	case dex.BoostEvasion:
		return s.Evasion
	default:
		return 0
	}
}

// Add applies delta to the named boost, clamping to [MinStage, MaxStage], and
// returns the actual change applied (0 if already at the clamp).
func (s *Stages) Add(b dex.Boost, delta int) int {
	cur := s.Get(b)
	next := clamp(cur+delta, MinStage, MaxStage)
	applied := next - cur
	s.set(b, next)
	return applied
}

func (s *Stages) set(b dex.Boost, v int) {
	switch b {
	case dex.BoostAtk:
		s.Atk = v
	case dex.BoostDef:
		s.Def = v
	case dex.BoostSpA:
		s.SpA = v
	case dex.BoostSpD:
		s.SpD = v
	case dex.BoostSpe:
		s.Spe = v
	case dex.BoostAccuracy:
		s.Accuracy = v
	case dex.BoostEvasion:
		s.Evasion = v
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Multiplier converts a stat stage to its damage-formula multiplier.
// Accuracy/evasion use a distinct progression (§4.4's accuracy check).
func Multiplier(stage int) float64 {
	stage = clamp(stage, MinStage, MaxStage)
	if stage >= 0 {
		return (2.0 + float64(stage)) / 2.0
	}
	return 2.0 / (2.0 - float64(stage))
}

// AccuracyMultiplier converts an accuracy or evasion stage to its
// to-hit-roll multiplier, which uses a 3-denominator progression instead of
// the 2-denominator one the other five stats use.
func AccuracyMultiplier(stage int) float64 {
	stage = clamp(stage, MinStage, MaxStage)
	if stage >= 0 {
		return (3.0 + float64(stage)) / 3.0
	}
	return 3.0 / (3.0 - float64(stage))
}

// Flags holds single-turn or single-switch-in transient state (§3).
type Flags struct {
	Flinch          bool
	ProtectedThisTurn bool
	MustRecharge    bool
	Confused        bool
	ConfusionTurns  int
	Substitute      int // remaining substitute HP, 0 if none
	LeechSeed       bool
	Taunted         int // remaining turns, 0 if not taunted
	Encored         int
	EncoreMove      string
	Disabled        string // move id disabled, "" if none
	DisabledTurns   int
	ChoiceLockedMove string
	LastMoveUsed    string
	LastMoveFailed  bool
	ProtectStreak   int // consecutive successful Protect-family uses this turn chain
}

// Battler is one Pokemon's full in-battle state.
type Battler struct {
	Species     string
	Level       int
	Nature      string
	Ability     string
	Item        string
	ItemConsumed bool
	Stats       dex.StatBlock
	IVs         dex.StatBlock
	EVs         dex.StatBlock

	CurrentHP int
	MaxHP     int

	Status      dex.StatusID
	SleepTurns  int
	ToxicCounter int

	Stages Stages
	Flags  Flags

	Moves []string
	PP    map[string]int
	// MaxPP mirrors Moves' PP caps so Disable/PP-reduction can compute
	// remaining fractions without a dex lookup mid-battle.
	MaxPP map[string]int

	Fainted bool
}

// Clone returns a deep, independent copy: every map field is duplicated so
// the clone and the original can diverge without aliasing (required for
// cheap MCTS state forking, §4.7).
func (b Battler) Clone() Battler {
	c := b
	c.PP = make(map[string]int, len(b.PP))
	for k, v := range b.PP {
		c.PP[k] = v
	}
	c.MaxPP = make(map[string]int, len(b.MaxPP))
	for k, v := range b.MaxPP {
		c.MaxPP[k] = v
	}
	c.Moves = append([]string(nil), b.Moves...)
	return c
}

// ResetOnSwitchOut clears every volatile flag and stage that does not
// survive a switch (§3 switch-reset semantics). Major status, HP, PP, and
// item-consumed state persist across switches.
func (b *Battler) ResetOnSwitchOut() {
	b.Stages = Stages{}
	b.Flags = Flags{}
}

// HPFraction returns current HP as a fraction of max HP, used by rollout
// heuristics and end-of-battle win detection.
func (b Battler) HPFraction() float64 {
	if b.MaxHP <= 0 {
		return 0
	}
	return float64(b.CurrentHP) / float64(b.MaxHP)
}

// ApplyDamage subtracts amount from CurrentHP, floors at zero, and marks
// Fainted when HP reaches zero. It never increases HP; use Heal for that.
func (b *Battler) ApplyDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	before := b.CurrentHP
	b.CurrentHP -= amount
	if b.CurrentHP <= 0 {
		b.CurrentHP = 0
		b.Fainted = true
	}
	return before - b.CurrentHP
}

// Heal adds amount to CurrentHP, capped at MaxHP. A fainted Battler cannot
// be healed; revival is out of scope (§1 Non-goals).
func (b *Battler) Heal(amount int) int {
	if b.Fainted || amount <= 0 {
		return 0
	}
	before := b.CurrentHP
	b.CurrentHP += amount
	if b.CurrentHP > b.MaxHP {
		b.CurrentHP = b.MaxHP
	}
	return b.CurrentHP - before
}
