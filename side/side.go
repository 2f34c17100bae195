// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package side models one trainer's half of the field: hazards, screens,
// and the timed field conditions that apply to an entire team rather than a
// single Battler (§3 Side State).
package side

// Hazards counts layered entry hazards on this side of the field.
type Hazards struct {
	SpikesLayers      int // 0-3
	ToxicSpikesLayers int // 0-2
	StealthRock       bool
	StickyWeb         bool
}

// Screens tracks the turn-counted damage-halving screens.
type Screens struct {
	ReflectTurns      int
	LightScreenTurns  int
	AuroraVeilTurns   int
}

// Active reports whether any screen is currently up.
func (s Screens) Active() bool {
	return s.ReflectTurns > 0 || s.LightScreenTurns > 0 || s.AuroraVeilTurns > 0
}

// Multiplier returns the damage-chain multiplier a defending side's screens
// apply to an incoming hit of the given category (§4.4 step 8). Aurora Veil
// covers both categories at once and does not stack with Reflect/Light
// Screen being up at the same time; a non-crit hit is halved, a crit
// ignores screens entirely.
func (s Screens) Multiplier(isPhysical, crit bool) float64 {
	if crit {
		return 1.0
	}
	if s.AuroraVeilTurns > 0 {
		return 0.5
	}
	if isPhysical && s.ReflectTurns > 0 {
		return 0.5
	}
	if !isPhysical && s.LightScreenTurns > 0 {
		return 0.5
	}
	return 1.0
}

// Side is one trainer's field-level state, independent of any individual
// Battler on the team.
type Side struct {
	Hazards Hazards
	Screens Screens

	MistTurns       int
	SafeguardTurns  int
	TailwindTurns   int
	LuckyChantTurns int

	// WishHP is the amount Wish will heal when it resolves; WishTurns counts
	// down to that resolution. WishTurns == 0 means no Wish is pending.
	WishHP    int
	WishTurns int

	// HealingWishPending marks that the next Battler switched in on this
	// side should be fully healed and have its status cleared.
	HealingWishPending bool
}

// Clone returns an independent copy; Side has no reference fields today but
// Clone exists so callers never need to special-case it during a
// battlestate clone (cheap MCTS forking, §4.7).
func (s Side) Clone() Side {
	return s
}

// TickEndOfTurn decrements every turn-counted field condition by one,
// never going below zero. It does not apply Wish healing or hazard damage:
// the Turn Driver applies hazards on switch-in, and nothing heals from
// WishHP.
func (s *Side) TickEndOfTurn() {
	s.Screens.ReflectTurns = dec(s.Screens.ReflectTurns)
	s.Screens.LightScreenTurns = dec(s.Screens.LightScreenTurns)
	s.Screens.AuroraVeilTurns = dec(s.Screens.AuroraVeilTurns)
	s.MistTurns = dec(s.MistTurns)
	s.SafeguardTurns = dec(s.SafeguardTurns)
	s.TailwindTurns = dec(s.TailwindTurns)
	s.LuckyChantTurns = dec(s.LuckyChantTurns)
	if s.WishTurns > 0 {
		s.WishTurns--
	}
}

func dec(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}

// AddSpikes layers Spikes up to the 3-layer cap, reporting whether a new
// layer was actually added.
func (h *Hazards) AddSpikes() bool {
	if h.SpikesLayers >= 3 {
		return false
	}
	h.SpikesLayers++
	return true
}

// AddToxicSpikes layers Toxic Spikes up to the 2-layer cap.
func (h *Hazards) AddToxicSpikes() bool {
	if h.ToxicSpikesLayers >= 2 {
		return false
	}
	h.ToxicSpikesLayers++
	return true
}

// Clear removes every hazard from this side (Rapid Spin / Defog / Court Change target).
func (h *Hazards) Clear() {
	*h = Hazards{}
}
