// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package battlestate assembles the two Sides, the active battler indices,
// field-wide conditions, the turn counter, the PRNG, and the event log into
// one immutable-by-convention snapshot that the rest of the simulator reads
// and the Turn Driver advances one turn at a time (§3 Battle State).
package battlestate

import (
	"github.com/Ukawamochi/Pokemon-Champions/battler"
	"github.com/Ukawamochi/Pokemon-Champions/rng"
	"github.com/Ukawamochi/Pokemon-Champions/side"
)

// Weather is the active field weather.
type Weather string

// Weather conditions.
const (
	WeatherNone    Weather = ""
	WeatherRain    Weather = "rain"
	WeatherSun     Weather = "sun"
	WeatherSand    Weather = "sand"
	WeatherHail    Weather = "hail"
	WeatherSnow    Weather = "snow"
)

// Terrain is the active field terrain.
type Terrain string

// Terrain conditions.
const (
	TerrainNone      Terrain = ""
	TerrainElectric  Terrain = "electric"
	TerrainGrassy    Terrain = "grassy"
	TerrainMisty     Terrain = "misty"
	TerrainPsychic   Terrain = "psychic"
)

// Event is one line of the battle's append-only log (§6 wire format). Text
// is the rendered wire-format line; Fields carries the structured data a
// renderer or a rollout heuristic can read without re-parsing Text.
type Event struct {
	Text   string
	Fields map[string]string
}

// SideIndex identifies one of the two sides.
type SideIndex int

// The two sides.
const (
	SideA SideIndex = 0
	SideB SideIndex = 1
)

// Opponent returns the other side.
func (i SideIndex) Opponent() SideIndex {
	if i == SideA {
		return SideB
	}
	return SideA
}

// Team is one side's roster plus which slot is currently active.
type Team struct {
	Battlers []battler.Battler
	Active   int // index into Battlers; -1 if the whole team has fainted
}

// ActiveBattler returns a pointer to the currently active Battler, or nil if
// none is active (whole team fainted).
func (t *Team) ActiveBattler() *battler.Battler {
	if t.Active < 0 || t.Active >= len(t.Battlers) {
		return nil
	}
	return &t.Battlers[t.Active]
}

// AllFainted reports whether every Battler on the team has fainted.
func (t *Team) AllFainted() bool {
	for i := range t.Battlers {
		if !t.Battlers[i].Fainted {
			return false
		}
	}
	return true
}

// Clone deep-copies the team, including each Battler's own maps/slices.
func (t Team) Clone() Team {
	c := t
	c.Battlers = make([]battler.Battler, len(t.Battlers))
	for i, b := range t.Battlers {
		c.Battlers[i] = b.Clone()
	}
	return c
}

// State is the full battle snapshot.
type State struct {
	Sides [2]Team
	Field [2]side.Side

	Weather     Weather
	WeatherTurns int
	Terrain     Terrain
	TerrainTurns int
	TrickRoom   bool
	TrickRoomTurns int

	Turn int

	RNG rng.Source
	Log []Event
}

// Clone returns a fully independent snapshot: every Team, Side, and the PRNG
// stream itself are duplicated so a simulated continuation can diverge from
// the original without any aliasing. The event log is NOT copied into the
// clone (rollouts do not need replayable history; §4.7), which is what
// keeps MCTS node expansion cheap.
func (s *State) Clone() *State {
	c := &State{
		Sides:          [2]Team{s.Sides[0].Clone(), s.Sides[1].Clone()},
		Field:          [2]side.Side{s.Field[0].Clone(), s.Field[1].Clone()},
		Weather:        s.Weather,
		WeatherTurns:   s.WeatherTurns,
		Terrain:        s.Terrain,
		TerrainTurns:   s.TerrainTurns,
		TrickRoom:      s.TrickRoom,
		TrickRoomTurns: s.TrickRoomTurns,
		Turn:           s.Turn,
	}
	if s.RNG != nil {
		c.RNG = s.RNG.Clone()
	}
	return c
}

// AppendEvent records a rendered line plus its structured fields.
func (s *State) AppendEvent(text string, fields map[string]string) {
	s.Log = append(s.Log, Event{Text: text, Fields: fields})
}

// Winner reports the winning side, whether the battle has concluded, and
// whether it ended in a tie. An ongoing battle is (-1, false, false). A
// double KO (both teams fainted the same turn) is a tie, reported as
// (-1, true, true).
func (s *State) Winner() (side SideIndex, concluded bool, tie bool) {
	aOut := s.Sides[SideA].AllFainted()
	bOut := s.Sides[SideB].AllFainted()
	switch {
	case aOut && bOut:
		return -1, true, true
	case aOut:
		return SideB, true, false
	case bOut:
		return SideA, true, false
	default:
		return -1, false, false
	}
}
