// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package simulate is the public entry point: given two teams, a seed, and
// a pair of action sources, it drives a complete battle to conclusion and
// returns the final state, whose Log holds the event log (battlelog renders
// it to text). It also exposes a
// bulk matchup-evaluation helper for running many seeded battles between
// the same two policies (§1 PURPOSE & SCOPE, SPEC_FULL [FULL] module).
package simulate

import (
	"github.com/google/uuid"

	"github.com/Ukawamochi/Pokemon-Champions/battler"
	"github.com/Ukawamochi/Pokemon-Champions/battlestate"
	"github.com/Ukawamochi/Pokemon-Champions/dex"
	"github.com/Ukawamochi/Pokemon-Champions/order"
	"github.com/Ukawamochi/Pokemon-Champions/rng"
	"github.com/Ukawamochi/Pokemon-Champions/simerr"
	"github.com/Ukawamochi/Pokemon-Champions/stats"
	"github.com/Ukawamochi/Pokemon-Champions/turn"
)

// BattlerSpec describes one teammate before stats are computed: its species
// id, level, build, and loadout.
type BattlerSpec struct {
	Species string
	Level   int
	Nature  string
	IVs     dex.StatBlock
	EVs     dex.StatBlock
	Ability string
	Item    string
	Moves   []string
}

// TeamSpec is a full roster of BattlerSpecs.
type TeamSpec struct {
	Battlers []BattlerSpec
}

// Config bundles everything Battle needs to run one deterministic battle.
type Config struct {
	Dex      dex.Dex
	Teams    [2]TeamSpec
	Seed     uint64
	MaxTurns int
	Sources  [2]turn.ActionSource
}

// Result is the outcome of one Battle call.
type Result struct {
	BattleID   string
	FinalState *battlestate.State
	Winner     battlestate.SideIndex
	Concluded  bool
	Tie        bool
	Turns      int
}

// Battle builds the initial battlestate.State from cfg.Teams and runs turns
// until the battle concludes or cfg.MaxTurns is reached (a draw by turn
// limit reports Concluded=false so callers can distinguish it from a
// genuine double-KO tie).
func Battle(cfg Config) (Result, error) {
	battleID := uuid.New().String()

	state, err := newState(cfg)
	if err != nil {
		return Result{}, err
	}

	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 1000
	}

	sources := cfg.Sources
	for s := range sources {
		if sources[s] == nil {
			sources[s] = SimplePolicy{Dex: cfg.Dex}
		}
	}

	drv := turn.New(cfg.Dex)
	for i := 0; i < maxTurns; i++ {
		concluded, err := drv.RunTurn(state, sources)
		if err != nil {
			return Result{}, err
		}
		if concluded {
			winner, done, tie := state.Winner()
			return Result{BattleID: battleID, FinalState: state, Winner: winner, Concluded: done, Tie: tie, Turns: state.Turn}, nil
		}
	}
	return Result{BattleID: battleID, FinalState: state, Concluded: false, Turns: state.Turn}, nil
}

func newState(cfg Config) (*battlestate.State, error) {
	if cfg.Dex == nil {
		return nil, simerr.New(simerr.CodeInvalidArgument, "simulate: Dex is required")
	}
	state := &battlestate.State{RNG: rng.New(cfg.Seed)}
	for s := 0; s < 2; s++ {
		team, err := buildTeam(cfg.Dex, cfg.Teams[s])
		if err != nil {
			return nil, err
		}
		state.Sides[s] = team
	}
	return state, nil
}

func buildTeam(d dex.Dex, spec TeamSpec) (battlestate.Team, error) {
	if len(spec.Battlers) == 0 {
		return battlestate.Team{}, simerr.New(simerr.CodeInvalidArgument, "simulate: a team needs at least one battler")
	}
	team := battlestate.Team{Active: 0, Battlers: make([]battler.Battler, len(spec.Battlers))}
	for i, bs := range spec.Battlers {
		b, err := buildBattler(d, bs)
		if err != nil {
			return battlestate.Team{}, err
		}
		team.Battlers[i] = b
	}
	return team, nil
}

func buildBattler(d dex.Dex, bs BattlerSpec) (battler.Battler, error) {
	species, ok := d.Species(bs.Species)
	if !ok {
		return battler.Battler{}, simerr.New(simerr.CodeNotFound, "simulate: unknown species", simerr.WithMeta("species", bs.Species))
	}
	nature, _ := d.Nature(bs.Nature)

	build := stats.Build{Species: bs.Species, Level: bs.Level, IVs: bs.IVs, EVs: bs.EVs, Nature: bs.Nature}
	computed, err := stats.Compute(species, build, nature)
	if err != nil {
		return battler.Battler{}, err
	}

	pp := make(map[string]int, len(bs.Moves))
	maxPP := make(map[string]int, len(bs.Moves))
	for _, m := range bs.Moves {
		move, ok := d.Move(m)
		if !ok {
			return battler.Battler{}, simerr.New(simerr.CodeNotFound, "simulate: unknown move", simerr.WithMeta("move", m))
		}
		key := dex.Normalize(m)
		pp[key] = move.PP
		maxPP[key] = move.PP
	}
	pp[dex.Normalize("struggle")] = 1
	maxPP[dex.Normalize("struggle")] = 1

	return battler.Battler{
		Species: dex.Normalize(bs.Species),
		Level:   bs.Level,
		Nature:  dex.Normalize(bs.Nature),
		Ability: dex.Normalize(bs.Ability),
		Item:    dex.Normalize(bs.Item),
		Stats:   computed,
		IVs:     bs.IVs,
		EVs:     bs.EVs,
		MaxHP:   computed.HP,
		CurrentHP: computed.HP,
		Moves:   bs.Moves,
		PP:      pp,
		MaxPP:   maxPP,
	}, nil
}

// SimplePolicy is the default turn.ActionSource used for any side the
// caller leaves nil: on a forced switch it brings in the first non-fainted
// teammate, and otherwise it uses the first move with PP remaining. It
// exists so Battle and EvaluateMatchup are usable standalone (e.g. for
// quick smoke runs), not as a competitive policy — real evaluation should
// supply an mcts.Search-backed turn.ActionSource for both sides.
type SimplePolicy struct {
	Dex dex.Dex
}

// Decide implements turn.ActionSource.
func (p SimplePolicy) Decide(state *battlestate.State, s battlestate.SideIndex, forcedSwitch bool) (turn.Decision, error) {
	team := &state.Sides[s]
	if forcedSwitch {
		for i, b := range team.Battlers {
			if !b.Fainted {
				return turn.Decision{Kind: order.ActionSwitch, SwitchIndex: i}, nil
			}
		}
		return turn.Decision{}, simerr.New(simerr.CodeInvalidState, "simulate: no battler available for forced replacement")
	}
	active := team.ActiveBattler()
	if active == nil {
		return turn.Decision{}, simerr.New(simerr.CodeInvalidState, "simulate: no active battler to act")
	}
	for _, moveID := range active.Moves {
		key := dex.Normalize(moveID)
		if active.PP[key] > 0 {
			return turn.Decision{Kind: order.ActionMove, MoveID: moveID}, nil
		}
	}
	return turn.Decision{Kind: order.ActionMove, MoveID: "struggle"}, nil
}

// MatchupResult summarizes many Battle runs between the same two policies.
type MatchupResult struct {
	Battles    int
	WinsSideA  int
	WinsSideB  int
	Ties       int
	Unresolved int // hit MaxTurns without concluding
}

// EvaluateMatchup runs cfg once per seed in seeds, rebuilding fresh teams
// each time so no mutated state leaks between battles, and tallies the
// outcome distribution. This is the bulk matchup-evaluation surface named
// in the public entry point's scope.
func EvaluateMatchup(cfg Config, seeds []uint64) (MatchupResult, error) {
	var result MatchupResult
	for _, seed := range seeds {
		runCfg := cfg
		runCfg.Seed = seed
		outcome, err := Battle(runCfg)
		if err != nil {
			return result, err
		}
		result.Battles++
		switch {
		case !outcome.Concluded:
			result.Unresolved++
		case outcome.Tie:
			result.Ties++
		case outcome.Winner == battlestate.SideA:
			result.WinsSideA++
		default:
			result.WinsSideB++
		}
	}
	return result, nil
}
