// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package mcts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukawamochi/Pokemon-Champions/battler"
	"github.com/Ukawamochi/Pokemon-Champions/battlestate"
	"github.com/Ukawamochi/Pokemon-Champions/dex"
	"github.com/Ukawamochi/Pokemon-Champions/mcts"
	"github.com/Ukawamochi/Pokemon-Champions/order"
	"github.com/Ukawamochi/Pokemon-Champions/rng"
	"github.com/Ukawamochi/Pokemon-Champions/turn"
)

type twoMoveGenerator struct {
	moves []string
}

func (g twoMoveGenerator) LegalActions(state *battlestate.State, s battlestate.SideIndex) []turn.Decision {
	out := make([]turn.Decision, len(g.moves))
	for i, m := range g.moves {
		out[i] = turn.Decision{Kind: order.ActionMove, MoveID: m}
	}
	return out
}

func chomp(hp int) battler.Battler {
	return battler.Battler{
		Species: "garchomp", Level: 50,
		Stats:     dex.StatBlock{HP: 200, Atk: 189, Def: 100, SpA: 100, SpD: 100, Spe: 102},
		CurrentHP: hp, MaxHP: 200,
		PP:    map[string]int{"earthquake": 10, "stoneedge": 5},
		MaxPP: map[string]int{"earthquake": 10, "stoneedge": 5},
	}
}

func heatran(hp int) battler.Battler {
	return battler.Battler{
		Species: "heatran", Level: 50,
		Stats:     dex.StatBlock{HP: 180, Atk: 90, Def: 106, SpA: 130, SpD: 106, Spe: 77},
		CurrentHP: hp, MaxHP: 180,
		PP:    map[string]int{"flamethrower": 15},
		MaxPP: map[string]int{"flamethrower": 15},
	}
}

func newState(seed uint64) *battlestate.State {
	return &battlestate.State{
		Sides: [2]battlestate.Team{
			{Battlers: []battler.Battler{chomp(200)}, Active: 0},
			{Battlers: []battler.Battler{heatran(180)}, Active: 0},
		},
		RNG: rng.New(seed),
	}
}

func TestSearchReturnsALegalRootAction(t *testing.T) {
	d := dex.NewBuiltin()
	drv := turn.New(d)
	gen := twoMoveGenerator{moves: []string{"earthquake", "stoneedge"}}
	cfg := mcts.DefaultConfig(battlestate.SideA, 42)
	cfg.Iterations = 20
	cfg.Horizon = 2

	search := mcts.NewSearch(cfg, drv, gen, nil)
	decision := search.Run(newState(1))

	assert.Contains(t, []string{"earthquake", "stoneedge"}, decision.MoveID)
}

func TestSearchSingleLegalActionShortCircuits(t *testing.T) {
	d := dex.NewBuiltin()
	drv := turn.New(d)
	gen := twoMoveGenerator{moves: []string{"earthquake"}}
	cfg := mcts.DefaultConfig(battlestate.SideA, 1)
	cfg.Iterations = 5

	search := mcts.NewSearch(cfg, drv, gen, nil)
	decision := search.Run(newState(1))
	assert.Equal(t, "earthquake", decision.MoveID)
}

func TestSearchDeterministicGivenSameSeed(t *testing.T) {
	d := dex.NewBuiltin()
	gen := twoMoveGenerator{moves: []string{"earthquake", "stoneedge"}}

	run := func() string {
		drv := turn.New(d)
		cfg := mcts.DefaultConfig(battlestate.SideA, 999)
		cfg.Iterations = 30
		cfg.Horizon = 3
		search := mcts.NewSearch(cfg, drv, gen, nil)
		return search.Run(newState(1)).MoveID
	}

	a := run()
	b := run()
	assert.Equal(t, a, b, "identical seed and iteration budget must choose the same action")
}

func TestDefaultHeuristicFavorsHealthierSide(t *testing.T) {
	state := newState(1)
	state.Sides[battlestate.SideB].Battlers[0].CurrentHP = 1

	score := mcts.DefaultHeuristic(state, battlestate.SideA)
	assert.Greater(t, score, 0.0, "side A should score higher when its opponent is nearly fainted")
}

func TestModeMyActionOnlyUsesOpponentPolicy(t *testing.T) {
	d := dex.NewBuiltin()
	drv := turn.New(d)
	gen := twoMoveGenerator{moves: []string{"earthquake", "stoneedge"}}
	cfg := mcts.DefaultConfig(battlestate.SideA, 5)
	cfg.Mode = mcts.ModeMyActionOnly
	cfg.Iterations = 10
	cfg.Horizon = 2

	opp := stubOpponent{}
	search := mcts.NewSearch(cfg, drv, gen, opp)
	decision := search.Run(newState(1))
	require.NotEmpty(t, decision.MoveID)
}

type stubOpponent struct{}

func (stubOpponent) Decide(state *battlestate.State, s battlestate.SideIndex) turn.Decision {
	return turn.Decision{Kind: order.ActionMove, MoveID: "flamethrower"}
}
