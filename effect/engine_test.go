// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package effect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukawamochi/Pokemon-Champions/battler"
	"github.com/Ukawamochi/Pokemon-Champions/battlestate"
	"github.com/Ukawamochi/Pokemon-Champions/dex"
	"github.com/Ukawamochi/Pokemon-Champions/effect"
	"github.com/Ukawamochi/Pokemon-Champions/rng"
	"github.com/Ukawamochi/Pokemon-Champions/side"
)

func newState(attacker, defender battler.Battler, seed uint64) *battlestate.State {
	return &battlestate.State{
		Sides: [2]battlestate.Team{
			{Battlers: []battler.Battler{attacker}, Active: 0},
			{Battlers: []battler.Battler{defender}, Active: 0},
		},
		RNG: rng.New(seed),
	}
}

func chomp(hp int) battler.Battler {
	return battler.Battler{
		Species: "garchomp", Level: 50, Ability: "roughskin",
		Stats:     dex.StatBlock{HP: 200, Atk: 189, Def: 100, SpA: 100, SpD: 100, Spe: 102},
		CurrentHP: hp, MaxHP: 200,
		PP:    map[string]int{"earthquake": 10, "struggle": 1},
		MaxPP: map[string]int{"earthquake": 10, "struggle": 1},
	}
}

func heatran(hp int) battler.Battler {
	return battler.Battler{
		Species: "heatran", Level: 50, Ability: "flashfire",
		Stats:     dex.StatBlock{HP: 180, Atk: 90, Def: 106, SpA: 130, SpD: 106, Spe: 77},
		CurrentHP: hp, MaxHP: 180,
		PP:    map[string]int{"flamethrower": 15},
		MaxPP: map[string]int{"flamethrower": 15},
	}
}

func TestUseMoveDealsSuperEffectiveDamage(t *testing.T) {
	d := dex.NewBuiltin()
	state := newState(chomp(200), heatran(180), 1)
	e := effect.New(d)

	outcome, err := e.UseMove(state, battlestate.SideA, "earthquake")
	require.NoError(t, err)
	assert.Greater(t, outcome.DamageDealt, 0)

	defender := state.Sides[battlestate.SideB].ActiveBattler()
	assert.Less(t, defender.CurrentHP, 180)
}

func TestUseMoveMissReportsNoDamage(t *testing.T) {
	d := dex.NewBuiltin()
	e := effect.New(d)

	// stoneedge has 80% accuracy; find a seed that misses deterministically
	// by scanning: determinism means the same seed always reproduces the
	// same outcome, which is what this test actually verifies.
	var missed bool
	for seed := uint64(0); seed < 50; seed++ {
		s := newState(chomp(200), heatran(180), seed)
		s.Sides[0].Battlers[0].PP["stoneedge"] = 5
		s.Sides[0].Battlers[0].MaxPP["stoneedge"] = 5
		out, err := e.UseMove(s, battlestate.SideA, "stoneedge")
		require.NoError(t, err)
		if out.Missed {
			missed = true
			break
		}
	}
	assert.True(t, missed, "stoneedge at 80%% accuracy should miss at least once across 50 seeds")
}

func TestUseMoveFaintingOpponentEndsDamageLoop(t *testing.T) {
	d := dex.NewBuiltin()
	state := newState(chomp(200), heatran(1), 1)
	e := effect.New(d)

	outcome, err := e.UseMove(state, battlestate.SideA, "earthquake")
	require.NoError(t, err)
	defender := state.Sides[battlestate.SideB].ActiveBattler()
	assert.True(t, defender.Fainted)
	assert.Contains(t, outcome.Fainted, battlestate.SideB)
}

func TestUseMoveOutOfPPFallsBackToStruggle(t *testing.T) {
	d := dex.NewBuiltin()
	attacker := chomp(200)
	attacker.PP["earthquake"] = 0
	state := newState(attacker, heatran(180), 1)
	e := effect.New(d)

	_, err := e.UseMove(state, battlestate.SideA, "earthquake")
	require.NoError(t, err)
	assert.Equal(t, "struggle", state.Sides[battlestate.SideA].Battlers[0].Flags.LastMoveUsed)
}

func TestUseMoveSleepingAttackerIsBlocked(t *testing.T) {
	d := dex.NewBuiltin()
	attacker := chomp(200)
	attacker.Status = dex.StatusSleep
	attacker.SleepTurns = 2
	state := newState(attacker, heatran(180), 1)
	e := effect.New(d)

	outcome, err := e.UseMove(state, battlestate.SideA, "earthquake")
	require.NoError(t, err)
	assert.True(t, outcome.Blocked)
	assert.Equal(t, 1, state.Sides[battlestate.SideA].Battlers[0].SleepTurns)
}

func TestApplySwitchInIntimidateLowersOpponentAttack(t *testing.T) {
	d := dex.NewBuiltin()
	attacker := chomp(200)
	attacker.Ability = "intimidate"
	defender := heatran(180)
	state := newState(attacker, defender, 1)
	e := effect.New(d)

	e.ApplySwitchIn(state, battlestate.SideA, &state.Sides[battlestate.SideA].Battlers[0])
	assert.Equal(t, -1, state.Sides[battlestate.SideB].Battlers[0].Stages.Atk)
}

func TestContactAbilityRoughSkinIgnoresNonContactMove(t *testing.T) {
	d := dex.NewBuiltin()
	attacker := chomp(200)
	defender := heatran(180)
	defender.Ability = "roughskin"
	state := newState(attacker, defender, 3)
	e := effect.New(d)

	before := attacker.CurrentHP
	_, err := e.UseMove(state, battlestate.SideA, "earthquake")
	require.NoError(t, err)
	assert.Equal(t, before, state.Sides[battlestate.SideA].Battlers[0].CurrentHP, "earthquake has no contact flag so rough skin should not fire")
}

func TestUseMoveRainBoostsWaterMoveDamage(t *testing.T) {
	d := dex.NewBuiltin()

	noWeather := newState(chomp(200), heatran(180), 1)
	noWeather.Sides[0].Battlers[0].PP["scald"] = 15
	_, err := effect.New(d).UseMove(noWeather, battlestate.SideA, "scald")
	require.NoError(t, err)
	baseline := 180 - noWeather.Sides[1].Battlers[0].CurrentHP

	rain := newState(chomp(200), heatran(180), 1)
	rain.Weather = battlestate.WeatherRain
	rain.Sides[0].Battlers[0].PP["scald"] = 15
	_, err = effect.New(d).UseMove(rain, battlestate.SideA, "scald")
	require.NoError(t, err)
	boosted := 180 - rain.Sides[1].Battlers[0].CurrentHP

	assert.Greater(t, boosted, baseline, "rain should boost a Water move's damage")
}

func TestUseMoveReflectHalvesPhysicalDamage(t *testing.T) {
	d := dex.NewBuiltin()

	// A 600 HP defender survives the unscreened hit, so the two runs' damage
	// is not both capped at the defender's remaining HP.
	tank := heatran(600)
	tank.MaxHP = 600

	unscreened := newState(chomp(200), tank, 1)
	_, err := effect.New(d).UseMove(unscreened, battlestate.SideA, "earthquake")
	require.NoError(t, err)
	baseline := 600 - unscreened.Sides[1].Battlers[0].CurrentHP

	screened := newState(chomp(200), tank, 1)
	screened.Field[battlestate.SideB].Screens = side.Screens{ReflectTurns: 5}
	_, err = effect.New(d).UseMove(screened, battlestate.SideA, "earthquake")
	require.NoError(t, err)
	halved := 600 - screened.Sides[1].Battlers[0].CurrentHP

	assert.Less(t, halved, baseline, "Reflect should halve incoming physical damage")
}

func TestUseMoveProtectBlocksDamagingMove(t *testing.T) {
	d := dex.NewBuiltin()
	defender := heatran(180)
	defender.Flags.ProtectedThisTurn = true
	state := newState(chomp(200), defender, 1)
	e := effect.New(d)

	outcome, err := e.UseMove(state, battlestate.SideA, "earthquake")
	require.NoError(t, err)
	assert.True(t, outcome.Blocked)
	assert.Equal(t, 180, state.Sides[battlestate.SideB].Battlers[0].CurrentHP)
}

func TestUseMoveSubstituteAbsorbsDamageInstead(t *testing.T) {
	d := dex.NewBuiltin()
	defender := heatran(180)
	defender.Flags.Substitute = 45
	state := newState(chomp(200), defender, 1)
	e := effect.New(d)

	_, err := e.UseMove(state, battlestate.SideA, "earthquake")
	require.NoError(t, err)

	target := state.Sides[battlestate.SideB].Battlers[0]
	assert.Equal(t, 180, target.CurrentHP, "a hit absorbed by a substitute must not touch the real battler's HP")
	assert.Less(t, target.Flags.Substitute, 45, "the substitute's HP pool should have taken the hit")
}

func TestUseMoveSoundMoveBypassesSubstitute(t *testing.T) {
	d := dex.NewBuiltin()
	attacker := chomp(200)
	attacker.PP["hypervoice"] = 10
	attacker.MaxPP["hypervoice"] = 10
	defender := heatran(180)
	defender.Flags.Substitute = 45
	state := newState(attacker, defender, 1)
	e := effect.New(d)

	_, err := e.UseMove(state, battlestate.SideA, "hypervoice")
	require.NoError(t, err)

	target := state.Sides[battlestate.SideB].Battlers[0]
	assert.Less(t, target.CurrentHP, 180, "a sound move must hit through a substitute")
	assert.Equal(t, 45, target.Flags.Substitute, "the substitute itself is untouched by a bypassing move")
}

func TestUseMoveFullParalysisBlocksTheMove(t *testing.T) {
	d := dex.NewBuiltin()
	attacker := chomp(200)
	attacker.Status = dex.StatusParalysis
	state := newState(attacker, heatran(180), 1)
	state.RNG = rng.NewFixedSource(0) // Chance(1,4) -> Intn(4)==0 -> full paralysis
	e := effect.New(d)

	outcome, err := e.UseMove(state, battlestate.SideA, "earthquake")
	require.NoError(t, err)
	assert.True(t, outcome.Blocked)
}

func TestUseMoveConfusionCanSelfHitInsteadOfActing(t *testing.T) {
	d := dex.NewBuiltin()
	attacker := chomp(200)
	attacker.Flags.Confused = true
	attacker.Flags.ConfusionTurns = 2
	state := newState(attacker, heatran(180), 1)
	state.RNG = rng.NewFixedSource(0) // Chance(1,3) -> Intn(3)==0 -> self-hit
	e := effect.New(d)

	outcome, err := e.UseMove(state, battlestate.SideA, "earthquake")
	require.NoError(t, err)
	assert.True(t, outcome.Blocked)
	assert.Less(t, state.Sides[battlestate.SideA].Battlers[0].CurrentHP, 200, "a confusion self-hit must damage the confused attacker")
	assert.Equal(t, 180, state.Sides[battlestate.SideB].Battlers[0].CurrentHP, "a confusion self-hit never reaches the opponent")
}

func TestDeterministicReplaySameSeedSameOutcome(t *testing.T) {
	d := dex.NewBuiltin()
	e := effect.New(d)

	run := func(seed uint64) (int, bool) {
		state := newState(chomp(200), heatran(180), seed)
		out, err := e.UseMove(state, battlestate.SideA, "earthquake")
		require.NoError(t, err)
		return out.DamageDealt, out.Missed
	}

	dealt1, missed1 := run(123)
	dealt2, missed2 := run(123)
	assert.Equal(t, dealt1, dealt2)
	assert.Equal(t, missed1, missed2)
}
