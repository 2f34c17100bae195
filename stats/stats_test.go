// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukawamochi/Pokemon-Champions/dex"
	"github.com/Ukawamochi/Pokemon-Champions/stats"
)

func TestComputeHPFormula(t *testing.T) {
	species := &dex.SpeciesRecord{BaseStats: dex.StatBlock{HP: 108, Atk: 130, Def: 95, SpA: 80, SpD: 85, Spe: 102}}
	build := stats.Build{
		Level: 50,
		IVs:   dex.StatBlock{HP: 31, Atk: 31, Def: 31, SpA: 31, SpD: 31, Spe: 31},
		EVs:   dex.StatBlock{HP: 252, Atk: 252, Spe: 4},
	}
	neutral := dex.Nature{}

	got, err := stats.Compute(species, build, neutral)
	require.NoError(t, err)

	// HP = floor((2*108+31+floor(252/4))*50/100)+50+10 = floor((216+31+63)*50/100)+60
	// = floor(310*50/100)+60 = floor(155)+60 = 215
	assert.Equal(t, 215, got.HP)
}

func TestComputeNatureBoostsAndLowers(t *testing.T) {
	species := &dex.SpeciesRecord{BaseStats: dex.StatBlock{HP: 108, Atk: 130, Def: 95, SpA: 80, SpD: 85, Spe: 102}}
	build := stats.Build{
		Level: 50,
		IVs:   dex.StatBlock{HP: 31, Atk: 31, Def: 31, SpA: 31, SpD: 31, Spe: 31},
		EVs:   dex.StatBlock{Atk: 252, SpA: 0},
	}
	adamant := dex.Nature{ID: "adamant", Boosted: "atk", Lowered: "spa"}

	boosted, err := stats.Compute(species, build, adamant)
	require.NoError(t, err)

	neutral, err := stats.Compute(species, build, dex.Nature{})
	require.NoError(t, err)

	assert.Greater(t, boosted.Atk, neutral.Atk, "adamant must boost attack over neutral")
	assert.LessOrEqual(t, boosted.SpA, neutral.SpA, "adamant must not boost special attack")
}

func TestComputeRejectsInvalidLevel(t *testing.T) {
	species := &dex.SpeciesRecord{BaseStats: dex.StatBlock{HP: 100, Atk: 100, Def: 100, SpA: 100, SpD: 100, Spe: 100}}
	_, err := stats.Compute(species, stats.Build{Level: 0}, dex.Nature{})
	require.Error(t, err)

	_, err = stats.Compute(species, stats.Build{Level: 101}, dex.Nature{})
	require.Error(t, err)
}

func TestComputeRejectsOverBudgetEVs(t *testing.T) {
	species := &dex.SpeciesRecord{BaseStats: dex.StatBlock{HP: 100, Atk: 100, Def: 100, SpA: 100, SpD: 100, Spe: 100}}
	build := stats.Build{Level: 50, EVs: dex.StatBlock{HP: 252, Atk: 252, Def: 252}}
	_, err := stats.Compute(species, build, dex.Nature{})
	require.Error(t, err)
}

func TestComputeRejectsNilSpecies(t *testing.T) {
	_, err := stats.Compute(nil, stats.Build{Level: 50}, dex.Nature{})
	require.Error(t, err)
}
