// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package battler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukawamochi/Pokemon-Champions/battler"
	"github.com/Ukawamochi/Pokemon-Champions/dex"
)

func TestStagesAddClamps(t *testing.T) {
	var s battler.Stages
	for i := 0; i < 10; i++ {
		s.Add(dex.BoostAtk, 1)
	}
	assert.Equal(t, battler.MaxStage, s.Atk)

	for i := 0; i < 20; i++ {
		s.Add(dex.BoostAtk, -1)
	}
	assert.Equal(t, battler.MinStage, s.Atk)
}

func TestStagesAddReturnsActualDelta(t *testing.T) {
	var s battler.Stages
	s.Atk = battler.MaxStage - 1
	applied := s.Add(dex.BoostAtk, 3)
	assert.Equal(t, 1, applied, "clamped boost should report only the portion actually applied")
	assert.Equal(t, battler.MaxStage, s.Atk)
}

func TestMultiplierTable(t *testing.T) {
	assert.Equal(t, 1.0, battler.Multiplier(0))
	assert.Equal(t, 4.0, battler.Multiplier(6))
	assert.Equal(t, 0.25, battler.Multiplier(-6))
	assert.InDelta(t, 2.0, battler.Multiplier(2), 1e-9)
}

func TestAccuracyMultiplierTable(t *testing.T) {
	assert.Equal(t, 1.0, battler.AccuracyMultiplier(0))
	assert.Equal(t, 3.0, battler.AccuracyMultiplier(6))
	assert.InDelta(t, 1.0/3.0, battler.AccuracyMultiplier(-6), 1e-9)
}

func TestCloneIsIndependent(t *testing.T) {
	b := battler.Battler{
		PP:    map[string]int{"tackle": 35},
		MaxPP: map[string]int{"tackle": 35},
		Moves: []string{"tackle"},
	}
	c := b.Clone()
	c.PP["tackle"] = 0
	c.Moves[0] = "struggle"

	assert.Equal(t, 35, b.PP["tackle"], "mutating the clone must not affect the original")
	assert.Equal(t, "tackle", b.Moves[0])
}

func TestResetOnSwitchOutClearsVolatilesNotStatus(t *testing.T) {
	b := battler.Battler{Status: dex.StatusBurn, CurrentHP: 50, MaxHP: 100}
	b.Stages.Add(dex.BoostAtk, 2)
	b.Flags.Confused = true

	b.ResetOnSwitchOut()

	assert.Equal(t, 0, b.Stages.Atk)
	assert.False(t, b.Flags.Confused)
	assert.Equal(t, dex.StatusBurn, b.Status, "major status must persist across switches")
	assert.Equal(t, 50, b.CurrentHP, "HP must persist across switches")
}

func TestApplyDamageFaintsAtZero(t *testing.T) {
	b := battler.Battler{CurrentHP: 10, MaxHP: 100}
	dealt := b.ApplyDamage(15)
	assert.Equal(t, 10, dealt, "damage dealt cannot exceed remaining HP")
	assert.Equal(t, 0, b.CurrentHP)
	assert.True(t, b.Fainted)
}

func TestHealCapsAtMaxAndRefusesFainted(t *testing.T) {
	b := battler.Battler{CurrentHP: 90, MaxHP: 100}
	healed := b.Heal(50)
	assert.Equal(t, 10, healed)
	assert.Equal(t, 100, b.CurrentHP)

	fainted := battler.Battler{CurrentHP: 0, MaxHP: 100, Fainted: true}
	require.Equal(t, 0, fainted.Heal(50))
}
