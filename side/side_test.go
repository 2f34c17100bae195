// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package side_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ukawamochi/Pokemon-Champions/side"
)

func TestAddSpikesCapsAtThreeLayers(t *testing.T) {
	var h side.Hazards
	for i := 0; i < 5; i++ {
		h.AddSpikes()
	}
	assert.Equal(t, 3, h.SpikesLayers)
}

func TestAddToxicSpikesCapsAtTwoLayers(t *testing.T) {
	var h side.Hazards
	added1 := h.AddToxicSpikes()
	added2 := h.AddToxicSpikes()
	added3 := h.AddToxicSpikes()
	assert.True(t, added1)
	assert.True(t, added2)
	assert.False(t, added3)
	assert.Equal(t, 2, h.ToxicSpikesLayers)
}

func TestClearHazardsResetsAll(t *testing.T) {
	h := side.Hazards{SpikesLayers: 3, ToxicSpikesLayers: 2, StealthRock: true, StickyWeb: true}
	h.Clear()
	assert.Equal(t, side.Hazards{}, h)
}

func TestScreensActive(t *testing.T) {
	var s side.Screens
	assert.False(t, s.Active())
	s.ReflectTurns = 5
	assert.True(t, s.Active())
}

func TestTickEndOfTurnDecrementsWithoutUnderflow(t *testing.T) {
	s := side.Side{
		Screens:   side.Screens{ReflectTurns: 1},
		MistTurns: 0,
	}
	s.TickEndOfTurn()
	assert.Equal(t, 0, s.Screens.ReflectTurns)
	s.TickEndOfTurn()
	assert.Equal(t, 0, s.Screens.ReflectTurns, "must not underflow below zero")
	assert.Equal(t, 0, s.MistTurns)
}

func TestTickEndOfTurnCountsDownWish(t *testing.T) {
	s := side.Side{WishHP: 50, WishTurns: 2}
	s.TickEndOfTurn()
	assert.Equal(t, 1, s.WishTurns)
	s.TickEndOfTurn()
	assert.Equal(t, 0, s.WishTurns)
}

func TestCloneIsIndependentValue(t *testing.T) {
	s := side.Side{Hazards: side.Hazards{SpikesLayers: 2}}
	c := s.Clone()
	c.Hazards.SpikesLayers = 0
	assert.Equal(t, 2, s.Hazards.SpikesLayers)
}
