// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukawamochi/Pokemon-Champions/rng"
)

func TestSplitMix64Deterministic(t *testing.T) {
	a := rng.New(42)
	b := rng.New(42)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint64(), b.Uint64(), "same seed must produce identical streams")
	}
}

func TestSplitMix64DifferentSeeds(t *testing.T) {
	a := rng.New(1)
	b := rng.New(2)
	assert.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestRollBounds(t *testing.T) {
	s := rng.New(7)
	for i := 0; i < 1000; i++ {
		r := s.Roll(100)
		require.GreaterOrEqual(t, r, 1)
		require.LessOrEqual(t, r, 100)
	}
}

func TestChanceAlwaysAndNever(t *testing.T) {
	s := rng.New(1)
	assert.True(t, s.Chance(1, 1))
	assert.False(t, s.Chance(0, 5))
}

func TestCloneIndependence(t *testing.T) {
	s := rng.New(99)
	s.Uint64()
	clone := s.Clone()

	a := s.Uint64()
	b := clone.Uint64()
	assert.Equal(t, a, b, "clone must replay the same future as the original")

	// Advancing the clone must not affect the original.
	c := clone.Uint64()
	d := s.Uint64()
	assert.Equal(t, c, d)
}

func TestMixVariesByIterationAndDepth(t *testing.T) {
	seed := uint64(123)
	seeds := map[uint64]bool{}
	for iter := 0; iter < 5; iter++ {
		for depth := 0; depth < 5; depth++ {
			seeds[rng.Mix(seed, iter, depth)] = true
		}
	}
	assert.Equal(t, 25, len(seeds), "mixing distinct (iteration, depth) pairs should rarely collide")
}

func TestFixedSourceCycles(t *testing.T) {
	f := rng.NewFixedSource(3, 7, 1)
	first := f.Roll(100)
	second := f.Roll(100)
	third := f.Roll(100)
	fourth := f.Roll(100)
	assert.Equal(t, first, fourth, "must cycle back to the start after 3 values")
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)
}
