// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Command battlesim runs one deterministic generation-9 singles battle
// between two built-in rosters and prints the resulting event log in the
// pipe-delimited wire format.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Ukawamochi/Pokemon-Champions/battlelog"
	"github.com/Ukawamochi/Pokemon-Champions/dex"
	"github.com/Ukawamochi/Pokemon-Champions/simulate"
)

func main() {
	seed := flag.Uint64("seed", 1, "PRNG seed driving this battle")
	maxTurns := flag.Int("max-turns", 100, "turn limit before the battle is declared unresolved")
	flag.Parse()

	cfg := simulate.Config{
		Dex:      dex.NewBuiltin(),
		Seed:     *seed,
		MaxTurns: *maxTurns,
		Teams: [2]simulate.TeamSpec{
			{Battlers: []simulate.BattlerSpec{{
				Species: "garchomp", Level: 50, Nature: "adamant",
				IVs:   dex.StatBlock{HP: 31, Atk: 31, Def: 31, SpA: 31, SpD: 31, Spe: 31},
				EVs:   dex.StatBlock{HP: 4, Atk: 252, Spe: 252},
				Item:  "choicescarf",
				Moves: []string{"earthquake", "stoneedge", "swordsdance", "suckerpunch"},
			}}},
			{Battlers: []simulate.BattlerSpec{{
				Species: "heatran", Level: 50, Nature: "modest",
				IVs:   dex.StatBlock{HP: 31, Atk: 31, Def: 31, SpA: 31, SpD: 31, Spe: 31},
				EVs:   dex.StatBlock{HP: 252, SpA: 252, SpD: 4},
				Item:  "leftovers",
				Moves: []string{"flamethrower", "toxic", "protect"},
			}}},
		},
	}

	result, err := simulate.Battle(cfg)
	if err != nil {
		log.Fatalf("battlesim: %v", err)
	}

	if err := battlelog.Write(os.Stdout, result.FinalState.Log); err != nil {
		log.Fatalf("battlesim: writing log: %v", err)
	}

	switch {
	case !result.Concluded:
		fmt.Fprintf(os.Stderr, "battlesim: unresolved after %d turns\n", result.Turns)
	case result.Tie:
		fmt.Fprintf(os.Stderr, "battlesim: double knockout after %d turns\n", result.Turns)
	default:
		fmt.Fprintf(os.Stderr, "battlesim: side %d wins after %d turns\n", result.Winner, result.Turns)
	}
}
