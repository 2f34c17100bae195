// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package dex

// NewBuiltin returns a small, internally-consistent Static Dex: enough
// species, moves, abilities, items, natures, and a full 18x18 type chart to
// exercise every pipeline step and the scenarios in spec.md §8. It stands in
// for the "generated once from an upstream data source" table that a real
// deployment would load externally (§1 Non-goals, SPEC_FULL DOMAIN STACK).
func NewBuiltin() *Static {
	d, err := NewStatic(builtinSpecies(), builtinMoves(), builtinAbilities(), builtinItems(), builtinNatures(), BuildTypeChart())
	if err != nil {
		// The builtin table is a compile-time constant; a construction error
		// here means the table itself is broken, which is a programmer error.
		panic(err)
	}
	return d
}

func builtinSpecies() []*SpeciesRecord {
	return []*SpeciesRecord{
		{ID: "garchomp", Name: "Garchomp", BaseStats: StatBlock{HP: 108, Atk: 130, Def: 95, SpA: 80, SpD: 85, Spe: 102}, Type1: Dragon, Type2: Ground},
		{ID: "heatran", Name: "Heatran", BaseStats: StatBlock{HP: 91, Atk: 90, Def: 106, SpA: 130, SpD: 106, Spe: 77}, Type1: Fire, Type2: Steel},
		{ID: "ferrothorn", Name: "Ferrothorn", BaseStats: StatBlock{HP: 74, Atk: 94, Def: 131, SpA: 54, SpD: 116, Spe: 20}, Type1: Grass, Type2: Steel},
		{ID: "gengar", Name: "Gengar", BaseStats: StatBlock{HP: 60, Atk: 65, Def: 60, SpA: 130, SpD: 75, Spe: 110}, Type1: Ghost, Type2: Poison},
		{ID: "tyranitar", Name: "Tyranitar", BaseStats: StatBlock{HP: 100, Atk: 134, Def: 110, SpA: 95, SpD: 100, Spe: 61}, Type1: Rock, Type2: Dark},
		{ID: "rotomwash", Name: "Rotom-Wash", BaseStats: StatBlock{HP: 50, Atk: 65, Def: 107, SpA: 105, SpD: 107, Spe: 86}, Type1: Electric, Type2: Water},
		{ID: "slowbro", Name: "Slowbro", BaseStats: StatBlock{HP: 95, Atk: 75, Def: 110, SpA: 100, SpD: 80, Spe: 30}, Type1: Water, Type2: Psychic},
		{ID: "volcarona", Name: "Volcarona", BaseStats: StatBlock{HP: 85, Atk: 60, Def: 65, SpA: 135, SpD: 105, Spe: 100}, Type1: Bug, Type2: Fire},
		{ID: "landorustherian", Name: "Landorus-Therian", BaseStats: StatBlock{HP: 89, Atk: 145, Def: 90, SpA: 105, SpD: 80, Spe: 91}, Type1: Ground, Type2: Flying},
		{ID: "toxapex", Name: "Toxapex", BaseStats: StatBlock{HP: 50, Atk: 63, Def: 152, SpA: 53, SpD: 142, Spe: 35}, Type1: Poison, Type2: Water},
		{ID: "dragapult", Name: "Dragapult", BaseStats: StatBlock{HP: 88, Atk: 120, Def: 75, SpA: 100, SpD: 75, Spe: 142}, Type1: Dragon, Type2: Ghost},
		{ID: "clefable", Name: "Clefable", BaseStats: StatBlock{HP: 95, Atk: 70, Def: 73, SpA: 95, SpD: 90, Spe: 60}, Type1: Fairy},
		{ID: "corviknight", Name: "Corviknight", BaseStats: StatBlock{HP: 98, Atk: 87, Def: 105, SpA: 53, SpD: 85, Spe: 67}, Type1: Flying, Type2: Steel},
		{ID: "magnezone", Name: "Magnezone", BaseStats: StatBlock{HP: 70, Atk: 70, Def: 115, SpA: 130, SpD: 90, Spe: 60}, Type1: Electric, Type2: Steel},
		{ID: "hippowdon", Name: "Hippowdon", BaseStats: StatBlock{HP: 108, Atk: 112, Def: 118, SpA: 68, SpD: 72, Spe: 47}, Type1: Ground},
	}
}

func builtinMoves() []*MoveRecord {
	fixed2 := &MultiHitSpec{Min: 2, Max: 5}
	return []*MoveRecord{
		{ID: "earthquake", Name: "Earthquake", Type: Ground, Category: Physical, Power: 100, Accuracy: 100, PP: 10, Flags: FlagProtectBlockable, Target: TargetSingleOpponent},
		{ID: "closecombat", Name: "Close Combat", Type: Fighting, Category: Physical, Power: 120, Accuracy: 100, PP: 5, Flags: FlagContact | FlagProtectBlockable, Target: TargetSingleOpponent, SelfBoosts: map[Boost]int{BoostDef: -1, BoostSpD: -1}},
		{ID: "stoneedge", Name: "Stone Edge", Type: Rock, Category: Physical, Power: 100, Accuracy: 80, PP: 5, CritStage: 1, Flags: FlagProtectBlockable, Target: TargetSingleOpponent},
		{ID: "shadowball", Name: "Shadow Ball", Type: Ghost, Category: Special, Power: 80, Accuracy: 100, PP: 15, Flags: FlagProtectBlockable, Target: TargetSingleOpponent,
			Secondary: []SecondaryEffect{{ChancePercent: 20, Boosts: map[Boost]int{BoostSpD: -1}, BoostsTarget: true}}},
		{ID: "scald", Name: "Scald", Type: Water, Category: Special, Power: 80, Accuracy: 100, PP: 15, Flags: FlagProtectBlockable, Target: TargetSingleOpponent,
			Secondary: []SecondaryEffect{{ChancePercent: 30, Status: StatusBurn}}},
		{ID: "icebeam", Name: "Ice Beam", Type: Ice, Category: Special, Power: 90, Accuracy: 100, PP: 10, Flags: FlagProtectBlockable, Target: TargetSingleOpponent,
			Secondary: []SecondaryEffect{{ChancePercent: 10, Status: StatusFreeze}}},
		{ID: "thunderbolt", Name: "Thunderbolt", Type: Electric, Category: Special, Power: 90, Accuracy: 100, PP: 15, Flags: FlagProtectBlockable, Target: TargetSingleOpponent,
			Secondary: []SecondaryEffect{{ChancePercent: 10, Status: StatusParalysis}}},
		{ID: "knockoff", Name: "Knock Off", Type: Dark, Category: Physical, Power: 65, Accuracy: 100, PP: 20, Flags: FlagContact | FlagProtectBlockable, Target: TargetSingleOpponent},
		{ID: "uturn", Name: "U-turn", Type: Bug, Category: Physical, Power: 70, Accuracy: 100, PP: 20, Flags: FlagContact | FlagProtectBlockable, Target: TargetSingleOpponent, Special: SpecialPivot},
		{ID: "voltswitch", Name: "Volt Switch", Type: Electric, Category: Special, Power: 70, Accuracy: 100, PP: 20, Flags: FlagProtectBlockable, Target: TargetSingleOpponent, Special: SpecialPivot},
		{ID: "flamethrower", Name: "Flamethrower", Type: Fire, Category: Special, Power: 90, Accuracy: 100, PP: 15, Flags: FlagProtectBlockable, Target: TargetSingleOpponent,
			Secondary: []SecondaryEffect{{ChancePercent: 10, Status: StatusBurn}}},
		{ID: "willowisp", Name: "Will-O-Wisp", Type: Fire, Category: Status, Accuracy: 85, PP: 15, Flags: FlagProtectBlockable, Target: TargetSingleOpponent,
			Secondary: []SecondaryEffect{{ChancePercent: 100, Status: StatusBurn}}},
		{ID: "toxic", Name: "Toxic", Type: Poison, Category: Status, Accuracy: 90, PP: 10, Flags: FlagProtectBlockable, Target: TargetSingleOpponent,
			Secondary: []SecondaryEffect{{ChancePercent: 100, Status: StatusBadlyPoison}}},
		{ID: "spikes", Name: "Spikes", Type: Ground, Category: Status, Accuracy: AlwaysHits, PP: 20, Target: TargetField},
		{ID: "stealthrock", Name: "Stealth Rock", Type: Rock, Category: Status, Accuracy: AlwaysHits, PP: 20, Target: TargetField},
		{ID: "toxicspikes", Name: "Toxic Spikes", Type: Poison, Category: Status, Accuracy: AlwaysHits, PP: 20, Target: TargetField},
		{ID: "stickyweb", Name: "Sticky Web", Type: Bug, Category: Status, Accuracy: AlwaysHits, PP: 20, Target: TargetField},
		{ID: "reflect", Name: "Reflect", Type: Psychic, Category: Status, Accuracy: AlwaysHits, PP: 20, Target: TargetField},
		{ID: "lightscreen", Name: "Light Screen", Type: Psychic, Category: Status, Accuracy: AlwaysHits, PP: 20, Target: TargetField},
		{ID: "auroraveil", Name: "Aurora Veil", Type: Ice, Category: Status, Accuracy: AlwaysHits, PP: 20, Target: TargetField},
		{ID: "raindance", Name: "Rain Dance", Type: Water, Category: Status, Accuracy: AlwaysHits, PP: 5, Target: TargetField},
		{ID: "sunnyday", Name: "Sunny Day", Type: Fire, Category: Status, Accuracy: AlwaysHits, PP: 5, Target: TargetField},
		{ID: "sandstorm", Name: "Sandstorm", Type: Rock, Category: Status, Accuracy: AlwaysHits, PP: 10, Target: TargetField},
		{ID: "trickroom", Name: "Trick Room", Type: Psychic, Category: Status, Priority: -7, Accuracy: AlwaysHits, PP: 5, Target: TargetField},
		{ID: "protect", Name: "Protect", Type: Normal, Category: Status, Priority: 4, Accuracy: AlwaysHits, PP: 10, Target: TargetSelf},
		{ID: "substitute", Name: "Substitute", Type: Normal, Category: Status, Accuracy: AlwaysHits, PP: 10, Target: TargetSelf},
		{ID: "swordsdance", Name: "Swords Dance", Type: Normal, Category: Status, Accuracy: AlwaysHits, PP: 20, Target: TargetSelf, SelfBoosts: map[Boost]int{BoostAtk: 2}},
		{ID: "recover", Name: "Recover", Type: Normal, Category: Status, Accuracy: AlwaysHits, PP: 10, Target: TargetSelf},
		{ID: "fissure", Name: "Fissure", Type: Ground, Category: Physical, Accuracy: AlwaysHits, PP: 5, Flags: FlagProtectBlockable, Target: TargetSingleOpponent, Special: SpecialOHKO | SpecialFixedDamage},
		{ID: "bulletseed", Name: "Bullet Seed", Type: Grass, Category: Physical, Power: 25, Accuracy: 100, PP: 30, Flags: FlagBullet | FlagProtectBlockable, Target: TargetSingleOpponent, MultiHit: fixed2},
		{ID: "suckerpunch", Name: "Sucker Punch", Type: Dark, Category: Physical, Power: 70, Accuracy: 100, Priority: 1, PP: 5, Flags: FlagContact | FlagProtectBlockable, Target: TargetSingleOpponent},
		{ID: "quickattack", Name: "Quick Attack", Type: Normal, Category: Physical, Power: 40, Accuracy: 100, Priority: 1, PP: 30, Flags: FlagContact | FlagProtectBlockable, Target: TargetSingleOpponent},
		{ID: "struggle", Name: "Struggle", Type: Normal, Category: Physical, Power: 50, Accuracy: AlwaysHits, PP: 1, Flags: FlagContact | FlagProtectBlockable, Target: TargetSingleOpponent, RecoilNum: 1, RecoilDen: 4},
		{ID: "solarbeam", Name: "Solar Beam", Type: Grass, Category: Special, Power: 120, Accuracy: 100, PP: 10, Flags: FlagProtectBlockable, Target: TargetSingleOpponent, Special: SpecialCharging},
		{ID: "gigadrain", Name: "Giga Drain", Type: Grass, Category: Special, Power: 75, Accuracy: 100, PP: 10, Flags: FlagProtectBlockable, Target: TargetSingleOpponent, DrainNum: 1, DrainDen: 2},
		{ID: "hypervoice", Name: "Hyper Voice", Type: Normal, Category: Special, Power: 90, Accuracy: 100, PP: 10, Flags: FlagSound | FlagBypassesSubstitute | FlagProtectBlockable, Target: TargetSingleOpponent},
	}
}

func builtinAbilities() []*AbilityRecord {
	return []*AbilityRecord{
		{ID: "intimidate", Name: "Intimidate", Triggers: TriggerOnEntry},
		{ID: "download", Name: "Download", Triggers: TriggerOnEntry},
		{ID: "trace", Name: "Trace", Triggers: TriggerOnEntry},
		{ID: "swiftswim", Name: "Swift Swim", Triggers: TriggerSpeedMod},
		{ID: "sandrush", Name: "Sand Rush", Triggers: TriggerSpeedMod},
		{ID: "sandveil", Name: "Sand Veil", Triggers: TriggerAccuracyMod},
		{ID: "sturdy", Name: "Sturdy", Triggers: TriggerDamageDefenderMod},
		{ID: "static", Name: "Static", Triggers: TriggerContactRetaliation},
		{ID: "flamebody", Name: "Flame Body", Triggers: TriggerContactRetaliation},
		{ID: "poisonpoint", Name: "Poison Point", Triggers: TriggerContactRetaliation},
		{ID: "roughskin", Name: "Rough Skin", Triggers: TriggerContactRetaliation},
		{ID: "ironbarbs", Name: "Iron Barbs", Triggers: TriggerContactRetaliation},
		{ID: "soundproof", Name: "Soundproof", Triggers: TriggerStatusBlock},
		{ID: "bulletproof", Name: "Bulletproof", Triggers: TriggerStatusBlock},
		{ID: "queenlymajesty", Name: "Queenly Majesty", Triggers: TriggerStatusBlock},
		{ID: "dazzling", Name: "Dazzling", Triggers: TriggerStatusBlock},
		{ID: "waterabsorb", Name: "Water Absorb", Triggers: TriggerTypeImmunityAbsorb},
		{ID: "dryskin", Name: "Dry Skin", Triggers: TriggerTypeImmunityAbsorb | TriggerDamageDefenderMod},
		{ID: "voltabsorb", Name: "Volt Absorb", Triggers: TriggerTypeImmunityAbsorb},
		{ID: "serenegrace", Name: "Serene Grace", Triggers: TriggerDamageAttackerMod},
		{ID: "adaptability", Name: "Adaptability", Triggers: TriggerDamageAttackerMod},
		{ID: "levitate", Name: "Levitate", Triggers: TriggerTypeImmunityAbsorb},
		{ID: "guts", Name: "Guts", Triggers: TriggerDamageAttackerMod},
		{ID: "purepower", Name: "Pure Power", Triggers: TriggerDamageAttackerMod},
		{ID: "pressure", Name: "Pressure", Triggers: 0},
		{ID: "flashfire", Name: "Flash Fire", Triggers: TriggerTypeImmunityAbsorb},
	}
}

func builtinItems() []*ItemRecord {
	return []*ItemRecord{
		{ID: "choicescarf", Name: "Choice Scarf", Effects: ItemSpeedMod | ItemChoiceLock},
		{ID: "choiceband", Name: "Choice Band", Effects: ItemAttackMod | ItemChoiceLock},
		{ID: "choicespecs", Name: "Choice Specs", Effects: ItemAttackMod | ItemChoiceLock},
		{ID: "quickclaw", Name: "Quick Claw", Effects: ItemPriorityMod},
		{ID: "laggingtail", Name: "Lagging Tail", Effects: ItemPriorityMod},
		{ID: "custapberry", Name: "Custap Berry", Effects: ItemPriorityMod | ItemConsumableOnHPThreshold},
		{ID: "leftovers", Name: "Leftovers", Effects: ItemEndOfTurnHeal},
		{ID: "blacksludge", Name: "Black Sludge", Effects: ItemEndOfTurnHeal | ItemEndOfTurnDamage},
		{ID: "lifeorb", Name: "Life Orb", Effects: ItemBasePowerMod},
		{ID: "rockyhelmet", Name: "Rocky Helmet", Effects: 0},
		{ID: "focussash", Name: "Focus Sash", Effects: ItemKOPrevention | ItemConsumableOnHPThreshold},
		{ID: "powerherb", Name: "Power Herb", Effects: ItemConsumableOnHPThreshold},
		{ID: "expertbelt", Name: "Expert Belt", Effects: ItemBasePowerMod},
		{ID: "flameorb", Name: "Flame Orb", Effects: 0},
		{ID: "assaultvest", Name: "Assault Vest", Effects: 0},
	}
}

func builtinNatures() []Nature {
	return []Nature{
		{ID: "hardy", Boosted: "", Lowered: ""},
		{ID: "adamant", Boosted: "atk", Lowered: "spa"},
		{ID: "modest", Boosted: "spa", Lowered: "atk"},
		{ID: "jolly", Boosted: "spe", Lowered: "spa"},
		{ID: "timid", Boosted: "spe", Lowered: "atk"},
		{ID: "bold", Boosted: "def", Lowered: "atk"},
		{ID: "calm", Boosted: "spd", Lowered: "atk"},
		{ID: "impish", Boosted: "def", Lowered: "spa"},
		{ID: "careful", Boosted: "spd", Lowered: "spa"},
		{ID: "naive", Boosted: "spe", Lowered: "spd"},
	}
}

// BuildTypeChart constructs the full 18x18 generation-9 type effectiveness
// chart. Every pair defaults to neutral (1.0); only the deviations are
// listed, matching how the production data source would express it.
func BuildTypeChart() map[[2]Type]float64 {
	all := []Type{Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground, Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Fairy}
	chart := make(map[[2]Type]float64, len(all)*len(all))
	for _, a := range all {
		for _, b := range all {
			chart[[2]Type{a, b}] = 1.0
		}
	}
	set := func(atk Type, mult float64, defs ...Type) {
		for _, d := range defs {
			chart[[2]Type{atk, d}] = mult
		}
	}

	set(Normal, 0.0, Ghost)
	set(Normal, 0.5, Rock, Steel)

	set(Fire, 2.0, Grass, Ice, Bug, Steel)
	set(Fire, 0.5, Fire, Water, Rock, Dragon)

	set(Water, 2.0, Fire, Ground, Rock)
	set(Water, 0.5, Water, Grass, Dragon)

	set(Electric, 2.0, Water, Flying)
	set(Electric, 0.5, Electric, Grass, Dragon)
	set(Electric, 0.0, Ground)

	set(Grass, 2.0, Water, Ground, Rock)
	set(Grass, 0.5, Fire, Grass, Poison, Flying, Bug, Dragon, Steel)

	set(Ice, 2.0, Grass, Ground, Flying, Dragon)
	set(Ice, 0.5, Fire, Water, Ice, Steel)

	set(Fighting, 2.0, Normal, Ice, Rock, Dark, Steel)
	set(Fighting, 0.5, Poison, Flying, Psychic, Bug, Fairy)
	set(Fighting, 0.0, Ghost)

	set(Poison, 2.0, Grass, Fairy)
	set(Poison, 0.5, Poison, Ground, Rock, Ghost)
	set(Poison, 0.0, Steel)

	set(Ground, 2.0, Fire, Electric, Poison, Rock, Steel)
	set(Ground, 0.5, Grass, Bug)
	set(Ground, 0.0, Flying)

	set(Flying, 2.0, Grass, Fighting, Bug)
	set(Flying, 0.5, Electric, Rock, Steel)

	set(Psychic, 2.0, Fighting, Poison)
	set(Psychic, 0.5, Psychic, Steel)
	set(Psychic, 0.0, Dark)

	set(Bug, 2.0, Grass, Psychic, Dark)
	set(Bug, 0.5, Fire, Fighting, Poison, Flying, Ghost, Steel, Fairy)

	set(Rock, 2.0, Fire, Ice, Flying, Bug)
	set(Rock, 0.5, Fighting, Ground, Steel)

	set(Ghost, 2.0, Psychic, Ghost)
	set(Ghost, 0.5, Dark)
	set(Ghost, 0.0, Normal)

	set(Dragon, 2.0, Dragon)
	set(Dragon, 0.5, Steel)
	set(Dragon, 0.0, Fairy)

	set(Dark, 2.0, Psychic, Ghost)
	set(Dark, 0.5, Fighting, Dark, Fairy)

	set(Steel, 2.0, Ice, Rock, Fairy)
	set(Steel, 0.5, Fire, Water, Electric, Steel)

	set(Fairy, 2.0, Fighting, Dragon, Dark)
	set(Fairy, 0.5, Fire, Poison, Steel)

	return chart
}
