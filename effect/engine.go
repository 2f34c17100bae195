// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package effect is the move state machine (§4.5): given one queued action,
// it walks target selection, the pre-action and accuracy checks, and the
// status/damage branches. Every state and environment update is applied
// directly to the state as its step runs; nothing is staged for a later
// atomic commit.
// Ability and item behavior is declared data (dex.AbilityTrigger/ItemEffect
// bitmasks) that this engine consults at fixed hook points, not a
// polymorphic hierarchy of per-ability types (§9 REDESIGN FLAGS).
package effect

import (
	"fmt"

	"github.com/Ukawamochi/Pokemon-Champions/battler"
	"github.com/Ukawamochi/Pokemon-Champions/battlestate"
	"github.com/Ukawamochi/Pokemon-Champions/damage"
	"github.com/Ukawamochi/Pokemon-Champions/dex"
	"github.com/Ukawamochi/Pokemon-Champions/simerr"
)

// Engine runs moves against a battle state. It holds no state of its own
// beyond the Dex it was built with; every call is a pure function of the
// battlestate.State it is given.
type Engine struct {
	Dex dex.Dex
}

// New creates an Engine backed by the given Dex.
func New(d dex.Dex) *Engine {
	return &Engine{Dex: d}
}

// Outcome summarizes what happened so the Turn Driver can react (faint
// checks, auto-switch triggers) without re-deriving it from the log.
type Outcome struct {
	Blocked       bool // a pre-action check absorbed the move locally (§3 CodeRuleBlocked)
	Missed        bool
	Fainted       []battlestate.SideIndex
	DamageDealt   int
	HitCount      int
}

// UseMove runs the full ten-step state machine for one queued move action
// (§4.5): select-effective-move, pre-action checks, action-blocked checks,
// announce/PP/choice-lock, target ability immunities, conditional
// pre-damage immunities, accuracy roll, status-category branch,
// damage-category branch with its per-hit loop, then commit.
func (e *Engine) UseMove(state *battlestate.State, actorSide battlestate.SideIndex, moveID string) (Outcome, error) {
	actor := state.Sides[actorSide].ActiveBattler()
	if actor == nil {
		return Outcome{}, simerr.New(simerr.CodeInvalidState, "effect: no active battler on acting side")
	}
	targetSide := actorSide.Opponent()
	target := state.Sides[targetSide].ActiveBattler()

	// Step 1: select effective move (choice-lock override, Struggle fallback).
	effectiveID := e.selectEffectiveMove(actor, moveID)
	move, ok := e.Dex.Move(effectiveID)
	if !ok {
		return Outcome{}, simerr.New(simerr.CodeNotFound, "effect: unknown move", simerr.WithMeta("move", effectiveID))
	}

	// Step 2: pre-action checks (fainted actor, recharge, sleep/freeze,
	// confusion self-hit, full-paralysis lockout).
	if actor.Fainted {
		return Outcome{Blocked: true}, nil
	}
	if blocked, reason := e.preActionBlocked(state, actor); blocked {
		state.AppendEvent(fmt.Sprintf("|cant|%s|%s", sideName(actorSide), reason), map[string]string{"reason": reason})
		return Outcome{Blocked: true}, nil
	}

	// Step 3: action-blocked checks (Taunt on status moves, Disable on this move).
	if move.Category == dex.Status && actor.Flags.Taunted > 0 {
		state.AppendEvent(fmt.Sprintf("|cant|%s|taunt", sideName(actorSide)), nil)
		return Outcome{Blocked: true}, nil
	}
	if actor.Flags.Disabled != "" && dex.Normalize(actor.Flags.Disabled) == dex.Normalize(effectiveID) {
		state.AppendEvent(fmt.Sprintf("|cant|%s|disable", sideName(actorSide)), nil)
		return Outcome{Blocked: true}, nil
	}

	// Step 4: announce, consume PP, record last-move-used, apply choice-lock.
	e.consumePP(actor, effectiveID)
	state.AppendEvent(fmt.Sprintf("|move|%s|%s", sideName(actorSide), move.Name), map[string]string{"move": move.ID})
	actor.Flags.LastMoveUsed = effectiveID
	if item, ok := e.Dex.Item(actor.Item); ok && item.Effects.Has(dex.ItemChoiceLock) && !actor.ItemConsumed {
		actor.Flags.ChoiceLockedMove = effectiveID
	}

	if target == nil {
		// No legal target (opponent side already fully fainted); the move
		// fizzles without consuming further engine state.
		return Outcome{Blocked: true}, nil
	}

	// Step 4.5: Protect and its family absorb any protectable move outright,
	// before accuracy or ability immunities are even considered.
	if target.Flags.ProtectedThisTurn && move.Flags.Has(dex.FlagProtectBlockable) {
		state.AppendEvent(fmt.Sprintf("|-activate|%s|protect", sideName(targetSide)), nil)
		return Outcome{Blocked: true}, nil
	}

	// Step 5: target ability immunities that block outright (Soundproof, Bulletproof, ...).
	if move.Category != dex.Status || len(move.Secondary) > 0 {
		if e.statusBlockedByAbility(move, target) {
			state.AppendEvent(fmt.Sprintf("|-immune|%s|ability", sideName(targetSide)), nil)
			return Outcome{Blocked: true}, nil
		}
	}

	// Step 6: conditional pre-damage immunities (type immunity abilities);
	// a substitute is handled per hit inside applyDamageMove.
	defenderTypes := e.defenderTypes(targetSide, state, target)
	typeEff := damage.CombinedTypeEffectiveness(e.Dex.TypeEffectiveness, move.Type, defenderTypes)
	if move.Category != dex.Status && e.typeImmuneAbility(move, target, typeEff) {
		state.AppendEvent(fmt.Sprintf("|-immune|%s|ability", sideName(targetSide)), nil)
		return Outcome{Blocked: true}, nil
	}

	// Step 7: accuracy roll.
	if !damage.AccuracyCheck(state.RNG, move.Accuracy, actor.Stages.Accuracy, target.Stages.Evasion) {
		state.AppendEvent(fmt.Sprintf("|-miss|%s", sideName(actorSide)), nil)
		return Outcome{Missed: true}, nil
	}

	// Step 8: status-category branch.
	if move.Category == dex.Status {
		e.applyStatusMove(state, actorSide, targetSide, actor, target, move)
		return Outcome{}, nil
	}

	// Step 9: damage-category branch, with its per-hit loop for multi-hit moves.
	outcome := e.applyDamageMove(state, actorSide, targetSide, actor, target, move, typeEff)

	// Step 10: commit is implicit — every mutation above already happened
	// directly on state, so there is nothing left to flush. Environment
	// updates that must appear atomic to an outside observer (e.g. a
	// fainted side's active index) are finalized by the Turn Driver.
	return outcome, nil
}

func sideName(s battlestate.SideIndex) string {
	if s == battlestate.SideA {
		return "p1"
	}
	return "p2"
}

func (e *Engine) selectEffectiveMove(actor *battler.Battler, requested string) string {
	if actor.Flags.ChoiceLockedMove != "" {
		return actor.Flags.ChoiceLockedMove
	}
	if pp, ok := actor.PP[dex.Normalize(requested)]; ok && pp <= 0 {
		return "struggle"
	}
	if _, ok := actor.PP[dex.Normalize(requested)]; !ok {
		return "struggle"
	}
	return requested
}

func (e *Engine) preActionBlocked(state *battlestate.State, actor *battler.Battler) (bool, string) {
	switch actor.Status {
	case dex.StatusSleep:
		if actor.SleepTurns > 0 {
			actor.SleepTurns--
			return true, "slp"
		}
		actor.Status = dex.StatusNone
	case dex.StatusFreeze:
		return true, "frz"
	}
	if actor.Flags.MustRecharge {
		actor.Flags.MustRecharge = false
		return true, "recharge"
	}
	if actor.Flags.Flinch {
		actor.Flags.Flinch = false
		return true, "flinch"
	}
	if actor.Flags.Confused {
		actor.Flags.ConfusionTurns--
		if actor.Flags.ConfusionTurns <= 0 {
			actor.Flags.Confused = false
		} else if state.RNG.Chance(1, 3) {
			actor.ApplyDamage(e.confusionSelfDamage(state, actor))
			return true, "confusion"
		}
	}
	if actor.Status == dex.StatusParalysis && state.RNG.Chance(1, 4) {
		return true, "par"
	}
	return false, ""
}

// confusionSelfDamage computes the typeless 40-power physical hit a confused
// Battler deals to itself (§4.5 step 3): own Atk against own Def, no STAB,
// no type effectiveness, no crit, still subject to the random damage roll.
func (e *Engine) confusionSelfDamage(state *battlestate.State, actor *battler.Battler) int {
	attack := int(float64(actor.Stats.Atk) * battler.Multiplier(actor.Stages.Atk))
	defense := int(float64(actor.Stats.Def) * battler.Multiplier(actor.Stages.Def))
	if defense < 1 {
		defense = 1
	}
	result := damage.Compute(damage.Input{
		AttackerLevel:     actor.Level,
		Power:             40,
		AttackStat:        attack,
		DefenseStat:       defense,
		TypeEffectiveness: 1,
		RandomRollPct:     damage.RandomRollPercent(state.RNG),
		IsPhysical:        true,
	})
	return result.Damage
}

func (e *Engine) consumePP(actor *battler.Battler, moveID string) {
	key := dex.Normalize(moveID)
	if pp, ok := actor.PP[key]; ok && pp > 0 {
		actor.PP[key] = pp - 1
	}
}

func (e *Engine) statusBlockedByAbility(move *dex.MoveRecord, target *battler.Battler) bool {
	ability, ok := e.Dex.Ability(target.Ability)
	if !ok || !ability.Triggers.Has(dex.TriggerStatusBlock) {
		return false
	}
	switch dex.Normalize(target.Ability) {
	case "soundproof":
		return move.Flags.Has(dex.FlagSound)
	case "bulletproof":
		return move.Flags.Has(dex.FlagBullet)
	case "queenlymajesty", "dazzling":
		return move.Priority > 0
	}
	return false
}

func (e *Engine) typeImmuneAbility(move *dex.MoveRecord, target *battler.Battler, typeEff float64) bool {
	ability, ok := e.Dex.Ability(target.Ability)
	if !ok || !ability.Triggers.Has(dex.TriggerTypeImmunityAbsorb) {
		return false
	}
	switch dex.Normalize(target.Ability) {
	case "waterabsorb", "dryskin":
		return move.Type == dex.Water
	case "voltabsorb":
		return move.Type == dex.Electric
	case "levitate":
		return move.Type == dex.Ground
	}
	return false
}

func (e *Engine) defenderTypes(_ battlestate.SideIndex, _ *battlestate.State, target *battler.Battler) []dex.Type {
	species, ok := e.Dex.Species(target.Species)
	if !ok {
		return nil
	}
	return species.Types()
}

func (e *Engine) applyStatusMove(state *battlestate.State, actorSide, targetSide battlestate.SideIndex, actor, target *battler.Battler, move *dex.MoveRecord) {
	switch dex.Normalize(move.ID) {
	case "protect":
		actor.Flags.ProtectedThisTurn = true
		state.AppendEvent(fmt.Sprintf("|-singleturn|%s|protect", sideName(actorSide)), nil)
	case "substitute":
		cost := actor.MaxHP / 4
		if actor.Flags.Substitute == 0 && actor.CurrentHP > cost {
			actor.ApplyDamage(cost)
			actor.Flags.Substitute = cost
			state.AppendEvent(fmt.Sprintf("|-start|%s|substitute", sideName(actorSide)), nil)
		} else {
			state.AppendEvent(fmt.Sprintf("|-fail|%s|substitute", sideName(actorSide)), nil)
		}
	}
	for boost, delta := range move.SelfBoosts {
		applied := actor.Stages.Add(boost, delta)
		if applied != 0 {
			state.AppendEvent(fmt.Sprintf("|-boost|%s|%s|%d", sideName(actorSide), boost, applied), nil)
		}
	}
	for _, sec := range move.Secondary {
		if sec.Status != dex.StatusNone && state.RNG.Chance(sec.ChancePercent, 100) {
			e.inflictStatus(state, targetSide, target, sec.Status)
		}
	}
	e.applyFieldMove(state, actorSide, targetSide, move)
}

func (e *Engine) applyFieldMove(state *battlestate.State, actorSide, targetSide battlestate.SideIndex, move *dex.MoveRecord) {
	switch dex.Normalize(move.ID) {
	case "spikes":
		state.Field[targetSide].Hazards.AddSpikes()
	case "toxicspikes":
		state.Field[targetSide].Hazards.AddToxicSpikes()
	case "stealthrock":
		state.Field[targetSide].Hazards.StealthRock = true
	case "stickyweb":
		state.Field[targetSide].Hazards.StickyWeb = true
	case "reflect":
		state.Field[actorSide].Screens.ReflectTurns = 5
	case "lightscreen":
		state.Field[actorSide].Screens.LightScreenTurns = 5
	case "auroraveil":
		state.Field[actorSide].Screens.AuroraVeilTurns = 5
	case "trickroom":
		state.TrickRoom = !state.TrickRoom
		state.TrickRoomTurns = 5
	case "raindance":
		state.Weather, state.WeatherTurns = battlestate.WeatherRain, 5
	case "sunnyday":
		state.Weather, state.WeatherTurns = battlestate.WeatherSun, 5
	case "sandstorm":
		state.Weather, state.WeatherTurns = battlestate.WeatherSand, 5
	}
}

func (e *Engine) inflictStatus(state *battlestate.State, targetSide battlestate.SideIndex, target *battler.Battler, status dex.StatusID) {
	if target.Status != dex.StatusNone {
		return
	}
	target.Status = status
	if status == dex.StatusSleep {
		target.SleepTurns = 1 + state.RNG.Intn(3)
	}
	state.AppendEvent(fmt.Sprintf("|-status|%s|%s", sideName(targetSide), status), map[string]string{"status": string(status)})
}

func (e *Engine) applyDamageMove(state *battlestate.State, actorSide, targetSide battlestate.SideIndex, actor, target *battler.Battler, move *dex.MoveRecord, typeEff float64) Outcome {
	hits := damage.MultiHitCount(state.RNG, move.MultiHit)
	totalDealt := 0
	var fainted []battlestate.SideIndex

	attackerAbility, _ := e.Dex.Ability(actor.Ability)
	defenderAbility, _ := e.Dex.Ability(target.Ability)

	for hit := 0; hit < hits; hit++ {
		if target.Fainted {
			break
		}
		crit := damage.RollCrit(state.RNG, move.CritStage)
		attackStat, defenseStat := e.statsForMove(actor, target, move)

		extraChain := e.extraChainModifiers(actor, target, move, attackerAbility, defenderAbility)
		extraChain = append(extraChain, state.Field[targetSide].Screens.Multiplier(move.Category == dex.Physical, crit))

		result := damage.Compute(damage.Input{
			AttackerLevel:     actor.Level,
			Power:             move.Power,
			AttackStat:        attackStat,
			DefenseStat:       defenseStat,
			MoveType:          move.Type,
			AttackerTypes:     e.attackerTypes(actor),
			Crit:              crit,
			RandomRollPct:     damage.RandomRollPercent(state.RNG),
			TypeEffectiveness: typeEff,
			WeatherMult:       weatherMultiplier(state.Weather, move.Type),
			Burned:            actor.Status == dex.StatusBurn,
			IsPhysical:        move.Category == dex.Physical,
			ExtraChain:        extraChain,
		})
		if result.Immune {
			state.AppendEvent(fmt.Sprintf("|-immune|%s", sideName(targetSide)), nil)
			break
		}

		substituteAbsorbs := target.Flags.Substitute > 0 && !move.Flags.Has(dex.FlagBypassesSubstitute)
		var dealt int
		if substituteAbsorbs {
			dealt = absorbIntoSubstitute(target, result.Damage)
			state.AppendEvent(fmt.Sprintf("|-activate|%s|substitute", sideName(targetSide)), nil)
		} else {
			amount := result.Damage
			// Sturdy: a holder at full HP survives a would-be KO with 1 HP.
			if dex.Normalize(target.Ability) == "sturdy" && target.CurrentHP == target.MaxHP && amount >= target.CurrentHP {
				amount = target.CurrentHP - 1
			}
			dealt = target.ApplyDamage(amount)
			state.AppendEvent(fmt.Sprintf("|-damage|%s|%d", sideName(targetSide), dealt), map[string]string{"amount": fmt.Sprint(dealt)})
		}
		totalDealt += dealt
		if result.Crit {
			state.AppendEvent(fmt.Sprintf("|-crit|%s", sideName(targetSide)), nil)
		}
		if result.Effectiveness > 1 {
			state.AppendEvent(fmt.Sprintf("|-supereffective|%s", sideName(targetSide)), nil)
		} else if result.Effectiveness < 1 {
			state.AppendEvent(fmt.Sprintf("|-resisted|%s", sideName(targetSide)), nil)
		}

		if move.RecoilNum > 0 && move.RecoilDen > 0 {
			recoil := (dealt*move.RecoilNum + move.RecoilDen - 1) / move.RecoilDen
			if recoil < 1 {
				recoil = 1
			}
			actor.ApplyDamage(recoil)
		}
		if move.DrainNum > 0 && move.DrainDen > 0 {
			heal := (dealt * move.DrainNum) / move.DrainDen
			actor.Heal(heal)
		}

		if target.Fainted {
			fainted = append(fainted, targetSide)
		}
		if actor.Fainted {
			fainted = append(fainted, actorSide)
		}

		// A substitute takes the hit in the real battler's place, so the
		// secondary status/boost rolls behind it never reach the battler.
		if !substituteAbsorbs {
			for _, sec := range move.Secondary {
				if sec.Status != dex.StatusNone && state.RNG.Chance(sec.ChancePercent, 100) && !target.Fainted {
					e.inflictStatus(state, targetSide, target, sec.Status)
				}
				if len(sec.Boosts) > 0 && state.RNG.Chance(sec.ChancePercent, 100) {
					who, whoSide := actor, actorSide
					if sec.BoostsTarget {
						who, whoSide = target, targetSide
					}
					for boost, delta := range sec.Boosts {
						applied := who.Stages.Add(boost, delta)
						if applied != 0 {
							state.AppendEvent(fmt.Sprintf("|-boost|%s|%s|%d", sideName(whoSide), boost, applied), nil)
						}
					}
				}
			}
		}

		e.contactRetaliation(state, actorSide, targetSide, actor, target, move, defenderAbility)
	}

	return Outcome{DamageDealt: totalDealt, HitCount: hits, Fainted: fainted}
}

// weatherMultiplier gives the §4.4 step-2 weather boost/cut for a move's
// type: Rain/Sun each boost their own type 1.5x and cut the other 0.5x;
// Sand/Hail/Snow only affect stats and residual damage, not the damage
// chain, so they return the identity multiplier.
func weatherMultiplier(weather battlestate.Weather, moveType dex.Type) float64 {
	switch weather {
	case battlestate.WeatherRain:
		switch moveType {
		case dex.Water:
			return 1.5
		case dex.Fire:
			return 0.5
		}
	case battlestate.WeatherSun:
		switch moveType {
		case dex.Fire:
			return 1.5
		case dex.Water:
			return 0.5
		}
	}
	return 1.0
}

// absorbIntoSubstitute routes damage into the substitute's remaining HP
// pool instead of the real Battler, capped at what the substitute has left.
func absorbIntoSubstitute(target *battler.Battler, amount int) int {
	if amount > target.Flags.Substitute {
		amount = target.Flags.Substitute
	}
	target.Flags.Substitute -= amount
	return amount
}

func (e *Engine) attackerTypes(actor *battler.Battler) []dex.Type {
	species, ok := e.Dex.Species(actor.Species)
	if !ok {
		return nil
	}
	return species.Types()
}

func (e *Engine) statsForMove(actor, target *battler.Battler, move *dex.MoveRecord) (attack, defense int) {
	if move.Category == dex.Physical {
		attack = int(float64(actor.Stats.Atk) * battler.Multiplier(actor.Stages.Atk))
		defense = int(float64(target.Stats.Def) * battler.Multiplier(target.Stages.Def))
	} else {
		attack = int(float64(actor.Stats.SpA) * battler.Multiplier(actor.Stages.SpA))
		defense = int(float64(target.Stats.SpD) * battler.Multiplier(target.Stages.SpD))
	}
	if defense < 1 {
		defense = 1
	}
	return attack, defense
}

// extraChainModifiers collects the ability/item/field chain multipliers for
// step 8 of the damage pipeline: declared hooks, consulted by id, not
// inheritance (§9 REDESIGN FLAGS).
func (e *Engine) extraChainModifiers(actor, target *battler.Battler, move *dex.MoveRecord, attackerAbility, defenderAbility *dex.AbilityRecord) []float64 {
	var mods []float64
	if attackerAbility != nil && attackerAbility.Triggers.Has(dex.TriggerDamageAttackerMod) {
		switch dex.Normalize(actor.Ability) {
		case "adaptability":
			// STAB is folded in upstream at 1.5x; Adaptability's 2x instead of
			// 1.5x is expressed here as the delta chained on top (2/1.5).
			for _, t := range e.attackerTypes(actor) {
				if t == move.Type {
					mods = append(mods, 2.0/1.5)
					break
				}
			}
		case "guts":
			if actor.Status != dex.StatusNone {
				mods = append(mods, 1.5)
			}
		}
	}
	if item, ok := e.Dex.Item(actor.Item); ok && !actor.ItemConsumed {
		if item.Effects.Has(dex.ItemAttackMod) {
			mods = append(mods, 1.5)
		}
		if item.Effects.Has(dex.ItemBasePowerMod) {
			mods = append(mods, 1.3)
		}
	}
	if defenderAbility != nil && defenderAbility.Triggers.Has(dex.TriggerDamageDefenderMod) {
		switch dex.Normalize(target.Ability) {
		case "sturdy":
			// Sturdy's OHKO-prevention is an HP floor, not a damage multiplier;
			// applyDamageMove applies it to each hit after Compute, so no chain
			// entry is added here.
		}
	}
	_ = move
	return mods
}

func (e *Engine) contactRetaliation(state *battlestate.State, actorSide, targetSide battlestate.SideIndex, actor, target *battler.Battler, move *dex.MoveRecord, defenderAbility *dex.AbilityRecord) {
	if !move.Flags.Has(dex.FlagContact) || defenderAbility == nil || !defenderAbility.Triggers.Has(dex.TriggerContactRetaliation) || target.Fainted {
		return
	}
	switch dex.Normalize(target.Ability) {
	case "roughskin", "ironbarbs":
		dmg := actor.MaxHP / 8
		if dmg < 1 {
			dmg = 1
		}
		actor.ApplyDamage(dmg)
		state.AppendEvent(fmt.Sprintf("|-damage|%s|%d", sideName(actorSide), dmg), map[string]string{"cause": dex.Normalize(target.Ability)})
	case "static":
		if state.RNG.Chance(30, 100) {
			e.inflictStatus(state, actorSide, actor, dex.StatusParalysis)
		}
	case "flamebody":
		if state.RNG.Chance(30, 100) {
			e.inflictStatus(state, actorSide, actor, dex.StatusBurn)
		}
	case "poisonpoint":
		if state.RNG.Chance(30, 100) {
			e.inflictStatus(state, actorSide, actor, dex.StatusPoison)
		}
	}
}

// ApplySwitchIn resets the switch-reset volatiles of a Battler that just took
// the field and runs its on-entry ability hook. Intimidate is the only
// on-entry ability with an effect here; Download, Trace, and every other
// on-entry ability do nothing, and no ability sets the weather on entry. It
// does not consume PP or PRNG.
func (e *Engine) ApplySwitchIn(state *battlestate.State, s battlestate.SideIndex, b *battler.Battler) {
	b.ResetOnSwitchOut()
	ability, ok := e.Dex.Ability(b.Ability)
	if !ok || !ability.Triggers.Has(dex.TriggerOnEntry) {
		return
	}
	opponent := state.Sides[s.Opponent()].ActiveBattler()
	switch dex.Normalize(b.Ability) {
	case "intimidate":
		if opponent != nil && !opponent.Fainted {
			applied := opponent.Stages.Add(dex.BoostAtk, -1)
			if applied != 0 {
				state.AppendEvent(fmt.Sprintf("|-boost|%s|atk|%d", sideName(s.Opponent()), applied), nil)
			}
		}
	}
}

