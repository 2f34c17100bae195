// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package turn drives one battle turn end to end: flag reset, forced
// replacement, start-of-turn residuals, action collection, ordered
// execution, end-of-turn residuals, and auto-switch on faint — in that
// fixed sequence every turn (§4.6).
package turn

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Ukawamochi/Pokemon-Champions/battler"
	"github.com/Ukawamochi/Pokemon-Champions/battlestate"
	"github.com/Ukawamochi/Pokemon-Champions/damage"
	"github.com/Ukawamochi/Pokemon-Champions/dex"
	"github.com/Ukawamochi/Pokemon-Champions/effect"
	"github.com/Ukawamochi/Pokemon-Champions/order"
	"github.com/Ukawamochi/Pokemon-Champions/simerr"
)

// defaultLog is the package-level fallback used by any Driver whose Log
// field was left nil; library code never calls logrus.StandardLogger()
// directly so a caller embedding this package keeps control of output.
var defaultLog = logrus.New().WithField("component", "turn")

// Decision is one side's chosen action for the turn, gathered from whatever
// is driving that side (a human, a script, the MCTS policy).
type Decision struct {
	Kind        order.ActionKind
	MoveID      string
	SwitchIndex int
}

// ActionSource supplies both sides' decisions for a turn. The Turn Driver
// asks for a fresh decision every turn rather than owning a queue, so a
// forced replacement (faint) can interleave a second call within the same
// turn.
type ActionSource interface {
	Decide(state *battlestate.State, s battlestate.SideIndex, forcedSwitch bool) (Decision, error)
}

// Driver runs turns against a battlestate.State using the given Dex and
// Effect Engine.
type Driver struct {
	Dex    dex.Dex
	Effect *effect.Engine
	Log    *logrus.Entry
}

// New builds a Driver over the given Dex, logging at the package default
// level. Use NewWithLog to supply a caller-owned logger.
func New(d dex.Dex) *Driver {
	return NewWithLog(d, defaultLog)
}

// NewWithLog builds a Driver that logs turn machinery through log (Debug)
// and battle conclusions (Info) rather than the package default.
func NewWithLog(d dex.Dex, log *logrus.Entry) *Driver {
	if log == nil {
		log = defaultLog
	}
	return &Driver{Dex: d, Effect: effect.New(d), Log: log}
}

// RunTurn executes exactly one turn's seven-step sequence (§4.6) and
// reports whether the battle has concluded.
func (drv *Driver) RunTurn(state *battlestate.State, sources [2]ActionSource) (concluded bool, err error) {
	// Step 1: flag reset (per-turn transient flags that do not survive into
	// the next turn even without switching).
	for s := 0; s < 2; s++ {
		if b := state.Sides[s].ActiveBattler(); b != nil {
			b.Flags.Flinch = false
			b.Flags.ProtectedThisTurn = false
		}
	}

	// Step 2: forced replacement for any side whose active battler fainted
	// at the end of the previous turn.
	for s := battlestate.SideIndex(0); s < 2; s++ {
		if err := drv.forceReplacementIfNeeded(state, s, sources[s]); err != nil {
			return false, err
		}
	}
	if w, done, _ := state.Winner(); done {
		drv.announceResult(state, w, done)
		return true, nil
	}

	state.Turn++
	state.AppendEvent(fmt.Sprintf("|turn|%d", state.Turn), map[string]string{"turn": fmt.Sprint(state.Turn)})
	drv.Log.WithField("turn", state.Turn).Debug("turn begins")

	// Step 3: start-of-turn residuals (none in this ruleset beyond what the
	// Effect Engine's accuracy/ability hooks already cover at use-time; the
	// canonical slot exists so future start-of-turn effects — e.g. a
	// two-turn move's charging announcement — have a fixed place to run).

	// Step 4: obtain both sides' actions.
	decisions, err := drv.collectDecisions(state, sources)
	if err != nil {
		return false, err
	}

	// Step 5: resolve order and execute.
	if err := drv.executeInOrder(state, decisions); err != nil {
		return false, err
	}
	if w, done, _ := state.Winner(); done {
		drv.announceResult(state, w, done)
		return true, nil
	}

	// Step 6: end-of-turn residuals, in the fixed order: for each side, status
	// damage, item effects, then that side's field timers; after both sides,
	// weather, terrain, and Trick Room countdowns. Hazards are not applied
	// here; they hit only on switch-in.
	drv.endOfTurnResiduals(state)
	if w, done, _ := state.Winner(); done {
		drv.announceResult(state, w, done)
		return true, nil
	}

	// Step 7: auto-switch on faint is handled at the top of the next
	// RunTurn call (step 2), keeping replacement logic in one place.
	return false, nil
}

func (drv *Driver) forceReplacementIfNeeded(state *battlestate.State, s battlestate.SideIndex, source ActionSource) error {
	team := &state.Sides[s]
	active := team.ActiveBattler()
	if active != nil && !active.Fainted {
		return nil
	}
	if team.AllFainted() {
		team.Active = -1
		return nil
	}
	if source == nil {
		return simerr.New(simerr.CodeInvalidState, "turn: forced replacement required but no action source provided")
	}
	decision, err := source.Decide(state, s, true)
	if err != nil {
		return err
	}
	if decision.Kind != order.ActionSwitch {
		return simerr.New(simerr.CodeInvalidState, "turn: forced replacement decision must be a switch")
	}
	return drv.performSwitch(state, s, decision.SwitchIndex)
}

func (drv *Driver) performSwitch(state *battlestate.State, s battlestate.SideIndex, index int) error {
	team := &state.Sides[s]
	if index < 0 || index >= len(team.Battlers) || team.Battlers[index].Fainted {
		return simerr.New(simerr.CodeInvalidArgument, "turn: invalid switch target", simerr.WithMeta("index", index))
	}
	team.Active = index
	b := team.ActiveBattler()
	state.AppendEvent(fmt.Sprintf("|switch|%s|%s", sideLabel(s), b.Species), map[string]string{"species": b.Species})
	drv.Effect.ApplySwitchIn(state, s, b)
	drv.applyHazardsOnSwitchIn(state, s, b)
	return nil
}

func sideLabel(s battlestate.SideIndex) string {
	if s == battlestate.SideA {
		return "p1"
	}
	return "p2"
}

func (drv *Driver) collectDecisions(state *battlestate.State, sources [2]ActionSource) ([2]Decision, error) {
	var decisions [2]Decision
	for s := battlestate.SideIndex(0); s < 2; s++ {
		if state.Sides[s].ActiveBattler() == nil {
			continue
		}
		d, err := sources[s].Decide(state, s, false)
		if err != nil {
			return decisions, err
		}
		decisions[s] = d
	}
	return decisions, nil
}

func (drv *Driver) executeInOrder(state *battlestate.State, decisions [2]Decision) error {
	var entries [2]order.Entry
	var actions [2]order.Action
	for s := battlestate.SideIndex(0); s < 2; s++ {
		actions[s] = drv.toAction(state, s, decisions[s])
		entries[s] = drv.toEntry(state, s, actions[s])
	}

	resolved := order.Resolve(entries[0], entries[1], state.TrickRoom, state.RNG)
	first := battlestate.SideIndex(resolved.FirstIndex)
	second := first.Opponent()

	if err := drv.executeOne(state, first, actions[first]); err != nil {
		return err
	}
	if state.Sides[second].ActiveBattler() == nil || state.Sides[second].ActiveBattler().Fainted {
		return nil
	}
	return drv.executeOne(state, second, actions[second])
}

func (drv *Driver) toAction(state *battlestate.State, s battlestate.SideIndex, d Decision) order.Action {
	a := order.Action{Side: s, Kind: d.Kind, MoveID: d.MoveID, SwitchIndex: d.SwitchIndex}
	if d.Kind == order.ActionMove {
		if m, ok := drv.Dex.Move(d.MoveID); ok {
			a.MovePriority = int8(m.Priority)
		}
	}
	return a
}

func (drv *Driver) toEntry(state *battlestate.State, s battlestate.SideIndex, a order.Action) order.Entry {
	b := state.Sides[s].ActiveBattler()
	priority := order.EffectivePriority(a, 0)
	var speed float64
	if b != nil {
		var effects dex.ItemEffect
		if item, ok := drv.Dex.Item(b.Item); ok {
			effects = item.Effects
		}
		speed = order.EffectiveSpeed(b, effects, state.Weather, effects.Has(dex.ItemSpeedMod) && !b.ItemConsumed, false)
	}
	return order.Entry{Action: a, Priority: priority, Speed: speed}
}

func (drv *Driver) executeOne(state *battlestate.State, s battlestate.SideIndex, a order.Action) error {
	actor := state.Sides[s].ActiveBattler()
	if actor == nil || actor.Fainted {
		return nil
	}
	switch a.Kind {
	case order.ActionSwitch:
		return drv.performSwitch(state, s, a.SwitchIndex)
	case order.ActionMove:
		_, err := drv.Effect.UseMove(state, s, a.MoveID)
		return err
	default:
		return simerr.New(simerr.CodeInvalidArgument, "turn: unknown action kind")
	}
}

func (drv *Driver) endOfTurnResiduals(state *battlestate.State) {
	for s := battlestate.SideIndex(0); s < 2; s++ {
		team := &state.Sides[s]
		b := team.ActiveBattler()
		if b == nil || b.Fainted {
			state.Field[s].TickEndOfTurn()
			continue
		}
		drv.applyStatusResidual(state, s, b)
		drv.applyItemResidual(state, s, b)
		state.Field[s].TickEndOfTurn()
	}
	if state.WeatherTurns > 0 {
		state.WeatherTurns--
		if state.WeatherTurns == 0 {
			state.Weather = battlestate.WeatherNone
		}
	}
	if state.TerrainTurns > 0 {
		state.TerrainTurns--
		if state.TerrainTurns == 0 {
			state.Terrain = battlestate.TerrainNone
		}
	}
	if state.TrickRoomTurns > 0 {
		state.TrickRoomTurns--
		if state.TrickRoomTurns == 0 {
			state.TrickRoom = false
		}
	}
}

// spikesDenominator gives the 1/8, 1/6, 1/4 max-HP fraction Spikes deals at
// one, two, and three layers (§4.5 switching protocol).
var spikesDenominator = [...]int{0, 8, 6, 4}

// applyHazardsOnSwitchIn runs Stealth Rock, Spikes, Toxic Spikes, and Sticky
// Web against a Battler that just took the field (§4.5 switching protocol).
// It runs once, from performSwitch, never from the end-of-turn pass, so a
// Battler that stays in all turn is never charged hazard damage again.
func (drv *Driver) applyHazardsOnSwitchIn(state *battlestate.State, s battlestate.SideIndex, b *battler.Battler) {
	if b == nil || b.Fainted {
		return
	}
	hazards := &state.Field[s].Hazards
	species, _ := drv.Dex.Species(b.Species)

	if hazards.StealthRock {
		eff := 1.0
		if species != nil {
			eff = damage.CombinedTypeEffectiveness(drv.Dex.TypeEffectiveness, dex.Rock, species.Types())
		}
		dmg := int(float64(b.MaxHP) * eff / 8)
		if dmg < 1 {
			dmg = 1
		}
		dealt := b.ApplyDamage(dmg)
		state.AppendEvent(fmt.Sprintf("|-damage|%s|%d", sideLabel(s), dealt), map[string]string{"cause": "stealthrock"})
		if b.Fainted {
			return
		}
	}

	grounded := drv.isGrounded(b, species)

	if grounded && hazards.SpikesLayers > 0 {
		dmg := b.MaxHP / spikesDenominator[hazards.SpikesLayers]
		if dmg < 1 {
			dmg = 1
		}
		dealt := b.ApplyDamage(dmg)
		state.AppendEvent(fmt.Sprintf("|-damage|%s|%d", sideLabel(s), dealt), map[string]string{"cause": "spikes"})
		if b.Fainted {
			return
		}
	}

	if grounded && hazards.ToxicSpikesLayers > 0 {
		switch {
		case species != nil && species.HasType(dex.Poison):
			hazards.ToxicSpikesLayers = 0
			state.AppendEvent(fmt.Sprintf("|-sideend|%s|toxicspikes", sideLabel(s)), nil)
		case b.Status == dex.StatusNone:
			status := dex.StatusPoison
			if hazards.ToxicSpikesLayers >= 2 {
				status = dex.StatusBadlyPoison
			}
			b.Status = status
			state.AppendEvent(fmt.Sprintf("|-status|%s|%s", sideLabel(s), status), map[string]string{"cause": "toxicspikes"})
		}
	}

	if grounded && hazards.StickyWeb {
		applied := b.Stages.Add(dex.BoostSpe, -1)
		if applied != 0 {
			state.AppendEvent(fmt.Sprintf("|-boost|%s|spe|%d", sideLabel(s), applied), map[string]string{"cause": "stickyweb"})
		}
	}
}

// isGrounded reports whether a Battler is affected by Spikes/Toxic
// Spikes/Sticky Web: Flying-types and Levitate holders are not (Stealth
// Rock is exempt from this check — it hits everything).
func (drv *Driver) isGrounded(b *battler.Battler, species *dex.SpeciesRecord) bool {
	if species != nil && species.HasType(dex.Flying) {
		return false
	}
	return dex.Normalize(b.Ability) != "levitate"
}

func (drv *Driver) applyStatusResidual(state *battlestate.State, s battlestate.SideIndex, b *battler.Battler) {
	switch b.Status {
	case dex.StatusPoison:
		dmg := b.MaxHP / 8
		if dmg < 1 {
			dmg = 1
		}
		dealt := b.ApplyDamage(dmg)
		state.AppendEvent(fmt.Sprintf("|-damage|%s|%d", sideLabel(s), dealt), map[string]string{"cause": "psn"})
	case dex.StatusBadlyPoison:
		b.ToxicCounter++
		if b.ToxicCounter > 15 {
			b.ToxicCounter = 15
		}
		dmg := b.MaxHP * b.ToxicCounter / 16
		if dmg < 1 {
			dmg = 1
		}
		dealt := b.ApplyDamage(dmg)
		state.AppendEvent(fmt.Sprintf("|-damage|%s|%d", sideLabel(s), dealt), map[string]string{"cause": "tox"})
	case dex.StatusBurn:
		dmg := b.MaxHP / 16
		if dmg < 1 {
			dmg = 1
		}
		dealt := b.ApplyDamage(dmg)
		state.AppendEvent(fmt.Sprintf("|-damage|%s|%d", sideLabel(s), dealt), map[string]string{"cause": "brn"})
	}
}

func (drv *Driver) applyItemResidual(state *battlestate.State, s battlestate.SideIndex, b *battler.Battler) {
	if b.ItemConsumed {
		return
	}
	item, ok := drv.Dex.Item(b.Item)
	if !ok {
		return
	}
	if item.Effects.Has(dex.ItemEndOfTurnHeal) {
		healed := b.Heal(b.MaxHP / 16)
		if healed > 0 {
			state.AppendEvent(fmt.Sprintf("|-heal|%s|%d", sideLabel(s), healed), map[string]string{"cause": dex.Normalize(b.Item)})
		}
	}
	if item.Effects.Has(dex.ItemEndOfTurnDamage) {
		dmg := b.MaxHP / 8
		dealt := b.ApplyDamage(dmg)
		state.AppendEvent(fmt.Sprintf("|-damage|%s|%d", sideLabel(s), dealt), map[string]string{"cause": dex.Normalize(b.Item)})
	}
}

func (drv *Driver) announceResult(state *battlestate.State, winner battlestate.SideIndex, concluded bool) {
	if !concluded {
		return
	}
	if winner < 0 {
		state.AppendEvent("|tie|", nil)
		drv.Log.WithField("turn", state.Turn).Info("battle concluded in a tie")
		return
	}
	state.AppendEvent(fmt.Sprintf("|win|%s", sideLabel(winner)), map[string]string{"side": sideLabel(winner)})
	drv.Log.WithFields(logrus.Fields{"turn": state.Turn, "winner": sideLabel(winner)}).Info("battle concluded")
}
