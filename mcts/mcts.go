// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mcts implements the simultaneous-move Monte Carlo Tree Search
// policy (§4.7): UCB1 selection over the searching side's actions (the tree
// never branches on the opponent's action), rollout to a bounded
// horizon with a heuristic cutoff value, and seed-mixed determinism so the
// same root seed and iteration budget always produce the same chosen
// action.
package mcts

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/Ukawamochi/Pokemon-Champions/battlestate"
	"github.com/Ukawamochi/Pokemon-Champions/order"
	"github.com/Ukawamochi/Pokemon-Champions/rng"
	"github.com/Ukawamochi/Pokemon-Champions/turn"
)

var defaultLog = logrus.New().WithField("component", "mcts")

// Mode selects where the opponent's action comes from. In ModeJoint it is
// drawn uniformly from the opponent's legal actions at every step; in
// ModeMyActionOnly it comes from the OpponentPolicy. In both modes the tree
// branches only on the root side's own actions (§4.7).
type Mode string

// Search modes.
const (
	ModeJoint        Mode = "joint"
	ModeMyActionOnly Mode = "my_action_only"
)

// ActionGenerator enumerates the legal Decisions available to a side in the
// given state, so the search never has to know move/switch legality rules
// itself.
type ActionGenerator interface {
	LegalActions(state *battlestate.State, s battlestate.SideIndex) []turn.Decision
}

// OpponentPolicy supplies the opponent's action in ModeMyActionOnly, where
// the tree only branches on the root side's choices.
type OpponentPolicy interface {
	Decide(state *battlestate.State, s battlestate.SideIndex) turn.Decision
}

// Heuristic scores a non-terminal state from the perspective of the given
// side, used as the rollout cutoff value when the horizon is reached before
// the battle concludes (§4.7).
type Heuristic func(state *battlestate.State, perspective battlestate.SideIndex) float64

// DefaultHeuristic scores a state by each side's total remaining HP
// fraction, a simple and fast stand-in for a trained evaluator.
func DefaultHeuristic(state *battlestate.State, perspective battlestate.SideIndex) float64 {
	mine := teamHPFraction(state, perspective)
	theirs := teamHPFraction(state, perspective.Opponent())
	return mine - theirs
}

func teamHPFraction(state *battlestate.State, s battlestate.SideIndex) float64 {
	team := state.Sides[s]
	if len(team.Battlers) == 0 {
		return 0
	}
	total := 0.0
	for _, b := range team.Battlers {
		total += b.HPFraction()
	}
	return total / float64(len(team.Battlers))
}

// Config parameterizes a Search.
type Config struct {
	Mode         Mode
	Iterations   int
	Horizon      int
	ExplorationC float64
	Seed         uint64
	Perspective  battlestate.SideIndex
	Heuristic    Heuristic
}

// DefaultConfig returns reasonable defaults (UCB1's canonical sqrt(2)
// exploration constant, a modest iteration/horizon budget).
func DefaultConfig(perspective battlestate.SideIndex, seed uint64) Config {
	return Config{
		Mode:         ModeJoint,
		Iterations:   200,
		Horizon:      6,
		ExplorationC: math.Sqrt2,
		Seed:         seed,
		Perspective:  perspective,
		Heuristic:    DefaultHeuristic,
	}
}

// node is one point in the search tree: a state reached by a sequence of
// joint actions, plus per-child-action visit/value statistics.
type node struct {
	visits   int
	value    float64
	children map[string]*node
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// jointKey builds a stable map key for one (or a pair of) Decisions so the
// tree can index children without needing Decision to be comparable.
func jointKey(mine, theirs turn.Decision) string {
	return string(mine.Kind) + "|" + mine.MoveID + "|" + itoa(mine.SwitchIndex) + "~" + string(theirs.Kind) + "|" + theirs.MoveID + "|" + itoa(theirs.SwitchIndex)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Search runs the MCTS policy from root and returns the decision at the
// root with the highest visit count (the standard robust-child choice).
type Search struct {
	cfg Config
	gen ActionGenerator
	opp OpponentPolicy
	drv *turn.Driver
	Log *logrus.Entry
}

// NewSearch builds a Search using the given Driver (for state advancement),
// ActionGenerator (for legal moves), and, in ModeMyActionOnly, an
// OpponentPolicy. Logs through the package default; use NewSearchWithLog to
// supply a caller-owned logger.
func NewSearch(cfg Config, drv *turn.Driver, gen ActionGenerator, opp OpponentPolicy) *Search {
	return NewSearchWithLog(cfg, drv, gen, opp, defaultLog)
}

// NewSearchWithLog is NewSearch with an explicit logger.
func NewSearchWithLog(cfg Config, drv *turn.Driver, gen ActionGenerator, opp OpponentPolicy, log *logrus.Entry) *Search {
	if log == nil {
		log = defaultLog
	}
	return &Search{cfg: cfg, drv: drv, gen: gen, opp: opp, Log: log}
}

// Run executes cfg.Iterations simulations from root and returns the best
// root-level decision for cfg.Perspective.
func (s *Search) Run(root *battlestate.State) turn.Decision {
	tree := newNode()
	rootActions := s.gen.LegalActions(root, s.cfg.Perspective)
	if len(rootActions) == 0 {
		return turn.Decision{}
	}
	if len(rootActions) == 1 {
		return rootActions[0]
	}

	for iter := 0; iter < s.cfg.Iterations; iter++ {
		iterSeed := rng.Mix(s.cfg.Seed, iter, 0)
		source := rng.New(iterSeed)
		s.simulate(tree, root.Clone(), source, 0, iter)
	}

	chosen := s.bestAction(tree, rootActions, root, source0(s.cfg.Seed))
	s.Log.WithFields(logrus.Fields{
		"iterations":  s.cfg.Iterations,
		"perspective": s.cfg.Perspective,
		"move":        chosen.MoveID,
		"kind":        chosen.Kind,
	}).Debug("search chose root action")
	return chosen
}

func source0(seed uint64) rng.Source {
	return rng.New(rng.Mix(seed, 0, 0))
}

// simulate runs one Select -> Expand -> Rollout -> Backpropagate pass and
// returns the value observed, from cfg.Perspective's viewpoint.
func (s *Search) simulate(n *node, state *battlestate.State, source rng.Source, depth, iteration int) float64 {
	if winner, concluded, tie := state.Winner(); concluded {
		return terminalValue(winner, tie, s.cfg.Perspective)
	}
	if depth >= s.cfg.Horizon {
		return s.cfg.Heuristic(state, s.cfg.Perspective)
	}

	mine := s.gen.LegalActions(state, s.cfg.Perspective)
	if len(mine) == 0 {
		return s.cfg.Heuristic(state, s.cfg.Perspective)
	}

	var theirs []turn.Decision
	if s.cfg.Mode == ModeJoint {
		theirs = s.gen.LegalActions(state, s.cfg.Perspective.Opponent())
	}

	myChoice := s.selectOrExpand(n, mine, state, source, depth, iteration)
	var theirChoice turn.Decision
	if s.cfg.Mode == ModeJoint && len(theirs) > 0 {
		theirChoice = s.selectOpponent(theirs, state, source, depth, iteration)
	} else if s.opp != nil {
		theirChoice = s.opp.Decide(state, s.cfg.Perspective.Opponent())
	}

	next := state.Clone()
	next.RNG = rng.New(rng.Mix(s.cfg.Seed, iteration, depth+1))
	sources := s.decisionSources(myChoice, theirChoice)
	_, err := s.drv.RunTurn(next, sources)
	if err != nil {
		return s.cfg.Heuristic(state, s.cfg.Perspective)
	}

	// The tree is keyed on the searching side's action alone (see
	// selectOpponent's comment): the opponent branch is resampled uniformly
	// every visit rather than given its own UCB1 statistics.
	key := jointKey(myChoice, turn.Decision{})
	child, ok := n.children[key]
	if !ok {
		child = newNode()
		n.children[key] = child
	}

	value := s.simulate(child, next, source, depth+1, iteration)
	child.visits++
	child.value += value
	n.visits++
	return value
}

func terminalValue(winner battlestate.SideIndex, tie bool, perspective battlestate.SideIndex) float64 {
	if tie {
		return 0
	}
	if winner == perspective {
		return 1
	}
	return -1
}

// selectOrExpand applies UCB1 over the known children of n restricted to
// the legal action set, falling back to a uniform PRNG pick for any action
// not yet expanded (Expand step).
func (s *Search) selectOrExpand(n *node, legal []turn.Decision, state *battlestate.State, source rng.Source, depth, iteration int) turn.Decision {
	var unexpanded []turn.Decision
	type scored struct {
		d turn.Decision
		score float64
	}
	var best *scored

	for _, d := range legal {
		key := jointKey(d, turn.Decision{})
		child, ok := n.children[key]
		if !ok || child.visits == 0 {
			unexpanded = append(unexpanded, d)
			continue
		}
		score := ucb1(child.value, child.visits, n.visits, s.cfg.ExplorationC)
		if best == nil || score > best.score {
			best = &scored{d: d, score: score}
		}
	}
	if len(unexpanded) > 0 {
		idx := source.Intn(len(unexpanded))
		return unexpanded[idx]
	}
	if best != nil {
		return best.d
	}
	return legal[source.Intn(len(legal))]
}

// selectOpponent picks the opponent's joint-mode branch uniformly at
// random; the opponent side of the tree is not separately tracked with its
// own UCB1 statistics, keeping node state keyed purely on the searching
// side's action for a simpler, cheaper tree.
func (s *Search) selectOpponent(legal []turn.Decision, state *battlestate.State, source rng.Source, depth, iteration int) turn.Decision {
	return legal[source.Intn(len(legal))]
}

func ucb1(totalValue float64, visits, parentVisits int, c float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	exploitation := totalValue / float64(visits)
	exploration := c * math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
	return exploitation + exploration
}

func (s *Search) bestAction(tree *node, rootActions []turn.Decision, root *battlestate.State, source rng.Source) turn.Decision {
	var best turn.Decision
	bestVisits := -1
	for _, d := range rootActions {
		key := jointKey(d, turn.Decision{})
		child, ok := tree.children[key]
		visits := 0
		if ok {
			visits = child.visits
		}
		if visits > bestVisits {
			bestVisits = visits
			best = d
		}
	}
	return best
}

func (s *Search) decisionSources(mine, theirs turn.Decision) [2]turn.ActionSource {
	var out [2]turn.ActionSource
	out[s.cfg.Perspective] = fixedDecision{mine}
	out[s.cfg.Perspective.Opponent()] = fixedDecision{theirs}
	return out
}

type fixedDecision struct {
	d turn.Decision
}

func (f fixedDecision) Decide(state *battlestate.State, s battlestate.SideIndex, forcedSwitch bool) (turn.Decision, error) {
	if forcedSwitch {
		team := &state.Sides[s]
		for i, b := range team.Battlers {
			if !b.Fainted {
				return turn.Decision{Kind: order.ActionSwitch, SwitchIndex: i}, nil
			}
		}
	}
	return f.d, nil
}
