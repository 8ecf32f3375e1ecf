// Package strategy provides decision makers for the Scout engine: a
// polymorphic Strategy contract and deterministic/heuristic/random
// implementations of it.
//
// Package strategy はScoutエンジンに対する意思決定を提供します。
package strategy

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/chewxy/math32"
	"github.com/sw965/omw/mathx/randx"
	"github.com/sw965/scout"
)

// ErrHalt is returned by a Strategy that declines to act. It is not an
// engine failure; the run harness reports it as an interrupted outcome.
var ErrHalt = errors.New("strategyエラー: 行動が中断されました")

// Strategy chooses an action from a restricted view. Implementations
// own their private state (rank table, memo caches); one instance must
// serve exactly one game at a time.
type Strategy interface {
	Name() string
	Decide(view scout.GameView, rng *rand.Rand) (scout.Action, error)
}

// Builder creates a fresh Strategy instance. The evaluation harness
// uses it to give every simulated round its own instances, so that
// per-instance caches are never shared across games.
type Builder func() Strategy

// Random plays uniformly at random over all legal actions.
type Random struct {
	setMap scout.SetMap
}

func NewRandom(setMap scout.SetMap) *Random {
	return &Random{setMap: setMap}
}

func (s *Random) Name() string {
	return "random"
}

func (s *Random) Decide(view scout.GameView, rng *rand.Rand) (scout.Action, error) {
	actions := scout.LegalActions(view, s.setMap)
	if len(actions) == 0 {
		return nil, ErrHalt
	}
	return randx.Choice(actions, rng)
}

// ShowBiased plays a weighted random action, preferring shows. A show
// (or the show half of a scout-and-show) of k cards is weighted
// bias^k, so larger shows are exponentially preferred; scouts keep
// weight 1. bias <= 1 degenerates towards uniform play.
type ShowBiased struct {
	setMap scout.SetMap
	bias   float32
}

func NewShowBiased(setMap scout.SetMap, bias float32) *ShowBiased {
	return &ShowBiased{setMap: setMap, bias: bias}
}

func (s *ShowBiased) Name() string {
	return "show-biased"
}

func (s *ShowBiased) Decide(view scout.GameView, rng *rand.Rand) (scout.Action, error) {
	actions := scout.LegalActions(view, s.setMap)
	if len(actions) == 0 {
		return nil, ErrHalt
	}

	ws := make([]float32, len(actions))
	for i, action := range actions {
		switch a := action.(type) {
		case scout.Scout:
			ws[i] = 1.0
		case scout.Show:
			ws[i] = math32.Pow(s.bias, float32(a.Stop-a.Start+1))
		case scout.ScoutShow:
			ws[i] = math32.Pow(s.bias, float32(a.Show.Stop-a.Show.Start+1))
		}
	}

	idx, err := randx.IndexByWeights(ws, rng)
	if err != nil {
		return nil, err
	}
	return actions[idx], nil
}

// Pruned plays a guaranteed next-step win if one exists, discards
// actions that provably lose, and otherwise plays uniformly at random
// over the survivors. If every action loses, it falls back to uniform
// play over all of them.
type Pruned struct {
	setMap scout.SetMap
}

func NewPruned(setMap scout.SetMap) *Pruned {
	return &Pruned{setMap: setMap}
}

func (s *Pruned) Name() string {
	return "pruned"
}

func (s *Pruned) Decide(view scout.GameView, rng *rand.Rand) (scout.Action, error) {
	actions := scout.LegalActions(view, s.setMap)
	if len(actions) == 0 {
		return nil, ErrHalt
	}

	survivors := make([]scout.Action, 0, len(actions))
	for _, action := range actions {
		result, _, err := view.TakeAction(action)
		if err != nil {
			return nil, err
		}
		switch result {
		case scout.Win:
			return action, nil
		case scout.Loss:
			continue
		case scout.Continue:
			survivors = append(survivors, action)
		}
	}

	if len(survivors) == 0 {
		survivors = actions
	}
	return randx.Choice(survivors, rng)
}

// Rush minimises the number of shows still needed to empty the hand,
// tie-broken by a random shuffle. An immediate win counts as 0 turns,
// an immediate loss as Unreachable. This plays aggressively and is
// especially weak to large mid-game sets.
type Rush struct {
	setMap scout.SetMap
	solver *Solver
}

func NewRush(setMap scout.SetMap) *Rush {
	return &Rush{
		setMap: setMap,
		solver: NewSolver(setMap),
	}
}

func (s *Rush) Name() string {
	return "rush"
}

func (s *Rush) Decide(view scout.GameView, rng *rand.Rand) (scout.Action, error) {
	actions := scout.LegalActions(view, s.setMap)
	if len(actions) == 0 {
		return nil, ErrHalt
	}

	rng.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
	})

	var best scout.Action
	bestTurns := math.MaxInt
	for _, action := range actions {
		result, next, err := view.TakeAction(action)
		if err != nil {
			return nil, err
		}

		var turns int
		switch result {
		case scout.Win:
			turns = 0
		case scout.Loss:
			turns = Unreachable
		case scout.Continue:
			turns = s.solver.TurnsToEmpty(next.Hand) + 1
		}

		if turns < bestTurns {
			bestTurns = turns
			best = action
		}
	}
	return best, nil
}

// ProposeFunc supplies a candidate action for a view. Parsing textual
// commands into actions belongs to the collaborator implementing it;
// it signals halt by returning ErrHalt.
type ProposeFunc func(view scout.GameView) (scout.Action, error)

// Validated wraps a collaborator-supplied proposer (an interactive
// prompt, typically) and only ever returns actions the enumerator
// agrees are legal, asking again for anything invalid or malformed.
type Validated struct {
	name    string
	setMap  scout.SetMap
	propose ProposeFunc
}

func NewValidated(name string, setMap scout.SetMap, propose ProposeFunc) *Validated {
	return &Validated{
		name:    name,
		setMap:  setMap,
		propose: propose,
	}
}

func (s *Validated) Name() string {
	return s.name
}

func (s *Validated) Decide(view scout.GameView, rng *rand.Rand) (scout.Action, error) {
	legal := scout.LegalActions(view, s.setMap)
	if len(legal) == 0 {
		return nil, ErrHalt
	}

	for {
		action, err := s.propose(view)
		if err != nil {
			return nil, err
		}
		if slices.Contains(legal, action) {
			return action, nil
		}
		// 合法手でない提案は受け付けず、再度求める
	}
}
