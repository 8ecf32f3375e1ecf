// Package playout runs Scout rounds to completion: a single run
// contract for interactive play and a batch evaluation harness that
// tallies wins across many simulated rounds. Rounds are independent,
// so the batch harness distributes them over workers, each with its
// own rng and its own strategy instances.
//
// Package playout はScoutのラウンドを最後まで実行します。
package playout

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sw965/omw/parallel"
	"github.com/sw965/omw/slicesx"
	"github.com/sw965/scout"
	"github.com/sw965/scout/strategy"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoRngs        = errors.New("rngエラー: 少なくとも1つのrngが必要です")
	ErrNoRounds      = errors.New("ラウンド数エラー: 1以上である必要があります")
	ErrDuplicateName = errors.New("戦略名エラー: 戦略名が重複しています")
	ErrSeatRange     = errors.New("座席エラー: 座席番号が範囲外です")
)

// HaltError is the terminal "interrupted" outcome of a run: a strategy
// declined to act. It carries the last valid state for diagnostics.
type HaltError struct {
	State scout.GameState
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("playoutエラー: プレイヤー%dの戦略により中断されました", e.State.Turn)
}

func (e *HaltError) Unwrap() error {
	return strategy.ErrHalt
}

// Run plays one round with one strategy per seat and returns the final
// scores aligned to the strategy order. A strategy halt surfaces as a
// *HaltError wrapping the last state before the halt.
func Run(strategies []strategy.Strategy, shuffle bool, rng *rand.Rand) ([]int, error) {
	state, err := scout.NewGameState(len(strategies), shuffle, rng)
	if err != nil {
		return nil, err
	}

	for !state.Over {
		view := scout.ViewOf(state)
		action, err := strategies[state.Turn].Decide(view, rng)
		if errors.Is(err, strategy.ErrHalt) {
			return nil, &HaltError{State: state}
		}
		if err != nil {
			return nil, err
		}

		state, err = scout.TakeAction(state, action)
		if err != nil {
			return nil, err
		}
	}
	return state.FinalScores()
}

// Scores plays nRounds independent shuffled rounds and returns each
// round's final scores, aligned to the builder order. Rounds are
// distributed over len(rngs) workers; every round gets fresh strategy
// instances so per-instance caches never leak across games.
func Scores(builders []strategy.Builder, nRounds int, rngs []*rand.Rand) ([][]int, error) {
	if nRounds <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoRounds, nRounds)
	}
	if len(rngs) == 0 {
		return nil, ErrNoRngs
	}

	scoresPerRound := make([][]int, nRounds)
	err := parallel.For(nRounds, len(rngs), func(workerId, idx int) error {
		rng := rngs[workerId]
		strategies := make([]strategy.Strategy, len(builders))
		for i, build := range builders {
			strategies[i] = build()
		}

		scores, err := Run(strategies, true, rng)
		if err != nil {
			return err
		}
		scoresPerRound[idx] = scores
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scoresPerRound, nil
}

// Evaluate tallies, per seat, how many of nRounds rounds that seat's
// final score equalled the round's maximum. Ties all count as wins.
func Evaluate(builders []strategy.Builder, nRounds int, rngs []*rand.Rand) ([]int, error) {
	scoresPerRound, err := Scores(builders, nRounds, rngs)
	if err != nil {
		return nil, err
	}

	wins := make([]int, len(builders))
	for _, scores := range scoresPerRound {
		max := slices.Max(scores)
		for seat, score := range scores {
			if score == max {
				wins[seat]++
			}
		}
	}
	return wins, nil
}

// CrossEvaluate removes seat bias by running Evaluate once for every
// seating permutation of the builders and summing win counts per
// strategy name. Builder names must be distinct.
func CrossEvaluate(builders []strategy.Builder, roundsPerPerm int, rngs []*rand.Rand) (map[string]int, error) {
	names := make([]string, len(builders))
	for i, build := range builders {
		names[i] = build().Name()
	}
	if !slicesx.IsUnique(names) {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateName, names)
	}

	type seated struct {
		name  string
		build strategy.Builder
	}
	seats := make([]seated, len(builders))
	for i := range builders {
		seats[i] = seated{name: names[i], build: builders[i]}
	}

	winsByName := map[string]int{}
	for _, name := range names {
		winsByName[name] = 0
	}

	perms := slices.Collect(slicesx.Permutations(seats, len(seats)))
	for _, perm := range perms {
		permBuilders := make([]strategy.Builder, len(perm))
		for i, s := range perm {
			permBuilders[i] = s.build
		}

		wins, err := Evaluate(permBuilders, roundsPerPerm, rngs)
		if err != nil {
			return nil, err
		}
		for i, s := range perm {
			winsByName[s.name] += wins[i]
		}
	}
	return winsByName, nil
}

// Summary describes one seat's final-score distribution over a batch.
type Summary struct {
	Mean   float64
	StdDev float64
}

// Summarize reduces one seat's column of Scores output.
func Summarize(scoresPerRound [][]int, seat int) (Summary, error) {
	xs := make([]float64, len(scoresPerRound))
	for i, scores := range scoresPerRound {
		if seat < 0 || seat >= len(scores) {
			return Summary{}, fmt.Errorf("%w: seat=%d, players=%d", ErrSeatRange, seat, len(scores))
		}
		xs[i] = float64(scores[seat])
	}
	return Summary{
		Mean:   stat.Mean(xs, nil),
		StdDev: stat.StdDev(xs, nil),
	}, nil
}
