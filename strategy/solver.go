package strategy

import (
	"math"

	"github.com/sw965/scout"
)

// Unreachable is the saturating sentinel TurnsToEmpty returns for a
// hand that cannot be cleared by shows alone. While every single card
// is a ranked set this cannot happen for a non-empty hand, but the
// sentinel keeps 1+min(...) arithmetic overflow-safe regardless.
const Unreachable = math.MaxInt / 4

// Solver computes TurnsToEmpty with a private memo cache. The cache is
// keyed by the exact hand sequence, so a Solver must not be shared
// across concurrently running games; each Strategy instance owns one.
//
// Solverは手札を空にする為の最小ショー回数をメモ化付きで計算します。
type Solver struct {
	setMap scout.SetMap
	cache  map[string]int
}

func NewSolver(setMap scout.SetMap) *Solver {
	return &Solver{
		setMap: setMap,
		cache:  map[string]int{},
	}
}

// TurnsToEmpty returns the minimum number of show actions required to
// empty the hand, ignoring scouts. If the whole hand is one ranked set
// the answer is 1; otherwise it is 1 plus the minimum over every
// contiguous ranked subrange removal.
func (s *Solver) TurnsToEmpty(hand []int) int {
	if len(hand) == 0 {
		return 0
	}
	if s.setMap.Rank(hand) > 0 {
		return 1
	}

	key := scout.Key(hand)
	if turns, ok := s.cache[key]; ok {
		return turns
	}

	best := Unreachable
	for start := 0; start < len(hand); start++ {
		for stop := start; stop < len(hand); stop++ {
			if s.setMap.Rank(hand[start:stop+1]) == 0 {
				continue
			}

			rest := make([]int, 0, len(hand)-(stop-start+1))
			rest = append(rest, hand[:start]...)
			rest = append(rest, hand[stop+1:]...)

			turns := s.TurnsToEmpty(rest)
			if turns == 1 {
				// 手札全体はセットではないので、2回が下限
				s.cache[key] = 2
				return 2
			}
			if turns+1 < best {
				best = turns + 1
			}
		}
	}

	if best > Unreachable {
		best = Unreachable
	}
	s.cache[key] = best
	return best
}
