package scout

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat/combin"
)

var ErrPlayerCount = errors.New("プレイヤー人数エラー: 3人、4人、5人のいずれかである必要があります")

// NewDeck builds the fixed card population for a player count.
// 3 players: every unordered pair of values 0..8 (36 cards).
// 5 players: every unordered pair of values 0..9 (45 cards).
// 4 players: the 5-player deck minus the single card pairing the two
// highest values (44 cards).
//
// NewDeckは人数に応じた山札を生成します。人数が3〜5以外ならエラー。
func NewDeck(players int) (Set, error) {
	var maxValue int
	switch players {
	case 3:
		maxValue = MaxValue - 1
	case 4, 5:
		maxValue = MaxValue
	default:
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, players)
	}

	pairs := combin.Combinations(maxValue+1, 2)
	deck := make(Set, 0, len(pairs))
	for _, pair := range pairs {
		if players == 4 && pair[0] == MaxValue-1 && pair[1] == MaxValue {
			continue
		}
		deck = append(deck, Card{Up: pair[0], Down: pair[1]})
	}
	return deck, nil
}
