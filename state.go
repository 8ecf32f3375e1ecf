package scout

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

var (
	ErrNilRng        = errors.New("rngエラー: シャッフルにはrngが必要です")
	ErrRoundOver     = errors.New("ラウンド終了エラー: 終了したラウンドには行動を適用出来ません")
	ErrRoundNotOver  = errors.New("ラウンド継続エラー: ラウンドが終了するまで最終スコアは確定しません")
	ErrEmptyActive   = errors.New("スカウトエラー: 場のセットが空です")
	ErrInsertIndex   = errors.New("スカウトエラー: 挿入位置が手札の範囲外です")
	ErrShowRange     = errors.New("ショーエラー: 範囲が手札の範囲外です")
	ErrScoutShowUsed = errors.New("スカウト&ショーエラー: このラウンドでは既に使用済みです")
	ErrUnknownAction = errors.New("アクションエラー: 未知のアクションです")
)

// Player is one seat in the ring.
type Player struct {
	Hand  Set
	Score int
	// CanScoutShow starts true and becomes permanently false once the
	// player uses the combined Scout+Show action in this round.
	CanScoutShow bool
}

// GameState is the authoritative state of one round. It is created
// once per round and transitioned by copy: TakeAction returns a fresh
// value and never mutates its input, so prior states stay valid.
//
// GameStateは1ラウンドの正規の状態です。遷移は常に新しい値を返します。
type GameState struct {
	Players []Player
	Active  Set
	// ActiveOwner is the index of the player who most recently showed.
	ActiveOwner int
	// Turn is the index of the player to act.
	Turn int
	// Over reports that the round has terminated.
	Over bool
}

// NewGameState builds the deck for the player count, optionally
// shuffles it with rng, and deals it round-robin starting at player 0.
//
// NewGameStateは山札を生成し、プレイヤー0から順に配ります。
func NewGameState(players int, shuffle bool, rng *rand.Rand) (GameState, error) {
	deck, err := NewDeck(players)
	if err != nil {
		return GameState{}, err
	}

	if shuffle {
		if rng == nil {
			return GameState{}, ErrNilRng
		}
		rng.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
	}

	ps := make([]Player, players)
	for i := range ps {
		ps[i].Hand = make(Set, 0, (len(deck)/players)+1)
		ps[i].CanScoutShow = true
	}
	for i, card := range deck {
		seat := i % players
		ps[seat].Hand = append(ps[seat].Hand, card)
	}

	return GameState{
		Players: ps,
		Active:  Set{},
	}, nil
}

func (s GameState) clone() GameState {
	ps := make([]Player, len(s.Players))
	for i, p := range s.Players {
		ps[i] = Player{
			Hand:         p.Hand.Clone(),
			Score:        p.Score,
			CanScoutShow: p.CanScoutShow,
		}
	}
	return GameState{
		Players:     ps,
		Active:      s.Active.Clone(),
		ActiveOwner: s.ActiveOwner,
		Turn:        s.Turn,
		Over:        s.Over,
	}
}

// TakeAction applies an action for the acting player and returns the
// next state. Invalid parameters are rejected before any mutation.
// After the action, the round ends if the actor emptied their hand, or
// if the turn would pass to the player who owns the active set — in
// that case the owner's score is first credited with their own hand
// size, exempting them from the unplayed-card penalty.
func TakeAction(state GameState, action Action) (GameState, error) {
	if state.Over {
		return GameState{}, ErrRoundOver
	}

	next := state.clone()

	var err error
	switch a := action.(type) {
	case Scout:
		err = next.applyScout(a)
	case Show:
		err = next.applyShow(a)
	case ScoutShow:
		err = next.applyScoutShow(a)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
	if err != nil {
		return GameState{}, err
	}

	next.resolveEnd()
	return next, nil
}

func (s *GameState) applyScout(a Scout) error {
	if len(s.Active) == 0 {
		return ErrEmptyActive
	}

	actor := &s.Players[s.Turn]
	if a.Insert < 0 || a.Insert > len(actor.Hand) {
		return fmt.Errorf("%w: insert=%d, hand=%d", ErrInsertIndex, a.Insert, len(actor.Hand))
	}

	var card Card
	if a.Left {
		card, s.Active = s.Active.PopFront()
	} else {
		card, s.Active = s.Active.PopBack()
	}
	if a.Flip {
		card = card.Flip()
	}

	actor.Hand = actor.Hand.Insert(a.Insert, card)
	s.Players[s.ActiveOwner].Score++
	return nil
}

func (s *GameState) applyShow(a Show) error {
	actor := &s.Players[s.Turn]
	if a.Start < 0 || a.Start > a.Stop || a.Stop >= len(actor.Hand) {
		return fmt.Errorf("%w: start=%d, stop=%d, hand=%d", ErrShowRange, a.Start, a.Stop, len(actor.Hand))
	}

	actor.Score += len(s.Active)
	removed, remainder := actor.Hand.RemoveRange(a.Start, a.Stop)
	actor.Hand = remainder
	s.Active = removed
	s.ActiveOwner = s.Turn
	return nil
}

func (s *GameState) applyScoutShow(a ScoutShow) error {
	actor := &s.Players[s.Turn]
	if !actor.CanScoutShow {
		return ErrScoutShowUsed
	}

	if err := s.applyScout(a.Scout); err != nil {
		return err
	}
	if err := s.applyShow(a.Show); err != nil {
		return err
	}

	s.Players[s.Turn].CanScoutShow = false
	return nil
}

// resolveEnd advances the turn and detects round termination.
func (s *GameState) resolveEnd() {
	if len(s.Players[s.Turn].Hand) == 0 {
		s.Over = true
		return
	}

	nextTurn := (s.Turn + 1) % len(s.Players)
	if nextTurn == s.ActiveOwner {
		// 手番が回ってきた場の持ち主は、手札分のペナルティを免除される
		s.Players[nextTurn].Score += len(s.Players[nextTurn].Hand)
		s.Turn = nextTurn
		s.Over = true
		return
	}
	s.Turn = nextTurn
}

// FinalScores returns each player's final score, score minus remaining
// hand size, aligned to seat order. It fails while the round is live.
func (s GameState) FinalScores() ([]int, error) {
	if !s.Over {
		return nil, ErrRoundNotOver
	}
	scores := make([]int, len(s.Players))
	for i, p := range s.Players {
		scores[i] = p.Score - len(p.Hand)
	}
	return scores, nil
}

// RanksByPlayer maps each seat to its 1-based rank by final score,
// ties sharing a rank. While the round is live it returns an empty map.
func (s GameState) RanksByPlayer() map[int]int {
	ranks := map[int]int{}
	if !s.Over {
		return ranks
	}

	finals, err := s.FinalScores()
	if err != nil {
		// Overがtrueである為、ここには到達しない
		panic(fmt.Sprintf("BUG: %v", err))
	}

	order := make([]int, len(finals))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return finals[b] - finals[a]
	})

	rank := 1
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && finals[order[j]] == finals[order[i]] {
			ranks[order[j]] = rank
			j++
		}
		rank += j - i
		i = j
	}
	return ranks
}
