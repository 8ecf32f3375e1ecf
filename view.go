package scout

import (
	"fmt"
	"slices"
)

// PublicPlayer is the information about a seat that every player can
// see: score, hand size, and whether Scout+Show is still available.
type PublicPlayer struct {
	Score        int
	HandSize     int
	CanScoutShow bool
}

// GameView is the information-restricted projection of a GameState for
// the acting player. The player ring is rotated so the actor is index 0,
// the actor's hand is exposed as bare face values (never the concealed
// flip sides), and ActiveOwner is re-expressed relative to the actor.
//
// GameViewは手番プレイヤーから見た制限付きの状態です。
// 他プレイヤーの手札の中身は一切含まれません。
type GameView struct {
	// Hand is the actor's face-up values, in hand order.
	Hand []int
	// Active is the shared active set. All of its faces are public.
	Active Set
	// ActiveOwner is the owner of the active set, relative to the actor.
	ActiveOwner int
	// Players holds public information for every seat, relative to the
	// actor; index 0 is the actor.
	Players []PublicPlayer
}

// Result is the actor-visible outcome of a view transition.
type Result int

const (
	// Continue means the round goes on.
	Continue Result = iota
	// Win means the round ended and the actor's adjusted score ties the maximum.
	Win
	// Loss means the round ended below the maximum.
	Loss
)

// ViewOf projects the authoritative state for its acting player.
func ViewOf(state GameState) GameView {
	n := len(state.Players)
	players := make([]PublicPlayer, n)
	for i := 0; i < n; i++ {
		p := state.Players[(state.Turn+i)%n]
		players[i] = PublicPlayer{
			Score:        p.Score,
			HandSize:     len(p.Hand),
			CanScoutShow: p.CanScoutShow,
		}
	}

	return GameView{
		Hand:        state.Players[state.Turn].Hand.Values(),
		Active:      state.Active.Clone(),
		ActiveOwner: ((state.ActiveOwner-state.Turn)%n + n) % n,
		Players:     players,
	}
}

func (v GameView) clone() GameView {
	return GameView{
		Hand:        slices.Clone(v.Hand),
		Active:      v.Active.Clone(),
		ActiveOwner: v.ActiveOwner,
		Players:     slices.Clone(v.Players),
	}
}

// TakeAction duplicates the engine's transition semantics on the
// visible fields only, enabling lookahead without hidden state. The
// returned view keeps the actor at index 0. On termination the result
// is Win or Loss for the actor, applying the same hand-size credit to
// the active-set owner the engine applies.
func (v GameView) TakeAction(action Action) (Result, GameView, error) {
	next := v.clone()

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
		return Continue, GameView{}, err
	}

	if len(next.Hand) == 0 {
		return next.result(), next, nil
	}
	if next.ActiveOwner == 1 {
		// 手番が回る次のプレイヤーが場の持ち主なら、手札分を加点してラウンド終了
		next.Players[1].Score += next.Players[1].HandSize
		return next.result(), next, nil
	}
	return Continue, next, nil
}

func (v *GameView) applyScout(a Scout) error {
	if len(v.Active) == 0 {
		return ErrEmptyActive
	}
	if a.Insert < 0 || a.Insert > len(v.Hand) {
		return fmt.Errorf("%w: insert=%d, hand=%d", ErrInsertIndex, a.Insert, len(v.Hand))
	}

	var card Card
	if a.Left {
		card, v.Active = v.Active.PopFront()
	} else {
		card, v.Active = v.Active.PopBack()
	}

	// フリップは手札に入る面を選ぶだけであり、隠れた情報は不要
	value := card.Up
	if a.Flip {
		value = card.Down
	}
	v.Hand = slices.Insert(v.Hand, a.Insert, value)
	v.Players[0].HandSize = len(v.Hand)
	v.Players[v.ActiveOwner].Score++
	return nil
}

func (v *GameView) applyShow(a Show) error {
	if a.Start < 0 || a.Start > a.Stop || a.Stop >= len(v.Hand) {
		return fmt.Errorf("%w: start=%d, stop=%d, hand=%d", ErrShowRange, a.Start, a.Stop, len(v.Hand))
	}

	v.Players[0].Score += len(v.Active)

	// The actor never sees the backs of their own cards, and no later
	// view transition consults them: only the face values matter here.
	shown := make(Set, a.Stop-a.Start+1)
	for i := range shown {
		value := v.Hand[a.Start+i]
		shown[i] = Card{Up: value, Down: value}
	}
	v.Active = shown
	v.Hand = slices.Delete(v.Hand, a.Start, a.Stop+1)
	v.Players[0].HandSize = len(v.Hand)
	v.ActiveOwner = 0
	return nil
}

func (v *GameView) applyScoutShow(a ScoutShow) error {
	if !v.Players[0].CanScoutShow {
		return ErrScoutShowUsed
	}
	if err := v.applyScout(a.Scout); err != nil {
		return err
	}
	if err := v.applyShow(a.Show); err != nil {
		return err
	}
	v.Players[0].CanScoutShow = false
	return nil
}

// result assumes the round has just terminated and reports Win iff the
// actor's adjusted score ties the maximum among all players.
func (v GameView) result() Result {
	actor := v.Players[0].Score - v.Players[0].HandSize
	for _, p := range v.Players[1:] {
		if p.Score-p.HandSize > actor {
			return Loss
		}
	}
	return Win
}
