package scout

// Action is one of the three moves a player can take on their turn.
// The concrete types are small comparable structs so that actions can
// be used as map keys and checked for membership.
//
// Actionはプレイヤーが1手で行える行動です。
type Action interface {
	isAction()
}

// Scout moves one card from an end of the active set into the acting
// player's hand, optionally flipped, and credits one point to whoever
// last showed.
type Scout struct {
	// Left selects the front of the active set; otherwise the back.
	Left bool
	// Flip swaps the card's faces before it enters the hand.
	Flip bool
	// Insert is the hand position the card is placed at (0..=hand length).
	Insert int
}

// Show replaces the active set with the inclusive hand subrange
// [Start, Stop], crediting the actor with the replaced set's size.
type Show struct {
	Start int
	Stop  int
}

// ScoutShow applies a Scout followed by a Show as one atomic step.
// Each player may use it at most once per round.
type ScoutShow struct {
	Scout Scout
	Show  Show
}

func (Scout) isAction()     {}
func (Show) isAction()      {}
func (ScoutShow) isAction() {}

// LegalActions enumerates every rules-legal action for the acting
// player of the view. It is a pure function of the view and the rank
// table; the view is never mutated.
//
// LegalActionsはビューの手番プレイヤーが取り得る全ての合法手を列挙します。
func LegalActions(view GameView, setMap SetMap) []Action {
	actions := []Action{}
	handLen := len(view.Hand)

	if len(view.Active) > 0 {
		for _, left := range []bool{true, false} {
			for _, flip := range []bool{true, false} {
				for i := 0; i <= handLen; i++ {
					actions = append(actions, Scout{Left: left, Flip: flip, Insert: i})
				}
			}
		}
	}

	activeRank := setMap.Rank(view.Active.Values())
	for _, show := range legalShows(view.Hand, activeRank, setMap) {
		actions = append(actions, show)
	}

	// スカウト&ショーは、全ての合法なスカウトを仮に適用した上で、
	// その結果の手札に対する合法なショーを列挙する（固定の組ではない）。
	if view.Players[0].CanScoutShow && len(view.Active) > 0 {
		for _, left := range []bool{true, false} {
			for _, flip := range []bool{true, false} {
				for i := 0; i <= handLen; i++ {
					scout := Scout{Left: left, Flip: flip, Insert: i}
					scratch := view.clone()
					if err := scratch.applyScout(scout); err != nil {
						// 列挙中のスカウトは前提条件を満たしているはずなので、ここには到達しない
						continue
					}
					scratchRank := setMap.Rank(scratch.Active.Values())
					for _, show := range legalShows(scratch.Hand, scratchRank, setMap) {
						actions = append(actions, ScoutShow{Scout: scout, Show: show})
					}
				}
			}
		}
	}
	return actions
}

// legalShows returns every contiguous subrange of hand whose rank
// strictly exceeds activeRank.
func legalShows(hand []int, activeRank int, setMap SetMap) []Show {
	shows := []Show{}
	for start := 0; start < len(hand); start++ {
		for stop := start; stop < len(hand); stop++ {
			if setMap.Rank(hand[start:stop+1]) > activeRank {
				shows = append(shows, Show{Start: start, Stop: stop})
			}
		}
	}
	return shows
}
