// Package scout implements the card game Scout: an authoritative game
// engine with pure copy-on-write transitions, a restricted per-player
// view that supports the same transitions, and a legal-action enumerator.
//
// Package scout はカードゲーム「Scout」を実装します。状態遷移は全て
// コピーオンライトの純粋関数であり、制限付きビューからも同じ遷移が
// 再現出来ます。
package scout

// Card is a two-faced playing card. Only Up is visible while the card
// sits in a hand; both faces of the active set are public.
//
// Cardは表裏2つの面を持つカードです。手札にある間はUpのみが見えます。
type Card struct {
	Up   int
	Down int
}

// Flip returns the card with its faces swapped.
func (c Card) Flip() Card {
	return Card{Up: c.Down, Down: c.Up}
}

// Set is an ordered sequence of cards. Both hands and the active set
// are Sets; the front is the "left" end.
type Set []Card

func (s Set) Clone() Set {
	cloned := make(Set, len(s))
	copy(cloned, s)
	return cloned
}

// Values returns the face-up values in order.
func (s Set) Values() []int {
	vs := make([]int, len(s))
	for i, c := range s {
		vs[i] = c.Up
	}
	return vs
}

// PopFront removes the left-most card.
// len(s) > 0 は呼び出し側が保証する。
func (s Set) PopFront() (Card, Set) {
	return s[0], s[1:]
}

// PopBack removes the right-most card.
// len(s) > 0 は呼び出し側が保証する。
func (s Set) PopBack() (Card, Set) {
	return s[len(s)-1], s[:len(s)-1]
}

// Insert returns a new Set with c inserted at index i.
// 0 <= i <= len(s) は呼び出し側が保証する。
func (s Set) Insert(i int, c Card) Set {
	inserted := make(Set, 0, len(s)+1)
	inserted = append(inserted, s[:i]...)
	inserted = append(inserted, c)
	inserted = append(inserted, s[i:]...)
	return inserted
}

// RemoveRange splits s into the inclusive subrange [start, stop]
// (original left-to-right order preserved) and the remainder.
// start <= stop < len(s) は呼び出し側が保証する。
func (s Set) RemoveRange(start, stop int) (removed, remainder Set) {
	removed = make(Set, stop-start+1)
	copy(removed, s[start:stop+1])

	remainder = make(Set, 0, len(s)-len(removed))
	remainder = append(remainder, s[:start]...)
	remainder = append(remainder, s[stop+1:]...)
	return removed, remainder
}
