package scout

const (
	// Card faces carry the values 0..9.
	MinValue = 0
	MaxValue = 9

	// Sets larger than this are never ranked.
	MaxSetSize = 9
)

// SetMap maps the canonical shape of a set (its face values, in order)
// to a strictly positive rank. A higher rank beats a lower one; 0 means
// "not a set". The table is deterministic, built once, and read-only
// afterwards, so it may be shared across concurrent games without
// synchronization.
//
// SetMapはセットの形（並び順の表の値）から強さへの写像です。
// 生成後は読み取り専用であり、並行に共有しても安全です。
type SetMap map[string]int

// Key encodes a face-value sequence as a map key. Go maps cannot be
// keyed by slices, so the values are packed into a byte string.
func Key(values []int) string {
	b := make([]byte, len(values))
	for i, v := range values {
		b[i] = byte(v)
	}
	return string(b)
}

// NewSetMap enumerates every legal set shape in strength order:
// the ten singles first, then for each size 2..9 all straights
// (an ascending run and its exact reverse share one rank) followed by
// the ten flushes of that size. Flushes of a size therefore always
// outrank straights of the same size, and any larger set outranks any
// smaller one.
func NewSetMap() SetMap {
	m := SetMap{}
	rank := 0

	for v := MinValue; v <= MaxValue; v++ {
		rank++
		m[Key([]int{v})] = rank
	}

	for size := 2; size <= MaxSetSize; size++ {
		for base := MinValue; base+size-1 <= MaxValue; base++ {
			rank++
			asc := make([]int, size)
			desc := make([]int, size)
			for i := 0; i < size; i++ {
				asc[i] = base + i
				desc[i] = base + size - 1 - i
			}
			m[Key(asc)] = rank
			m[Key(desc)] = rank
		}

		for v := MinValue; v <= MaxValue; v++ {
			rank++
			flush := make([]int, size)
			for i := range flush {
				flush[i] = v
			}
			m[Key(flush)] = rank
		}
	}
	return m
}

// Rank returns the strength of the given face-value sequence, or 0 if
// the sequence is not a legal set. The empty sequence has no entry.
func (m SetMap) Rank(values []int) int {
	return m[Key(values)]
}
