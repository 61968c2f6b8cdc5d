package bitboard

import "fmt"

// Heights tracks, per column, the row of the topmost disc. An empty column
// is -1 and a full column is Height-1.
type Heights [Width]int

// NewHeights returns the heights of an empty board.
func NewHeights() Heights {
	var h Heights
	for i := range h {
		h[i] = -1
	}
	return h
}

// Free reports whether col can take another disc. Out-of-range columns are
// never free.
func (h Heights) Free(col int) bool {
	return col >= 0 && col < Width && h[col] < Height-1
}

// Place drops a disc into col: the height is raised and the matching bit
// set. The caller must have checked the column with Free; placing into a
// full or nonexistent column is a programming error and panics.
func Place(b Bitboard, h *Heights, col int) Bitboard {
	if !h.Free(col) {
		panic(fmt.Sprintf("bitboard: place into unavailable column %d", col))
	}
	h[col]++
	return b | Bit(col, h[col])
}

// Remove undoes the most recent Place into col. Calls must mirror Place in
// reverse order.
func Remove(b Bitboard, h *Heights, col int) Bitboard {
	b &^= Bit(col, h[col])
	h[col]--
	return b
}

// IsFree reports whether col has room left, judged from the combined
// occupancy of both players' boards.
func IsFree(col int, discs [2]Bitboard) bool {
	if col < 0 || col >= Width {
		return false
	}
	return (discs[0]|discs[1])&Bit(col, Height-1) == 0
}
