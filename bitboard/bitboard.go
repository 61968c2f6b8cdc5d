// Package bitboard packs one player's Connect Four discs into a single
// 64-bit word, following the layout of John Tromp's Fhourstones benchmark.
//
// Each column owns ColumnStride consecutive bits. The lowest Height bits of
// a column are the playable cells, bottom row first; the extra bit on top is
// a gap that is never set, so a line shifted across a column boundary always
// lands on a zero.
//
//	  6 13 20 27 34 41 48
//	 ---------------------
//	| 5 12 19 26 33 40 47 |
//	| 4 11 18 25 32 39 46 |
//	| 3 10 17 24 31 38 45 |
//	| 2  9 16 23 30 37 44 |
//	| 1  8 15 22 29 36 43 |
//	| 0  7 14 21 28 35 42 |
//	 ---------------------
package bitboard

import (
	"fmt"
	"math/bits"
)

const (
	Width  = 7
	Height = 6

	// ColumnStride is the number of bits reserved per column: the playable
	// cells plus the gap bit.
	ColumnStride = Height + 1
	// Size is the number of bit positions addressed by a board.
	Size = ColumnStride * Width
)

// Compile-time check that the whole grid, gap row included, fits in a
// Bitboard. A negative value here overflows the uint conversion.
const _ = uint(64 - Size)

// Line directions expressed as shift distances.
const (
	ShiftVertical   = 1
	ShiftHorizontal = ColumnStride
	ShiftSlash      = ColumnStride + 1 // "/" diagonal
	ShiftBackslash  = ColumnStride - 1 // "\" diagonal
)

// Directions lists the four line directions in the order they are tested.
var Directions = [4]uint{ShiftBackslash, ShiftHorizontal, ShiftSlash, ShiftVertical}

// Bitboard is one player's set of discs.
type Bitboard uint64

const (
	bottomRow Bitboard = 0x0040810204081 // bit 0 of every column
	// Playable masks every cell a disc can occupy; gap bits are excluded.
	Playable Bitboard = bottomRow * ((1 << Height) - 1)
)

// Bit returns the single-bit board for the cell at (col, row).
func Bit(col, row int) Bitboard {
	return 1 << uint(ColumnStride*col+row)
}

// Has reports whether the cell at (col, row) is set.
func (b Bitboard) Has(col, row int) bool {
	return b&Bit(col, row) != 0
}

// Count returns the number of discs on the board.
func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// FourInARow reports whether four set bits line up vertically, horizontally
// or along either diagonal. Each direction costs three shifts and three ANDs:
// y marks the start of every pair, and y & y>>2s marks the start of every
// run of four.
func (b Bitboard) FourInARow() bool {
	for _, s := range Directions {
		y := b & (b >> s)
		if y&(y>>(2*s)) != 0 {
			return true
		}
	}
	return false
}

// Threes counts, over all four directions, the cells that start a run of
// three set bits. A run of four counts twice. The result is never negative.
func (b Bitboard) Threes() int {
	n := 0
	for _, s := range Directions {
		n += (b & (b >> s) & (b >> (2 * s))).Count()
	}
	return n
}

func (b Bitboard) String() string {
	return fmt.Sprintf("%#014x", uint64(b))
}
