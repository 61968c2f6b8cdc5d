// Package board holds a complete Connect Four position: both players'
// bitboards plus the column heights. A Position is small and is passed and
// copied by value; the search engine relies on that for its scratch copy.
package board

import (
	"errors"

	"github.com/domino14/connect4/bitboard"
)

const (
	Columns = bitboard.Width
	Rows    = bitboard.Height
)

var (
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrColumnFull       = errors.New("column is full")
)

// Player identifies a side. Its value is also the index of that side's
// bitboard in Position.Discs.
type Player int

const (
	// O is the minimizing side.
	O Player = iota
	// X is the maximizing side.
	X
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	return 1 - p
}

// Maximizing reports whether p is the side the search maximizes for.
func (p Player) Maximizing() bool {
	return p == X
}

// Symbol is the character used to draw p's discs.
func (p Player) Symbol() byte {
	if p == X {
		return 'X'
	}
	return 'O'
}

func (p Player) String() string {
	return string(p.Symbol())
}

// PlayerFromString parses "x" or "o" (any case).
func PlayerFromString(s string) (Player, error) {
	switch s {
	case "x", "X":
		return X, nil
	case "o", "O":
		return O, nil
	}
	return O, errors.New("player must be x or o, got " + s)
}

// Position is the board pair plus the fill height of every column.
type Position struct {
	Discs   [2]bitboard.Bitboard
	Heights bitboard.Heights
}

// NewPosition returns an empty board.
func NewPosition() Position {
	return Position{Heights: bitboard.NewHeights()}
}

// Legal returns nil if a disc can be dropped into col.
func (p *Position) Legal(col int) error {
	if col < 0 || col >= Columns {
		return ErrColumnOutOfRange
	}
	if !p.Heights.Free(col) {
		return ErrColumnFull
	}
	return nil
}

// IsFree reports whether col still has room.
func (p *Position) IsFree(col int) bool {
	return bitboard.IsFree(col, p.Discs)
}

// ApplyMove commits a move for player into col after validating it.
func (p *Position) ApplyMove(player Player, col int) error {
	if err := p.Legal(col); err != nil {
		return err
	}
	p.Play(player, col)
	return nil
}

// Play drops a disc without validation. It panics on a full column; the
// caller is expected to have checked Legal.
func (p *Position) Play(player Player, col int) {
	p.Discs[player] = bitboard.Place(p.Discs[player], &p.Heights, col)
}

// Unplay takes back the last disc dropped into col by player.
func (p *Position) Unplay(player Player, col int) {
	p.Discs[player] = bitboard.Remove(p.Discs[player], &p.Heights, col)
}

// HasWon reports whether player has four connected discs.
func (p *Position) HasWon(player Player) bool {
	return p.Discs[player].FourInARow()
}

// IsFull reports whether no column can take another disc.
func (p *Position) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if p.Heights.Free(col) {
			return false
		}
	}
	return true
}

// LegalMoves lists the open columns, left to right.
func (p *Position) LegalMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if p.Heights.Free(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

// DiscCount returns the number of discs on the board.
func (p *Position) DiscCount() int {
	return p.Discs[O].Count() + p.Discs[X].Count()
}

// At returns the owner of the cell at (col, row), or false if it is empty.
func (p *Position) At(col, row int) (Player, bool) {
	switch {
	case p.Discs[X].Has(col, row):
		return X, true
	case p.Discs[O].Has(col, row):
		return O, true
	}
	return O, false
}
