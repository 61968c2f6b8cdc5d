package game

import (
	"fmt"

	"github.com/domino14/connect4/board"
)

// Move is a committed disc drop.
type Move struct {
	Player board.Player
	Column int
}

func (m Move) String() string {
	return fmt.Sprintf("%v:%d", m.Player, m.Column)
}

func (g *Game) History() []Move {
	return append([]Move(nil), g.history...)
}

// MoveString returns the moves played as a string of column digits.
func (g *Game) MoveString() string {
	cols := make([]int, len(g.history))
	for i, m := range g.history {
		cols[i] = m.Column
	}
	return board.MoveString(cols)
}
