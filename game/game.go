// Package game holds the rules of a single game of Connect Four: whose turn
// it is, whether a move is allowed, and when the game is over. A Game does
// not care who is playing it; human and computer players drive it from
// outside this package.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/board"
)

// PlayState is the state of the game as a whole.
type PlayState int

const (
	Playing PlayState = iota
	Won
	Draw
)

func (s PlayState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("PlayState(%d)", int(s))
}

var (
	ErrGameOver  = errors.New("cannot play a move on a game that is over")
	ErrNoHistory = errors.New("there are no moves to take back")
)

// Game is the Game Loop state: the position, the side to move and the
// moves played so far.
type Game struct {
	pos     board.Position
	first   board.Player
	onturn  board.Player
	playing PlayState
	winner  board.Player
	history []Move
}

// NewGame returns an empty board with first to move.
func NewGame(first board.Player) *Game {
	return &Game{
		pos:    board.NewPosition(),
		first:  first,
		onturn: first,
	}
}

// NewFromMoves replays a move string (see board.FromMoveString) into a
// new game.
func NewFromMoves(moves string, first board.Player) (*Game, error) {
	g := NewGame(first)
	for i, r := range moves {
		if r == ' ' || r == '\t' || r == ',' {
			continue
		}
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("move %d: %q is not a column", i+1, r)
		}
		if err := g.PlayMove(int(r - '0')); err != nil {
			return nil, fmt.Errorf("move %d: %w", len(g.history)+1, err)
		}
	}
	return g, nil
}

// PlayMove drops a disc for the side on turn. The move is validated
// first; a rejected move leaves the game unchanged.
func (g *Game) PlayMove(col int) error {
	if g.playing != Playing {
		return ErrGameOver
	}
	mover := g.onturn
	if err := g.pos.ApplyMove(mover, col); err != nil {
		return err
	}
	g.history = append(g.history, Move{Player: mover, Column: col})

	switch {
	case g.pos.HasWon(mover):
		g.playing = Won
		g.winner = mover
		log.Debug().Stringer("winner", mover).Int("turn", len(g.history)).Msg("game-won")
	case g.pos.IsFull():
		g.playing = Draw
		log.Debug().Int("turn", len(g.history)).Msg("game-drawn")
	}
	g.onturn = mover.Opponent()
	return nil
}

// UnplayLastMove takes back the last committed move, reopening the game if
// that move had ended it.
func (g *Game) UnplayLastMove() error {
	if len(g.history) == 0 {
		return ErrNoHistory
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.pos.Unplay(last.Player, last.Column)
	g.onturn = last.Player
	g.playing = Playing
	return nil
}

// Copy returns a deep copy that can be played on independently.
func (g *Game) Copy() *Game {
	cp := *g
	cp.history = append([]Move(nil), g.history...)
	return &cp
}

// Position returns a copy of the current position.
func (g *Game) Position() board.Position {
	return g.pos
}

func (g *Game) Playing() PlayState {
	return g.playing
}

// Winner returns the player who connected four. It is only meaningful
// when Playing() is Won.
func (g *Game) Winner() (board.Player, bool) {
	return g.winner, g.playing == Won
}

func (g *Game) PlayerOnTurn() board.Player {
	return g.onturn
}

func (g *Game) FirstPlayer() board.Player {
	return g.first
}

// Turn is the number of moves played so far.
func (g *Game) Turn() int {
	return len(g.history)
}
