package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/connect4/board"
)

const drawnGame = "436014551150160155104632660465204242223333"

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.O)
	is.Equal(g.PlayerOnTurn(), board.O)
	is.Equal(g.FirstPlayer(), board.O)
	is.Equal(g.Playing(), Playing)
	is.Equal(g.Turn(), 0)
	_, ok := g.Winner()
	is.True(!ok)
}

func TestPlayMoveAlternates(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.X)
	is.NoErr(g.PlayMove(3))
	is.Equal(g.PlayerOnTurn(), board.O)
	is.NoErr(g.PlayMove(3))
	is.Equal(g.PlayerOnTurn(), board.X)

	pos := g.Position()
	p, ok := pos.At(3, 0)
	is.True(ok)
	is.Equal(p, board.X)
	p, ok = pos.At(3, 1)
	is.True(ok)
	is.Equal(p, board.O)
	is.Equal(g.History(), []Move{{board.X, 3}, {board.O, 3}})
	is.Equal(g.MoveString(), "33")
}

func TestRejectedMoveLeavesGameUnchanged(t *testing.T) {
	is := is.New(t)
	g, err := NewFromMoves("333333", board.X)
	is.NoErr(err)
	before := g.Copy()

	is.True(errors.Is(g.PlayMove(3), board.ErrColumnFull))
	is.True(errors.Is(g.PlayMove(7), board.ErrColumnOutOfRange))
	is.True(errors.Is(g.PlayMove(-1), board.ErrColumnOutOfRange))
	is.Equal(g.PlayerOnTurn(), board.X)
	is.Equal(g.Position(), before.Position())
	is.Equal(g.Turn(), 6)
}

func TestWin(t *testing.T) {
	is := is.New(t)
	g, err := NewFromMoves("303030", board.X)
	is.NoErr(err)
	is.Equal(g.Playing(), Playing)
	is.NoErr(g.PlayMove(3))
	is.Equal(g.Playing(), Won)
	w, ok := g.Winner()
	is.True(ok)
	is.Equal(w, board.X)
	is.True(errors.Is(g.PlayMove(0), ErrGameOver))
	is.True(strings.Contains(g.ToDisplayText(), "X wins"))
}

func TestDraw(t *testing.T) {
	is := is.New(t)
	g, err := NewFromMoves(drawnGame[:len(drawnGame)-1], board.X)
	is.NoErr(err)
	is.Equal(g.Playing(), Playing)
	is.NoErr(g.PlayMove(3))
	is.Equal(g.Playing(), Draw)
	_, ok := g.Winner()
	is.True(!ok)
	is.True(errors.Is(g.PlayMove(3), ErrGameOver))
	is.True(strings.Contains(g.ToDisplayText(), "draw"))
}

func TestUnplayLastMove(t *testing.T) {
	is := is.New(t)
	g, err := NewFromMoves("3030303", board.X)
	is.NoErr(err)
	is.Equal(g.Playing(), Won)

	is.NoErr(g.UnplayLastMove())
	is.Equal(g.Playing(), Playing)
	is.Equal(g.PlayerOnTurn(), board.X)
	is.Equal(g.Turn(), 6)
	is.Equal(g.MoveString(), "303030")

	fresh := NewGame(board.X)
	is.True(errors.Is(fresh.UnplayLastMove(), ErrNoHistory))
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	g, err := NewFromMoves("3344", board.X)
	is.NoErr(err)
	cp := g.Copy()
	is.NoErr(cp.PlayMove(2))
	is.Equal(g.Turn(), 4)
	is.Equal(cp.Turn(), 5)
	is.Equal(g.MoveString(), "3344")
}

func TestNewFromMovesErrors(t *testing.T) {
	is := is.New(t)
	_, err := NewFromMoves("33a", board.X)
	is.True(err != nil)
	_, err = NewFromMoves("30303030", board.X)
	is.True(errors.Is(err, ErrGameOver))
}

func TestDisplayMarksPlayerOnTurn(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.X)
	txt := g.ToDisplayText()
	is.True(strings.Contains(txt, "> player X"))
	is.True(strings.Contains(txt, "  player O"))
	is.NoErr(g.PlayMove(0))
	txt = g.ToDisplayText()
	is.True(strings.Contains(txt, "> player O"))
	is.True(strings.Contains(txt, "Last: X played column 0"))
}
