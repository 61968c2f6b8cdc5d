package puzzles

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/search"
)

func TestCatalogueLoads(t *testing.T) {
	is := is.New(t)
	ps, err := All()
	is.NoErr(err)
	is.True(len(ps) >= 10)
	seen := map[string]bool{}
	for _, p := range ps {
		is.True(!seen[p.Name])
		seen[p.Name] = true
		is.True(len(p.Columns) > 0)
		is.True(p.Depth > 0)
		_, _, err := p.Position()
		is.NoErr(err)
	}
}

func TestSolverSolvesPuzzles(t *testing.T) {
	ps, err := All()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range ps {
		t.Run(p.Name, func(t *testing.T) {
			is := is.New(t)
			pos, onturn, err := p.Position()
			is.NoErr(err)
			s := search.NewSolver(nil)
			is.NoErr(s.SetMaxDepth(p.Depth))
			res, err := s.Solve(context.Background(), pos, onturn)
			is.NoErr(err)
			is.True(p.Check(res, onturn))

			// Every listed column reaches the expected outcome.
			for _, col := range p.Columns {
				score, err := s.ScoreMove(context.Background(), pos, onturn, col)
				is.NoErr(err)
				is.Equal(OutcomeOf(score, onturn), p.Outcome)
			}
		})
	}
}

func TestGet(t *testing.T) {
	is := is.New(t)
	p, err := Get("open-three")
	is.NoErr(err)
	is.Equal(p.Moves, "3344")
	g, err := p.Game()
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), board.X)

	_, err = Get("no-such-puzzle")
	is.True(err != nil)
}

func TestOutcomeOf(t *testing.T) {
	is := is.New(t)
	is.Equal(OutcomeOf(search.WinScore, board.X), Win)
	is.Equal(OutcomeOf(search.WinScore, board.O), Loss)
	is.Equal(OutcomeOf(-search.WinScore, board.O), Win)
	is.Equal(OutcomeOf(3, board.X), Open)
}

func TestFromGame(t *testing.T) {
	is := is.New(t)
	g, err := game.NewFromMoves("3344215", board.X)
	is.NoErr(err)
	is.Equal(g.Playing(), game.Won)

	ps, err := FromGame(context.Background(), g, 3)
	is.NoErr(err)
	is.Equal(len(ps), 1)
	is.Equal(ps[0].Moves, "3344")
	is.Equal(ps[0].Columns, []int{2})
	is.Equal(ps[0].Name, "turn-5")
}
