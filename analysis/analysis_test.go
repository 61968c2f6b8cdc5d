package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/search"
)

const drawnGame = "436014551150160155104632660465204242223333"

func TestAnalyzeAgreesWithSolve(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		moves string
		first board.Player
		depth int
	}{
		{"3243", board.O, 5},
		{"3344", board.X, 5},
		{"30303", board.X, 4},
		{"", board.X, 4},
	} {
		pos, onturn, err := board.FromMoveString(tc.moves, tc.first)
		is.NoErr(err)

		scores, err := AnalyzeColumns(context.Background(), pos, onturn, tc.depth, 3)
		is.NoErr(err)
		is.Equal(len(scores), len(pos.LegalMoves()))

		s := search.NewSolver(nil)
		is.NoErr(s.SetMaxDepth(tc.depth))
		res, err := s.Solve(context.Background(), pos, onturn)
		is.NoErr(err)
		is.Equal(scores[0].Column, res.Column)
		is.Equal(scores[0].Score, res.Score)
	}
}

func TestAnalyzeSortsForMinimizer(t *testing.T) {
	is := is.New(t)
	pos, onturn, err := board.FromMoveString("30303", board.X)
	is.NoErr(err)
	is.Equal(onturn, board.O)
	scores, err := AnalyzeColumns(context.Background(), pos, onturn, 2, 2)
	is.NoErr(err)
	for i := 1; i < len(scores); i++ {
		is.True(scores[i-1].Score <= scores[i].Score)
		if scores[i-1].Score == scores[i].Score {
			is.True(scores[i-1].Column < scores[i].Column)
		}
	}
	is.Equal(Best(scores), []int{3})
}

func TestAnalyzeFullBoard(t *testing.T) {
	is := is.New(t)
	pos, onturn, err := board.FromMoveString(drawnGame, board.X)
	is.NoErr(err)
	_, err = AnalyzeColumns(context.Background(), pos, onturn, 3, 2)
	is.True(errors.Is(err, search.ErrNoLegalMoves))
}

func TestAnalyzeCanceled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AnalyzeColumns(ctx, board.NewPosition(), board.X, 8, 2)
	is.True(errors.Is(err, context.Canceled))
}

func TestSummary(t *testing.T) {
	is := is.New(t)
	out := Summary([]ColumnScore{{3, 1000}, {0, 2}})
	is.Equal(out, "Column  Score\n3       1000\n0       2\n")
}
