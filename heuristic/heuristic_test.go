package heuristic

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/connect4/board"
)

func TestUtility(t *testing.T) {
	is := is.New(t)
	pos := board.NewPosition()
	is.Equal(Utility(&pos), 0)

	// X: three across the bottom row; O: three directly above them.
	pos, _, err := board.FromMoveString("001122", board.X)
	is.NoErr(err)
	is.Equal(Heuristic(pos.Discs[board.X]), 1)
	is.Equal(Heuristic(pos.Discs[board.O]), 1)
	is.Equal(Utility(&pos), 0)

	pos, _, err = board.FromMoveString("0516", board.X)
	is.NoErr(err)
	is.Equal(Utility(&pos), 0)
	pos.Play(board.X, 2)
	is.Equal(Utility(&pos), 1)
	pos.Play(board.O, 4)
	is.Equal(Utility(&pos), 0)
}

func TestEvaluatorMatchesUtility(t *testing.T) {
	is := is.New(t)
	pos, _, err := board.FromMoveString("3344256", board.X)
	is.NoErr(err)
	var e Evaluator = ThreesEvaluator{}
	is.Equal(e.Evaluate(&pos), Utility(&pos))
}
