// Package heuristic scores non-terminal positions at the search frontier.
package heuristic

import (
	"github.com/domino14/connect4/bitboard"
	"github.com/domino14/connect4/board"
)

// Evaluator scores a position from the maximizing side's point of view.
type Evaluator interface {
	Evaluate(pos *board.Position) int
}

// Heuristic counts the three-in-a-row runs on a single bitboard.
func Heuristic(b bitboard.Bitboard) int {
	return b.Threes()
}

// Utility is the three-in-a-row differential: the maximizer's count minus
// the minimizer's. It is a positional proxy only; it says nothing about
// whether a run of three can still be completed.
func Utility(pos *board.Position) int {
	return Heuristic(pos.Discs[board.X]) - Heuristic(pos.Discs[board.O])
}

// ThreesEvaluator is the default Evaluator, backed by Utility.
type ThreesEvaluator struct{}

func (ThreesEvaluator) Evaluate(pos *board.Position) int {
	return Utility(pos)
}
