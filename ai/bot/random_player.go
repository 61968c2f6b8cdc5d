package bot

import (
	"context"

	"lukechampine.com/frand"

	"github.com/domino14/connect4/game"
)

// RandomPlayer drops discs into uniformly random legal columns.
type RandomPlayer struct{}

func (RandomPlayer) Name() string {
	return "random"
}

func (RandomPlayer) ChooseMove(ctx context.Context, g *game.Game) (int, error) {
	if g.Playing() != game.Playing {
		return -1, ErrGameOver
	}
	pos := g.Position()
	moves := pos.LegalMoves()
	return moves[frand.Intn(len(moves))], nil
}
