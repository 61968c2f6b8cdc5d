// Package turnplayer defines what the Game Loop needs from anything that
// chooses moves.
package turnplayer

import (
	"context"

	"github.com/domino14/connect4/game"
)

// TurnPlayer chooses a column for the side on turn in g. It must not
// modify g.
type TurnPlayer interface {
	ChooseMove(ctx context.Context, g *game.Game) (int, error)
	Name() string
}
