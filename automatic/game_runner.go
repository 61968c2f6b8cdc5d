// Package automatic plays computer-vs-computer games, for benchmarking
// bots against each other and for collecting statistics about how games
// between them go.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/connect4/ai/bot"
	"github.com/domino14/connect4/ai/turnplayer"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
)

// GameRecord is the outcome of one automatic game.
type GameRecord struct {
	ID     int
	First  board.Player
	Result game.PlayState
	// Winner is only meaningful if Result is game.Won.
	Winner board.Player
	Moves  string
}

func (r GameRecord) Length() int {
	return len(r.Moves)
}

// csvRecord is the line written to the game log for r.
func (r GameRecord) csvRecord() []string {
	winner := "-"
	if r.Result == game.Won {
		winner = r.Winner.String()
	}
	return []string{fmt.Sprint(r.ID), r.First.String(), winner,
		fmt.Sprint(r.Length()), r.Moves}
}

// GameRunner plays games between two bots. The same runner is reused for
// every game a worker plays; it is not safe for concurrent use.
type GameRunner struct {
	players      [2]turnplayer.TurnPlayer
	openingPlies int
}

// NewGameRunner builds a runner with one bot per side. X uses xcfg and O
// uses ocfg.
func NewGameRunner(xcfg, ocfg bot.BotConfig, openingPlies int) (*GameRunner, error) {
	r := &GameRunner{openingPlies: openingPlies}
	for p, cfg := range map[board.Player]bot.BotConfig{board.X: xcfg, board.O: ocfg} {
		b, err := bot.NewBotTurnPlayer(cfg)
		if err != nil {
			return nil, err
		}
		r.players[p] = b
	}
	return r, nil
}

// SetPlayer replaces the player for side p.
func (r *GameRunner) SetPlayer(p board.Player, tp turnplayer.TurnPlayer) {
	r.players[p] = tp
}

// PlayGame plays one game to the end. The first player alternates with
// the game id so that neither bot always starts.
func (r *GameRunner) PlayGame(ctx context.Context, id int) (GameRecord, error) {
	first := board.X
	if id%2 == 1 {
		first = board.O
	}
	g := game.NewGame(first)

	// Random openings keep deterministic bots from replaying the same game.
	for i := 0; i < r.openingPlies && g.Playing() == game.Playing; i++ {
		pos := g.Position()
		moves := pos.LegalMoves()
		if err := g.PlayMove(moves[frand.Intn(len(moves))]); err != nil {
			return GameRecord{}, err
		}
	}

	for g.Playing() == game.Playing {
		onturn := g.PlayerOnTurn()
		col, err := r.players[onturn].ChooseMove(ctx, g)
		if err != nil {
			return GameRecord{}, fmt.Errorf("game %d, turn %d: %w", id, g.Turn(), err)
		}
		if err := g.PlayMove(col); err != nil {
			return GameRecord{}, fmt.Errorf("game %d: %v chose column %d: %w", id, r.players[onturn].Name(), col, err)
		}
	}

	rec := GameRecord{ID: id, First: first, Result: g.Playing(), Moves: g.MoveString()}
	rec.Winner, _ = g.Winner()
	log.Debug().Int("game", id).Stringer("result", rec.Result).Str("moves", rec.Moves).Msg("game-over")
	return rec, nil
}
