package bot

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/heuristic"
	"github.com/domino14/connect4/search"
)

var ErrGameOver = errors.New("bot cannot move; the game is over")

type BotConfig struct {
	Difficulty Difficulty
	// MaxDepth is the search depth of the hard bot.
	MaxDepth int
	// Timeout, if nonzero, bounds each search and turns on iterative
	// deepening so a move is still returned when it runs out.
	Timeout time.Duration
}

// BotConfigFromConfig reads the bot settings out of the global config.
func BotConfigFromConfig(cfg *config.Config) (BotConfig, error) {
	d, err := ParseDifficulty(cfg.GetString(config.ConfigDifficulty))
	if err != nil {
		return BotConfig{}, err
	}
	return BotConfig{
		Difficulty: d,
		MaxDepth:   cfg.GetInt(config.ConfigMaxDepth),
		Timeout:    cfg.GetDuration(config.ConfigSearchTimeout),
	}, nil
}

// BotTurnPlayer is the computer opponent.
type BotTurnPlayer struct {
	cfg    BotConfig
	solver *search.Solver

	lastResult search.Result
}

func NewBotTurnPlayer(cfg BotConfig) (*BotTurnPlayer, error) {
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = search.DefaultMaxDepth
	}
	s := search.NewSolver(heuristic.ThreesEvaluator{})
	depth := cfg.MaxDepth
	if cfg.Difficulty == Medium {
		depth = MediumDepth
	}
	if err := s.SetMaxDepth(depth); err != nil {
		return nil, err
	}
	s.SetIterativeDeepening(cfg.Timeout > 0)
	return &BotTurnPlayer{cfg: cfg, solver: s}, nil
}

func (b *BotTurnPlayer) Name() string {
	return "bot (" + b.cfg.Difficulty.String() + ")"
}

func (b *BotTurnPlayer) Difficulty() Difficulty {
	return b.cfg.Difficulty
}

// Solver exposes the underlying search, e.g. to attach a trace stream.
func (b *BotTurnPlayer) Solver() *search.Solver {
	return b.solver
}

// LastResult returns the search result behind the last searched move. It
// is the zero Result for the easy bot.
func (b *BotTurnPlayer) LastResult() search.Result {
	return b.lastResult
}

func (b *BotTurnPlayer) ChooseMove(ctx context.Context, g *game.Game) (int, error) {
	if g.Playing() != game.Playing {
		return -1, ErrGameOver
	}
	pos := g.Position()
	onturn := g.PlayerOnTurn()

	if b.cfg.Difficulty == Easy {
		col := easyMove(&pos, onturn)
		log.Debug().Int("column", col).Msg("easy-bot-move")
		return col, nil
	}

	if b.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.Timeout)
		defer cancel()
	}
	res, err := b.solver.Solve(ctx, pos, onturn)
	if err != nil {
		return -1, err
	}
	b.lastResult = res
	return res.Column, nil
}

// easyMove wins if it can, blocks if it must, and otherwise plays a random
// legal column.
func easyMove(pos *board.Position, onturn board.Player) int {
	moves := pos.LegalMoves()
	for _, p := range []board.Player{onturn, onturn.Opponent()} {
		for _, col := range moves {
			pos.Play(p, col)
			won := pos.HasWon(p)
			pos.Unplay(p, col)
			if won {
				return col
			}
		}
	}
	return moves[frand.Intn(len(moves))]
}
