package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/connect4/ai/turnplayer"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/search"
)

var (
	_ turnplayer.TurnPlayer = (*BotTurnPlayer)(nil)
	_ turnplayer.TurnPlayer = RandomPlayer{}
)

func mustGame(t *testing.T, moves string) *game.Game {
	t.Helper()
	g, err := game.NewFromMoves(moves, board.X)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestParseDifficulty(t *testing.T) {
	is := is.New(t)
	d, err := ParseDifficulty("Medium")
	is.NoErr(err)
	is.Equal(d, Medium)
	_, err = ParseDifficulty("nightmare")
	is.True(err != nil)
}

func TestBotConfigFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDifficulty, "easy")
	cfg.Set(config.ConfigMaxDepth, 6)
	bc, err := BotConfigFromConfig(cfg)
	is.NoErr(err)
	is.Equal(bc.Difficulty, Easy)
	is.Equal(bc.MaxDepth, 6)
}

func TestEasyBotWinsAndBlocks(t *testing.T) {
	is := is.New(t)
	b, err := NewBotTurnPlayer(BotConfig{Difficulty: Easy})
	is.NoErr(err)

	// X to move with three stacked in column 3.
	col, err := b.ChooseMove(context.Background(), mustGame(t, "303036"))
	is.NoErr(err)
	is.Equal(col, 3)

	// O to move and must stop the same stack.
	col, err = b.ChooseMove(context.Background(), mustGame(t, "30303"))
	is.NoErr(err)
	is.Equal(col, 3)
}

func TestEasyBotPlaysLegalMoves(t *testing.T) {
	is := is.New(t)
	b, err := NewBotTurnPlayer(BotConfig{Difficulty: Easy})
	is.NoErr(err)
	g := mustGame(t, "333333")
	for i := 0; i < 50; i++ {
		col, err := b.ChooseMove(context.Background(), g)
		is.NoErr(err)
		is.True(col != 3)
		is.True(col >= 0 && col < board.Columns)
	}
}

func TestMediumBot(t *testing.T) {
	is := is.New(t)
	b, err := NewBotTurnPlayer(BotConfig{Difficulty: Medium})
	is.NoErr(err)
	is.Equal(b.Solver().MaxDepth(), MediumDepth)

	col, err := b.ChooseMove(context.Background(), mustGame(t, "30303"))
	is.NoErr(err)
	is.Equal(col, 3)
	is.Equal(b.LastResult().Score, 0)
}

func TestHardBotTakesForcedWin(t *testing.T) {
	is := is.New(t)
	b, err := NewBotTurnPlayer(BotConfig{Difficulty: Hard, MaxDepth: 5})
	is.NoErr(err)
	col, err := b.ChooseMove(context.Background(), mustGame(t, "3344"))
	is.NoErr(err)
	is.Equal(col, 2)
	is.Equal(b.LastResult().Score, search.WinScore)
}

func TestBotWithTimeoutStillMoves(t *testing.T) {
	is := is.New(t)
	b, err := NewBotTurnPlayer(BotConfig{Difficulty: Hard, MaxDepth: 42, Timeout: 50 * time.Millisecond})
	is.NoErr(err)
	g := game.NewGame(board.X)
	col, err := b.ChooseMove(context.Background(), g)
	is.NoErr(err)
	is.True(col >= 0 && col < board.Columns)
	is.True(b.LastResult().Depth >= 1)
}

func TestBotRefusesFinishedGame(t *testing.T) {
	is := is.New(t)
	g := mustGame(t, "3030303")
	is.Equal(g.Playing(), game.Won)
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		b, err := NewBotTurnPlayer(BotConfig{Difficulty: d})
		is.NoErr(err)
		_, err = b.ChooseMove(context.Background(), g)
		is.True(errors.Is(err, ErrGameOver))
	}
	_, err := RandomPlayer{}.ChooseMove(context.Background(), g)
	is.True(errors.Is(err, ErrGameOver))
}

func TestRandomPlayer(t *testing.T) {
	is := is.New(t)
	g := mustGame(t, "000000")
	for i := 0; i < 50; i++ {
		col, err := RandomPlayer{}.ChooseMove(context.Background(), g)
		is.NoErr(err)
		is.True(col > 0 && col < board.Columns)
	}
}
