package automatic

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestPlayGames(t *testing.T) {
	var buf bytes.Buffer
	s, err := PlayGames(context.Background(), Options{
		NumGames:     20,
		Threads:      4,
		OpeningPlies: 2,
		X:            easy,
		O:            easy,
		Log:          &buf,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, s.Games())
	assert.Equal(t, 20, s.Wins(board.X)+s.Wins(board.O)+s.Draws())
	assert.Equal(t, int64(20), CVCCounter.Value())
	assert.Equal(t, int64(0), IsPlaying.Value())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 21)
	assert.Equal(t, "gameID,first,winner,length,moves", lines[0])

	fromLog, err := analyzeLog(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Games(), fromLog.Games())
	assert.Equal(t, s.Wins(board.X), fromLog.Wins(board.X))
	assert.Equal(t, s.Draws(), fromLog.Draws())
	assert.InDelta(t, s.Lengths().Mean(), fromLog.Lengths().Mean(), 1e-9)
}

func TestPlayGamesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := PlayGames(ctx, Options{NumGames: 1000, Threads: 2, X: easy, O: easy})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Less(t, s.Games(), 1000)
}

func TestSummary(t *testing.T) {
	s := NewSummary()
	s.Add(GameRecord{First: board.X, Result: game.Won, Winner: board.X, Moves: "3030303"})
	s.Add(GameRecord{First: board.O, Result: game.Won, Winner: board.X, Moves: "00112233"})
	s.Add(GameRecord{First: board.X, Result: game.Draw, Moves: strings.Repeat("0", 42)})
	s.Add(GameRecord{First: board.O, Result: game.Won, Winner: board.O, Moves: "3030303"})

	assert.Equal(t, 4, s.Games())
	assert.Equal(t, 2, s.Wins(board.X))
	assert.Equal(t, 1, s.Wins(board.O))
	assert.Equal(t, 1, s.Draws())
	assert.InDelta(t, 0.625, s.XScore().Value(), 1e-9)
	assert.Equal(t, 7.0, s.Lengths().Min())
	assert.Equal(t, 42.0, s.Lengths().Max())

	out := s.String()
	assert.Contains(t, out, "Games played: 4")
	assert.Contains(t, out, "Player who went first wins: 2 (50.000%)")
	assert.NotEmpty(t, s.Histogram())
}

func TestAnalyzeLogBadPlayer(t *testing.T) {
	_, err := analyzeLog(strings.NewReader("gameID,first,winner,length,moves\n0,Z,-,1,3\n"))
	assert.Error(t, err)
}
