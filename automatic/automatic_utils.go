package automatic

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/connect4/ai/bot"
	"github.com/domino14/connect4/board"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var csvHeader = []string{"gameID", "first", "winner", "length", "moves"}

// Options configures a batch of automatic games.
type Options struct {
	NumGames     int
	Threads      int
	OpeningPlies int
	X, O         bot.BotConfig
	// Random marks sides played by a bot.RandomPlayer instead, indexed by
	// board.Player.
	Random [2]bool
	// Log, if set, receives one CSV line per finished game.
	Log io.Writer
}

// PlayGames plays opts.NumGames games on opts.Threads workers and
// summarizes them. If ctx ends early, the games finished so far are
// summarized and ctx's error is returned alongside.
func PlayGames(ctx context.Context, opts Options) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	log.Debug().Int("games", opts.NumGames).Int("threads", opts.Threads).Msg("starting-cvc")
	CVCCounter.Set(0)

	var csvw *csv.Writer
	if opts.Log != nil {
		csvw = csv.NewWriter(opts.Log)
		if err := csvw.Write(csvHeader); err != nil {
			return nil, err
		}
	}

	jobs := make(chan int, 100)
	var mu sync.Mutex
	summary := NewSummary()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < opts.NumGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("got stop signal, exiting soon...")
				return nil
			}
		}
		return nil
	})

	for t := 0; t < opts.Threads; t++ {
		g.Go(func() error {
			r, err := NewGameRunner(opts.X, opts.O, opts.OpeningPlies)
			if err != nil {
				return err
			}
			for p, random := range opts.Random {
				if random {
					r.SetPlayer(board.Player(p), bot.RandomPlayer{})
				}
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for id := range jobs {
				rec, err := r.PlayGame(gctx, id)
				if err != nil {
					return err
				}
				CVCCounter.Add(1)
				mu.Lock()
				summary.Add(rec)
				if csvw != nil {
					err = csvw.Write(rec.csvRecord())
				}
				mu.Unlock()
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	err := g.Wait()
	if csvw != nil {
		csvw.Flush()
		if ferr := csvw.Error(); ferr != nil && err == nil {
			err = ferr
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	log.Info().Int("games", summary.Games()).Msg("all-games-finished")
	return summary, err
}
