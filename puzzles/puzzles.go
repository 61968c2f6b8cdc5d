// Package puzzles is a small catalogue of named positions with known best
// moves. They serve as regression tests for the search and as practice
// positions in the shell.
package puzzles

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/search"
)

//go:embed puzzles.yaml
var catalogue []byte

type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	// Open means the search does not see a forced result.
	Open Outcome = "open"
)

// OutcomeOf classifies score from the point of view of onturn.
func OutcomeOf(score int, onturn board.Player) Outcome {
	if !onturn.Maximizing() {
		score = -score
	}
	switch score {
	case search.WinScore:
		return Win
	case -search.WinScore:
		return Loss
	}
	return Open
}

type Puzzle struct {
	Name        string  `yaml:"name"`
	Moves       string  `yaml:"moves"`
	First       string  `yaml:"first"`
	Depth       int     `yaml:"depth"`
	Columns     []int   `yaml:"columns"`
	Outcome     Outcome `yaml:"outcome"`
	Description string  `yaml:"description"`
}

// Position replays the puzzle's moves and returns the side to move.
func (p *Puzzle) Position() (board.Position, board.Player, error) {
	first, err := board.PlayerFromString(p.First)
	if err != nil {
		return board.Position{}, board.O, fmt.Errorf("puzzle %s: %w", p.Name, err)
	}
	return board.FromMoveString(p.Moves, first)
}

// Game returns the puzzle position as a game in progress.
func (p *Puzzle) Game() (*game.Game, error) {
	first, err := board.PlayerFromString(p.First)
	if err != nil {
		return nil, fmt.Errorf("puzzle %s: %w", p.Name, err)
	}
	return game.NewFromMoves(p.Moves, first)
}

// Check reports whether res is a correct answer to the puzzle.
func (p *Puzzle) Check(res search.Result, onturn board.Player) bool {
	return slices.Contains(p.Columns, res.Column) && OutcomeOf(res.Score, onturn) == p.Outcome
}

var (
	loadOnce sync.Once
	all      []Puzzle
	loadErr  error
)

func load() {
	loadErr = yaml.Unmarshal(catalogue, &all)
	if loadErr != nil {
		loadErr = fmt.Errorf("decoding puzzle catalogue: %w", loadErr)
		return
	}
	log.Debug().Int("puzzles", len(all)).Msg("loaded-puzzles")
}

// All returns every puzzle in the catalogue, in file order.
func All() ([]Puzzle, error) {
	loadOnce.Do(load)
	return slices.Clone(all), loadErr
}

// Get returns the named puzzle.
func Get(name string) (Puzzle, error) {
	ps, err := All()
	if err != nil {
		return Puzzle{}, err
	}
	for _, p := range ps {
		if p.Name == name {
			return p, nil
		}
	}
	return Puzzle{}, fmt.Errorf("no puzzle named %q", name)
}

// FromGame walks through a game and returns the positions where
// the side to move had a forced win it could find within depth plies, but
// no immediate one. The moves actually played are not considered.
func FromGame(ctx context.Context, g *game.Game, depth int) ([]Puzzle, error) {
	s := search.NewSolver(nil)
	if err := s.SetMaxDepth(depth); err != nil {
		return nil, err
	}
	quick := search.NewSolver(nil)
	if err := quick.SetMaxDepth(1); err != nil {
		return nil, err
	}
	moves := g.MoveString()
	first := g.FirstPlayer()
	puzzles := []Puzzle{}
	for turn := 0; turn < len(moves); turn++ {
		pos, onturn, err := board.FromMoveString(moves[:turn], first)
		if err != nil {
			return nil, err
		}
		if r, err := quick.Solve(ctx, pos, onturn); err != nil {
			return nil, err
		} else if OutcomeOf(r.Score, onturn) == Win {
			continue
		}
		res, err := s.Solve(ctx, pos, onturn)
		if err != nil {
			return nil, err
		}
		if OutcomeOf(res.Score, onturn) != Win {
			continue
		}
		puzzles = append(puzzles, Puzzle{
			Name:    fmt.Sprintf("turn-%d", turn+1),
			Moves:   moves[:turn],
			First:   first.String(),
			Depth:   depth,
			Columns: []int{res.Column},
			Outcome: Win,
		})
	}
	return puzzles, nil
}
