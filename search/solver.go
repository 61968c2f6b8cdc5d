// Package search picks moves with a depth-limited minimax search with
// alpha-beta pruning over a private copy of the position.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/heuristic"
)

const (
	DefaultMaxDepth = 10

	// WinScore is returned for a node where the side that just moved has
	// connected four: positive if that side is the maximizer.
	WinScore = 1000
	// DrawScore is returned for a full board with no winner.
	DrawScore = 0

	// The root search window.
	MinScore = -WinScore
	MaxScore = WinScore

	// unset seeds the best value at each node; it is outside any reachable
	// score so the first legal column always replaces it.
	unset = 10000

	// leafBonus is added at the depth cutoff in favour of the side to move
	// at the leaf. It only breaks ties between equal frontier scores.
	leafBonus = 1
)

var (
	ErrNoLegalMoves  = errors.New("no legal moves; the board is full")
	ErrInvalidDepth  = errors.New("depth must be between 1 and the number of cells")
	errMoveIsIllegal = errors.New("cannot score an illegal move")
)

// Result is what a search returns to the game loop.
type Result struct {
	// Column is the chosen move, or -1 if there was none.
	Column int
	Score  int
	// Depth is the depth bound of the search that produced this result.
	Depth   int
	Nodes   uint64
	PV      PVLine
	Elapsed time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("column %d, score %d (depth %d, %d nodes, %v)",
		r.Column, r.Score, r.Depth, r.Nodes, r.Elapsed)
}

// Solver holds search settings and the scratch state of the search in
// progress. A Solver is not safe for concurrent use; give each goroutine
// its own.
type Solver struct {
	evaluator heuristic.Evaluator
	maxDepth  int

	pruningDisabled         bool
	iterativeDeepeningOptim bool

	// scratch state, valid during a search
	pos   board.Position
	depth int // depth bound of the current iteration
	nodes uint64
	done  <-chan struct{}

	logStream io.Writer
}

// NewSolver returns a solver using the given evaluator (the three-in-a-row
// differential if nil) and the default depth.
func NewSolver(e heuristic.Evaluator) *Solver {
	if e == nil {
		e = heuristic.ThreesEvaluator{}
	}
	return &Solver{evaluator: e, maxDepth: DefaultMaxDepth}
}

// SetMaxDepth sets the depth bound, in plies from the root.
func (s *Solver) SetMaxDepth(d int) error {
	if d < 1 || d > board.Rows*board.Columns {
		return ErrInvalidDepth
	}
	s.maxDepth = d
	return nil
}

func (s *Solver) MaxDepth() int {
	return s.maxDepth
}

// SetPruning turns alpha-beta cutoffs on or off. With pruning off the search
// is plain minimax; results are identical, only slower.
func (s *Solver) SetPruning(p bool) {
	s.pruningDisabled = !p
}

// SetIterativeDeepening makes Solve search depths 1..MaxDepth in turn. If the
// context ends part way, the result of the deepest completed iteration is
// returned.
func (s *Solver) SetIterativeDeepening(id bool) {
	s.iterativeDeepeningOptim = id
}

// SetLogStream enables a trace of every node visited. It is very verbose;
// use it only with small depths.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Solve returns the best column for onturn and its minimax value. The
// position is copied; the caller's value is never modified.
func (s *Solver) Solve(ctx context.Context, pos board.Position, onturn board.Player) (Result, error) {
	if pos.IsFull() {
		return Result{Column: -1}, ErrNoLegalMoves
	}
	log.Debug().Int("max-depth", s.maxDepth).Stringer("onturn", onturn).
		Bool("pruning", !s.pruningDisabled).
		Bool("iterative-deepening", s.iterativeDeepeningOptim).
		Msg("minimax-solve-config")

	tstart := time.Now()
	s.done = ctx.Done()
	var res Result
	var err error
	if s.iterativeDeepeningOptim {
		res, err = s.iterativelyDeepen(ctx, pos, onturn)
	} else {
		res, err = s.searchRoot(ctx, pos, onturn, s.maxDepth)
	}
	res.Elapsed = time.Since(tstart)
	if err != nil {
		return res, err
	}
	log.Info().
		Int("column", res.Column).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Str("pv", res.PV.String()).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")
	return res, nil
}

func (s *Solver) iterativelyDeepen(ctx context.Context, pos board.Position, onturn board.Player) (Result, error) {
	var best Result
	var nodes uint64
	for d := 1; d <= s.maxDepth; d++ {
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "- ply: %d\n", d)
		}
		res, err := s.searchRoot(ctx, pos, onturn, d)
		nodes += res.Nodes
		if err != nil {
			if d > 1 && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
				log.Debug().Int("completed-depth", best.Depth).Msg("search-interrupted")
				best.Nodes = nodes
				return best, nil
			}
			return res, err
		}
		log.Debug().Int("ply", d).Int("score", res.Score).Str("pv", res.PV.String()).Msg("best-val")
		best = res
		// A forced result does not change with more depth.
		if res.Score == WinScore || res.Score == -WinScore {
			break
		}
	}
	best.Nodes = nodes
	return best, nil
}

func (s *Solver) searchRoot(ctx context.Context, pos board.Position, onturn board.Player, depth int) (Result, error) {
	s.pos = pos
	s.depth = depth
	s.nodes = 0
	pv := PVLine{}
	score, err := s.minimax(ctx, 0, onturn, MinScore, MaxScore, &pv)
	res := Result{Column: -1, Depth: depth, Nodes: s.nodes}
	if err != nil {
		return res, err
	}
	res.Score = score
	res.PV = pv.Copy()
	if len(pv.Moves) > 0 {
		res.Column = pv.Moves[0]
	}
	return res, nil
}

// ScoreMove returns the value the root of Solve would assign to col: the
// search continues below col with a full window.
func (s *Solver) ScoreMove(ctx context.Context, pos board.Position, onturn board.Player, col int) (int, error) {
	if err := pos.Legal(col); err != nil {
		return 0, fmt.Errorf("%w: %w", errMoveIsIllegal, err)
	}
	s.done = ctx.Done()
	s.pos = pos
	s.depth = s.maxDepth
	s.nodes = 0
	s.pos.Play(onturn, col)
	pv := PVLine{}
	return s.minimax(ctx, 1, onturn.Opponent(), MinScore, MaxScore, &pv)
}

// Nodes returns the number of nodes visited by the last search iteration.
func (s *Solver) Nodes() uint64 {
	return s.nodes
}

func (s *Solver) interrupted() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// playAndSearch drops onturn's disc into col, searches the reply and takes
// the disc back, whatever the outcome.
func (s *Solver) playAndSearch(ctx context.Context, depth int, onturn board.Player, col int, α, β int, pv *PVLine) (int, error) {
	s.pos.Play(onturn, col)
	defer s.pos.Unplay(onturn, col)
	return s.minimax(ctx, depth+1, onturn.Opponent(), α, β, pv)
}

// minimax returns the value of the scratch position with onturn to move.
// depth counts plies from the root.
func (s *Solver) minimax(ctx context.Context, depth int, onturn board.Player, α, β int, pv *PVLine) (int, error) {
	s.nodes++

	// The side that just moved may have connected four. This is checked
	// before the depth cutoff so a win on the last ply is never missed.
	if depth > 0 {
		mover := onturn.Opponent()
		if s.pos.HasWon(mover) {
			if mover.Maximizing() {
				return WinScore, nil
			}
			return -WinScore, nil
		}
	}

	if depth == s.depth {
		bonus := -leafBonus
		if onturn.Maximizing() {
			bonus = leafBonus
		}
		return s.evaluator.Evaluate(&s.pos) + bonus, nil
	}

	maximizing := onturn.Maximizing()
	bestValue := unset
	if maximizing {
		bestValue = -unset
	}
	indent := 2 * depth
	if s.logStream != nil {
		fmt.Fprintf(s.logStream, "  %vcolumns:\n", strings.Repeat(" ", indent))
	}
	childPV := PVLine{}
	moved := false

	for col := 0; col < board.Columns; col++ {
		if !s.pos.Heights.Free(col) {
			continue
		}
		if s.interrupted() {
			return 0, ctx.Err()
		}
		moved = true
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  %v- column: %d\n", strings.Repeat(" ", indent), col)
		}

		value, err := s.playAndSearch(ctx, depth, onturn, col, α, β, &childPV)
		if err != nil {
			return value, err
		}

		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  %v  value: %v\n", strings.Repeat(" ", indent), value)
		}
		if maximizing {
			if value > bestValue {
				bestValue = value
				pv.Update(col, childPV, value)
			}
			α = max(α, value)
		} else {
			if value < bestValue {
				bestValue = value
				pv.Update(col, childPV, value)
			}
			β = min(β, value)
		}
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  %v  α: %v\n", strings.Repeat(" ", indent), α)
			fmt.Fprintf(s.logStream, "  %v  β: %v\n", strings.Repeat(" ", indent), β)
		}
		childPV.Clear()
		if !s.pruningDisabled && β < α {
			break
		}
	}
	if !moved {
		// Full board and nobody connected: a draw.
		return DrawScore, nil
	}
	return bestValue, nil
}
