// Package analysis scores every legal column for the side to move, so a
// human player can be shown why the engine prefers one move over another.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/heuristic"
	"github.com/domino14/connect4/search"
)

// ColumnScore is the minimax value of dropping a disc into Column.
type ColumnScore struct {
	Column int `json:"column"`
	Score  int `json:"score"`
}

// AnalyzeColumns runs one search per legal column on its own goroutine
// (at most threads at a time), each with a private solver and a private
// copy of pos. The result is sorted best-first for player, ties broken by
// the lower column, so its first entry is the column Solve would pick.
func AnalyzeColumns(ctx context.Context, pos board.Position, player board.Player,
	depth, threads int) ([]ColumnScore, error) {

	if pos.IsFull() {
		return nil, search.ErrNoLegalMoves
	}
	if threads < 1 {
		threads = 1
	}
	moves := pos.LegalMoves()
	scores := make([]ColumnScore, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, col := range moves {
		i, col := i, col
		g.Go(func() error {
			s := search.NewSolver(heuristic.ThreesEvaluator{})
			if err := s.SetMaxDepth(depth); err != nil {
				return err
			}
			score, err := s.ScoreMove(gctx, pos, player, col)
			if err != nil {
				return fmt.Errorf("column %d: %w", col, err)
			}
			log.Debug().Int("column", col).Int("score", score).Uint64("nodes", s.Nodes()).
				Msg("analyzed-column")
			scores[i] = ColumnScore{Column: col, Score: score}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if player.Maximizing() {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Score < scores[j].Score
	})
	return scores, nil
}

// Best returns the columns that share the best score.
func Best(scores []ColumnScore) []int {
	if len(scores) == 0 {
		return nil
	}
	top := scores[0].Score
	return lo.FilterMap(scores, func(cs ColumnScore, _ int) (int, bool) {
		return cs.Column, cs.Score == top
	})
}

// Summary formats scores as a table, one column per line.
func Summary(scores []ColumnScore) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-8s%s\n", "Column", "Score")
	lines := lo.Map(scores, func(cs ColumnScore, _ int) string {
		return fmt.Sprintf("%-8d%d", cs.Column, cs.Score)
	})
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n")
	return sb.String()
}
