// bench times the search on the puzzle catalogue and the empty board,
// with and without alpha-beta pruning.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/puzzles"
	"github.com/domino14/connect4/search"
	"github.com/domino14/connect4/stats"
)

type benchCase struct {
	name   string
	pos    board.Position
	onturn board.Player
	depth  int
}

func main() {
	depth := pflag.Int("depth", search.DefaultMaxDepth, "depth for the empty-board case")
	reps := pflag.Int("reps", 3, "repetitions per case")
	noPruning := pflag.Bool("compare-minimax", false, "also run without pruning (slow)")
	pflag.Parse()
	zerolog.SetGlobalLevel(zerolog.Disabled)

	cases := []benchCase{{"empty", board.NewPosition(), board.X, *depth}}
	ps, err := puzzles.All()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, p := range ps {
		pos, onturn, err := p.Position()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cases = append(cases, benchCase{p.Name, pos, onturn, p.Depth})
	}

	modes := []bool{true}
	if *noPruning {
		modes = append(modes, false)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "case\tdepth\tpruning\tcolumn\tscore\tnodes\tms (mean ± stdev)")
	for _, c := range cases {
		for _, pruning := range modes {
			s := search.NewSolver(nil)
			if err := s.SetMaxDepth(c.depth); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			s.SetPruning(pruning)
			var times stats.Statistic
			var res search.Result
			for i := 0; i < *reps; i++ {
				res, err = s.Solve(context.Background(), c.pos, c.onturn)
				if err != nil {
					fmt.Fprintln(os.Stderr, c.name, err)
					os.Exit(1)
				}
				times.Push(float64(res.Elapsed.Microseconds()) / 1000)
			}
			fmt.Fprintf(w, "%s\t%d\t%v\t%d\t%d\t%d\t%.2f ± %.2f\n", c.name, c.depth, pruning,
				res.Column, res.Score, res.Nodes, times.Mean(), times.Stdev())
		}
	}
	w.Flush()
}
