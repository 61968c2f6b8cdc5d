package automatic

import (
	"bytes"
	"fmt"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/stats"
)

const (
	confidence = 95
	histBins   = 10
	histWidth  = 40
)

// Summary accumulates the results of a batch of games.
type Summary struct {
	wins         [2]int
	draws        int
	firstWins    int
	lengths      stats.Statistic
	lengthValues []float64
}

func NewSummary() *Summary {
	return &Summary{}
}

func (s *Summary) Add(r GameRecord) {
	switch r.Result {
	case game.Won:
		s.wins[r.Winner]++
		if r.Winner == r.First {
			s.firstWins++
		}
	case game.Draw:
		s.draws++
	}
	s.lengths.Push(float64(r.Length()))
	s.lengthValues = append(s.lengthValues, float64(r.Length()))
}

func (s *Summary) Games() int {
	return s.lengths.Iterations()
}

func (s *Summary) Wins(p board.Player) int {
	return s.wins[p]
}

func (s *Summary) Draws() int {
	return s.draws
}

// Lengths summarizes game lengths in plies.
func (s *Summary) Lengths() *stats.Statistic {
	return &s.lengths
}

// XScore is X's share of the points, counting a draw as half a win.
func (s *Summary) XScore() stats.Proportion {
	// Proportion counts whole hits, so score in half points.
	return stats.Proportion{Hits: 2*s.wins[board.X] + s.draws, Total: 2 * s.Games()}
}

// Histogram draws the distribution of game lengths.
func (s *Summary) Histogram() string {
	if len(s.lengthValues) == 0 {
		return ""
	}
	var buf bytes.Buffer
	hist := histogram.Hist(histBins, s.lengthValues)
	if err := histogram.Fprint(&buf, hist, histogram.Linear(histWidth)); err != nil {
		log.Err(err).Msg("histogram-print")
		return ""
	}
	return buf.String()
}

func (s *Summary) String() string {
	n := s.Games()
	if n == 0 {
		return "No games played.\n"
	}
	pct := func(k int) float64 { return 100 * float64(k) / float64(n) }
	xs := s.XScore()

	str := fmt.Sprintf("Games played: %d\n", n)
	str += fmt.Sprintf("X wins: %d (%.3f%%)\n", s.wins[board.X], pct(s.wins[board.X]))
	str += fmt.Sprintf("O wins: %d (%.3f%%)\n", s.wins[board.O], pct(s.wins[board.O]))
	str += fmt.Sprintf("Draws: %d (%.3f%%)\n", s.draws, pct(s.draws))
	str += fmt.Sprintf("Player who went first wins: %d (%.3f%%)\n", s.firstWins, pct(s.firstWins))
	str += fmt.Sprintf("X score: %.3f ± %.3f (%d%% confidence)\n",
		xs.Value(), xs.Margin(confidence), confidence)
	str += fmt.Sprintf("Game length: mean %.2f  stdev %.2f  min %.0f  max %.0f\n",
		s.lengths.Mean(), s.lengths.Stdev(), s.lengths.Min(), s.lengths.Max())
	str += s.Histogram()
	return str
}
