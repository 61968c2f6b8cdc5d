package game

import (
	"fmt"
	"strings"

	"github.com/domino14/connect4/board"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

// ToDisplayText renders the board with the game state alongside it.
func (g *Game) ToDisplayText() string {
	bt := g.pos.ToDisplayText()
	bts := strings.Split(strings.TrimRight(bt, "\n"), "\n")
	hpadding := 3

	for i, p := range [2]board.Player{g.first, g.first.Opponent()} {
		marker := " "
		if g.playing == Playing && p == g.onturn {
			marker = ">"
		}
		addText(bts, 1+i, hpadding, fmt.Sprintf("%s player %v", marker, p))
	}
	addText(bts, 4, hpadding, fmt.Sprintf("Turn %d", g.Turn()))
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		addText(bts, 5, hpadding, fmt.Sprintf("Last: %v played column %d", last.Player, last.Column))
	}
	switch g.playing {
	case Won:
		addText(bts, 6, hpadding, fmt.Sprintf("Game is over. %v wins.", g.winner))
	case Draw:
		addText(bts, 6, hpadding, "Game is over. It's a draw.")
	}
	return strings.Join(bts, "\n") + "\n"
}
