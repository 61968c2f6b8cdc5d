package search

import (
	"fmt"
	"strings"
)

// PVLine is the principal variation: the line of best play found below a
// node, as a list of columns.
type PVLine struct {
	Moves []int
	score int
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = pvLine.Moves[:0]
}

// Update the principal variation line with a new best move,
// and a new line of best play after the best move.
func (pvLine *PVLine) Update(col int, newPVLine PVLine, score int) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, col)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.score = score
}

// Copy returns a PVLine that does not share storage with pvLine.
func (pvLine PVLine) Copy() PVLine {
	return PVLine{Moves: append([]int(nil), pvLine.Moves...), score: pvLine.score}
}

func (pvLine PVLine) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %d;", pvLine.score)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&sb, " %d: %d", i+1, m)
	}
	return sb.String()
}
