package board

import (
	"fmt"
	"strings"
)

// ToDisplayText draws the board top row first, with a column index footer.
// Cell (row, col) is bit ColumnStride*col+row of each player's board.
func (p *Position) ToDisplayText() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		sb.WriteByte('|')
		for col := 0; col < Columns; col++ {
			if pl, ok := p.At(col, row); ok {
				sb.WriteByte(pl.Symbol())
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat("-", 2*Columns+1))
	sb.WriteByte('\n')
	for col := 0; col < Columns; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteString(" \n")
	return sb.String()
}

func (p Position) String() string {
	return p.ToDisplayText()
}

// FromMoveString replays a sequence of 0-indexed column digits, e.g.
// "3342", with first moving first and the sides alternating. Whitespace
// is ignored. It returns the position and the side to move next.
func FromMoveString(moves string, first Player) (Position, Player, error) {
	pos := NewPosition()
	onturn := first
	n := 0
	for _, r := range moves {
		if r == ' ' || r == '\t' || r == ',' {
			continue
		}
		if r < '0' || r > '9' {
			return pos, onturn, fmt.Errorf("move %d: %q is not a column", n+1, r)
		}
		if pos.HasWon(onturn.Opponent()) {
			return pos, onturn, fmt.Errorf("move %d: game already won by %v", n+1, onturn.Opponent())
		}
		col := int(r - '0')
		if err := pos.ApplyMove(onturn, col); err != nil {
			return pos, onturn, fmt.Errorf("move %d (column %d): %w", n+1, col, err)
		}
		onturn = onturn.Opponent()
		n++
	}
	return pos, onturn, nil
}

// MoveString formats a list of columns the way FromMoveString reads them.
func MoveString(cols []int) string {
	var sb strings.Builder
	for _, c := range cols {
		sb.WriteByte(byte('0' + c))
	}
	return sb.String()
}
