package bot

import (
	"fmt"
	"strings"
)

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// MediumDepth is the search depth of the medium bot.
const MediumDepth = 4

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Hard, fmt.Errorf("unknown difficulty %q", s)
}
