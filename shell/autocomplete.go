package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/connect4/puzzles"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Args: []string{"x", "o", "random"},
	},
	"hint": {
		Options: []string{"-threads"},
	},
	"load": {
		Options: []string{"-first"},
	},
	"autoplay": {
		Options: []string{"-threads", "-plies", "-x", "-o", "-log", "-analyze"},
	},
	"set": {
		Args: []string{"depth", "difficulty", "opponent", "timeout"},
	},
	"trace": {
		Args: []string{"off"},
	},
	"help": {
		Args: []string{"set", "hint", "autoplay", "puzzle", "script"},
	},
}

var commandNames = []string{
	"new", "play", "ai", "hint", "undo", "show", "set", "load", "puzzle",
	"autoplay", "trace", "script", "help", "exit",
}

var difficulties = []string{"easy", "medium", "hard"}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}

	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-x" || lastCompleteField == "-o":
			completions = append(difficulties[:len(difficulties):len(difficulties)], "random")
		case lastCompleteField == "difficulty":
			completions = difficulties
		case lastCompleteField == "-first":
			completions = []string{"x", "o", "random"}
		case lastCompleteField == "opponent":
			completions = []string{"bot", "human"}
		case cmdName == "puzzle":
			if ps, err := puzzles.All(); err == nil {
				completions = append([]string{"list", "find"},
					lo.Map(ps, func(p puzzles.Puzzle, _ int) string { return p.Name })...)
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
