// Package shell is the interactive front end: a readline loop that reads
// commands, drives a game.Game and lets the bot answer.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/ai/bot"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/puzzles"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("no game in progress; start one with `new`")
	errQuit              = errors.New("sending quit signal")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("option -%s: %w", key, err)
	}
	return i, nil
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a command line into the command, its positional
// arguments and its `-key value` options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		// "-1" is an argument, not an option.
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if _, err := strconv.Atoi(f); err != nil {
				if i == len(fields)-1 {
					return nil, errWrongOptionSyntax
				}
				options[f[1:]] = fields[i+1]
				i++
				continue
			}
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	game      *game.Game
	humanSide board.Player
	// opponentIsBot is false for two humans sharing the keyboard.
	opponentIsBot bool
	botcfg        bot.BotConfig
	bot           *bot.BotTurnPlayer

	curPuzzle *puzzles.Puzzle
	traceFile *os.File
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// NewShellController sets up the controller without a terminal; Loop
// attaches one.
func NewShellController(cfg *config.Config, out io.Writer) (*ShellController, error) {
	botcfg, err := bot.BotConfigFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	sc := &ShellController{
		out:           out,
		config:        cfg,
		humanSide:     board.X,
		opponentIsBot: cfg.GetString(config.ConfigOpponent) != "human",
		botcfg:        botcfg,
	}
	if err := sc.rebuildBot(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *ShellController) initReadline() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mconnect4>\033[0m ",
		HistoryFile:     sc.config.GetString(config.ConfigHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	sc.l = l
	sc.out = l.Stderr()
	return nil
}

func (sc *ShellController) rebuildBot() error {
	b, err := bot.NewBotTurnPlayer(sc.botcfg)
	if err != nil {
		return err
	}
	if sc.traceFile != nil {
		b.Solver().SetLogStream(sc.traceFile)
	}
	sc.bot = b
	return nil
}

func (sc *ShellController) IsPlaying() bool {
	return sc.game != nil && sc.game.Playing() == game.Playing
}

func (sc *ShellController) IsBotOnTurn() bool {
	return sc.opponentIsBot && sc.IsPlaying() && sc.game.PlayerOnTurn() != sc.humanSide
}

func (sc *ShellController) handle(line string) (*Response, error) {
	// A bare column number is a move.
	if _, err := strconv.Atoi(line); err == nil {
		line = "play " + line
	}
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "new", "n":
		return sc.newGame(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "ai", "aiplay", "a":
		return sc.aiplay(cmd)
	case "hint", "analyze":
		return sc.hint(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "show", "s", "b":
		return sc.show(cmd)
	case "set":
		return sc.set(cmd)
	case "puzzle":
		return sc.puzzle(cmd)
	case "load":
		return sc.load(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "trace":
		return sc.trace(cmd)
	case "script":
		return sc.script(cmd)
	case "help", "h", "?":
		return sc.help(cmd)
	case "exit", "bye", "quit":
		return nil, errQuit
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// Execute runs a single command line, such as one given on the command
// line of the binary.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.handle(line)
	if errors.Is(err, errQuit) {
		sig <- syscall.SIGINT
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	if err := sc.initReadline(); err != nil {
		log.Err(err).Msg("readline-init")
		sig <- syscall.SIGINT
		return
	}
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.handle(line)
		if errors.Is(err, errQuit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	if sc.traceFile != nil {
		sc.traceFile.Close()
	}
}
