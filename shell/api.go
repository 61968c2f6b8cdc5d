package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/connect4/ai/bot"
	"github.com/domino14/connect4/analysis"
	"github.com/domino14/connect4/automatic"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/puzzles"
	"github.com/domino14/connect4/search"
)

func (sc *ShellController) parseFirst(s string) (board.Player, error) {
	if s == "" {
		s = sc.config.GetString(config.ConfigFirst)
	}
	if strings.ToLower(s) == "random" {
		return board.Player(frand.Intn(2)), nil
	}
	return board.PlayerFromString(s)
}

// afterMove reports the state of the game and, if the bot is on turn,
// lets it reply.
func (sc *ShellController) afterMove(sb *strings.Builder) error {
	for sc.IsBotOnTurn() {
		col, err := sc.bot.ChooseMove(context.Background(), sc.game)
		if err != nil {
			return err
		}
		if err := sc.game.PlayMove(col); err != nil {
			return err
		}
		fmt.Fprintf(sb, "%s plays column %d", sc.bot.Name(), col)
		if res := sc.bot.LastResult(); res.Column == col {
			fmt.Fprintf(sb, " (score %d, %d nodes)", res.Score, res.Nodes)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(sc.game.ToDisplayText())
	switch sc.game.Playing() {
	case game.Won:
		w, _ := sc.game.Winner()
		fmt.Fprintf(sb, "Game over: %v wins.\n", w)
	case game.Draw:
		sb.WriteString("Game over: draw.\n")
	}
	return nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	var arg string
	if len(cmd.args) > 0 {
		arg = cmd.args[0]
	}
	first, err := sc.parseFirst(arg)
	if err != nil {
		return nil, err
	}
	sc.game = game.NewGame(first)
	sc.humanSide = board.X
	sc.curPuzzle = nil
	log.Debug().Stringer("first", first).Bool("vs-bot", sc.opponentIsBot).Msg("new-game")

	sb := &strings.Builder{}
	if sc.IsBotOnTurn() {
		sb.WriteString("Opponent goes first\n")
	}
	if err := sc.afterMove(sb); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <column>")
	}
	col, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, fmt.Errorf("%q is not a column number", cmd.args[0])
	}
	if sc.IsBotOnTurn() {
		return nil, errors.New("it is not your turn")
	}
	if err := sc.game.PlayMove(col); err != nil {
		return nil, err
	}
	sb := &strings.Builder{}
	if sc.curPuzzle != nil {
		if sc.puzzleAnswered(col) {
			sb.WriteString("Correct!\n")
		} else {
			fmt.Fprintf(sb, "Not quite. The answer was %v.\n", sc.curPuzzle.Columns)
		}
		sc.curPuzzle = nil
	}
	if err := sc.afterMove(sb); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) puzzleAnswered(col int) bool {
	for _, c := range sc.curPuzzle.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// aiplay makes the bot move for whoever is on turn.
func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.IsPlaying() {
		return nil, game.ErrGameOver
	}
	col, err := sc.bot.ChooseMove(context.Background(), sc.game)
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(col); err != nil {
		return nil, err
	}
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "%s plays column %d\n", sc.bot.Name(), col)
	sc.curPuzzle = nil
	if err := sc.afterMove(sb); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if !sc.IsPlaying() {
		return nil, errNoGame
	}
	depth := sc.botcfg.MaxDepth
	if len(cmd.args) > 0 {
		d, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		depth = d
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	tstart := time.Now()
	scores, err := analysis.AnalyzeColumns(context.Background(), sc.game.Position(),
		sc.game.PlayerOnTurn(), depth, threads)
	if err != nil {
		return nil, err
	}
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Depth %d, %v to move (%.2fs)\n", depth, sc.game.PlayerOnTurn(),
		time.Since(tstart).Seconds())
	sb.WriteString(analysis.Summary(scores))
	fmt.Fprintf(sb, "Best: %v\n", analysis.Best(scores))
	return msg(sb.String()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.game.UnplayLastMove(); err != nil {
		return nil, err
	}
	// Take back the bot's reply too, so it is the human's turn again.
	if sc.IsBotOnTurn() && sc.game.Turn() > 0 {
		if err := sc.game.UnplayLastMove(); err != nil {
			return nil, err
		}
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) settingsText() string {
	keys := []string{"depth", "difficulty", "opponent", "timeout"}
	out := strings.Builder{}
	out.WriteString("Settings:\n")
	for _, key := range keys {
		val, _ := sc.showSetting(key)
		out.WriteString("  " + key + ": " + val + "\n")
	}
	return out.String()
}

func (sc *ShellController) showSetting(key string) (string, error) {
	switch key {
	case "depth":
		return strconv.Itoa(sc.botcfg.MaxDepth), nil
	case "difficulty":
		return sc.botcfg.Difficulty.String(), nil
	case "opponent":
		if sc.opponentIsBot {
			return "bot", nil
		}
		return "human", nil
	case "timeout":
		return sc.botcfg.Timeout.String(), nil
	}
	return "", errors.New("no such option: " + key)
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.settingsText()), nil
	}
	opt := cmd.args[0]
	if len(cmd.args) == 1 {
		val, err := sc.showSetting(opt)
		if err != nil {
			return nil, err
		}
		return msg(val), nil
	}
	value := cmd.args[1]
	botcfg := sc.botcfg
	switch opt {
	case "depth":
		d, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if d < 1 || d > board.Rows*board.Columns {
			return nil, search.ErrInvalidDepth
		}
		botcfg.MaxDepth = d
	case "difficulty":
		d, err := bot.ParseDifficulty(value)
		if err != nil {
			return nil, err
		}
		botcfg.Difficulty = d
	case "timeout":
		t, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		botcfg.Timeout = t
	case "opponent":
		switch value {
		case "bot":
			sc.opponentIsBot = true
		case "human":
			sc.opponentIsBot = false
		default:
			return nil, errors.New("opponent must be bot or human")
		}
		return msg("set opponent to " + value), nil
	default:
		return nil, errors.New("no such option: " + opt)
	}
	sc.botcfg = botcfg
	if err := sc.rebuildBot(); err != nil {
		return nil, err
	}
	return msg("set " + opt + " to " + value), nil
}

func (sc *ShellController) puzzle(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 || cmd.args[0] == "list" {
		ps, err := puzzles.All()
		if err != nil {
			return nil, err
		}
		sb := &strings.Builder{}
		for _, p := range ps {
			fmt.Fprintf(sb, "%-16s%s\n", p.Name, p.Description)
		}
		return msg(sb.String()), nil
	}
	if cmd.args[0] == "find" {
		return sc.findPuzzles(cmd)
	}
	p, err := puzzles.Get(cmd.args[0])
	if err != nil {
		return nil, err
	}
	g, err := p.Game()
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.humanSide = g.PlayerOnTurn()
	sc.curPuzzle = &p
	return msg(fmt.Sprintf("%s\n%v to move. %s\n", g.ToDisplayText(), sc.humanSide, p.Description)), nil
}

// findPuzzles lists the forced wins that were available in the current
// game, move by move.
func (sc *ShellController) findPuzzles(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	depth := sc.botcfg.MaxDepth
	if len(cmd.args) > 1 {
		d, err := strconv.Atoi(cmd.args[1])
		if err != nil {
			return nil, err
		}
		depth = d
	}
	ps, err := puzzles.FromGame(context.Background(), sc.game, depth)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return msg(fmt.Sprintf("no forced wins found at depth %d", depth)), nil
	}
	sb := &strings.Builder{}
	for _, p := range ps {
		fmt.Fprintf(sb, "%-10s%v to move after %q: play %v\n", p.Name, p.First, p.Moves, p.Columns)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load <moves> [-first x|o]")
	}
	first, err := sc.parseFirst(cmd.options.String("first"))
	if err != nil {
		return nil, err
	}
	g, err := game.NewFromMoves(strings.Join(cmd.args, ""), first)
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.curPuzzle = nil
	sc.humanSide = g.PlayerOnTurn()
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if fn := cmd.options.String("analyze"); fn != "" {
		summary, err := automatic.AnalyzeLogFile(fn)
		if err != nil {
			return nil, err
		}
		return msg(summary.String()), nil
	}
	n := 100
	if len(cmd.args) > 0 {
		var err error
		if n, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	plies, err := cmd.options.IntDefault("plies", sc.config.GetInt(config.ConfigOpeningPlies))
	if err != nil {
		return nil, err
	}
	opts := automatic.Options{
		NumGames:     n,
		Threads:      threads,
		OpeningPlies: plies,
		X:            sc.botcfg,
		O:            sc.botcfg,
	}
	names := [2]string{}
	for p, cfg := range map[board.Player]*bot.BotConfig{board.X: &opts.X, board.O: &opts.O} {
		v := cmd.options.String(strings.ToLower(p.String()))
		switch v {
		case "":
		case "random":
			opts.Random[p] = true
		default:
			if cfg.Difficulty, err = bot.ParseDifficulty(v); err != nil {
				return nil, err
			}
		}
		names[p] = cfg.Difficulty.String()
		if opts.Random[p] {
			names[p] = "random"
		}
	}
	if fn := cmd.options.String("log"); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		opts.Log = f
	}
	sc.showMessage(fmt.Sprintf("playing %d games (%v vs %v) on %d threads...",
		n, names[board.X], names[board.O], threads))
	summary, err := automatic.PlayGames(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	return msg(summary.String()), nil
}

// trace writes the bot's search tree to a file. It gets large quickly.
func (sc *ShellController) trace(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: trace <file>|off")
	}
	if sc.traceFile != nil {
		sc.traceFile.Close()
		sc.traceFile = nil
	}
	if cmd.args[0] == "off" {
		sc.bot.Solver().SetLogStream(nil)
		return msg("trace off"), nil
	}
	f, err := os.Create(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.traceFile = f
	sc.bot.Solver().SetLogStream(f)
	return msg("search trace will be written to " + cmd.args[0]), nil
}
