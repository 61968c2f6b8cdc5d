package shell

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("c4_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand wraps a shell command so a script can call it with a single
// string argument, e.g. c4_play("3"). The command's output is returned as
// a string; on failure the string starts with "ERROR: ".
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := name
		if L.GetTop() > 0 {
			line += " " + L.ToString(1)
		}
		sc := getShell(L)
		r, err := sc.handle(strings.TrimSpace(line))
		if err != nil {
			log.Err(err).Str("command", name).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		if r == nil {
			L.Push(lua.LString(""))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

// luaState returns the current game state to a script as
// (state, winner, moves), e.g. ("won", "X", "3030303").
func luaState(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LString("none"))
		L.Push(lua.LNil)
		L.Push(lua.LString(""))
		return 3
	}
	L.Push(lua.LString(sc.game.Playing().String()))
	if w, ok := sc.game.Winner(); ok {
		L.Push(lua.LString(w.String()))
	} else {
		L.Push(lua.LNil)
	}
	L.Push(lua.LString(sc.game.MoveString()))
	return 3
}

var scriptCommands = []string{"new", "play", "ai", "hint", "undo", "show", "set", "load", "puzzle", "autoplay"}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("c4_shell", lsc)
	for _, c := range scriptCommands {
		L.SetGlobal("c4_"+c, L.NewFunction(luaCommand(c)))
	}
	L.SetGlobal("c4_state", L.NewFunction(luaState))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg("script " + filepath + " finished"), nil
}
