package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

// scriptCommands are exposed to lua as lineword_<name>.
var scriptCommands = []string{
	"new", "deal", "draw", "place", "remove", "submit", "reset", "show",
	"rack", "score", "bag", "history", "state", "autoplay", "analyze", "seeds",
}

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("lineword_shell")
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

// luaCommand runs one shell command with the string argument as the rest of
// its command line. Errors come back to lua as a string starting with
// ERROR: so that scripts can keep going.
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		lv := L.OptString(1, "")
		sc := getShell(L)
		cmd, err := extractFields(name + " " + lv)
		if err != nil {
			log.Err(err).Msg("error-parsing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		r, err := sc.dispatch(cmd)
		if err != nil {
			log.Err(err).Msg("error-executing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		if r == nil {
			return 0
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("lineword_shell", lsc)
	for _, name := range scriptCommands {
		L.SetGlobal("lineword_"+name, L.NewFunction(luaCommand(name)))
	}

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg("ran " + filepath), nil
}
