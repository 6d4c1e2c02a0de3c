package lua

import (
	"strings"

	"github.com/rickchristie/listen"
	lua "github.com/yuin/gopher-lua"
)

// newSandboxedState creates a Lua state with only the safe standard
// libraries: base, table, string and math.
func newSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug and package.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// installBuiltins adds the functions scripts use to talk to the engine.
func (l *Listener) installBuiltins() {
	l.L.SetGlobal("print", l.L.NewFunction(l.luaPrint))
	l.L.SetGlobal("raise_timeout", l.L.NewFunction(l.luaRaiseTimeout))
}

// luaPrint writes its arguments to the listen logger at info level.
func (l *Listener) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	listen.Logger().Info().Str("listener", l.name).Msg(strings.Join(parts, "\t"))
	return 0
}

// luaRaiseTimeout aborts the running method. The call fails with a
// TimeoutError carrying the given message.
func (l *Listener) luaRaiseTimeout(L *lua.LState) int {
	msg := L.OptString(1, "Listener timeout exceeded.")
	l.raised = &listen.TimeoutError{Message: msg}
	L.RaiseError("%s", msg)
	return 0
}
