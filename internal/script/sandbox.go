package script

import lua "github.com/yuin/gopher-lua"

// newSandboxedState creates a Lua state with only the safe standard
// libraries opened.
func newSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})

	// Base library (print, type, pairs, ipairs, etc.) plus the pure ones.
	// io, os, debug and package are never opened.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}
