package engine

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// toLua converts a capability value into a Lua value on L. Functions come in
// three accepted shapes: a raw lua.LGFunction, a chunk consumer func(string)
// as used for write, and a general func(string) (any, error) as used for a
// caller-supplied require. Data values cover the JSON-ish set plus
// lua.LValue passthrough; anything else is stringified.
func toLua(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return v
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case []any:
		tbl := L.NewTable()
		for _, e := range v {
			tbl.Append(toLua(L, e))
		}
		return tbl
	case map[string]any:
		tbl := L.NewTable()
		for k, e := range v {
			tbl.RawSetString(k, toLua(L, e))
		}
		return tbl
	case func(string):
		fn := v
		return L.NewFunction(func(L *lua.LState) int {
			fn(L.Get(1).String())
			return 0
		})
	case func(string) (any, error):
		fn := v
		return L.NewFunction(func(L *lua.LState) int {
			out, err := fn(L.CheckString(1))
			if err != nil {
				L.RaiseError("%v", err)
			}
			L.Push(toLua(L, out))
			return 1
		})
	case lua.LGFunction:
		return L.NewFunction(v)
	default:
		return lua.LString(fmt.Sprint(v))
	}
}

// overrideFromTable converts an include override table into a Context. Lua
// table iteration order is unspecified, so novel keys are collected and
// appended in sorted name order, keeping the nested parameter list
// deterministic. Non-string keys are ignored.
func overrideFromTable(tbl *lua.LTable) *Context {
	var names []string
	values := make(map[string]lua.LValue)
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		names = append(names, string(ks))
		values[string(ks)] = v
	})
	sort.Strings(names)

	ctx := NewContext()
	for _, name := range names {
		ctx.Set(name, values[name])
	}
	return ctx
}

// requireCapability returns the injected module loader bound to dir. Module
// paths beginning with ./ or ../ are rebased onto dir; everything else
// passes through untouched. Loading itself is delegated to the Lua runtime's
// own require, which the procedure's require parameter shadows but does not
// replace.
func requireCapability(dir string) lua.LGFunction {
	return func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.GetGlobal("require"))
		L.Push(lua.LString(resolveModulePath(dir, name)))
		L.Call(1, 1)
		return 1
	}
}

// resolveModulePath rewrites explicitly relative module paths against dir.
func resolveModulePath(dir, name string) string {
	if strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") {
		return filepath.Join(dir, name)
	}
	return name
}

// installAwait defines the await helper of the suspension-capable calling
// convention. await(fn) returns a wrapper that calls fn with the original
// arguments and, when fn yields a suspension handle, blocks until the nested
// run completes, raising its first error. Any other result passes through
// unchanged, so awaiting a plain function is harmless.
func installAwait(L *lua.LState) {
	L.SetGlobal("await", L.NewFunction(func(L *lua.LState) int {
		fn := L.CheckAny(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			nargs := L.GetTop()
			L.Push(fn)
			for i := 1; i <= nargs; i++ {
				L.Push(L.Get(i))
			}
			L.Call(nargs, 1)
			ret := L.Get(-1)
			L.Pop(1)

			if ud, ok := ret.(*lua.LUserData); ok {
				if h, ok := ud.Value.(*includeHandle); ok {
					if err := h.wait(L); err != nil {
						L.RaiseError("%v", err)
					}
					return 0
				}
			}
			L.Push(ret)
			return 1
		}))
		return 1
	}))
}
