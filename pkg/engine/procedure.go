package engine

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// procedure is a compiled template bound to its run's Lua state. The formal
// parameter list fixed at construction must match the argument order used at
// invocation; buildContext produces both from the same ordered Context.
type procedure struct {
	state *lua.LState
	fn    *lua.LFunction
}

// construct compiles source into a callable whose formal parameters are
// params, in order. suspendCapable selects the suspension-aware calling
// convention by installing the await helper before compilation. Parameter
// names are trusted to be unique valid identifiers; the Context type cannot
// produce duplicates.
func construct(L *lua.LState, source string, params []string, suspendCapable bool) (*procedure, error) {
	if suspendCapable {
		installAwait(L)
	}
	wrapped := "return function(" + strings.Join(params, ", ") + ")\n" + source + "\nend"
	if err := L.DoString(wrapped); err != nil {
		return nil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	fn, ok := ret.(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("compiled chunk did not yield a procedure, got %s", ret.Type())
	}
	return &procedure{state: L, fn: fn}, nil
}

// invoke binds args positionally in construction order and runs the
// procedure to completion. A runtime failure inside template code surfaces
// as the returned error; output already written stays written.
func (p *procedure) invoke(args []lua.LValue) error {
	return p.state.CallByParam(lua.P{
		Fn:      p.fn,
		NRet:    0,
		Protect: true,
	}, args...)
}
