package engine

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
)

// includeCapability returns the injected include capability bound to dir,
// the including file's directory, and parent, that file's full
// post-injection context. The nested context is always a copy: a clone of
// parent overwritten key-by-key by the optional override table.
//
// In blocking mode the nested pipeline runs to completion inline and a
// failure aborts the call chain as a Lua error. In suspend mode the call
// starts the nested read in the background and returns a suspension handle
// for await to complete.
func (e *Engine) includeCapability(dir string, parent *Context, suspend bool) lua.LGFunction {
	return func(L *lua.LState) int {
		target := L.CheckString(1)
		merged := parent.Clone()
		if tbl, ok := L.Get(2).(*lua.LTable); ok {
			merged = merged.Merge(overrideFromTable(tbl))
		}
		path := resolveIncludePath(dir, target)

		if !suspend {
			if err := e.execute(L, path, merged, runOptions{}, false); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		}

		ud := L.NewUserData()
		ud.Value = e.startInclude(path, merged)
		L.Push(ud)
		return 1
	}
}

// resolveIncludePath resolves target against the including file's directory
// unless target is already absolute.
func resolveIncludePath(dir, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(dir, target)
}

type readResult struct {
	data string
	err  error
}

// includeHandle is the suspension handle returned by a suspend-mode include.
// The nested file read proceeds in the background; wait receives it and runs
// the rest of the nested pipeline on the calling run's Lua state, returning
// the first error from anywhere in the nested chain.
type includeHandle struct {
	eng  *Engine
	path string
	ctx  *Context
	ch   <-chan readResult
}

func (e *Engine) startInclude(path string, ctx *Context) *includeHandle {
	ch := make(chan readResult, 1)
	go func() {
		data, err := os.ReadFile(path)
		if err != nil {
			ch <- readResult{err: fmt.Errorf("read template %s: %w", path, err)}
			return
		}
		ch <- readResult{data: string(data)}
	}()
	return &includeHandle{eng: e, path: path, ctx: ctx, ch: ch}
}

func (h *includeHandle) wait(L *lua.LState) error {
	res := <-h.ch
	if res.err != nil {
		return res.err
	}
	return h.eng.executeSource(L, h.path, res.data, h.ctx, runOptions{}, true)
}
