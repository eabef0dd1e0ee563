package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"github.com/halcyonic/seam/pkg/transpile"
)

// Engine runs templates. The zero value is not usable; construct one with
// New. An Engine holds no per-run state, so a single Engine may serve any
// number of concurrent runs.
type Engine struct {
	logger *slog.Logger
}

// New returns an Engine that logs through logger. A nil logger discards all
// log output.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger}
}

type runOptions struct {
	startDelim string
	endDelim   string
}

// RunOption adjusts a single blocking run.
type RunOption func(*runOptions)

// WithDelimiters overrides the code section delimiters for a blocking run.
// Empty strings keep the defaults. Nested includes always use the default
// delimiters.
func WithDelimiters(start, end string) RunOption {
	return func(o *runOptions) {
		o.startDelim = start
		o.endDelim = end
	}
}

// RunSync reads the template at path and executes it against ctx, blocking
// until the run completes. The first failure anywhere in the run, including
// inside nested includes, is returned; output written before that failure
// stays written.
func (e *Engine) RunSync(path string, ctx *Context, opts ...RunOption) error {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}
	L := lua.NewState()
	defer L.Close()
	return e.execute(L, path, ctx, o, false)
}

// RunAsync executes the template at path against ctx in the background and
// returns immediately. done is invoked exactly once when the run reaches its
// terminal state: with the first error on failure, with nil on success.
// Nested includes are awaited as they are encountered.
func (e *Engine) RunAsync(path string, ctx *Context, done func(error)) {
	go func() {
		L := lua.NewState()
		defer L.Close()
		done(e.execute(L, path, ctx, runOptions{}, true))
	}()
}

// execute is the shared pipeline: validate the context, read the file, then
// hand off to executeSource. The write check precedes the read so a context
// failure never touches the file store.
func (e *Engine) execute(L *lua.LState, path string, ctx *Context, o runOptions, suspend bool) error {
	if ctx == nil || !ctx.Has("write") {
		return ErrMissingWrite
	}
	e.logger.Debug("reading template", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template %s: %w", path, err)
	}
	return e.executeSource(L, path, string(data), ctx, o, suspend)
}

// executeSource transpiles src, builds the parameter and argument lists from
// ctx, constructs the procedure on L and invokes it.
func (e *Engine) executeSource(L *lua.LState, path, src string, ctx *Context, o runOptions, suspend bool) error {
	e.logger.Debug("transpiling template", "path", path, "suspend", suspend)
	compiled, err := transpile.Transpile(path, src, transpile.Options{
		StartDelim: o.startDelim,
		EndDelim:   o.endDelim,
		Suspend:    suspend,
	})
	if err != nil {
		return err
	}

	params, args, err := e.buildContext(L, ctx, filepath.Dir(path), suspend)
	if err != nil {
		return err
	}

	proc, err := construct(L, compiled, params, suspend)
	if err != nil {
		return fmt.Errorf("construct procedure for %s: %w", path, err)
	}

	e.logger.Debug("executing template", "path", path, "capabilities", len(params))
	if err := proc.invoke(args); err != nil {
		return fmt.Errorf("template %s: %w", path, err)
	}
	return nil
}

// buildContext assembles the full capability set and the matching ordered
// argument list for the template in dir. Caller capabilities come first in
// their own order, then an injected require, then an injected include; a
// capability the caller already supplies is never replaced. The returned
// parameter and argument slices are index-aligned.
func (e *Engine) buildContext(L *lua.LState, ctx *Context, dir string, suspend bool) ([]string, []lua.LValue, error) {
	if !ctx.Has("write") {
		return nil, nil, ErrMissingWrite
	}

	full := ctx.Clone()
	if !full.Has("require") {
		full.Set("require", requireCapability(dir))
	}
	if !full.Has("include") {
		full.Set("include", e.includeCapability(dir, full, suspend))
	}

	params := full.Names()
	args := make([]lua.LValue, 0, len(params))
	for _, name := range params {
		v, _ := full.Get(name)
		args = append(args, toLua(L, v))
	}
	return params, args, nil
}
