// Package script runs Lua scripts against a lineup.
//
// Scripts see a single global table, lineup:
//
//	lineup.add("monday", "Casablanca", 102)
//	lineup.introduce("monday", "Ada")
//	lineup.remove("tue")
//	lineup.clear()
//	lineup.undo()
//	lineup.redo()
//	print(lineup.get("monday"))
//	print(lineup.render())
//	if lineup.can_undo() then lineup.undo() end
//
// Every mutation goes through the lineup's command history, so a script's
// edits can be undone one by one afterwards. Failures raise Lua errors.
package script

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/lineup/internal/show"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// Lineup is the surface a script can drive.
type Lineup interface {
	Add(day show.Day, sh show.Show) error
	Introduce(day show.Day, speaker string) error
	Remove(day show.Day) error
	Clear() error
	Undo() error
	Redo() error
	CanUndo() bool
	CanRedo() bool
	Get(day show.Day) show.Show
	Render() string
}

// Runner executes scripts in a fresh sandboxed Lua state per run.
//
// gopher-lua's LState is not goroutine-safe; a Runner must be used from a
// single goroutine.
type Runner struct {
	lineup  Lineup
	out     io.Writer
	timeout time.Duration
	logger  zerolog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput redirects Lua print output. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithTimeout sets the execution timeout for a run.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the runner's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner bound to l.
func NewRunner(l Lineup, opts ...Option) *Runner {
	r := &Runner{
		lineup:  l,
		out:     io.Discard,
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With().Str("component", "script").Logger()
	return r
}

// RunString executes Lua source code.
func (r *Runner) RunString(ctx context.Context, code string) error {
	return r.run(ctx, "<string>", func(L *lua.LState) error {
		return L.DoString(code)
	})
}

// RunFile executes the Lua file at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

func (r *Runner) run(ctx context.Context, source string, do func(*lua.LState) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	L := newSandboxedState()
	defer L.Close()
	L.SetContext(ctx)

	r.install(L)

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrScriptPanic, p)
		}
		r.logger.Debug().
			Str("source", source).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("script finished")
	}()

	if err := do(L); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrScriptTimeout, source, ctxErr)
		}
		return &Error{Source: source, Err: err}
	}
	return nil
}

// install registers the lineup table and the redirected print.
func (r *Runner) install(L *lua.LState) {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"add":       r.luaAdd,
		"introduce": r.luaIntroduce,
		"remove":    r.luaRemove,
		"clear":     r.luaClear,
		"undo":      r.luaUndo,
		"redo":      r.luaRedo,
		"can_undo":  r.luaCanUndo,
		"can_redo":  r.luaCanRedo,
		"get":       r.luaGet,
		"render":    r.luaRender,
	})
	L.SetGlobal("lineup", mod)
	L.SetGlobal("print", L.NewFunction(r.luaPrint))
}

// checkDay reads a day name argument.
func checkDay(L *lua.LState, n int) show.Day {
	day, err := show.ParseDay(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return day
}

// raise converts a Go error into a Lua error.
func raise(L *lua.LState, err error) int {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (r *Runner) luaAdd(L *lua.LState) int {
	day := checkDay(L, 1)
	m, err := show.NewMovie(L.CheckString(2), L.CheckInt(3))
	if err != nil {
		return raise(L, err)
	}
	return raise(L, r.lineup.Add(day, m))
}

func (r *Runner) luaIntroduce(L *lua.LState) int {
	day := checkDay(L, 1)
	return raise(L, r.lineup.Introduce(day, L.CheckString(2)))
}

func (r *Runner) luaRemove(L *lua.LState) int {
	return raise(L, r.lineup.Remove(checkDay(L, 1)))
}

func (r *Runner) luaClear(L *lua.LState) int {
	return raise(L, r.lineup.Clear())
}

func (r *Runner) luaUndo(L *lua.LState) int {
	return raise(L, r.lineup.Undo())
}

func (r *Runner) luaRedo(L *lua.LState) int {
	return raise(L, r.lineup.Redo())
}

func (r *Runner) luaCanUndo(L *lua.LState) int {
	L.Push(lua.LBool(r.lineup.CanUndo()))
	return 1
}

func (r *Runner) luaCanRedo(L *lua.LState) int {
	L.Push(lua.LBool(r.lineup.CanRedo()))
	return 1
}

func (r *Runner) luaGet(L *lua.LState) int {
	L.Push(lua.LString(r.lineup.Get(checkDay(L, 1)).Description()))
	return 1
}

func (r *Runner) luaRender(L *lua.LState) int {
	L.Push(lua.LString(r.lineup.Render()))
	return 1
}

func (r *Runner) luaPrint(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, lua.LVAsString(L.ToStringMeta(L.Get(i))))
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
