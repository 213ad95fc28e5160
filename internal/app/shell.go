package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dshills/lineup/internal/history"
	"github.com/dshills/lineup/internal/show"
)

// ErrQuit is returned by Exec when the user asks to leave.
var ErrQuit = errors.New("quit")

// ScriptRunner runs Lua files against the session.
type ScriptRunner interface {
	RunFile(ctx context.Context, path string) error
}

// Shell is a line-oriented driver for a Session.
type Shell struct {
	session *Session
	scripts ScriptRunner
	out     io.Writer
	logger  zerolog.Logger

	mark   history.Checkpoint
	marked bool
}

// NewShell creates a shell writing its responses to out.
// scripts may be nil, in which case the run command is unavailable.
func NewShell(session *Session, scripts ScriptRunner, out io.Writer, logger zerolog.Logger) *Shell {
	return &Shell{
		session: session,
		scripts: scripts,
		out:     out,
		logger:  logger.With().Str("component", "shell").Logger(),
	}
}

const helpText = `Commands:
  add <day> <minutes> <title...>   schedule a movie
  intro <day> <speaker>            add an introduction to a day's show
  remove <day>                     empty a day
  clear                            empty the whole week
  undo                             revert the last command
  redo                             re-apply the last undone command
  show                             print the week
  history                          list undo and redo stacks
  mark                             remember the current point in history
  rewind                           undo back to the last mark
  forget                           drop the undo and redo history
  run <file.lua>                   run a Lua script, rolled back if it fails
  help                             show this help
  quit                             leave
`

// Run reads commands from in until EOF, quit, or ctx is done.
// Command errors are reported to the output and do not stop the loop.
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}

		err := sh.Exec(ctx, scanner.Text())
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case err != nil:
			sh.logger.Debug().Err(err).Msg("command failed")
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
}

// Exec runs a single command line.
func (sh *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "add":
		return sh.add(args)
	case "intro":
		if len(args) < 2 {
			return errors.New("usage: intro <day> <speaker>")
		}
		day, err := show.ParseDay(args[0])
		if err != nil {
			return err
		}
		return sh.session.Introduce(day, strings.Join(args[1:], " "))
	case "remove", "rm":
		if len(args) != 1 {
			return errors.New("usage: remove <day>")
		}
		day, err := show.ParseDay(args[0])
		if err != nil {
			return err
		}
		return sh.session.Remove(day)
	case "clear":
		return sh.session.Clear()
	case "undo":
		return sh.step("undone", sh.session.History().PeekUndo, sh.session.Undo)
	case "redo":
		return sh.step("redone", sh.session.History().PeekRedo, sh.session.Redo)
	case "show", "ls":
		_, err := sh.session.Schedule().WriteTo(sh.out)
		return err
	case "history":
		sh.printHistory()
		return nil
	case "mark":
		sh.mark, sh.marked = sh.session.Mark(), true
		fmt.Fprintln(sh.out, "marked")
		return nil
	case "rewind":
		if !sh.marked {
			return errors.New("no mark set")
		}
		return sh.session.Rewind(sh.mark)
	case "forget":
		sh.session.Forget()
		sh.marked = false
		return nil
	case "run":
		if sh.scripts == nil {
			return errors.New("scripting is not available")
		}
		if len(args) != 1 {
			return errors.New("usage: run <file.lua>")
		}
		return sh.session.Atomically(func() error {
			return sh.scripts.RunFile(ctx, args[0])
		})
	case "help", "?":
		fmt.Fprint(sh.out, helpText)
		return nil
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
}

func (sh *Shell) add(args []string) error {
	if len(args) < 3 {
		return errors.New("usage: add <day> <minutes> <title...>")
	}
	day, err := show.ParseDay(args[0])
	if err != nil {
		return err
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("minutes: %w", err)
	}
	m, err := show.NewMovie(strings.Join(args[2:], " "), minutes)
	if err != nil {
		return err
	}
	return sh.session.Add(day, m)
}

// step runs an undo or redo and echoes what it reverted or re-applied.
func (sh *Shell) step(verb string, peek func() (history.OperationInfo, bool), do func() error) error {
	info, _ := peek()
	if err := do(); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "%s: %s\n", verb, info.Description)
	return nil
}

func (sh *Shell) printHistory() {
	p := sh.session.History()
	printStack(sh.out, "undo", p.UndoInfo())
	printStack(sh.out, "redo", p.RedoInfo())
}

// printStack prints a stack top first.
func printStack(w io.Writer, name string, infos []history.OperationInfo) {
	fmt.Fprintf(w, "%s (%d):\n", name, len(infos))
	for i := len(infos) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "  %s\n", infos[i].Description)
	}
}
