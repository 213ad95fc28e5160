package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lineup/internal/config"
	"github.com/dshills/lineup/internal/history"
	"github.com/dshills/lineup/internal/schedule"
	"github.com/dshills/lineup/internal/seed"
	"github.com/dshills/lineup/internal/show"
)

var casablanca = show.Movie{Title: "Casablanca", Minutes: 102}

func TestSessionAddUndoRedo(t *testing.T) {
	s := NewSession()

	require.NoError(t, s.Add(show.Monday, casablanca))
	assert.Equal(t, show.Show(casablanca), s.Get(show.Monday))
	assert.True(t, s.CanUndo())

	require.NoError(t, s.Undo())
	assert.Equal(t, show.Empty, s.Get(show.Monday))
	assert.True(t, s.CanRedo())

	require.NoError(t, s.Redo())
	assert.Equal(t, show.Show(casablanca), s.Get(show.Monday))
}

func TestSessionIntroduce(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Add(show.Monday, casablanca))
	require.NoError(t, s.Introduce(show.Monday, "Ada"))
	assert.Equal(t, "Ada introduces Casablanca (102 min)", s.Get(show.Monday).Description())

	require.NoError(t, s.Undo())
	assert.Equal(t, show.Show(casablanca), s.Get(show.Monday))

	assert.ErrorIs(t, s.Introduce(show.Tuesday, "Ada"), show.ErrEmptyShow)
}

func TestSessionIntroduceInvalidDay(t *testing.T) {
	s := NewSession()
	err := s.Introduce(show.Day(9), "Ada")
	assert.ErrorIs(t, err, schedule.ErrInvalidDay)
	assert.ErrorIs(t, err, history.ErrPrecondition)
	assert.False(t, s.CanUndo())
}

func TestSessionMarkAndRewind(t *testing.T) {
	s := NewSession(WithMaxUndoEntries(2))
	require.NoError(t, s.Add(show.Monday, casablanca))
	require.NoError(t, s.Add(show.Tuesday, casablanca))

	cp := s.Mark()
	require.NoError(t, s.Add(show.Wednesday, show.Movie{Title: "Alien", Minutes: 117}))
	require.NoError(t, s.Remove(show.Monday))

	require.NoError(t, s.Rewind(cp))
	assert.Equal(t, show.Show(casablanca), s.Get(show.Monday))
	assert.Equal(t, show.Empty, s.Get(show.Wednesday))
}

func TestSessionAtomically(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Add(show.Monday, casablanca))

	errScript := errors.New("script broke")
	err := s.Atomically(func() error {
		require.NoError(t, s.Remove(show.Monday))
		require.NoError(t, s.Add(show.Sunday, casablanca))
		return errScript
	})
	assert.ErrorIs(t, err, errScript)
	assert.Equal(t, show.Show(casablanca), s.Get(show.Monday))
	assert.Equal(t, show.Empty, s.Get(show.Sunday))
	assert.Equal(t, 1, s.History().UndoCount())

	require.NoError(t, s.Atomically(func() error {
		return s.Clear()
	}))
	assert.Equal(t, show.Empty, s.Get(show.Monday))
}

func TestSessionAtomicallyReportsBrokenRollback(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Add(show.Monday, casablanca))

	errScript := errors.New("script broke")
	err := s.Atomically(func() error {
		// Undo past the starting point, then branch.
		require.NoError(t, s.Undo())
		require.NoError(t, s.Add(show.Friday, casablanca))
		return errScript
	})
	assert.ErrorIs(t, err, errScript)
	assert.ErrorIs(t, err, history.ErrCheckpointUnreachable)
}

func TestSessionForget(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Add(show.Monday, casablanca))
	require.NoError(t, s.Add(show.Tuesday, casablanca))
	require.NoError(t, s.Undo())

	s.Forget()
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, show.Show(casablanca), s.Get(show.Monday))
}

func TestSessionUnlimitedHistory(t *testing.T) {
	s := NewSession()
	for i := 0; i < 1500; i++ {
		require.NoError(t, s.Add(show.Day(i%show.DaysPerWeek), show.Movie{Title: "Reel", Minutes: i}))
	}
	for s.CanUndo() {
		require.NoError(t, s.Undo())
	}
	for _, d := range show.Days() {
		assert.Equal(t, show.Empty, s.Get(d))
	}
}

func TestSessionEmptyHistoryErrors(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.Undo(), history.ErrNothingToUndo)
	assert.ErrorIs(t, s.Redo(), history.ErrNothingToRedo)
}

func TestSessionOptions(t *testing.T) {
	var seen []history.Action
	obs := history.ObserverFunc(func(a history.Action, _ history.OperationInfo, _, _ int) {
		seen = append(seen, a)
	})
	s := NewSession(WithMaxUndoEntries(2), WithObserver(obs))

	for _, d := range []show.Day{show.Monday, show.Tuesday, show.Wednesday} {
		require.NoError(t, s.Add(d, casablanca))
	}
	require.NoError(t, s.Clear())
	assert.Equal(t, 2, s.History().UndoCount())
	assert.Len(t, seen, 4)
}

func TestSessionLogsReplacement(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(WithLogger(zerolog.New(&buf)))

	require.NoError(t, s.Add(show.Friday, casablanca))
	require.NoError(t, s.Add(show.Friday, show.Movie{Title: "Heat", Minutes: 170}))

	assert.Contains(t, buf.String(), `"message":"show replaced"`)
	assert.Contains(t, buf.String(), `"replaced":"Casablanca (102 min)"`)
}

func TestSessionSeed(t *testing.T) {
	f, err := seed.Read(strings.NewReader("shows:\n  - {day: sat, title: Heat, minutes: 170}\n"))
	require.NoError(t, err)

	s := NewSession()
	require.NoError(t, s.Seed(f))
	assert.Equal(t, "Heat (170 min)", s.Get(show.Saturday).Description())

	bad := &seed.File{Shows: []seed.Entry{{Day: "nope", Title: "X"}}}
	assert.Error(t, s.Seed(bad))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = NewLogger(config.LogConfig{Level: "loud"}, &buf)
	assert.Error(t, err)
}

type recordingRunner struct {
	paths []string
	do    func() error
}

func (r *recordingRunner) RunFile(_ context.Context, path string) error {
	r.paths = append(r.paths, path)
	if r.do != nil {
		return r.do()
	}
	return nil
}

func runShell(t *testing.T, s *Session, scripts ScriptRunner, input string) string {
	t.Helper()
	var out bytes.Buffer
	sh := NewShell(s, scripts, &out, zerolog.Nop())
	require.NoError(t, sh.Run(context.Background(), strings.NewReader(input)))
	return out.String()
}

func TestShellScenario(t *testing.T) {
	s := NewSession()
	out := runShell(t, s, nil, strings.Join([]string{
		"add monday 102 Casablanca",
		"remove mon",
		"undo",
		"undo",
		"redo",
		"show",
		"quit",
		"add tue 1 never",
	}, "\n"))

	assert.Equal(t, show.Show(casablanca), s.Get(show.Monday))
	assert.Equal(t, show.Empty, s.Get(show.Tuesday))
	assert.Contains(t, out, "   Monday: Casablanca (102 min)\n")
}

func TestShellReportsErrorsAndContinues(t *testing.T) {
	s := NewSession()
	out := runShell(t, s, nil, "undo\nredo\nbogus\nadd someday 5 X\nadd mon x X\nrun a.lua\nadd wed 90 Heat\n")

	assert.Contains(t, out, "error: precondition violated: nothing to undo")
	assert.Contains(t, out, "error: precondition violated: nothing to redo")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "unknown day")
	assert.Contains(t, out, "minutes:")
	assert.Contains(t, out, "scripting is not available")
	assert.Equal(t, "Heat (90 min)", s.Get(show.Wednesday).Description())
}

func TestShellHistoryAndHelp(t *testing.T) {
	s := NewSession()
	out := runShell(t, s, nil, "add mon 102 Casablanca\nclear\nundo\nhistory\nhelp\n")

	assert.Contains(t, out, "undo (1):\n  Add \"Casablanca (102 min)\" on Monday\n")
	assert.Contains(t, out, "redo (1):\n  Clear schedule\n")
	assert.Contains(t, out, "Commands:")
}

func TestShellIntroAndRun(t *testing.T) {
	s := NewSession()
	runner := &recordingRunner{}
	runShell(t, s, runner, "add fri 117 Alien\nintro fri Ada Lovelace\nrun week.lua\n")

	assert.Equal(t, "Ada Lovelace introduces Alien (117 min)", s.Get(show.Friday).Description())
	assert.Equal(t, []string{"week.lua"}, runner.paths)
}

func TestShellStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	sh := NewShell(NewSession(), nil, &out, zerolog.Nop())
	assert.ErrorIs(t, sh.Run(ctx, strings.NewReader("add mon 1 X\n")), context.Canceled)
}

func TestShellUndoRedoEcho(t *testing.T) {
	s := NewSession()
	out := runShell(t, s, nil, "add mon 102 Casablanca\nundo\nredo\n")

	assert.Contains(t, out, "undone: Add \"Casablanca (102 min)\" on Monday\n")
	assert.Contains(t, out, "redone: Add \"Casablanca (102 min)\" on Monday\n")
}

func TestShellMarkRewindForget(t *testing.T) {
	s := NewSession()
	out := runShell(t, s, nil, strings.Join([]string{
		"rewind",
		"add mon 102 Casablanca",
		"mark",
		"add tue 170 Heat",
		"clear",
		"rewind",
		"forget",
		"rewind",
	}, "\n"))

	assert.Equal(t, show.Show(casablanca), s.Get(show.Monday))
	assert.Equal(t, show.Empty, s.Get(show.Tuesday))
	assert.False(t, s.CanUndo())
	assert.Equal(t, 2, strings.Count(out, "error: no mark set"))
}

func TestShellRunRollsBackFailedScript(t *testing.T) {
	s := NewSession()
	runner := &recordingRunner{do: func() error {
		if err := s.Add(show.Friday, casablanca); err != nil {
			return err
		}
		return errors.New("line 2: boom")
	}}
	out := runShell(t, s, runner, "run bad.lua\n")

	assert.Contains(t, out, "error: line 2: boom")
	assert.Equal(t, show.Empty, s.Get(show.Friday))
	assert.True(t, s.CanRedo())
}
