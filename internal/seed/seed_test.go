package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lineup/internal/history"
	"github.com/dshills/lineup/internal/schedule"
	"github.com/dshills/lineup/internal/show"
)

const sample = `
shows:
  - day: monday
    title: Casablanca
    minutes: 102
  - day: fri
    title: Alien
    minutes: 117
    introduced_by: Ada
    also:
      title: Aliens
      minutes: 137
`

func TestReadAndApply(t *testing.T) {
	f, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, f.Shows, 2)

	s := schedule.New()
	p := history.NewProcessor()
	n, err := f.Apply(s, p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, p.UndoCount())

	assert.Equal(t, show.Show(show.Movie{Title: "Casablanca", Minutes: 102}), s.Get(show.Monday))

	friday := s.Get(show.Friday)
	assert.Equal(t, "Ada introduces Alien (117 min) / Aliens (137 min)", friday.Description())
	assert.Equal(t, 117+137+show.IntroductionMinutes, friday.RunningTime())

	// Seeding is undoable.
	require.NoError(t, p.Undo())
	require.NoError(t, p.Undo())
	assert.Equal(t, 0, s.Scheduled())
}

func TestReadEmpty(t *testing.T) {
	f, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Shows)
}

func TestReadUnknownField(t *testing.T) {
	_, err := Read(strings.NewReader("shows:\n  - day: mon\n    titel: typo\n"))
	assert.Error(t, err)
}

func TestCommandsRejectInvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"bad day", Entry{Day: "someday", Title: "X", Minutes: 1}},
		{"no title", Entry{Day: "mon", Minutes: 1}},
		{"negative", Entry{Day: "mon", Title: "X", Minutes: -5}},
		{"bad second", Entry{Day: "mon", Title: "X", Minutes: 5, Also: &Feature{Minutes: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := schedule.New()
			f := &File{Shows: []Entry{{Day: "tue", Title: "Fine", Minutes: 90}, tt.entry}}
			cmds, err := f.Commands(s)
			assert.Error(t, err)
			assert.Nil(t, cmds)

			p := history.NewProcessor()
			n, err := f.Apply(s, p)
			assert.Error(t, err)
			assert.Equal(t, 0, n)
			assert.Equal(t, 0, s.Scheduled())
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	f, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Shows, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
