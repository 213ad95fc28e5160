package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lineup/internal/history"
	"github.com/dshills/lineup/internal/schedule"
	"github.com/dshills/lineup/internal/show"
)

func TestCollectorObservesProcessor(t *testing.T) {
	c := New()
	reg := prometheus.NewRegistry()
	require.NoError(t, c.Register(reg))

	s := schedule.New()
	p := history.NewProcessor(history.WithObserver(c))

	require.NoError(t, p.Execute(s.NewAddCommand(show.Monday, show.Movie{Title: "Alien", Minutes: 117})))
	require.NoError(t, p.Execute(s.NewClearCommand()))
	require.NoError(t, p.Undo())

	assert.Equal(t, 1.0, testutil.ToFloat64(c.commands.WithLabelValues("execute", schedule.KindAdd)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commands.WithLabelValues("execute", schedule.KindClear)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commands.WithLabelValues("undo", schedule.KindClear)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.undoDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.redoDepth))

	require.NoError(t, p.Redo())
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commands.WithLabelValues("redo", schedule.KindClear)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.undoDepth))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.redoDepth))
}

func TestRegisterTwiceFails(t *testing.T) {
	c := New()
	reg := prometheus.NewRegistry()
	require.NoError(t, c.Register(reg))
	assert.Error(t, c.Register(reg))
}
