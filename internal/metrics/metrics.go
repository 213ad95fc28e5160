// Package metrics exports history activity to prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/lineup/internal/history"
)

const namespace = "lineup"

// Collector counts commands and tracks history depth.
// It implements history.Observer.
type Collector struct {
	commands  *prometheus.CounterVec
	undoDepth prometheus.Gauge
	redoDepth prometheus.Gauge
}

var _ history.Observer = (*Collector)(nil)

// New creates a collector. Call Register to expose it.
func New() *Collector {
	return &Collector{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Count of history actions by action and command kind.",
			},
			[]string{"action", "kind"},
		),
		undoDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "undo_depth",
			Help:      "Number of commands on the undo stack.",
		}),
		redoDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "redo_depth",
			Help:      "Number of commands on the redo stack.",
		}),
	}
}

// Register registers the collector's metrics with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{c.commands, c.undoDepth, c.redoDepth} {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Observe records one history action.
func (c *Collector) Observe(action history.Action, info history.OperationInfo, undoDepth, redoDepth int) {
	c.commands.WithLabelValues(action.String(), info.Kind).Inc()
	c.undoDepth.Set(float64(undoDepth))
	c.redoDepth.Set(float64(redoDepth))
}
