package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments a Runner updates.
type Metrics struct {
	Ticks       prometheus.Counter
	Transitions *prometheus.CounterVec
	StackDepth  prometheus.Gauge
}

// NewMetrics registers the runner instruments on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hfsmx",
			Subsystem: "runner",
			Name:      "ticks_total",
			Help:      "Total number of update ticks.",
		}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hfsmx",
			Subsystem: "runner",
			Name:      "transitions_total",
			Help:      "Total number of observed state or machine changes.",
		}, []string{"machine"}),
		StackDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "hfsmx",
			Subsystem: "runner",
			Name:      "stack_depth",
			Help:      "Current machine stack depth.",
		}),
	}
}
