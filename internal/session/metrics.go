package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calculator_sessions_active",
			Help: "Current number of calculator sessions",
		},
	)
	keysTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_keys_total",
			Help: "Total number of calculator keys pressed labeled by event kind",
		},
		[]string{"event"},
	)
	phaseTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_phase_transitions_total",
			Help: "Total number of calculator phase changes",
		},
		[]string{"from", "to"},
	)
)
