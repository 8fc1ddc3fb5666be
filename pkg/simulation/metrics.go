package simulation

import "github.com/prometheus/client_golang/prometheus"

// Metrics prometheus collectors of the simulation loop.
type Metrics struct {
	Ticks           prometheus.Counter
	RejectedMoves   prometheus.Counter
	TickDuration    prometheus.Histogram
	Replans         *prometheus.CounterVec
	RoundsCompleted *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "congestionnav",
			Name:      "simulation_ticks_total",
			Help:      "The total number of simulation ticks",
		}),
		RejectedMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "congestionnav",
			Name:      "obstacle_frozen_total",
			Help:      "Obstacle updates where every move attempt was rejected",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "congestionnav",
			Name:      "tick_duration_seconds",
			Help:      "The duration of one simulation tick",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}, // 0.001 = 1ms
		}),
		Replans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "congestionnav",
			Name:      "agent_replans_total",
			Help:      "Replans per agent type",
		}, []string{"agent_type"}),
		RoundsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "congestionnav",
			Name:      "rounds_total",
			Help:      "Finished rounds, completed when every agent arrived",
		}, []string{"completed"}),
	}
	reg.MustRegister(m.Ticks, m.RejectedMoves, m.TickDuration, m.Replans, m.RoundsCompleted)
	return m
}
