package observability

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "turing"

// Metrics counts steps, halts and tape growth.
type Metrics struct {
	Steps     *prometheus.CounterVec
	Halts     prometheus.Counter
	Growth    *prometheus.CounterVec
	RunSteps  prometheus.Histogram
	TapeCells prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Total number of executed steps, by state entered.",
			},
			[]string{"state"},
		),
		Halts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "halts_total",
			Help:      "Total number of runs that reached Halt.",
		}),
		Growth: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tape_growth_total",
				Help:      "Total number of Blank cells added to a tape, by end.",
			},
			[]string{"direction"},
		),
		RunSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_steps",
			Help:      "Steps executed per halted run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		TapeCells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_tape_cells",
			Help:      "Tape length at halt.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Halts, m.Growth, m.RunSteps, m.TapeCells)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e domain.StepEvent) {
			m.Steps.WithLabelValues(e.State.String()).Inc()
		},
		OnHalt: func(e domain.HaltEvent) {
			m.Halts.Inc()
			m.RunSteps.Observe(float64(e.Steps))
			m.TapeCells.Observe(float64(e.TapeLen))
		},
		OnGrow: func(e domain.GrowEvent) {
			m.Growth.WithLabelValues(string(e.Direction)).Inc()
		},
	}
}
