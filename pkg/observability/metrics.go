package observability

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by the engine hooks.
type Metrics struct {
	Evaluations *prometheus.CounterVec
	Steps       prometheus.Histogram
	Conflicts   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_evaluations_total",
				Help: "Total number of word evaluations",
			},
			[]string{"automaton", "verdict"},
		),
		Steps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "automata_evaluation_steps",
				Help:    "Characters consumed per evaluation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		Conflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_conflicts_total",
				Help: "Non-deterministic choices reported by determinism checks",
			},
			[]string{"automaton"},
		),
	}

	for _, c := range []prometheus.Collector{m.Evaluations, m.Steps, m.Conflicts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Verdict labels a VerdictEvent: "accepted" or the reject reason.
func Verdict(e *domain.VerdictEvent) string {
	if e.Accepted {
		return "accepted"
	}
	return string(e.Reason)
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnVerdict: func(_ context.Context, e *domain.VerdictEvent) {
			m.Evaluations.WithLabelValues(e.Automaton, Verdict(e)).Inc()
			m.Steps.Observe(float64(e.Consumed))
		},
		OnConflict: func(_ context.Context, e *domain.ConflictEvent) {
			m.Conflicts.WithLabelValues(e.Automaton).Inc()
		},
	}
}

// Combine merges hooks so that each event reaches every non-nil callback, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var conflict []func(context.Context, *domain.ConflictEvent)
	var step []func(context.Context, *domain.StepEvent)
	var verdict []func(context.Context, *domain.VerdictEvent)
	for _, h := range hooks {
		if h.OnConflict != nil {
			conflict = append(conflict, h.OnConflict)
		}
		if h.OnStep != nil {
			step = append(step, h.OnStep)
		}
		if h.OnVerdict != nil {
			verdict = append(verdict, h.OnVerdict)
		}
	}

	var out domain.LifecycleHooks
	if len(conflict) > 0 {
		out.OnConflict = func(ctx context.Context, e *domain.ConflictEvent) {
			for _, f := range conflict {
				f(ctx, e)
			}
		}
	}
	if len(step) > 0 {
		out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			for _, f := range step {
				f(ctx, e)
			}
		}
	}
	if len(verdict) > 0 {
		out.OnVerdict = func(ctx context.Context, e *domain.VerdictEvent) {
			for _, f := range verdict {
				f(ctx, e)
			}
		}
	}
	return out
}
