package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/pkg/domain"
)

// Engine runs the recognition algorithms against frozen automata.
// It adds structured logging and lifecycle hooks around the pure functions of this package
// and holds no per-automaton state, so one Engine can serve many automata concurrently.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine. Without WithLogger, diagnostics are discarded.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsDeterministic reports whether a is deterministic, reporting every conflict found.
func (e *Engine) IsDeterministic(ctx context.Context, a *domain.Automaton) bool {
	return len(e.Conflicts(ctx, a)) == 0
}

// Conflicts lists every non-deterministic choice of a, logging each one and
// passing it to the OnConflict hook.
func (e *Engine) Conflicts(ctx context.Context, a *domain.Automaton) []domain.Conflict {
	conflicts := Conflicts(a)
	for _, c := range conflicts {
		e.logger.Debug("non-deterministic transition",
			"automaton", a.Name,
			"state", c.State.Name,
			"symbol", c.Symbol.String(),
			"transitions", len(c.Transitions),
		)
		e.emitConflict(ctx, a, c)
	}
	return conflicts
}

// Accepts reports whether word belongs to the language of a.
func (e *Engine) Accepts(ctx context.Context, a *domain.Automaton, word string) bool {
	return e.Evaluate(ctx, a, word).Accepted
}

// Evaluate runs the subset simulation and returns its trace.
func (e *Engine) Evaluate(ctx context.Context, a *domain.Automaton, word string) domain.Trace {
	var onStep func(int, domain.Step)
	if e.hooks.OnStep != nil {
		onStep = func(i int, step domain.Step) {
			e.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: e.base(a, domain.EventStep),
				Index:     i,
				Symbol:    step.Symbol.String(),
				Active:    domain.Names(step.Active),
			})
		}
	}

	trace := simulate(a, word, onStep)
	if trace.Accepted {
		e.logger.Debug("word accepted", "automaton", a.Name, "word", word)
	} else {
		e.logger.Debug("word rejected", "automaton", a.Name, "word", word, "reason", trace.Reason, "consumed", trace.Consumed)
	}
	e.emitVerdict(ctx, a, trace)
	return trace
}

// EvaluateAll evaluates each word in order.
func (e *Engine) EvaluateAll(ctx context.Context, a *domain.Automaton, words []string) []domain.Trace {
	traces := make([]domain.Trace, 0, len(words))
	for _, w := range words {
		traces = append(traces, e.Evaluate(ctx, a, w))
	}
	return traces
}

func (e *Engine) base(a *domain.Automaton, t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Automaton: a.Name,
	}
}

func (e *Engine) emitConflict(ctx context.Context, a *domain.Automaton, c domain.Conflict) {
	if e.hooks.OnConflict == nil {
		return
	}
	e.hooks.OnConflict(ctx, &domain.ConflictEvent{
		EventBase: e.base(a, domain.EventConflict),
		Conflict:  c,
	})
}

func (e *Engine) emitVerdict(ctx context.Context, a *domain.Automaton, trace domain.Trace) {
	if e.hooks.OnVerdict == nil {
		return
	}
	e.hooks.OnVerdict(ctx, &domain.VerdictEvent{
		EventBase: e.base(a, domain.EventVerdict),
		Word:      trace.Word,
		Accepted:  trace.Accepted,
		Reason:    trace.Reason,
		Consumed:  trace.Consumed,
	})
}
