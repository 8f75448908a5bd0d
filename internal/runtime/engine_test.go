package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Hooks(t *testing.T) {
	b := dsl.New("hooked")
	b.State("q0").Initial().OnRune('a', "q1").OnRune('a', "q2")
	b.State("q1").OnRune('b', "q2")
	b.State("q2").Final()
	a := b.MustBuild()

	var conflicts []*domain.ConflictEvent
	var steps []*domain.StepEvent
	var verdicts []*domain.VerdictEvent

	engine := runtime.NewEngine(
		runtime.WithLogger(logging.NewNop()),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnConflict: func(_ context.Context, e *domain.ConflictEvent) { conflicts = append(conflicts, e) },
			OnStep:     func(_ context.Context, e *domain.StepEvent) { steps = append(steps, e) },
			OnVerdict:  func(_ context.Context, e *domain.VerdictEvent) { verdicts = append(verdicts, e) },
		}),
	)

	ctx := context.Background()
	assert.False(t, engine.IsDeterministic(ctx, a))
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.EventConflict, conflicts[0].Type)
	assert.Equal(t, "hooked", conflicts[0].Automaton)
	assert.Equal(t, "q0", conflicts[0].Conflict.State.Name)

	assert.True(t, engine.Accepts(ctx, a, "ab"))
	require.Len(t, steps, 2)
	assert.Equal(t, 0, steps[0].Index)
	assert.Equal(t, "a", steps[0].Symbol)
	assert.Equal(t, []string{"q1", "q2"}, steps[0].Active)
	assert.Equal(t, []string{"q2"}, steps[1].Active)

	require.Len(t, verdicts, 1)
	assert.True(t, verdicts[0].Accepted)
	assert.Equal(t, "ab", verdicts[0].Word)
}

func TestEngine_EvaluateAll(t *testing.T) {
	b := dsl.New("batch")
	b.State("q0").Initial().OnRune('a', "q1")
	b.State("q1").Final()
	a := b.MustBuild()

	traces := runtime.NewEngine().EvaluateAll(context.Background(), a, []string{"a", "", "b"})
	require.Len(t, traces, 3)
	assert.True(t, traces[0].Accepted)
	assert.Equal(t, domain.ReasonNotFinal, traces[1].Reason)
	assert.Equal(t, domain.ReasonNoTransition, traces[2].Reason)
}
