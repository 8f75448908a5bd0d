package automata_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...automata.Option) *automata.Engine {
	t.Helper()
	loader := memory.NewLoader(map[string]string{
		"even-a": testutils.EvenA,
		"ab":     testutils.AB,
		"broken": "states\nq0\ntransitions\nq0->ghost[label=a]\n",
	})
	eng, err := automata.New("", append([]automata.Option{automata.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return eng
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := automata.New("")
	assert.Error(t, err)
}

func TestEngine_List(t *testing.T) {
	b := dsl.New("zeta")
	b.State("q0").Initial().Final()

	eng := newEngine(t, automata.WithDefinition(b.MustBuild()))

	ids, err := eng.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "broken", "even-a", "zeta"}, ids)
}

func TestEngine_Automaton(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	a, err := eng.Automaton(ctx, "even-a")
	require.NoError(t, err)
	assert.True(t, a.Frozen())

	again, err := eng.Automaton(ctx, "even-a")
	require.NoError(t, err)
	assert.Same(t, a, again, "compiled automata are cached")

	eng.Reload("even-a")
	reloaded, err := eng.Automaton(ctx, "even-a")
	require.NoError(t, err)
	assert.NotSame(t, a, reloaded)

	_, err = eng.Automaton(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	_, err = eng.Automaton(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrUnknownState)
}

func TestEngine_IsDeterministic(t *testing.T) {
	var conflicts []*domain.ConflictEvent
	eng := newEngine(t, automata.WithLifecycleHooks(domain.LifecycleHooks{
		OnConflict: func(_ context.Context, e *domain.ConflictEvent) {
			conflicts = append(conflicts, e)
		},
	}))
	ctx := context.Background()

	ok, found, err := eng.IsDeterministic(ctx, "even-a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, found)

	ok, found, err = eng.IsDeterministic(ctx, "ab")
	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, found, 1)
	assert.Equal(t, "q0", found[0].State.Name)
	assert.Equal(t, domain.Char('a'), found[0].Symbol)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "ab", conflicts[0].Automaton)
}

func TestEngine_Evaluate(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	traces, err := eng.Evaluate(ctx, "ab", []string{"", "ab", "abab", "a", "b"})
	require.NoError(t, err)
	require.Len(t, traces, 5)

	got := make([]bool, len(traces))
	for i, tr := range traces {
		got[i] = tr.Accepted
	}
	assert.Equal(t, []bool{true, true, true, false, false}, got)
	assert.Equal(t, domain.ReasonNotFinal, traces[3].Reason)
	assert.Equal(t, domain.ReasonNoTransition, traces[4].Reason)

	ok, err := eng.Accepts(ctx, "even-a", "aa")
	require.NoError(t, err)
	assert.True(t, ok)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = eng.Evaluate(cancelled, "ab", []string{"ab"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_ValidateAndGraph(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	report, err := eng.Validate(ctx, "ab")
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, validator.KindDead, report.Issues[0].Kind)

	traces, err := eng.Evaluate(ctx, "even-a", []string{"a"})
	require.NoError(t, err)
	out, err := eng.Graph(ctx, "even-a", &traces[0])
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "class s1 rejected;")
}

func TestEngine_Loam(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"even-a.md": "---\nid: even-a\n---\n# Even a\n\n```\n" + testutils.EvenA + "```\n",
		"ab.yaml": `initial: q0
final: [q0]
states: [q0, q1]
transitions:
  - {from: q0, to: q1, label: a}
  - {from: q1, to: q0, label: b}
`,
	})

	eng, err := automata.New(dir)
	require.NoError(t, err)

	ids, err := eng.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ab", "even-a"}, ids)

	ctx := context.Background()
	ok, err := eng.Accepts(ctx, "even-a", "aaaa")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = eng.Accepts(ctx, "ab", "aba")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := eng.Accepts(ctx, "even-a", "aa")
			if err != nil {
				errs <- err
				return
			}
			if !ok {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
