package runtime_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioA: q0 -a-> q1, q1 final.
func scenarioA() *dsl.Builder {
	b := dsl.New("A")
	b.State("q0").Initial().OnRune('a', "q1")
	b.State("q1").Final()
	return b
}

func TestAccepts_Scenarios(t *testing.T) {
	a := scenarioA().MustBuild()

	b := scenarioA()
	b.State("q0").Epsilon("q1")
	withEpsilon := b.MustBuild()

	c := dsl.New("C")
	c.State("q0").Initial().OnRune('a', "q1").OnRune('a', "q2")
	c.State("q1").Final()
	c.State("q2").Final()
	branching := c.MustBuild()

	d := dsl.New("D")
	d.State("q0").Initial().Epsilon("q0").OnRune('a', "q1")
	d.State("q1").Final()
	selfLoop := d.MustBuild()

	tests := []struct {
		name      string
		automaton *domain.Automaton
		word      string
		want      bool
		reason    domain.RejectReason
	}{
		{"A accepts a", a, "a", true, domain.ReasonNone},
		{"A rejects b", a, "b", false, domain.ReasonNoTransition},
		{"A rejects empty", a, "", false, domain.ReasonNotFinal},
		{"A rejects aa", a, "aa", false, domain.ReasonNoTransition},
		{"B accepts empty through epsilon", withEpsilon, "", true, domain.ReasonNone},
		{"B still accepts a", withEpsilon, "a", true, domain.ReasonNone},
		{"C accepts a on some branch", branching, "a", true, domain.ReasonNone},
		{"D terminates on epsilon self-loop", selfLoop, "a", true, domain.ReasonNone},
		{"D rejects empty", selfLoop, "", false, domain.ReasonNotFinal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.Accepts(tt.automaton, tt.word))
			trace := runtime.Evaluate(tt.automaton, tt.word)
			assert.Equal(t, tt.want, trace.Accepted)
			assert.Equal(t, tt.reason, trace.Reason)
		})
	}
}

func TestAccepts_FollowsEveryMatchingTransition(t *testing.T) {
	// The first 'a' transition leads to a dead end; only the second one reaches a final state.
	b := dsl.New("all-matches")
	b.State("q0").Initial().OnRune('a', "dead").OnRune('a', "q1")
	b.State("dead")
	b.State("q1").OnRune('b', "q2")
	b.State("q2").Final()
	a := b.MustBuild()

	assert.True(t, runtime.Accepts(a, "ab"))
	assert.False(t, runtime.Accepts(a, "a"))
}

func TestAccepts_EpsilonBetweenCharacters(t *testing.T) {
	// (ab)* with epsilon glue: q0 -a-> q1 -ε-> q2 -b-> q3 -ε-> q0, q0 final.
	b := dsl.New("ab-star")
	b.State("q0").Initial().Final().OnRune('a', "q1")
	b.State("q1").Epsilon("q2")
	b.State("q2").OnRune('b', "q3")
	b.State("q3").Epsilon("q0")
	a := b.MustBuild()

	for word, want := range map[string]bool{
		"":     true,
		"ab":   true,
		"abab": true,
		"a":    false,
		"aba":  false,
		"ba":   false,
	} {
		assert.Equal(t, want, runtime.Accepts(a, word), "word %q", word)
	}
}

func TestAccepts_NoInitialState(t *testing.T) {
	b := dsl.New("headless")
	b.State("q0").Final().OnRune('a', "q0")
	a := b.MustBuild()

	for _, w := range []string{"", "a", "aa"} {
		trace := runtime.Evaluate(a, w)
		assert.False(t, trace.Accepted)
		assert.Equal(t, domain.ReasonNoInitial, trace.Reason)
	}
}

func TestEvaluate_ShortCircuits(t *testing.T) {
	a := scenarioA().MustBuild()

	trace := runtime.Evaluate(a, "abbbbbbb")
	assert.False(t, trace.Accepted)
	assert.Equal(t, domain.ReasonNoTransition, trace.Reason)
	assert.Equal(t, 1, trace.Consumed, "stops at the first character without a transition")
	assert.Equal(t, []string{"q0"}, domain.Names(trace.Start))
	assert.Equal(t, []string{"q1"}, domain.Names(trace.Active()))
}

func TestEvaluate_DenseEpsilonCycles(t *testing.T) {
	// Every state epsilon-reaches every other state; only the last one reads 'x'.
	const n = 40
	b := dsl.New("dense")
	names := make([]string, n)
	for i := range names {
		names[i] = "s" + strings.Repeat("i", i+1)
	}
	for i, name := range names {
		sb := b.State(name)
		if i == 0 {
			sb.Initial()
		}
		for _, other := range names {
			sb.Epsilon(other)
		}
	}
	b.State(names[n-1]).Final().OnRune('x', names[0])
	a := b.MustBuild()

	assert.Len(t, runtime.EpsilonClosure(a, domain.State{Name: names[0]}), n)
	assert.True(t, runtime.Accepts(a, strings.Repeat("x", 500)))
	assert.False(t, runtime.Accepts(a, strings.Repeat("x", 500)+"y"))
}

func TestAccepts_Idempotent(t *testing.T) {
	c := dsl.New("C")
	c.State("q0").Initial().OnRune('a', "q1").OnRune('a', "q2").Epsilon("q2")
	c.State("q1").Final()
	c.State("q2").OnRune('b', "q1")
	a := c.MustBuild()

	first := runtime.Evaluate(a, "ab")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, runtime.Evaluate(a, "ab"))
		assert.Equal(t, runtime.IsDeterministic(a), runtime.IsDeterministic(a))
	}
}

func TestAccepts_ConcurrentReaders(t *testing.T) {
	a := scenarioA().MustBuild()

	var wg sync.WaitGroup
	results := make([]bool, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = runtime.Accepts(a, "a") && !runtime.Accepts(a, "b") && runtime.IsDeterministic(a)
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		require.True(t, ok, "reader %d", i)
	}
}
