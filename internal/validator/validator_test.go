package validator

import (
	"testing"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(r Report) map[Kind][]string {
	out := make(map[Kind][]string)
	for _, issue := range r.Issues {
		out[issue.Kind] = append(out[issue.Kind], issue.State)
	}
	return out
}

func TestValidate(t *testing.T) {
	t.Run("Clean", func(t *testing.T) {
		a, err := compiler.NewParser().Parse("even-a", []byte(testutils.EvenA))
		require.NoError(t, err)

		report := Validate(a)
		assert.True(t, report.OK())
		assert.NoError(t, report.Err())
	})

	t.Run("Unreachable And Dead", func(t *testing.T) {
		b := dsl.New("messy")
		b.State("q0").Initial().On("q1", "a").On("trap", "b")
		b.State("q1").Final().Epsilon("q0")
		b.State("trap").On("trap", "a", "b")
		b.State("island").On("q1", "a")
		a := b.MustBuild()

		got := kinds(Validate(a))
		assert.Equal(t, []string{"island"}, got[KindUnreachable])
		assert.Equal(t, []string{"trap"}, got[KindDead], "unreachable states are not reported as dead")
	})

	t.Run("Epsilon Reachability", func(t *testing.T) {
		b := dsl.New("eps")
		b.State("s").Initial().Epsilon("t")
		b.State("t").Final()
		assert.True(t, Validate(b.MustBuild()).OK())
	})

	t.Run("Missing Initial", func(t *testing.T) {
		a := domain.NewAutomaton("headless")
		_, err := a.AddState("q0", domain.AsFinal())
		require.NoError(t, err)

		report := Validate(a.Freeze())
		require.Len(t, report.Issues, 1)
		assert.Equal(t, KindMissingInitial, report.Issues[0].Kind)
		assert.ErrorContains(t, report.Err(), "no initial state")
	})

	t.Run("No Final", func(t *testing.T) {
		b := dsl.New("empty-language")
		b.State("q0").Initial()

		got := kinds(Validate(b.MustBuild()))
		assert.Contains(t, got, KindNoFinal)
		assert.Equal(t, []string{"q0"}, got[KindDead])
	})
}

func TestInvalid(t *testing.T) {
	_, err := compiler.NewParser().Parse("broken", []byte("states\nq0\ntransitions\nq0->ghost[label=a]\n"))
	require.Error(t, err)

	report := Invalid("broken", err)
	assert.False(t, report.OK())
	require.Len(t, report.Issues, 1)
	assert.Equal(t, KindInvalid, report.Issues[0].Kind)
	assert.Contains(t, report.Issues[0].Message, "ghost")
}
