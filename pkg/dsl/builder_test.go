package dsl

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleAutomaton(t *testing.T) {
	b := New("simple")

	b.State("q0").Initial().
		On("q1", "a", "b").
		Epsilon("q2")
	b.State("q1").Final()
	b.State("q2").OnRune('c', "q1")

	a, err := b.Build()
	require.NoError(t, err)
	assert.True(t, a.Frozen())
	assert.Equal(t, "simple", a.Name)

	initial, ok := a.Initial()
	require.True(t, ok)
	assert.Equal(t, "q0", initial.Name)
	assert.Equal(t, []string{"q0", "q1", "q2"}, domain.Names(a.States()))
	assert.Equal(t, []string{"q1"}, domain.Names(a.FinalStates()))

	out := a.OutgoingTransitions(initial)
	require.Len(t, out, 3)
	assert.Equal(t, domain.Char('a'), out[0].Symbol)
	assert.Equal(t, domain.Char('b'), out[1].Symbol)
	assert.True(t, out[2].IsEpsilon())
}

func TestBuilder_ForwardReference(t *testing.T) {
	b := New("forward")
	b.State("start").Initial().OnRune('x', "later")
	b.State("later").Final()

	a, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, a.Transitions(), 1)
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("Unknown target", func(t *testing.T) {
		b := New("broken")
		b.State("q0").Initial().OnRune('a', "nowhere")
		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrUnknownState)
	})

	t.Run("Invalid label", func(t *testing.T) {
		b := New("broken")
		b.State("q0").Initial().On("q0", "ab")
		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrInvalidSymbol)
	})

	t.Run("Two initial states", func(t *testing.T) {
		b := New("broken")
		b.State("q0").Initial()
		b.State("q1").Initial()
		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrMultipleInitial)
	})

	t.Run("MustBuild panics", func(t *testing.T) {
		b := New("broken")
		b.State("q0").OnRune('a', "nowhere")
		assert.Panics(t, func() { b.MustBuild() })
	})
}
