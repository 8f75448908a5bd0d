package automata_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/automata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Headless(t *testing.T) {
	eng := newEngine(t)
	var out bytes.Buffer

	r := automata.NewRunner(strings.NewReader("ab\n\nb\nabab"), &out)
	r.Headless = true

	require.NoError(t, r.Run(context.Background(), eng, "ab"))
	assert.Equal(t, "ab\ttrue\n\ttrue\nb\tfalse\nabab\ttrue\n", out.String())
}

func TestRunner_Interactive(t *testing.T) {
	eng := newEngine(t)
	var out bytes.Buffer

	r := automata.NewRunner(strings.NewReader("a\naa\nexit\nnever read\n"), &out)
	r.Renderer = func(s string) (string, error) { return "[" + s + "]", nil }

	require.NoError(t, r.Run(context.Background(), eng, "even-a"))

	got := out.String()
	assert.Contains(t, got, "[**even-a**: type a word per line")
	assert.Contains(t, got, "rejected (not_final)")
	assert.Contains(t, got, "accepted")
	assert.Contains(t, got, "Bye!")
	assert.NotContains(t, got, "never read")
}

func TestRunner_RequiresIO(t *testing.T) {
	eng := newEngine(t)
	assert.Error(t, (&automata.Runner{}).Run(context.Background(), eng, "ab"))
	assert.Error(t, automata.NewRunner(strings.NewReader(""), &bytes.Buffer{}).Run(context.Background(), eng, "missing"))
}
