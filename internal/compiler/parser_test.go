package compiler_test

import (
	"testing"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const textDefinition = `# accepts words over {a,b} ending in b
states
q0:I
q1
q2:F
transitions
q0->q0[label=a,b]
q0->q1[label=ε]
q1->q2[label=b]
L
`

func TestParseText(t *testing.T) {
	a, err := compiler.NewParser().ParseText("ends-in-b", []byte(textDefinition))
	require.NoError(t, err)

	assert.True(t, a.Frozen())
	assert.Equal(t, "ends-in-b", a.Name)

	initial, ok := a.Initial()
	require.True(t, ok)
	assert.Equal(t, "q0", initial.Name)
	assert.Equal(t, []string{"q0", "q1", "q2"}, domain.Names(a.States()))
	assert.Equal(t, []string{"q2"}, domain.Names(a.FinalStates()))

	transitions := a.Transitions()
	require.Len(t, transitions, 4, "one transition per label")
	assert.Equal(t, "q0->q0[label=a]", transitions[0].String())
	assert.Equal(t, "q0->q0[label=b]", transitions[1].String())
	assert.True(t, transitions[2].IsEpsilon())
	assert.Equal(t, "q1->q2[label=b]", transitions[3].String())
}

func TestParseText_Spacing(t *testing.T) {
	def := "  states\n  q0 : I \n q1:F\n\ntransitions\n q0 -> q1 [label= a , eps ]\n"
	a, err := compiler.NewParser().ParseText("spaced", []byte(def))
	require.NoError(t, err)

	q0 := domain.State{Name: "q0"}
	assert.Len(t, a.TransitionsFor(q0, domain.Char('a')), 1)
	assert.Equal(t, []string{"q1"}, domain.Names(a.EpsilonSuccessors(q0)))
}

func TestParseText_Errors(t *testing.T) {
	tests := []struct {
		name    string
		def     string
		line    int
		wantErr error
	}{
		{
			name:    "Second initial state",
			def:     "states\nq0:I\nq1:I\n",
			line:    3,
			wantErr: domain.ErrMultipleInitial,
		},
		{
			name:    "Unknown target state",
			def:     "states\nq0:I\ntransitions\nq0->q9[label=a]\n",
			line:    4,
			wantErr: domain.ErrUnknownState,
		},
		{
			name:    "Multi-character label",
			def:     "states\nq0:I\ntransitions\nq0->q0[label=ab]\n",
			line:    4,
			wantErr: domain.ErrInvalidSymbol,
		},
		{
			name:    "Empty label",
			def:     "states\nq0:I\ntransitions\nq0->q0[label=]\n",
			line:    4,
			wantErr: domain.ErrInvalidSymbol,
		},
		{
			name:    "Transitions after end marker",
			def:     "states\nq0:I\nL\nq0->q0[label=a]\n",
			line:    4,
		},
		{
			name: "Missing arrow",
			def:  "states\nq0\ntransitions\nq0 q0[label=a]\n",
			line: 4,
		},
		{
			name: "Unknown flag",
			def:  "states\nq0:X\n",
			line: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.NewParser().ParseText("broken", []byte(tt.def))
			require.Error(t, err)

			var perr *compiler.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFormatText_RoundTrip(t *testing.T) {
	p := compiler.NewParser()
	a, err := p.ParseText("ends-in-b", []byte(textDefinition))
	require.NoError(t, err)

	out, err := compiler.Render(a)
	require.NoError(t, err)
	assert.Contains(t, string(out), "q0->q0[label=a,b]")

	back, err := p.Parse("ends-in-b", out)
	require.NoError(t, err)
	assert.Equal(t, a.States(), back.States())
	assert.Equal(t, a.FinalStates(), back.FinalStates())
	assert.Equal(t, a.Transitions(), back.Transitions())
}

func TestDetect(t *testing.T) {
	assert.Equal(t, compiler.FormatText, compiler.Detect([]byte(textDefinition)))
	assert.Equal(t, compiler.FormatYAML, compiler.Detect([]byte("name: x\nstates: [q0]\n")))
	assert.Equal(t, compiler.FormatYAML, compiler.Detect([]byte(`{"states":["q0"]}`)))
	assert.Equal(t, compiler.FormatText, compiler.Detect(nil))
}

func TestRender_RejectsWhatTheSyntaxCannotCarry(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *dsl.Builder)
	}{
		{
			name: "Comma Label",
			build: func(b *dsl.Builder) {
				b.State("q0").Initial().OnRune(',', "q1")
				b.State("q1").Final()
			},
		},
		{
			name: "Bracket Label",
			build: func(b *dsl.Builder) {
				b.State("q0").Initial().OnRune(']', "q1")
				b.State("q1").Final()
			},
		},
		{
			name: "Epsilon Character Label",
			build: func(b *dsl.Builder) {
				b.State("q0").Initial().OnRune('ε', "q1")
				b.State("q1").Final()
			},
		},
		{
			name: "Space Label",
			build: func(b *dsl.Builder) {
				b.State("q0").Initial().OnRune(' ', "q1")
				b.State("q1").Final()
			},
		},
		{
			name: "Colon In State Name",
			build: func(b *dsl.Builder) {
				b.State("x:y").Initial().Final()
			},
		},
		{
			name: "Arrow In State Name",
			build: func(b *dsl.Builder) {
				b.State("a->b").Initial()
			},
		},
		{
			name: "Section Keyword As State Name",
			build: func(b *dsl.Builder) {
				b.State("L").Initial()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := dsl.New(tt.name)
			tt.build(b)
			a, err := b.Build()
			require.NoError(t, err)

			_, err = compiler.Render(a)
			assert.ErrorIs(t, err, compiler.ErrNotRepresentable)
		})
	}
}

func TestRender_RoundTripsPunctuation(t *testing.T) {
	b := dsl.New("punct")
	b.State("q-0").Initial().OnRune('[', "q.1").OnRune('-', "q.1").Epsilon("q.1")
	b.State("q.1").Final().OnRune('>', "q-0").OnRune(':', "q-0")
	a := b.MustBuild()

	out, err := compiler.Render(a)
	require.NoError(t, err)

	back, err := compiler.NewParser().Parse("punct", out)
	require.NoError(t, err)
	assert.Equal(t, a.States(), back.States())
	assert.Equal(t, a.FinalStates(), back.FinalStates())
	assert.Equal(t, a.Transitions(), back.Transitions())
}
