package automata_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/dsl"
)

// ExampleNew_memory demonstrates how to use the Engine with in-memory definitions.
// This is useful for testing and embedded scenarios.
func ExampleNew_memory() {
	loader := memory.NewLoader(map[string]string{
		"ends-with-b": `states
q0:I
q1:F
transitions
q0->q0[label=a,b]
q0->q1[label=b]
L
`,
	})

	engine, err := automata.New("", automata.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	deterministic, _, err := engine.IsDeterministic(ctx, "ends-with-b")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("deterministic:", deterministic)

	traces, err := engine.Evaluate(ctx, "ends-with-b", []string{"aab", "aba"})
	if err != nil {
		log.Fatal(err)
	}
	for _, tr := range traces {
		fmt.Printf("%s: %t\n", tr.Word, tr.Accepted)
	}

	// Output:
	// deterministic: false
	// aab: true
	// aba: false
}

// ExampleWithDefinition builds an automaton in code.
func ExampleWithDefinition() {
	b := dsl.New("a-then-eps")
	b.State("s").Initial().On("t", "a")
	b.State("t").Epsilon("u")
	b.State("u").Final()

	engine, err := automata.New("", automata.WithDefinition(b.MustBuild()))
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range []string{"", "a", "aa"} {
		ok, _ := engine.Accepts(context.Background(), "a-then-eps", w)
		fmt.Printf("%q: %t\n", w, ok)
	}

	// Output:
	// "": false
	// "a": true
	// "aa": false
}
