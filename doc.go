/*
Package automata loads finite automata with epsilon transitions and answers two questions about them:
is the automaton deterministic, and does it accept a given word.

Membership is decided by subset simulation: the engine tracks every state the automaton may be in,
following every matching transition and the epsilon closure of each target, so non-deterministic
automata are evaluated exactly. Evaluation is linear in the length of the word.

# Definitions

Automata are described in a line-oriented text syntax,

	states
	q0:I:F
	q1
	transitions
	q0->q1[label=a]
	q1->q0[label=a,ε]
	L

or as a YAML/JSON document (also usable as Markdown frontmatter),

	initial: q0
	final: [q0]
	states: [q0, q1]
	transitions:
	  - {from: q0, to: q1, label: a}
	  - {from: q1, to: q0, labels: [a, ε]}

# Usage

By default the engine reads definitions from a Loam repository (a directory of Markdown, YAML or JSON files).

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/automata"
	)

	func main() {
		eng, err := automata.New("./definitions")
		if err != nil {
			log.Fatal(err)
		}

		ok, err := eng.Accepts(context.Background(), "even-a", "aaaa")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(ok)
	}

Other sources plug in through WithLoader (see pkg/adapters), and automata built in code
with pkg/dsl are registered through WithDefinition.
*/
package automata
