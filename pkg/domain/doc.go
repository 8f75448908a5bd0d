/*
Package domain contains the core model of a finite automaton.

It defines the fundamental entities (States, Transitions, Symbols) and the
aggregate Automaton that owns them. This package is kept pure and free of
external dependencies like I/O or persistence: loaders build an Automaton,
freeze it, and hand it to the recognition algorithms in internal/runtime.

# Key Entities

  - Symbol: A transition label, either a single input character or Epsilon.
  - State: A named vertex. Equality is by name.
  - Transition: A labeled edge between two states. Equality is by (From, To, Symbol).
  - Automaton: The set of states, the optional initial state, the final states and the transitions.
  - Trace: The step-by-step record of a word evaluation.
*/
package domain
