/*
Package dsl provides a Go DSL for programmatically constructing automata.

It allows developers to define automata with a fluent builder instead of
definition files. This is particularly useful for unit tests and for
automata generated at runtime.

Example usage:

	b := dsl.New("ends-with-ab")

	b.State("q0").Initial().
		On("q0", "a", "b").
		OnRune('a', "q1")

	b.State("q1").OnRune('b', "q2")
	b.State("q2").Final()

	a, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	// a is frozen and ready for runtime.Accepts / runtime.IsDeterministic.
*/
package dsl
