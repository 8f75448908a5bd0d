// Package runtime implements the recognition algorithms: epsilon closure,
// the determinism check and word membership by subset simulation.
//
// The package-level functions are pure and safe for concurrent use on a frozen
// domain.Automaton. Engine wraps them with logging and lifecycle hooks.
package runtime
