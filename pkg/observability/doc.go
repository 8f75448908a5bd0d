/*
Package observability turns engine lifecycle events into Prometheus metrics.

Metrics.Hooks plugs into automata.WithLifecycleHooks; Combine merges it with other hooks
(logging, streaming) so that one engine can feed several observers.
*/
package observability
