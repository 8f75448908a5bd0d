/*
Package ports defines the driven ports (interfaces) of the automata engine.

These interfaces decouple the recognition core from external implementations,
allowing definitions to come from various storage backends and the engine to
be exposed through various transports.

# Key Interfaces

  - DefinitionLoader: Retrieves raw definitions (e.g., from Loam, a directory, Redis or Memory).
  - DefinitionStore: A DefinitionLoader that can also save and delete definitions.
  - Catalog: What transports (HTTP, MCP) need from the engine.
*/
package ports
