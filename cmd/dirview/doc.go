// Command dirview runs the session-lifecycle core with the in-memory
// surface primitives and serves the debug/introspection API.
//
// Startup sequence:
//  1. Load configuration (environment + optional YAML render config)
//  2. Seed the static capability registries (attributes, dispatchers)
//  3. Validate every configured capability name against the registries
//  4. Wire the activation engine over the surface table
//  5. Serve /surfaces, /sessions, /stats, /metrics and /events
//
// The binary exists for integration against a host environment and for
// poking at the core by hand; the real display-surface primitives are
// supplied by the embedding host.
package main
