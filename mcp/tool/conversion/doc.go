// Package conversion translates between method signatures (reflect types)
// and MCP JSON schemas in both directions: BuildSchema derives tool metadata
// from Go types, while TypeFromInputSchema/TypeFromOutputSchema generate Go
// struct types for tools discovered on remote MCP servers.
package conversion
