// Package mcp wires the AWS tool services into the MCP protocol
// implementation. Its central Service type loads configuration, builds the
// shared AWS client plumbing, registers built-in as well as external tools
// and exposes them over an MCP server.
package mcp
