// Package tool provides the canonical tool-name codec and a proxy service
// that exposes tools of a remote MCP server as a local service.
package tool
