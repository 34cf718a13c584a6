// Package clientaction exposes operations of the connected MCP client
// (elicitation, roots listing, sampling) as registry methods, letting
// server-side tools call back into the client through the same surface as
// any other service.
package clientaction
