// Package config defines the startup configuration model: MCP server
// options, AWS credential/region overrides, builtin selection and the set
// of external MCP endpoints that are federated into the local registry.
package config
