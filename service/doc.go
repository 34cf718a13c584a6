// Package service defines the contract every tool provider in this module
// implements: a named service exposing typed method signatures together with
// an executable per method.  The mcp package converts registered services
// into MCP tool entries, so the types here are the seam between the AWS
// wrappers and the protocol layer.
package service
