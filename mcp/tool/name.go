package tool

import "strings"

// Name represents a tool name in canonical `service_name-method` form, where
// slashes in the service name are flattened to underscores so the value stays
// a legal MCP tool identifier.
type Name string

// Service returns the registry service name, e.g. "aws/s3".
func (t Name) Service() string {
	tool := string(t)
	if idx := strings.LastIndex(tool, "-"); idx != -1 {
		return strings.ReplaceAll(tool[:idx], "_", "/")
	}
	return tool
}

// Method returns the method part of the tool name.
func (t Name) Method() string {
	tool := string(t)
	if idx := strings.LastIndex(tool, "-"); idx != -1 {
		return tool[idx+1:]
	}
	return ""
}

func (t Name) String() string {
	return string(t)
}

// NewName builds a canonical tool name from a service and method pair.
func NewName(service, method string) Name {
	return Name(strings.ReplaceAll(service, "/", "_") + "-" + method)
}

// Canonical normalises the various spellings users type on the CLI
// (aws/s3.listBuckets, aws/s3-listBuckets, aws/s3/listBuckets) into the
// canonical tool name.
func Canonical(name string) string {
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return NewName(name[:idx], name[idx+1:]).String()
	}
	if idx := strings.LastIndex(name, "-"); idx != -1 {
		return NewName(strings.ReplaceAll(name[:idx], "_", "/"), name[idx+1:]).String()
	}
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		return NewName(name[:idx], name[idx+1:]).String()
	}
	return name
}
