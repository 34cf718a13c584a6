package service

import (
	"context"
	"fmt"
	"reflect"
)

// Signature describes a single callable method: its name, a natural-language
// description consumed by MCP hosts, and the reflect types of its input and
// output payloads.  Input/Output are usually pointers to structs so that the
// schema builder can introspect their fields.
type Signature struct {
	Name        string
	Description string
	Input       reflect.Type
	Output      reflect.Type
}

// Signatures is an ordered collection of method signatures.
type Signatures []Signature

// Lookup returns the signature with the given name or nil when absent.
func (s Signatures) Lookup(name string) *Signature {
	for i := range s {
		if s[i].Name == name {
			return &s[i]
		}
	}
	return nil
}

// Executable invokes one method.  The input value matches the signature's
// Input type (or a generic map coerced by the callee); when output is a
// non-nil pointer the result is written through it.
type Executable func(ctx context.Context, input, output interface{}) error

// Service groups related methods under one name, e.g. "aws/s3".
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}

// MethodNotFoundError reports a lookup of an unknown method.
type MethodNotFoundError struct {
	Method string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("method not found: %v", e.Method)
}

// NewMethodNotFoundError creates a MethodNotFoundError for the given name.
func NewMethodNotFoundError(name string) error {
	return &MethodNotFoundError{Method: name}
}
