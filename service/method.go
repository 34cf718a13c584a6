package service

import (
	"context"
	"reflect"

	"github.com/mcpsuite/aws-mcp/internal/conv"
)

// Method pairs a signature with its executable.
type Method struct {
	Signature  Signature
	Executable Executable
}

// NewMethod builds a Method from a typed handler.  The generated executable
// accepts either a *I (the usual case when invoked through the tool layer) or
// any value coercible into I via a JSON round-trip, and writes the handler
// result through the output pointer when one is supplied.
func NewMethod[I any, O any](name, description string, handler func(ctx context.Context, input *I) (*O, error)) Method {
	exec := func(ctx context.Context, input, output interface{}) error {
		in := new(I)
		switch v := input.(type) {
		case nil:
		case *I:
			in = v
		default:
			if err := conv.Convert(input, in); err != nil {
				return err
			}
		}
		out, err := handler(ctx, in)
		if err != nil {
			return err
		}
		if output != nil && out != nil {
			return conv.Convert(out, output)
		}
		return nil
	}
	return Method{
		Signature: Signature{
			Name:        name,
			Description: description,
			Input:       reflect.TypeOf((*I)(nil)),
			Output:      reflect.TypeOf((*O)(nil)),
		},
		Executable: exec,
	}
}

// Base implements Service over a static method table.  Tool providers embed
// it and supply their methods at construction time.
type Base struct {
	name      string
	sigs      Signatures
	executors map[string]Executable
}

// NewBase assembles a Base service from the supplied methods.
func NewBase(name string, methods ...Method) *Base {
	b := &Base{name: name, executors: make(map[string]Executable, len(methods))}
	for _, m := range methods {
		b.sigs = append(b.sigs, m.Signature)
		b.executors[m.Signature.Name] = m.Executable
	}
	return b
}

func (b *Base) Name() string { return b.name }

func (b *Base) Methods() Signatures { return b.sigs }

func (b *Base) Method(name string) (Executable, error) {
	if e, ok := b.executors[name]; ok {
		return e, nil
	}
	return nil, NewMethodNotFoundError(name)
}
