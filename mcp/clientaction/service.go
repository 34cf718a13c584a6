package clientaction

import (
	"context"
	"errors"
	"reflect"

	"github.com/viant/jsonrpc"
	protocolclient "github.com/viant/mcp-protocol/client"
	mcpschema "github.com/viant/mcp-protocol/schema"

	"github.com/mcpsuite/aws-mcp/internal/conv"
	"github.com/mcpsuite/aws-mcp/service"
)

const serviceName = "mcpClient"

// Service exposes MCP client-side operations (roots/list, elicit,
// sampling/createMessage) as registry methods so agents can reach back to
// the connected client through the same tool surface.
//
// Only operations the underlying client Implements are exported.
type Service struct {
	cli       protocolclient.Operations
	sigs      service.Signatures
	executors map[string]service.Executable
}

// New builds the service by introspecting the client capabilities.
func New(cli protocolclient.Operations) *Service {
	s := &Service{
		cli:       cli,
		executors: map[string]service.Executable{},
	}

	type op struct {
		methodConst string // for Implements()
		name        string
		in          reflect.Type
		out         reflect.Type
		call        func(ctx context.Context, c protocolclient.Operations, in interface{}) (interface{}, *jsonrpc.Error)
		desc        string
	}

	ops := []op{
		{
			methodConst: mcpschema.MethodElicitationCreate,
			name:        "elicit",
			in:          reflect.TypeOf(&mcpschema.ElicitRequestParams{}),
			out:         reflect.TypeOf(&mcpschema.ElicitResult{}),
			call: func(ctx context.Context, c protocolclient.Operations, in interface{}) (interface{}, *jsonrpc.Error) {
				p, _ := in.(*mcpschema.ElicitRequestParams)
				return c.Elicit(ctx, &jsonrpc.TypedRequest[*mcpschema.ElicitRequest]{Request: &mcpschema.ElicitRequest{Params: *p}})
			},
			desc: "Request structured input from the connected MCP client",
		},
		{
			methodConst: mcpschema.MethodRootsList,
			name:        "listRoots",
			in:          reflect.TypeOf(&mcpschema.ListRootsRequestParams{}),
			out:         reflect.TypeOf(&mcpschema.ListRootsResult{}),
			call: func(ctx context.Context, c protocolclient.Operations, in interface{}) (interface{}, *jsonrpc.Error) {
				p, _ := in.(*mcpschema.ListRootsRequestParams)
				return c.ListRoots(ctx, &jsonrpc.TypedRequest[*mcpschema.ListRootsRequest]{Request: &mcpschema.ListRootsRequest{Params: p}})
			},
			desc: "List filesystem roots exposed by the connected MCP client",
		},
		{
			methodConst: mcpschema.MethodSamplingCreateMessage,
			name:        "createMessage",
			in:          reflect.TypeOf(&mcpschema.CreateMessageRequestParams{}),
			out:         reflect.TypeOf(&mcpschema.CreateMessageResult{}),
			call: func(ctx context.Context, c protocolclient.Operations, in interface{}) (interface{}, *jsonrpc.Error) {
				p, _ := in.(*mcpschema.CreateMessageRequestParams)
				return c.CreateMessage(ctx, &jsonrpc.TypedRequest[*mcpschema.CreateMessageRequest]{Request: &mcpschema.CreateMessageRequest{Params: *p}})
			},
			desc: "Request an LLM completion via the client sampling endpoint",
		},
	}

	for _, o := range ops {
		if !cli.Implements(o.methodConst) {
			continue
		}

		opCopy := o
		exec := func(ctx context.Context, input, output interface{}) error {
			// Accept either the typed *struct or a generic map.
			var param interface{}
			if input == nil {
				// ops tolerate nil params
			} else if reflect.TypeOf(input) == opCopy.in {
				param = input
			} else {
				paramVal := reflect.New(opCopy.in.Elem()).Interface()
				if err := conv.Convert(input, paramVal); err != nil {
					return err
				}
				param = paramVal
			}

			res, jerr := opCopy.call(ctx, s.cli, param)
			if jerr != nil {
				return errors.New(jerr.Message)
			}

			if output != nil {
				switch outPtr := output.(type) {
				case *interface{}:
					*outPtr = res
				default:
					_ = conv.Convert(res, outPtr)
				}
			}
			return nil
		}

		s.executors[opCopy.name] = exec
		s.sigs = append(s.sigs, service.Signature{
			Name:        opCopy.name,
			Description: opCopy.desc,
			Input:       opCopy.in,
			Output:      opCopy.out,
		})
	}

	return s
}

func (s *Service) Name() string { return serviceName }

func (s *Service) Methods() service.Signatures { return s.sigs }

func (s *Service) Method(name string) (service.Executable, error) {
	if exec, ok := s.executors[name]; ok {
		return exec, nil
	}
	return nil, service.NewMethodNotFoundError(name)
}
