package tool

import (
	"context"
	"encoding/json"
	"reflect"

	mcpschema "github.com/viant/mcp-protocol/schema"
	mcpclient "github.com/viant/mcp/client"

	"github.com/mcpsuite/aws-mcp/internal/conv"
	"github.com/mcpsuite/aws-mcp/mcp/tool/conversion"
	"github.com/mcpsuite/aws-mcp/service"
)

// Proxy implements service.Service by delegating each method to a
// corresponding remote MCP tool.  The service is generated at runtime based
// on the server's listTools response, which is how tools of external MCP
// endpoints federate into the local registry.
type Proxy struct {
	name    string
	client  mcpclient.Interface
	methods map[string]*mcpschema.Tool
	sigs    service.Signatures
}

// NewProxy introspects the remote server (paging through listTools) and
// builds a proxy service whose method signatures mirror the remote schemas.
func NewProxy(ctx context.Context, name string, cli mcpclient.Interface) (service.Service, error) {
	tools := make([]mcpschema.Tool, 0)
	var cursor *string
	for {
		res, err := cli.ListTools(ctx, cursor)
		if err != nil {
			return nil, err
		}
		tools = append(tools, res.Tools...)
		if res.NextCursor == nil || *res.NextCursor == "" {
			break
		}
		cursor = res.NextCursor
	}

	m := make(map[string]*mcpschema.Tool, len(tools))
	sigs := make(service.Signatures, 0, len(tools))
	for i := range tools {
		remote := &tools[i]
		m[remote.Name] = remote

		// Convert the remote JSON schemas into Go types so that the local
		// registry can expose accurate signatures.  The generated types are
		// later re-converted to JSON schema when the tool registry is built,
		// so the round-trip must preserve property information.
		var (
			inType  reflect.Type
			outType reflect.Type
			errConv error
		)

		if remote.InputSchema.Type != "" || len(remote.InputSchema.Properties) > 0 {
			if inType, errConv = conversion.TypeFromInputSchema(remote.InputSchema); errConv != nil {
				inType = reflect.TypeOf(map[string]interface{}{})
			}
		} else {
			inType = reflect.TypeOf(map[string]interface{}{})
		}

		if remote.OutputSchema != nil {
			if outType, errConv = conversion.TypeFromOutputSchema(*remote.OutputSchema); errConv != nil {
				outType = reflect.TypeOf(map[string]interface{}{})
			}
		} else {
			// Servers without an output schema still yield a structured
			// value: an empty object.
			outType = reflect.StructOf([]reflect.StructField{})
		}

		sigs = append(sigs, service.Signature{
			Name:        remote.Name,
			Description: conv.Dereference[string](remote.Description),
			Input:       inType,
			Output:      outType,
		})
	}

	return &Proxy{name: name, client: cli, methods: m, sigs: sigs}, nil
}

func (r *Proxy) Name() string {
	return r.name
}

func (r *Proxy) Methods() service.Signatures {
	return r.sigs
}

func (r *Proxy) Method(name string) (service.Executable, error) {
	remote, ok := r.methods[name]
	if !ok {
		return nil, service.NewMethodNotFoundError(name)
	}

	exec := func(ctx context.Context, input, output interface{}) error {
		// Coerce input into the map[string]interface{} shape MCP expects.
		args, _ := conv.ToMap(input)

		params := &mcpschema.CallToolRequestParams{
			Name:      remote.Name,
			Arguments: args,
		}

		res, err := r.client.CallTool(ctx, params)
		if err != nil {
			return err
		}

		// Propagate the response into output when the caller provided one.
		if output != nil {
			switch v := output.(type) {
			case *string:
				if len(res.Content) == 1 && res.Content[0].Type == "text" {
					*v = res.Content[0].Text
				} else {
					data, _ := json.Marshal(res.Content)
					*v = string(data)
				}
			case **mcpschema.CallToolResult:
				if v != nil {
					*v = res
				}
			default:
				// Best effort: JSON encode then decode into the pointer.
				data, err := json.Marshal(res)
				if err == nil {
					_ = json.Unmarshal(data, v)
				}
			}
		}
		return nil
	}

	return exec, nil
}
