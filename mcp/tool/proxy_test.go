package tool_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jsonrpc"
	transport "github.com/viant/jsonrpc/transport"
	mcp "github.com/viant/mcp"
	protocolclient "github.com/viant/mcp-protocol/client"
	mcpLogger "github.com/viant/mcp-protocol/logger"
	mcpschema "github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
	mcpclient "github.com/viant/mcp/client"

	coretool "github.com/mcpsuite/aws-mcp/mcp/tool"
)

// echoHandler is a minimal MCP tool that echoes back the provided message.
func echoHandler(_ context.Context, req *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	msg, _ := req.Params.Arguments["message"].(string)
	return &mcpschema.CallToolResult{Content: []mcpschema.CallToolResultContentElem{{
		Type: "text",
		Text: msg,
	}}}, nil
}

// newTestServer spins up an in-process MCP server exposing the echo tool and
// returns a client connected to it.
func newTestServer(t *testing.T) mcpclient.Interface {
	t.Helper()

	newImpl := func(ctx context.Context, _ transport.Notifier, _ mcpLogger.Logger, _ protocolclient.Operations) (protoserver.Handler, error) {
		impl := protoserver.NewDefaultHandler(nil, nil, nil)

		desc := "echo message back"
		entry := &protoserver.ToolEntry{
			Metadata: mcpschema.Tool{
				Name:        "echo",
				Description: &desc,
				InputSchema: mcpschema.ToolInputSchema{
					Type: "object",
					Properties: map[string]map[string]interface{}{
						"message": {"type": "string"},
					},
					Required: []string{"message"},
				},
				OutputSchema: &mcpschema.ToolOutputSchema{
					Type: "object",
					Properties: map[string]map[string]interface{}{
						"message": {"type": "string"},
					},
					Required: []string{"message"},
				},
			},
			Handler: echoHandler,
		}
		impl.Registry.ToolRegistry.Put("echo", entry)
		return impl, nil
	}

	srv, err := mcp.NewServer(newImpl, nil)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv.AsClient(context.Background())
}

func TestProxy_Echo(t *testing.T) {
	ctx := context.Background()
	cli := newTestServer(t)

	svc, err := coretool.NewProxy(ctx, "test", cli)
	if err != nil {
		t.Fatalf("failed to create proxy service: %v", err)
	}

	sig := svc.Methods().Lookup("echo")
	if sig == nil {
		t.Fatalf("expected signature for echo tool")
	}

	assert.EqualValues(t, reflect.Struct, sig.Input.Kind())
	field, ok := sig.Input.FieldByName("Message")
	if assert.True(t, ok, "expected Message field in generated struct") {
		assert.EqualValues(t, reflect.String, field.Type.Kind())
	}

	exec, err := svc.Method("echo")
	if err != nil {
		t.Fatalf("Method lookup failed: %v", err)
	}

	var response string
	err = exec(ctx, map[string]interface{}{"message": "hello"}, &response)
	assert.NoError(t, err)
	assert.EqualValues(t, "hello", response)

	_, err = svc.Method("missing")
	assert.Error(t, err)
}
