package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcpsuite/aws-mcp/service"
)

// TestServiceTools ensures that the service exposes a tool entry for every
// registered service method and that each entry resolves individually via
// LookupTool.
func TestServiceTools(t *testing.T) {
	ctx := context.Background()

	svc, err := New(ctx)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	if err = svc.Start(ctx); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}

	var expected int
	registry := svc.Registry()
	for _, name := range registry.Services() {
		expected += len(registry.Lookup(name).Methods())
	}

	tools := svc.Tools()
	assert.EqualValues(t, expected, len(tools))

	for _, te := range tools {
		entry, err := svc.LookupTool(te.Metadata.Name)
		if assert.NoError(t, err, "LookupTool(%q) returned error", te.Metadata.Name) {
			assert.EqualValues(t, te.Metadata.Name, entry.Metadata.Name)
		}
	}
}

type echoInput struct {
	Message string `json:"message"`
}

type echoOutput struct {
	Message string `json:"message"`
}

func newEchoService() service.Service {
	return service.NewBase("test/echo",
		service.NewMethod("say", "Echo a message back",
			func(ctx context.Context, input *echoInput) (*echoOutput, error) {
				return &echoOutput{Message: input.Message}, nil
			}))
}

func TestServiceExecuteTool(t *testing.T) {
	ctx := context.Background()

	svc, err := New(ctx, WithServices(newEchoService()))
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	out, err := svc.ExecuteTool(ctx, "test_echo-say", map[string]interface{}{"message": "hello"}, time.Minute)
	assert.NoError(t, err)
	actual, ok := out.(*echoOutput)
	if assert.True(t, ok, "unexpected output type %T", out) {
		assert.EqualValues(t, "hello", actual.Message)
	}

	// CLI spellings normalise to the same tool.
	out, err = svc.ExecuteTool(ctx, "test/echo.say", map[string]interface{}{"message": "again"}, time.Minute)
	assert.NoError(t, err)
	if actual, ok := out.(*echoOutput); assert.True(t, ok) {
		assert.EqualValues(t, "again", actual.Message)
	}

	_, err = svc.ExecuteTool(ctx, "test_echo-missing", nil, time.Minute)
	assert.Error(t, err)
}
