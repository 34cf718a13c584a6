package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type echoInput struct {
	Message string `json:"message"`
}

type echoOutput struct {
	Message string `json:"message"`
}

func newEchoService() Service {
	return NewBase("test/echo",
		NewMethod("echo", "Echo the message back", func(_ context.Context, in *echoInput) (*echoOutput, error) {
			return &echoOutput{Message: in.Message}, nil
		}),
	)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	svc := newEchoService()

	assert.NoError(t, registry.Register(svc))
	assert.Error(t, registry.Register(svc), "duplicate registration must fail")
	assert.Error(t, registry.Register(nil))

	assert.EqualValues(t, []string{"test/echo"}, registry.Services())
	assert.NotNil(t, registry.Lookup("test/echo"))
	assert.Nil(t, registry.Lookup("test/missing"))
}

func TestNewMethod(t *testing.T) {
	svc := newEchoService()

	sig := svc.Methods().Lookup("echo")
	if assert.NotNil(t, sig) {
		assert.EqualValues(t, "echo", sig.Name)
		assert.NotNil(t, sig.Input)
		assert.NotNil(t, sig.Output)
	}

	exec, err := svc.Method("echo")
	assert.NoError(t, err)

	// Typed input.
	var out echoOutput
	assert.NoError(t, exec(context.Background(), &echoInput{Message: "hi"}, &out))
	assert.EqualValues(t, "hi", out.Message)

	// Generic map input is coerced.
	out = echoOutput{}
	assert.NoError(t, exec(context.Background(), map[string]interface{}{"message": "there"}, &out))
	assert.EqualValues(t, "there", out.Message)

	// Unknown method.
	_, err = svc.Method("missing")
	assert.Error(t, err)
}
