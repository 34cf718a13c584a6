package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type greetInput struct {
	Name string `json:"name"`
}

type greetOutput struct {
	Greeting string `json:"greeting"`
}

func newGreeter() *Base {
	return NewBase("test/greeter",
		NewMethod("greet", "Greet by name",
			func(ctx context.Context, input *greetInput) (*greetOutput, error) {
				return &greetOutput{Greeting: "hello " + input.Name}, nil
			}))
}

func TestNewMethod(t *testing.T) {
	svc := newGreeter()

	sig := svc.Methods().Lookup("greet")
	if !assert.NotNil(t, sig) {
		return
	}
	assert.EqualValues(t, "greet", sig.Name)
	assert.EqualValues(t, "*service.greetInput", sig.Input.String())

	exec, err := svc.Method("greet")
	assert.NoError(t, err)

	// Typed input.
	out := &greetOutput{}
	err = exec(context.Background(), &greetInput{Name: "ann"}, out)
	assert.NoError(t, err)
	assert.EqualValues(t, "hello ann", out.Greeting)

	// Generic map input is coerced via a JSON round-trip.
	out = &greetOutput{}
	err = exec(context.Background(), map[string]interface{}{"name": "bob"}, out)
	assert.NoError(t, err)
	assert.EqualValues(t, "hello bob", out.Greeting)

	// Nil input falls back to the zero value.
	out = &greetOutput{}
	err = exec(context.Background(), nil, out)
	assert.NoError(t, err)
	assert.EqualValues(t, "hello ", out.Greeting)

	_, err = svc.Method("unknown")
	assert.Error(t, err)
}
