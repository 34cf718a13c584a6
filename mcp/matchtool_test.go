package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestServiceMatchTools verifies that the MatchTools helper applies the same
// pattern-matching semantics as resolveBuiltinServices (see builtins.go).
func TestServiceMatchTools(t *testing.T) {
	ctx := context.Background()

	svc, err := New(ctx)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	if err = svc.Start(ctx); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}

	// '*' returns the full table.
	all := svc.Tools()
	star := svc.MatchTools("*")
	assert.EqualValues(t, len(all), len(star))

	// Empty pattern matches nothing.
	assert.Empty(t, svc.MatchTools(""))

	// Prefix pattern selects every aws service tool.
	pref := svc.MatchTools("aws/")
	assert.EqualValues(t, len(all), len(pref))
	for _, name := range pref {
		assert.True(t, strings.HasPrefix(name, "aws/"), "unexpected match %s", name)
	}

	// Exact service pattern selects only that service's methods.
	s3Only := svc.MatchTools("aws/s3")
	assert.NotEmpty(t, s3Only)
	for _, name := range s3Only {
		assert.True(t, strings.HasPrefix(name, "aws/s3/"), "unexpected match %s", name)
	}
	assert.Contains(t, s3Only, "aws/s3/listBuckets")

	// Unknown service matches nothing.
	assert.Empty(t, svc.MatchTools("gcp/storage"))
}
