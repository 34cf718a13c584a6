package mcp

import (
	"context"
	"fmt"
	"reflect"
	"time"

	serverproto "github.com/viant/mcp-protocol/server"

	"github.com/mcpsuite/aws-mcp/internal/conv"
	"github.com/mcpsuite/aws-mcp/mcp/matcher"
	"github.com/mcpsuite/aws-mcp/mcp/tool"
)

// Tools returns every registered tool as a server-side entry backed by the
// cached tool table.
func (s *Service) Tools() serverproto.Tools {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(serverproto.Tools, 0, len(s.mcpTools))
	for i := range s.mcpTools {
		e := &s.mcpTools[i]
		result = append(result, &serverproto.ToolEntry{
			Metadata: e.metadata,
			Handler:  e.handler,
		})
	}
	return result
}

// LookupTool returns the server-side entry for the given tool name.
func (s *Service) LookupTool(name string) (*serverproto.ToolEntry, error) {
	e, ok := s.toolEntryByName(tool.Canonical(name))
	if !ok {
		return nil, fmt.Errorf("unknown tool: %v", name)
	}
	return &serverproto.ToolEntry{
		Metadata: e.metadata,
		Handler:  e.handler,
	}, nil
}

// MatchTools returns the names of tools whose service matches the pattern:
// "*" selects everything, a trailing-slash pattern selects by prefix and
// anything else matches the service name exactly. Results use slash
// notation, e.g. "aws/s3/listBuckets".
func (s *Service) MatchTools(pattern string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []string
	for _, e := range s.mcpTools {
		name := tool.Name(e.name)
		if matcher.Match(pattern, name.Service()) {
			result = append(result, name.Service()+"/"+name.Method())
		}
	}
	return result
}

// ExecuteTool invokes a registered service method with the supplied
// arguments, bounded by timeout when positive.
func (s *Service) ExecuteTool(ctx context.Context, name string, args map[string]interface{}, timeout time.Duration) (interface{}, error) {
	toolName := tool.Name(tool.Canonical(name))

	svc := s.registry.Lookup(toolName.Service())
	if svc == nil {
		return nil, fmt.Errorf("unknown tool: %v", name)
	}
	sig := svc.Methods().Lookup(toolName.Method())
	if sig == nil {
		return nil, fmt.Errorf("unknown tool: %v", name)
	}
	exec, err := svc.Method(toolName.Method())
	if err != nil {
		return nil, err
	}

	input, err := newSignatureValue(sig.Input)
	if err != nil {
		return nil, err
	}
	if input != nil && len(args) > 0 {
		if err := conv.Convert(args, input); err != nil {
			return nil, fmt.Errorf("invalid arguments for %v: %w", name, err)
		}
	}
	output, err := newSignatureValue(sig.Output)
	if err != nil {
		return nil, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	if err := exec(ctx, input, output); err != nil {
		s.logger.Debug().Str("tool", toolName.String()).Dur("elapsed", time.Since(started)).Err(err).Msg("tool failed")
		return nil, err
	}
	s.logger.Debug().Str("tool", toolName.String()).Dur("elapsed", time.Since(started)).Msg("tool executed")
	return output, nil
}

// newSignatureValue allocates a fresh value for a signature input or output
// type, nil for nil.
func newSignatureValue(t reflect.Type) (interface{}, error) {
	if t == nil {
		return nil, nil
	}
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface(), nil
	}
	return reflect.New(t).Interface(), nil
}
