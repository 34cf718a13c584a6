package mcp

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"

	iconv "github.com/mcpsuite/aws-mcp/internal/conv"
	"github.com/mcpsuite/aws-mcp/mcp/tool"
	"github.com/mcpsuite/aws-mcp/mcp/tool/conversion"
	"github.com/mcpsuite/aws-mcp/service"
)

// defaultToolTimeout caps a single tool invocation issued over MCP.
const defaultToolTimeout = 15 * time.Minute

// toolEntry holds metadata and execution handler for one MCP tool derived
// from a registry service method.
type toolEntry struct {
	name        string
	description string
	metadata    mcpschema.Tool
	handler     func(context.Context, *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error)
}

// addToolEntries appends tool entries to the cached table, skipping
// duplicates so that every registration path behaves consistently. The first
// definition of a name wins.
func (s *Service) addToolEntries(entries []toolEntry) {
	if len(entries) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]struct{}, len(s.mcpTools))
	for _, e := range s.mcpTools {
		existing[e.name] = struct{}{}
	}

	for _, e := range entries {
		if _, dup := existing[e.name]; dup {
			s.logger.Warn().Str("tool", e.name).Msg("duplicate tool name, keeping first definition")
			continue
		}
		s.mcpTools = append(s.mcpTools, e)
		existing[e.name] = struct{}{}
	}
}

// buildToolTable creates the unified tool table once during service
// bootstrap.
func (s *Service) buildToolTable() {
	for _, name := range s.registry.Services() {
		svc := s.registry.Lookup(name)
		if svc == nil {
			continue
		}
		s.addToolEntries(s.serviceToToolEntries(svc))
	}
}

// registerService adds a service to the registry and extends the tool table,
// used for services discovered after bootstrap.
func (s *Service) registerService(svc service.Service) error {
	if err := s.registry.Register(svc); err != nil {
		return err
	}
	s.addToolEntries(s.serviceToToolEntries(svc))
	return nil
}

// serviceToToolEntries converts a single registry service to tool entries.
func (s *Service) serviceToToolEntries(svc service.Service) []toolEntry {
	entries := make([]toolEntry, 0, len(svc.Methods()))
	for _, sig := range svc.Methods() {
		toolName := tool.NewName(svc.Name(), sig.Name).String()

		var toolMeta mcpschema.Tool
		var buildErr error
		// mcpClient request/response types contain recursive definitions that
		// BuildSchema cannot expand, use the minimal input-only schema there.
		if svc.Name() != "mcpClient" {
			toolMeta, buildErr = conversion.BuildSchema(&sig)
		}
		if buildErr != nil || svc.Name() == "mcpClient" {
			toolMeta = inputOnlyTool(toolName, &sig)
		} else {
			toolMeta.Name = toolName
			if toolMeta.Description == nil {
				toolMeta.Description = &sig.Description
			}
		}

		entries = append(entries, toolEntry{
			name:        toolName,
			description: iconv.Dereference[string](toolMeta.Description),
			metadata:    toolMeta,
			handler:     s.newToolHandler(toolName),
		})
	}
	return entries
}

// inputOnlyTool derives tool metadata from the input type alone.
func inputOnlyTool(name string, sig *service.Signature) mcpschema.Tool {
	var inputSchema mcpschema.ToolInputSchema
	if sig.Input != nil {
		var sample interface{}
		if sig.Input.Kind() == reflect.Pointer {
			sample = reflect.New(sig.Input.Elem()).Interface()
		} else {
			sample = reflect.New(sig.Input).Interface()
		}
		_ = inputSchema.Load(sample)
	}
	if inputSchema.Type == "" {
		inputSchema.Type = "object"
	}
	return mcpschema.Tool{
		Name:        name,
		Description: &sig.Description,
		InputSchema: inputSchema,
	}
}

// newToolHandler builds the CallTool handler for a named tool. Execution
// failures surface as IsError results instead of protocol faults so agents
// can read the message and retry.
func (s *Service) newToolHandler(name string) func(context.Context, *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	return func(ctx context.Context, req *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
		output, err := s.ExecuteTool(ctx, name, req.Params.Arguments, defaultToolTimeout)
		res := &mcpschema.CallToolResult{}
		if err != nil {
			res.IsError = iconv.Pointer[bool](true)
			res.Content = append(res.Content, mcpschema.CallToolResultContentElem{
				Type: "text",
				Text: err.Error(),
			})
			return res, nil
		}

		var data []byte
		switch actual := output.(type) {
		case string:
			data = []byte(actual)
		case []byte:
			data = actual
		default:
			data, _ = json.Marshal(output)
		}
		res.Content = append(res.Content, mcpschema.CallToolResultContentElem{
			Type: "text",
			Text: string(data),
		})
		return res, nil
	}
}
