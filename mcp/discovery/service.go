package discovery

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	mcpschema "github.com/viant/mcp-protocol/schema"
	mcpclient "github.com/viant/mcp/client"

	"github.com/mcpsuite/aws-mcp/internal/conv"
	"github.com/mcpsuite/aws-mcp/mcp/config"
	"github.com/mcpsuite/aws-mcp/service"
)

// Service exposes the discovery endpoints (resources and prompts) of one
// external MCP endpoint as callable methods. One instance maps to a single
// logical namespace, e.g. "<server>/resources".
type Service struct {
	name      string
	sigs      service.Signatures
	executors map[string]service.Executable
}

func (s *Service) Name() string                { return s.name }
func (s *Service) Methods() service.Signatures { return s.sigs }
func (s *Service) Method(name string) (service.Executable, error) {
	if e, ok := s.executors[name]; ok {
		return e, nil
	}
	return nil, service.NewMethodNotFoundError(name)
}

func (s *Service) add(name, description string, in, out reflect.Type, exec service.Executable) {
	s.sigs = append(s.sigs, service.Signature{Name: name, Description: description, Input: in, Output: out})
	s.executors[name] = exec
}

// coerce converts input into *T, tolerating nil when allowNil is set.
func coerce[T any](input interface{}, allowNil bool) (*T, error) {
	switch v := input.(type) {
	case nil:
		if allowNil {
			return nil, nil
		}
		return new(T), nil
	case *T:
		return v, nil
	default:
		tmp := new(T)
		if err := conv.Convert(input, tmp); err != nil {
			return nil, err
		}
		return tmp, nil
	}
}

// injectMetadata merges the configured key/value map into meta["metadata"],
// preserving anything the server already put there.
func injectMetadata(meta *map[string]interface{}, extra map[string]interface{}) {
	if len(extra) == 0 {
		return
	}
	if *meta == nil {
		*meta = map[string]interface{}{}
	}
	if existing, ok := (*meta)["metadata"].(map[string]interface{}); ok {
		for k, v := range extra {
			existing[k] = v
		}
		(*meta)["metadata"] = existing
		return
	}
	(*meta)["metadata"] = extra
}

// New builds discovery services for the provided MCP client. It returns
// multiple services so tool names come out intuitive:
//
//	<prefix>/resources-list
//	<prefix>/resources-read
//	<prefix>/resources_templates-list
//	<prefix>/prompts-list
//	<prefix>/prompts-get
//
// where <prefix> derives from the client name (underscores become slashes).
// cfg may carry description overrides and metadata to inject into results.
func New(ctx context.Context, cfg *config.MCPClient, cli mcpclient.Interface) ([]service.Service, error) {
	if cfg == nil || cfg.ClientOptions == nil {
		return nil, fmt.Errorf("nil client options")
	}
	prefix := strings.ReplaceAll(cfg.Name, "_", "/")

	desc := func(key, def string) string {
		if v, ok := cfg.Descriptions[key]; ok && v != "" {
			return v
		}
		return def
	}

	hasResources, hasTemplates, hasPrompts := capabilities(ctx, cli)

	var out []service.Service

	if hasResources {
		s := &Service{name: prefix + "/resources", executors: map[string]service.Executable{}}
		s.add("list",
			desc("resources/list", "List available resources on the server"),
			reflect.TypeOf(&mcpschema.ListResourcesRequestParams{}),
			reflect.TypeOf(&mcpschema.ListResourcesResult{}),
			func(ctx context.Context, input, output interface{}) error {
				p, err := coerce[mcpschema.ListResourcesRequestParams](input, true)
				if err != nil {
					return err
				}
				var cursor *string
				if p != nil {
					cursor = p.Cursor
				}
				res, err := cli.ListResources(ctx, cursor)
				if err != nil {
					return err
				}
				if res != nil {
					injectMetadata(&res.Meta, cfg.Metadata)
				}
				if output != nil {
					_ = conv.Convert(res, output)
				}
				return nil
			})
		s.add("read",
			desc("resources/read", "Read the content of a specific resource"),
			reflect.TypeOf(&mcpschema.ReadResourceRequestParams{}),
			reflect.TypeOf(&mcpschema.ReadResourceResult{}),
			func(ctx context.Context, input, output interface{}) error {
				p, err := coerce[mcpschema.ReadResourceRequestParams](input, false)
				if err != nil {
					return err
				}
				res, err := cli.ReadResource(ctx, p)
				if err != nil {
					return err
				}
				if res != nil {
					injectMetadata(&res.Meta, cfg.Metadata)
				}
				if output != nil {
					_ = conv.Convert(res, output)
				}
				return nil
			})
		out = append(out, s)
	}

	if hasTemplates {
		s := &Service{name: prefix + "/resources/templates", executors: map[string]service.Executable{}}
		s.add("list",
			desc("resources/templates/list", "List resource templates offered by the server"),
			reflect.TypeOf(&mcpschema.ListResourceTemplatesRequestParams{}),
			reflect.TypeOf(&mcpschema.ListResourceTemplatesResult{}),
			func(ctx context.Context, input, output interface{}) error {
				p, err := coerce[mcpschema.ListResourceTemplatesRequestParams](input, true)
				if err != nil {
					return err
				}
				var cursor *string
				if p != nil {
					cursor = p.Cursor
				}
				res, err := cli.ListResourceTemplates(ctx, cursor)
				if err != nil {
					return err
				}
				if output != nil {
					_ = conv.Convert(res, output)
				}
				return nil
			})
		out = append(out, s)
	}

	if hasPrompts {
		s := &Service{name: prefix + "/prompts", executors: map[string]service.Executable{}}
		s.add("list",
			desc("prompts/list", "List available prompts exposed by the server"),
			reflect.TypeOf(&mcpschema.ListPromptsRequestParams{}),
			reflect.TypeOf(&mcpschema.ListPromptsResult{}),
			func(ctx context.Context, input, output interface{}) error {
				p, err := coerce[mcpschema.ListPromptsRequestParams](input, true)
				if err != nil {
					return err
				}
				var cursor *string
				if p != nil {
					cursor = p.Cursor
				}
				res, err := cli.ListPrompts(ctx, cursor)
				if err != nil {
					return err
				}
				if output != nil {
					_ = conv.Convert(res, output)
				}
				return nil
			})
		s.add("get",
			desc("prompts/get", "Retrieve a specific prompt definition by name"),
			reflect.TypeOf(&mcpschema.GetPromptRequestParams{}),
			reflect.TypeOf(&mcpschema.GetPromptResult{}),
			func(ctx context.Context, input, output interface{}) error {
				p, err := coerce[mcpschema.GetPromptRequestParams](input, false)
				if err != nil {
					return err
				}
				res, err := cli.GetPrompt(ctx, p)
				if err != nil {
					return err
				}
				if output != nil {
					_ = conv.Convert(res, output)
				}
				return nil
			})
		out = append(out, s)
	}

	return out, nil
}

// capabilities prefers the Initialize() capability report and falls back to
// lightweight list probes when initialization is not available.
func capabilities(ctx context.Context, cli mcpclient.Interface) (hasResources, hasTemplates, hasPrompts bool) {
	initRes, err := func() (*mcpschema.InitializeResult, error) {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return cli.Initialize(pctx)
	}()
	if err == nil && initRes != nil {
		if initRes.Capabilities.Resources != nil {
			hasResources = true
			hasTemplates = true // templates ride on the resources surface
		}
		if initRes.Capabilities.Prompts != nil {
			hasPrompts = true
		}
		return hasResources, hasTemplates, hasPrompts
	}

	probe := func(call func(ctx context.Context) error) bool {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return call(pctx) == nil
	}
	hasResources = probe(func(cctx context.Context) error {
		_, err := cli.ListResources(cctx, nil)
		return err
	})
	hasTemplates = probe(func(cctx context.Context) error {
		_, err := cli.ListResourceTemplates(cctx, nil)
		return err
	})
	hasPrompts = probe(func(cctx context.Context) error {
		_, err := cli.ListPrompts(cctx, nil)
		return err
	})
	return hasResources, hasTemplates, hasPrompts
}
