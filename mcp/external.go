package mcp

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/mcp"
	protocolclient "github.com/viant/mcp-protocol/client"
	"gopkg.in/yaml.v3"

	"github.com/mcpsuite/aws-mcp/mcp/config"
	"github.com/mcpsuite/aws-mcp/mcp/discovery"
	"github.com/mcpsuite/aws-mcp/mcp/tool"
)

// registerExternalTools loads external MCP endpoints specified in the
// configuration, introspects the available tools and turns each endpoint
// into registry services whose methods proxy the remote calls.
func (s *Service) registerExternalTools(ctx context.Context) error {
	mcpConfigs, err := s.loadMCPClientConfig(ctx)
	if err != nil {
		return err
	}
	for _, mcpConfig := range mcpConfigs {
		if err := s.RegisterClientTools(ctx, mcpConfig); err != nil {
			if mcpConfig.Required {
				return err
			}
			s.logger.Warn().Str("endpoint", mcpConfig.Name).Err(err).Msg("skipping external MCP endpoint")
		}
	}
	return nil
}

// RegisterClientTools connects to one external MCP endpoint and registers
// its tools plus resource/prompt discovery services.
func (s *Service) RegisterClientTools(ctx context.Context, mcpConfig *config.MCPClient) error {
	if mcpConfig == nil || mcpConfig.ClientOptions == nil {
		return fmt.Errorf("nil client options")
	}
	// Ensure required defaults are applied so that name/version are never empty.
	mcpConfig.Init()

	cli, err := mcp.NewClient(s.ClientHandler(), mcpConfig.ClientOptions)
	if err != nil {
		return fmt.Errorf("create mcp client %q: %w", mcpConfig.Name, err)
	}

	proxy, err := tool.NewProxy(ctx, mcpConfig.Name, cli)
	if err != nil {
		return fmt.Errorf("load tools for %q: %w", mcpConfig.Name, err)
	}
	if err := s.registerService(proxy); err != nil {
		return err
	}

	discovered, err := discovery.New(ctx, mcpConfig, cli)
	if err != nil {
		return fmt.Errorf("discover %q: %w", mcpConfig.Name, err)
	}
	for _, svc := range discovered {
		if err := s.registerService(svc); err != nil {
			return err
		}
	}
	s.logger.Info().Str("endpoint", mcpConfig.Name).Int("services", 1+len(discovered)).Msg("registered external MCP endpoint")
	return nil
}

// ClientHandler returns the handler used for outgoing MCP client
// connections, falling back to the no-op stub.
func (s *Service) ClientHandler() protocolclient.Handler {
	impl := s.clientHandler
	if impl == nil {
		impl = newMcpClient()
	}
	return impl
}

// loadMCPClientConfig resolves MCP client options either embedded directly
// in the config or referenced via URL.
func (s *Service) loadMCPClientConfig(ctx context.Context) ([]*config.MCPClient, error) {
	if s.config == nil || s.config.MCP == nil {
		return nil, nil
	}

	// Inline options take precedence.
	if len(s.config.MCP.Items) > 0 {
		return s.config.MCP.Items, nil
	}

	if s.config.MCP.URL == "" {
		return nil, nil
	}

	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, s.config.MCP.URL)
	if err != nil {
		return nil, fmt.Errorf("download externals config %q: %w", s.config.MCP.URL, err)
	}

	var out []*config.MCPClient
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse externals config %q: %w", s.config.MCP.URL, err)
	}
	return out, nil
}
