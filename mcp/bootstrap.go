package mcp

import (
	"context"
	"fmt"

	"github.com/mcpsuite/aws-mcp/mcp/clientaction"
	"github.com/mcpsuite/aws-mcp/mcp/config"
	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// init is the main bootstrap routine invoked by New once all options have
// been applied. Its sole responsibility is to orchestrate the individual
// preparation steps so that the logic stays easy to read and to maintain.
func (s *Service) init(ctx context.Context) error {
	s.initDefaults()

	// Validate configuration early to fail fast when possible.
	if err := s.config.Validate(); err != nil {
		return err
	}

	if err := s.registerServices(); err != nil {
		return err
	}

	// Build the unified tool table once so every lookup path sees the same
	// definitions.
	s.buildToolTable()

	// Register external MCP tools so they can be consumed like native ones.
	if err := s.registerExternalTools(ctx); err != nil {
		return fmt.Errorf("register externals: %w", err)
	}
	return nil
}

// initDefaults applies fall-back values for optional dependencies that were
// not supplied through options.
func (s *Service) initDefaults() {
	if s.config == nil {
		s.config = &config.Config{}
	}
	if len(s.config.Builtins) == 0 { // register all AWS tool services
		s.config.Builtins = append(s.config.Builtins, "*")
	}
	if s.provider == nil {
		s.provider = awscfg.NewProvider(s.config.AWS)
	}
}

// registerServices populates the registry with the selected AWS builtins,
// caller-supplied extensions and the MCP client operation service.
func (s *Service) registerServices() error {
	for _, svc := range resolveBuiltinServices(s.config.Builtins, s.provider) {
		if err := s.registry.Register(svc); err != nil {
			return err
		}
	}
	for _, svc := range s.extensions {
		if err := s.registry.Register(svc); err != nil {
			return err
		}
	}

	// Always expose the MCP client operations this process implements.
	mcpClientSvc := clientaction.New(s.ClientHandler())
	if len(mcpClientSvc.Methods()) > 0 {
		if err := s.registry.Register(mcpClientSvc); err != nil {
			return err
		}
	}
	return nil
}
