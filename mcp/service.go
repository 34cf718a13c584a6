package mcp

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	protocolclient "github.com/viant/mcp-protocol/client"

	"github.com/mcpsuite/aws-mcp/internal/logging"
	"github.com/mcpsuite/aws-mcp/mcp/config"
	"github.com/mcpsuite/aws-mcp/service"
	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// Service bundles configuration, the tool service registry and the shared
// AWS client plumbing required by the server adapter. All heavy lifting
// during instantiation lives in bootstrap.go to keep this file focused on
// the public surface.
type Service struct {
	started       int32
	clientHandler protocolclient.Handler
	config        *config.Config

	registry *service.Registry
	provider *awscfg.Provider
	logger   zerolog.Logger

	// extra services supplied via options, registered alongside builtins.
	extensions []service.Service

	// guard concurrent modifications.
	mu sync.RWMutex
	// Cached tool definitions built from registry methods.
	mcpTools []toolEntry
}

// Registry returns the underlying service registry.
func (s *Service) Registry() *service.Registry { return s.registry }

// Provider returns the shared AWS configuration provider.
func (s *Service) Provider() *awscfg.Provider { return s.provider }

// Config returns the effective configuration instance passed to the service
// at construction time. Callers must treat the returned object as read-only.
func (s *Service) Config() *config.Config { return s.config }

// ToolNames returns all unique MCP tool names registered on the service. The
// slice is a copy and therefore safe for callers to modify.
func (s *Service) ToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.mcpTools))
	for i, e := range s.mcpTools {
		names[i] = e.name
	}
	return names
}

// ToolDescriptors returns basic metadata for every tool (name & description).
// The returned slice is detached from internal state and therefore read-only
// for callers.
func (s *Service) ToolDescriptors() []struct{ Name, Description string } {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]struct{ Name, Description string }, len(s.mcpTools))
	for i, e := range s.mcpTools {
		out[i] = struct{ Name, Description string }{e.name, e.description}
	}
	return out
}

// toolEntryByName returns a pointer to the internal entry with the given name
// and a bool indicating presence. Internal helper for CLI inspection.
func (s *Service) toolEntryByName(name string) (*toolEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, e := range s.mcpTools {
		if e.name == name {
			return &s.mcpTools[i], true
		}
	}
	return nil, false
}

// ToolMetadata returns description and input schema for a named tool when
// present. The last return value is false when the tool does not exist.
func (s *Service) ToolMetadata(name string) (string, interface{}, bool) {
	e, ok := s.toolEntryByName(name)
	if !ok {
		return "", nil, false
	}
	return e.description, e.metadata.InputSchema, true
}

// Option modifies a service instance before it is initialised. Users can
// pass an arbitrary number of options to New.
type Option func(*Service)

// WithConfig sets a custom configuration instance. When omitted a zero value
// config is assumed.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithServices registers custom tool services in addition to the AWS
// builtins selected by the configuration.
func WithServices(services ...service.Service) Option {
	return func(s *Service) {
		s.extensions = append(s.extensions, services...)
	}
}

// WithClientHandler overrides the default stub implementer used for
// outgoing MCP client connections to external endpoints.
func WithClientHandler(impl protocolclient.Handler) Option {
	return func(s *Service) {
		s.clientHandler = impl
	}
}

// WithLogger overrides the default environment-driven logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a new service instance. The actual bootstrap is handled by
// init() in bootstrap.go so that callers do not need to care about the
// internal initialisation sequence.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{
		registry: service.NewRegistry(),
		logger:   logging.Init("aws-mcp"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// NewWithConfig constructs a service from a configuration instance.
// Additional options may be supplied after it.
func NewWithConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	return New(ctx, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Start marks the service as running. Multiple invocations are safe;
// subsequent calls are ignored.
func (s *Service) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.started, 0, 1) {
		return nil
	}
	s.logger.Info().Int("tools", len(s.ToolNames())).Msg("service started")
	return nil
}

// Shutdown terminates the service. Additional invocations after the first
// successful call have no effect.
func (s *Service) Shutdown(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.started, 1, 2) {
		return nil
	}
	s.logger.Info().Msg("service stopped")
	return nil
}
