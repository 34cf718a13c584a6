package service

import (
	"fmt"
	"sort"

	"github.com/mcpsuite/aws-mcp/internal/syncmap"
)

// Registry is a concurrency-safe collection of named services.
type Registry struct {
	services *syncmap.Map[Service]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{services: syncmap.NewMap[Service]()}
}

// Register adds a service; registering a name twice is an error so that the
// first definition always wins deterministically.
func (r *Registry) Register(svc Service) error {
	if svc == nil {
		return fmt.Errorf("cannot register nil service")
	}
	name := svc.Name()
	if name == "" {
		return fmt.Errorf("cannot register service with empty name")
	}
	if r.services.Has(name) {
		return fmt.Errorf("service %q already registered", name)
	}
	r.services.Set(name, svc)
	return nil
}

// Lookup returns the service registered under name, or nil.
func (r *Registry) Lookup(name string) Service {
	return r.services.Get(name)
}

// Services returns all registered service names in sorted order.
func (r *Registry) Services() []string {
	names := r.services.Keys()
	sort.Strings(names)
	return names
}
