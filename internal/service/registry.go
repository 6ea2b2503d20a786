package service

import (
	"fmt"

	"github.com/kayacantekin/aidpanel/internal/domain"
	"github.com/kayacantekin/aidpanel/internal/fixture"
	"go.uber.org/zap"
)

// Registry holds one façade per resource so the HTTP surface can route
// by path segment. Façades are constructed once at startup; the mapping
// never changes afterwards.
type Registry struct {
	services map[string]*Service
}

// NewRegistry builds a façade for every resource the fixture provider
// defines, so offline mode covers the full resource surface.
func NewRegistry(client Requester, fixtures *fixture.Provider, logger *zap.Logger) (*Registry, error) {
	if fixtures == nil {
		return nil, fmt.Errorf("fixture provider is required")
	}

	services := make(map[string]*Service)
	for _, resource := range fixtures.Resources() {
		svc, err := NewService(resource, client, fixtures, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to build façade for %q: %w", resource, err)
		}
		services[resource] = svc
	}

	return &Registry{services: services}, nil
}

// Lookup returns the façade bound to the resource, or ErrNotFound.
func (r *Registry) Lookup(resource string) (*Service, error) {
	svc, ok := r.services[resource]
	if !ok {
		return nil, fmt.Errorf("%w: unknown resource %q", domain.ErrNotFound, resource)
	}
	return svc, nil
}

// Resources lists the registered resource names.
func (r *Registry) Resources() []string {
	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	return names
}
