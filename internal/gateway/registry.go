package gateway

import (
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"
)

// Registry resolves gateway adapters by name. Adapters are registered once at
// startup; the operator-facing active flag lives in settings and is enforced
// by the services, not here.
type Registry struct {
	adapters map[string]ports.GatewayAdapter
	names    []string
}

// NewRegistry creates a registry over the given adapters.
func NewRegistry(adapters ...ports.GatewayAdapter) *Registry {
	r := &Registry{adapters: make(map[string]ports.GatewayAdapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
		r.names = append(r.names, a.Name())
	}
	return r
}

// Get returns the adapter for a gateway name.
func (r *Registry) Get(name string) (ports.GatewayAdapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, apperror.ErrGatewayNotConfigured(name)
	}
	return a, nil
}

// Names lists registered gateway names in registration order.
func (r *Registry) Names() []string {
	return r.names
}
