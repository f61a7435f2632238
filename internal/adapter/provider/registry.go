// Package provider holds the controller registry and the plumbing shared by
// the payment system controllers.
package provider

import (
	"fmt"
	"sort"

	"payment-hub/internal/core/ports"
)

// Registry maps provider names to controllers. It is built once at startup
// and read concurrently afterwards.
type Registry struct {
	controllers map[string]ports.PaymentSystemController
}

// NewRegistry indexes controllers by Name. Names must be unique.
func NewRegistry(controllers ...ports.PaymentSystemController) (*Registry, error) {
	r := &Registry{controllers: make(map[string]ports.PaymentSystemController, len(controllers))}
	for _, c := range controllers {
		name := c.Name()
		if name == "" {
			return nil, fmt.Errorf("controller %T has an empty name", c)
		}
		if _, dup := r.controllers[name]; dup {
			return nil, fmt.Errorf("controller %q registered twice", name)
		}
		r.controllers[name] = c
	}
	return r, nil
}

func (r *Registry) Get(name string) (ports.PaymentSystemController, bool) {
	c, ok := r.controllers[name]
	return c, ok
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
