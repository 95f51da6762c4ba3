package core

import (
	"context"
	"fmt"
	"log"
)

// Interface defines a common interface for all services
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

type registered struct {
	name    string
	service Interface
}

// Registry manages service lifecycle in registration order
type Registry struct {
	services []registered
	started  int
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a named service to the registry
func (r *Registry) Register(name string, service Interface) {
	r.services = append(r.services, registered{name: name, service: service})
}

// StartAll starts all registered services in registration order. When a
// service fails to start, the ones already running are stopped again.
func (r *Registry) StartAll(ctx context.Context) error {
	for i, entry := range r.services {
		if err := entry.service.Start(ctx); err != nil {
			log.Printf("Registry: Service %s failed to start: %v", entry.name, err)
			r.stopFirst(i)
			return fmt.Errorf("starting %s: %w", entry.name, err)
		}
		r.started = i + 1
	}
	return nil
}

// StopAll stops all started services in reverse order
func (r *Registry) StopAll() {
	r.stopFirst(r.started)
	r.started = 0
}

func (r *Registry) stopFirst(n int) {
	for i := n - 1; i >= 0; i-- {
		r.services[i].service.Stop()
	}
}
