// Package registry holds the validated collection of worker agent
// descriptors for one workflow definition. Registration happens once at
// build time; afterwards the registry is read-only and safe to share across
// any number of concurrent invocations.
package registry

import (
	"fmt"

	"github.com/hupe1980/supervisorkit/core"
)

// Registry maps worker names to descriptors while preserving registration
// order for diagnostic listing. Routing is by name, not position; name
// uniqueness (case-sensitive, including the reserved supervisor name) is the
// enforced invariant.
type Registry struct {
	supervisorName string
	agents         map[string]core.Agent
	order          []string
}

// New creates an empty registry reserving the supervisor's name.
func New(supervisorName string) (*Registry, error) {
	if supervisorName == "" {
		return nil, fmt.Errorf("supervisor name must not be empty")
	}
	return &Registry{
		supervisorName: supervisorName,
		agents:         make(map[string]core.Agent),
	}, nil
}

// Register adds a worker descriptor. It fails with DuplicateAgentNameError
// if the name is already taken or equals the reserved supervisor name.
func (r *Registry) Register(a core.Agent) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Role != core.RoleWorker {
		return fmt.Errorf("agent %q: only workers can be registered", a.Name)
	}
	if a.Name == r.supervisorName {
		return &core.DuplicateAgentNameError{Name: a.Name}
	}
	if _, exists := r.agents[a.Name]; exists {
		return &core.DuplicateAgentNameError{Name: a.Name}
	}
	r.agents[a.Name] = a
	r.order = append(r.order, a.Name)
	return nil
}

// Resolve returns the worker descriptor for name or an UnknownAgentError.
func (r *Registry) Resolve(name string) (core.Agent, error) {
	a, ok := r.agents[name]
	if !ok {
		return core.Agent{}, &core.UnknownAgentError{Name: name}
	}
	return a, nil
}

// Names lists the registered worker names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Agents lists the registered worker descriptors in registration order.
func (r *Registry) Agents() []core.Agent {
	agents := make([]core.Agent, 0, len(r.order))
	for _, name := range r.order {
		agents = append(agents, r.agents[name])
	}
	return agents
}

// Len returns the number of registered workers.
func (r *Registry) Len() int { return len(r.order) }

// SupervisorName returns the reserved supervisor name.
func (r *Registry) SupervisorName() string { return r.supervisorName }
