// Package graph compiles an agent registry plus its supervisor into the
// static workflow graph used both for execution wiring and for diagnostic
// export. The topology is always a star: the supervisor connects to every
// worker in both directions and no worker-to-worker edge exists. That is a
// structural invariant of the orchestration model, not an optimization.
package graph

import (
	"fmt"

	"github.com/hupe1980/supervisorkit/core"
	"github.com/hupe1980/supervisorkit/registry"
)

// Node is one vertex of the compiled workflow graph.
type Node struct {
	Name string    `json:"name"`
	Role core.Role `json:"role"`
}

// Edge is one directed connection between two nodes.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WorkflowGraph is the derived, read-only routing structure. It is built once
// per workflow definition and may be shared freely across concurrent
// invocations since it is never mutated post-construction.
type WorkflowGraph struct {
	supervisor string
	nodes      []Node
	edges      []Edge
}

// Build validates the registry against the supervisor descriptor and derives
// the star graph: the supervisor node first, then every worker in
// registration order, with a supervisor->worker and worker->supervisor edge
// pair per worker.
func Build(supervisor core.Agent, reg *registry.Registry) (*WorkflowGraph, error) {
	if err := supervisor.Validate(); err != nil {
		return nil, err
	}
	if supervisor.Role != core.RoleSupervisor {
		return nil, fmt.Errorf("agent %q is not a supervisor", supervisor.Name)
	}
	if supervisor.Name != reg.SupervisorName() {
		return nil, fmt.Errorf("supervisor %q does not match the registry's reserved name %q", supervisor.Name, reg.SupervisorName())
	}
	// The registry already rejects collisions with the reserved name, so by
	// construction every worker is reachable from the supervisor and no name
	// clashes remain to check per node.
	g := &WorkflowGraph{supervisor: supervisor.Name}
	g.nodes = append(g.nodes, Node{Name: supervisor.Name, Role: core.RoleSupervisor})
	for _, w := range reg.Agents() {
		g.nodes = append(g.nodes, Node{Name: w.Name, Role: core.RoleWorker})
		g.edges = append(g.edges,
			Edge{From: supervisor.Name, To: w.Name},
			Edge{From: w.Name, To: supervisor.Name},
		)
	}
	return g, nil
}

// Supervisor returns the supervisor node name.
func (g *WorkflowGraph) Supervisor() string { return g.supervisor }

// Nodes returns the ordered node list (supervisor first, then workers in
// registration order).
func (g *WorkflowGraph) Nodes() []Node {
	nodes := make([]Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Edges returns the ordered edge list.
func (g *WorkflowGraph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}
