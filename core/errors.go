package core

import "fmt"

// DuplicateAgentNameError is returned at registry construction time when a
// worker name is already taken or equals the reserved supervisor name. It is
// fatal and blocks workflow compilation.
type DuplicateAgentNameError struct {
	Name string
}

func (e *DuplicateAgentNameError) Error() string {
	return fmt.Sprintf("duplicate agent name %q", e.Name)
}

// UnknownAgentError is returned when resolving a name absent from the registry.
type UnknownAgentError struct {
	Name string
}

func (e *UnknownAgentError) Error() string {
	return fmt.Sprintf("unknown agent %q", e.Name)
}

// UnknownAgentRouteError is returned when the supervisor hands off to a worker
// absent from the registry. Routing to a nonexistent agent is a programming
// error in the workflow definition, not a transient fault, so it is fatal to
// the current invocation and never retried.
type UnknownAgentRouteError struct {
	Target string
}

func (e *UnknownAgentRouteError) Error() string {
	return fmt.Sprintf("handoff to unknown agent %q", e.Target)
}

// AgentExecutionError wraps any failure raised by an opaque supervisor or
// worker step. The runtime does not retry; retry policy, if any, belongs to
// the step collaborator. The original cause is preserved for diagnostics.
type AgentExecutionError struct {
	Agent string
	Err   error
}

func (e *AgentExecutionError) Error() string {
	return fmt.Sprintf("agent %q step failed: %v", e.Agent, e.Err)
}

// Unwrap exposes the original cause for errors.Is / errors.As.
func (e *AgentExecutionError) Unwrap() error { return e.Err }

// IterationLimitExceededError is the loop safety valve against
// non-terminating routing cycles.
type IterationLimitExceededError struct {
	Limit int
}

func (e *IterationLimitExceededError) Error() string {
	return fmt.Sprintf("iteration limit of %d steps exceeded", e.Limit)
}
