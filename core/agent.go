package core

import (
	"context"
	"errors"
	"fmt"
)

// Role tags an agent descriptor as the controlling supervisor or a worker.
// The star topology (all routing passes through the supervisor) is enforced
// by the runtime, not by a type hierarchy.
type Role string

const (
	// RoleSupervisor is the controlling agent deciding routing and producing
	// the final answer.
	RoleSupervisor Role = "supervisor"

	// RoleWorker is a specialized agent invoked only via the supervisor.
	RoleWorker Role = "worker"
)

// StepResult is what an agent's opaque step yields back to the runtime.
//
// Messages are the new conversation turns authored during the step, in
// production order. For a supervisor step, a non-empty TransferTo names the
// worker that should receive control next; an empty TransferTo means the
// step produced a final answer. Worker steps must leave TransferTo empty —
// workers cannot route.
type StepResult struct {
	Messages   []Message
	TransferTo string
	Reason     string
}

// StepFunc is the opaque collaborator boundary: given the transcript so far,
// produce the agent's next turns and, for supervisors, a routing decision.
// The core never inspects how a step reasons or which tools it calls; it only
// consumes the returned turns. Implementations should honor ctx cancellation,
// as the runtime will not forcibly interrupt an in-flight step.
type StepFunc func(ctx context.Context, transcript Transcript) (*StepResult, error)

// Agent describes one participant of a workflow: a registry-unique,
// case-sensitive name, an opaque capability set (tool identifiers the core
// does not interpret), a system instruction, and the step handle invoked by
// the runtime. Agents are immutable once registered; registration is a
// build-time operation.
type Agent struct {
	Name         string
	Role         Role
	Capabilities []string
	Instruction  string
	Step         StepFunc
}

// Validate checks the descriptor is complete enough to register.
func (a Agent) Validate() error {
	if a.Name == "" {
		return errors.New("agent name must not be empty")
	}
	if a.Role != RoleSupervisor && a.Role != RoleWorker {
		return fmt.Errorf("agent %q has invalid role %q", a.Name, a.Role)
	}
	if a.Step == nil {
		return fmt.Errorf("agent %q has no step handle", a.Name)
	}
	return nil
}

// NewWorker builds a worker descriptor.
func NewWorker(name, instruction string, step StepFunc, capabilities ...string) Agent {
	return Agent{
		Name:         name,
		Role:         RoleWorker,
		Capabilities: capabilities,
		Instruction:  instruction,
		Step:         step,
	}
}

// NewSupervisor builds the supervisor descriptor.
func NewSupervisor(name, instruction string, step StepFunc) Agent {
	return Agent{
		Name:        name,
		Role:        RoleSupervisor,
		Instruction: instruction,
		Step:        step,
	}
}
