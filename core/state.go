package core

// Status is the lifecycle state of one invocation.
type Status string

const (
	// StatusRunning marks an invocation still being driven by the runtime.
	StatusRunning Status = "running"
	// StatusCompleted marks a finished invocation with a final answer.
	StatusCompleted Status = "completed"
	// StatusFailed marks an invocation terminated by a typed error.
	StatusFailed Status = "failed"
	// StatusCancelled marks an invocation stopped by its cancellation token.
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// ConversationState is the mutable, per-invocation conversation record: an
// append-only message log, the cursor naming which agent currently holds
// control, a step counter and the invocation status.
//
// It is owned exclusively by the runtime driving the invocation and is never
// shared across concurrent invocations. Exactly one agent is active at any
// instant, so there is never more than one writer; that single-active-agent
// invariant is the concurrency control, and no locking is needed here.
type ConversationState struct {
	messages    Transcript
	nextIndex   int
	activeAgent string
	stepCount   int
	status      Status
}

// NewConversationState creates a fresh state with control held by the named
// agent (the supervisor at the start of every invocation).
func NewConversationState(activeAgent string) *ConversationState {
	return &ConversationState{
		activeAgent: activeAgent,
		status:      StatusRunning,
	}
}

// Append assigns the next sequence index to m, appends it to the log and
// returns the stored message. Appended messages are never mutated or
// reordered afterwards.
func (s *ConversationState) Append(m Message) Message {
	m.SequenceIndex = s.nextIndex
	s.nextIndex++
	s.messages = append(s.messages, m)
	return m
}

// Messages returns a copy of the transcript accumulated so far.
func (s *ConversationState) Messages() Transcript { return s.messages.Clone() }

// Len returns the number of appended messages.
func (s *ConversationState) Len() int { return len(s.messages) }

// ActiveAgent names the agent currently holding control.
func (s *ConversationState) ActiveAgent() string { return s.activeAgent }

// SetActiveAgent moves control to the named agent.
func (s *ConversationState) SetActiveAgent(name string) { s.activeAgent = name }

// StepCount returns the number of agent steps executed so far.
func (s *ConversationState) StepCount() int { return s.stepCount }

// IncrementStep counts one more agent step and returns the new total.
func (s *ConversationState) IncrementStep() int {
	s.stepCount++
	return s.stepCount
}

// Status returns the invocation status.
func (s *ConversationState) Status() Status { return s.status }

// SetStatus records a status transition. Moving out of a terminal status is
// a programming error and is ignored.
func (s *ConversationState) SetStatus(st Status) {
	if s.status.Terminal() {
		return
	}
	s.status = st
}
