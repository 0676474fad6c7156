// Package history decides which of the messages produced during worker
// execution become visible in the final transcript, according to the
// configured output mode. Aggregation is applied incrementally as each
// worker activation completes, never as a post-processing pass, so the
// runtime can enforce step and size limits while the conversation is still
// bounded.
package history

import (
	"fmt"

	"github.com/hupe1980/supervisorkit/core"
)

// OutputMode selects the history-aggregation policy for a workflow.
type OutputMode string

const (
	// OutputModeFullHistory retains every message produced by every agent
	// (including handoff markers if enabled) in original sequence order. The
	// returned transcript is exactly the append log.
	OutputModeFullHistory OutputMode = "full_history"

	// OutputModeLastMessage folds only a worker's final message into the
	// transcript per activation span; intermediate turns are dropped from the
	// externally visible result. Dropped turns still belong to a counted
	// step, so loop-limit enforcement is unaffected by condensation.
	OutputModeLastMessage OutputMode = "last_message"
)

// Valid reports whether the mode is one of the known policies.
func (m OutputMode) Valid() bool {
	return m == OutputModeFullHistory || m == OutputModeLastMessage
}

// Aggregator applies one configured output mode. It is stateless and safe
// to share across concurrent invocations.
type Aggregator struct {
	mode OutputMode
}

// New creates an aggregator for the given mode.
func New(mode OutputMode) (*Aggregator, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown output mode %q", mode)
	}
	return &Aggregator{mode: mode}, nil
}

// Mode returns the configured output mode.
func (a *Aggregator) Mode() OutputMode { return a.mode }

// Fold appends the visible subset of one worker activation's emitted
// messages to the conversation and returns the messages actually appended,
// with their assigned sequence indexes. An empty emission folds to nothing.
func (a *Aggregator) Fold(state *core.ConversationState, emitted []core.Message) []core.Message {
	if len(emitted) == 0 {
		return nil
	}
	var keep []core.Message
	switch a.mode {
	case OutputModeLastMessage:
		keep = emitted[len(emitted)-1:]
	default:
		keep = emitted
	}
	appended := make([]core.Message, 0, len(keep))
	for _, m := range keep {
		appended = append(appended, state.Append(m))
	}
	return appended
}
