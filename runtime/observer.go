package runtime

import "github.com/hupe1980/supervisorkit/core"

// Observer receives notifications at defined state-machine transition points.
// Observers replace ad-hoc console/log glue: they are injected per runtime,
// never registered globally. Implementations must be fast and must not block;
// they are invoked synchronously from the orchestration loop.
type Observer interface {
	// OnStepStart fires before an agent-step suspension, with the step number
	// about to execute.
	OnStepStart(invocationID, agent string, step int)

	// OnStepEnd fires after the step returns, with the number of messages the
	// agent emitted and the step error, if any.
	OnStepEnd(invocationID, agent string, emitted int, err error)

	// OnHandoff fires when a control transfer is recorded in the transcript
	// (both supervisor-to-worker and worker-back-to-supervisor markers).
	OnHandoff(invocationID string, record core.HandoffRecord)

	// OnTerminal fires exactly once per invocation with the final status.
	OnTerminal(invocationID string, status core.Status)
}

// NopObserver implements Observer with no-ops. Embed it to implement only the
// hooks of interest.
type NopObserver struct{}

// OnStepStart does nothing.
func (NopObserver) OnStepStart(string, string, int) {}

// OnStepEnd does nothing.
func (NopObserver) OnStepEnd(string, string, int, error) {}

// OnHandoff does nothing.
func (NopObserver) OnHandoff(string, core.HandoffRecord) {}

// OnTerminal does nothing.
func (NopObserver) OnTerminal(string, core.Status) {}

// observers fans notifications out to each registered Observer in order.
type observers []Observer

func (o observers) stepStart(invocationID, agent string, step int) {
	for _, obs := range o {
		obs.OnStepStart(invocationID, agent, step)
	}
}

func (o observers) stepEnd(invocationID, agent string, emitted int, err error) {
	for _, obs := range o {
		obs.OnStepEnd(invocationID, agent, emitted, err)
	}
}

func (o observers) handoff(invocationID string, record core.HandoffRecord) {
	for _, obs := range o {
		obs.OnHandoff(invocationID, record)
	}
}

func (o observers) terminal(invocationID string, status core.Status) {
	for _, obs := range o {
		obs.OnTerminal(invocationID, status)
	}
}
