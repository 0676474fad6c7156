// Package runtime drives the supervisor/worker step loop of one compiled
// workflow to completion. The runtime itself is immutable and may be shared
// across concurrent invocations; each Invoke call owns a fresh
// ConversationState and runs as a single logical thread of control, yielding
// only at the opaque agent-step boundary.
package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/supervisorkit/core"
	"github.com/hupe1980/supervisorkit/history"
	"github.com/hupe1980/supervisorkit/logging"
	"github.com/hupe1980/supervisorkit/registry"
)

// DefaultIterationLimit caps the number of agent steps per invocation when
// no explicit limit is configured.
const DefaultIterationLimit = 25

// Options configures a Runtime via functional options.
type Options struct {
	// OutputMode selects the history-aggregation policy.
	OutputMode history.OutputMode
	// AddHandoffBackMessages appends a synthetic control marker whenever a
	// worker returns control to the supervisor.
	AddHandoffBackMessages bool
	// IterationLimit is the loop safety valve; exceeding it fails the
	// invocation with IterationLimitExceededError. Must be positive.
	IterationLimit int
	// Logger receives structured execution logs. Defaults to NoOpLogger.
	Logger logging.Logger
	// Observers are notified at state-machine transition points.
	Observers []Observer
}

// Runtime executes invocations against one supervisor and its worker
// registry. Construct once per workflow definition and reuse.
type Runtime struct {
	supervisor     core.Agent
	registry       *registry.Registry
	aggregator     *history.Aggregator
	addHandoffBack bool
	iterationLimit int
	logger         logging.Logger
	observers      observers
}

// New builds a Runtime for the given supervisor and worker registry.
func New(supervisor core.Agent, reg *registry.Registry, optFns ...func(o *Options)) (*Runtime, error) {
	opts := Options{
		OutputMode:     history.OutputModeFullHistory,
		IterationLimit: DefaultIterationLimit,
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := supervisor.Validate(); err != nil {
		return nil, err
	}
	if supervisor.Role != core.RoleSupervisor {
		return nil, fmt.Errorf("agent %q is not a supervisor", supervisor.Name)
	}
	if supervisor.Name != reg.SupervisorName() {
		return nil, fmt.Errorf("supervisor %q does not match the registry's reserved name %q", supervisor.Name, reg.SupervisorName())
	}
	if opts.IterationLimit <= 0 {
		return nil, fmt.Errorf("iteration limit must be positive, got %d", opts.IterationLimit)
	}
	agg, err := history.New(opts.OutputMode)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		supervisor:     supervisor,
		registry:       reg,
		aggregator:     agg,
		addHandoffBack: opts.AddHandoffBackMessages,
		iterationLimit: opts.IterationLimit,
		logger:         opts.Logger,
		observers:      opts.Observers,
	}, nil
}

// Result is the outcome of one invocation. On failure or cancellation the
// transcript accumulated so far is attached for forensic use; there is no
// silent truncation.
type Result struct {
	InvocationID string
	Messages     core.Transcript
	Status       core.Status
	Steps        int
	Handoffs     []core.HandoffRecord
}

// Invoke drives the step loop over the seeded messages until the supervisor
// produces a final answer, a typed error occurs, the iteration limit trips or
// ctx is cancelled.
//
// Cancellation is observed at the top of every loop iteration, before
// committing to a new agent-step suspension; an in-flight step is not
// forcibly interrupted. A cancelled invocation is not a failure: it returns
// the partial transcript with StatusCancelled and a nil error. Failures
// return the typed error together with the partial Result.
func (r *Runtime) Invoke(ctx context.Context, seed []core.Message) (*Result, error) {
	invocationID := core.NewID()
	state := core.NewConversationState(r.supervisor.Name)
	for _, m := range seed {
		state.Append(m)
	}

	r.logger.Debug("invocation started", "invocation_id", invocationID, "seed", len(seed), "output_mode", r.aggregator.Mode())

	dispatched := false
	var worker core.Agent

	for {
		if ctx.Err() != nil {
			return r.finish(invocationID, state, core.StatusCancelled, nil)
		}

		if !dispatched {
			res, err := r.step(ctx, invocationID, r.supervisor, state)
			if err != nil {
				return r.finish(invocationID, state, core.StatusFailed, err)
			}
			for _, m := range res.Messages {
				state.Append(normalize(m, r.supervisor.Name))
			}
			if res.TransferTo == "" {
				return r.finish(invocationID, state, core.StatusCompleted, nil)
			}
			w, err := r.registry.Resolve(res.TransferTo)
			if err != nil {
				return r.finish(invocationID, state, core.StatusFailed, &core.UnknownAgentRouteError{Target: res.TransferTo})
			}
			req := state.Append(core.NewHandoffRequest(r.supervisor.Name, w.Name, res.Reason))
			state.SetActiveAgent(w.Name)
			r.observers.handoff(invocationID, core.HandoffRecord{
				From:          req.Sender,
				To:            req.Recipient,
				Reason:        req.Content,
				SequenceIndex: req.SequenceIndex,
			})
			r.logger.Info("handoff", "invocation_id", invocationID, "from", req.Sender, "to", req.Recipient, "reason", req.Content)
			worker = w
			dispatched = true
			continue
		}

		res, err := r.step(ctx, invocationID, worker, state)
		if err != nil {
			return r.finish(invocationID, state, core.StatusFailed, err)
		}
		if res.TransferTo != "" {
			err := &core.AgentExecutionError{
				Agent: worker.Name,
				Err:   fmt.Errorf("worker attempted a handoff to %q: only the supervisor routes", res.TransferTo),
			}
			return r.finish(invocationID, state, core.StatusFailed, err)
		}

		// Fold the completed worker activation immediately: a finished step's
		// output is never discarded, even if cancellation arrives next.
		emitted := make([]core.Message, 0, len(res.Messages))
		for _, m := range res.Messages {
			emitted = append(emitted, normalize(m, worker.Name))
		}
		r.aggregator.Fold(state, emitted)

		if r.addHandoffBack {
			back := state.Append(core.NewHandoffResponse(worker.Name, r.supervisor.Name))
			r.observers.handoff(invocationID, core.HandoffRecord{
				From:          back.Sender,
				To:            back.Recipient,
				SequenceIndex: back.SequenceIndex,
			})
		}
		state.SetActiveAgent(r.supervisor.Name)
		dispatched = false
	}
}

// step runs one agent-step suspension, enforcing the iteration limit and
// notifying observers around the call.
func (r *Runtime) step(ctx context.Context, invocationID string, agent core.Agent, state *core.ConversationState) (*core.StepResult, error) {
	if state.IncrementStep() > r.iterationLimit {
		return nil, &core.IterationLimitExceededError{Limit: r.iterationLimit}
	}

	r.observers.stepStart(invocationID, agent.Name, state.StepCount())
	start := time.Now()

	res, err := agent.Step(ctx, state.Messages())

	emitted := 0
	if res != nil {
		emitted = len(res.Messages)
	}
	r.observers.stepEnd(invocationID, agent.Name, emitted, err)
	r.logger.Debug("agent step", "invocation_id", invocationID, "agent", agent.Name, "emitted", emitted, "duration", time.Since(start), "error", err != nil)

	if err != nil {
		return nil, &core.AgentExecutionError{Agent: agent.Name, Err: err}
	}
	if res == nil {
		res = &core.StepResult{}
	}
	return res, nil
}

// finish records the terminal status, notifies observers and assembles the
// Result. All errors resolve here, at the runtime boundary.
func (r *Runtime) finish(invocationID string, state *core.ConversationState, status core.Status, err error) (*Result, error) {
	state.SetStatus(status)
	r.observers.terminal(invocationID, status)

	messages := state.Messages()
	result := &Result{
		InvocationID: invocationID,
		Messages:     messages,
		Status:       status,
		Steps:        state.StepCount(),
		Handoffs:     core.HandoffRecords(messages),
	}

	switch status {
	case core.StatusFailed:
		r.logger.Error("invocation failed", "invocation_id", invocationID, "steps", result.Steps, "error", err)
	case core.StatusCancelled:
		r.logger.Info("invocation cancelled", "invocation_id", invocationID, "steps", result.Steps, "messages", len(messages))
	default:
		r.logger.Info("invocation completed", "invocation_id", invocationID, "steps", result.Steps, "messages", len(messages))
	}

	return result, err
}

// normalize fills in attribution defaults on agent-emitted messages so steps
// can return bare content without repeating their own identity.
func normalize(m core.Message, sender string) core.Message {
	if m.Kind == "" {
		m.Kind = core.KindAI
	}
	if m.Sender == "" {
		m.Sender = sender
	}
	if m.ID == "" {
		m.ID = core.NewID()
	}
	return m
}
