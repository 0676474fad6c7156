// Package supervisorkit provides a high-level façade for building and
// running supervisor-style multi-agent workflows. A workflow is one
// supervisor agent wired in a star topology to a set of worker agents; the
// supervisor alone routes, workers only execute and yield control back. Most
// applications interact with this package by:
//  1. Declaring a supervisor and workers with core.NewSupervisor / core.NewWorker
//  2. Compiling them into a Workflow via Create()
//  3. Invoking the workflow with seed messages and reading the Result
//
// The façade delegates orchestration to runtime.Runtime while keeping setup
// ergonomics concise. Defaults (full-history aggregation, the standard
// iteration limit, a no-op logger) are safe for local development and
// testing.
package supervisorkit

import (
	"context"

	"github.com/hupe1980/supervisorkit/archive"
	"github.com/hupe1980/supervisorkit/config"
	"github.com/hupe1980/supervisorkit/core"
	"github.com/hupe1980/supervisorkit/graph"
	"github.com/hupe1980/supervisorkit/history"
	"github.com/hupe1980/supervisorkit/logging"
	"github.com/hupe1980/supervisorkit/registry"
	"github.com/hupe1980/supervisorkit/runtime"
)

// Options configures a compiled Workflow.
type Options struct {
	// OutputMode selects full-history or last-message aggregation of worker
	// output. Defaults to full history.
	OutputMode history.OutputMode

	// AddHandoffBackMessages records a synthetic marker whenever a worker
	// yields control back to the supervisor.
	AddHandoffBackMessages bool

	// IterationLimit caps agent steps per invocation. Defaults to
	// runtime.DefaultIterationLimit.
	IterationLimit int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Observers are notified at state-machine transition points.
	Observers []runtime.Observer

	// Archive stores finished invocation results for later retrieval. Nil
	// disables archiving.
	Archive archive.Store
}

// Workflow is a compiled supervisor workflow, ready for repeated concurrent
// invocation.
type Workflow struct {
	runtime *runtime.Runtime
	graph   *graph.WorkflowGraph
	archive archive.Store
}

// Create compiles a supervisor and its workers into a Workflow. Worker order
// is preserved in the workflow graph.
func Create(supervisor core.Agent, workers []core.Agent, optFns ...func(o *Options)) (*Workflow, error) {
	opts := Options{
		OutputMode:     history.OutputModeFullHistory,
		IterationLimit: runtime.DefaultIterationLimit,
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	reg, err := registry.New(supervisor.Name)
	if err != nil {
		return nil, err
	}
	for _, w := range workers {
		if err := reg.Register(w); err != nil {
			return nil, err
		}
	}

	g, err := graph.Build(supervisor, reg)
	if err != nil {
		return nil, err
	}

	rt, err := runtime.New(supervisor, reg, func(o *runtime.Options) {
		o.OutputMode = opts.OutputMode
		o.AddHandoffBackMessages = opts.AddHandoffBackMessages
		o.IterationLimit = opts.IterationLimit
		o.Logger = opts.Logger
		o.Observers = opts.Observers
	})
	if err != nil {
		return nil, err
	}

	return &Workflow{runtime: rt, graph: g, archive: opts.Archive}, nil
}

// FromConfig compiles a Workflow from a declarative definition, binding step
// logic to the declared agents by name. Options derived from the definition
// (output mode, handoff-back markers, iteration limit) are applied first;
// optFns may override them.
func FromConfig(cfg *config.WorkflowConfig, steps config.Steps, optFns ...func(o *Options)) (*Workflow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	supervisor, workers, err := cfg.Bind(steps)
	if err != nil {
		return nil, err
	}

	fromCfg := func(o *Options) {
		if cfg.OutputMode != "" {
			o.OutputMode = cfg.OutputMode
		}
		o.AddHandoffBackMessages = cfg.AddHandoffBackMessages
		if cfg.IterationLimit > 0 {
			o.IterationLimit = cfg.IterationLimit
		}
	}

	return Create(supervisor, workers, append([]func(o *Options){fromCfg}, optFns...)...)
}

// Invoke runs the workflow over the seed messages until the supervisor
// produces a final answer, an error occurs or ctx is cancelled. Safe for
// concurrent use; each call owns its own conversation state.
func (w *Workflow) Invoke(ctx context.Context, seed []core.Message) (*runtime.Result, error) {
	res, err := w.runtime.Invoke(ctx, seed)
	if res != nil && w.archive != nil {
		if saveErr := w.archive.Save(res); saveErr != nil && err == nil {
			err = saveErr
		}
	}
	return res, err
}

// Ask is a convenience wrapper seeding the workflow with a single human
// message and returning the supervisor's final answer.
func (w *Workflow) Ask(ctx context.Context, question string) (string, error) {
	res, err := w.Invoke(ctx, []core.Message{core.NewHumanMessage(question)})
	if err != nil {
		return "", err
	}
	final, ok := res.Messages.FinalAnswer()
	if !ok {
		return "", nil
	}
	return final.Content, nil
}

// Graph returns the workflow's static topology for inspection or export.
func (w *Workflow) Graph() *graph.WorkflowGraph {
	return w.graph
}
