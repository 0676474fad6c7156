// Package config loads declarative workflow definitions from YAML or JSON.
// A definition names the supervisor and workers and fixes the runtime policy
// knobs; step logic stays in code and is bound by agent name at build time.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/supervisorkit/core"
	"github.com/hupe1980/supervisorkit/history"
)

// AgentConfig declares one agent of the workflow.
type AgentConfig struct {
	Name         string   `yaml:"name" json:"name"`
	Instruction  string   `yaml:"instruction" json:"instruction"`
	Capabilities []string `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`
}

// WorkflowConfig is the root of a declarative workflow definition.
type WorkflowConfig struct {
	Supervisor             AgentConfig        `yaml:"supervisor" json:"supervisor"`
	Workers                []AgentConfig      `yaml:"workers" json:"workers"`
	OutputMode             history.OutputMode `yaml:"output_mode,omitempty" json:"output_mode,omitempty"`
	AddHandoffBackMessages bool               `yaml:"add_handoff_back_messages,omitempty" json:"add_handoff_back_messages,omitempty"`
	IterationLimit         int                `yaml:"iteration_limit,omitempty" json:"iteration_limit,omitempty"`
}

// Load parses raw bytes in the given format ("yaml" or "json") and validates
// the result.
func Load(data []byte, format string) (*WorkflowConfig, error) {
	var cfg WorkflowConfig

	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q, use \"yaml\" or \"json\"", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile reads a workflow definition from disk. The format is detected
// from the file extension (.yaml, .yml, .json).
func LoadFile(path string) (*WorkflowConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workflow definition: %w", err)
	}

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	case ".json":
		format = "json"
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}

	return Load(data, format)
}

// Validate checks structural soundness before any agent is constructed.
func (c *WorkflowConfig) Validate() error {
	if c.Supervisor.Name == "" {
		return fmt.Errorf("supervisor name must not be empty")
	}
	if len(c.Workers) == 0 {
		return fmt.Errorf("at least one worker is required")
	}

	seen := map[string]struct{}{c.Supervisor.Name: {}}
	for _, w := range c.Workers {
		if w.Name == "" {
			return fmt.Errorf("worker name must not be empty")
		}
		if _, taken := seen[w.Name]; taken {
			return &core.DuplicateAgentNameError{Name: w.Name}
		}
		seen[w.Name] = struct{}{}
	}

	if c.OutputMode != "" && !c.OutputMode.Valid() {
		return fmt.Errorf("unknown output mode %q", c.OutputMode)
	}
	if c.IterationLimit < 0 {
		return fmt.Errorf("iteration limit must not be negative, got %d", c.IterationLimit)
	}

	return nil
}

// Steps maps agent names to their step logic for Bind.
type Steps map[string]core.StepFunc

// Bind attaches step logic to the declared agents and returns the assembled
// supervisor and workers, in declaration order. Every agent in the definition
// needs a step; leftover entries in steps are rejected as likely typos.
func (c *WorkflowConfig) Bind(steps Steps) (core.Agent, []core.Agent, error) {
	supStep, ok := steps[c.Supervisor.Name]
	if !ok {
		return core.Agent{}, nil, fmt.Errorf("no step bound for supervisor %q", c.Supervisor.Name)
	}

	bound := map[string]struct{}{c.Supervisor.Name: {}}
	workers := make([]core.Agent, 0, len(c.Workers))
	for _, wc := range c.Workers {
		step, ok := steps[wc.Name]
		if !ok {
			return core.Agent{}, nil, fmt.Errorf("no step bound for worker %q", wc.Name)
		}
		bound[wc.Name] = struct{}{}
		workers = append(workers, core.NewWorker(wc.Name, wc.Instruction, step, wc.Capabilities...))
	}

	for name := range steps {
		if _, ok := bound[name]; !ok {
			return core.Agent{}, nil, fmt.Errorf("step bound for unknown agent %q", name)
		}
	}

	return core.NewSupervisor(c.Supervisor.Name, c.Supervisor.Instruction, supStep), workers, nil
}
