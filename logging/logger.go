// Package logging provides a tiny abstraction over slog so the orchestration
// core can depend on a minimal interface (Logger) while callers plug in any
// structured logger. Loggers are always injected explicitly; the core keeps
// no process-wide logging singleton.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger is the minimal logging interface consumed by the runtime.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NoOpLogger discards all log messages. Useful for tests or when logging is
// disabled.
type NoOpLogger struct{}

// Debug discards the message.
func (NoOpLogger) Debug(string, ...any) {}

// Info discards the message.
func (NoOpLogger) Info(string, ...any) {}

// Warn discards the message.
func (NoOpLogger) Warn(string, ...any) {}

// Error discards the message.
func (NoOpLogger) Error(string, ...any) {}

// WorkflowLogger wraps slog with workflow/invocation context plus convenience
// helpers for the orchestration domain. Cheap to copy via With* methods.
type WorkflowLogger struct {
	logger       *slog.Logger
	workflow     string
	invocationID string
}

// Config configures construction of a WorkflowLogger.
type Config struct {
	Format   string // json or text
	Output   io.Writer
	Level    slog.Level
	Workflow string
}

// NewWorkflowLogger builds a WorkflowLogger from a config (or defaults if nil).
func NewWorkflowLogger(cfg *Config) *WorkflowLogger {
	if cfg == nil {
		cfg = &Config{}
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &WorkflowLogger{logger: slog.New(handler), workflow: cfg.Workflow}
}

// WithInvocation attaches an invocation identifier to every log entry.
func (l *WorkflowLogger) WithInvocation(id string) *WorkflowLogger {
	nl := *l
	nl.invocationID = id
	return &nl
}

func (l *WorkflowLogger) attrs(extra ...any) []any {
	args := make([]any, 0, len(extra)+4)
	if l.workflow != "" {
		args = append(args, "workflow", l.workflow)
	}
	if l.invocationID != "" {
		args = append(args, "invocation_id", l.invocationID)
	}
	return append(args, extra...)
}

// Debug logs at debug level.
func (l *WorkflowLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, l.attrs(args...)...)
}

// Info logs at info level.
func (l *WorkflowLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, l.attrs(args...)...)
}

// Warn logs at warn level.
func (l *WorkflowLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, l.attrs(args...)...)
}

// Error logs at error level.
func (l *WorkflowLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, l.attrs(args...)...)
}

// LogHandoff records one control transfer between agents.
func (l *WorkflowLogger) LogHandoff(from, to, reason string) {
	l.logger.Info("handoff", l.attrs("from", from, "to", to, "reason", reason)...)
}

// LogAgentStep records latency and outcome of one agent step.
func (l *WorkflowLogger) LogAgentStep(agent string, emitted int, dur time.Duration, err error) {
	args := l.attrs("agent", agent, "emitted", emitted, "duration", dur)
	if err != nil {
		l.logger.LogAttrs(context.Background(), slog.LevelError, "agent step failed", toAttrs(append(args, "error", err.Error()))...)
		return
	}
	l.logger.Info("agent step completed", args...)
}

func toAttrs(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	return attrs
}
