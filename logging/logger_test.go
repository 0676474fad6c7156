package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T) (*WorkflowLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewWorkflowLogger(&Config{
		Format:   "text",
		Output:   &buf,
		Level:    slog.LevelDebug,
		Workflow: "math_team",
	}), &buf
}

func TestWorkflowLoggerAttachesContext(t *testing.T) {
	logger, buf := newBufferedLogger(t)

	logger.WithInvocation("inv-1").Info("handoff evaluated", "to", "math_expert")

	out := buf.String()
	assert.Contains(t, out, "workflow=math_team")
	assert.Contains(t, out, "invocation_id=inv-1")
	assert.Contains(t, out, "to=math_expert")
}

func TestWithInvocationDoesNotMutateParent(t *testing.T) {
	logger, buf := newBufferedLogger(t)

	_ = logger.WithInvocation("inv-1")
	logger.Info("parent entry")

	assert.NotContains(t, buf.String(), "invocation_id")
}

func TestLogHandoff(t *testing.T) {
	logger, buf := newBufferedLogger(t)

	logger.LogHandoff("supervisor", "math_expert", "arithmetic")

	out := buf.String()
	assert.Contains(t, out, "msg=handoff")
	assert.Contains(t, out, "from=supervisor")
	assert.Contains(t, out, "reason=arithmetic")
}

func TestLogAgentStep(t *testing.T) {
	logger, buf := newBufferedLogger(t)

	logger.LogAgentStep("math_expert", 2, 5*time.Millisecond, nil)
	assert.Contains(t, buf.String(), "agent step completed")

	buf.Reset()
	logger.LogAgentStep("math_expert", 0, time.Millisecond, errors.New("model unavailable"))
	out := buf.String()
	assert.Contains(t, out, "agent step failed")
	assert.Contains(t, out, "model unavailable")
}

func TestNoOpLoggerImplementsLogger(t *testing.T) {
	var l Logger = NoOpLogger{}
	require.NotNil(t, l)
	l.Debug("ignored")
	l.Error("ignored", "k", "v")
}

func TestWorkflowLoggerSatisfiesLogger(t *testing.T) {
	logger, buf := newBufferedLogger(t)
	var l Logger = logger
	l.Warn("step limit approaching", "remaining", 1)
	assert.Contains(t, buf.String(), "step limit approaching")
}
