package supervisorkit

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/supervisorkit/archive"
	"github.com/hupe1980/supervisorkit/config"
	"github.com/hupe1980/supervisorkit/core"
	"github.com/hupe1980/supervisorkit/history"
)

func mathTeam() (core.Agent, []core.Agent) {
	calls := 0
	supervisor := core.NewSupervisor("supervisor", "You manage a math expert.",
		func(_ context.Context, _ core.Transcript) (*core.StepResult, error) {
			calls++
			if calls == 1 {
				return &core.StepResult{TransferTo: "math_expert", Reason: "arithmetic question"}, nil
			}
			return &core.StepResult{Messages: []core.Message{core.NewAIMessage("", "4")}}, nil
		})

	worker := core.NewWorker("math_expert", "You are a math expert.",
		func(_ context.Context, _ core.Transcript) (*core.StepResult, error) {
			return &core.StepResult{Messages: []core.Message{
				core.NewAIMessage("", "calling add(2, 2)"),
				core.NewAIMessage("", "2 + 2 = 4"),
			}}, nil
		}, "add", "multiply")

	return supervisor, []core.Agent{worker}
}

func TestWorkflowEndToEndFullHistory(t *testing.T) {
	sup, workers := mathTeam()
	wf, err := Create(sup, workers)
	require.NoError(t, err)

	res, err := wf.Invoke(context.Background(), []core.Message{core.NewHumanMessage("what's 2 + 2?")})
	require.NoError(t, err)

	assert.Equal(t, core.StatusCompleted, res.Status)
	require.Len(t, res.Messages, 5)
	assert.Equal(t, core.KindHuman, res.Messages[0].Kind)
	assert.Equal(t, core.KindHandoffRequest, res.Messages[1].Kind)
	assert.Equal(t, "calling add(2, 2)", res.Messages[2].Content)
	assert.Equal(t, "2 + 2 = 4", res.Messages[3].Content)
	assert.Equal(t, "4", res.Messages[4].Content)
}

func TestWorkflowEndToEndLastMessage(t *testing.T) {
	sup, workers := mathTeam()
	wf, err := Create(sup, workers, func(o *Options) {
		o.OutputMode = history.OutputModeLastMessage
	})
	require.NoError(t, err)

	res, err := wf.Invoke(context.Background(), []core.Message{core.NewHumanMessage("what's 2 + 2?")})
	require.NoError(t, err)

	require.Len(t, res.Messages, 4)
	assert.Equal(t, "2 + 2 = 4", res.Messages[2].Content, "intermediate worker turn dropped")
}

func TestWorkflowAsk(t *testing.T) {
	sup, workers := mathTeam()
	wf, err := Create(sup, workers)
	require.NoError(t, err)

	answer, err := wf.Ask(context.Background(), "what's 2 + 2?")
	require.NoError(t, err)
	assert.Equal(t, "4", answer)
}

func TestWorkflowGraphExport(t *testing.T) {
	sup, workers := mathTeam()
	wf, err := Create(sup, workers)
	require.NoError(t, err)

	mermaid := wf.Graph().Mermaid()
	assert.True(t, strings.HasPrefix(mermaid, "graph TD"))
	assert.Contains(t, mermaid, "supervisor --> math_expert")
	assert.Contains(t, mermaid, "math_expert --> supervisor")
}

func TestCreateRejectsDuplicateWorkers(t *testing.T) {
	sup, workers := mathTeam()
	_, err := Create(sup, append(workers, workers[0]))

	var dup *core.DuplicateAgentNameError
	assert.ErrorAs(t, err, &dup)
}

func TestWorkflowArchivesResults(t *testing.T) {
	store := archive.NewInMemoryStore()
	sup, workers := mathTeam()
	wf, err := Create(sup, workers, func(o *Options) { o.Archive = store })
	require.NoError(t, err)

	res, err := wf.Invoke(context.Background(), []core.Message{core.NewHumanMessage("what's 2 + 2?")})
	require.NoError(t, err)

	archived, ok := store.Get(res.InvocationID)
	require.True(t, ok)
	assert.Equal(t, res.Status, archived.Status)
	assert.Len(t, archived.Messages, len(res.Messages))
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.Load([]byte(`
supervisor:
  name: supervisor
  instruction: manage
workers:
  - name: math_expert
    instruction: do math
output_mode: last_message
iteration_limit: 5
`), "yaml")
	require.NoError(t, err)

	sup, workers := mathTeam()
	wf, err := FromConfig(cfg, config.Steps{
		"supervisor":  sup.Step,
		"math_expert": workers[0].Step,
	})
	require.NoError(t, err)

	res, err := wf.Invoke(context.Background(), []core.Message{core.NewHumanMessage("what's 2 + 2?")})
	require.NoError(t, err)
	require.Len(t, res.Messages, 4, "config's last_message mode applied")

	_, err = FromConfig(cfg, config.Steps{"supervisor": sup.Step})
	assert.Error(t, err)
}
