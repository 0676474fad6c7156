package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/supervisorkit/core"
)

func TestOutputModeValid(t *testing.T) {
	assert.True(t, OutputModeFullHistory.Valid())
	assert.True(t, OutputModeLastMessage.Valid())
	assert.False(t, OutputMode("condensed").Valid())

	_, err := New(OutputMode("condensed"))
	assert.Error(t, err)
}

func TestFoldFullHistoryKeepsEverything(t *testing.T) {
	agg, err := New(OutputModeFullHistory)
	require.NoError(t, err)

	state := core.NewConversationState("supervisor")
	state.Append(core.NewHumanMessage("q"))

	emitted := []core.Message{
		core.NewAIMessage("math_expert", "working on it"),
		core.NewAIMessage("math_expert", "2+2=4"),
	}

	appended := agg.Fold(state, emitted)
	require.Len(t, appended, 2)
	assert.Equal(t, 1, appended[0].SequenceIndex)
	assert.Equal(t, 2, appended[1].SequenceIndex)
	assert.Equal(t, 3, state.Len())
}

func TestFoldLastMessageKeepsOnlyFinalTurn(t *testing.T) {
	agg, err := New(OutputModeLastMessage)
	require.NoError(t, err)

	state := core.NewConversationState("supervisor")
	state.Append(core.NewHumanMessage("q"))

	emitted := []core.Message{
		core.NewAIMessage("math_expert", "tool call: add(2,2)"),
		core.NewAIMessage("math_expert", "tool result: 4"),
		core.NewAIMessage("math_expert", "2+2=4"),
	}

	appended := agg.Fold(state, emitted)
	require.Len(t, appended, 1)
	assert.Equal(t, "2+2=4", appended[0].Content)
	assert.Equal(t, 1, appended[0].SequenceIndex, "the kept message takes the next contiguous index")
	assert.Equal(t, 2, state.Len())
}

func TestFoldEmptyEmission(t *testing.T) {
	agg, err := New(OutputModeLastMessage)
	require.NoError(t, err)

	state := core.NewConversationState("supervisor")
	assert.Nil(t, agg.Fold(state, nil))
	assert.Zero(t, state.Len())
}

func TestFoldIsIncremental(t *testing.T) {
	agg, err := New(OutputModeLastMessage)
	require.NoError(t, err)

	state := core.NewConversationState("supervisor")
	agg.Fold(state, []core.Message{
		core.NewAIMessage("research_expert", "searching"),
		core.NewAIMessage("research_expert", "found it"),
	})
	agg.Fold(state, []core.Message{
		core.NewAIMessage("math_expert", "computing"),
		core.NewAIMessage("math_expert", "4"),
	})

	msgs := state.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "found it", msgs[0].Content)
	assert.Equal(t, "4", msgs[1].Content)
	for i, m := range msgs {
		assert.Equal(t, i, m.SequenceIndex)
	}
}
