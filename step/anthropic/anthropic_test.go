package anthropic

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/supervisorkit/core"
)

func TestParseTransfer(t *testing.T) {
	target, reason, err := parseTransfer([]byte(`{"agent":"research_expert","reason":"needs a source"}`))
	require.NoError(t, err)
	assert.Equal(t, "research_expert", target)
	assert.Equal(t, "needs a source", reason)

	_, _, err = parseTransfer([]byte(`{}`))
	assert.Error(t, err)

	_, _, err = parseTransfer([]byte(`not json`))
	assert.Error(t, err)
}

func TestBuildMessagesPerspective(t *testing.T) {
	transcript := core.Transcript{
		core.NewHumanMessage("who is the mayor of NYC?"),
		core.NewHandoffRequest("supervisor", "research_expert", ""),
		core.NewAIMessage("research_expert", "Eric Adams."),
		core.NewAIMessage("supervisor", "The mayor of NYC is Eric Adams."),
	}

	msgs := buildMessages(transcript, "supervisor")
	require.Len(t, msgs, 4)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[1].Role, "handoff rendered as user context")
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[2].Role, "worker turn rendered as user context")
	assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[3].Role, "own turn is assistant")
}

func TestNonEmptyPadding(t *testing.T) {
	assert.Equal(t, "(empty)", nonEmpty(""))
	assert.Equal(t, "x", nonEmpty("x"))
}
