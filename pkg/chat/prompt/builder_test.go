package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-agenthub-be/pkg/llm"
)

func TestBuild_FoldsInstructionIntoLiveMessage(t *testing.T) {
	p := Build("You are a pirate.", nil, "hi")

	assert.Empty(t, p.History)
	assert.Equal(t, "[System: You are a pirate.]\n\nUser: hi", p.Message)
}

func TestBuild_EmptyInstructionLeavesMessageBare(t *testing.T) {
	p := Build("", nil, "hi")

	assert.Equal(t, "hi", p.Message)
}

func TestBuild_HistoryPassesThroughUntouched(t *testing.T) {
	history := []llm.Message{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}

	p := Build("Be brief.", history, "next question")

	require.Len(t, p.History, 2)
	assert.Equal(t, "earlier question", p.History[0].Content)
	assert.Equal(t, "earlier answer", p.History[1].Content)
	assert.Equal(t, "[System: Be brief.]\n\nUser: next question", p.Message)
}
