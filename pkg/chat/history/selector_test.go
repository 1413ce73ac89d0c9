package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-agenthub-be/internal/constant"
	"ai-agenthub-be/internal/entity"
)

// newestFirst builds n turns numbered 1..n with turn n first, the order a
// created_at desc query returns them in.
func newestFirst(n int) []entity.ChatMessage {
	messages := make([]entity.ChatMessage, 0, n)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := n; i >= 1; i-- {
		role := constant.ChatMessageRoleUser
		if i%2 == 0 {
			role = constant.ChatMessageRoleModel
		}
		messages = append(messages, entity.ChatMessage{
			Chat:      fmt.Sprintf("turn %d", i),
			Role:      role,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return messages
}

func TestWindow_CapsAndReordersChronologically(t *testing.T) {
	window := Window(newestFirst(26), constant.ContextWindowSize)

	require.Len(t, window, 20)
	assert.Equal(t, "turn 7", window[0].Chat)
	assert.Equal(t, "turn 26", window[19].Chat)
	for i := 1; i < len(window); i++ {
		assert.True(t, window[i].CreatedAt.After(window[i-1].CreatedAt))
	}
}

func TestWindow_FewerThanLimitKeepsAll(t *testing.T) {
	window := Window(newestFirst(5), constant.ContextWindowSize)

	require.Len(t, window, 5)
	assert.Equal(t, "turn 1", window[0].Chat)
	assert.Equal(t, "turn 5", window[4].Chat)
}

func TestWindow_Empty(t *testing.T) {
	assert.Empty(t, Window(nil, constant.ContextWindowSize))
}

func TestToMessages_RoleMapping(t *testing.T) {
	messages := ToMessages([]entity.ChatMessage{
		{Chat: "hi", Role: constant.ChatMessageRoleUser},
		{Chat: "hello", Role: constant.ChatMessageRoleModel},
	})

	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.Equal(t, "hello", messages[1].Content)
}
