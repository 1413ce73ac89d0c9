// Package history selects the slice of stored conversation turns that
// accompanies a live message to the model.
package history

import (
	"ai-agenthub-be/internal/constant"
	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/pkg/llm"
)

// Window takes messages ordered newest first, keeps at most limit of them
// and returns them in chronological order. A limit <= 0 keeps everything.
func Window(messages []entity.ChatMessage, limit int) []entity.ChatMessage {
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}

	window := make([]entity.ChatMessage, len(messages))
	for i, msg := range messages {
		window[len(messages)-1-i] = msg
	}
	return window
}

// ToMessages converts stored turns into provider messages. Stored turns use
// the "model" role for replies, providers expect "assistant".
func ToMessages(messages []entity.ChatMessage) []llm.Message {
	result := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		role := "user"
		if msg.Role == constant.ChatMessageRoleModel {
			role = "assistant"
		}
		result = append(result, llm.Message{
			Role:    role,
			Content: msg.Chat,
		})
	}
	return result
}
