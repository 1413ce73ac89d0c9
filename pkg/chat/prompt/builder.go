// Package prompt assembles the payload sent to a model backend from a
// project's system instruction, its recent history and the live message.
package prompt

import (
	"fmt"

	"ai-agenthub-be/pkg/llm"
)

type Prompt struct {
	History []llm.Message
	Message string
}

// Build folds a non-empty system instruction into the live message. Backends
// without a dedicated system slot still see the instruction this way.
func Build(instruction string, history []llm.Message, message string) Prompt {
	live := message
	if instruction != "" {
		live = fmt.Sprintf("[System: %s]\n\nUser: %s", instruction, message)
	}
	return Prompt{
		History: history,
		Message: live,
	}
}
