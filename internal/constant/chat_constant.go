package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// DefaultSystemInstruction is applied to projects created without one.
	DefaultSystemInstruction = "You are a helpful assistant."

	// ContextWindowSize is the number of recent turns (including the turn
	// just sent) forwarded to the model on every chat request.
	ContextWindowSize = 20

	// HistoryDisplayLimit bounds the history endpoint, not the model context.
	HistoryDisplayLimit = 50
)

// Generation parameters passed verbatim to the model backend.
const (
	GenMaxOutputTokens = 1024
	GenTemperature     = 0.7
	GenTopP            = 0.95
	GenTopK            = 40
)
