// Package llm provides the reasoning-engine boundary: a provider
// interface and the OpenAI chat-completions implementation behind it.
package llm

import "log/slog"

// LevelTrace is below Debug, used for wire-level payload logging.
const LevelTrace = slog.Level(-8)

// Message is one conversation turn exchanged with the model.
type Message struct {
	Role       string     `json:"role"` // system, user, assistant, tool
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"` // set on tool-result turns
}

// ToolCall is a tool invocation requested by the model. The ID
// correlates the request with its eventual tool-result turn.
type ToolCall struct {
	ID       string       `json:"id,omitempty"`
	Type     string       `json:"type,omitempty"` // always "function"
	Function FunctionCall `json:"function"`
}

// FunctionCall names the tool and carries its arguments as the raw
// JSON document the model produced. Parsing (and tolerating malformed
// documents) is the caller's concern.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatResponse is the provider-neutral response to one chat call.
type ChatResponse struct {
	Model        string
	Message      Message
	FinishReason string

	// Token usage, when the provider reports it.
	InputTokens  int
	OutputTokens int
}
