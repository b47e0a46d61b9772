package llm

import "context"

// Client is the interface the query orchestrator speaks to a reasoning
// engine through. One call is one full request/response round-trip; the
// call blocks until the complete response is received.
type Client interface {
	// Chat sends the conversation and optional tool schemas to the
	// model. maxTokens caps the response size; zero means provider
	// default.
	Chat(ctx context.Context, model string, messages []Message, tools []map[string]any, maxTokens int) (*ChatResponse, error)
}
