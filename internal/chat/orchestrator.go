package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/parley-ai/parley/internal/llm"
	"github.com/parley-ai/parley/internal/mcp"
)

// ToolSession is the slice of the MCP session the orchestrator needs.
type ToolSession interface {
	ListTools(ctx context.Context) ([]mcp.ToolDefinition, error)
	Call(ctx context.Context, name string, args map[string]any) (mcp.ToolResult, error)
}

// Orchestrator turns one user query into one answer. It owns no
// conversation state across queries — each ProcessQuery call builds
// its conversation from scratch.
type Orchestrator struct {
	session   ToolSession
	client    llm.Client
	model     string
	maxTokens int
	logger    *slog.Logger
}

// NewOrchestrator wires a tool session and a reasoning-engine client
// together. The client must already be constructed, which is where
// credential errors surface — never mid-query.
func NewOrchestrator(session ToolSession, client llm.Client, model string, maxTokens int, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		session:   session,
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		logger:    logger.With("component", "chat"),
	}
}

// ProcessQuery runs the two-phase query protocol:
//
//  1. The query plus the server's current tool catalog go to the model.
//  2. If the model requests tool invocations, each is executed in the
//     order requested, one at a time — a later call may depend on the
//     effects of an earlier one. A failed tool call becomes error text
//     fed back to the model; it never aborts the query.
//  3. The updated conversation goes to the model once more, without
//     the tool list — one round of tool use per query bounds latency.
//
// The answer concatenates, in order: assistant text from the first
// call, a "[Used name(args)]" line per executed invocation, and the
// follow-up text. A failure of either model call is fatal to the query;
// segments gathered before it are discarded so the caller sees a clean
// error rather than a partial answer.
func (o *Orchestrator) ProcessQuery(ctx context.Context, query string) (string, error) {
	messages := []llm.Message{{Role: "user", Content: query}}

	defs, err := o.session.ListTools(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch tool catalog: %w", err)
	}

	first, err := o.client.Chat(ctx, o.model, messages, ToolSchemas(defs), o.maxTokens)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}

	var segments []string
	if first.Message.Content != "" {
		segments = append(segments, first.Message.Content)
	}

	calls := first.Message.ToolCalls
	if len(calls) == 0 {
		return strings.Join(segments, "\n"), nil
	}

	// Some providers omit correlation ids; issue our own so every tool
	// turn can reference its invocation.
	for i := range calls {
		if calls[i].ID == "" {
			calls[i].ID = uuid.NewString()
		}
		if calls[i].Type == "" {
			calls[i].Type = "function"
		}
	}

	messages = append(messages, llm.Message{
		Role:      "assistant",
		Content:   first.Message.Content,
		ToolCalls: calls,
	})

	for _, call := range calls {
		logLine, toolTurn := o.executeTool(ctx, call)
		segments = append(segments, logLine)
		messages = append(messages, toolTurn)
	}

	// Follow-up call carries no tool list: at most one round of tool
	// use per query.
	final, err := o.client.Chat(ctx, o.model, messages, nil, o.maxTokens)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	if final.Message.Content != "" {
		segments = append(segments, final.Message.Content)
	}

	return strings.Join(segments, "\n"), nil
}

// executeTool runs one requested invocation and returns the answer log
// segment plus the tool turn to append to the conversation. Failures —
// protocol-level or reported by the tool itself — are converted to
// error text in both, so the model can react instead of the query
// dying.
func (o *Orchestrator) executeTool(ctx context.Context, call llm.ToolCall) (string, llm.Message) {
	name := call.Function.Name
	args := parseArguments(call.Function.Arguments)

	o.logger.Debug("executing tool", "tool", name, "call_id", call.ID)

	var content, logLine string
	res, err := o.session.Call(ctx, name, args)
	switch {
	case err != nil:
		content = fmt.Sprintf("Error: %v", err)
		logLine = "[" + content + "]"
	case res.IsError:
		content = fmt.Sprintf("Error: %s", res.Text)
		logLine = "[" + content + "]"
	default:
		content = res.Text
		logLine = fmt.Sprintf("[Used %s(%s)]", name, formatArguments(args))
	}

	return logLine, llm.Message{
		Role:       "tool",
		ToolCallID: call.ID,
		Content:    content,
	}
}

// parseArguments decodes the model's argument document. A malformed or
// empty document degrades to an empty set of arguments rather than
// aborting the call.
func parseArguments(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil || args == nil {
		return map[string]any{}
	}
	return args
}

// formatArguments renders arguments for the answer log line. Keys are
// emitted in sorted order (encoding/json's map behavior), keeping the
// line deterministic.
func formatArguments(args map[string]any) string {
	data, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}
	return string(data)
}
