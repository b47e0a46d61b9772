package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/parley-ai/parley/internal/buildinfo"
)

// State is the session lifecycle state.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateReady
	StateClosed
)

// String returns the lowercase state name for logging.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CatalogKind selects which catalog section a List call fetches.
type CatalogKind int

const (
	CatalogTools CatalogKind = iota
	CatalogPrompts
	CatalogResources
)

// Kinds returns all catalog kinds in display order.
func Kinds() []CatalogKind {
	return []CatalogKind{CatalogTools, CatalogPrompts, CatalogResources}
}

// String returns the lowercase section name.
func (k CatalogKind) String() string {
	switch k {
	case CatalogTools:
		return "tools"
	case CatalogPrompts:
		return "prompts"
	case CatalogResources:
		return "resources"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Descriptor is one catalog entry, reduced to the fields every member
// kind shares.
type Descriptor struct {
	Name        string
	Description string
}

// ToolDefinition is a tool as advertised by the server. InputSchema is
// the server's JSON-schema document for the tool arguments; nil when
// the server supplies none.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema any
}

// ToolResult is the outcome of one tool invocation. A server-side tool
// failure is reported through IsError with the failure text in Text —
// tool failures are data, not protocol faults. A result with no content
// parts has Text == "".
type ToolResult struct {
	Text    string
	IsError bool
}

// transportBuilder produces the SDK transport for a server command.
// Overridden in tests to substitute an in-memory transport.
var transportBuilder = func(cmd *exec.Cmd) mcpsdk.Transport {
	return &mcpsdk.CommandTransport{Command: cmd}
}

// Session owns exactly one connection to one MCP server process. All
// request/response exchanges are serialized over it; no operation other
// than Close is valid outside the Ready state.
type Session struct {
	logger *slog.Logger

	mu    sync.Mutex
	state State
	id    string
	cs    *mcpsdk.ClientSession
}

// NewSession creates a disconnected session.
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		logger: logger.With("component", "mcp"),
		state:  StateDisconnected,
	}
}

// Connect resolves serverPath, spawns the server as a child process
// wired over stdio, and performs the protocol handshake. A missing path
// fails with [ErrServerNotFound] before anything is spawned. Any other
// failure is wrapped into a [ConnectionError] and leaves the session
// Closed — never stuck in Connecting.
func (s *Session) Connect(ctx context.Context, serverPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateDisconnected {
		return &ConnectionError{Path: serverPath, Err: fmt.Errorf("session already used (state %s)", s.state)}
	}

	path, err := filepath.Abs(serverPath)
	if err != nil {
		path = serverPath
	}
	if _, err := os.Stat(path); err != nil {
		s.state = StateClosed
		return &ConnectionError{Path: path, Err: ErrServerNotFound}
	}

	s.state = StateConnecting

	cmd, err := resolveServerCommand(ctx, path)
	if err != nil {
		s.state = StateClosed
		return &ConnectionError{Path: path, Err: err}
	}

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "parley",
		Version: buildinfo.Version,
	}, nil)

	cs, err := client.Connect(ctx, transportBuilder(cmd), nil)
	if err != nil {
		s.state = StateClosed
		return &ConnectionError{Path: path, Err: fmt.Errorf("handshake failed: %w", err)}
	}

	s.cs = cs
	s.id = uuid.NewString()
	s.state = StateReady

	s.logger.Debug("MCP session established", "server", path, "session_id", s.id)
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ID returns the identity token issued when the handshake completed,
// or "" before then.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// ready returns the underlying SDK session, or an error outside Ready.
func (s *Session) ready() (*mcpsdk.ClientSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ErrNotReady
	}
	return s.cs, nil
}

// List fetches one catalog section. The response is fully received
// before List returns.
func (s *Session) List(ctx context.Context, kind CatalogKind) ([]Descriptor, error) {
	cs, err := s.ready()
	if err != nil {
		return nil, &ProtocolError{Op: "list " + kind.String(), Err: err}
	}

	var items []Descriptor
	switch kind {
	case CatalogTools:
		for tool, err := range cs.Tools(ctx, nil) {
			if err != nil {
				return nil, &ProtocolError{Op: "list tools", Err: err}
			}
			items = append(items, Descriptor{Name: tool.Name, Description: tool.Description})
		}
	case CatalogPrompts:
		for prompt, err := range cs.Prompts(ctx, nil) {
			if err != nil {
				return nil, &ProtocolError{Op: "list prompts", Err: err}
			}
			items = append(items, Descriptor{Name: prompt.Name, Description: prompt.Description})
		}
	case CatalogResources:
		for res, err := range cs.Resources(ctx, nil) {
			if err != nil {
				return nil, &ProtocolError{Op: "list resources", Err: err}
			}
			items = append(items, Descriptor{Name: res.Name, Description: res.Description})
		}
	default:
		return nil, &ProtocolError{Op: "list", Err: fmt.Errorf("unknown catalog kind %d", int(kind))}
	}

	s.logger.Debug("catalog section listed", "kind", kind.String(), "count", len(items))
	return items, nil
}

// ListTools fetches the full tool definitions, schemas included. A
// fresh call may return a different set than a prior one; callers
// should not cache across queries.
func (s *Session) ListTools(ctx context.Context) ([]ToolDefinition, error) {
	cs, err := s.ready()
	if err != nil {
		return nil, &ProtocolError{Op: "list tools", Err: err}
	}

	var defs []ToolDefinition
	for tool, err := range cs.Tools(ctx, nil) {
		if err != nil {
			return nil, &ProtocolError{Op: "list tools", Err: err}
		}
		defs = append(defs, ToolDefinition{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	return defs, nil
}

// Call invokes a tool by name and waits for its result. The first text
// content part becomes ToolResult.Text (empty when the result carries
// no content). Failures the server reports from inside the tool come
// back as IsError results; only dispatch-level faults (unknown tool,
// broken transport) are returned as errors.
func (s *Session) Call(ctx context.Context, name string, args map[string]any) (ToolResult, error) {
	cs, err := s.ready()
	if err != nil {
		return ToolResult{}, &ProtocolError{Op: "call " + name, Err: err}
	}

	res, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return ToolResult{}, &ProtocolError{Op: "call " + name, Err: err}
	}

	return ToolResult{
		Text:    firstText(res.Content),
		IsError: res.IsError,
	}, nil
}

// firstText extracts the first text content part. Later parts are
// discarded; see the package documentation for this contract.
func firstText(content []mcpsdk.Content) string {
	for _, c := range content {
		if tc, ok := c.(*mcpsdk.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// Close tears the session down: it releases the transport and
// terminates the child process if still running. Safe to call multiple
// times and on never-connected sessions; every exit path from a
// session's use must reach it.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed

	if s.cs == nil {
		return nil
	}
	err := s.cs.Close()
	s.cs = nil
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	s.logger.Debug("MCP session closed", "session_id", s.id)
	return nil
}
