package mcp

import (
	"errors"
	"fmt"
)

// ErrServerNotFound reports that the server script path does not exist.
// Connect fails with it before any process is spawned.
var ErrServerNotFound = errors.New("server script not found")

// ErrNotReady reports a protocol operation attempted outside the Ready
// state (before Connect completed, or after Close).
var ErrNotReady = errors.New("session is not ready")

// ConnectionError wraps any failure to establish a session: a missing
// server path, a spawn failure, or a rejected handshake. The underlying
// cause is always attached, never swallowed.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to server %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProtocolError wraps a malformed or failed request/response exchange
// with an established server (catalog listing, tool call dispatch).
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
