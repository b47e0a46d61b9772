// Package mcp implements Parley's session with a single MCP (Model
// Context Protocol) server. The server runs as a child process and is
// reached over its stdin/stdout streams.
//
// The wire protocol (JSON-RPC framing, initialization exchange) is
// delegated to the official MCP Go SDK; this package owns what the SDK
// does not: the session lifecycle state machine, resolving a server
// script path to a runnable command, catalog listing across the three
// member kinds, and the tool-call result contract where server-side
// tool failures are data rather than transport errors.
//
// Exactly one Session is active per client instance, used sequentially.
package mcp
