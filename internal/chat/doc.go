// Package chat turns user queries into answers by pairing an MCP
// session with a reasoning engine. The orchestrator runs a two-phase
// protocol per query: one model call that may request tool invocations,
// the requested invocations executed sequentially against the server,
// and at most one follow-up model call to synthesize the final answer.
package chat
