package mcp

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// interpreters maps script extensions to candidate interpreter names,
// tried in order on PATH. Extensions not listed here are executed
// directly and must be runnable on their own.
var interpreters = map[string][]string{
	".py":  {"python3", "python"},
	".js":  {"node"},
	".mjs": {"node"},
}

// resolveServerCommand builds the exec.Cmd that runs the server at
// path. MCP servers are commonly scripts, so known extensions are
// launched through their interpreter rather than relying on a shebang
// (which would not work on Windows at all).
func resolveServerCommand(ctx context.Context, path string) (*exec.Cmd, error) {
	candidates, ok := interpreters[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return exec.CommandContext(ctx, path), nil
	}

	for _, name := range candidates {
		if interp, err := exec.LookPath(name); err == nil {
			return exec.CommandContext(ctx, interp, path), nil
		}
	}
	return nil, fmt.Errorf("no interpreter found for %s (tried: %s)", path, strings.Join(candidates, ", "))
}
