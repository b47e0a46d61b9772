package mcp

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveServerCommandDirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server")
	cmd, err := resolveServerCommand(context.Background(), path)
	if err != nil {
		t.Fatalf("resolveServerCommand: %v", err)
	}
	if cmd.Path != path {
		t.Errorf("Path = %q, want %q", cmd.Path, path)
	}
	if len(cmd.Args) != 1 {
		t.Errorf("Args = %v, want just the executable", cmd.Args)
	}
}

func TestResolveServerCommandPython(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		if _, err := exec.LookPath("python"); err != nil {
			t.Skip("no python interpreter on PATH")
		}
	}

	path := filepath.Join(t.TempDir(), "server.py")
	cmd, err := resolveServerCommand(context.Background(), path)
	if err != nil {
		t.Fatalf("resolveServerCommand: %v", err)
	}
	if !strings.Contains(filepath.Base(cmd.Path), "python") {
		t.Errorf("Path = %q, want a python interpreter", cmd.Path)
	}
	if len(cmd.Args) != 2 || cmd.Args[1] != path {
		t.Errorf("Args = %v, want [interpreter %s]", cmd.Args, path)
	}
}

func TestResolveServerCommandCaseInsensitiveExt(t *testing.T) {
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("no node on PATH")
	}

	path := filepath.Join(t.TempDir(), "server.JS")
	cmd, err := resolveServerCommand(context.Background(), path)
	if err != nil {
		t.Fatalf("resolveServerCommand: %v", err)
	}
	if len(cmd.Args) != 2 {
		t.Errorf("Args = %v, want interpreter + script", cmd.Args)
	}
}
