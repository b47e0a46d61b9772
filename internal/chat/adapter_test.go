package chat

import (
	"testing"

	"github.com/parley-ai/parley/internal/mcp"
)

func TestToolSchemas(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
	}
	defs := []mcp.ToolDefinition{
		{Name: "echo", Description: "echoes input", InputSchema: schema},
		{Name: "bare"},
	}

	got := ToolSchemas(defs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	for i, schema := range got {
		if schema["type"] != "function" {
			t.Errorf("schema %d type = %v", i, schema["type"])
		}
	}

	fn, ok := got[0]["function"].(map[string]any)
	if !ok {
		t.Fatalf("function block = %T", got[0]["function"])
	}
	if fn["name"] != "echo" || fn["description"] != "echoes input" {
		t.Errorf("function block = %v", fn)
	}
	params, ok := fn["parameters"].(map[string]any)
	if !ok || params["type"] != "object" {
		t.Errorf("parameters = %v", fn["parameters"])
	}
}

func TestToolSchemasDefaults(t *testing.T) {
	got := ToolSchemas([]mcp.ToolDefinition{{Name: "bare"}})

	fn := got[0]["function"].(map[string]any)
	if fn["description"] != defaultToolDescription {
		t.Errorf("description = %v, want placeholder", fn["description"])
	}
	params, ok := fn["parameters"].(map[string]any)
	if !ok {
		t.Fatalf("parameters = %T, want object schema", fn["parameters"])
	}
	if params["type"] != "object" {
		t.Errorf("default schema = %v", params)
	}
}

func TestToolSchemasEmpty(t *testing.T) {
	if got := ToolSchemas(nil); len(got) != 0 {
		t.Errorf("ToolSchemas(nil) = %v, want empty", got)
	}
}
