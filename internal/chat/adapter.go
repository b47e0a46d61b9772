package chat

import (
	"github.com/parley-ai/parley/internal/mcp"
)

// defaultToolDescription fills in for servers that omit one.
const defaultToolDescription = "No description"

// ToolSchemas converts MCP tool definitions into the function-call
// schema shape the model expects. Pure transformation: names pass
// through unchanged (uniqueness is the server's contract), a missing
// description gets a placeholder, and a missing parameter schema
// defaults to an empty object schema.
func ToolSchemas(defs []mcp.ToolDefinition) []map[string]any {
	schemas := make([]map[string]any, 0, len(defs))
	for _, d := range defs {
		desc := d.Description
		if desc == "" {
			desc = defaultToolDescription
		}

		params := d.InputSchema
		if params == nil {
			params = map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			}
		}

		schemas = append(schemas, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        d.Name,
				"description": desc,
				"parameters":  params,
			},
		})
	}
	return schemas
}
