package tools

import (
	"context"
	"encoding/json"
)

// Tool is a capability exposed to MCP clients. Tools are invoked by name
// with a JSON arguments object and return a human-readable result string.
type Tool interface {
	// Name returns the unique identifier for this tool (e.g., "browser_navigate")
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// Schema returns the JSON schema for this tool's input parameters
	Schema() map[string]interface{}

	// Execute runs the tool with the given JSON arguments
	Execute(ctx context.Context, args json.RawMessage) (string, error)
}

// Descriptor is the listable form of a tool.
type Descriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// BaseToolSchema creates a common JSON schema structure for a tool with
// the given properties and required fields.
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// targetArgs are the routing fields shared by every page-targeting tool. A
// call carrying a session id runs on that session's browser instance; a
// call without one runs on a one-shot isolated page.
type targetArgs struct {
	SessionID string `json:"session_id,omitempty"`
	TabID     string `json:"tab_id,omitempty"`
}

// withTargetProperties merges the shared routing fields into a tool's
// schema properties.
func withTargetProperties(properties map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(properties)+2)
	for k, v := range properties {
		merged[k] = v
	}
	merged["session_id"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional: sub-agent session to run in. Omit for a one-shot isolated page.",
	}
	merged["tab_id"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional: tab within the session. Defaults to the most recently used tab.",
	}
	return merged
}

// decodeArgs unmarshals tool arguments, treating empty input as an empty
// object.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}
