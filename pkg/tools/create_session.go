package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser"
)

// CreateSessionTool creates (or reuses) a dedicated browser instance for a
// sub-agent session.
type CreateSessionTool struct {
	manager *browser.Manager
}

// NewCreateSessionTool creates a new session creation tool.
func NewCreateSessionTool(manager *browser.Manager) *CreateSessionTool {
	return &CreateSessionTool{manager: manager}
}

func (t *CreateSessionTool) Name() string {
	return "browser_create_session"
}

func (t *CreateSessionTool) Description() string {
	return "Create a dedicated browser instance for a sub-agent session. Returns the session id to use with other browser tools."
}

func (t *CreateSessionTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional: session identifier. Generated when omitted. Reusing an existing id returns the existing session.",
			},
		},
		nil,
	)
}

type createSessionArgs struct {
	SessionID string `json:"session_id,omitempty"`
}

func (t *CreateSessionTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input createSessionArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}

	pool, err := t.manager.Pool()
	if err != nil {
		return "", err
	}

	instance, err := pool.CreateBrowser(input.SessionID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Browser session ready: %s", instance.SessionID()), nil
}
