package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser"
)

// CloseSessionTool closes a sub-agent session and its browser instance.
type CloseSessionTool struct {
	manager *browser.Manager
}

// NewCloseSessionTool creates a new session close tool.
func NewCloseSessionTool(manager *browser.Manager) *CloseSessionTool {
	return &CloseSessionTool{manager: manager}
}

func (t *CloseSessionTool) Name() string {
	return "browser_close_session"
}

func (t *CloseSessionTool) Description() string {
	return "Close a sub-agent browser session and release its resources"
}

func (t *CloseSessionTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session identifier to close",
			},
		},
		[]string{"session_id"},
	)
}

type closeSessionArgs struct {
	SessionID string `json:"session_id"`
}

func (t *CloseSessionTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input closeSessionArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.SessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}

	pool, err := t.manager.Pool()
	if err != nil {
		return "", err
	}

	if !pool.CloseBrowser(input.SessionID) {
		return fmt.Sprintf("No session found: %s", input.SessionID), nil
	}
	return fmt.Sprintf("Closed browser session: %s", input.SessionID), nil
}
