package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser"
)

// CloseTabTool closes a tab in a sub-agent session.
type CloseTabTool struct {
	manager *browser.Manager
}

// NewCloseTabTool creates a new tab close tool.
func NewCloseTabTool(manager *browser.Manager) *CloseTabTool {
	return &CloseTabTool{manager: manager}
}

func (t *CloseTabTool) Name() string {
	return "browser_close_tab"
}

func (t *CloseTabTool) Description() string {
	return "Close a tab in a sub-agent browser session"
}

func (t *CloseTabTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session the tab belongs to",
			},
			"tab_id": map[string]interface{}{
				"type":        "string",
				"description": "Tab identifier to close",
			},
		},
		[]string{"session_id", "tab_id"},
	)
}

type closeTabArgs struct {
	SessionID string `json:"session_id"`
	TabID     string `json:"tab_id"`
}

func (t *CloseTabTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input closeTabArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.SessionID == "" || input.TabID == "" {
		return "", fmt.Errorf("session_id and tab_id are required")
	}

	pool, err := t.manager.Pool()
	if err != nil {
		return "", err
	}
	instance, ok := pool.GetBrowser(input.SessionID)
	if !ok {
		return fmt.Sprintf("No session found: %s", input.SessionID), nil
	}

	if !instance.CloseTab(input.TabID) {
		return fmt.Sprintf("No tab found: %s", input.TabID), nil
	}
	return fmt.Sprintf("Closed tab %s", input.TabID), nil
}
