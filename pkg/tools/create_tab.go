package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser"
)

// CreateTabTool opens a new tab in a sub-agent session.
type CreateTabTool struct {
	manager *browser.Manager
}

// NewCreateTabTool creates a new tab creation tool.
func NewCreateTabTool(manager *browser.Manager) *CreateTabTool {
	return &CreateTabTool{manager: manager}
}

func (t *CreateTabTool) Name() string {
	return "browser_create_tab"
}

func (t *CreateTabTool) Description() string {
	return "Open a new tab in a sub-agent browser session, optionally navigating it to a URL. At the tab limit the least recently used tab is closed first."
}

func (t *CreateTabTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session to open the tab in",
			},
			"tab_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional: tab identifier. Generated when omitted.",
			},
			"url": map[string]interface{}{
				"type":        "string",
				"description": "Optional: URL to navigate the new tab to",
			},
		},
		[]string{"session_id"},
	)
}

type createTabArgs struct {
	SessionID string `json:"session_id"`
	TabID     string `json:"tab_id,omitempty"`
	URL       string `json:"url,omitempty"`
}

func (t *CreateTabTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input createTabArgs
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
	instance, err := pool.GetOrCreateBrowser(input.SessionID)
	if err != nil {
		return "", err
	}

	tabID, _, err := instance.CreateTab(input.TabID, input.URL)
	if err != nil {
		return "", err
	}

	if input.URL != "" {
		return fmt.Sprintf("Created tab %s at %s", tabID, input.URL), nil
	}
	return fmt.Sprintf("Created tab %s", tabID), nil
}
