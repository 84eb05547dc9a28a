package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser"
)

// ListTabsTool lists the open tabs of a sub-agent session.
type ListTabsTool struct {
	manager *browser.Manager
}

// NewListTabsTool creates a new tab listing tool.
func NewListTabsTool(manager *browser.Manager) *ListTabsTool {
	return &ListTabsTool{manager: manager}
}

func (t *ListTabsTool) Name() string {
	return "browser_list_tabs"
}

func (t *ListTabsTool) Description() string {
	return "List open tabs in a sub-agent browser session, least recently used first"
}

func (t *ListTabsTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session to list tabs for",
			},
		},
		[]string{"session_id"},
	)
}

type listTabsArgs struct {
	SessionID string `json:"session_id"`
}

func (t *ListTabsTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input listTabsArgs
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
	instance, ok := pool.GetBrowser(input.SessionID)
	if !ok {
		return fmt.Sprintf("No session found: %s", input.SessionID), nil
	}

	tabs := instance.ListTabs()
	if len(tabs) == 0 {
		return fmt.Sprintf("Session %s has no open tabs", input.SessionID), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Open tabs in session %s (%d):\n\n", input.SessionID, len(tabs))
	for _, tab := range tabs {
		fmt.Fprintf(&b, "- %s: %s\n", tab.ID, tab.URL)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
