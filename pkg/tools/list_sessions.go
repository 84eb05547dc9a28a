package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser"
)

// ListSessionsTool lists all live sub-agent browser sessions.
type ListSessionsTool struct {
	manager *browser.Manager
}

// NewListSessionsTool creates a new session listing tool.
func NewListSessionsTool(manager *browser.Manager) *ListSessionsTool {
	return &ListSessionsTool{manager: manager}
}

func (t *ListSessionsTool) Name() string {
	return "browser_list_sessions"
}

func (t *ListSessionsTool) Description() string {
	return "List all active sub-agent browser sessions with their tab counts and idle times"
}

func (t *ListSessionsTool) Schema() map[string]interface{} {
	return BaseToolSchema(map[string]interface{}{}, nil)
}

func (t *ListSessionsTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	pool, err := t.manager.Pool()
	if err != nil {
		return "", err
	}

	sessions := pool.ListSessions()
	if len(sessions) == 0 {
		return "No active browser sessions", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active browser sessions (%d):\n\n", len(sessions))
	for _, s := range sessions {
		fmt.Fprintf(&b, "- %s: %d/%d tabs, idle %.0fs\n",
			s.SessionID, s.TabCount, s.MaxTabs, s.IdleSeconds)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
