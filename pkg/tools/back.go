package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// BackTool navigates back in the target page's history.
type BackTool struct {
	router *Router
}

// NewBackTool creates a new back tool.
func NewBackTool(router *Router) *BackTool {
	return &BackTool{router: router}
}

func (t *BackTool) Name() string {
	return "browser_back"
}

func (t *BackTool) Description() string {
	return "Navigate back in browser history"
}

func (t *BackTool) Schema() map[string]interface{} {
	return BaseToolSchema(withTargetProperties(map[string]interface{}{}), nil)
}

func (t *BackTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input targetArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}

	err := t.router.WithPage(input, func(page playwright.Page) error {
		_, err := page.GoBack()
		return err
	})
	if err != nil {
		return "", err
	}
	return "Navigated back", nil
}
