package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// ClickTool clicks an element on the target page.
type ClickTool struct {
	router *Router
}

// NewClickTool creates a new click tool.
func NewClickTool(router *Router) *ClickTool {
	return &ClickTool{router: router}
}

func (t *ClickTool) Name() string {
	return "browser_click"
}

func (t *ClickTool) Description() string {
	return "Click on element matching selector"
}

func (t *ClickTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		withTargetProperties(map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for element",
			},
		}),
		[]string{"selector"},
	)
}

type clickArgs struct {
	targetArgs
	Selector string `json:"selector"`
}

func (t *ClickTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input clickArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Selector == "" {
		return "", fmt.Errorf("selector is required")
	}

	err := t.router.WithPage(input.targetArgs, func(page playwright.Page) error {
		return page.Click(input.Selector)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Clicked element: %s", input.Selector), nil
}
