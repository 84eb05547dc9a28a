package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// HoverTool hovers over an element on the target page.
type HoverTool struct {
	router *Router
}

// NewHoverTool creates a new hover tool.
func NewHoverTool(router *Router) *HoverTool {
	return &HoverTool{router: router}
}

func (t *HoverTool) Name() string {
	return "browser_hover"
}

func (t *HoverTool) Description() string {
	return "Hover over element matching selector"
}

func (t *HoverTool) Schema() map[string]interface{} {
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

type hoverArgs struct {
	targetArgs
	Selector string `json:"selector"`
}

func (t *HoverTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input hoverArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Selector == "" {
		return "", fmt.Errorf("selector is required")
	}

	err := t.router.WithPage(input.targetArgs, func(page playwright.Page) error {
		return page.Hover(input.Selector)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Hovered over %s", input.Selector), nil
}
