package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// FillTool fills an input field on the target page.
type FillTool struct {
	router *Router
}

// NewFillTool creates a new fill tool.
func NewFillTool(router *Router) *FillTool {
	return &FillTool{router: router}
}

func (t *FillTool) Name() string {
	return "browser_fill"
}

func (t *FillTool) Description() string {
	return "Fill input field with value"
}

func (t *FillTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		withTargetProperties(map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for input",
			},
			"value": map[string]interface{}{
				"type":        "string",
				"description": "Value to fill",
			},
		}),
		[]string{"selector", "value"},
	)
}

type fillArgs struct {
	targetArgs
	Selector string `json:"selector"`
	Value    string `json:"value"`
}

func (t *FillTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input fillArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Selector == "" {
		return "", fmt.Errorf("selector is required")
	}

	err := t.router.WithPage(input.targetArgs, func(page playwright.Page) error {
		return page.Fill(input.Selector, input.Value)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Filled %s with value", input.Selector), nil
}
