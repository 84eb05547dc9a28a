package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// NavigateTool navigates the target page to a URL.
type NavigateTool struct {
	router *Router
}

// NewNavigateTool creates a new navigate tool.
func NewNavigateTool(router *Router) *NavigateTool {
	return &NavigateTool{router: router}
}

func (t *NavigateTool) Name() string {
	return "browser_navigate"
}

func (t *NavigateTool) Description() string {
	return "Navigate browser to specified URL"
}

func (t *NavigateTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		withTargetProperties(map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to navigate to",
			},
			"wait_until": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"load", "domcontentloaded", "networkidle"},
				"default":     "load",
				"description": "When to consider navigation complete",
			},
		}),
		[]string{"url"},
	)
}

type navigateArgs struct {
	targetArgs
	URL       string `json:"url"`
	WaitUntil string `json:"wait_until,omitempty"`
}

// waitUntilStates maps the accepted wait_until values to engine states.
var waitUntilStates = map[string]*playwright.WaitUntilState{
	"":                 playwright.WaitUntilStateLoad,
	"load":             playwright.WaitUntilStateLoad,
	"domcontentloaded": playwright.WaitUntilStateDomcontentloaded,
	"networkidle":      playwright.WaitUntilStateNetworkidle,
}

func (t *NavigateTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input navigateArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.URL == "" {
		return "", fmt.Errorf("url is required")
	}

	waitUntil, ok := waitUntilStates[input.WaitUntil]
	if !ok {
		return "", fmt.Errorf("invalid wait_until value: %s (must be 'load', 'domcontentloaded', or 'networkidle')", input.WaitUntil)
	}

	err := t.router.WithPage(input.targetArgs, func(page playwright.Page) error {
		_, err := page.Goto(input.URL, playwright.PageGotoOptions{WaitUntil: waitUntil})
		return err
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Navigated to %s", input.URL), nil
}
