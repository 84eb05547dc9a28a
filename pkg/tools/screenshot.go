package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// screenshotDir is where captured screenshots are written.
const screenshotDir = "/tmp"

// ScreenshotTool captures a screenshot of the target page or an element.
type ScreenshotTool struct {
	router *Router
}

// NewScreenshotTool creates a new screenshot tool.
func NewScreenshotTool(router *Router) *ScreenshotTool {
	return &ScreenshotTool{router: router}
}

func (t *ScreenshotTool) Name() string {
	return "browser_screenshot"
}

func (t *ScreenshotTool) Description() string {
	return "Capture screenshot of page or element"
}

func (t *ScreenshotTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		withTargetProperties(map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Screenshot filename",
			},
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "Optional: CSS selector for element",
			},
			"full_page": map[string]interface{}{
				"type":        "boolean",
				"default":     false,
				"description": "Capture full page",
			},
		}),
		[]string{"name"},
	)
}

type screenshotArgs struct {
	targetArgs
	Name     string `json:"name"`
	Selector string `json:"selector,omitempty"`
	FullPage bool   `json:"full_page,omitempty"`
}

func (t *ScreenshotTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input screenshotArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Name == "" {
		return "", fmt.Errorf("name is required")
	}

	// Keep the filename inside the screenshot directory
	name := filepath.Base(strings.TrimSuffix(input.Name, ".png"))
	path := filepath.Join(screenshotDir, name+".png")

	err := t.router.WithPage(input.targetArgs, func(page playwright.Page) error {
		if input.Selector != "" {
			element, err := page.QuerySelector(input.Selector)
			if err != nil {
				return err
			}
			if element == nil {
				return fmt.Errorf("element not found: %s", input.Selector)
			}
			_, err = element.Screenshot(playwright.ElementHandleScreenshotOptions{
				Path: playwright.String(path),
			})
			return err
		}

		_, err := page.Screenshot(playwright.PageScreenshotOptions{
			Path:     playwright.String(path),
			FullPage: playwright.Bool(input.FullPage),
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Screenshot saved: %s", path), nil
}
