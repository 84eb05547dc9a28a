package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/search"
)

// ExtractTool extracts clean readable content from a URL.
type ExtractTool struct {
	router *Router
	client *search.Client
}

// NewExtractTool creates a new content extraction tool.
func NewExtractTool(router *Router, client *search.Client) *ExtractTool {
	return &ExtractTool{router: router, client: client}
}

func (t *ExtractTool) Name() string {
	return "brave_extract"
}

func (t *ExtractTool) Description() string {
	return "Extract clean, readable content from a URL"
}

func (t *ExtractTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		withTargetProperties(map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to extract content from",
			},
			"max_length": map[string]interface{}{
				"type":        "integer",
				"default":     search.DefaultMaxContentLength,
				"description": "Maximum content length in characters (default: 5000)",
			},
		}),
		[]string{"url"},
	)
}

type extractArgs struct {
	targetArgs
	URL       string `json:"url"`
	MaxLength int    `json:"max_length,omitempty"`
}

func (t *ExtractTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input extractArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.URL == "" {
		return "", fmt.Errorf("url is required")
	}

	var content *search.ExtractedContent
	err := t.router.WithPage(input.targetArgs, func(page playwright.Page) error {
		extracted, err := t.client.Extract(page, input.URL, input.MaxLength)
		if err != nil {
			return err
		}
		content = extracted
		return nil
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", content.Title)
	fmt.Fprintf(&b, "URL: %s\n", content.URL)
	fmt.Fprintf(&b, "Word Count: %d\n\n", content.WordCount)
	if content.Summary != "" {
		fmt.Fprintf(&b, "Summary:\n%s\n\n", content.Summary)
	}
	fmt.Fprintf(&b, "Content:\n%s", content.Content)
	return b.String(), nil
}
