package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/search"
)

// SearchTool runs a Brave Search query and returns structured results.
type SearchTool struct {
	router *Router
	client *search.Client
}

// NewSearchTool creates a new Brave Search tool.
func NewSearchTool(router *Router, client *search.Client) *SearchTool {
	return &SearchTool{router: router, client: client}
}

func (t *SearchTool) Name() string {
	return "brave_search"
}

func (t *SearchTool) Description() string {
	return "Search Brave Search and return structured results"
}

func (t *SearchTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		withTargetProperties(map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search query string",
			},
			"count": map[string]interface{}{
				"type":        "integer",
				"default":     search.DefaultResultCount,
				"description": "Number of results to return (default: 10)",
			},
		}),
		[]string{"query"},
	)
}

type searchArgs struct {
	targetArgs
	Query string `json:"query"`
	Count int    `json:"count,omitempty"`
}

func (t *SearchTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input searchArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Query == "" {
		return "", fmt.Errorf("query is required")
	}

	var results []search.Result
	err := t.router.WithPage(input.targetArgs, func(page playwright.Page) error {
		found, err := t.client.Search(page, input.Query, input.Count)
		if err != nil {
			return err
		}
		results = found
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return "No results found", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results:\n\n", len(results))
	for _, r := range results {
		fmt.Fprintf(&b, "%d. %s\n   URL: %s\n   %s\n\n", r.Position, r.Title, r.URL, r.Snippet)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
