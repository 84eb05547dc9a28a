package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// EvaluateTool executes JavaScript in the target page's context.
type EvaluateTool struct {
	router *Router
}

// NewEvaluateTool creates a new evaluate tool.
func NewEvaluateTool(router *Router) *EvaluateTool {
	return &EvaluateTool{router: router}
}

func (t *EvaluateTool) Name() string {
	return "browser_evaluate"
}

func (t *EvaluateTool) Description() string {
	return "Execute JavaScript in browser context"
}

func (t *EvaluateTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		withTargetProperties(map[string]interface{}{
			"script": map[string]interface{}{
				"type":        "string",
				"description": "JavaScript code to execute",
			},
		}),
		[]string{"script"},
	)
}

type evaluateArgs struct {
	targetArgs
	Script string `json:"script"`
}

func (t *EvaluateTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input evaluateArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Script == "" {
		return "", fmt.Errorf("script is required")
	}

	var result interface{}
	err := t.router.WithPage(input.targetArgs, func(page playwright.Page) error {
		value, err := page.Evaluate(input.Script)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		return "", err
	}

	// Structured results serialize as JSON; scalars print directly
	switch v := result.(type) {
	case nil:
		return "null", nil
	case string:
		return v, nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v), nil
		}
		return string(encoded), nil
	}
}
