package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser/captcha"
)

// defaultCaptchaTimeout bounds a solve attempt when the caller does not
// say.
const defaultCaptchaTimeout = 30 * time.Second

// SolveCaptchaTool detects and attempts to clear CAPTCHA challenges on the
// target page.
type SolveCaptchaTool struct {
	router *Router
	solver *captcha.Solver
}

// NewSolveCaptchaTool creates a new CAPTCHA solver tool.
func NewSolveCaptchaTool(router *Router, solver *captcha.Solver) *SolveCaptchaTool {
	return &SolveCaptchaTool{router: router, solver: solver}
}

func (t *SolveCaptchaTool) Name() string {
	return "browser_solve_captcha"
}

func (t *SolveCaptchaTool) Description() string {
	return "Auto-detect and solve CAPTCHA challenges (Cloudflare Turnstile, hCaptcha, reCAPTCHA)"
}

func (t *SolveCaptchaTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		withTargetProperties(map[string]interface{}{
			"timeout": map[string]interface{}{
				"type":        "integer",
				"default":     30,
				"description": "Maximum time to wait for CAPTCHA solving (seconds)",
			},
		}),
		nil,
	)
}

type solveCaptchaArgs struct {
	targetArgs
	TimeoutSeconds int `json:"timeout,omitempty"`
}

func (t *SolveCaptchaTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var input solveCaptchaArgs
	if err := decodeArgs(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}

	timeout := defaultCaptchaTimeout
	if input.TimeoutSeconds > 0 {
		timeout = time.Duration(input.TimeoutSeconds) * time.Second
	}

	var result captcha.Result
	err := t.router.WithPage(input.targetArgs, func(page playwright.Page) error {
		result = t.solver.Solve(page, timeout)
		return nil
	})
	if err != nil {
		return "", err
	}

	if result.Success {
		return fmt.Sprintf("CAPTCHA solved successfully in %.2fs", result.Duration.Seconds()), nil
	}
	if result.Error != "" {
		return fmt.Sprintf("Failed to solve CAPTCHA: %s", result.Error), nil
	}
	return fmt.Sprintf("Failed to solve %s CAPTCHA within %s", result.Type, timeout), nil
}
