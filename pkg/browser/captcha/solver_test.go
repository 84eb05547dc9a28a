package captcha

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
)

// The logging package caches its log directory for the lifetime of the
// process, so every test in this binary must point it at one directory
// that is never removed mid-run; a per-test t.TempDir would be deleted
// while later tests still depend on it.
var (
	sharedLogDirOnce sync.Once
	sharedLogDirPath string
	sharedLogDirErr  error
)

func sharedLogDir(t *testing.T) string {
	t.Helper()
	sharedLogDirOnce.Do(func() {
		sharedLogDirPath, sharedLogDirErr = os.MkdirTemp("", "captcha-test-logs-")
	})
	if sharedLogDirErr != nil {
		t.Fatalf("failed to create shared log dir: %v", sharedLogDirErr)
	}
	return sharedLogDirPath
}

func testSolver(t *testing.T) *Solver {
	t.Helper()
	t.Setenv("BRAVE_SCRAPER_LOG_DIR", sharedLogDir(t))
	logger, err := logging.NewLogger("captcha-test")
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	solver := NewSolver(logger)
	solver.pollInterval = 5 * time.Millisecond
	return solver
}

// fakeElement stands in for a challenge widget with a known position.
type fakeElement struct {
	playwright.ElementHandle
	box *playwright.Rect
}

func (e *fakeElement) BoundingBox() (*playwright.Rect, error) {
	return e.box, nil
}

// fakeMouse records pointer activity.
type fakeMouse struct {
	playwright.Mouse

	mu    sync.Mutex
	moves []point
	downs int
	ups   int
}

func (m *fakeMouse) Move(x float64, y float64, options ...playwright.MouseMoveOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves = append(m.moves, point{x, y})
	return nil
}

func (m *fakeMouse) Down(options ...playwright.MouseDownOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downs++
	return nil
}

func (m *fakeMouse) Up(options ...playwright.MouseUpOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ups++
	return nil
}

// fakeChallengePage serves selector and content lookups from fixed data.
type fakeChallengePage struct {
	playwright.Page

	elements map[string]playwright.ElementHandle
	content  string
	mouse    *fakeMouse
}

func (p *fakeChallengePage) QuerySelector(selector string, options ...playwright.PageQuerySelectorOptions) (playwright.ElementHandle, error) {
	return p.elements[selector], nil
}

func (p *fakeChallengePage) Content() (string, error) {
	return p.content, nil
}

func (p *fakeChallengePage) Mouse() playwright.Mouse {
	return p.mouse
}

func cleanPage() *fakeChallengePage {
	return &fakeChallengePage{
		elements: map[string]playwright.ElementHandle{},
		content:  "<html><body><h1>Plain article</h1></body></html>",
		mouse:    &fakeMouse{},
	}
}

func TestDetectBySelector(t *testing.T) {
	solver := testSolver(t)

	tests := []struct {
		name     string
		selector string
		wantType string
	}{
		{"turnstile iframe", `iframe[src*="challenges.cloudflare.com"]`, TypeTurnstile},
		{"turnstile widget", ".cf-turnstile", TypeTurnstile},
		{"hcaptcha widget", ".h-captcha", TypeHCaptcha},
		{"recaptcha widget", ".g-recaptcha", TypeRecaptcha},
		{"range slider", `input[type="range"]`, TypeSlider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := cleanPage()
			page.elements[tt.selector] = &fakeElement{}

			detected, captchaType := solver.Detect(page)
			assert.True(t, detected)
			assert.Equal(t, tt.wantType, captchaType)
		})
	}
}

func TestDetectByContent(t *testing.T) {
	solver := testSolver(t)

	tests := []struct {
		name     string
		content  string
		wantType string
	}{
		{"cloudflare domain", `<script src="https://challenges.cloudflare.com/x.js"></script>`, TypeTurnstile},
		{"hcaptcha domain", `<iframe data-src="hcaptcha.com/widget"></iframe>`, TypeHCaptcha},
		{"recaptcha markup", `<div class="g-recaptcha" data-sitekey-ish></div>`, TypeRecaptcha},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := cleanPage()
			page.content = tt.content

			detected, captchaType := solver.Detect(page)
			assert.True(t, detected)
			assert.Equal(t, tt.wantType, captchaType)
		})
	}
}

func TestDetectNothing(t *testing.T) {
	solver := testSolver(t)

	detected, captchaType := solver.Detect(cleanPage())
	assert.False(t, detected)
	assert.Empty(t, captchaType)
}

func TestDetectPrefersTurnstile(t *testing.T) {
	solver := testSolver(t)

	// A Turnstile interstitial often also matches generic slider-ish
	// markup; the specific provider wins
	page := cleanPage()
	page.elements[`iframe[src*="challenges.cloudflare.com"]`] = &fakeElement{}
	page.elements[`[class*="slider"]`] = &fakeElement{}

	_, captchaType := solver.Detect(page)
	assert.Equal(t, TypeTurnstile, captchaType)
}

func TestSolveCleanPage(t *testing.T) {
	solver := testSolver(t)

	result := solver.Solve(cleanPage(), time.Second)
	assert.True(t, result.Success)
	assert.Empty(t, result.Type)
	assert.Equal(t, "No CAPTCHA detected", result.Message)
}

func TestWaitForResolution(t *testing.T) {
	solver := testSolver(t)

	assert.True(t, solver.WaitForResolution(cleanPage(), time.Second))

	stuck := cleanPage()
	stuck.elements[".h-captcha"] = &fakeElement{}
	assert.False(t, solver.WaitForResolution(stuck, 30*time.Millisecond))
}
