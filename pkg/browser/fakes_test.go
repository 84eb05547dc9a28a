package browser

import (
	"os"
	"sync"
	"testing"

	"github.com/playwright-community/playwright-go"

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
		sharedLogDirPath, sharedLogDirErr = os.MkdirTemp("", "browser-test-logs-")
	})
	if sharedLogDirErr != nil {
		t.Fatalf("failed to create shared log dir: %v", sharedLogDirErr)
	}
	return sharedLogDirPath
}

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	t.Setenv("BRAVE_SCRAPER_LOG_DIR", sharedLogDir(t))
	logger, err := logging.NewLogger("test")
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger
}

// fakePage implements just enough of playwright.Page for registry and
// instance tests.
type fakePage struct {
	playwright.Page

	mu       sync.Mutex
	id       string
	closed   bool
	closeErr error
	gotoErr  error
	gotoURL  string
}

func (p *fakePage) Close(options ...playwright.PageCloseOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return p.closeErr
}

func (p *fakePage) SetViewportSize(width, height int) error {
	return nil
}

func (p *fakePage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gotoErr != nil {
		return nil, p.gotoErr
	}
	p.gotoURL = url
	return nil, nil
}

func (p *fakePage) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// fakeContext hands out fakePages and records closure.
type fakeContext struct {
	playwright.BrowserContext

	mu          sync.Mutex
	pages       []*fakePage
	nextErr     error
	nextGotoErr error
	closed      bool
}

func (c *fakeContext) NewPage() (playwright.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nextErr != nil {
		return nil, c.nextErr
	}
	page := &fakePage{gotoErr: c.nextGotoErr}
	c.pages = append(c.pages, page)
	return page, nil
}

func (c *fakeContext) Close(options ...playwright.BrowserContextCloseOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeContext) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeContext) pageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}

// fakeBrowser records closure for pool tests.
type fakeBrowser struct {
	playwright.Browser

	mu     sync.Mutex
	closed bool
}

func (b *fakeBrowser) Close(options ...playwright.BrowserCloseOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *fakeBrowser) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// fakeLauncher implements browserLauncher without a real engine.
type fakeLauncher struct {
	mu        sync.Mutex
	launches  int
	launchErr error
	browsers  []*fakeBrowser
	contexts  []*fakeContext
}

func (l *fakeLauncher) Launch(sessionID string) (playwright.Browser, playwright.BrowserContext, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.launchErr != nil {
		return nil, nil, l.launchErr
	}
	l.launches++
	browser := &fakeBrowser{}
	context := &fakeContext{}
	l.browsers = append(l.browsers, browser)
	l.contexts = append(l.contexts, context)
	return browser, context, nil
}

func (l *fakeLauncher) launchCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.launches
}
