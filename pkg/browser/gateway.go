package browser

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
)

// contextFactory creates isolated contexts against the shared browser
// process. playwright.Browser satisfies it.
type contextFactory interface {
	NewContext(options ...playwright.BrowserNewContextOptions) (playwright.BrowserContext, error)
}

// Gateway hands out one-shot isolated execution contexts to callers that
// have no session identity. One mutex serializes the entire lifetime of
// each request: concurrent navigation on contexts created in quick
// succession has shown races in the underlying engine, so the gateway
// trades throughput for correctness and runs session-less requests one at
// a time.
type Gateway struct {
	mu       sync.Mutex
	factory  contextFactory
	opts     playwright.BrowserNewContextOptions
	contexts map[string]playwright.BrowserContext
	closed   bool
	logger   *logging.Logger
}

// NewGateway creates a gateway over the shared browser.
func NewGateway(factory contextFactory, opts playwright.BrowserNewContextOptions, logger *logging.Logger) *Gateway {
	return &Gateway{
		factory:  factory,
		opts:     opts,
		contexts: make(map[string]playwright.BrowserContext),
		logger:   logger,
	}
}

// WithIsolatedPage runs fn against a fresh isolated page. The context is
// created on entry and closed and deregistered on every exit path, success
// or failure. The gateway mutex is held for the whole scope.
func (g *Gateway) WithIsolatedPage(fn func(page playwright.Page) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrGatewayClosed
	}

	id := uuid.NewString()
	context, err := g.factory.NewContext(g.opts)
	if err != nil {
		return fmt.Errorf("failed to create isolated context: %w", err)
	}
	g.contexts[id] = context
	defer func() {
		delete(g.contexts, id)
		if closeErr := context.Close(); closeErr != nil {
			g.logger.Warnf("Error closing isolated context %s: %v", id, closeErr)
		}
	}()

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create isolated page: %w", err)
	}

	return fn(page)
}

// CreateIsolatedPage is the unscoped variant for callers that manage the
// lifetime themselves; they must call CloseIsolatedPage with the returned
// id when done.
func (g *Gateway) CreateIsolatedPage() (string, playwright.Page, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return "", nil, ErrGatewayClosed
	}

	id := uuid.NewString()
	context, err := g.factory.NewContext(g.opts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create isolated context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		if closeErr := context.Close(); closeErr != nil {
			g.logger.Debugf("Error closing context after failed page creation: %v", closeErr)
		}
		return "", nil, fmt.Errorf("failed to create isolated page: %w", err)
	}

	g.contexts[id] = context
	return id, page, nil
}

// CloseIsolatedPage closes and deregisters a context created with
// CreateIsolatedPage. Returns whether the id was known.
func (g *Gateway) CloseIsolatedPage(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	context, ok := g.contexts[id]
	if !ok {
		return false
	}
	delete(g.contexts, id)

	if err := context.Close(); err != nil {
		g.logger.Warnf("Error closing isolated context %s: %v", id, err)
	}
	return true
}

// ActiveContexts returns the number of live one-shot contexts.
func (g *Gateway) ActiveContexts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.contexts)
}

// Close shuts the gateway down, closing any remaining contexts
// best-effort. Idempotent.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	g.closed = true

	for id, context := range g.contexts {
		if err := context.Close(); err != nil {
			g.logger.Debugf("Error closing isolated context %s: %v", id, err)
		}
	}
	g.contexts = make(map[string]playwright.BrowserContext)
}
