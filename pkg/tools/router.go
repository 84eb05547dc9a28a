package tools

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser"
)

// Router resolves which page a tool call runs against. Calls carrying a
// session id resolve through the session pool to an instance tab; calls
// without one run on a one-shot page behind the isolation gateway, so
// anonymous callers can never observe each other's state.
type Router struct {
	manager *browser.Manager
}

// NewRouter creates a router over the browser manager.
func NewRouter(manager *browser.Manager) *Router {
	return &Router{manager: manager}
}

// WithPage resolves the target page and runs fn against it.
func (r *Router) WithPage(target targetArgs, fn func(page playwright.Page) error) error {
	if target.SessionID == "" {
		gateway, err := r.manager.Gateway()
		if err != nil {
			return err
		}
		return gateway.WithIsolatedPage(fn)
	}

	pool, err := r.manager.Pool()
	if err != nil {
		return err
	}
	instance, err := pool.GetOrCreateBrowser(target.SessionID)
	if err != nil {
		return err
	}

	page, err := resolveTab(instance, target.TabID)
	if err != nil {
		return err
	}
	return fn(page)
}

// resolveTab picks the tab a session-scoped call targets: the named tab,
// else the most recently used one, else a fresh blank tab.
func resolveTab(instance *browser.Instance, tabID string) (playwright.Page, error) {
	if tabID != "" {
		page, ok := instance.GetTab(tabID)
		if !ok {
			return nil, fmt.Errorf("tab %s not found in session %s", tabID, instance.SessionID())
		}
		return page, nil
	}

	if tabs := instance.ListTabs(); len(tabs) > 0 {
		if page, ok := instance.GetTab(tabs[len(tabs)-1].ID); ok {
			return page, nil
		}
	}

	_, page, err := instance.CreateTab("", "")
	return page, err
}
