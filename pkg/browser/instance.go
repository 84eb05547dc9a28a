package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
)

// Instance is one isolated browsing identity bound to a sub-agent session.
// It owns its browser context and its tabs exclusively; closing the
// instance closes both, but never the underlying browser process.
type Instance struct {
	sessionID string
	context   playwright.BrowserContext

	mu           sync.Mutex
	tabs         *tabRegistry
	lastActivity time.Time
	isActive     bool
	closed       bool

	logger *logging.Logger
}

// NewInstance wraps an isolated browser context for a session.
func NewInstance(sessionID string, context playwright.BrowserContext, logger *logging.Logger) *Instance {
	logger.Infof("Browser instance created for session %s", sessionID)
	return &Instance{
		sessionID:    sessionID,
		context:      context,
		tabs:         newTabRegistry(logger),
		lastActivity: time.Now(),
		isActive:     true,
		logger:       logger,
	}
}

// SessionID returns the session this instance belongs to.
func (i *Instance) SessionID() string {
	return i.sessionID
}

// UpdateActivity refreshes the last-activity timestamp.
func (i *Instance) UpdateActivity() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.touchLocked()
}

func (i *Instance) touchLocked() {
	i.lastActivity = time.Now()
	i.isActive = true
}

// CreateTab opens a new tab, optionally navigating it to url. A tabID of ""
// generates one. At the tab limit the least recently used tab is evicted
// first, exactly one eviction per insert. A navigation failure fails the
// whole creation; no partial tab is left registered.
func (i *Instance) CreateTab(tabID, url string) (string, playwright.Page, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return "", nil, ErrInstanceClosed
	}

	if i.tabs.len() >= MaxTabs {
		i.tabs.evictOldest()
	}

	if tabID == "" {
		tabID = i.tabs.nextID()
	}

	page, err := i.context.NewPage()
	if err != nil {
		return "", nil, fmt.Errorf("failed to create page: %w", err)
	}

	if err := page.SetViewportSize(1920, 1080); err != nil {
		i.logger.Debugf("Failed to set viewport for tab %s: %v", tabID, err)
	}

	if url != "" {
		waitUntil := playwright.WaitUntilStateDomcontentloaded
		if _, err := page.Goto(url, playwright.PageGotoOptions{WaitUntil: waitUntil}); err != nil {
			if closeErr := page.Close(); closeErr != nil {
				i.logger.Debugf("Error closing page after failed navigation: %v", closeErr)
			}
			return "", nil, fmt.Errorf("failed to navigate new tab to %s: %w", url, err)
		}
	} else {
		url = "about:blank"
	}

	i.tabs.insert(tabID, page, url)
	i.touchLocked()
	i.logger.Debugf("Created tab %s for session %s", tabID, i.sessionID)

	return tabID, page, nil
}

// GetTab returns the page for a tab, promoting it to most recently used.
// Returns false when the tab does not exist or the instance is closed;
// a missing tab is an expected outcome, not an error.
func (i *Instance) GetTab(tabID string) (playwright.Page, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil, false
	}

	entry, ok := i.tabs.get(tabID)
	if !ok {
		return nil, false
	}
	i.touchLocked()
	return entry.page, true
}

// CloseTab closes and unregisters a tab. Returns whether it existed.
func (i *Instance) CloseTab(tabID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return false
	}

	if !i.tabs.remove(tabID) {
		return false
	}
	i.touchLocked()
	i.logger.Debugf("Closed tab %s for session %s", tabID, i.sessionID)
	return true
}

// ListTabs returns tab metadata in recency order, oldest first.
func (i *Instance) ListTabs() []TabInfo {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	return i.tabs.list()
}

// CloseAllTabs closes every tab best-effort, keeping the instance usable.
func (i *Instance) CloseAllTabs() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return
	}
	i.tabs.closeAll()
	i.touchLocked()
}

// Close shuts the instance down: all tabs, then the isolated context. The
// shared browser process stays up; the pool owns its lifecycle. Idempotent.
func (i *Instance) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true
	i.isActive = false

	i.tabs.closeAll()

	if err := i.context.Close(); err != nil {
		i.logger.Debugf("Error closing context for session %s: %v", i.sessionID, err)
	}

	i.logger.Infof("Browser instance closed for session %s", i.sessionID)
	return nil
}

// Closed reports whether Close has been called.
func (i *Instance) Closed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.closed
}

// TabCount returns the number of open tabs.
func (i *Instance) TabCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.tabs.len()
}

// IdleFor returns how long the instance has been without activity.
func (i *Instance) IdleFor() time.Duration {
	i.mu.Lock()
	defer i.mu.Unlock()
	return time.Since(i.lastActivity)
}

// Stats returns a side-effect-free snapshot for observability.
func (i *Instance) Stats() InstanceStats {
	i.mu.Lock()
	defer i.mu.Unlock()

	return InstanceStats{
		SessionID:    i.sessionID,
		TabCount:     i.tabs.len(),
		MaxTabs:      MaxTabs,
		IsActive:     i.isActive,
		LastActivity: i.lastActivity,
		IdleSeconds:  time.Since(i.lastActivity).Seconds(),
		Closed:       i.closed,
	}
}
