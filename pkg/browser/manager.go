package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/config"
	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
)

// State is the lifecycle state of the Manager.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateStarting      State = "starting"
	StateRunning       State = "running"
	StateStopping      State = "stopping"
	StateStopped       State = "stopped"
)

// Manager orchestrates the shared browser runtime: the virtual display,
// the Playwright runtime, the shared browser process with its default
// context and page, the session pool, and the isolation gateway. It is
// constructed explicitly and passed down; there is no package-level
// singleton.
type Manager struct {
	mu    sync.Mutex
	state State

	cfg     *config.Config
	stealth *StealthConfig
	xvfb    *XvfbManager

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	pool    *PoolManager
	gateway *Gateway

	logger *logging.Logger
}

// NewManager creates a stopped manager from the runtime config.
func NewManager(cfg *config.Config) *Manager {
	logger, _ := logging.NewLogger("browser")
	stealth := NewStealthConfig(cfg)
	SetupDisplayEnv(stealth.Display)

	return &Manager{
		state:   StateUninitialized,
		cfg:     cfg,
		stealth: stealth,
		logger:  logger,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Page returns the default page for legacy non-isolated callers.
func (m *Manager) Page() (playwright.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateRunning || m.page == nil {
		return nil, ErrNotInitialized
	}
	return m.page, nil
}

// Pool returns the session pool manager, or an error before Start.
func (m *Manager) Pool() (*PoolManager, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateRunning {
		return nil, ErrNotInitialized
	}
	return m.pool, nil
}

// Gateway returns the isolation gateway, or an error before Start.
func (m *Manager) Gateway() (*Gateway, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateRunning {
		return nil, ErrNotInitialized
	}
	return m.gateway, nil
}

// Start brings the browser runtime up: virtual display, Playwright
// runtime, shared browser with default context and page, then the session
// pool. Idempotent; a second call while running is a no-op.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateRunning {
		return nil
	}
	if m.state == StateStarting || m.state == StateStopping {
		return fmt.Errorf("cannot start browser manager while %s", m.state)
	}
	m.state = StateStarting

	m.logger.Infof("Starting browser manager (stealth: %v, headless: %v)",
		m.stealth.Enabled, m.stealth.Headless)

	if m.stealth.UseXvfb() {
		m.xvfb = NewXvfbManager(m.stealth.Display, "", m.logger)
		if !m.xvfb.Start() {
			m.logger.Warnf("Failed to start Xvfb, falling back to headless mode")
			m.stealth.Headless = true
			m.xvfb = nil
		}
	}

	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		m.teardownLocked()
		m.state = StateStopped
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		m.teardownLocked()
		m.state = StateStopped
		return fmt.Errorf("failed to start playwright: %w", err)
	}
	m.pw = pw

	if err := m.launchSharedBrowserLocked(); err != nil {
		m.teardownLocked()
		m.state = StateStopped
		return err
	}

	launcher := &chromiumLauncher{
		browserType: m.pw.Chromium,
		stealth:     m.stealth,
		logger:      m.logger,
	}
	m.pool = NewPoolManager(launcher, PoolOptions{
		IdleTimeout: m.cfg.IdleTimeout(),
		MaxSessions: int64(m.cfg.MaxSessions),
	}, m.logger)
	m.pool.Start()

	m.gateway = NewGateway(m.browser, m.stealth.ContextOptions(), m.logger)

	m.state = StateRunning
	m.logger.Infof("Browser manager started")
	return nil
}

// launchSharedBrowserLocked launches the shared browser process and its
// default context and page. In stealth mode a persistent profile with the
// preferred channel is attempted first; any failure falls back to a plain
// Chromium launch. Caller holds m.mu.
func (m *Manager) launchSharedBrowserLocked() error {
	if m.stealth.Enabled {
		if err := m.launchStealthLocked(); err == nil {
			return nil
		} else {
			m.logger.Warnf("Failed to launch with channel %s: %v", m.stealth.Channel, err)
			m.logger.Infof("Falling back to standard Chromium...")
		}
	}
	return m.launchBasicLocked()
}

// launchStealthLocked launches a persistent context with the preferred
// channel. The gateway needs a browser handle to create isolated contexts
// from, so a persistent launch that exposes none is treated as a failure.
func (m *Manager) launchStealthLocked() error {
	context, err := m.pw.Chromium.LaunchPersistentContext(
		m.stealth.UserDataDir,
		playwright.BrowserTypeLaunchPersistentContextOptions{
			Channel:    playwright.String(m.stealth.Channel),
			Headless:   playwright.Bool(m.stealth.Headless),
			Args:       m.stealth.LaunchArgs(),
			NoViewport: playwright.Bool(true),
			UserAgent:  playwright.String(DefaultUserAgent),
			Locale:     playwright.String("en-US"),
			TimezoneId: playwright.String("America/New_York"),
		},
	)
	if err != nil {
		return err
	}

	browser := context.Browser()
	if browser == nil {
		if closeErr := context.Close(); closeErr != nil {
			m.logger.Debugf("Error closing persistent context: %v", closeErr)
		}
		return fmt.Errorf("persistent context exposes no browser handle")
	}

	m.context = context
	m.browser = browser

	if pages := context.Pages(); len(pages) > 0 {
		m.page = pages[0]
	} else {
		page, err := context.NewPage()
		if err != nil {
			if closeErr := context.Close(); closeErr != nil {
				m.logger.Debugf("Error closing persistent context: %v", closeErr)
			}
			m.context = nil
			m.browser = nil
			return fmt.Errorf("failed to create default page: %w", err)
		}
		m.page = page
	}

	m.logger.Infof("Using channel: %s (headless: %v)", m.stealth.Channel, m.stealth.Headless)
	return nil
}

// launchBasicLocked launches a plain Chromium browser with a fresh default
// context and page.
func (m *Manager) launchBasicLocked() error {
	m.logger.Infof("Launching basic browser...")

	browser, err := m.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.stealth.Headless),
		Args:     m.stealth.LaunchArgs(),
	})
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(m.stealth.ContextOptions())
	if err != nil {
		if closeErr := browser.Close(); closeErr != nil {
			m.logger.Debugf("Error closing browser: %v", closeErr)
		}
		return fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		if closeErr := context.Close(); closeErr != nil {
			m.logger.Debugf("Error closing context: %v", closeErr)
		}
		if closeErr := browser.Close(); closeErr != nil {
			m.logger.Debugf("Error closing browser: %v", closeErr)
		}
		return fmt.Errorf("failed to create page: %w", err)
	}

	m.browser = browser
	m.context = context
	m.page = page
	return nil
}

// Stop tears the runtime down in reverse start order: session pool first,
// then default page and context, the browser process, the Playwright
// runtime, and finally the virtual display. Every step is best-effort;
// shutdown never hangs on or propagates a teardown failure. Idempotent.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateStopped || m.state == StateUninitialized {
		return nil
	}
	m.state = StateStopping
	m.logger.Infof("Stopping browser manager...")

	if m.pool != nil {
		m.pool.Stop()
		m.pool = nil
	}
	if m.gateway != nil {
		m.gateway.Close()
		m.gateway = nil
	}

	m.teardownLocked()

	m.state = StateStopped
	m.logger.Infof("Browser manager stopped")
	return nil
}

// teardownLocked releases the shared browser resources best-effort.
// Caller holds m.mu.
func (m *Manager) teardownLocked() {
	if m.page != nil {
		if err := m.page.Close(); err != nil {
			m.logger.Debugf("Error closing page: %v", err)
		}
		m.page = nil
	}
	if m.context != nil {
		if err := m.context.Close(); err != nil {
			m.logger.Debugf("Error closing context: %v", err)
		}
		m.context = nil
	}
	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			m.logger.Debugf("Error closing browser: %v", err)
		}
		m.browser = nil
	}
	if m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			m.logger.Debugf("Error stopping playwright: %v", err)
		}
		m.pw = nil
	}
	if m.xvfb != nil {
		m.xvfb.Stop()
		m.xvfb = nil
	}
}

// CheckStealth probes the default page for automation indicators and
// returns the fingerprint report.
func (m *Manager) CheckStealth() (map[string]interface{}, error) {
	page, err := m.Page()
	if err != nil {
		return nil, err
	}

	result, err := page.Evaluate(stealthProbeScript)
	if err != nil {
		return nil, fmt.Errorf("stealth check failed: %w", err)
	}

	report, ok := result.(map[string]interface{})
	if !ok {
		report = map[string]interface{}{"result": result}
	}
	report["stealth_mode"] = m.stealth.Enabled
	report["display"] = m.stealth.Display
	report["channel"] = m.stealth.Channel
	return report, nil
}
